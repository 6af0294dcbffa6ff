//
// Copyright (c) 2014-2019 Cesanta Software Limited
// All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package emu

// Modes records mode switches. It implements device.ModeSwitcher.
type Modes struct {
	// Current is 0 for the default mode, otherwise the descriptor address.
	Current  uint32
	Switches int
}

func (m *Modes) SwitchToDefault() {
	m.Current = 0
	m.Switches++
}

func (m *Modes) Override(addr uint32) {
	m.Current = addr
	m.Switches++
}
