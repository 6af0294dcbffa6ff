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
package device

import (
	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/common/advproto"
)

// FlashShim sits between the dispatcher and the flash driver. It initializes
// the driver on first use and turns a zero address with the top bit of the
// length set into a whole-chip erase.
type FlashShim struct {
	drv   FlashDriver
	ready bool
}

func NewFlashShim(drv FlashDriver) *FlashShim {
	return &FlashShim{drv: drv}
}

func (f *FlashShim) init() error {
	if f.ready {
		return nil
	}
	if err := f.drv.Init(); err != nil {
		return errors.Annotatef(err, "flash init")
	}
	f.ready = true
	return nil
}

func (f *FlashShim) Erase(addr, length uint32) error {
	if err := f.init(); err != nil {
		return errors.Trace(err)
	}
	if length&advproto.TopBit != 0 && addr == 0 {
		return errors.Annotatef(f.drv.EraseChip(), "erase chip")
	}
	return errors.Annotatef(f.drv.EraseRegion(addr, length), "erase %d @ 0x%x", length, addr)
}

func (f *FlashShim) Write(addr uint32, data []byte) error {
	if err := f.init(); err != nil {
		return errors.Trace(err)
	}
	return errors.Annotatef(f.drv.Write(addr, data), "write %d @ 0x%x", len(data), addr)
}

func (f *FlashShim) Read(addr uint32, buf []byte) error {
	if err := f.init(); err != nil {
		return errors.Trace(err)
	}
	return errors.Annotatef(f.drv.Read(addr, buf), "read %d @ 0x%x", len(buf), addr)
}
