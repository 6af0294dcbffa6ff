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
// Package device implements the device side of the advanced USB control
// channel: a session holding the scratch buffer, read cursor and log ring,
// and a dispatcher that applies set reports to it and answers get reports.
//
// The hardware the dispatcher drives is reached through the interfaces in
// this file. Package emu provides in-memory versions of all of them.
package device

// DebugCapability is raw access to the device address space. It backs
// write-memory, execute and memory read cursors.
//
// Addresses are absolute and are NOT validated by the channel: an invalid
// address faults the device and nothing reports the fault back to the host.
// A dispatcher only gets this capability through WithUnsafeDebug; firmware
// that must not expose it simply never passes one.
type DebugCapability interface {
	WriteMemory(addr uint32, data []byte)
	ReadMemory(addr uint32, buf []byte)
	// Execute calls the code at addr with no arguments. Whatever it returns
	// is discarded.
	Execute(addr uint32)
}

// Allocator backs the scratch buffer. Allocation failure is not modelled.
type Allocator interface {
	// Realloc resizes the block at addr (0 allocates a new one) and returns
	// its possibly moved address.
	Realloc(addr, size uint32) uint32
	Free(addr uint32)
}

// ModeSwitcher switches firmware modes. Its internals are opaque here.
type ModeSwitcher interface {
	SwitchToDefault()
	// Override activates the mode described by the descriptor at addr.
	Override(addr uint32)
}

// FlashDriver is the vendor flash driver.
type FlashDriver interface {
	Init() error
	EraseChip() error
	EraseRegion(addr, length uint32) error
	Write(addr uint32, data []byte) error
	Read(addr uint32, buf []byte) error
}
