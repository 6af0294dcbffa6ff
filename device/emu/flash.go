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

import (
	"fmt"
	"sync"

	"github.com/juju/errors"
)

const (
	DefaultFlashSize  = 4 * 1024 * 1024
	DefaultSectorSize = 4096
)

// FlashOp records one driver call.
type FlashOp struct {
	Kind   string // "init", "erase-chip", "erase", "write", "read"
	Addr   uint32
	Length uint32
}

func (op FlashOp) String() string {
	return fmt.Sprintf("%s %d @ 0x%x", op.Kind, op.Length, op.Addr)
}

// Flash is a flash chip held in memory. It implements device.FlashDriver.
// Writes overwrite; erases fill with EraseByte.
type Flash struct {
	mu         sync.Mutex
	data       []byte
	sectorSize uint32
	eraseByte  byte

	Ops []FlashOp
	// InitErr, when set, is returned by Init.
	InitErr error
}

func NewFlash(size, sectorSize uint32, eraseByte byte) *Flash {
	f := &Flash{
		data:       make([]byte, size),
		sectorSize: sectorSize,
		eraseByte:  eraseByte,
	}
	for i := range f.data {
		f.data[i] = eraseByte
	}
	return f
}

func (f *Flash) record(kind string, addr, length uint32) {
	f.Ops = append(f.Ops, FlashOp{Kind: kind, Addr: addr, Length: length})
}

func (f *Flash) check(addr, length uint32) error {
	if uint64(addr)+uint64(length) > uint64(len(f.data)) {
		return errors.Errorf("0x%x + %d exceeds flash size (%d)", addr, length, len(f.data))
	}
	return nil
}

func (f *Flash) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("init", 0, 0)
	return f.InitErr
}

func (f *Flash) EraseChip() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("erase-chip", 0, uint32(len(f.data)))
	for i := range f.data {
		f.data[i] = f.eraseByte
	}
	return nil
}

func (f *Flash) EraseRegion(addr, length uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("erase", addr, length)
	if addr%f.sectorSize != 0 || length%f.sectorSize != 0 {
		return errors.Errorf("erase %d @ 0x%x is not sector-aligned", length, addr)
	}
	if err := f.check(addr, length); err != nil {
		return errors.Trace(err)
	}
	for i := addr; i < addr+length; i++ {
		f.data[i] = f.eraseByte
	}
	return nil
}

func (f *Flash) Write(addr uint32, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("write", addr, uint32(len(data)))
	if err := f.check(addr, uint32(len(data))); err != nil {
		return errors.Trace(err)
	}
	copy(f.data[addr:], data)
	return nil
}

func (f *Flash) Read(addr uint32, buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("read", addr, uint32(len(buf)))
	if err := f.check(addr, uint32(len(buf))); err != nil {
		return errors.Trace(err)
	}
	copy(buf, f.data[addr:])
	return nil
}

// Contents returns a copy of length bytes at addr.
func (f *Flash) Contents(addr, length uint32) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]byte, length)
	copy(res, f.data[addr:])
	return res
}

// Load writes data at addr without recording an op.
func (f *Flash) Load(addr uint32, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.data[addr:], data)
}

// OpsOfKind filters Ops.
func (f *Flash) OpsOfKind(kind string) []FlashOp {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []FlashOp
	for _, op := range f.Ops {
		if op.Kind == kind {
			res = append(res, op)
		}
	}
	return res
}

// ResetOps forgets recorded ops.
func (f *Flash) ResetOps() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ops = nil
}
