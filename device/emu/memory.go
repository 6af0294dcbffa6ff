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
// Package emu emulates the hardware behind a device.Dispatcher: a sparse
// address space with a heap, a NOR-style flash chip and a mode switcher.
// Loopback wires the result to a host client as if it were USB.
package emu

import (
	"sort"
	"sync"
)

const pageSize = 4096

const (
	DefaultHeapBase = 0x3ffb0000
	DefaultHeapSize = 0x00040000
)

// Memory is a sparse 32-bit address space. Unmapped reads return zeroes.
// It implements device.DebugCapability and device.Allocator.
type Memory struct {
	mu    sync.Mutex
	pages map[uint32]*[pageSize]byte

	heapBase, heapEnd, brk uint32
	blocks                 map[uint32]uint32

	funcs  map[uint32]func()
	Faults []uint32
}

func NewMemory(heapBase, heapSize uint32) *Memory {
	return &Memory{
		pages:    make(map[uint32]*[pageSize]byte),
		heapBase: heapBase,
		heapEnd:  heapBase + heapSize,
		brk:      heapBase,
		blocks:   make(map[uint32]uint32),
		funcs:    make(map[uint32]func()),
	}
}

func (m *Memory) page(addr uint32, create bool) *[pageSize]byte {
	base := addr &^ (pageSize - 1)
	p := m.pages[base]
	if p == nil && create {
		p = new([pageSize]byte)
		m.pages[base] = p
	}
	return p
}

func (m *Memory) write(addr uint32, data []byte) {
	for len(data) > 0 {
		p := m.page(addr, true)
		off := addr & (pageSize - 1)
		n := copy(p[off:], data)
		data = data[n:]
		addr += uint32(n)
	}
}

func (m *Memory) read(addr uint32, buf []byte) {
	for len(buf) > 0 {
		off := addr & (pageSize - 1)
		n := pageSize - int(off)
		if n > len(buf) {
			n = len(buf)
		}
		if p := m.page(addr, false); p != nil {
			copy(buf[:n], p[off:])
		} else {
			for i := range buf[:n] {
				buf[i] = 0
			}
		}
		buf = buf[n:]
		addr += uint32(n)
	}
}

func (m *Memory) WriteMemory(addr uint32, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.write(addr, data)
}

func (m *Memory) ReadMemory(addr uint32, buf []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.read(addr, buf)
}

// Bind makes Execute(addr) call fn.
func (m *Memory) Bind(addr uint32, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs[addr] = fn
}

// Execute runs the function bound at addr. Anything else is recorded as a
// fault, which on real hardware would have crashed the device.
func (m *Memory) Execute(addr uint32) {
	m.mu.Lock()
	fn := m.funcs[addr]
	if fn == nil {
		m.Faults = append(m.Faults, addr)
	}
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Realloc is a bump allocator: every call hands out a fresh, 4-byte aligned
// block and copies the old contents over. It returns 0 when the heap is
// exhausted.
func (m *Memory) Realloc(addr, size uint32) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := (m.brk + 3) &^ 3
	if size > m.heapEnd-start {
		return 0
	}
	m.brk = start + size
	if old, ok := m.blocks[addr]; ok && addr != 0 {
		n := old
		if n > size {
			n = size
		}
		buf := make([]byte, n)
		m.read(addr, buf)
		m.write(start, buf)
		delete(m.blocks, addr)
	}
	m.blocks[start] = size
	return start
}

func (m *Memory) Free(addr uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blocks, addr)
}

// Blocks lists live heap allocations by address.
func (m *Memory) Blocks() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []uint32
	for a := range m.blocks {
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}
