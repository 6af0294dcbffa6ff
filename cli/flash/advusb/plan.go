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
package advusb

import (
	"fmt"

	"github.com/juju/errors"
)

// Align is the unit transfer lengths are rounded up to.
const Align = 4

// RoundUp rounds n up to a multiple of unit.
func RoundUp(n, unit int) int {
	return (n + unit - 1) / unit * unit
}

// Chunk is one slice of a transfer, relative to Plan.Addr.
type Chunk struct {
	Offset int
	Len    int
}

func (c Chunk) String() string {
	return fmt.Sprintf("[%d, %d)", c.Offset, c.Offset+c.Len)
}

// Plan is the shape of one read or write, fixed before the first report.
type Plan struct {
	Addr      uint32
	Length    int // as requested
	Rounded   int // Length rounded up to Align
	ChunkSize int
}

func NewPlan(addr uint32, length, chunkSize int) (*Plan, error) {
	if length < 0 {
		return nil, errors.Errorf("invalid length: %d", length)
	}
	if chunkSize <= 0 || chunkSize%Align != 0 {
		return nil, errors.Errorf("invalid chunk size: %d", chunkSize)
	}
	rounded := RoundUp(length, Align)
	if uint64(addr)+uint64(rounded) > 1<<32 {
		return nil, errors.Errorf("0x%x + %d is outside the address space", addr, rounded)
	}
	return &Plan{
		Addr:      addr,
		Length:    length,
		Rounded:   rounded,
		ChunkSize: chunkSize,
	}, nil
}

// Chunks covers [0, Rounded) in order, without gaps or overlaps. Every chunk
// but the last is ChunkSize long.
func (p *Plan) Chunks() []Chunk {
	var res []Chunk
	for off := 0; off < p.Rounded; off += p.ChunkSize {
		n := p.Rounded - off
		if n > p.ChunkSize {
			n = p.ChunkSize
		}
		res = append(res, Chunk{Offset: off, Len: n})
	}
	return res
}

// EraseLen is the span to erase before writing: Rounded rounded up to whole
// sectors.
func (p *Plan) EraseLen(sectorSize uint32) uint32 {
	return uint32(RoundUp(p.Rounded, int(sectorSize)))
}

// SectorAligned reports whether the plan starts on a sector boundary.
func (p *Plan) SectorAligned(sectorSize uint32) bool {
	return p.Addr%sectorSize == 0
}
