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
package advproto

import (
	"encoding/binary"

	"github.com/juju/errors"
)

// Request is a decoded set report.
type Request struct {
	Marker uint8
	Op     Op
	// Value is an absolute device address for most ops, a size for
	// scratch-resize and a mode descriptor address for switch-mode.
	Value uint32
	// Length is only carried by flash-erase and flash-read.
	Length uint32
	// Data is the raw tail for write-memory and the declared payload for
	// flash-write.
	Data []byte
}

// Encode lays the request out as a set report. Nothing is padded: the
// returned length is what the device has to acknowledge.
func (r *Request) Encode() []byte {
	var b []byte
	switch r.Op {
	case OpFlashErase, OpFlashRead:
		b = make([]byte, LengthHeaderLen)
		binary.LittleEndian.PutUint32(b[6:], r.Length)
	case OpFlashWrite:
		b = make([]byte, WriteHeaderLen+len(r.Data))
		binary.LittleEndian.PutUint16(b[6:], uint16(len(r.Data)))
		copy(b[WriteHeaderLen:], r.Data)
	case OpWriteMemory:
		b = make([]byte, HeaderLen+len(r.Data))
		copy(b[HeaderLen:], r.Data)
	default:
		b = make([]byte, HeaderLen)
	}
	b[0] = r.Marker
	b[1] = uint8(r.Op)
	binary.LittleEndian.PutUint32(b[2:], r.Value)
	return b
}

// AckLen is the transferred byte count at or above which the transport has
// accepted the encoded request.
func (r *Request) AckLen() int {
	switch r.Op {
	case OpFlashErase, OpFlashRead:
		return LengthHeaderLen
	case OpFlashWrite:
		return WriteHeaderLen + len(r.Data)
	case OpWriteMemory:
		return HeaderLen + len(r.Data)
	}
	return HeaderLen
}

// Decode parses a set report. Frames shorter than MinLen for their opcode
// are rejected; Data aliases frame.
func Decode(frame []byte) (*Request, error) {
	if len(frame) < HeaderLen {
		return nil, errors.Errorf("short frame (%d bytes)", len(frame))
	}
	r := &Request{
		Marker: frame[0],
		Op:     Op(frame[1]),
		Value:  binary.LittleEndian.Uint32(frame[2:]),
	}
	if ml := MinLen(r.Op); len(frame) < ml {
		return nil, errors.Errorf("short %s frame (%d bytes, need %d)", r.Op, len(frame), ml)
	}
	switch r.Op {
	case OpFlashErase, OpFlashRead:
		r.Length = binary.LittleEndian.Uint32(frame[6:])
	case OpFlashWrite:
		if len(frame) < WriteHeaderLen {
			// No length field, nothing to write.
			r.Data = frame[len(frame):]
			break
		}
		n := int(binary.LittleEndian.Uint16(frame[6:]))
		avail := len(frame) - WriteHeaderLen
		if n > avail {
			n = avail
		}
		r.Data = frame[WriteHeaderLen : WriteHeaderLen+n]
	case OpWriteMemory:
		r.Data = frame[HeaderLen:]
	}
	return r, nil
}

// EncodeStatus fills the scratch status block: address then size.
func EncodeStatus(b []byte, addr, size uint32) {
	binary.LittleEndian.PutUint32(b[0:], addr)
	binary.LittleEndian.PutUint32(b[4:], size)
}

// DecodeStatus is the inverse of EncodeStatus.
func DecodeStatus(b []byte) (addr, size uint32, err error) {
	if len(b) < StatusLen {
		return 0, 0, errors.Errorf("short status block (%d bytes)", len(b))
	}
	return binary.LittleEndian.Uint32(b[0:]), binary.LittleEndian.Uint32(b[4:]), nil
}
