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
	"fmt"

	"github.com/swadge-dev/advusb/common/advproto"
)

type CursorKind int

const (
	CursorNone CursorKind = iota
	// CursorMemory reads the device address space at Addr.
	CursorMemory
	// CursorBytes reads a session-owned buffer: the scratch status block or
	// the flash-read immediate buffer.
	CursorBytes
)

// Cursor is what the next control get returns. It references memory, it
// never owns it, and it stays valid until the next command replaces it.
type Cursor struct {
	Kind  CursorKind
	Addr  uint32
	Bytes []byte
}

func MemoryCursor(addr uint32) Cursor {
	return Cursor{Kind: CursorMemory, Addr: addr}
}

func BytesCursor(b []byte) Cursor {
	return Cursor{Kind: CursorBytes, Bytes: b}
}

func (c Cursor) String() string {
	switch c.Kind {
	case CursorMemory:
		return fmt.Sprintf("mem@0x%08x", c.Addr)
	case CursorBytes:
		return fmt.Sprintf("bytes[%d]", len(c.Bytes))
	}
	return "none"
}

// Scratch is the host-controlled staging buffer.
type Scratch struct {
	Addr uint32
	Size uint32
}

// Session is the state a device keeps between requests. There is one per
// device; the transport serializes requests, so nothing here is locked
// except the log ring.
type Session struct {
	Scratch Scratch
	Cursor  Cursor
	Log     *Ring

	status     [advproto.StatusLen]byte
	immediate  [advproto.ImmediateSize]byte
	redirected bool
}

func NewSession() *Session {
	return &Session{Log: NewRing(LogRingSize)}
}

// Redirected reports whether the log sink has been installed.
func (s *Session) Redirected() bool {
	return s.redirected
}
