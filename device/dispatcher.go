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
	"io/ioutil"

	"github.com/sirupsen/logrus"

	"github.com/swadge-dev/advusb/common/advproto"
)

// Dispatcher applies set reports to a Session and answers get reports.
// HandleSet and HandleGet run to completion without waiting on anything but
// the collaborators they call, and must not be called concurrently.
type Dispatcher struct {
	s     *Session
	alloc Allocator
	flash *FlashShim
	modes ModeSwitcher
	debug DebugCapability
	sink  LogSink
	log   *logrus.Logger
}

type Option func(*Dispatcher)

// WithUnsafeDebug enables write-memory, execute and memory read cursors.
// See DebugCapability for what that entails.
func WithUnsafeDebug(c DebugCapability) Option {
	return func(d *Dispatcher) {
		d.debug = c
	}
}

func WithAllocator(a Allocator) Option {
	return func(d *Dispatcher) {
		d.alloc = a
	}
}

func WithFlash(drv FlashDriver) Option {
	return func(d *Dispatcher) {
		d.flash = NewFlashShim(drv)
	}
}

func WithModeSwitcher(m ModeSwitcher) Option {
	return func(d *Dispatcher) {
		d.modes = m
	}
}

// WithLogger sets the device logger. Unless WithLogSink says otherwise, this
// is also the logger the terminal endpoint captures.
func WithLogger(l *logrus.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

func WithLogSink(s LogSink) Option {
	return func(d *Dispatcher) {
		d.sink = s
	}
}

func NewDispatcher(s *Session, opts ...Option) *Dispatcher {
	d := &Dispatcher{s: s}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logrus.New()
		d.log.Out = ioutil.Discard
	}
	if d.sink == nil {
		d.sink = LogrusSink{Logger: d.log}
	}
	return d
}

func (d *Dispatcher) Session() *Session {
	return d.s
}

// Logger is the device logger.
func (d *Dispatcher) Logger() *logrus.Logger {
	return d.log
}

// HandleSet applies one set report. Malformed frames, unknown opcodes and
// frames for capabilities this device does not have are dropped without
// touching the session. A failed flash-read clears the cursor.
func (d *Dispatcher) HandleSet(frame []byte) {
	req, err := advproto.Decode(frame)
	if err != nil {
		d.log.Debugf("dropped: %s", err)
		return
	}
	if !req.Op.Valid() {
		d.log.Debugf("unknown opcode 0x%02x", uint8(req.Op))
		return
	}
	s := d.s
	switch req.Op {
	case advproto.OpWriteMemory:
		if d.debug == nil {
			d.log.Debugf("write-memory: no debug capability")
			return
		}
		d.log.Debugf("writing %d into 0x%08x", len(req.Data), req.Value)
		d.debug.WriteMemory(req.Value, req.Data)

	case advproto.OpSetReadTarget:
		if d.debug == nil {
			d.log.Debugf("set-read-target: no debug capability")
			return
		}
		s.Cursor = MemoryCursor(req.Value)

	case advproto.OpExecute:
		if d.debug == nil {
			d.log.Debugf("execute: no debug capability")
			return
		}
		d.log.Debugf("executing 0x%08x (scratch 0x%08x)", req.Value, s.Scratch.Addr)
		d.debug.Execute(req.Value)

	case advproto.OpSwitchMode:
		if d.modes == nil {
			return
		}
		d.log.Debugf("mode value 0x%08x", req.Value)
		if req.Value == 0 {
			d.modes.SwitchToDefault()
		} else {
			d.modes.Override(req.Value)
		}

	case advproto.OpScratchResize:
		d.resizeScratch(req.Value)

	case advproto.OpFlashErase:
		if d.flash == nil {
			return
		}
		if err := d.flash.Erase(req.Value, req.Length); err != nil {
			d.log.Errorf("%s", err)
		}

	case advproto.OpFlashWrite:
		if d.flash == nil {
			return
		}
		if err := d.flash.Write(req.Value, req.Data); err != nil {
			d.log.Errorf("%s", err)
		}

	case advproto.OpFlashRead:
		if d.flash == nil {
			return
		}
		n := req.Length
		if n > advproto.ImmediateSize {
			n = advproto.ImmediateSize
		}
		buf := s.immediate[:n]
		if err := d.flash.Read(req.Value, buf); err != nil {
			// Nothing to return: the host sees an empty get and retries.
			d.log.Errorf("%s", err)
			s.Cursor = Cursor{}
			return
		}
		s.Cursor = BytesCursor(buf)

	}
}

// resizeScratch implements scratch-resize. A size with the top bit set only
// reports; 0 frees; anything larger than the current size reallocates to
// exactly that size; smaller sizes leave the buffer alone.
func (d *Dispatcher) resizeScratch(size uint32) {
	s := d.s
	d.log.Debugf("allocating %d (current 0x%08x / %d)", int32(size), s.Scratch.Addr, s.Scratch.Size)
	if size&advproto.TopBit == 0 && d.alloc != nil {
		if size > s.Scratch.Size {
			if addr := d.alloc.Realloc(s.Scratch.Addr, size); addr != 0 {
				s.Scratch = Scratch{Addr: addr, Size: size}
			} else {
				d.log.Errorf("scratch: cannot allocate %d", size)
			}
		}
		if size == 0 {
			if s.Scratch.Addr != 0 {
				d.alloc.Free(s.Scratch.Addr)
			}
			s.Scratch = Scratch{}
		}
	}
	advproto.EncodeStatus(s.status[:], s.Scratch.Addr, s.Scratch.Size)
	s.Cursor = BytesCursor(s.status[:])
}
