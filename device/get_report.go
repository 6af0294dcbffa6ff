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
	"github.com/swadge-dev/advusb/common/advproto"
)

// HandleGet fills buf with the answer to a get report for reportID and
// returns the number of bytes to send back, 0 meaning nothing.
//
// The control endpoint returns len(buf)-1 bytes from the cursor; the
// terminal endpoint installs the log sink on first use and then drains up
// to len(buf)-1 queued log bytes. Byte 0 is always the report ID.
func (d *Dispatcher) HandleGet(reportID uint8, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	switch reportID {
	case advproto.ReportTerminal:
		return d.terminalGet(buf)
	case advproto.ReportControl:
		return d.controlGet(buf)
	}
	return 0
}

func (d *Dispatcher) controlGet(buf []byte) int {
	c := d.s.Cursor
	payload := buf[1:]
	n := 0
	switch c.Kind {
	case CursorNone:
		return 0
	case CursorMemory:
		d.debug.ReadMemory(c.Addr, payload)
		n = len(payload)
	case CursorBytes:
		n = copy(payload, c.Bytes)
	}
	buf[0] = advproto.ReportControl
	return 1 + n
}

func (d *Dispatcher) terminalGet(buf []byte) int {
	s := d.s
	if !s.redirected {
		d.sink.Redirect(messageLimiter{s.Log})
		s.redirected = true
	}
	buf[0] = advproto.ReportTerminal
	return 1 + s.Log.Read(buf[1:])
}
