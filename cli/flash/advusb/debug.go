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
	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/common/advproto"
)

// The calls below reach the device's raw debug capability. Addresses are
// used as given: nothing checks them, and a bad one crashes the device.

// Poke writes data into device memory at addr.
func (c *Client) Poke(addr uint32, data []byte) error {
	max := c.opts.ReportSize - advproto.HeaderLen
	for off := 0; off < len(data); off += max {
		end := off + max
		if end > len(data) {
			end = len(data)
		}
		req := command(advproto.OpWriteMemory, addr+uint32(off))
		req.Data = data[off:end]
		if err := c.send(req); err != nil {
			return errors.Annotatef(err, "poke %d @ 0x%x", end-off, req.Value)
		}
	}
	return nil
}

// Peek reads length bytes of device memory at addr.
func (c *Client) Peek(addr uint32, length int) ([]byte, error) {
	max := c.opts.ReportSize - 1
	res := make([]byte, 0, length)
	for off := 0; off < length; off += max {
		n := length - off
		if n > max {
			n = max
		}
		a := addr + uint32(off)
		if err := c.send(command(advproto.OpSetReadTarget, a)); err != nil {
			return nil, errors.Annotatef(err, "peek @ 0x%x", a)
		}
		resp, err := c.get(advproto.OpSetReadTarget, advproto.ReportControl, n)
		if err != nil {
			return nil, errors.Annotatef(err, "peek %d @ 0x%x", n, a)
		}
		res = append(res, resp[:n]...)
	}
	return res, nil
}

// Call runs the code at addr on the device.
func (c *Client) Call(addr uint32) error {
	return errors.Annotatef(c.send(command(advproto.OpExecute, addr)), "call 0x%x", addr)
}

// SwitchMode activates the mode described at addr, or the default mode
// when addr is 0.
func (c *Client) SwitchMode(addr uint32) error {
	return errors.Annotatef(c.send(command(advproto.OpSwitchMode, addr)), "switch mode 0x%x", addr)
}

// ScratchStatusQuery is the size that only queries the scratch buffer.
const ScratchStatusQuery = 0xffffffff

// Scratch resizes the device scratch buffer and returns its address and
// size afterwards. 0 frees it, ScratchStatusQuery leaves it alone, and
// sizes below the current one do nothing.
func (c *Client) Scratch(size uint32) (uint32, uint32, error) {
	if err := c.send(command(advproto.OpScratchResize, size)); err != nil {
		return 0, 0, errors.Annotatef(err, "scratch %d", size)
	}
	resp, err := c.get(advproto.OpScratchResize, advproto.ReportControl, advproto.StatusLen)
	if err != nil {
		return 0, 0, errors.Annotatef(err, "scratch status")
	}
	addr, sz, err := advproto.DecodeStatus(resp)
	return addr, sz, errors.Trace(err)
}

// ReadLog drains whatever device log output is queued. The first call
// makes the device start capturing its log.
func (c *Client) ReadLog() ([]byte, error) {
	resp, err := c.get(0, advproto.ReportTerminal, 0)
	if err != nil {
		return nil, errors.Annotatef(err, "read log")
	}
	return append([]byte(nil), resp...), nil
}
