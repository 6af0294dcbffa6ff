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
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/cli/ourutil"
	"github.com/swadge-dev/advusb/common/advproto"
)

// Erase erases length bytes at addr. Both must be sector aligned.
func (c *Client) Erase(addr, length uint32) error {
	if ss := c.opts.SectorSize; addr%ss != 0 || length%ss != 0 || length == 0 {
		return errors.NotValidf("erase %d @ 0x%x with %d byte sectors", length, addr, ss)
	}
	req := command(advproto.OpFlashErase, addr)
	req.Length = length
	return errors.Annotatef(c.send(req), "erase %d @ 0x%x", length, addr)
}

// EraseChip erases the whole flash.
func (c *Client) EraseChip() error {
	req := command(advproto.OpFlashErase, 0)
	req.Length = advproto.TopBit
	return errors.Annotatef(c.send(req), "erase chip")
}

// WriteFlash writes data at addr. data is zero-padded to a multiple of
// Align. If addr is sector aligned the covered sectors are erased first;
// otherwise nothing is erased and a warning is printed.
func (c *Client) WriteFlash(addr uint32, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, errors.Errorf("no data to write")
	}
	plan, err := NewPlan(addr, len(data), c.opts.ChunkSize)
	if err != nil {
		return nil, errors.Trace(err)
	}
	blob := make([]byte, plan.Rounded)
	copy(blob, data)

	start := time.Now()
	switch {
	case c.opts.NoErase:
	case !plan.SectorAligned(c.opts.SectorSize):
		ourutil.Warnf("WARNING: 0x%x is not aligned to a %d byte sector, NOT erasing before writing",
			addr, c.opts.SectorSize)
	default:
		eraseLen := plan.EraseLen(c.opts.SectorSize)
		ourutil.Reportf("Erasing %d @ 0x%x...", eraseLen, addr)
		if err := c.Erase(addr, eraseLen); err != nil {
			return nil, errors.Trace(err)
		}
	}

	ourutil.Reportf("Writing %d @ 0x%x...", plan.Rounded, addr)
	pt := newProgressTracker("write", plan.Rounded, start, c.opts.Progress)
	for _, ch := range plan.Chunks() {
		req := &advproto.Request{
			Marker: advproto.ReportTerminal,
			Op:     advproto.OpFlashWrite,
			Value:  addr + uint32(ch.Offset),
			Data:   blob[ch.Offset : ch.Offset+ch.Len],
		}
		glog.V(3).Infof("write chunk %s @ 0x%x", ch, req.Value)
		if err := c.send(req); err != nil {
			return nil, errors.Annotatef(err, "write %d @ 0x%x", ch.Len, req.Value)
		}
		pt.update(ch.Offset + ch.Len)
	}
	return &Result{Op: "write", Addr: addr, Bytes: len(data), Elapsed: time.Since(start)}, nil
}

// ReadFlash reads length bytes at addr. The device is asked for whole
// Align units; the result is cut back to length.
func (c *Client) ReadFlash(addr uint32, length int) ([]byte, *Result, error) {
	plan, err := NewPlan(addr, length, c.opts.ChunkSize)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	start := time.Now()
	data := make([]byte, plan.Rounded)
	pt := newProgressTracker("read", plan.Rounded, start, c.opts.Progress)
	for _, ch := range plan.Chunks() {
		req := command(advproto.OpFlashRead, addr+uint32(ch.Offset))
		req.Length = uint32(ch.Len)
		glog.V(3).Infof("read chunk %s @ 0x%x", ch, req.Value)
		if err := c.send(req); err != nil {
			return nil, nil, errors.Annotatef(err, "read %d @ 0x%x", ch.Len, req.Value)
		}
		resp, err := c.get(advproto.OpFlashRead, advproto.ReportControl, ch.Len)
		if err != nil {
			return nil, nil, errors.Annotatef(err, "read %d @ 0x%x", ch.Len, req.Value)
		}
		copy(data[ch.Offset:], resp[:ch.Len])
		pt.update(ch.Offset + ch.Len)
	}
	return data[:length], &Result{Op: "read", Addr: addr, Bytes: length, Elapsed: time.Since(start)}, nil
}
