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
	"encoding/hex"

	"github.com/golang/glog"
	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/common/advproto"
)

// FlashOpts tunes a Client.
type FlashOpts struct {
	ReportSize  int
	ChunkSize   int
	SectorSize  uint32
	MaxAttempts int
	// NoErase skips the erase that precedes an aligned write.
	NoErase  bool
	Progress ProgressFunc
}

// Client talks to one device. It keeps exactly one request in flight and
// is not safe for concurrent use.
type Client struct {
	t    Transport
	opts FlashOpts
}

func NewClient(t Transport, opts *FlashOpts) *Client {
	o := *opts
	p := DefaultProfile()
	if o.ReportSize == 0 {
		o.ReportSize = p.ReportSize
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = p.ChunkSize
	}
	if o.SectorSize == 0 {
		o.SectorSize = p.SectorSize
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = MaxAttempts
	}
	return &Client{t: t, opts: o}
}

func (c *Client) Close() error {
	return errors.Trace(c.t.Close())
}

// send offers req until the transport accepts it or the retry bound is hit.
func (c *Client) send(req *advproto.Request) error {
	frame := req.Encode()
	want := req.AckLen()
	if len(frame) > c.opts.ReportSize {
		return errors.Errorf("%s frame too long (%d > %d)", req.Op, len(frame), c.opts.ReportSize)
	}
	if glog.V(2) {
		glog.Infof(" => %s", hex.EncodeToString(frame))
	}
	ack := NewAck(c.opts.MaxAttempts)
	for {
		n, err := c.t.SetReport(frame)
		if err != nil {
			glog.V(1).Infof("%s: set report: %s", req.Op, err)
		}
		o := ack.Observe(n, want)
		switch o.State {
		case Acked:
			return nil
		case Fatal:
			return &FatalError{Op: req.Op, Count: n, Attempts: o.Attempt, Err: err}
		}
		glog.V(1).Infof("%s: %s, want %d", req.Op, o, want)
	}
}

// get fetches a report from reportID until it carries at least want
// payload bytes, and returns the payload.
func (c *Client) get(op advproto.Op, reportID uint8, want int) ([]byte, error) {
	buf := make([]byte, c.opts.ReportSize)
	ack := NewAck(c.opts.MaxAttempts)
	for {
		for i := range buf {
			buf[i] = 0
		}
		buf[0] = reportID
		n, err := c.t.GetReport(reportID, buf)
		if err != nil {
			glog.V(1).Infof("%s: get report: %s", op, err)
		}
		o := ack.Observe(n, 1+want)
		switch o.State {
		case Acked:
			if glog.V(2) {
				glog.Infof("<=  %s", hex.EncodeToString(buf[:n]))
			}
			return buf[1:n], nil
		case Fatal:
			return nil, &FatalError{Op: op, Get: true, Count: n, Attempts: o.Attempt, Err: err}
		}
		glog.V(1).Infof("%s: %s, want %d", op, o, 1+want)
	}
}

func command(op advproto.Op, value uint32) *advproto.Request {
	return &advproto.Request{Marker: advproto.ReportControl, Op: op, Value: value}
}
