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
	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/device"
)

// Loopback delivers reports straight to a dispatcher, standing in for the
// USB transport. It can also refuse to acknowledge reports.
type Loopback struct {
	D *device.Dispatcher

	// NakSets is the number of upcoming set reports to drop while reporting
	// one byte short. -1 drops all of them.
	NakSets int
	// NakGets is the same for get reports, which then come back empty.
	NakGets int

	// Sets holds a copy of every set report offered, delivered or not.
	Sets   [][]byte
	Gets   int
	closed bool
}

func NewLoopback(d *device.Dispatcher) *Loopback {
	return &Loopback{D: d}
}

func nak(n *int) bool {
	switch {
	case *n < 0:
		return true
	case *n > 0:
		*n--
		return true
	}
	return false
}

func (l *Loopback) SetReport(report []byte) (int, error) {
	if l.closed {
		return 0, errors.New("closed")
	}
	l.Sets = append(l.Sets, append([]byte(nil), report...))
	if nak(&l.NakSets) {
		return len(report) - 1, nil
	}
	l.D.HandleSet(report)
	return len(report), nil
}

func (l *Loopback) GetReport(reportID uint8, buf []byte) (int, error) {
	if l.closed {
		return 0, errors.New("closed")
	}
	l.Gets++
	if nak(&l.NakGets) {
		return 0, nil
	}
	return l.D.HandleGet(reportID, buf), nil
}

func (l *Loopback) Close() error {
	l.closed = true
	return nil
}
