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
	"time"
)

// Progress is passed to a ProgressFunc each time a transfer reaches a new
// whole percent.
type Progress struct {
	Op      string
	Done    int
	Total   int
	Percent int
	Elapsed time.Duration
}

type ProgressFunc func(Progress)

// Result summarizes a completed transfer.
type Result struct {
	Op      string
	Addr    uint32
	Bytes   int
	Elapsed time.Duration
}

// BitsPerSecond is the payload throughput over wall-clock time.
func (r *Result) BitsPerSecond() float64 {
	s := r.Elapsed.Seconds()
	if s <= 0 {
		return 0
	}
	return float64(r.Bytes) * 8 / s
}

func (r *Result) String() string {
	return fmt.Sprintf("%s %d bytes @ 0x%x in %.3f seconds (%.2f kbit/s)",
		r.Op, r.Bytes, r.Addr, r.Elapsed.Seconds(), r.BitsPerSecond()/1000)
}

type progressTracker struct {
	op    string
	total int
	start time.Time
	last  int
	cb    ProgressFunc
}

func newProgressTracker(op string, total int, start time.Time, cb ProgressFunc) *progressTracker {
	return &progressTracker{op: op, total: total, start: start, last: -1, cb: cb}
}

func (pt *progressTracker) update(done int) {
	if pt.cb == nil || pt.total <= 0 {
		return
	}
	pct := int(int64(done) * 100 / int64(pt.total))
	if pct == pt.last {
		return
	}
	pt.last = pct
	pt.cb(Progress{
		Op:      pt.op,
		Done:    done,
		Total:   pt.total,
		Percent: pct,
		Elapsed: time.Since(pt.start),
	})
}
