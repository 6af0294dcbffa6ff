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
	"sync"
)

const (
	// LogRingSize is the capacity of the log ring; one slot stays free to
	// tell full from empty.
	LogRingSize = 2048
	// MaxLogMessage bounds a single formatted log message.
	MaxLogMessage = 1023
)

// Ring is a fixed-capacity byte queue fed by log output and drained by the
// terminal endpoint. When full, the newest bytes are dropped and a writer
// never waits for the reader.
type Ring struct {
	// mu only covers index updates and a copy.
	mu      sync.Mutex
	buf     []byte
	head    int // next write
	tail    int // next read
	dropped uint64
}

func NewRing(size int) *Ring {
	if size < 2 {
		size = 2
	}
	return &Ring{buf: make([]byte, size)}
}

func (r *Ring) next(i int) int {
	i++
	if i == len(r.buf) {
		i = 0
	}
	return i
}

// Write queues as much of p as fits. It reports len(p) even when bytes are
// dropped so that log writers never see a short write.
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range p {
		n := r.next(r.head)
		if n == r.tail {
			r.dropped += uint64(len(p) - i)
			break
		}
		r.buf[r.head] = b
		r.head = n
	}
	return len(p), nil
}

// Read drains up to len(p) bytes.
func (r *Ring) Read(p []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for n < len(p) && r.tail != r.head {
		p[n] = r.buf[r.tail]
		r.tail = r.next(r.tail)
		n++
	}
	return n
}

// Len is the number of queued bytes.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (r.head - r.tail + len(r.buf)) % len(r.buf)
}

// Cap is the number of bytes the ring can hold.
func (r *Ring) Cap() int {
	return len(r.buf) - 1
}

// Dropped is the number of bytes lost to overflow so far.
func (r *Ring) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// messageLimiter truncates each write, i.e. each formatted log message,
// to MaxLogMessage bytes before it reaches the ring.
type messageLimiter struct {
	r *Ring
}

func (m messageLimiter) Write(p []byte) (int, error) {
	if len(p) > MaxLogMessage {
		m.r.Write(p[:MaxLogMessage])
		return len(p), nil
	}
	return m.r.Write(p)
}
