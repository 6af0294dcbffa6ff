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

import "fmt"

// MaxAttempts bounds how many times a single report is offered.
const MaxAttempts = 10

type AckState int

const (
	Acked AckState = iota
	Retrying
	Fatal
)

func (s AckState) String() string {
	switch s {
	case Acked:
		return "acked"
	case Retrying:
		return "retrying"
	}
	return "fatal"
}

// Outcome is the result of one attempt.
type Outcome struct {
	State   AckState
	Attempt int
	Count   int
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s(%d, %d bytes)", o.State, o.Attempt, o.Count)
}

// Ack tracks attempts for one report. A report is accepted once the
// transport moved at least the expected number of bytes; after Max
// unaccepted attempts the request is fatal.
type Ack struct {
	Max      int
	attempts int
}

func NewAck(max int) *Ack {
	if max <= 0 {
		max = MaxAttempts
	}
	return &Ack{Max: max}
}

func (a *Ack) Observe(count, want int) Outcome {
	a.attempts++
	o := Outcome{Attempt: a.attempts, Count: count}
	switch {
	case count >= want:
		o.State = Acked
	case a.attempts >= a.Max:
		o.State = Fatal
	default:
		o.State = Retrying
	}
	return o
}

// Attempts made so far.
func (a *Ack) Attempts() int {
	return a.attempts
}
