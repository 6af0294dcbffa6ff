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

	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/common/advproto"
)

// FatalError ends a transfer: a report was not accepted within the retry
// bound.
type FatalError struct {
	Op       advproto.Op
	Get      bool
	Count    int
	Attempts int
	Err      error
}

func (e *FatalError) Error() string {
	dir := "sending"
	if e.Get {
		dir = "getting"
	}
	s := fmt.Sprintf("error %s feature report on command %s (0x%02x) (%d) after %d attempts",
		dir, e.Op, uint8(e.Op), e.Count, e.Attempts)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// IsFatal reports whether err was caused by an exhausted retry bound.
func IsFatal(err error) bool {
	_, ok := errors.Cause(err).(*FatalError)
	return ok
}

// VerifyError is returned when read-back data differs from what was written.
type VerifyError struct {
	Addr   uint32
	Offset int
	Diff   string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("verification failed at 0x%x (offset %d):\n%s", e.Addr+uint32(e.Offset), e.Offset, e.Diff)
}

func IsVerifyError(err error) bool {
	_, ok := errors.Cause(err).(*VerifyError)
	return ok
}
