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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingDropsNewest(t *testing.T) {
	r := NewRing(8)
	assert.Equal(t, 7, r.Cap())

	n, err := r.Write([]byte("abcdefghij"))
	assert.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, 7, r.Len())
	assert.Equal(t, uint64(3), r.Dropped())

	buf := make([]byte, 4)
	assert.Equal(t, 4, r.Read(buf))
	assert.Equal(t, "abcd", string(buf))

	// Wraps around.
	r.Write([]byte("XYZ12"))
	assert.Equal(t, uint64(5), r.Dropped())
	out := make([]byte, 16)
	n = r.Read(out)
	assert.Equal(t, "efgXYZ1", string(out[:n]))
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, r.Read(out))
}

func TestMessageLimiter(t *testing.T) {
	r := NewRing(LogRingSize)
	msg := bytes.Repeat([]byte{'x'}, MaxLogMessage+100)
	n, err := messageLimiter{r}.Write(msg)
	assert.NoError(t, err)
	assert.Equal(t, len(msg), n)
	assert.Equal(t, MaxLogMessage, r.Len())
}
