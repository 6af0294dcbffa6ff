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
package ourutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	for _, c := range []struct {
		in  string
		out uint32
		ok  bool
	}{
		{"4096", 4096, true},
		{"0x1000", 0x1000, true},
		{"0X2000", 0x2000, true},
		{"0xffffffff", 0xffffffff, true},
		{"0100", 100, true},
		{"01000", 1000, true},
		{"0x0300", 0x300, true},
		{"0b1", 0, false},
		{"0o17", 0, false},
		{"1_000", 0, false},
		{"+5", 0, false},
		{"0x", 0, false},
		{"0x100000000", 0, false},
		{"-1", 0, false},
		{"12k", 0, false},
		{"", 0, false},
	} {
		v, err := ParseNumber(c.in)
		if c.ok {
			assert.NoError(t, err, c.in)
			assert.Equal(t, c.out, v, c.in)
		} else {
			assert.Error(t, err, c.in)
		}
	}
}

func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	old := Output
	Output = &buf
	defer func() { Output = old }()

	Warnf("0x%x is not aligned", 0x1004)
	Reportf("Writing %d @ 0x%x...", 12, 0x1000)

	var out bytes.Buffer
	Freportf(&out, "scratch: %d bytes", 64)
	assert.Equal(t, "scratch: 64 bytes\n", out.String())
	assert.Contains(t, buf.String(), "0x1004 is not aligned")
	assert.Contains(t, buf.String(), "Writing 12 @ 0x1000...\n")
}
