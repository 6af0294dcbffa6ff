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
package advproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLayout(t *testing.T) {
	r := &Request{Marker: ReportControl, Op: OpFlashErase, Value: 0x1000, Length: 4096}
	assert.Equal(t, []byte{0xaa, 0x10, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00}, r.Encode())
	assert.Equal(t, 10, r.AckLen())

	w := &Request{Marker: ReportTerminal, Op: OpFlashWrite, Value: 0x12345678, Data: []byte{1, 2, 3}}
	assert.Equal(t, []byte{0xab, 0x11, 0x78, 0x56, 0x34, 0x12, 0x03, 0x00, 1, 2, 3}, w.Encode())
	assert.Equal(t, 11, w.AckLen())

	m := &Request{Op: OpScratchResize, Value: TopBit}
	assert.Equal(t, []byte{0x00, 0x08, 0x00, 0x00, 0x00, 0x80}, m.Encode())
	assert.Equal(t, HeaderLen, m.AckLen())
}

func TestDecodeMinLen(t *testing.T) {
	cases := []struct {
		frame []byte
		fail  bool
	}{
		{frame: nil, fail: true},
		{frame: []byte{0, 0x05, 1, 2, 3}, fail: true},
		{frame: []byte{0, 0x05, 1, 2, 3, 4}},
		{frame: []byte{0, 0x10, 0, 0, 0, 0, 1, 2, 3}, fail: true},
		{frame: []byte{0, 0x10, 0, 0, 0, 0, 1, 2, 3, 4}},
		{frame: []byte{0, 0x12, 0, 0, 0, 0, 0x80}, fail: true},
		{frame: []byte{0, 0x11, 0, 0, 0, 0}},
		{frame: []byte{0, 0x77, 0, 0, 0, 0}},
	}
	for _, c := range cases {
		r, err := Decode(c.frame)
		if c.fail {
			assert.Errorf(t, err, "frame % x", c.frame)
			assert.Nilf(t, r, "frame % x", c.frame)
		} else {
			require.NoErrorf(t, err, "frame % x", c.frame)
		}
	}
}

func TestDecodeFlashWriteBoundsPayload(t *testing.T) {
	// Declared length larger than what arrived.
	r, err := Decode([]byte{0, 0x11, 0, 0x20, 0, 0, 10, 0, 0xde, 0xad})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2000), r.Value)
	assert.Equal(t, []byte{0xde, 0xad}, r.Data)

	// Padding after the declared payload is not written.
	r, err = Decode([]byte{0, 0x11, 0, 0, 0, 0, 1, 0, 0x42, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x42}, r.Data)

	// Too short for a length field.
	r, err = Decode([]byte{0, 0x11, 0, 0, 0, 0, 1})
	require.NoError(t, err)
	assert.Empty(t, r.Data)
}

func TestDecodeRoundTrip(t *testing.T) {
	in := &Request{Marker: ReportControl, Op: OpFlashRead, Value: 0x2000, Length: 300}
	out, err := Decode(in.Encode())
	require.NoError(t, err)
	assert.Equal(t, in.Op, out.Op)
	assert.Equal(t, in.Value, out.Value)
	assert.Equal(t, in.Length, out.Length)

	in = &Request{Op: OpWriteMemory, Value: 0x3ffb0000, Data: []byte("hello")}
	out, err = Decode(in.Encode())
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out.Data)
}

func TestStatus(t *testing.T) {
	b := make([]byte, StatusLen)
	EncodeStatus(b, 0x3ffc1234, 512)
	addr, size, err := DecodeStatus(b)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x3ffc1234), addr)
	assert.Equal(t, uint32(512), size)

	_, _, err = DecodeStatus(b[:7])
	assert.Error(t, err)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "flash-erase", OpFlashErase.String())
	assert.Equal(t, "op-0x77", Op(0x77).String())
	assert.False(t, Op(0x77).Valid())
	assert.True(t, OpExecute.Valid())
}
