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
package advusb_test

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swadge-dev/advusb/cli/flash/advusb"
	"github.com/swadge-dev/advusb/cli/ourutil"
	"github.com/swadge-dev/advusb/common/advproto"
	"github.com/swadge-dev/advusb/device/emu"
)

func init() {
	ourutil.Output = ioutil.Discard
}

type testRig struct {
	dev *emu.Device
	lb  *emu.Loopback
	c   *advusb.Client
}

func newRig(t *testing.T, cfg emu.Config, opts advusb.FlashOpts) *testRig {
	t.Helper()
	if opts.ReportSize == 0 {
		opts.ReportSize = 144
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = 128
	}
	d := emu.New(cfg)
	lb := emu.NewLoopback(d.Dispatcher)
	return &testRig{dev: d, lb: lb, c: advusb.NewClient(lb, &opts)}
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

func TestWriteFlashErasesAndPads(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	data := pattern(10)

	res, err := r.c.WriteFlash(0x1000, data)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Bytes)
	assert.Equal(t, uint32(0x1000), res.Addr)

	ops := r.dev.Flash.Ops
	require.Len(t, ops, 3)
	assert.Equal(t, emu.FlashOp{Kind: "init"}, ops[0])
	assert.Equal(t, emu.FlashOp{Kind: "erase", Addr: 0x1000, Length: 4096}, ops[1])
	assert.Equal(t, emu.FlashOp{Kind: "write", Addr: 0x1000, Length: 12}, ops[2])

	require.Len(t, r.lb.Sets, 2)
	erase := r.lb.Sets[0]
	assert.Equal(t, byte(advproto.OpFlashErase), erase[1])
	assert.Equal(t, uint32(0x1000), binary.LittleEndian.Uint32(erase[2:6]))
	assert.Equal(t, uint32(4096), binary.LittleEndian.Uint32(erase[6:10]))

	w := r.lb.Sets[1]
	assert.Len(t, w, 8+12)
	assert.Equal(t, byte(advproto.ReportTerminal), w[0])
	assert.Equal(t, byte(advproto.OpFlashWrite), w[1])
	assert.Equal(t, uint16(12), binary.LittleEndian.Uint16(w[6:8]))
	assert.Equal(t, data, w[8:18])
	assert.Equal(t, []byte{0, 0}, w[18:20])

	assert.Equal(t, append(append([]byte{}, data...), 0, 0), r.dev.Flash.Contents(0x1000, 12))
	assert.Equal(t, []byte{0xff, 0xff}, r.dev.Flash.Contents(0x100c, 2))
}

func TestWriteFlashUnalignedDoesNotErase(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	data := pattern(300)

	_, err := r.c.WriteFlash(0x1004, data)
	require.NoError(t, err)
	assert.Empty(t, r.dev.Flash.OpsOfKind("erase"))
	writes := r.dev.Flash.OpsOfKind("write")
	require.Len(t, writes, 3)
	assert.Equal(t, uint32(0x1004), writes[0].Addr)
	assert.Equal(t, uint32(0x1004+256), writes[2].Addr)
	assert.Equal(t, uint32(44), writes[2].Length)
	assert.Equal(t, data, r.dev.Flash.Contents(0x1004, 300))
}

func TestWriteFlashNoErase(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{NoErase: true})
	_, err := r.c.WriteFlash(0x2000, pattern(16))
	require.NoError(t, err)
	assert.Empty(t, r.dev.Flash.OpsOfKind("erase"))
}

func TestWriteFlashSpansSectors(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	data := pattern(4097)
	_, err := r.c.WriteFlash(0x10000, data)
	require.NoError(t, err)
	assert.Equal(t, []emu.FlashOp{{Kind: "erase", Addr: 0x10000, Length: 8192}}, r.dev.Flash.OpsOfKind("erase"))
	assert.Equal(t, data, r.dev.Flash.Contents(0x10000, 4097))
}

func TestReadFlashChunks(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	want := pattern(300)
	r.dev.Flash.Load(0x2000, want)

	got, res, err := r.c.ReadFlash(0x2000, 300)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 300, res.Bytes)

	var lens []uint32
	for _, s := range r.lb.Sets {
		require.Equal(t, byte(advproto.OpFlashRead), s[1])
		lens = append(lens, binary.LittleEndian.Uint32(s[6:10]))
	}
	assert.Equal(t, []uint32{128, 128, 44}, lens)
	assert.Equal(t, 3, r.lb.Gets)
}

func TestReadFlashTruncatesToLength(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	want := pattern(301)
	r.dev.Flash.Load(0x3000, want)

	got, _, err := r.c.ReadFlash(0x3000, 301)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	last := r.lb.Sets[len(r.lb.Sets)-1]
	assert.Equal(t, uint32(48), binary.LittleEndian.Uint32(last[6:10]))
}

func TestRoundTrip(t *testing.T) {
	for _, chunk := range []int{4, 64, 128} {
		r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{ChunkSize: chunk})
		data := pattern(1000)
		_, err := r.c.WriteFlash(0x20000, data)
		require.NoError(t, err)
		got, _, err := r.c.ReadFlash(0x20000, len(data))
		require.NoError(t, err)
		assert.Equal(t, data, got, "chunk %d", chunk)
	}
}

func TestSendGivesUpAfterMaxAttempts(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	r.lb.NakSets = -1

	err := r.c.Erase(0x1000, 4096)
	require.Error(t, err)
	assert.True(t, advusb.IsFatal(err))
	assert.Len(t, r.lb.Sets, advusb.MaxAttempts)
	fe := errors.Cause(err).(*advusb.FatalError)
	assert.Equal(t, advproto.OpFlashErase, fe.Op)
	assert.Equal(t, 9, fe.Count)
	assert.Equal(t, advusb.MaxAttempts, fe.Attempts)
	assert.False(t, fe.Get)
	assert.Contains(t, err.Error(), "flash-erase")
	assert.Empty(t, r.dev.Flash.Ops)
}

// nakAfter delivers the first ok set reports and refuses all later ones.
type nakAfter struct {
	*emu.Loopback
	ok int
}

func (n *nakAfter) SetReport(report []byte) (int, error) {
	if len(n.Sets) == n.ok {
		n.NakSets = -1
	}
	return n.Loopback.SetReport(report)
}

func TestWriteFlashStopsAtFatalChunk(t *testing.T) {
	d := emu.New(emu.DefaultConfig())
	// Erase and the first two chunks go through.
	tr := &nakAfter{Loopback: emu.NewLoopback(d.Dispatcher), ok: 3}
	c := advusb.NewClient(tr, &advusb.FlashOpts{ReportSize: 144, ChunkSize: 128})

	_, err := c.WriteFlash(0x20000, pattern(1000))
	require.Error(t, err)
	assert.True(t, advusb.IsFatal(err))

	// The tenth refusal of the third chunk is the last report offered.
	require.Len(t, tr.Sets, 3+advusb.MaxAttempts)
	last := tr.Sets[len(tr.Sets)-1]
	assert.Equal(t, uint32(0x20000+256), binary.LittleEndian.Uint32(last[2:6]))
	for _, s := range tr.Sets[3:] {
		assert.Equal(t, last, s)
	}

	writes := d.Flash.OpsOfKind("write")
	require.Len(t, writes, 2)
	assert.Equal(t, uint32(0x20000+128), writes[1].Addr)
	for _, op := range d.Flash.Ops {
		assert.True(t, op.Addr < 0x20000+256, "%s", op)
	}
	assert.Equal(t, 0, tr.Gets)
}

func TestReadFlashStopsAtFatalChunk(t *testing.T) {
	d := emu.New(emu.DefaultConfig())
	tr := &nakAfter{Loopback: emu.NewLoopback(d.Dispatcher), ok: 1}
	c := advusb.NewClient(tr, &advusb.FlashOpts{ReportSize: 144, ChunkSize: 128})

	_, _, err := c.ReadFlash(0x2000, 300)
	require.Error(t, err)
	assert.True(t, advusb.IsFatal(err))
	require.Len(t, tr.Sets, 1+advusb.MaxAttempts)
	assert.Equal(t, 1, tr.Gets)
	assert.Len(t, d.Flash.OpsOfKind("read"), 1)
}

func TestSendRecoversFromNaks(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	r.lb.NakSets = advusb.MaxAttempts - 1

	require.NoError(t, r.c.Erase(0x1000, 4096))
	assert.Len(t, r.lb.Sets, advusb.MaxAttempts)
	for _, s := range r.lb.Sets {
		assert.Equal(t, r.lb.Sets[0], s)
	}
	assert.Len(t, r.dev.Flash.OpsOfKind("erase"), 1)
}

func TestGetRetries(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	want := pattern(64)
	r.dev.Flash.Load(0, want)

	r.lb.NakGets = 3
	got, _, err := r.c.ReadFlash(0, 64)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 4, r.lb.Gets)

	r.lb.NakGets = -1
	r.lb.Gets = 0
	_, _, err = r.c.ReadFlash(0, 64)
	require.Error(t, err)
	fe, ok := errors.Cause(err).(*advusb.FatalError)
	require.True(t, ok)
	assert.True(t, fe.Get)
	assert.Equal(t, advusb.MaxAttempts, r.lb.Gets)
	assert.Contains(t, err.Error(), "getting")
}

func TestEraseAlignment(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	for _, c := range []struct{ addr, length uint32 }{
		{0x1001, 4096}, {0x1000, 100}, {0x1000, 0},
	} {
		err := r.c.Erase(c.addr, c.length)
		assert.True(t, errors.IsNotValid(err), "%d @ 0x%x", c.length, c.addr)
	}
	assert.Empty(t, r.lb.Sets)
}

func TestEraseChip(t *testing.T) {
	cfg := emu.DefaultConfig()
	cfg.EraseByte = 0
	r := newRig(t, cfg, advusb.FlashOpts{})
	r.dev.Flash.Load(0x5000, pattern(16))

	require.NoError(t, r.c.EraseChip())
	assert.Len(t, r.dev.Flash.OpsOfKind("erase-chip"), 1)
	assert.Equal(t, make([]byte, 16), r.dev.Flash.Contents(0x5000, 16))
}

func TestProgress(t *testing.T) {
	var seen []advusb.Progress
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{
		Progress: func(p advusb.Progress) { seen = append(seen, p) },
	})
	_, _, err := r.c.ReadFlash(0, 300)
	require.NoError(t, err)

	var pcts []int
	for _, p := range seen {
		assert.Equal(t, "read", p.Op)
		assert.Equal(t, 300, p.Total)
		pcts = append(pcts, p.Percent)
	}
	assert.Equal(t, []int{42, 85, 100}, pcts)

	seen = nil
	_, err = r.c.WriteFlash(0x1000, pattern(40))
	require.NoError(t, err)
	require.NotEmpty(t, seen)
	assert.Equal(t, 100, seen[len(seen)-1].Percent)
	assert.Equal(t, 40, seen[len(seen)-1].Done)
}

func TestVerify(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	data := pattern(100)
	_, err := r.c.WriteFlash(0x4000, data)
	require.NoError(t, err)
	require.NoError(t, r.c.Verify(0x4000, data))

	r.dev.Flash.Load(0x4000+50, []byte{0xee})
	err = r.c.Verify(0x4000, data)
	require.Error(t, err)
	assert.True(t, advusb.IsVerifyError(err))
	ve := errors.Cause(err).(*advusb.VerifyError)
	assert.Equal(t, 50, ve.Offset)
	assert.Contains(t, ve.Diff, "-00000030")
	assert.Contains(t, ve.Diff, "+00000030")
	assert.Contains(t, err.Error(), "0x4032")
}

func TestPeekPoke(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	data := pattern(300)

	require.NoError(t, r.c.Poke(0x3ffc0000, data))
	// 144 byte reports carry 138 bytes of memory each.
	assert.Len(t, r.lb.Sets, 3)

	got, err := r.c.Peek(0x3ffc0000, 300)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	buf := make([]byte, 300)
	r.dev.Memory.ReadMemory(0x3ffc0000, buf)
	assert.Equal(t, data, buf)
}

func TestPeekWithoutDebugCapability(t *testing.T) {
	cfg := emu.DefaultConfig()
	cfg.NoDebug = true
	r := newRig(t, cfg, advusb.FlashOpts{})

	_, err := r.c.Peek(0x3ffc0000, 4)
	assert.True(t, advusb.IsFatal(err))
}

func TestCallAndSwitchMode(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})
	called := 0
	r.dev.Memory.Bind(0x40080000, func() { called++ })

	require.NoError(t, r.c.Call(0x40080000))
	assert.Equal(t, 1, called)

	require.NoError(t, r.c.SwitchMode(0x3ffc1000))
	assert.Equal(t, uint32(0x3ffc1000), r.dev.Modes.Current)
	require.NoError(t, r.c.SwitchMode(0))
	assert.Equal(t, uint32(0), r.dev.Modes.Current)
	assert.Equal(t, 2, r.dev.Modes.Switches)
}

func TestScratch(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})

	addr, size, err := r.c.Scratch(advusb.ScratchStatusQuery)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), addr)
	assert.Equal(t, uint32(0), size)

	addr, size, err = r.c.Scratch(64)
	require.NoError(t, err)
	assert.NotZero(t, addr)
	assert.Equal(t, uint32(64), size)

	// Shrinking is ignored.
	a2, size, err := r.c.Scratch(16)
	require.NoError(t, err)
	assert.Equal(t, addr, a2)
	assert.Equal(t, uint32(64), size)

	addr, size, err = r.c.Scratch(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), addr)
	assert.Equal(t, uint32(0), size)
}

func TestReadLog(t *testing.T) {
	r := newRig(t, emu.DefaultConfig(), advusb.FlashOpts{})

	// Nothing is captured before the first poll.
	r.dev.Log.Info("early")
	data, err := r.c.ReadLog()
	require.NoError(t, err)
	assert.Empty(t, data)

	r.dev.Log.Info("hello from the device")
	var out bytes.Buffer
	for i := 0; i < 5; i++ {
		data, err := r.c.ReadLog()
		require.NoError(t, err)
		out.Write(data)
	}
	assert.Contains(t, out.String(), "hello from the device")
	assert.NotContains(t, out.String(), "early")
}
