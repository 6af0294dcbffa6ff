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
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/juju/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/swadge-dev/advusb/cli/ourutil"
)

// Verify reads back len(want) bytes at addr and compares them with want.
func (c *Client) Verify(addr uint32, want []byte) error {
	ourutil.Reportf("Verifying %d @ 0x%x...", len(want), addr)
	saved := c.opts.Progress
	c.opts.Progress = nil
	got, _, err := c.ReadFlash(addr, len(want))
	c.opts.Progress = saved
	if err != nil {
		return errors.Annotatef(err, "verify")
	}
	if bytes.Equal(got, want) {
		return nil
	}
	off := 0
	for off < len(want) && got[off] == want[off] {
		off++
	}
	return &VerifyError{Addr: addr, Offset: off, Diff: hexDiff(want, got)}
}

// hexDiff renders the lines of a hex dump that differ between want and
// got, "-" for expected and "+" for actual.
func hexDiff(want, got []byte) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(hex.Dump(want), hex.Dump(got))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var sb strings.Builder
	for _, d := range diffs {
		prefix := ""
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l != "" {
				sb.WriteString(prefix + l)
			}
		}
	}
	return sb.String()
}
