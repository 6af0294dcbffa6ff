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
package main

import (
	"context"

	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/cli/flags"
	"github.com/swadge-dev/advusb/cli/ourutil"
	"github.com/swadge-dev/advusb/common/ourio"
)

func flashWrite(ctx context.Context) error {
	args, err := commandArgs(2, 2, "<file> <address>")
	if err != nil {
		return errors.Trace(err)
	}
	addr, err := parseNumberArg("address", args[1])
	if err != nil {
		return errors.Trace(err)
	}
	data, err := ourio.ReadBlob(args[0])
	if err != nil {
		return errors.Trace(err)
	}

	c, err := openClient()
	if err != nil {
		return errors.Trace(err)
	}
	defer c.Close()

	res, err := c.WriteFlash(addr, data)
	if err != nil {
		return errors.Trace(err)
	}
	ourutil.Donef("Wrote %s", res)

	if *flags.Verify {
		reportf("Verifying...")
		if err := c.Verify(addr, data); err != nil {
			return errors.Trace(err)
		}
		ourutil.Donef("Verified %d bytes @ 0x%x", len(data), addr)
	}
	return nil
}
