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

	"github.com/swadge-dev/advusb/cli/ourutil"
)

func flashErase(ctx context.Context) error {
	args, err := commandArgs(1, 2, "<address> <length> | all")
	if err != nil {
		return errors.Trace(err)
	}
	if len(args) == 1 {
		if args[0] != "all" {
			return errors.NotValidf("arguments, usage: erase <address> <length> | all")
		}
		c, err := openClient()
		if err != nil {
			return errors.Trace(err)
		}
		defer c.Close()
		reportf("Erasing the whole chip, this may take a while...")
		if err := c.EraseChip(); err != nil {
			return errors.Trace(err)
		}
		ourutil.Donef("Chip erased")
		return nil
	}

	addr, err := parseNumberArg("address", args[0])
	if err != nil {
		return errors.Trace(err)
	}
	length, err := parseNumberArg("length", args[1])
	if err != nil {
		return errors.Trace(err)
	}
	c, err := openClient()
	if err != nil {
		return errors.Trace(err)
	}
	defer c.Close()
	reportf("Erasing %d @ 0x%x...", length, addr)
	if err := c.Erase(addr, length); err != nil {
		return errors.Trace(err)
	}
	ourutil.Donef("Erased %d @ 0x%x", length, addr)
	return nil
}
