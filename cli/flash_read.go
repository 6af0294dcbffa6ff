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
	"github.com/swadge-dev/advusb/common/ourio"
)

func flashRead(ctx context.Context) error {
	args, err := commandArgs(3, 3, "<file> <address> <length>")
	if err != nil {
		return errors.Trace(err)
	}
	addr, err := parseNumberArg("address", args[1])
	if err != nil {
		return errors.Trace(err)
	}
	length, err := parseNumberArg("length", args[2])
	if err != nil {
		return errors.Trace(err)
	}
	if length == 0 {
		return errors.NotValidf("zero length")
	}

	// Created before talking to the device so a bad path fails early.
	f, err := ourio.CreateFile(args[0])
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()

	c, err := openClient()
	if err != nil {
		return errors.Trace(err)
	}
	defer c.Close()

	data, res, err := c.ReadFlash(addr, int(length))
	if err != nil {
		return errors.Trace(err)
	}
	if _, err := f.Write(data); err != nil {
		return &ourio.FileError{Op: "write", Path: args[0], Err: err}
	}
	if err := f.Close(); err != nil {
		return &ourio.FileError{Op: "write", Path: args[0], Err: err}
	}
	ourutil.Donef("Read %s", res)
	reportf("Wrote %s", args[0])
	return nil
}
