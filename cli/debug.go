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
	"encoding/hex"
	"fmt"
	"os"

	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/cli/flash/advusb"
	"github.com/swadge-dev/advusb/cli/ourutil"
	"github.com/swadge-dev/advusb/common/ourio"
)

// The commands below use the device's raw memory access. Addresses are
// passed through unchecked.

func peek(ctx context.Context) error {
	args, err := commandArgs(2, 2, "<address> <length>")
	if err != nil {
		return errors.Trace(err)
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
	data, err := c.Peek(addr, int(length))
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Print(hex.Dump(data))
	return nil
}

func poke(ctx context.Context) error {
	args, err := commandArgs(2, 2, "<address> <file>")
	if err != nil {
		return errors.Trace(err)
	}
	addr, err := parseNumberArg("address", args[0])
	if err != nil {
		return errors.Trace(err)
	}
	data, err := ourio.ReadBlob(args[1])
	if err != nil {
		return errors.Trace(err)
	}
	c, err := openClient()
	if err != nil {
		return errors.Trace(err)
	}
	defer c.Close()
	if err := c.Poke(addr, data); err != nil {
		return errors.Trace(err)
	}
	ourutil.Donef("Wrote %d bytes @ 0x%x", len(data), addr)
	return nil
}

func call(ctx context.Context) error {
	args, err := commandArgs(1, 1, "<address>")
	if err != nil {
		return errors.Trace(err)
	}
	addr, err := parseNumberArg("address", args[0])
	if err != nil {
		return errors.Trace(err)
	}
	c, err := openClient()
	if err != nil {
		return errors.Trace(err)
	}
	defer c.Close()
	return errors.Trace(c.Call(addr))
}

func switchMode(ctx context.Context) error {
	args, err := commandArgs(1, 1, "<address>")
	if err != nil {
		return errors.Trace(err)
	}
	addr, err := parseNumberArg("address", args[0])
	if err != nil {
		return errors.Trace(err)
	}
	c, err := openClient()
	if err != nil {
		return errors.Trace(err)
	}
	defer c.Close()
	return errors.Trace(c.SwitchMode(addr))
}

func scratch(ctx context.Context) error {
	args, err := commandArgs(1, 1, "<size> | status | free")
	if err != nil {
		return errors.Trace(err)
	}
	var size uint32
	switch args[0] {
	case "status":
		size = advusb.ScratchStatusQuery
	case "free":
		size = 0
	default:
		if size, err = parseNumberArg("size", args[0]); err != nil {
			return errors.Trace(err)
		}
		if size == 0 || size&0x80000000 != 0 {
			return errors.NotValidf("scratch size %d", size)
		}
	}
	c, err := openClient()
	if err != nil {
		return errors.Trace(err)
	}
	defer c.Close()
	addr, sz, err := c.Scratch(size)
	if err != nil {
		return errors.Trace(err)
	}
	ourutil.Freportf(os.Stdout, "scratch: %d bytes @ 0x%08x", sz, addr)
	return nil
}
