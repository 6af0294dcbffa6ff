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
	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/swadge-dev/advusb/cli/flags"
	"github.com/swadge-dev/advusb/cli/flash/advusb"
	"github.com/swadge-dev/advusb/cli/flash/common"
	"github.com/swadge-dev/advusb/cli/ourutil"
)

func reportf(f string, args ...interface{}) {
	ourutil.Reportf(f, args...)
}

// commandArgs returns the positional arguments after the command name,
// checking that there are between min and max of them.
func commandArgs(min, max int, syntax string) ([]string, error) {
	args := flag.Args()[1:]
	if len(args) < min || len(args) > max {
		return nil, errors.NotValidf("arguments, usage: %s %s", flag.Arg(0), syntax)
	}
	return args, nil
}

func parseNumberArg(what, s string) (uint32, error) {
	v, err := ourutil.ParseNumber(s)
	if err != nil {
		return 0, errors.NewNotValid(err, what)
	}
	return v, nil
}

// openClient opens the device described by the effective profile.
func openClient() (*advusb.Client, error) {
	p, err := flags.DeviceProfile()
	if err != nil {
		return nil, errors.NewNotValid(err, "device profile")
	}
	dev, err := common.OpenHIDDevice(&common.HIDOpts{
		VID:       p.VID,
		PID:       p.PID,
		Serial:    p.Serial,
		Interface: p.Interface,
		Timeout:   *flags.Timeout,
		NoLock:    *flags.NoLock,
	})
	if err != nil {
		if errors.Cause(err) == common.ErrDeviceBusy {
			return nil, errors.Trace(err)
		}
		return nil, &exitError{
			code: exitUSBOpen,
			err:  errors.Annotatef(err, "could not open %04x:%04x", p.VID, p.PID),
		}
	}
	opts := p.FlashOpts()
	opts.NoErase = *flags.NoErase
	opts.Progress = progressPrinter(*flags.ProgressStep)
	return advusb.NewClient(dev, &opts), nil
}

// progressPrinter reports every step percent and at completion.
func progressPrinter(step int) advusb.ProgressFunc {
	if step <= 0 {
		return nil
	}
	next := 0
	return func(p advusb.Progress) {
		if p.Percent < next && p.Percent < 100 {
			return
		}
		reportf("  %s: %3d%% (%d/%d) %.1fs", p.Op, p.Percent, p.Done, p.Total, p.Elapsed.Seconds())
		next = (p.Percent/step + 1) * step
		if p.Percent >= 100 {
			next = 0
		}
	}
}
