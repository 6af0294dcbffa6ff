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

	"github.com/swadge-dev/advusb/cli/flash/advusb"
	"github.com/swadge-dev/advusb/cli/flash/common"
	"github.com/swadge-dev/advusb/common/ourio"
)

// Process exit codes, compatible with the older flash_test tool.
const (
	exitFailure      = 1
	exitBadArgs      = -1
	exitFileOpen     = -1
	exitOutputCreate = -5
	exitRetryExhaust = -85
	exitVerifyFailed = -86
	exitDeviceBusy   = -93
	exitUSBOpen      = -94
	exitFileRead     = -97
)

// exitError pins an exit code on an error that has no typed cause of its own.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func exitCode(err error) int {
	cause := errors.Cause(err)
	switch e := cause.(type) {
	case *exitError:
		return e.code
	case *advusb.FatalError:
		return exitRetryExhaust
	case *advusb.VerifyError:
		return exitVerifyFailed
	case *ourio.FileError:
		switch e.Op {
		case "read":
			return exitFileRead
		case "create", "write":
			return exitOutputCreate
		}
		return exitFileOpen
	}
	switch {
	case cause == ourio.ErrEmptyFile:
		return exitFileOpen
	case cause == common.ErrDeviceBusy:
		return exitDeviceBusy
	case errors.IsNotValid(err):
		return exitBadArgs
	}
	return exitFailure
}
