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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/juju/errors"
)

var (
	// Output is where user-facing messages go.
	Output io.Writer = os.Stderr

	warnColor = color.New(color.FgYellow)
	doneColor = color.New(color.FgGreen)
)

func Reportf(f string, args ...interface{}) {
	Freportf(Output, f, args...)
}

// Freportf reports to logFile instead of Output, e.g. command results meant for
// stdout.
func Freportf(logFile io.Writer, f string, args ...interface{}) {
	fmt.Fprintf(logFile, f+"\n", args...)
	glog.Infof(f, args...)
}

// Warnf reports something the user should look at but that does not stop
// the operation.
func Warnf(f string, args ...interface{}) {
	warnColor.Fprintf(Output, f+"\n", args...)
	glog.Warningf(f, args...)
}

// Donef reports successful completion.
func Donef(f string, args ...interface{}) {
	doneColor.Fprintf(Output, f+"\n", args...)
	glog.Infof(f, args...)
}

// ParseNumber accepts decimal or 0x-prefixed hex. A leading zero does not
// mean octal.
func ParseNumber(s string) (uint32, error) {
	base, digits := 10, s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base, digits = 16, s[2:]
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, errors.Errorf("invalid number %q", s)
	}
	return uint32(v), nil
}
