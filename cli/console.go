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
	"io"
	"os"
	"time"

	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/cli/flags"
)

type logReader interface {
	ReadLog() ([]byte, error)
}

// console copies the device log to stdout. The first poll makes the device
// start capturing its log output.
func console(ctx context.Context) error {
	if _, err := commandArgs(0, 0, ""); err != nil {
		return errors.Trace(err)
	}
	c, err := openClient()
	if err != nil {
		return errors.Trace(err)
	}
	defer c.Close()
	return errors.Trace(pollLog(ctx, c, *flags.ConsolePolls, *flags.ConsoleInterval, os.Stdout))
}

// pollLog polls the log polls times, or until ctx is done if polls is 0.
// An empty poll waits interval before the next one.
func pollLog(ctx context.Context, lr logReader, polls int, interval time.Duration, w io.Writer) error {
	for i := 0; polls <= 0 || i < polls; i++ {
		if ctx.Err() != nil {
			return nil
		}
		data, err := lr.ReadLog()
		if err != nil {
			return errors.Trace(err)
		}
		if len(data) > 0 {
			if _, err := w.Write(data); err != nil {
				return errors.Trace(err)
			}
			// More may be queued, poll again right away.
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
	return nil
}
