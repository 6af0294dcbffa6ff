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
	"fmt"

	"github.com/juju/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/swadge-dev/advusb/cli/flags"
	"github.com/swadge-dev/advusb/common/ourio"
)

// profile prints the effective device profile or saves it to a file that
// can later be passed to --profile.
func profile(ctx context.Context) error {
	args, err := commandArgs(0, 1, "[file]")
	if err != nil {
		return errors.Trace(err)
	}
	p, err := flags.DeviceProfile()
	if err != nil {
		return errors.NewNotValid(err, "device profile")
	}
	if len(args) == 0 {
		data, err := yaml.Marshal(&p)
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Print(string(data))
		return nil
	}
	written, err := ourio.WriteYAMLFileIfDifferent(args[0], &p, 0644)
	if err != nil {
		return errors.Trace(err)
	}
	if written {
		reportf("Wrote %s", args[0])
	} else {
		reportf("%s is up to date", args[0])
	}
	return nil
}
