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
package pflagenv

import (
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/pflag"

	"github.com/swadge-dev/advusb/common/multierror"
)

// ParseFlagSet fills every flag of fs that was not given on the command
// line from the environment variable named by EnvName, if that variable is
// set and non-empty. Call it after fs.Parse.
func ParseFlagSet(fs *pflag.FlagSet, envPrefix string) error {
	var errs error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		name := EnvName(f.Name, envPrefix)
		v := os.Getenv(name)
		if v == "" {
			return
		}
		if err := f.Value.Set(v); err != nil {
			errs = multierror.Append(errs, errors.Annotatef(err, "%s=%q", name, v))
			return
		}
		f.Changed = true
	})
	return errs
}

// Parse is ParseFlagSet for pflag.CommandLine.
func Parse(envPrefix string) error {
	return ParseFlagSet(pflag.CommandLine, envPrefix)
}

// EnvName maps a flag name to its environment variable: "chunk-size" with
// prefix "ADVUSB_" becomes "ADVUSB_CHUNK_SIZE".
func EnvName(flagName, envPrefix string) string {
	return envPrefix + strings.Replace(strings.ToUpper(flagName), "-", "_", -1)
}
