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
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/swadge-dev/advusb/common/pflagenv"
	"github.com/swadge-dev/advusb/version"
)

const (
	envPrefix = "ADVUSB_"
)

var (
	verbose     = flag.Bool("verbose", false, "Verbose output")
	versionFlag = flag.Bool("version", false, "Print version and exit")
	helpFull    = flag.Bool("helpfull", false, "Show full help, including advanced flags")

	extendedMode = false
)

var (
	commands = []command{
		{"write", flashWrite, `Write a file to flash: write <file> <address>`, nil, []string{"verify", "no-erase", "chunk-size", "progress-step"}, false},
		{"read", flashRead, `Read flash to a file: read <file> <address> <length>`, nil, []string{"chunk-size", "progress-step"}, false},
		{"erase", flashErase, `Erase flash: erase <address> <length> | all`, nil, []string{"sector-size"}, false},
		{"console", console, `Print the device log`, nil, []string{"console-polls"}, false},
		{"profile", profile, `Print the effective device profile, or save it: profile [file]`, nil, []string{"profile"}, false},
	}
	// These commands are only available when invoked with -X
	extendedCommands = []command{
		{"peek", peek, `Read device memory: peek <address> <length>`, nil, nil, true},
		{"poke", poke, `Write a file to device memory: poke <address> <file>`, nil, nil, true},
		{"call", call, `Run code on the device: call <address>`, nil, nil, true},
		{"mode", switchMode, `Switch device mode: mode <address>, 0 for the default mode`, nil, nil, true},
		{"scratch", scratch, `Manage the device scratch buffer: scratch <size> | status | free`, nil, nil, true},
	}
)

type command struct {
	name     string
	handler  handler
	short    string
	required []string
	optional []string
	extended bool
}

type handler func(ctx context.Context) error

func run(ctx context.Context) error {
	for _, c := range commands {
		if c.name == flag.Arg(0) {
			if err := checkFlags(c.required); err != nil {
				return errors.NewNotValid(err, "")
			}
			return errors.Trace(c.handler(ctx))
		}
	}
	usage()
	if flag.NArg() == 0 {
		return nil
	}
	return errors.NotValidf("command %q", flag.Arg(0))
}

func main() {
	// -X, if given, must be the first arg.
	if len(os.Args) > 1 && os.Args[1] == "-X" {
		os.Args = append(os.Args[:1], os.Args[2:]...)
		extendedMode = true
		commands = append(commands, extendedCommands...)
	}
	initFlags()
	flag.Parse()
	if err := pflagenv.Parse(envPrefix); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitBadArgs)
	}

	if *helpFull {
		unhideFlags()
		usage()
		return
	} else if *versionFlag {
		fmt.Printf("%s\nVersion: %s\n", "The advanced USB control tool", version.String())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		<-sigs
		cancel()
	}()

	err := run(ctx)
	cancel()
	if err != nil {
		glog.Infof("Error: %+v", err)
		if *verbose {
			fmt.Fprintf(os.Stderr, "Error: %s\n", errors.ErrorStack(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		glog.Flush()
		os.Exit(exitCode(err))
	}
	glog.Flush()
}
