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
package flags

import (
	"time"

	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/swadge-dev/advusb/cli/flash/advusb"
)

var (
	VID        = flag.Uint16("vid", advusb.DefaultVID, "USB vendor ID of the device")
	PID        = flag.Uint16("pid", advusb.DefaultPID, "USB product ID of the device")
	Serial     = flag.String("serial", "", "Serial number of the device, if more than one is attached")
	Interface  = flag.Int("interface", 0, "HID interface number")
	Profile    = flag.String("profile", "", "YAML device profile file")
	ReportSize = flag.Int("report-size", 0, "Feature report size; 0 means the profile or platform default")
	ChunkSize  = flag.Int("chunk-size", 0, "Flash transfer chunk size; 0 means the profile or platform default")
	SectorSize = flag.Uint32("sector-size", 0, "Flash sector size; 0 means the profile default")
	Timeout    = flag.Duration("timeout", 5*time.Second, "Timeout for a single USB control transfer")

	Verify  = flag.Bool("verify", false, "Read back and compare after writing")
	NoErase = flag.Bool("no-erase", false, "Do not erase sectors before writing")
	NoLock  = flag.Bool("no-lock", false, "Do not take the per-device lock")

	ConsolePolls    = flag.Int("console-polls", 0, "Number of log polls for console; 0 polls until interrupted")
	ConsoleInterval = flag.Duration("console-interval", 20*time.Millisecond, "Delay between log polls")
	ProgressStep    = flag.Int("progress-step", 10, "Report progress every this many percent; 0 disables")
)

func init() {
	flag.CommandLine.MarkHidden("console-interval")
	flag.CommandLine.MarkHidden("interface")
}

// DeviceProfile returns the effective profile: built-in defaults, then the
// --profile file, then flags given explicitly on the command line or
// through the environment.
func DeviceProfile() (advusb.Profile, error) {
	p := advusb.DefaultProfile()
	if *Profile != "" {
		fp, err := advusb.LoadProfile(*Profile)
		if err != nil {
			return p, errors.Trace(err)
		}
		p = fp
	}
	var fp advusb.Profile
	if changed("vid") {
		fp.VID = *VID
	}
	if changed("pid") {
		fp.PID = *PID
	}
	fp.Serial = *Serial
	fp.Interface = *Interface
	fp.ReportSize = *ReportSize
	fp.ChunkSize = *ChunkSize
	fp.SectorSize = *SectorSize
	p.Merge(fp)
	return p, errors.Trace(p.Validate())
}

func changed(name string) bool {
	f := flag.Lookup(name)
	return f != nil && f.Changed
}
