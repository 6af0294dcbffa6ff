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
package advusb

import (
	"io/ioutil"

	"github.com/juju/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/swadge-dev/advusb/common/advproto"
)

const (
	DefaultVID        = 0x303a
	DefaultPID        = 0x4004
	DefaultSectorSize = 4096
)

// Profile describes how to reach and talk to a device. Zero fields in a
// profile file keep their defaults.
type Profile struct {
	VID        uint16 `yaml:"vid,omitempty"`
	PID        uint16 `yaml:"pid,omitempty"`
	Serial     string `yaml:"serial,omitempty"`
	Interface  int    `yaml:"interface,omitempty"`
	ReportSize int    `yaml:"report_size,omitempty"`
	ChunkSize  int    `yaml:"chunk_size,omitempty"`
	SectorSize uint32 `yaml:"sector_size,omitempty"`
}

func DefaultProfile() Profile {
	return Profile{
		VID:        DefaultVID,
		PID:        DefaultPID,
		ReportSize: defaultReportSize,
		ChunkSize:  defaultChunkSize,
		SectorSize: DefaultSectorSize,
	}
}

// LoadProfile reads a YAML profile on top of the defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return p, errors.Annotatef(err, "failed to read profile")
	}
	var fp Profile
	if err := yaml.UnmarshalStrict(data, &fp); err != nil {
		return p, errors.Annotatef(err, "invalid profile %s", path)
	}
	p.Merge(fp)
	return p, errors.Trace(p.Validate())
}

// Merge copies the non-zero fields of o into p.
func (p *Profile) Merge(o Profile) {
	if o.VID != 0 {
		p.VID = o.VID
	}
	if o.PID != 0 {
		p.PID = o.PID
	}
	if o.Serial != "" {
		p.Serial = o.Serial
	}
	if o.Interface != 0 {
		p.Interface = o.Interface
	}
	if o.ReportSize != 0 {
		p.ReportSize = o.ReportSize
	}
	if o.ChunkSize != 0 {
		p.ChunkSize = o.ChunkSize
	}
	if o.SectorSize != 0 {
		p.SectorSize = o.SectorSize
	}
}

func (p *Profile) Validate() error {
	switch {
	case p.ReportSize <= advproto.LengthHeaderLen || p.ReportSize > advproto.ReportSize:
		return errors.Errorf("report size must be between %d and %d, got %d",
			advproto.LengthHeaderLen+1, advproto.ReportSize, p.ReportSize)
	case p.ChunkSize <= 0 || p.ChunkSize%Align != 0:
		return errors.Errorf("chunk size must be a positive multiple of %d, got %d", Align, p.ChunkSize)
	case p.ChunkSize+advproto.WriteHeaderLen > p.ReportSize:
		return errors.Errorf("chunk size %d does not fit a %d byte report", p.ChunkSize, p.ReportSize)
	case p.ChunkSize > advproto.ImmediateSize:
		return errors.Errorf("chunk size %d exceeds the device read buffer (%d)", p.ChunkSize, advproto.ImmediateSize)
	case p.SectorSize == 0 || p.SectorSize&(p.SectorSize-1) != 0:
		return errors.Errorf("sector size must be a power of two, got %d", p.SectorSize)
	}
	return nil
}

// FlashOpts returns client options matching the profile.
func (p *Profile) FlashOpts() FlashOpts {
	return FlashOpts{
		ReportSize:  p.ReportSize,
		ChunkSize:   p.ChunkSize,
		SectorSize:  p.SectorSize,
		MaxAttempts: MaxAttempts,
	}
}
