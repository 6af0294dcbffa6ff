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
package emu

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"

	"github.com/swadge-dev/advusb/device"
)

// Config sizes an emulated device.
type Config struct {
	FlashSize  uint32
	SectorSize uint32
	EraseByte  byte
	HeapBase   uint32
	HeapSize   uint32
	// NoDebug leaves the unsafe debug capability out of the dispatcher.
	NoDebug bool
}

// DefaultConfig is a 4 MiB flash with 4 KiB sectors that erase to 0xff.
func DefaultConfig() Config {
	return Config{
		FlashSize:  DefaultFlashSize,
		SectorSize: DefaultSectorSize,
		EraseByte:  0xff,
		HeapBase:   DefaultHeapBase,
		HeapSize:   DefaultHeapSize,
	}
}

// Device is a dispatcher wired to emulated hardware.
type Device struct {
	Memory     *Memory
	Flash      *Flash
	Modes      *Modes
	Log        *logrus.Logger
	Dispatcher *device.Dispatcher
}

func New(cfg Config) *Device {
	d := &Device{
		Memory: NewMemory(cfg.HeapBase, cfg.HeapSize),
		Flash:  NewFlash(cfg.FlashSize, cfg.SectorSize, cfg.EraseByte),
		Modes:  &Modes{},
		Log:    logrus.New(),
	}
	d.Log.Out = ioutil.Discard
	d.Log.Formatter = &logrus.TextFormatter{DisableTimestamp: true, DisableColors: true}
	opts := []device.Option{
		device.WithAllocator(d.Memory),
		device.WithFlash(d.Flash),
		device.WithModeSwitcher(d.Modes),
		device.WithLogger(d.Log),
	}
	if !cfg.NoDebug {
		opts = append(opts, device.WithUnsafeDebug(d.Memory))
	}
	d.Dispatcher = device.NewDispatcher(device.NewSession(), opts...)
	return d
}

// Session is the dispatcher's session.
func (d *Device) Session() *device.Session {
	return d.Dispatcher.Session()
}
