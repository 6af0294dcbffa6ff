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
//go:build !no_libudev
// +build !no_libudev

package common

import (
	"github.com/golang/glog"
	"github.com/google/gousb"
	"github.com/juju/errors"

	"github.com/swadge-dev/advusb/common/multierror"
)

// HID class requests, carried as control transfers to the interface.
const (
	hidGetReport = 0x01
	hidSetReport = 0x09

	hidReportTypeFeature = 0x03
)

// HIDDevice exchanges feature reports with one claimed HID interface.
type HIDDevice struct {
	uctx  *gousb.Context
	dev   *gousb.Device
	cfg   *gousb.Config
	intf  *gousb.Interface
	iface uint16
	lock  *DeviceLock
}

// OpenHIDDevice finds the device by VID, PID and (optionally) serial number,
// takes the per-device lock and claims the interface, detaching the kernel
// HID driver if needed. If several devices match, the first one is used.
func OpenHIDDevice(opts *HIDOpts) (_ *HIDDevice, err error) {
	vid, pid := gousb.ID(opts.VID), gousb.ID(opts.PID)
	h := &HIDDevice{iface: uint16(opts.Interface)}
	defer func() {
		if err != nil {
			h.Close()
		}
	}()
	if !opts.NoLock {
		if h.lock, err = LockDevice(opts.VID, opts.PID); err != nil {
			return nil, errors.Trace(err)
		}
	}
	h.uctx = gousb.NewContext()
	devs, err := h.uctx.OpenDevices(func(dd *gousb.DeviceDesc) bool {
		glog.V(1).Infof("Dev %+v", dd)
		return dd.Vendor == vid && dd.Product == pid
	})
	// OpenDevices may fail overall but still return results. Only fail if no devices were returned.
	if err != nil && len(devs) == 0 {
		return nil, errors.Annotatef(err, "failed to enumerate USB devices")
	}
	for _, dev := range devs {
		if h.dev != nil {
			dev.Close()
			continue
		}
		sn, _ := dev.SerialNumber()
		glog.V(1).Infof("Dev %+v sn '%s'", dev, sn)
		if opts.Serial == "" || sn == opts.Serial {
			h.dev = dev
		} else {
			dev.Close()
		}
	}
	if h.dev == nil {
		sp := ""
		if opts.Serial != "" {
			sp = "/"
		}
		return nil, errors.NotFoundf("device %s:%s%s%s", vid, pid, sp, opts.Serial)
	}
	if opts.Timeout > 0 {
		h.dev.ControlTimeout = opts.Timeout
	}
	if err := h.dev.SetAutoDetach(true); err != nil {
		glog.V(1).Infof("auto detach: %s", err)
	}
	cfgNum, err := h.dev.ActiveConfigNum()
	if err != nil {
		return nil, errors.Annotatef(err, "failed to get active config")
	}
	if h.cfg, err = h.dev.Config(cfgNum); err != nil {
		return nil, errors.Annotatef(err, "failed to claim config %d", cfgNum)
	}
	if h.intf, err = h.cfg.Interface(opts.Interface, 0); err != nil {
		return nil, errors.Annotatef(err, "failed to claim interface %d", opts.Interface)
	}
	glog.Infof("Opened %s:%s (interface %d)", vid, pid, opts.Interface)
	return h, nil
}

func featureValue(reportID uint8) uint16 {
	return hidReportTypeFeature<<8 | uint16(reportID)
}

// SetReport sends a feature report; report[0] is the report ID.
func (h *HIDDevice) SetReport(report []byte) (int, error) {
	if len(report) == 0 {
		return 0, errors.Errorf("empty report")
	}
	n, err := h.dev.Control(
		gousb.ControlOut|gousb.ControlClass|gousb.ControlInterface,
		hidSetReport, featureValue(report[0]), h.iface, report)
	return n, errors.Trace(err)
}

// GetReport reads a feature report into buf; buf[0] comes back as the
// report ID.
func (h *HIDDevice) GetReport(reportID uint8, buf []byte) (int, error) {
	n, err := h.dev.Control(
		gousb.ControlIn|gousb.ControlClass|gousb.ControlInterface,
		hidGetReport, featureValue(reportID), h.iface, buf)
	return n, errors.Trace(err)
}

func (h *HIDDevice) Close() error {
	var errs error
	if h.intf != nil {
		h.intf.Close()
		h.intf = nil
	}
	if h.cfg != nil {
		if err := h.cfg.Close(); err != nil {
			errs = multierror.Append(errs, errors.Annotatef(err, "config"))
		}
		h.cfg = nil
	}
	if h.dev != nil {
		if err := h.dev.Close(); err != nil {
			errs = multierror.Append(errs, errors.Annotatef(err, "device"))
		}
		h.dev = nil
	}
	if h.uctx != nil {
		if err := h.uctx.Close(); err != nil {
			errs = multierror.Append(errs, errors.Annotatef(err, "context"))
		}
		h.uctx = nil
	}
	if h.lock != nil {
		if err := h.lock.Unlock(); err != nil {
			errs = multierror.Append(errs, errors.Trace(err))
		}
		h.lock = nil
	}
	return errs
}
