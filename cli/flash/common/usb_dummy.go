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
//go:build no_libudev
// +build no_libudev

package common

import (
	"github.com/juju/errors"
)

type HIDDevice struct{}

func OpenHIDDevice(opts *HIDOpts) (*HIDDevice, error) {
	return nil, errors.NotSupportedf("USB access in this build")
}

func (h *HIDDevice) SetReport(report []byte) (int, error) {
	return 0, errors.NotSupportedf("USB access in this build")
}

func (h *HIDDevice) GetReport(reportID uint8, buf []byte) (int, error) {
	return 0, errors.NotSupportedf("USB access in this build")
}

func (h *HIDDevice) Close() error {
	return nil
}
