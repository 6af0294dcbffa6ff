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
package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/juju/errors"
	flock "github.com/theckman/go-flock"
)

// ErrDeviceBusy means another process holds the device.
var ErrDeviceBusy = errors.New("device is in use by another process")

// DeviceLock keeps two tool instances from interleaving requests on the
// same device.
type DeviceLock struct {
	fl *flock.Flock
}

// LockPath is the lock file used for vid:pid.
func LockPath(vid, pid uint16) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("advusb-%04x-%04x.lock", vid, pid))
}

// LockDevice takes the lock for vid:pid without waiting.
func LockDevice(vid, pid uint16) (*DeviceLock, error) {
	fl := flock.NewFlock(LockPath(vid, pid))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.Annotatef(err, "failed to lock %s", fl.Path())
	}
	if !ok {
		return nil, errors.Annotatef(ErrDeviceBusy, "%04x:%04x", vid, pid)
	}
	return &DeviceLock{fl: fl}, nil
}

func (l *DeviceLock) Unlock() error {
	return errors.Annotatef(l.fl.Unlock(), "failed to unlock %s", l.fl.Path())
}
