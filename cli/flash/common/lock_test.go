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
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceLock(t *testing.T) {
	l, err := LockDevice(0xfffe, 0x0001)
	require.NoError(t, err)

	_, err = LockDevice(0xfffe, 0x0001)
	require.Error(t, err)
	assert.Equal(t, ErrDeviceBusy, errors.Cause(err))

	require.NoError(t, l.Unlock())
	l, err = LockDevice(0xfffe, 0x0001)
	require.NoError(t, err)
	assert.NoError(t, l.Unlock())
}
