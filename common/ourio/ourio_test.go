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
package ourio

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBlob(t *testing.T) {
	dir, err := ioutil.TempDir("", "ourio")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	_, err = ReadBlob(filepath.Join(dir, "missing.bin"))
	require.Error(t, err)
	fe, ok := errors.Cause(err).(*FileError)
	require.True(t, ok)
	assert.Equal(t, "stat", fe.Op)

	empty := filepath.Join(dir, "empty.bin")
	require.NoError(t, ioutil.WriteFile(empty, nil, 0644))
	_, err = ReadBlob(empty)
	assert.Equal(t, ErrEmptyFile, errors.Cause(err))

	blob := filepath.Join(dir, "blob.bin")
	require.NoError(t, ioutil.WriteFile(blob, []byte{1, 2, 3}, 0644))
	data, err := ReadBlob(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestWriteFileIfDifferent(t *testing.T) {
	dir, err := ioutil.TempDir("", "ourio")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	fn := filepath.Join(dir, "profile.yaml")

	written, err := WriteYAMLFileIfDifferent(fn, map[string]int{"chunk_size": 128}, 0644)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteYAMLFileIfDifferent(fn, map[string]int{"chunk_size": 128}, 0644)
	require.NoError(t, err)
	assert.False(t, written)

	data, err := ioutil.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "chunk_size: 128\n", string(data))

	_, err = CreateFile(filepath.Join(dir, "no", "such", "dir.bin"))
	fe, ok := err.(*FileError)
	require.True(t, ok)
	assert.Equal(t, "create", fe.Op)
}
