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
	"bytes"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/juju/errors"
	yaml "gopkg.in/yaml.v2"
)

// ErrEmptyFile is returned by ReadBlob for a zero-length file.
var ErrEmptyFile = errors.New("file is empty")

// FileError records which step of a file operation failed.
type FileError struct {
	Op   string // "stat", "open", "read", "create", "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("could not %s %s: %s", e.Op, e.Path, e.Err)
}

// ReadBlob reads a whole input file, refusing empty ones.
func ReadBlob(path string) ([]byte, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, &FileError{Op: "stat", Path: path, Err: err}
	}
	if st.Size() == 0 {
		return nil, errors.Annotatef(ErrEmptyFile, "%s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	data, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	if len(data) == 0 {
		return nil, errors.Annotatef(ErrEmptyFile, "%s", path)
	}
	return data, nil
}

// CreateFile creates (or truncates) an output file up front, so that a bad
// path fails before any device traffic.
func CreateFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &FileError{Op: "create", Path: path, Err: err}
	}
	return f, nil
}

// WriteFileIfDifferent writes data to file but avoids overwriting a file with the same contents.
// Returns true if the file was written.
func WriteFileIfDifferent(filename string, data []byte, perm os.FileMode) (bool, error) {
	exData, err := ioutil.ReadFile(filename)
	if err == nil && bytes.Equal(exData, data) {
		return false, nil
	}
	if err := ioutil.WriteFile(filename, data, perm); err != nil {
		return false, &FileError{Op: "write", Path: filename, Err: err}
	}
	return true, nil
}

// WriteYAMLFileIfDifferent writes s as YAML, see WriteFileIfDifferent.
func WriteYAMLFileIfDifferent(filename string, s interface{}, perm os.FileMode) (bool, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return false, errors.Trace(err)
	}
	return WriteFileIfDifferent(filename, data, perm)
}
