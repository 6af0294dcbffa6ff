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
package device

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogSink is where the system log goes. The terminal endpoint redirects it
// into the session's log ring the first time it is read.
type LogSink interface {
	Redirect(w io.Writer)
}

// LogrusSink redirects a logrus logger.
type LogrusSink struct {
	Logger *logrus.Logger
}

func (s LogrusSink) Redirect(w io.Writer) {
	s.Logger.SetOutput(w)
}
