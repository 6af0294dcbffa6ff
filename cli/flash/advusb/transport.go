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
// Package advusb is the host side of the advanced USB control channel: it
// turns flash reads and writes into chunked, acknowledged, retried
// sequences of feature reports.
package advusb

// Transport moves feature reports. Both calls block and return the number
// of bytes the transport transferred; the client decides from that count
// whether the report was accepted.
type Transport interface {
	SetReport(report []byte) (int, error)
	GetReport(reportID uint8, buf []byte) (int, error)
	Close() error
}
