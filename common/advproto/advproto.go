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
// Package advproto describes the frames exchanged over the advanced USB
// control channel: host "set" feature reports carrying commands and device
// "get" feature reports carrying cursor or log bytes.
package advproto

import "fmt"

// Op is a command opcode, byte 1 of every set report.
type Op uint8

const (
	OpWriteMemory   Op = 0x04
	OpSetReadTarget Op = 0x05
	OpExecute       Op = 0x06
	OpSwitchMode    Op = 0x07
	OpScratchResize Op = 0x08
	OpFlashErase    Op = 0x10
	OpFlashWrite    Op = 0x11
	OpFlashRead     Op = 0x12
)

var opNames = map[Op]string{
	OpWriteMemory:   "write-memory",
	OpSetReadTarget: "set-read-target",
	OpExecute:       "execute",
	OpSwitchMode:    "switch-mode",
	OpScratchResize: "scratch-resize",
	OpFlashErase:    "flash-erase",
	OpFlashWrite:    "flash-write",
	OpFlashRead:     "flash-read",
}

func (op Op) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return fmt.Sprintf("op-0x%02x", uint8(op))
}

// Valid reports whether op is one the device dispatches.
func (op Op) Valid() bool {
	_, ok := opNames[op]
	return ok
}

// Report IDs. The control endpoint returns cursor bytes, the terminal
// endpoint returns redirected log output. Set reports carry one of these in
// byte 0 as well but the device ignores it.
const (
	ReportControl  uint8 = 0xaa
	ReportTerminal uint8 = 0xab
)

const (
	// HeaderLen is marker + opcode + 32-bit address/value.
	HeaderLen = 6
	// LengthHeaderLen adds a 32-bit length, used by erase and read.
	LengthHeaderLen = 10
	// WriteHeaderLen adds a 16-bit payload length, used by flash-write.
	WriteHeaderLen = 8

	// ReportSize is the size of a feature report, report ID included.
	ReportSize = 255

	// TopBit marks scratch-resize status queries and whole-chip erases.
	TopBit uint32 = 0x80000000

	// ImmediateSize is the capacity of the device's immediate buffer, which
	// bounds a single flash-read.
	ImmediateSize = 256

	// StatusLen is the size of the scratch status block: address, size.
	StatusLen = 8
)

// MinLen returns the shortest set report the device accepts for op.
func MinLen(op Op) int {
	switch op {
	case OpFlashErase, OpFlashRead:
		return LengthHeaderLen
	}
	return HeaderLen
}
