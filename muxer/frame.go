// Copyright 2025 CloudStruct, LLC.
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

package muxer

// FrameHeaderSize is the encoded size of a frame header in bytes
const FrameHeaderSize = 5

// FrameHeader describes one wire frame: the command ID within the
// connection's shared command ID space and the length of the payload that
// follows. It's encoded big-endian on the wire
type FrameHeader struct {
	CommandId     uint8
	PayloadLength uint32
}

// Frame is one complete wire message: a frame header and the encoded
// message payload
type Frame struct {
	FrameHeader
	Payload []byte
}

// NewFrame returns a Frame for the provided command ID and payload
func NewFrame(commandId uint8, payload []byte) *Frame {
	header := FrameHeader{
		CommandId:     commandId,
		PayloadLength: uint32(len(payload)),
	}
	return &Frame{
		FrameHeader: header,
		Payload:     payload,
	}
}
