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

package muxer_test

import (
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/cloudstruct/go-devp2p/muxer"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestRegisterProtocolOffsets(t *testing.T) {
	defer goleak.VerifyNone(t)
	connA, connB := net.Pipe()
	m := muxer.New(connA)
	offset1, _, _ := m.RegisterProtocol(17)
	offset2, _, _ := m.RegisterProtocol(8)
	assert.Equal(t, muxer.BaseProtocolLength, offset1)
	assert.Equal(t, muxer.BaseProtocolLength+17, offset2)
	m.Stop()
	connA.Close()
	connB.Close()
}

func TestFrameRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)
	connA, connB := net.Pipe()
	muxerA := muxer.New(connA)
	muxerB := muxer.New(connB)
	offsetA, sendChan, _ := muxerA.RegisterProtocol(17)
	offsetB, _, recvChan := muxerB.RegisterProtocol(17)
	assert.Equal(t, offsetA, offsetB)
	muxerA.Start()
	muxerB.Start()
	testPayload := []byte{0x01, 0x02, 0x03}
	sendChan <- muxer.NewFrame(offsetA+3, testPayload)
	select {
	case frame, ok := <-recvChan:
		if !ok {
			t.Fatalf("receive channel closed unexpectedly")
		}
		assert.Equal(t, offsetA+3, frame.CommandId)
		assert.Equal(t, testPayload, frame.Payload)
	case err := <-muxerB.ErrorChan:
		t.Fatalf("unexpected muxer error: %s", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("did not receive frame within timeout")
	}
	muxerA.Stop()
	muxerB.Stop()
	connA.Close()
	connB.Close()
}

func TestFrameRoundTripCompressed(t *testing.T) {
	defer goleak.VerifyNone(t)
	connA, connB := net.Pipe()
	muxerA := muxer.New(connA)
	muxerB := muxer.New(connB)
	muxerA.EnableCompression()
	muxerB.EnableCompression()
	offsetA, sendChan, _ := muxerA.RegisterProtocol(17)
	_, _, recvChan := muxerB.RegisterProtocol(17)
	muxerA.Start()
	muxerB.Start()
	testPayload := make([]byte, 512)
	for i := range testPayload {
		testPayload[i] = 0xaa
	}
	sendChan <- muxer.NewFrame(offsetA, testPayload)
	select {
	case frame, ok := <-recvChan:
		if !ok {
			t.Fatalf("receive channel closed unexpectedly")
		}
		assert.Equal(t, testPayload, frame.Payload)
		assert.Equal(t, uint32(len(testPayload)), frame.PayloadLength)
	case err := <-muxerB.ErrorChan:
		t.Fatalf("unexpected muxer error: %s", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("did not receive frame within timeout")
	}
	muxerA.Stop()
	muxerB.Stop()
	connA.Close()
	connB.Close()
}

func TestUnknownCommandId(t *testing.T) {
	defer goleak.VerifyNone(t)
	connA, connB := net.Pipe()
	m := muxer.New(connB)
	m.RegisterProtocol(17)
	m.Start()
	// Write a frame outside any registered command ID range
	go func() {
		header := muxer.FrameHeader{
			CommandId:     0x05,
			PayloadLength: 0,
		}
		_ = binary.Write(connA, binary.BigEndian, header)
	}()
	select {
	case err, ok := <-m.ErrorChan:
		if !ok {
			t.Fatalf("error channel closed unexpectedly")
		}
		assert.ErrorContains(t, err, "unknown command ID")
	case <-time.After(2 * time.Second):
		t.Fatalf("did not receive expected muxer error within timeout")
	}
	connA.Close()
	connB.Close()
}
