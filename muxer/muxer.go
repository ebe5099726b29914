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

// Package muxer implements the session layer that multiplexes sub-protocols
// over a single connection. Each registered sub-protocol is assigned a
// command ID offset within the connection's shared command ID space, and
// inbound frames are dispatched to the owning sub-protocol by ID range.
package muxer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/golang/snappy"
)

// BaseProtocolLength is the number of command IDs reserved at the bottom of
// the shared ID space for the base session protocol. Sub-protocol offsets
// are assigned above it in registration order
const BaseProtocolLength uint8 = 0x10

type registeredProtocol struct {
	offset       uint8
	length       uint8
	senderChan   chan *Frame
	receiverChan chan *Frame
}

// Muxer wraps a connection and shuttles frames between it and the
// registered sub-protocols
type Muxer struct {
	conn        net.Conn
	sendMutex   sync.Mutex
	startChan   chan bool
	doneChan    chan bool
	ErrorChan   chan error
	compression bool
	nextOffset  uint8
	protocols   []*registeredProtocol
}

// New creates a new Muxer object for the specified connection
func New(conn net.Conn) *Muxer {
	m := &Muxer{
		conn:       conn,
		startChan:  make(chan bool, 1),
		doneChan:   make(chan bool),
		ErrorChan:  make(chan error, 10),
		nextOffset: BaseProtocolLength,
	}
	go m.readLoop()
	return m
}

// Start unblocks the read loop. Sub-protocols must be registered before
// calling Start, since inbound frames are dispatched by registered ID range
func (m *Muxer) Start() {
	m.startChan <- true
}

// EnableCompression enables snappy compression of frame payloads. It must
// be called before Start and both sides of the connection must agree
func (m *Muxer) EnableCompression() {
	m.compression = true
}

// Stop shuts down the muxer
func (m *Muxer) Stop() {
	// Immediately return if we're already shutting down
	select {
	case <-m.doneChan:
		return
	default:
	}
	// Close protocol receive channels
	// We rely on the individual sub-protocols to stop reading from them
	for _, proto := range m.protocols {
		close(proto.receiverChan)
	}
	// Close ErrorChan to signify to the consumer that we're shutting down
	close(m.ErrorChan)
	// Close doneChan to signify that we're shutting down
	close(m.doneChan)
}

func (m *Muxer) sendError(err error) {
	// Immediately return if we're already shutting down
	select {
	case <-m.doneChan:
		return
	default:
	}
	// Send error to consumer
	m.ErrorChan <- err
	// Stop the muxer on any error
	m.Stop()
}

// RegisterProtocol assigns the next available command ID offset for a
// sub-protocol consuming length IDs, and returns the offset along with the
// channels for outbound and inbound frames
func (m *Muxer) RegisterProtocol(length uint8) (uint8, chan *Frame, chan *Frame) {
	// Generate channels
	senderChan := make(chan *Frame, 10)
	receiverChan := make(chan *Frame, 10)
	proto := &registeredProtocol{
		offset:       m.nextOffset,
		length:       length,
		senderChan:   senderChan,
		receiverChan: receiverChan,
	}
	m.nextOffset += length
	m.protocols = append(m.protocols, proto)
	// Start Goroutine to handle outbound frames
	go func() {
		for {
			select {
			case _, ok := <-m.doneChan:
				// doneChan has been closed, which means we're shutting down
				if !ok {
					return
				}
			case frame := <-senderChan:
				if err := m.Send(frame); err != nil {
					m.sendError(err)
					return
				}
			}
		}
	}()
	return proto.offset, senderChan, receiverChan
}

// Send writes a single frame to the connection. A mutex makes sure that
// only one sub-protocol can write at a time
func (m *Muxer) Send(frame *Frame) error {
	m.sendMutex.Lock()
	defer m.sendMutex.Unlock()
	payload := frame.Payload
	if m.compression {
		payload = snappy.Encode(nil, payload)
	}
	header := frame.FrameHeader
	header.PayloadLength = uint32(len(payload))
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.BigEndian, header); err != nil {
		return err
	}
	buf.Write(payload)
	if _, err := m.conn.Write(buf.Bytes()); err != nil {
		return err
	}
	return nil
}

func (m *Muxer) protocolForCommandId(commandId uint8) *registeredProtocol {
	for _, proto := range m.protocols {
		if commandId >= proto.offset && commandId < proto.offset+proto.length {
			return proto
		}
	}
	return nil
}

func (m *Muxer) readLoop() {
	// Wait until the muxer is started before reading from the connection
	select {
	case <-m.startChan:
	case _, ok := <-m.doneChan:
		if !ok {
			return
		}
	}
	for {
		var header FrameHeader
		if err := binary.Read(m.conn, binary.BigEndian, &header); err != nil {
			m.sendError(err)
			return
		}
		payload := make([]byte, header.PayloadLength)
		if _, err := io.ReadFull(m.conn, payload); err != nil {
			m.sendError(err)
			return
		}
		if m.compression {
			decoded, err := snappy.Decode(nil, payload)
			if err != nil {
				m.sendError(fmt.Errorf("muxer: decompress failure: %w", err))
				return
			}
			payload = decoded
			header.PayloadLength = uint32(len(payload))
		}
		proto := m.protocolForCommandId(header.CommandId)
		if proto == nil {
			m.sendError(
				fmt.Errorf(
					"muxer: received frame for unknown command ID %d",
					header.CommandId,
				),
			)
			return
		}
		proto.receiverChan <- &Frame{
			FrameHeader: header,
			Payload:     payload,
		}
	}
}
