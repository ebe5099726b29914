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

// Package protocol provides the generic sub-protocol framework: the
// versioned command table, the message abstraction, and the translation of
// typed messages into wire frames via the muxer
package protocol

import (
	"fmt"
	"log/slog"

	"github.com/cloudstruct/go-devp2p/cbor"
	"github.com/cloudstruct/go-devp2p/muxer"
)

// Protocol is a single negotiated sub-protocol session with a remote peer.
// It holds the command ID offset assigned by the muxer and translates
// typed messages into (header, body) frames. It's never mutated after
// creation, so its methods are safe for concurrent use
type Protocol struct {
	config      ProtocolConfig
	cmdIdOffset uint8
	sendChan    chan *muxer.Frame
	recvChan    chan *muxer.Frame
	doneChan    chan struct{}
}

// ProtocolConfig provides the configuration for Protocol
type ProtocolConfig struct {
	Name                string
	Version             uint
	Commands            CommandTable
	Muxer               *muxer.Muxer
	Logger              *slog.Logger
	ErrorChan           chan error
	MessageHandlerFunc  MessageHandlerFunc
	MessageFromCborFunc MessageFromCborFunc
}

// ProtocolOptions provides the common arguments for constructing a
// sub-protocol instance
type ProtocolOptions struct {
	Muxer     *muxer.Muxer
	ErrorChan chan error
	Logger    *slog.Logger
}

// Callback function types
type MessageHandlerFunc func(Message) error
type MessageFromCborFunc func(uint8, []byte) (Message, error)

// New returns a new Protocol object and registers it with the muxer
func New(config ProtocolConfig) *Protocol {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	p := &Protocol{
		config:   config,
		doneChan: make(chan struct{}),
	}
	p.cmdIdOffset, p.sendChan, p.recvChan =
		config.Muxer.RegisterProtocol(config.Commands.Length())
	// Start our receiver Goroutine
	go p.recvLoop()
	return p
}

// Name returns the sub-protocol name
func (p *Protocol) Name() string {
	return p.config.Name
}

// Version returns the sub-protocol version
func (p *Protocol) Version() uint {
	return p.config.Version
}

// CommandIdOffset returns the base offset assigned to this sub-protocol
// within the connection's shared command ID space
func (p *Protocol) CommandIdOffset() uint8 {
	return p.cmdIdOffset
}

// Commands returns the sub-protocol's command table
func (p *Protocol) Commands() CommandTable {
	return p.config.Commands
}

// SendMessage resolves the message's command, encodes the payload, and
// hands the resulting frame to the muxer. It doesn't wait for the frame to
// be transmitted: transport failures surface on the error channel
func (p *Protocol) SendMessage(msg Message) error {
	cmd, ok := p.config.Commands.ByCode(msg.Code())
	if !ok {
		return fmt.Errorf(
			"%s: %w: code %d",
			p.config.Name,
			ErrUnknownCommand,
			msg.Code(),
		)
	}
	payload, err := cbor.Encode(msg)
	if err != nil {
		return err
	}
	p.config.Logger.Debug(
		"sending message",
		"protocol", p.config.Name,
		"command", cmd.Name,
	)
	frame := muxer.NewFrame(p.cmdIdOffset+cmd.Code, payload)
	select {
	case <-p.doneChan:
		return ErrProtocolShuttingDown
	case p.sendChan <- frame:
	}
	return nil
}

// Stop stops the protocol's receiver. The muxer owns the channel lifecycle
// beyond that
func (p *Protocol) Stop() {
	select {
	case <-p.doneChan:
	default:
		close(p.doneChan)
	}
}

func (p *Protocol) sendError(err error) {
	select {
	case <-p.doneChan:
	case p.config.ErrorChan <- err:
	}
}

func (p *Protocol) recvLoop() {
	for {
		var frame *muxer.Frame
		var ok bool
		select {
		case <-p.doneChan:
			return
		case frame, ok = <-p.recvChan:
			if !ok {
				// The muxer closed our receive channel, which means
				// we're shutting down
				p.Stop()
				return
			}
		}
		code := frame.CommandId - p.cmdIdOffset
		cmd, ok := p.config.Commands.ByCode(code)
		if !ok {
			p.sendError(fmt.Errorf(
				"%s: received unknown command code %d",
				p.config.Name,
				code,
			))
			continue
		}
		msg, err := p.config.MessageFromCborFunc(code, frame.Payload)
		if err != nil {
			p.sendError(fmt.Errorf("%s: decode error: %w", p.config.Name, err))
			continue
		}
		p.config.Logger.Debug(
			"received message",
			"protocol", p.config.Name,
			"command", cmd.Name,
		)
		if err := p.config.MessageHandlerFunc(msg); err != nil {
			p.sendError(err)
		}
	}
}
