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

// Package devp2p implements support for speaking the Ethereum wire protocol
// with other nodes.
//
// The wire protocol consists of a muxer and one or more sub-protocols that
// share a single command ID space over the connection. A status handshake
// commits both sides to a protocol version and chain identity before any
// other traffic flows.
//
// This package is the main entry point into this library. The other packages
// can be used outside of this one, but it's not a primary design goal.
package devp2p

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/cloudstruct/go-devp2p/muxer"
	"github.com/cloudstruct/go-devp2p/protocol"
	"github.com/cloudstruct/go-devp2p/protocol/eth"
)

// Handshake validation errors
var (
	ErrHandshakeTimeout        = errors.New("timeout waiting for status handshake")
	ErrNetworkIdMismatch       = errors.New("peer network ID mismatch")
	ErrGenesisMismatch         = errors.New("peer genesis hash mismatch")
	ErrProtocolVersionMismatch = errors.New("peer protocol version mismatch")
)

const defaultHandshakeTimeout = 10 * time.Second

// The Connection type is a wrapper around a net.Conn object that handles
// communication using the Ethereum wire protocol over that connection
type Connection struct {
	conn                  net.Conn
	networkId             uint64
	chainInfo             eth.ChainInfo
	protocolVersion       uint
	handshakeTimeout      time.Duration
	useSnappyCompression  bool
	logger                *slog.Logger
	muxer                 *muxer.Muxer
	errorChan             chan error
	protoErrorChan        chan error
	handshakeFinishedChan chan struct{}
	doneChan              chan struct{}
	waitGroup             sync.WaitGroup
	onceClose             sync.Once
	remoteStatus          *eth.MsgStatus
	// Sub-protocols
	eth       *eth.Eth
	ethConfig *eth.Config
}

// NewConnection returns a new Connection object with the specified options.
// If a connection is provided, the status handshake will be started. An
// error will be returned if the handshake fails
func NewConnection(options ...ConnectionOptionFunc) (*Connection, error) {
	c := &Connection{
		protocolVersion:       eth.ProtocolVersionEth63,
		handshakeTimeout:      defaultHandshakeTimeout,
		protoErrorChan:        make(chan error, 10),
		handshakeFinishedChan: make(chan struct{}),
		doneChan:              make(chan struct{}),
	}
	// Apply provided options functions
	for _, option := range options {
		option(c)
	}
	if c.errorChan == nil {
		c.errorChan = make(chan error, 10)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.conn != nil {
		if err := c.setupConnection(); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

// New is an alias to NewConnection
func New(options ...ConnectionOptionFunc) (*Connection, error) {
	return NewConnection(options...)
}

// Muxer returns the muxer object for the connection
func (c *Connection) Muxer() *muxer.Muxer {
	return c.muxer
}

// ErrorChan returns the channel for asynchronous errors
func (c *Connection) ErrorChan() chan error {
	return c.errorChan
}

// Eth returns the eth protocol handler
func (c *Connection) Eth() *eth.Eth {
	return c.eth
}

// RemoteStatus returns the status message received from the peer during the
// handshake, or nil if the handshake hasn't completed
func (c *Connection) RemoteStatus() *eth.MsgStatus {
	return c.remoteStatus
}

// Dial will establish a connection using the specified protocol and address.
// These parameters are passed to the [net.Dial] func. The status handshake
// will be started when a connection is established. An error will be
// returned if the connection fails, a connection was already established,
// or the handshake fails
func (c *Connection) Dial(proto string, address string) error {
	if c.conn != nil {
		return fmt.Errorf("a connection was already established")
	}
	conn, err := net.Dial(proto, address)
	if err != nil {
		return err
	}
	c.conn = conn
	if err := c.setupConnection(); err != nil {
		c.Close()
		return err
	}
	return nil
}

// Close will shutdown the connection
func (c *Connection) Close() error {
	var err error
	c.onceClose.Do(func() {
		// Close doneChan to signify that we're shutting down
		close(c.doneChan)
		// Gracefully stop the muxer
		if c.muxer != nil {
			c.muxer.Stop()
		}
		// Close the underlying connection to unblock any pending reads
		if c.conn != nil {
			err = c.conn.Close()
		}
		// Wait for other goroutines to finish
		c.waitGroup.Wait()
		// Close channels
		close(c.errorChan)
		close(c.protoErrorChan)
	})
	return err
}

// validateRemoteStatus checks the peer's status message against our own
// chain identity. A peer on a different network or chain is rejected before
// the handshake is considered complete
func (c *Connection) validateRemoteStatus(msg eth.MsgStatus) error {
	if uint(msg.ProtocolVersion) != c.protocolVersion {
		return fmt.Errorf(
			"%w: local %d, remote %d",
			ErrProtocolVersionMismatch,
			c.protocolVersion,
			msg.ProtocolVersion,
		)
	}
	if msg.NetworkId != c.networkId {
		return fmt.Errorf(
			"%w: local %d, remote %d",
			ErrNetworkIdMismatch,
			c.networkId,
			msg.NetworkId,
		)
	}
	if msg.GenesisHash != c.chainInfo.GenesisHash {
		return fmt.Errorf(
			"%w: local %x, remote %x",
			ErrGenesisMismatch,
			c.chainInfo.GenesisHash,
			msg.GenesisHash,
		)
	}
	return nil
}

// setupConnection establishes the muxer, registers the sub-protocols, and
// performs the status handshake
func (c *Connection) setupConnection() error {
	// Check network ID value
	if c.networkId == 0 {
		return fmt.Errorf("invalid network ID value provided: %d", c.networkId)
	}
	if _, ok := GetProtocolVersion(c.protocolVersion); !ok {
		return fmt.Errorf(
			"unsupported protocol version: %d",
			c.protocolVersion,
		)
	}
	c.muxer = muxer.New(c.conn)
	if c.useSnappyCompression {
		c.muxer.EnableCompression()
	}
	// Start goroutine to pass along errors from the muxer
	c.waitGroup.Add(1)
	go func() {
		select {
		case <-c.doneChan:
			c.waitGroup.Done()
			return
		case err, ok := <-c.muxer.ErrorChan:
			// Break out of goroutine if muxer's error channel is closed
			if !ok {
				c.waitGroup.Done()
				return
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Return a bare io.EOF error if error is EOF/ErrUnexpectedEOF
				c.errorChan <- io.EOF
			} else {
				// Wrap error message to denote it comes from the muxer
				c.errorChan <- fmt.Errorf("muxer error: %w", err)
			}
			// Release our waitGroup slot before closing, since Close waits
			// for it
			c.waitGroup.Done()
			// Close connection on muxer errors
			c.Close()
		}
	}()
	protoOptions := protocol.ProtocolOptions{
		Muxer:     c.muxer,
		ErrorChan: c.protoErrorChan,
		Logger:    c.logger,
	}
	// Configure the eth protocol, wrapping any user-provided status
	// callback so that we can validate the peer before handing over
	ethConfig := eth.NewConfig()
	if c.ethConfig != nil {
		ethConfig = *c.ethConfig
	}
	ethConfig.NetworkId = c.networkId
	ethConfig.Version = c.protocolVersion
	userStatusFunc := ethConfig.StatusFunc
	ethConfig.StatusFunc = func(msg eth.MsgStatus) error {
		if c.remoteStatus != nil {
			return errors.New("received duplicate status message")
		}
		if err := c.validateRemoteStatus(msg); err != nil {
			return err
		}
		c.remoteStatus = &msg
		close(c.handshakeFinishedChan)
		if userStatusFunc != nil {
			return userStatusFunc(msg)
		}
		return nil
	}
	c.eth = eth.New(protoOptions, &ethConfig)
	// Start muxer
	c.muxer.Start()
	// Send our status and wait for the peer's
	if err := c.eth.SendHandshake(c.chainInfo); err != nil {
		return err
	}
	select {
	case <-c.doneChan:
		// Return an error if we're shutting down
		return io.EOF
	case err := <-c.protoErrorChan:
		return err
	case <-time.After(c.handshakeTimeout):
		return ErrHandshakeTimeout
	case <-c.handshakeFinishedChan:
		// This is purposely empty, but we need this case to break out when
		// this channel is closed
	}
	// Start goroutine to pass along errors from the sub-protocols
	c.waitGroup.Add(1)
	go func() {
		select {
		case <-c.doneChan:
			// Return if we're shutting down
			c.waitGroup.Done()
			return
		case err, ok := <-c.protoErrorChan:
			// The channel is closed, which means we're already shutting down
			if !ok {
				c.waitGroup.Done()
				return
			}
			c.errorChan <- fmt.Errorf("protocol error: %w", err)
			// Release our waitGroup slot before closing, since Close waits
			// for it
			c.waitGroup.Done()
			// Close connection on sub-protocol errors
			c.Close()
		}
	}()
	return nil
}
