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

package devp2p

import (
	"log/slog"
	"net"
	"time"

	"github.com/cloudstruct/go-devp2p/protocol/eth"
)

// ConnectionOptionFunc is a type that represents functions that modify the Connection config
type ConnectionOptionFunc func(*Connection)

// WithConnection specifies an existing connection to use. If none is provided, the Dial() function can be
// used to create one later
func WithConnection(conn net.Conn) ConnectionOptionFunc {
	return func(c *Connection) {
		c.conn = conn
	}
}

// WithNetwork specifies the network. This sets both the network ID sent in the status
// handshake and the genesis hash the peer is validated against
func WithNetwork(network Network) ConnectionOptionFunc {
	return func(c *Connection) {
		c.networkId = network.Id
		c.chainInfo.GenesisHash = network.GenesisHash
	}
}

// WithNetworkId specifies the network ID value
func WithNetworkId(networkId uint64) ConnectionOptionFunc {
	return func(c *Connection) {
		c.networkId = networkId
	}
}

// WithChainInfo specifies the chain identity committed to during the status handshake
func WithChainInfo(chainInfo eth.ChainInfo) ConnectionOptionFunc {
	return func(c *Connection) {
		c.chainInfo = chainInfo
	}
}

// WithProtocolVersion specifies the eth protocol version to use. The default is eth/63
func WithProtocolVersion(version uint) ConnectionOptionFunc {
	return func(c *Connection) {
		c.protocolVersion = version
	}
}

// WithErrorChan specifies the error channel to use. If none is provided, one will be created
func WithErrorChan(errorChan chan error) ConnectionOptionFunc {
	return func(c *Connection) {
		c.errorChan = errorChan
	}
}

// WithLogger specifies the logger to use. If none is provided, the default slog logger
// will be used
func WithLogger(logger *slog.Logger) ConnectionOptionFunc {
	return func(c *Connection) {
		c.logger = logger
	}
}

// WithHandshakeTimeout specifies how long to wait for the peer's status message
func WithHandshakeTimeout(timeout time.Duration) ConnectionOptionFunc {
	return func(c *Connection) {
		c.handshakeTimeout = timeout
	}
}

// WithSnappyCompression specifies whether to compress frame payloads with snappy
func WithSnappyCompression(useSnappyCompression bool) ConnectionOptionFunc {
	return func(c *Connection) {
		c.useSnappyCompression = useSnappyCompression
	}
}

// WithEthConfig specifies eth protocol config
func WithEthConfig(cfg eth.Config) ConnectionOptionFunc {
	return func(c *Connection) {
		c.ethConfig = &cfg
	}
}
