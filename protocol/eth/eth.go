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

// Package eth implements the eth wire sub-protocol used for chain
// synchronization between peers
package eth

import (
	"fmt"
	"math/big"

	"github.com/cloudstruct/go-devp2p/protocol"
	"github.com/cloudstruct/go-devp2p/types"
)

// Protocol identifiers
const (
	ProtocolName = "eth"

	ProtocolVersionEth62 uint = 62
	ProtocolVersionEth63 uint = 63
)

// Command ID space widths. These exceed the table entry counts because
// codes 0x08-0x0c are reserved
const (
	protocolLengthEth62 uint8 = 8
	protocolLengthEth63 uint8 = 17
)

// Command table for eth/63. The order is fixed and versioned: changing it
// breaks wire compatibility
var commandsEth63 = []protocol.CommandDefinition{
	{Name: "Status", Code: MessageCodeStatus},
	{Name: "NewBlockHashes", Code: MessageCodeNewBlockHashes},
	{Name: "Transactions", Code: MessageCodeTransactions},
	{Name: "GetBlockHeaders", Code: MessageCodeGetBlockHeaders},
	{Name: "BlockHeaders", Code: MessageCodeBlockHeaders},
	{Name: "GetBlockBodies", Code: MessageCodeGetBlockBodies},
	{Name: "BlockBodies", Code: MessageCodeBlockBodies},
	{Name: "NewBlock", Code: MessageCodeNewBlock},
	{Name: "GetNodeData", Code: MessageCodeGetNodeData},
	{Name: "NodeData", Code: MessageCodeNodeData},
	{Name: "GetReceipts", Code: MessageCodeGetReceipts},
	{Name: "Receipts", Code: MessageCodeReceipts},
}

// Command table for eth/62, which lacks the node data and receipts commands
var commandsEth62 = commandsEth63[:8]

// CommandTableForVersion returns the command table for the provided
// protocol version
func CommandTableForVersion(version uint) (protocol.CommandTable, bool) {
	switch version {
	case ProtocolVersionEth62:
		return protocol.NewCommandTable(protocolLengthEth62, commandsEth62), true
	case ProtocolVersionEth63:
		return protocol.NewCommandTable(protocolLengthEth63, commandsEth63), true
	}
	return protocol.CommandTable{}, false
}

// ChainInfo is the chain identity committed to during the status handshake
type ChainInfo struct {
	TotalDifficulty *big.Int
	BestHash        types.Hash
	GenesisHash     types.Hash
}

// Eth is an instance of the eth sub-protocol bound to a single peer session
type Eth struct {
	*protocol.Protocol
	config *Config
}

// Config is used to configure the protocol instance
type Config struct {
	NetworkId           uint64
	Version             uint
	StatusFunc          StatusFunc
	NewBlockHashesFunc  NewBlockHashesFunc
	TransactionsFunc    TransactionsFunc
	GetBlockHeadersFunc GetBlockHeadersFunc
	BlockHeadersFunc    BlockHeadersFunc
	GetBlockBodiesFunc  GetBlockBodiesFunc
	BlockBodiesFunc     BlockBodiesFunc
	NewBlockFunc        NewBlockFunc
	GetNodeDataFunc     GetNodeDataFunc
	NodeDataFunc        NodeDataFunc
	GetReceiptsFunc     GetReceiptsFunc
	ReceiptsFunc        ReceiptsFunc
}

// Callback function types
type StatusFunc func(MsgStatus) error
type NewBlockHashesFunc func([]types.NewBlockHash) error
type TransactionsFunc func([]types.Transaction) error
type GetBlockHeadersFunc func(HeaderRequest) error
type BlockHeadersFunc func([]types.BlockHeader) error
type GetBlockBodiesFunc func([]types.Hash) error
type BlockBodiesFunc func([]types.BlockBody) error
type NewBlockFunc func(types.Block, *big.Int) error
type GetNodeDataFunc func([]types.Hash) error
type NodeDataFunc func([][]byte) error
type GetReceiptsFunc func([]types.Hash) error
type ReceiptsFunc func([][]types.Receipt) error

// New returns a new Eth object
func New(protoOptions protocol.ProtocolOptions, cfg *Config) *Eth {
	if cfg == nil {
		tmpCfg := NewConfig()
		cfg = &tmpCfg
	}
	commands, ok := CommandTableForVersion(cfg.Version)
	if !ok {
		// Fall back to the primary supported version
		cfg.Version = ProtocolVersionEth63
		commands, _ = CommandTableForVersion(cfg.Version)
	}
	e := &Eth{
		config: cfg,
	}
	protoConfig := protocol.ProtocolConfig{
		Name:                ProtocolName,
		Version:             cfg.Version,
		Commands:            commands,
		Muxer:               protoOptions.Muxer,
		Logger:              protoOptions.Logger,
		ErrorChan:           protoOptions.ErrorChan,
		MessageHandlerFunc:  e.messageHandler,
		MessageFromCborFunc: NewMsgFromCbor,
	}
	e.Protocol = protocol.New(protoConfig)
	return e
}

// EthOptionFunc represents a function used to modify the protocol config
type EthOptionFunc func(*Config)

// NewConfig returns a new Eth config object with the provided options
func NewConfig(options ...EthOptionFunc) Config {
	c := Config{
		Version: ProtocolVersionEth63,
	}
	// Apply provided options functions
	for _, option := range options {
		option(&c)
	}
	return c
}

// WithNetworkId specifies the network ID announced in the status handshake
func WithNetworkId(networkId uint64) EthOptionFunc {
	return func(c *Config) {
		c.NetworkId = networkId
	}
}

// WithVersion specifies the protocol version to speak
func WithVersion(version uint) EthOptionFunc {
	return func(c *Config) {
		c.Version = version
	}
}

// WithStatusFunc specifies the callback for inbound Status messages
func WithStatusFunc(statusFunc StatusFunc) EthOptionFunc {
	return func(c *Config) {
		c.StatusFunc = statusFunc
	}
}

// WithNewBlockHashesFunc specifies the callback for inbound NewBlockHashes
// announcements
func WithNewBlockHashesFunc(newBlockHashesFunc NewBlockHashesFunc) EthOptionFunc {
	return func(c *Config) {
		c.NewBlockHashesFunc = newBlockHashesFunc
	}
}

// WithTransactionsFunc specifies the callback for inbound Transactions
// broadcasts
func WithTransactionsFunc(transactionsFunc TransactionsFunc) EthOptionFunc {
	return func(c *Config) {
		c.TransactionsFunc = transactionsFunc
	}
}

// WithGetBlockHeadersFunc specifies the callback for inbound
// GetBlockHeaders requests
func WithGetBlockHeadersFunc(getBlockHeadersFunc GetBlockHeadersFunc) EthOptionFunc {
	return func(c *Config) {
		c.GetBlockHeadersFunc = getBlockHeadersFunc
	}
}

// WithBlockHeadersFunc specifies the callback for inbound BlockHeaders
// responses
func WithBlockHeadersFunc(blockHeadersFunc BlockHeadersFunc) EthOptionFunc {
	return func(c *Config) {
		c.BlockHeadersFunc = blockHeadersFunc
	}
}

// WithGetBlockBodiesFunc specifies the callback for inbound GetBlockBodies
// requests
func WithGetBlockBodiesFunc(getBlockBodiesFunc GetBlockBodiesFunc) EthOptionFunc {
	return func(c *Config) {
		c.GetBlockBodiesFunc = getBlockBodiesFunc
	}
}

// WithBlockBodiesFunc specifies the callback for inbound BlockBodies
// responses
func WithBlockBodiesFunc(blockBodiesFunc BlockBodiesFunc) EthOptionFunc {
	return func(c *Config) {
		c.BlockBodiesFunc = blockBodiesFunc
	}
}

// WithNewBlockFunc specifies the callback for inbound NewBlock
// announcements
func WithNewBlockFunc(newBlockFunc NewBlockFunc) EthOptionFunc {
	return func(c *Config) {
		c.NewBlockFunc = newBlockFunc
	}
}

// WithGetNodeDataFunc specifies the callback for inbound GetNodeData
// requests
func WithGetNodeDataFunc(getNodeDataFunc GetNodeDataFunc) EthOptionFunc {
	return func(c *Config) {
		c.GetNodeDataFunc = getNodeDataFunc
	}
}

// WithNodeDataFunc specifies the callback for inbound NodeData responses
func WithNodeDataFunc(nodeDataFunc NodeDataFunc) EthOptionFunc {
	return func(c *Config) {
		c.NodeDataFunc = nodeDataFunc
	}
}

// WithGetReceiptsFunc specifies the callback for inbound GetReceipts
// requests
func WithGetReceiptsFunc(getReceiptsFunc GetReceiptsFunc) EthOptionFunc {
	return func(c *Config) {
		c.GetReceiptsFunc = getReceiptsFunc
	}
}

// WithReceiptsFunc specifies the callback for inbound Receipts responses
func WithReceiptsFunc(receiptsFunc ReceiptsFunc) EthOptionFunc {
	return func(c *Config) {
		c.ReceiptsFunc = receiptsFunc
	}
}

func (e *Eth) messageHandler(msg protocol.Message) error {
	var err error
	switch msg.Code() {
	case MessageCodeStatus:
		err = e.handleStatus(msg)
	case MessageCodeNewBlockHashes:
		err = e.handleNewBlockHashes(msg)
	case MessageCodeTransactions:
		err = e.handleTransactions(msg)
	case MessageCodeGetBlockHeaders:
		err = e.handleGetBlockHeaders(msg)
	case MessageCodeBlockHeaders:
		err = e.handleBlockHeaders(msg)
	case MessageCodeGetBlockBodies:
		err = e.handleGetBlockBodies(msg)
	case MessageCodeBlockBodies:
		err = e.handleBlockBodies(msg)
	case MessageCodeNewBlock:
		err = e.handleNewBlock(msg)
	case MessageCodeGetNodeData:
		err = e.handleGetNodeData(msg)
	case MessageCodeNodeData:
		err = e.handleNodeData(msg)
	case MessageCodeGetReceipts:
		err = e.handleGetReceipts(msg)
	case MessageCodeReceipts:
		err = e.handleReceipts(msg)
	default:
		err = fmt.Errorf(
			"%s: received unexpected message code %d",
			ProtocolName,
			msg.Code(),
		)
	}
	return err
}

// SendHandshake sends the Status message announcing our protocol version
// and committing to the provided chain identity. Matching the remote's
// Status reply against ours is the session manager's responsibility
func (e *Eth) SendHandshake(chainInfo ChainInfo) error {
	msg := NewMsgStatus(
		uint32(e.config.Version),
		e.config.NetworkId,
		chainInfo.TotalDifficulty,
		chainInfo.BestHash,
		chainInfo.GenesisHash,
	)
	return e.SendMessage(msg)
}

//
// Node Data
//

// SendGetNodeData requests the trie nodes described by the provided
// request descriptor
func (e *Eth) SendGetNodeData(request NodeDataRequest) error {
	return e.sendGetNodeData(request.NodeHashes)
}

func (e *Eth) sendGetNodeData(nodeHashes []types.Hash) error {
	msg := NewMsgGetNodeData(nodeHashes)
	return e.SendMessage(msg)
}

// SendNodeData supplies trie node values to the remote
func (e *Eth) SendNodeData(nodes [][]byte) error {
	msg := NewMsgNodeData(nodes)
	return e.SendMessage(msg)
}

//
// Block Headers
//

// SendGetBlockHeaders requests up to MaxHeaders headers from the remote,
// starting from the request origin if Reverse is false or ending at it if
// Reverse is true
func (e *Eth) SendGetBlockHeaders(request HeaderRequest) error {
	return e.sendGetBlockHeaders(
		request.Origin,
		request.MaxHeaders,
		request.Skip,
		request.Reverse,
	)
}

func (e *Eth) sendGetBlockHeaders(
	origin BlockNumberOrHash,
	maxHeaders uint64,
	skip uint64,
	reverse bool,
) error {
	msg := NewMsgGetBlockHeaders(origin, maxHeaders, skip, reverse)
	return e.SendMessage(msg)
}

// SendBlockHeaders supplies block headers to the remote
func (e *Eth) SendBlockHeaders(headers []types.BlockHeader) error {
	msg := NewMsgBlockHeaders(headers)
	return e.SendMessage(msg)
}

//
// Block Bodies
//

// SendGetBlockBodies requests the block bodies described by the provided
// request descriptor
func (e *Eth) SendGetBlockBodies(request BlockBodiesRequest) error {
	return e.sendGetBlockBodies(request.BlockHashes)
}

func (e *Eth) sendGetBlockBodies(blockHashes []types.Hash) error {
	msg := NewMsgGetBlockBodies(blockHashes)
	return e.SendMessage(msg)
}

// SendBlockBodies supplies block bodies to the remote
func (e *Eth) SendBlockBodies(bodies []types.BlockBody) error {
	msg := NewMsgBlockBodies(bodies)
	return e.SendMessage(msg)
}

//
// Receipts
//

// SendGetReceipts requests the receipt lists described by the provided
// request descriptor
func (e *Eth) SendGetReceipts(request ReceiptsRequest) error {
	return e.sendGetReceipts(request.BlockHashes)
}

func (e *Eth) sendGetReceipts(blockHashes []types.Hash) error {
	msg := NewMsgGetReceipts(blockHashes)
	return e.SendMessage(msg)
}

// SendReceipts supplies one receipt list per requested block to the remote
func (e *Eth) SendReceipts(receipts [][]types.Receipt) error {
	msg := NewMsgReceipts(receipts)
	return e.SendMessage(msg)
}

//
// Announcements
//

// SendTransactions broadcasts signed transactions to the remote
func (e *Eth) SendTransactions(transactions []types.Transaction) error {
	msg := NewMsgTransactions(transactions)
	return e.SendMessage(msg)
}

// SendNewBlock announces a newly mined block to the remote
func (e *Eth) SendNewBlock(block types.Block, totalDifficulty *big.Int) error {
	msg := NewMsgNewBlock(block, totalDifficulty)
	return e.SendMessage(msg)
}

// SendNewBlockHashes announces newly available block hashes to the remote
func (e *Eth) SendNewBlockHashes(hashes []types.NewBlockHash) error {
	msg := NewMsgNewBlockHashes(hashes)
	return e.SendMessage(msg)
}

func (e *Eth) handleStatus(msgGeneric protocol.Message) error {
	if e.config.StatusFunc == nil {
		return fmt.Errorf(
			"received eth Status message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgStatus)
	return e.config.StatusFunc(*msg)
}

func (e *Eth) handleNewBlockHashes(msgGeneric protocol.Message) error {
	if e.config.NewBlockHashesFunc == nil {
		return fmt.Errorf(
			"received eth NewBlockHashes message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgNewBlockHashes)
	return e.config.NewBlockHashesFunc(msg.Hashes)
}

func (e *Eth) handleTransactions(msgGeneric protocol.Message) error {
	if e.config.TransactionsFunc == nil {
		return fmt.Errorf(
			"received eth Transactions message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgTransactions)
	return e.config.TransactionsFunc(msg.Transactions)
}

func (e *Eth) handleGetBlockHeaders(msgGeneric protocol.Message) error {
	if e.config.GetBlockHeadersFunc == nil {
		return fmt.Errorf(
			"received eth GetBlockHeaders message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgGetBlockHeaders)
	request := HeaderRequest{
		Origin:     msg.Origin,
		MaxHeaders: msg.MaxHeaders,
		Skip:       msg.Skip,
		Reverse:    msg.Reverse,
	}
	return e.config.GetBlockHeadersFunc(request)
}

func (e *Eth) handleBlockHeaders(msgGeneric protocol.Message) error {
	if e.config.BlockHeadersFunc == nil {
		return fmt.Errorf(
			"received eth BlockHeaders message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgBlockHeaders)
	return e.config.BlockHeadersFunc(msg.Headers)
}

func (e *Eth) handleGetBlockBodies(msgGeneric protocol.Message) error {
	if e.config.GetBlockBodiesFunc == nil {
		return fmt.Errorf(
			"received eth GetBlockBodies message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgGetBlockBodies)
	return e.config.GetBlockBodiesFunc(msg.Hashes)
}

func (e *Eth) handleBlockBodies(msgGeneric protocol.Message) error {
	if e.config.BlockBodiesFunc == nil {
		return fmt.Errorf(
			"received eth BlockBodies message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgBlockBodies)
	return e.config.BlockBodiesFunc(msg.Bodies)
}

func (e *Eth) handleNewBlock(msgGeneric protocol.Message) error {
	if e.config.NewBlockFunc == nil {
		return fmt.Errorf(
			"received eth NewBlock message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgNewBlock)
	return e.config.NewBlockFunc(msg.Block, msg.TotalDifficulty)
}

func (e *Eth) handleGetNodeData(msgGeneric protocol.Message) error {
	if e.config.GetNodeDataFunc == nil {
		return fmt.Errorf(
			"received eth GetNodeData message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgGetNodeData)
	return e.config.GetNodeDataFunc(msg.Hashes)
}

func (e *Eth) handleNodeData(msgGeneric protocol.Message) error {
	if e.config.NodeDataFunc == nil {
		return fmt.Errorf(
			"received eth NodeData message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgNodeData)
	return e.config.NodeDataFunc(msg.Nodes)
}

func (e *Eth) handleGetReceipts(msgGeneric protocol.Message) error {
	if e.config.GetReceiptsFunc == nil {
		return fmt.Errorf(
			"received eth GetReceipts message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgGetReceipts)
	return e.config.GetReceiptsFunc(msg.Hashes)
}

func (e *Eth) handleReceipts(msgGeneric protocol.Message) error {
	if e.config.ReceiptsFunc == nil {
		return fmt.Errorf(
			"received eth Receipts message but no callback function is defined",
		)
	}
	msg := msgGeneric.(*MsgReceipts)
	return e.config.ReceiptsFunc(msg.Receipts)
}
