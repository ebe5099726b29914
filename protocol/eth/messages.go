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

package eth

import (
	"fmt"
	"math/big"

	"github.com/cloudstruct/go-devp2p/cbor"
	"github.com/cloudstruct/go-devp2p/protocol"
	"github.com/cloudstruct/go-devp2p/types"
)

// Relative command codes within the eth command ID space. Codes 0x08-0x0c
// are reserved: the eth/63 additions were assigned above them, and the
// resulting gaps are part of the wire format
const (
	MessageCodeStatus          uint8 = 0x00
	MessageCodeNewBlockHashes  uint8 = 0x01
	MessageCodeTransactions    uint8 = 0x02
	MessageCodeGetBlockHeaders uint8 = 0x03
	MessageCodeBlockHeaders    uint8 = 0x04
	MessageCodeGetBlockBodies  uint8 = 0x05
	MessageCodeBlockBodies     uint8 = 0x06
	MessageCodeNewBlock        uint8 = 0x07
	MessageCodeGetNodeData     uint8 = 0x0d
	MessageCodeNodeData        uint8 = 0x0e
	MessageCodeGetReceipts     uint8 = 0x0f
	MessageCodeReceipts        uint8 = 0x10
)

// NewMsgFromCbor decodes an inbound message payload into the message type
// matching the provided command code
func NewMsgFromCbor(msgCode uint8, data []byte) (protocol.Message, error) {
	base := protocol.MessageBase{MessageCode: msgCode}
	var ret protocol.Message
	switch msgCode {
	case MessageCodeStatus:
		ret = &MsgStatus{MessageBase: base}
	case MessageCodeNewBlockHashes:
		ret = &MsgNewBlockHashes{MessageBase: base}
	case MessageCodeTransactions:
		ret = &MsgTransactions{MessageBase: base}
	case MessageCodeGetBlockHeaders:
		ret = &MsgGetBlockHeaders{MessageBase: base}
	case MessageCodeBlockHeaders:
		ret = &MsgBlockHeaders{MessageBase: base}
	case MessageCodeGetBlockBodies:
		ret = &MsgGetBlockBodies{MessageBase: base}
	case MessageCodeBlockBodies:
		ret = &MsgBlockBodies{MessageBase: base}
	case MessageCodeNewBlock:
		ret = &MsgNewBlock{MessageBase: base}
	case MessageCodeGetNodeData:
		ret = &MsgGetNodeData{MessageBase: base}
	case MessageCodeNodeData:
		ret = &MsgNodeData{MessageBase: base}
	case MessageCodeGetReceipts:
		ret = &MsgGetReceipts{MessageBase: base}
	case MessageCodeReceipts:
		ret = &MsgReceipts{MessageBase: base}
	default:
		return nil, fmt.Errorf(
			"%s: unknown message code: %d",
			ProtocolName,
			msgCode,
		)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, fmt.Errorf("%s: decode error: %w", ProtocolName, err)
	}
	// Store the original message CBOR
	ret.SetCbor(data)
	return ret, nil
}

// BlockNumberOrHash identifies the origin of a header request as either a
// block number or a block hash. Exactly one of the two is present: the
// variant is fixed at construction. On the wire the discriminator is the
// CBOR major type (unsigned integer vs 32-byte byte string)
type BlockNumberOrHash struct {
	number uint64
	hash   []byte
}

// NewBlockNumber returns a BlockNumberOrHash holding a block number
func NewBlockNumber(number uint64) BlockNumberOrHash {
	return BlockNumberOrHash{
		number: number,
	}
}

// NewBlockHash returns a BlockNumberOrHash holding a block hash
func NewBlockHash(hash types.Hash) BlockNumberOrHash {
	return BlockNumberOrHash{
		hash: hash.Bytes(),
	}
}

// IsHash returns true when the hash variant is present
func (b BlockNumberOrHash) IsHash() bool {
	return b.hash != nil
}

// Number returns the block number and whether that variant is present
func (b BlockNumberOrHash) Number() (uint64, bool) {
	if b.hash != nil {
		return 0, false
	}
	return b.number, true
}

// Hash returns the block hash and whether that variant is present
func (b BlockNumberOrHash) Hash() (types.Hash, bool) {
	if b.hash == nil {
		return types.Hash{}, false
	}
	var h types.Hash
	copy(h[:], b.hash)
	return h, true
}

func (b BlockNumberOrHash) MarshalCBOR() ([]byte, error) {
	if b.hash != nil {
		return cbor.Encode(b.hash)
	}
	return cbor.Encode(b.number)
}

func (b *BlockNumberOrHash) UnmarshalCBOR(data []byte) error {
	var tmp any
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	switch v := tmp.(type) {
	case uint64:
		b.number = v
		b.hash = nil
	case []byte:
		if len(v) != types.HashLength {
			return fmt.Errorf(
				"invalid block hash length: %d",
				len(v),
			)
		}
		b.hash = v
	default:
		return fmt.Errorf(
			"unexpected type for block number or hash: %T",
			tmp,
		)
	}
	return nil
}

// MsgStatus announces our protocol version and chain identity. It encodes
// as a mapping with fixed keys
type MsgStatus struct {
	protocol.MessageBase
	ProtocolVersion uint32     `cbor:"protocol_version"`
	NetworkId       uint64     `cbor:"network_id"`
	TotalDifficulty *big.Int   `cbor:"td"`
	BestHash        types.Hash `cbor:"best_hash"`
	GenesisHash     types.Hash `cbor:"genesis_hash"`
}

func NewMsgStatus(
	protocolVersion uint32,
	networkId uint64,
	totalDifficulty *big.Int,
	bestHash types.Hash,
	genesisHash types.Hash,
) *MsgStatus {
	m := &MsgStatus{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeStatus,
		},
		ProtocolVersion: protocolVersion,
		NetworkId:       networkId,
		TotalDifficulty: totalDifficulty,
		BestHash:        bestHash,
		GenesisHash:     genesisHash,
	}
	return m
}

func (m *MsgStatus) Code() uint8 {
	return MessageCodeStatus
}

// MsgNewBlockHashes announces block hashes that became available on our
// side of the chain. It encodes as a sequence of (hash, number) pairs
type MsgNewBlockHashes struct {
	protocol.MessageBase
	Hashes []types.NewBlockHash
}

func NewMsgNewBlockHashes(hashes []types.NewBlockHash) *MsgNewBlockHashes {
	m := &MsgNewBlockHashes{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeNewBlockHashes,
		},
		Hashes: hashes,
	}
	return m
}

func (m *MsgNewBlockHashes) Code() uint8 {
	return MessageCodeNewBlockHashes
}

func (m *MsgNewBlockHashes) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(m.Hashes)
}

func (m *MsgNewBlockHashes) UnmarshalCBOR(data []byte) error {
	var tmp []types.NewBlockHash
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Hashes = tmp
	return nil
}

// MsgTransactions broadcasts signed transactions. It encodes as a sequence
type MsgTransactions struct {
	protocol.MessageBase
	Transactions []types.Transaction
}

func NewMsgTransactions(transactions []types.Transaction) *MsgTransactions {
	m := &MsgTransactions{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeTransactions,
		},
		Transactions: transactions,
	}
	return m
}

func (m *MsgTransactions) Code() uint8 {
	return MessageCodeTransactions
}

func (m *MsgTransactions) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(m.Transactions)
}

func (m *MsgTransactions) UnmarshalCBOR(data []byte) error {
	var tmp []types.Transaction
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Transactions = tmp
	return nil
}

// MsgGetBlockHeaders requests up to MaxHeaders headers starting at Origin,
// walking forward or backward with an optional skip distance. It encodes
// as a mapping with fixed keys
type MsgGetBlockHeaders struct {
	protocol.MessageBase
	Origin     BlockNumberOrHash `cbor:"block_number_or_hash"`
	MaxHeaders uint64            `cbor:"max_headers"`
	Skip       uint64            `cbor:"skip"`
	Reverse    bool              `cbor:"reverse"`
}

func NewMsgGetBlockHeaders(
	origin BlockNumberOrHash,
	maxHeaders uint64,
	skip uint64,
	reverse bool,
) *MsgGetBlockHeaders {
	m := &MsgGetBlockHeaders{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeGetBlockHeaders,
		},
		Origin:     origin,
		MaxHeaders: maxHeaders,
		Skip:       skip,
		Reverse:    reverse,
	}
	return m
}

func (m *MsgGetBlockHeaders) Code() uint8 {
	return MessageCodeGetBlockHeaders
}

// MsgBlockHeaders supplies the headers for an earlier GetBlockHeaders
// request. It encodes as a sequence
type MsgBlockHeaders struct {
	protocol.MessageBase
	Headers []types.BlockHeader
}

func NewMsgBlockHeaders(headers []types.BlockHeader) *MsgBlockHeaders {
	m := &MsgBlockHeaders{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeBlockHeaders,
		},
		Headers: headers,
	}
	return m
}

func (m *MsgBlockHeaders) Code() uint8 {
	return MessageCodeBlockHeaders
}

func (m *MsgBlockHeaders) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(m.Headers)
}

func (m *MsgBlockHeaders) UnmarshalCBOR(data []byte) error {
	var tmp []types.BlockHeader
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Headers = tmp
	return nil
}

// MsgGetBlockBodies requests the bodies for the specified block hashes.
// It encodes as a sequence of hashes, and the reply is expected to
// correlate positionally, so order is preserved as given
type MsgGetBlockBodies struct {
	protocol.MessageBase
	Hashes []types.Hash
}

func NewMsgGetBlockBodies(hashes []types.Hash) *MsgGetBlockBodies {
	m := &MsgGetBlockBodies{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeGetBlockBodies,
		},
		Hashes: hashes,
	}
	return m
}

func (m *MsgGetBlockBodies) Code() uint8 {
	return MessageCodeGetBlockBodies
}

func (m *MsgGetBlockBodies) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(m.Hashes)
}

func (m *MsgGetBlockBodies) UnmarshalCBOR(data []byte) error {
	var tmp []types.Hash
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Hashes = tmp
	return nil
}

// MsgBlockBodies supplies the bodies for an earlier GetBlockBodies request.
// It encodes as a sequence
type MsgBlockBodies struct {
	protocol.MessageBase
	Bodies []types.BlockBody
}

func NewMsgBlockBodies(bodies []types.BlockBody) *MsgBlockBodies {
	m := &MsgBlockBodies{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeBlockBodies,
		},
		Bodies: bodies,
	}
	return m
}

func (m *MsgBlockBodies) Code() uint8 {
	return MessageCodeBlockBodies
}

func (m *MsgBlockBodies) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(m.Bodies)
}

func (m *MsgBlockBodies) UnmarshalCBOR(data []byte) error {
	var tmp []types.BlockBody
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Bodies = tmp
	return nil
}

// MsgNewBlock announces a newly mined block along with the total difficulty
// of the chain it extends. It encodes as the pair [block, td]
type MsgNewBlock struct {
	protocol.MessageBase
	Block           types.Block
	TotalDifficulty *big.Int
}

func NewMsgNewBlock(block types.Block, totalDifficulty *big.Int) *MsgNewBlock {
	m := &MsgNewBlock{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeNewBlock,
		},
		Block:           block,
		TotalDifficulty: totalDifficulty,
	}
	return m
}

func (m *MsgNewBlock) Code() uint8 {
	return MessageCodeNewBlock
}

func (m *MsgNewBlock) MarshalCBOR() ([]byte, error) {
	tmp := []any{m.Block, m.TotalDifficulty}
	return cbor.Encode(tmp)
}

func (m *MsgNewBlock) UnmarshalCBOR(data []byte) error {
	var tmp struct {
		cbor.StructAsArray
		Block           types.Block
		TotalDifficulty *big.Int
	}
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Block = tmp.Block
	m.TotalDifficulty = tmp.TotalDifficulty
	return nil
}

// MsgGetNodeData requests state trie nodes by hash. It encodes as a
// sequence of hashes, order preserved
type MsgGetNodeData struct {
	protocol.MessageBase
	Hashes []types.Hash
}

func NewMsgGetNodeData(hashes []types.Hash) *MsgGetNodeData {
	m := &MsgGetNodeData{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeGetNodeData,
		},
		Hashes: hashes,
	}
	return m
}

func (m *MsgGetNodeData) Code() uint8 {
	return MessageCodeGetNodeData
}

func (m *MsgGetNodeData) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(m.Hashes)
}

func (m *MsgGetNodeData) UnmarshalCBOR(data []byte) error {
	var tmp []types.Hash
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Hashes = tmp
	return nil
}

// MsgNodeData supplies opaque trie node values for an earlier GetNodeData
// request. It encodes as a sequence of byte strings
type MsgNodeData struct {
	protocol.MessageBase
	Nodes [][]byte
}

func NewMsgNodeData(nodes [][]byte) *MsgNodeData {
	m := &MsgNodeData{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeNodeData,
		},
		Nodes: nodes,
	}
	return m
}

func (m *MsgNodeData) Code() uint8 {
	return MessageCodeNodeData
}

func (m *MsgNodeData) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(m.Nodes)
}

func (m *MsgNodeData) UnmarshalCBOR(data []byte) error {
	var tmp [][]byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Nodes = tmp
	return nil
}

// MsgGetReceipts requests the receipt lists for the specified block hashes.
// It encodes as a sequence of hashes, order preserved
type MsgGetReceipts struct {
	protocol.MessageBase
	Hashes []types.Hash
}

func NewMsgGetReceipts(hashes []types.Hash) *MsgGetReceipts {
	m := &MsgGetReceipts{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeGetReceipts,
		},
		Hashes: hashes,
	}
	return m
}

func (m *MsgGetReceipts) Code() uint8 {
	return MessageCodeGetReceipts
}

func (m *MsgGetReceipts) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(m.Hashes)
}

func (m *MsgGetReceipts) UnmarshalCBOR(data []byte) error {
	var tmp []types.Hash
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Hashes = tmp
	return nil
}

// MsgReceipts supplies one receipt list per requested block for an earlier
// GetReceipts request. It encodes as a sequence of sequences
type MsgReceipts struct {
	protocol.MessageBase
	Receipts [][]types.Receipt
}

func NewMsgReceipts(receipts [][]types.Receipt) *MsgReceipts {
	m := &MsgReceipts{
		MessageBase: protocol.MessageBase{
			MessageCode: MessageCodeReceipts,
		},
		Receipts: receipts,
	}
	return m
}

func (m *MsgReceipts) Code() uint8 {
	return MessageCodeReceipts
}

func (m *MsgReceipts) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(m.Receipts)
}

func (m *MsgReceipts) UnmarshalCBOR(data []byte) error {
	var tmp [][]types.Receipt
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	m.Receipts = tmp
	return nil
}
