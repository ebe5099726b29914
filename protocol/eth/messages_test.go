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
	"encoding/hex"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/cloudstruct/go-devp2p/cbor"
	"github.com/cloudstruct/go-devp2p/protocol"
	"github.com/cloudstruct/go-devp2p/types"
)

var (
	testHash1 = mustHash("11")
	testHash2 = mustHash("22")
	testHash3 = mustHash("33")
)

// mustHash returns a Hash with the provided byte repeated
func mustHash(b string) types.Hash {
	h, err := types.NewHashFromHex(strings.Repeat(b, types.HashLength))
	if err != nil {
		panic(err)
	}
	return h
}

type testDefinition struct {
	CborHex     string
	Message     protocol.Message
	MessageCode uint8
}

var tests = []testDefinition{
	{
		// {td: 100, best_hash: 0x11*32, network_id: 1,
		//  genesis_hash: 0x22*32, protocol_version: 63}
		CborHex: "a5" +
			"6274641864" +
			"69626573745f686173685820" + strings.Repeat("11", 32) +
			"6a6e6574776f726b5f696401" +
			"6c67656e657369735f686173685820" + strings.Repeat("22", 32) +
			"7070726f746f636f6c5f76657273696f6e183f",
		Message: NewMsgStatus(
			63,
			1,
			big.NewInt(100),
			testHash1,
			testHash2,
		),
		MessageCode: MessageCodeStatus,
	},
	{
		// {block_number_or_hash: 42, max_headers: 5, skip: 0,
		//  reverse: false}
		CborHex: "a4" +
			"64736b697000" +
			"6772657665727365f4" +
			"6b6d61785f6865616465727305" +
			"74626c6f636b5f6e756d6265725f6f725f68617368182a",
		Message: NewMsgGetBlockHeaders(
			NewBlockNumber(42),
			5,
			0,
			false,
		),
		MessageCode: MessageCodeGetBlockHeaders,
	},
	{
		// [0x11*32]
		CborHex:     "815820" + strings.Repeat("11", 32),
		Message:     NewMsgGetBlockBodies([]types.Hash{testHash1}),
		MessageCode: MessageCodeGetBlockBodies,
	},
	{
		// [0x11*32, 0x22*32, 0x33*32]
		CborHex: "83" +
			"5820" + strings.Repeat("11", 32) +
			"5820" + strings.Repeat("22", 32) +
			"5820" + strings.Repeat("33", 32),
		Message: NewMsgGetNodeData(
			[]types.Hash{testHash1, testHash2, testHash3},
		),
		MessageCode: MessageCodeGetNodeData,
	},
	{
		// [h'0badbeef']
		CborHex:     "81440badbeef",
		Message:     NewMsgNodeData([][]byte{{0x0b, 0xad, 0xbe, 0xef}}),
		MessageCode: MessageCodeNodeData,
	},
	{
		// [0x33*32]
		CborHex:     "815820" + strings.Repeat("33", 32),
		Message:     NewMsgGetReceipts([]types.Hash{testHash3}),
		MessageCode: MessageCodeGetReceipts,
	},
	{
		// [[0x11*32, 7]]
		CborHex: "8182" +
			"5820" + strings.Repeat("11", 32) +
			"07",
		Message: NewMsgNewBlockHashes(
			[]types.NewBlockHash{{Hash: testHash1, Number: 7}},
		),
		MessageCode: MessageCodeNewBlockHashes,
	},
}

func TestDecode(t *testing.T) {
	for _, test := range tests {
		cborData, err := hex.DecodeString(test.CborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		msg, err := NewMsgFromCbor(test.MessageCode, cborData)
		if err != nil {
			t.Fatalf("failed to decode CBOR: %s", err)
		}
		// Set the raw CBOR so the comparison should succeed
		test.Message.SetCbor(cborData)
		if !reflect.DeepEqual(msg, test.Message) {
			t.Fatalf(
				"CBOR did not decode to expected message object\n  got: %#v\n  wanted: %#v",
				msg,
				test.Message,
			)
		}
	}
}

func TestEncode(t *testing.T) {
	for _, test := range tests {
		cborData, err := cbor.Encode(test.Message)
		if err != nil {
			t.Fatalf("failed to encode message to CBOR: %s", err)
		}
		cborHex := hex.EncodeToString(cborData)
		if cborHex != test.CborHex {
			t.Fatalf(
				"message did not encode to expected CBOR\n  got: %s\n  wanted: %s",
				cborHex,
				test.CborHex,
			)
		}
	}
}

func TestEncodeIdempotent(t *testing.T) {
	msg := NewMsgBlockHeaders([]types.BlockHeader{
		{
			ParentHash: testHash1,
			Difficulty: big.NewInt(131072),
			Number:     42,
		},
	})
	data1, err := cbor.Encode(msg)
	if err != nil {
		t.Fatalf("failed to encode message to CBOR: %s", err)
	}
	data2, err := cbor.Encode(msg)
	if err != nil {
		t.Fatalf("failed to encode message to CBOR: %s", err)
	}
	if hex.EncodeToString(data1) != hex.EncodeToString(data2) {
		t.Fatalf(
			"repeated encoding produced different CBOR\n  first: %x\n  second: %x",
			data1,
			data2,
		)
	}
}

func TestBlockNumberOrHashDiscriminator(t *testing.T) {
	// Number variant round-trips as a number
	origin := NewBlockNumber(42)
	data, err := cbor.Encode(origin)
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	var decoded BlockNumberOrHash
	if _, err := cbor.Decode(data, &decoded); err != nil {
		t.Fatalf("failed to decode: %s", err)
	}
	if decoded.IsHash() {
		t.Fatalf("number variant decoded as hash")
	}
	number, ok := decoded.Number()
	if !ok || number != 42 {
		t.Fatalf("did not get expected block number: got %d", number)
	}
	if _, ok := decoded.Hash(); ok {
		t.Fatalf("hash variant unexpectedly present")
	}
	// Hash variant round-trips as a hash
	origin = NewBlockHash(testHash1)
	data, err = cbor.Encode(origin)
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	decoded = BlockNumberOrHash{}
	if _, err := cbor.Decode(data, &decoded); err != nil {
		t.Fatalf("failed to decode: %s", err)
	}
	if !decoded.IsHash() {
		t.Fatalf("hash variant decoded as number")
	}
	hash, ok := decoded.Hash()
	if !ok || hash != testHash1 {
		t.Fatalf("did not get expected block hash: got %s", hash)
	}
	if _, ok := decoded.Number(); ok {
		t.Fatalf("number variant unexpectedly present")
	}
}

func TestGetBlockBodiesOrderPreserved(t *testing.T) {
	hashes := []types.Hash{testHash2, testHash3, testHash1}
	msg := NewMsgGetBlockBodies(hashes)
	data, err := cbor.Encode(msg)
	if err != nil {
		t.Fatalf("failed to encode message to CBOR: %s", err)
	}
	decoded, err := NewMsgFromCbor(MessageCodeGetBlockBodies, data)
	if err != nil {
		t.Fatalf("failed to decode CBOR: %s", err)
	}
	decodedMsg := decoded.(*MsgGetBlockBodies)
	if !reflect.DeepEqual(decodedMsg.Hashes, hashes) {
		t.Fatalf(
			"hash order not preserved\n  got: %v\n  wanted: %v",
			decodedMsg.Hashes,
			hashes,
		)
	}
}

func TestStatusRoundTrip(t *testing.T) {
	msg := NewMsgStatus(63, 1, big.NewInt(100), testHash1, testHash2)
	data, err := cbor.Encode(msg)
	if err != nil {
		t.Fatalf("failed to encode message to CBOR: %s", err)
	}
	decoded, err := NewMsgFromCbor(MessageCodeStatus, data)
	if err != nil {
		t.Fatalf("failed to decode CBOR: %s", err)
	}
	decodedMsg := decoded.(*MsgStatus)
	if decodedMsg.ProtocolVersion != 63 {
		t.Fatalf(
			"did not get expected protocol version: got %d",
			decodedMsg.ProtocolVersion,
		)
	}
	if decodedMsg.NetworkId != 1 {
		t.Fatalf(
			"did not get expected network ID: got %d",
			decodedMsg.NetworkId,
		)
	}
	if decodedMsg.TotalDifficulty.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf(
			"did not get expected total difficulty: got %s",
			decodedMsg.TotalDifficulty,
		)
	}
	if decodedMsg.BestHash != testHash1 {
		t.Fatalf("did not get expected best hash: got %s", decodedMsg.BestHash)
	}
	if decodedMsg.GenesisHash != testHash2 {
		t.Fatalf(
			"did not get expected genesis hash: got %s",
			decodedMsg.GenesisHash,
		)
	}
}
