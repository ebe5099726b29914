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

package types

import (
	"math/big"
	"testing"

	"github.com/cloudstruct/go-devp2p/cbor"
	"github.com/stretchr/testify/assert"
)

func TestNewHashLength(t *testing.T) {
	_, err := NewHash([]byte{0x01, 0x02})
	assert.ErrorContains(t, err, "invalid hash length")
	h, err := NewHash(make([]byte, HashLength))
	assert.NoError(t, err)
	assert.Equal(t, Hash{}, h)
}

func TestKeccak256Hash(t *testing.T) {
	// Keccak-256 of empty input
	expected, err := NewHashFromHex(
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
	)
	assert.NoError(t, err)
	assert.Equal(t, expected, Keccak256Hash(nil))
}

func TestHashCborRoundTrip(t *testing.T) {
	h, err := NewHashFromHex(
		"aa000000000000000000000000000000000000000000000000000000000000bb",
	)
	assert.NoError(t, err)
	data, err := cbor.Encode(h)
	assert.NoError(t, err)
	// 32-byte CBOR byte string
	assert.Equal(t, byte(0x58), data[0])
	assert.Equal(t, byte(0x20), data[1])
	var h2 Hash
	_, err = cbor.Decode(data, &h2)
	assert.NoError(t, err)
	assert.Equal(t, h, h2)
}

func TestBlockHeaderHashStable(t *testing.T) {
	header := &BlockHeader{
		ParentHash: Hash{0x01},
		Difficulty: big.NewInt(131072),
		Number:     42,
		GasLimit:   8000000,
		Time:       1438269988,
		Extra:      []byte{},
	}
	data, err := cbor.Encode(header)
	assert.NoError(t, err)
	var decoded BlockHeader
	_, err = cbor.Decode(data, &decoded)
	assert.NoError(t, err)
	// Decoding stores the original CBOR, and the hash is computed from it
	assert.Equal(t, data, decoded.Cbor())
	assert.Equal(t, Keccak256Hash(data), decoded.Hash())
	// A locally-constructed header hashes to the same value
	assert.Equal(t, decoded.Hash(), header.Hash())
	assert.Equal(t, uint64(42), decoded.Number)
}

func TestTransactionRoundTrip(t *testing.T) {
	to := Address{0xde, 0xad}
	tx := &Transaction{
		Nonce:    7,
		GasPrice: big.NewInt(1000000000),
		Gas:      21000,
		To:       &to,
		Value:    big.NewInt(1),
		V:        big.NewInt(27),
		R:        big.NewInt(2),
		S:        big.NewInt(3),
	}
	data, err := cbor.Encode(tx)
	assert.NoError(t, err)
	var decoded Transaction
	_, err = cbor.Decode(data, &decoded)
	assert.NoError(t, err)
	assert.Equal(t, tx.Nonce, decoded.Nonce)
	assert.NotNil(t, decoded.To)
	assert.Equal(t, to, *decoded.To)
	assert.Equal(t, tx.Hash(), decoded.Hash())
}
