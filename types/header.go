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

	"github.com/cloudstruct/go-devp2p/cbor"
)

// BlockHeader represents a block header as carried by BlockHeaders messages.
// The fields encode as an ordered array
type BlockHeader struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	ParentHash  Hash
	UncleHash   Hash
	Coinbase    Address
	StateRoot   Hash
	TxRoot      Hash
	ReceiptRoot Hash
	Bloom       Bloom
	Difficulty  *big.Int
	Number      uint64
	GasLimit    uint64
	GasUsed     uint64
	Time        uint64
	Extra       []byte
	MixDigest   Hash
	Nonce       BlockNonce

	hash *Hash
}

func (h *BlockHeader) UnmarshalCBOR(cborData []byte) error {
	// Decode generically and store the original CBOR
	return h.UnmarshalCbor(cborData, h)
}

// Hash returns the Keccak-256 hash of the encoded header. The value is
// computed from the original CBOR when the header was decoded off the wire
// and cached after the first call
func (h *BlockHeader) Hash() Hash {
	if h.hash == nil {
		data := h.Cbor()
		if data == nil {
			data, _ = cbor.Encode(h)
		}
		tmpHash := Keccak256Hash(data)
		h.hash = &tmpHash
	}
	return *h.hash
}
