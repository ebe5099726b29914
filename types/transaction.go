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

// Transaction represents a signed transaction as carried by Transactions
// messages and block bodies. A nil To address indicates contract creation
type Transaction struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *Address
	Value    *big.Int
	Data     []byte
	V        *big.Int
	R        *big.Int
	S        *big.Int

	hash *Hash
}

func (t *Transaction) UnmarshalCBOR(cborData []byte) error {
	// Decode generically and store the original CBOR
	return t.UnmarshalCbor(cborData, t)
}

// Hash returns the Keccak-256 hash of the encoded transaction, cached after
// the first call
func (t *Transaction) Hash() Hash {
	if t.hash == nil {
		data := t.Cbor()
		if data == nil {
			data, _ = cbor.Encode(t)
		}
		tmpHash := Keccak256Hash(data)
		t.hash = &tmpHash
	}
	return *t.hash
}
