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
	"github.com/cloudstruct/go-devp2p/cbor"
)

// BlockBody represents the transactions and uncle headers of a single block,
// as carried by BlockBodies messages
type BlockBody struct {
	cbor.StructAsArray
	Transactions []Transaction
	Uncles       []BlockHeader
}

// Block represents a complete block as carried by NewBlock messages
type Block struct {
	cbor.StructAsArray
	Header       BlockHeader
	Transactions []Transaction
	Uncles       []BlockHeader
}

// Body returns the block body portion of the block
func (b *Block) Body() BlockBody {
	return BlockBody{
		Transactions: b.Transactions,
		Uncles:       b.Uncles,
	}
}

// NewBlockHash pairs a block hash with its block number, as carried by
// NewBlockHashes announcements
type NewBlockHash struct {
	cbor.StructAsArray
	Hash   Hash
	Number uint64
}
