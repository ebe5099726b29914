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

// Log represents a single log entry generated during transaction execution
type Log struct {
	cbor.StructAsArray
	Address Address
	Topics  []Hash
	Data    []byte
}

// Receipt represents a transaction receipt as carried by Receipts messages.
// PostStateOrStatus holds either an intermediate state root (32 bytes) or a
// status code (1 byte), depending on the fork the block was mined under
type Receipt struct {
	cbor.StructAsArray
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Bloom             Bloom
	Logs              []Log
}
