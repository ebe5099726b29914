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
	"errors"

	"github.com/cloudstruct/go-devp2p/types"
)

var (
	// ErrEmptyHashList is returned when a request descriptor is constructed
	// with no hashes
	ErrEmptyHashList = errors.New("hash list cannot be empty")

	// ErrZeroMaxHeaders is returned when a header request is constructed
	// with a zero header count
	ErrZeroMaxHeaders = errors.New("max headers must be greater than zero")
)

// HeaderRequest describes a GetBlockHeaders request: a starting point
// expressed as either a block number or a block hash, a maximum header
// count, a skip distance between returned headers, and the direction to
// walk in. Descriptors are immutable once constructed
type HeaderRequest struct {
	Origin     BlockNumberOrHash
	MaxHeaders uint64
	Skip       uint64
	Reverse    bool
}

// NewHeaderRequest returns a HeaderRequest for the provided parameters.
// The number/hash variants are mutually exclusive by construction of the
// origin. An error is returned for a zero maxHeaders
func NewHeaderRequest(
	origin BlockNumberOrHash,
	maxHeaders uint64,
	skip uint64,
	reverse bool,
) (HeaderRequest, error) {
	if maxHeaders == 0 {
		return HeaderRequest{}, ErrZeroMaxHeaders
	}
	return HeaderRequest{
		Origin:     origin,
		MaxHeaders: maxHeaders,
		Skip:       skip,
		Reverse:    reverse,
	}, nil
}

// BlockBodiesRequest describes a GetBlockBodies request. The hash order is
// preserved end-to-end: replies correlate positionally
type BlockBodiesRequest struct {
	BlockHashes []types.Hash
}

// NewBlockBodiesRequest returns a BlockBodiesRequest for the provided
// hashes. The hashes are copied so that the descriptor is unaffected by
// later changes to the input slice
func NewBlockBodiesRequest(blockHashes []types.Hash) (BlockBodiesRequest, error) {
	if len(blockHashes) == 0 {
		return BlockBodiesRequest{}, ErrEmptyHashList
	}
	tmpHashes := make([]types.Hash, len(blockHashes))
	copy(tmpHashes, blockHashes)
	return BlockBodiesRequest{
		BlockHashes: tmpHashes,
	}, nil
}

// ReceiptsRequest describes a GetReceipts request, hash order preserved
type ReceiptsRequest struct {
	BlockHashes []types.Hash
}

func NewReceiptsRequest(blockHashes []types.Hash) (ReceiptsRequest, error) {
	if len(blockHashes) == 0 {
		return ReceiptsRequest{}, ErrEmptyHashList
	}
	tmpHashes := make([]types.Hash, len(blockHashes))
	copy(tmpHashes, blockHashes)
	return ReceiptsRequest{
		BlockHashes: tmpHashes,
	}, nil
}

// NodeDataRequest describes a GetNodeData request, hash order preserved
type NodeDataRequest struct {
	NodeHashes []types.Hash
}

func NewNodeDataRequest(nodeHashes []types.Hash) (NodeDataRequest, error) {
	if len(nodeHashes) == 0 {
		return NodeDataRequest{}, ErrEmptyHashList
	}
	tmpHashes := make([]types.Hash, len(nodeHashes))
	copy(tmpHashes, nodeHashes)
	return NodeDataRequest{
		NodeHashes: tmpHashes,
	}, nil
}
