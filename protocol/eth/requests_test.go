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
	"testing"

	"github.com/cloudstruct/go-devp2p/types"

	"github.com/stretchr/testify/assert"
)

func TestNewHeaderRequest(t *testing.T) {
	request, err := NewHeaderRequest(NewBlockNumber(42), 5, 0, false)
	assert.NoError(t, err)
	number, ok := request.Origin.Number()
	assert.True(t, ok)
	assert.Equal(t, uint64(42), number)
	assert.Equal(t, uint64(5), request.MaxHeaders)
	_, err = NewHeaderRequest(NewBlockNumber(42), 0, 0, false)
	assert.ErrorIs(t, err, ErrZeroMaxHeaders)
}

func TestNewBlockBodiesRequestEmpty(t *testing.T) {
	_, err := NewBlockBodiesRequest(nil)
	assert.ErrorIs(t, err, ErrEmptyHashList)
	_, err = NewBlockBodiesRequest([]types.Hash{})
	assert.ErrorIs(t, err, ErrEmptyHashList)
}

func TestNewReceiptsRequestEmpty(t *testing.T) {
	_, err := NewReceiptsRequest(nil)
	assert.ErrorIs(t, err, ErrEmptyHashList)
}

func TestNewNodeDataRequestEmpty(t *testing.T) {
	_, err := NewNodeDataRequest(nil)
	assert.ErrorIs(t, err, ErrEmptyHashList)
}

func TestRequestDescriptorCopiesHashes(t *testing.T) {
	hashes := []types.Hash{testHash1, testHash2}
	request, err := NewBlockBodiesRequest(hashes)
	assert.NoError(t, err)
	// Mutating the input slice must not affect the descriptor
	hashes[0] = testHash3
	assert.Equal(t, testHash1, request.BlockHashes[0])
	assert.Equal(t, testHash2, request.BlockHashes[1])
}
