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

// Package types contains the domain value types carried by eth wire messages
package types

import (
	"encoding/hex"
	"fmt"

	"github.com/cloudstruct/go-devp2p/cbor"
	"golang.org/x/crypto/sha3"
)

const (
	HashLength    = 32
	AddressLength = 20
	NonceLength   = 8
	BloomLength   = 256
)

// Hash represents a 32-byte Keccak-256 hash
type Hash [HashLength]byte

// NewHash returns a Hash from the provided bytes. An error is returned if
// the length is wrong
func NewHash(data []byte) (Hash, error) {
	var h Hash
	if len(data) != HashLength {
		return h, fmt.Errorf("invalid hash length: %d", len(data))
	}
	copy(h[:], data)
	return h, nil
}

// NewHashFromHex returns a Hash from the provided hex string
func NewHashFromHex(hexData string) (Hash, error) {
	data, err := hex.DecodeString(hexData)
	if err != nil {
		return Hash{}, err
	}
	return NewHash(data)
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(h[:])
}

func (h *Hash) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != HashLength {
		return fmt.Errorf("invalid hash length: %d", len(tmp))
	}
	copy(h[:], tmp)
	return nil
}

// Address represents a 20-byte account address
type Address [AddressLength]byte

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(a[:])
}

func (a *Address) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != AddressLength {
		return fmt.Errorf("invalid address length: %d", len(tmp))
	}
	copy(a[:], tmp)
	return nil
}

// BlockNonce represents the 8-byte proof-of-work nonce from a block header
type BlockNonce [NonceLength]byte

func (n BlockNonce) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(n[:])
}

func (n *BlockNonce) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != NonceLength {
		return fmt.Errorf("invalid nonce length: %d", len(tmp))
	}
	copy(n[:], tmp)
	return nil
}

// Bloom represents a 256-byte log bloom filter
type Bloom [BloomLength]byte

func (b Bloom) Bytes() []byte {
	return b[:]
}

func (b Bloom) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(b[:])
}

func (b *Bloom) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != BloomLength {
		return fmt.Errorf("invalid bloom length: %d", len(tmp))
	}
	copy(b[:], tmp)
	return nil
}

// Keccak256Hash returns the Keccak-256 hash of the provided data
func Keccak256Hash(data ...[]byte) Hash {
	var ret Hash
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	h.Sum(ret[:0])
	return ret
}
