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

package devp2p

import "github.com/cloudstruct/go-devp2p/types"

// genesisHash decodes a well-known genesis block hash constant
func genesisHash(hexData string) types.Hash {
	hash, err := types.NewHashFromHex(hexData)
	if err != nil {
		panic(err)
	}
	return hash
}

// Network definitions
var (
	NetworkMainnet = Network{
		Id:   1,
		Name: "mainnet",
		GenesisHash: genesisHash(
			"d4e56740f876aef8c010b86a40d5f56745a118d0906a34e69aec8c0db1cb8fa3",
		),
	}
	NetworkRopsten = Network{
		Id:   3,
		Name: "ropsten",
		GenesisHash: genesisHash(
			"41941023680923e0fe4d74a34bdac8141f2540e3ae90623718e47d66d1ca4a2d",
		),
	}
	NetworkRinkeby = Network{
		Id:   4,
		Name: "rinkeby",
		GenesisHash: genesisHash(
			"6341fd3daf94b748c72ced5a5b26028f2474f5f00d824504e4fa37a75767e177",
		),
	}
	NetworkGoerli = Network{
		Id:   5,
		Name: "goerli",
		GenesisHash: genesisHash(
			"bf7e331f7f7c1dd2e05159666b3bf8bc7a8a3a9eb1d518969eab529dd9b88c1a",
		),
	}

	NetworkInvalid = Network{
		Id:   0,
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkRopsten,
	NetworkRinkeby,
	NetworkGoerli,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkById returns a predefined network by ID
func NetworkById(id uint64) Network {
	for _, network := range networks {
		if network.Id == id {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents an Ethereum network
type Network struct {
	Id          uint64 // network ID exchanged in the status handshake
	Name        string
	GenesisHash types.Hash
}
