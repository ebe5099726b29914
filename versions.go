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

import "github.com/cloudstruct/go-devp2p/protocol/eth"

// ProtocolVersion describes the features of an eth protocol version
type ProtocolVersion struct {
	// eth/63 added the node state retrieval and receipt commands on top
	// of the eth/62 block exchange set
	EnableNodeDataCommands bool
	EnableReceiptCommands  bool
}

// Map of eth protocol versions to protocol features
//
// We don't bother supporting protocol versions before 62 (when the
// block announcement commands replaced the original block propagation)
var protocolVersionMap = map[uint]ProtocolVersion{
	eth.ProtocolVersionEth62: {},
	eth.ProtocolVersionEth63: {
		EnableNodeDataCommands: true,
		EnableReceiptCommands:  true,
	},
}

// GetProtocolVersions returns the supported eth protocol versions in
// order of preference
func GetProtocolVersions() []uint {
	return []uint{
		eth.ProtocolVersionEth63,
		eth.ProtocolVersionEth62,
	}
}

// GetProtocolVersion returns the protocol feature set for the specified
// protocol version. The returned bool indicates whether the version is
// supported
func GetProtocolVersion(version uint) (ProtocolVersion, bool) {
	protoVersion, ok := protocolVersionMap[version]
	return protoVersion, ok
}
