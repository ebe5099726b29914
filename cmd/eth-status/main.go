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

package main

import (
	"fmt"
	"math/big"
	"os"

	devp2p "github.com/cloudstruct/go-devp2p"
	"github.com/cloudstruct/go-devp2p/cmd/common"
	"github.com/cloudstruct/go-devp2p/protocol/eth"
)

type ethStatusFlags struct {
	*common.GlobalFlags
}

func main() {
	// Parse commandline
	f := ethStatusFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Parse()
	network := devp2p.NetworkById(uint64(f.NetworkId))
	if network == devp2p.NetworkInvalid {
		fmt.Printf("Invalid network ID specified: %d\n", f.NetworkId)
		os.Exit(1)
	}
	// Create connection
	conn := common.CreateClientConnection(f.GlobalFlags)
	errorChan := make(chan error)
	go func() {
		for {
			err := <-errorChan
			fmt.Printf("ERROR(async): %s\n", err)
			os.Exit(1)
		}
	}()
	// We present the genesis block as our best block, since we don't carry
	// any chain state of our own
	o, err := devp2p.New(
		devp2p.WithConnection(conn),
		devp2p.WithNetwork(network),
		devp2p.WithChainInfo(eth.ChainInfo{
			TotalDifficulty: big.NewInt(0),
			BestHash:        network.GenesisHash,
			GenesisHash:     network.GenesisHash,
		}),
		devp2p.WithProtocolVersion(uint(f.Version)),
		devp2p.WithErrorChan(errorChan),
		devp2p.WithSnappyCompression(f.Snappy),
	)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	defer o.Close()

	status := o.RemoteStatus()
	fmt.Print("Remote chain status:\n\n")
	fmt.Printf("Protocol version: eth/%d\n", status.ProtocolVersion)
	fmt.Printf("Network ID: %d\n", status.NetworkId)
	fmt.Printf("Total difficulty: %s\n", status.TotalDifficulty)
	fmt.Printf("Best hash: %x\n", status.BestHash)
	fmt.Printf("Genesis hash: %x\n", status.GenesisHash)
}
