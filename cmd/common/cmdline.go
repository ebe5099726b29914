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

package common

import (
	"flag"
	"fmt"
	"os"

	devp2p "github.com/cloudstruct/go-devp2p"
)

type GlobalFlags struct {
	Flagset   *flag.FlagSet
	Address   string
	Network   string
	NetworkId int
	Version   int
	Snappy    bool
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.Address,
		"address",
		"",
		"TCP address to connect to in address:port format",
	)
	f.Flagset.StringVar(
		&f.Network,
		"network",
		"mainnet",
		"specifies network that node is participating in",
	)
	f.Flagset.IntVar(
		&f.NetworkId,
		"network-id",
		0,
		"specifies network ID value. this overrides the -network option",
	)
	f.Flagset.IntVar(
		&f.Version,
		"version",
		63,
		"specifies eth protocol version to use",
	)
	f.Flagset.BoolVar(
		&f.Snappy,
		"snappy",
		false,
		"enable snappy compression of frame payloads",
	)
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	if f.NetworkId == 0 {
		network := devp2p.NetworkByName(f.Network)
		if network == devp2p.NetworkInvalid {
			fmt.Printf("Invalid network specified: %s\n", f.Network)
			os.Exit(1)
		}
		f.NetworkId = int(network.Id)
	}
}
