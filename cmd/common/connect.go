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
	"fmt"
	"net"
	"os"
)

func CreateClientConnection(f *GlobalFlags) net.Conn {
	if f.Address == "" {
		fmt.Printf("You must specify -address\n\n")
		f.Flagset.PrintDefaults()
		os.Exit(1)
	}
	conn, err := net.Dial("tcp", f.Address)
	if err != nil {
		fmt.Printf("Connection failed: %s\n", err)
		os.Exit(1)
	}
	return conn
}
