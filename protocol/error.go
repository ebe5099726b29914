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

package protocol

import "errors"

var (
	// ErrUnknownCommand is returned when a message's command code has no
	// entry in the sub-protocol's command table
	ErrUnknownCommand = errors.New("unknown command")

	// ErrProtocolShuttingDown is returned when a send is attempted while
	// the protocol is shutting down
	ErrProtocolShuttingDown = errors.New("protocol is shutting down")
)
