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

// CommandDefinition describes a single message kind within a sub-protocol:
// a stable human-readable name and the command's relative code within the
// sub-protocol's command ID space
type CommandDefinition struct {
	Name string
	Code uint8
}

// CommandTable is the fixed, ordered set of commands for one version of a
// sub-protocol. The table order and codes are part of the wire format:
// reordering or renumbering entries breaks compatibility and requires a
// version bump
type CommandTable struct {
	commands []CommandDefinition
	length   uint8
	byCode   map[uint8]CommandDefinition
	byName   map[string]CommandDefinition
}

// NewCommandTable returns a CommandTable for the provided commands. The
// length is the width of the command ID space the sub-protocol consumes
// from the shared ID space, which can exceed the entry count when codes
// are reserved
func NewCommandTable(
	length uint8,
	commands []CommandDefinition,
) CommandTable {
	t := CommandTable{
		commands: commands,
		length:   length,
		byCode:   make(map[uint8]CommandDefinition),
		byName:   make(map[string]CommandDefinition),
	}
	for _, cmd := range commands {
		t.byCode[cmd.Code] = cmd
		t.byName[cmd.Name] = cmd
	}
	return t
}

// Commands returns the table entries in their fixed order
func (t CommandTable) Commands() []CommandDefinition {
	ret := make([]CommandDefinition, len(t.commands))
	copy(ret, t.commands)
	return ret
}

// Count returns the number of entries in the table
func (t CommandTable) Count() int {
	return len(t.commands)
}

// Length returns the width of the command ID space the sub-protocol
// consumes from the shared ID space
func (t CommandTable) Length() uint8 {
	return t.length
}

// ByCode looks up the command with the provided relative code
func (t CommandTable) ByCode(code uint8) (CommandDefinition, bool) {
	cmd, ok := t.byCode[code]
	return cmd, ok
}

// ByName looks up the command with the provided name
func (t CommandTable) ByName(name string) (CommandDefinition, bool) {
	cmd, ok := t.byName[name]
	return cmd, ok
}
