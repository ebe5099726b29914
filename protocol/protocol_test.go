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

import (
	"net"
	"testing"

	"github.com/cloudstruct/go-devp2p/muxer"

	"github.com/stretchr/testify/assert"
)

var testCommands = []CommandDefinition{
	{Name: "Foo", Code: 0},
	{Name: "Bar", Code: 1},
	{Name: "Baz", Code: 4},
}

func TestCommandTableLookups(t *testing.T) {
	table := NewCommandTable(5, testCommands)
	assert.Equal(t, 3, table.Count())
	assert.Equal(t, uint8(5), table.Length())
	cmd, ok := table.ByCode(4)
	assert.True(t, ok)
	assert.Equal(t, "Baz", cmd.Name)
	cmd, ok = table.ByName("Bar")
	assert.True(t, ok)
	assert.Equal(t, uint8(1), cmd.Code)
	_, ok = table.ByCode(2)
	assert.False(t, ok)
	_, ok = table.ByName("Quux")
	assert.False(t, ok)
}

func TestCommandTableOrder(t *testing.T) {
	table := NewCommandTable(5, testCommands)
	commands := table.Commands()
	assert.Len(t, commands, 3)
	for i, cmd := range commands {
		assert.Equal(t, testCommands[i], cmd)
	}
}

type testMessage struct {
	MessageBase
	Value uint64
}

func TestSendMessageUnknownCommand(t *testing.T) {
	connA, connB := net.Pipe()
	defer connA.Close()
	defer connB.Close()
	m := muxer.New(connA)
	defer m.Stop()
	p := New(ProtocolConfig{
		Name:     "test",
		Commands: NewCommandTable(5, testCommands),
		Muxer:    m,
	})
	defer p.Stop()
	msg := &testMessage{
		MessageBase: MessageBase{MessageCode: 9},
	}
	err := p.SendMessage(msg)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestCommandIdOffset(t *testing.T) {
	connA, connB := net.Pipe()
	defer connA.Close()
	defer connB.Close()
	m := muxer.New(connA)
	defer m.Stop()
	p1 := New(ProtocolConfig{
		Name:     "test1",
		Commands: NewCommandTable(17, testCommands),
		Muxer:    m,
	})
	defer p1.Stop()
	p2 := New(ProtocolConfig{
		Name:     "test2",
		Commands: NewCommandTable(8, testCommands),
		Muxer:    m,
	})
	defer p2.Stop()
	assert.Equal(t, muxer.BaseProtocolLength, p1.CommandIdOffset())
	assert.Equal(t, muxer.BaseProtocolLength+17, p2.CommandIdOffset())
}
