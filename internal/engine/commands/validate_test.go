package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
)

func ptr[T any](v T) *T { return &v }

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		batch    []commands.Raw
		expected []string
	}{
		{
			name:     "absent commands",
			batch:    nil,
			expected: []string{"Commands must be an array"},
		},
		{
			name:     "empty batch is valid",
			batch:    []commands.Raw{},
			expected: nil,
		},
		{
			name: "valid mixed batch",
			batch: []commands.Raw{
				{Cmd: commands.CmdAddItem, Character: "char", Item: &commands.ItemArgs{ID: "sword", Count: ptr(1.0)}},
				{Cmd: commands.CmdEquipItem, Character: "char", Item: &commands.ItemArgs{ID: "sword"}},
				{Cmd: commands.CmdSetStat, Character: "user", Stat: &commands.StatArgs{Name: "hp", Value: 10.0}},
				{Cmd: commands.CmdUpdateStat, Character: "user", Stat: &commands.StatArgs{Name: "hp", Change: ptr(-2.0)}},
			},
			expected: nil,
		},
		{
			name: "unknown command",
			batch: []commands.Raw{
				{Cmd: "dropItem", Character: "char"},
			},
			expected: []string{"Invalid command: dropItem"},
		},
		{
			name: "missing character",
			batch: []commands.Raw{
				{Cmd: commands.CmdUnequipItem, Item: &commands.ItemArgs{ID: "cloak"}},
			},
			expected: []string{"Character must be specified for all commands"},
		},
		{
			name: "missing item id",
			batch: []commands.Raw{
				{Cmd: commands.CmdEquipItem, Character: "char"},
				{Cmd: commands.CmdUpdateItem, Character: "char", Item: &commands.ItemArgs{}},
			},
			expected: []string{
				"Item ID required for equipItem",
				"Item ID required for updateItem",
			},
		},
		{
			name: "missing stat name",
			batch: []commands.Raw{
				{Cmd: commands.CmdSetStat, Character: "char", Stat: &commands.StatArgs{Value: 1.0}},
			},
			expected: []string{"Stat name required for stat commands"},
		},
		{
			name: "counts must be positive integers",
			batch: []commands.Raw{
				{Cmd: commands.CmdAddItem, Character: "char", Item: &commands.ItemArgs{ID: "a"}},
				{Cmd: commands.CmdAddItem, Character: "char", Item: &commands.ItemArgs{ID: "b", Count: ptr(0.0)}},
				{Cmd: commands.CmdRemoveItem, Character: "char", Item: &commands.ItemArgs{ID: "c", Count: ptr(1.5)}},
			},
			expected: []string{
				"Item count must be a positive integer for addItem",
				"Item count must be a positive integer for addItem",
				"Item count must be a positive integer for removeItem",
			},
		},
		{
			name: "stat value of the wrong type",
			batch: []commands.Raw{
				{Cmd: commands.CmdUpdateStat, Character: "char", Stat: &commands.StatArgs{Name: "hp", Value: true}},
			},
			expected: []string{"Stat value must be a number or string for updateStat"},
		},
		{
			name: "messages accumulate in command order",
			batch: []commands.Raw{
				{Cmd: commands.CmdAddItem, Item: &commands.ItemArgs{ID: "sword", Count: ptr(1.0)}},
				{Cmd: "explode", Character: "char"},
				{Cmd: commands.CmdUpdateStat, Character: "char"},
			},
			expected: []string{
				"Character must be specified for all commands",
				"Invalid command: explode",
				"Stat name required for stat commands",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, commands.Validate(tc.batch))
		})
	}
}

func TestValidate_UpdateItemCountIsOptional(t *testing.T) {
	assert.Empty(t, commands.Validate([]commands.Raw{
		{Cmd: commands.CmdUpdateItem, Character: "char", Item: &commands.ItemArgs{ID: "sword", Description: ptr("notched")}},
	}))
	assert.Equal(t,
		[]string{"Item count must be a positive integer for updateItem"},
		commands.Validate([]commands.Raw{
			{Cmd: commands.CmdUpdateItem, Character: "char", Item: &commands.ItemArgs{ID: "sword", Count: ptr(-1.0)}},
		}),
	)
}
