// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
)

// StateBuilder provides a fluent interface for building test states
type StateBuilder struct {
	state *inventory.State
}

// NewStateBuilder creates a builder with empty char and user inventories
func NewStateBuilder() *StateBuilder {
	return &StateBuilder{
		state: inventory.NewDefaultState(),
	}
}

// WithItem adds an item stack to a character
func (b *StateBuilder) WithItem(character, id, name string, count int) *StateBuilder {
	b.state.Inventory(character).Items[id] = &inventory.Item{
		ID:    id,
		Name:  name,
		Count: count,
	}
	return b
}

// WithDescribedItem adds an item stack with a description
func (b *StateBuilder) WithDescribedItem(character, id, name, description string, count int) *StateBuilder {
	b.WithItem(character, id, name, count)
	b.state.Inventory(character).Items[id].Description = description
	return b
}

// WithEquipped marks item ids as equipped for a character
func (b *StateBuilder) WithEquipped(character string, ids ...string) *StateBuilder {
	inv := b.state.Inventory(character)
	for _, id := range ids {
		inv.Equip(id)
	}
	return b
}

// WithStat sets a stat on a character
func (b *StateBuilder) WithStat(character, name string, value inventory.StatValue) *StateBuilder {
	b.state.CharacterStats(character)[name] = &inventory.Stat{
		Name:  name,
		Value: value,
	}
	return b
}

// Build returns a copy of the built state
func (b *StateBuilder) Build() *inventory.State {
	return b.state.Clone()
}
