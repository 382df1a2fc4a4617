package engine

import (
	"fmt"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// EquipStrategy selects what equipItem does
type EquipStrategy string

const (
	// EquipMark adds the id to the character's equipped set. The item does not
	// have to be owned.
	EquipMark EquipStrategy = "mark"
	// EquipTransfer moves one item from the owner to the wearer and marks it
	// equipped for the wearer.
	EquipTransfer EquipStrategy = "transfer"
)

// IsValid reports whether the strategy is known
func (s EquipStrategy) IsValid() bool {
	return s == EquipMark || s == EquipTransfer
}

// ExecuteInput contains the state and the commands to apply to it
type ExecuteInput struct {
	State    *inventory.State
	Names    inventory.Names
	Commands []commands.Command
	// Equip overrides the configured strategy when set
	Equip EquipStrategy
}

// Validate checks the input
func (i *ExecuteInput) Validate() error {
	vb := errors.NewValidationBuilder()
	if i.Equip != "" && !i.Equip.IsValid() {
		vb.Field("equip", fmt.Sprintf("unknown equip strategy %q", i.Equip))
	}
	for idx, cmd := range i.Commands {
		if cmd == nil {
			vb.Field("commands", fmt.Sprintf("command %d is nil", idx))
		}
	}
	return vb.Build()
}

// ExecuteOutput contains the new state and one sentence per applied command
type ExecuteOutput struct {
	State   *inventory.State
	Summary []string
}
