package engine

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

type engine struct {
	equip EquipStrategy
}

// Config configures the engine
type Config struct {
	// Equip is the default strategy for equipItem. Defaults to EquipMark.
	Equip EquipStrategy
}

// Validate checks the configuration
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Equip != "" && !cfg.Equip.IsValid() {
		vb.Field("equip", fmt.Sprintf("unknown equip strategy %q", cfg.Equip))
	}
	return vb.Build()
}

// New creates an engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	equip := cfg.Equip
	if equip == "" {
		equip = EquipMark
	}
	return &engine{equip: equip}, nil
}

func (e *engine) Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	equip := input.Equip
	if equip == "" {
		equip = e.equip
	}

	var next *inventory.State
	if input.State != nil {
		next = input.State.Clone()
	} else {
		next = inventory.NewState()
	}

	summary := make([]string, 0, len(input.Commands))
	for i, cmd := range input.Commands {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "execution canceled")
		}

		sentence, err := e.apply(next, input.Names, equip, cmd)
		if err != nil {
			return nil, errors.Wrapf(err, "command %d (%s) failed", i+1, cmd.Name())
		}
		summary = append(summary, sentence)
	}

	return &ExecuteOutput{
		State:   next,
		Summary: summary,
	}, nil
}

func (e *engine) apply(
	state *inventory.State,
	names inventory.Names,
	equip EquipStrategy,
	cmd commands.Command,
) (string, error) {
	switch c := cmd.(type) {
	case commands.AddItem:
		return addItem(state, names, c), nil
	case commands.RemoveItem:
		return removeItem(state, names, c), nil
	case commands.UpdateItem:
		return updateItem(state, names, c), nil
	case commands.EquipItem:
		if equip == EquipTransfer {
			return transferEquip(state, names, c), nil
		}
		return markEquip(state, names, c), nil
	case commands.UnequipItem:
		return unequipItem(state, names, c), nil
	case commands.SetStat:
		return setStat(state, names, c), nil
	case commands.UpdateStat:
		return updateStat(state, names, c), nil
	default:
		return "", errors.Internalf("unsupported command type %T", cmd)
	}
}
