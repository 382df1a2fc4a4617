package commands

import (
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// Command is a validated command ready for the executor. The set of implementations
// is closed.
type Command interface {
	Name() Name
	// Target is the character the command applies to
	Target() string
	isCommand()
}

// AddItem inserts an item or increases the count of an existing one
type AddItem struct {
	Character string
	Item      inventory.Item
}

// RemoveItem decreases an item's count and deletes it once nothing is left
type RemoveItem struct {
	Character string
	ItemID    string
	// ItemName is used in messages when the item is not found
	ItemName string
	Count    int
}

// ItemPatch holds the item fields an update provides
type ItemPatch struct {
	Name        *string
	Description *string
	Count       *int
}

// UpdateItem merges the provided fields into an existing item
type UpdateItem struct {
	Character string
	ItemID    string
	Patch     ItemPatch
}

// EquipItem equips an item for Character. Owner and Create are only used by the
// transfer strategy; an empty Owner means the character's own inventory.
type EquipItem struct {
	Character string
	ItemID    string
	Owner     string
	Create    bool
}

// UnequipItem removes an item from the equipped set
type UnequipItem struct {
	Character string
	ItemID    string
}

// SetStat overwrites a stat
type SetStat struct {
	Character   string
	StatName    string
	Description *string
	Value       *inventory.StatValue
}

// UpdateStat changes part of a stat. Value wins over Change.
type UpdateStat struct {
	Character   string
	StatName    string
	Description *string
	Value       *inventory.StatValue
	Change      *float64
}

func (AddItem) Name() Name     { return CmdAddItem }
func (RemoveItem) Name() Name  { return CmdRemoveItem }
func (UpdateItem) Name() Name  { return CmdUpdateItem }
func (EquipItem) Name() Name   { return CmdEquipItem }
func (UnequipItem) Name() Name { return CmdUnequipItem }
func (SetStat) Name() Name     { return CmdSetStat }
func (UpdateStat) Name() Name  { return CmdUpdateStat }

func (c AddItem) Target() string     { return c.Character }
func (c RemoveItem) Target() string  { return c.Character }
func (c UpdateItem) Target() string  { return c.Character }
func (c EquipItem) Target() string   { return c.Character }
func (c UnequipItem) Target() string { return c.Character }
func (c SetStat) Target() string     { return c.Character }
func (c UpdateStat) Target() string  { return c.Character }

func (AddItem) isCommand()     {}
func (RemoveItem) isCommand()  {}
func (UpdateItem) isCommand()  {}
func (EquipItem) isCommand()   {}
func (UnequipItem) isCommand() {}
func (SetStat) isCommand()     {}
func (UpdateStat) isCommand()  {}

// Parse validates a batch and converts it to typed commands. When validation fails
// nothing is converted and the error is an invalid batch carrying every message.
func Parse(batch []Raw) ([]Command, error) {
	if messages := Validate(batch); len(messages) > 0 {
		return nil, errors.InvalidBatch(messages)
	}

	out := make([]Command, 0, len(batch))
	for _, raw := range batch {
		out = append(out, convert(raw))
	}
	return out, nil
}

// convert assumes raw passed Validate
func convert(raw Raw) Command {
	switch raw.Cmd {
	case CmdAddItem:
		item := inventory.Item{
			ID:    raw.Item.ID,
			Name:  raw.Item.ID,
			Count: int(*raw.Item.Count),
		}
		if raw.Item.Name != nil && *raw.Item.Name != "" {
			item.Name = *raw.Item.Name
		}
		if raw.Item.Description != nil {
			item.Description = *raw.Item.Description
		}
		return AddItem{Character: raw.Character, Item: item}
	case CmdRemoveItem:
		cmd := RemoveItem{
			Character: raw.Character,
			ItemID:    raw.Item.ID,
			Count:     int(*raw.Item.Count),
		}
		if raw.Item.Name != nil {
			cmd.ItemName = *raw.Item.Name
		}
		return cmd
	case CmdUpdateItem:
		patch := ItemPatch{
			Name:        raw.Item.Name,
			Description: raw.Item.Description,
		}
		if raw.Item.Count != nil {
			n := int(*raw.Item.Count)
			patch.Count = &n
		}
		return UpdateItem{Character: raw.Character, ItemID: raw.Item.ID, Patch: patch}
	case CmdEquipItem:
		return EquipItem{Character: raw.Character, ItemID: raw.Item.ID}
	case CmdUnequipItem:
		return UnequipItem{Character: raw.Character, ItemID: raw.Item.ID}
	case CmdSetStat:
		return SetStat{
			Character:   raw.Character,
			StatName:    raw.Stat.Name,
			Description: raw.Stat.Description,
			Value:       statValue(raw.Stat.Value),
		}
	default:
		return UpdateStat{
			Character:   raw.Character,
			StatName:    raw.Stat.Name,
			Description: raw.Stat.Description,
			Value:       statValue(raw.Stat.Value),
			Change:      raw.Stat.Change,
		}
	}
}

func statValue(raw any) *inventory.StatValue {
	if raw == nil {
		return nil
	}
	v, ok := inventory.StatValueFrom(raw)
	if !ok {
		return nil
	}
	return &v
}
