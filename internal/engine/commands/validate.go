package commands

import (
	"fmt"
	"math"

	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
)

// Validate checks a batch before anything is applied and returns every problem found,
// in command order. A nil batch means the commands were absent or not an array. An
// empty result means the batch may run.
func Validate(batch []Raw) []string {
	if batch == nil {
		return []string{"Commands must be an array"}
	}

	var messages []string
	for _, raw := range batch {
		messages = append(messages, validateOne(raw)...)
	}
	return messages
}

func validateOne(raw Raw) []string {
	var messages []string

	if !raw.Cmd.IsValid() {
		messages = append(messages, fmt.Sprintf("Invalid command: %s", raw.Cmd))
	}

	if raw.Character == "" {
		messages = append(messages, "Character must be specified for all commands")
	}

	if raw.Cmd.IsItemCommand() {
		if raw.Item == nil || raw.Item.ID == "" {
			messages = append(messages, fmt.Sprintf("Item ID required for %s", raw.Cmd))
		}
		if needsCount(raw) && !positiveCount(raw.Item) {
			messages = append(messages, fmt.Sprintf("Item count must be a positive integer for %s", raw.Cmd))
		}
	}

	if raw.Cmd.IsStatCommand() {
		if raw.Stat == nil || raw.Stat.Name == "" {
			messages = append(messages, "Stat name required for stat commands")
		}
		if raw.Stat != nil && raw.Stat.Value != nil {
			if _, ok := inventory.StatValueFrom(raw.Stat.Value); !ok {
				messages = append(messages, fmt.Sprintf("Stat value must be a number or string for %s", raw.Cmd))
			}
		}
	}

	return messages
}

// addItem and removeItem always carry a count; updateItem only when it sets one
func needsCount(raw Raw) bool {
	switch raw.Cmd {
	case CmdAddItem, CmdRemoveItem:
		return true
	case CmdUpdateItem:
		return raw.Item != nil && raw.Item.Count != nil
	default:
		return false
	}
}

func positiveCount(item *ItemArgs) bool {
	if item == nil || item.Count == nil {
		return false
	}
	c := *item.Count
	return c >= 1 && c == math.Trunc(c) && c <= math.MaxInt32
}
