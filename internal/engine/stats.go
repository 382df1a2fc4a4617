package engine

import (
	"fmt"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
)

func setStat(state *inventory.State, names inventory.Names, c commands.SetStat) string {
	stats := state.CharacterStats(c.Character)

	stat := &inventory.Stat{Name: c.StatName}
	if c.Description != nil {
		stat.Description = *c.Description
	}
	if c.Value != nil {
		stat.Value = *c.Value
	}
	stats[c.StatName] = stat

	return fmt.Sprintf("Set %s's %s to %s.", names.Display(c.Character), c.StatName, stat.Value)
}

// updateStat creates a missing stat with value 0 before applying the update
func updateStat(state *inventory.State, names inventory.Names, c commands.UpdateStat) string {
	stats := state.CharacterStats(c.Character)
	who := names.Display(c.Character)

	stat, ok := stats[c.StatName]
	if !ok {
		stat = &inventory.Stat{Name: c.StatName, Value: inventory.Number(0)}
		stats[c.StatName] = stat
	}

	if c.Description != nil {
		stat.Description = *c.Description
	}

	switch {
	case c.Value != nil:
		stat.Value = *c.Value
	case c.Change != nil:
		next, ok := stat.Value.Add(*c.Change)
		if !ok {
			return fmt.Sprintf("%s's %s is %q and cannot be changed by a number.", who, c.StatName, stat.Value.String())
		}
		stat.Value = next
	}

	return fmt.Sprintf("Updated %s's %s to %s.", who, c.StatName, stat.Value)
}
