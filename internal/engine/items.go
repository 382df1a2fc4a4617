package engine

import (
	"fmt"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
)

func addItem(state *inventory.State, names inventory.Names, c commands.AddItem) string {
	inv := state.Inventory(c.Character)
	who := names.Display(c.Character)

	existing, ok := inv.Items[c.Item.ID]
	if !ok {
		item := c.Item
		inv.Items[item.ID] = &item
		return fmt.Sprintf("Added %d %s to %s's inventory. They now have %d total.",
			item.Count, item.Name, who, item.Count)
	}

	existing.Count += c.Item.Count
	return fmt.Sprintf("Added %d %s to %s's inventory. They now have %d total.",
		c.Item.Count, existing.Name, who, existing.Count)
}

func removeItem(state *inventory.State, names inventory.Names, c commands.RemoveItem) string {
	inv := state.Inventory(c.Character)
	who := names.Display(c.Character)

	existing, ok := inv.Items[c.ItemID]
	if !ok {
		name := c.ItemName
		if name == "" {
			name = c.ItemID
		}
		return fmt.Sprintf("%s does not have any %s in their inventory. Nothing was changed.", who, name)
	}

	existing.Count -= c.Count
	if existing.Count <= 0 {
		discard(inv, c.ItemID)
		return fmt.Sprintf("Removed all %s from %s's inventory.", existing.Name, who)
	}
	return fmt.Sprintf("Removed %d %s from %s's inventory. They now have %d left.",
		c.Count, existing.Name, who, existing.Count)
}

func updateItem(state *inventory.State, names inventory.Names, c commands.UpdateItem) string {
	inv := state.Inventory(c.Character)
	who := names.Display(c.Character)

	existing, ok := inv.Items[c.ItemID]
	if !ok {
		return fmt.Sprintf("%s does not have %s in their inventory. Nothing was changed.", who, c.ItemID)
	}

	if c.Patch.Name != nil {
		existing.Name = *c.Patch.Name
	}
	if c.Patch.Description != nil {
		existing.Description = *c.Patch.Description
	}
	if c.Patch.Count != nil {
		existing.Count = *c.Patch.Count
		if existing.Count <= 0 {
			discard(inv, c.ItemID)
			return fmt.Sprintf("Removed all %s from %s's inventory.", existing.Name, who)
		}
	}
	return fmt.Sprintf("Updated %s in %s's inventory.", existing.Name, who)
}

// markEquip only touches the equipped set
func markEquip(state *inventory.State, names inventory.Names, c commands.EquipItem) string {
	inv := state.Inventory(c.Character)
	who := names.Display(c.Character)

	if inv.IsEquipped(c.ItemID) {
		return fmt.Sprintf("%s already has %s equipped. Nothing was changed.", who, c.ItemID)
	}
	inv.Equip(c.ItemID)

	name := c.ItemID
	if item, ok := inv.Items[c.ItemID]; ok {
		name = item.Name
	}
	return fmt.Sprintf("%s equipped %s.", who, name)
}

func unequipItem(state *inventory.State, names inventory.Names, c commands.UnequipItem) string {
	inv := state.Inventory(c.Character)
	who := names.Display(c.Character)

	if !inv.Unequip(c.ItemID) {
		return fmt.Sprintf("%s does not have %s equipped. Nothing was changed.", who, c.ItemID)
	}
	return fmt.Sprintf("%s unequipped %s", who, c.ItemID)
}

// discard deletes an item that ran out along with its equipped mark
func discard(inv *inventory.CharacterInventory, id string) {
	delete(inv.Items, id)
	inv.Unequip(id)
}
