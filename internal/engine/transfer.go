package engine

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
)

// transferEquip moves one item from owner to wearer before equipping it. With
// Create set, an owner who lacks the item is given one first.
func transferEquip(state *inventory.State, names inventory.Names, c commands.EquipItem) string {
	owner := holder(c.Owner, c.Character)
	wearer := holder(c.Character, c.Character)

	ownerName := names.Display(owner.GetID())
	wearerName := names.Display(wearer.GetID())
	from := state.InventoryOf(owner)

	item, ok := from.Items[c.ItemID]
	if !ok {
		if !c.Create {
			return fmt.Sprintf("%s does not have %s in their inventory and create was not enabled. Nothing was changed.",
				ownerName, c.ItemID)
		}
		item = &inventory.Item{ID: c.ItemID, Name: c.ItemID, Count: 1}
		from.Items[c.ItemID] = item
	}
	name := item.Name

	to := state.InventoryOf(wearer)
	if owner.GetID() != wearer.GetID() {
		move(from, to, item)
	}
	to.Equip(c.ItemID)

	return fmt.Sprintf("%s equipped %s from %s's inventory. It is now in %s's inventory and equipped.",
		wearerName, name, ownerName, wearerName)
}

// move takes one of item out of from and puts it in to
func move(from, to *inventory.CharacterInventory, item *inventory.Item) {
	item.Count--
	if item.Count <= 0 {
		discard(from, item.ID)
	}

	if existing, ok := to.Items[item.ID]; ok {
		existing.Count++
		return
	}
	to.Items[item.ID] = &inventory.Item{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Count:       1,
	}
}

func holder(character, fallback string) core.Entity {
	if character == "" {
		character = fallback
	}
	return inventory.Holder{Character: character}
}
