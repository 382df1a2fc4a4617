package tools

import (
	"github.com/invopop/jsonschema"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
)

// Role is the logical character a single-command tool addresses
type Role string

// JSONSchema limits roles to the two the host knows about
func (Role) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "string",
		Enum: []interface{}{entities.RoleChar, entities.RoleUser},
	}
}

// InventoryCommandsArgs are the arguments of the batch tool
type InventoryCommandsArgs struct {
	Commands []commands.Raw `json:"commands" jsonschema:"the commands to run in order" jsonschema_description:"The commands to run in order"`
}

// AddItemArgs are the arguments of addItemToInventory
type AddItemArgs struct {
	Owner       Role    `json:"owner" jsonschema:"who the item should be given to" jsonschema_description:"Who the item should be given to"`
	ID          string  `json:"id" jsonschema:"camelCase id of the item" jsonschema_description:"camelCase id of the item"`
	Name        string  `json:"name" jsonschema:"the proper full name of the item in singular form" jsonschema_description:"The proper full name of the item in singular form"`
	Description string  `json:"description,omitempty" jsonschema:"short description of the item" jsonschema_description:"Short description of the item"`
	Count       float64 `json:"count" jsonschema:"the number of the item that should be given to owner" jsonschema_description:"The number of the item that should be given to owner"`
}

// RemoveItemArgs are the arguments of removeItemFromInventory
type RemoveItemArgs struct {
	Owner Role    `json:"owner" jsonschema:"who the item should be taken from" jsonschema_description:"Who the item should be taken from"`
	ID    string  `json:"id" jsonschema:"camelCase id of the item" jsonschema_description:"camelCase id of the item"`
	Count float64 `json:"count" jsonschema:"the number of the item that should be taken from the owner" jsonschema_description:"The number of the item that should be taken from the owner"`
}

// EquipItemArgs are the arguments of equipItem
type EquipItemArgs struct {
	Owner  Role   `json:"owner" jsonschema:"who has the item to be equipped in their inventory" jsonschema_description:"Who has the item to be equipped in their inventory"`
	Wearer Role   `json:"wearer,omitempty" jsonschema:"who should equip the item" jsonschema_description:"Who should equip the item"`
	ID     string `json:"id" jsonschema:"camelCase id of the item" jsonschema_description:"camelCase id of the item"`
	Create bool   `json:"create,omitempty" jsonschema:"whether the item should be created if it does not exist in the owners inventory" jsonschema_description:"Whether the item should be created if it does not exist in the owners inventory"`
}

// UnequipItemArgs are the arguments of unequipItem
type UnequipItemArgs struct {
	Owner Role   `json:"owner" jsonschema:"who should unequip the item" jsonschema_description:"Who should unequip the item"`
	ID    string `json:"id" jsonschema:"camelCase id of the item" jsonschema_description:"camelCase id of the item"`
}

// SetInventoryArgs are the arguments of setInventory
type SetInventoryArgs struct {
	Inventory map[string]InventoryDocument `json:"inventory" jsonschema:"the complete inventory keyed by character" jsonschema_description:"The complete inventory keyed by character"`
}

// InventoryDocument is one character's inventory as the agent writes it
type InventoryDocument struct {
	Items    map[string]ItemDocument `json:"items" jsonschema:"items owned by the character keyed by id" jsonschema_description:"Items owned by the character keyed by id"`
	Equipped []string                `json:"equipped" jsonschema:"ids of the items the character has equipped" jsonschema_description:"Ids of the items the character has equipped"`
}

// ItemDocument is one item as the agent writes it
type ItemDocument struct {
	Name        string  `json:"name" jsonschema:"name of the item" jsonschema_description:"Name of the item"`
	Description string  `json:"description,omitempty" jsonschema:"short description of the item" jsonschema_description:"Short description of the item"`
	Count       float64 `json:"count" jsonschema:"how many the character has" jsonschema_description:"How many the character has"`
}

// toEntities converts the documents, dropping fractional parts of counts
func (a SetInventoryArgs) toEntities() map[string]*entities.CharacterInventory {
	out := make(map[string]*entities.CharacterInventory, len(a.Inventory))
	for character, doc := range a.Inventory {
		inv := entities.NewCharacterInventory()
		for id, item := range doc.Items {
			inv.Items[id] = &entities.Item{
				ID:          id,
				Name:        item.Name,
				Description: item.Description,
				Count:       int(item.Count),
			}
		}
		for _, id := range doc.Equipped {
			inv.Equip(id)
		}
		out[character] = inv
	}
	return out
}
