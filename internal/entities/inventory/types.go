// Package inventory holds the per-conversation game state: character inventories and stats
package inventory

import (
	"encoding/json"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Logical roles the host maps to display names
const (
	RoleChar = "char"
	RoleUser = "user"
)

// SchemaVersion is the version written by this package. Documents without a
// version are legacy shapes and get migrated on Decode.
const SchemaVersion = 2

// Item is a stack of one kind of thing a character owns
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count"`
}

// Clone returns a copy of the item
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// CharacterInventory is everything one character owns plus what they have equipped.
// Equipped is a set of item IDs.
type CharacterInventory struct {
	Items    map[string]*Item
	Equipped map[string]struct{}
}

// NewCharacterInventory returns an empty inventory
func NewCharacterInventory() *CharacterInventory {
	return &CharacterInventory{
		Items:    make(map[string]*Item),
		Equipped: make(map[string]struct{}),
	}
}

// IsEquipped reports whether id is in the equipped set
func (c *CharacterInventory) IsEquipped(id string) bool {
	_, ok := c.Equipped[id]
	return ok
}

// Equip adds id to the equipped set
func (c *CharacterInventory) Equip(id string) {
	c.Equipped[id] = struct{}{}
}

// Unequip removes id from the equipped set and reports whether it was there
func (c *CharacterInventory) Unequip(id string) bool {
	if !c.IsEquipped(id) {
		return false
	}
	delete(c.Equipped, id)
	return true
}

// EquippedIDs returns the equipped set in sorted order
func (c *CharacterInventory) EquippedIDs() []string {
	ids := make([]string, 0, len(c.Equipped))
	for id := range c.Equipped {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone deep copies the inventory
func (c *CharacterInventory) Clone() *CharacterInventory {
	out := NewCharacterInventory()
	for id, item := range c.Items {
		out.Items[id] = item.Clone()
	}
	for id := range c.Equipped {
		out.Equipped[id] = struct{}{}
	}
	return out
}

type inventoryDocument struct {
	Items    map[string]*Item `json:"items"`
	Equipped []string         `json:"equipped"`
}

// MarshalJSON writes {"items": {...}, "equipped": [...]} with sorted equipped ids
func (c *CharacterInventory) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = map[string]*Item{}
	}
	return json.Marshal(inventoryDocument{
		Items:    items,
		Equipped: c.EquippedIDs(),
	})
}

// UnmarshalJSON reads the canonical shape and both legacy spellings: items under
// "inventory", and equipped as an object keyed by item id.
func (c *CharacterInventory) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items     map[string]*Item `json:"items"`
		Inventory map[string]*Item `json:"inventory"`
		Equipped  json.RawMessage  `json:"equipped"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := NewCharacterInventory()
	items := raw.Items
	if items == nil {
		items = raw.Inventory
	}
	for id, item := range items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			item.ID = id
		}
		out.Items[id] = item
	}

	ids, err := decodeEquipped(raw.Equipped)
	if err != nil {
		return err
	}
	for _, id := range ids {
		out.Equip(id)
	}

	*c = *out
	return nil
}

func decodeEquipped(data json.RawMessage) ([]string, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var set map[string]json.RawMessage
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids, nil
}

// Stat is a named number or string tracked for a character
type Stat struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Value       StatValue `json:"value"`
}

// Clone returns a copy of the stat
func (s *Stat) Clone() *Stat {
	c := *s
	return &c
}

// CharacterStats maps stat name to stat
type CharacterStats map[string]*Stat

// Clone deep copies the stats
func (cs CharacterStats) Clone() CharacterStats {
	out := make(CharacterStats, len(cs))
	for name, stat := range cs {
		out[name] = stat.Clone()
	}
	return out
}

// Names are the display names the host uses for the logical roles
type Names struct {
	Char string `json:"char,omitempty"`
	User string `json:"user,omitempty"`
}

// Display resolves a character identifier to the name shown in messages
func (n Names) Display(character string) string {
	switch {
	case character == RoleChar && n.Char != "":
		return n.Char
	case character == RoleUser && n.User != "":
		return n.User
	default:
		return character
	}
}

// Holder identifies a character that owns or wears items
type Holder struct {
	Character string
}

// GetID returns the character identifier
func (h Holder) GetID() string {
	return h.Character
}

// GetType returns the entity type
func (h Holder) GetType() string {
	return "inventory_holder"
}

var _ core.Entity = Holder{}
