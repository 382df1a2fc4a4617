package inventory

import (
	"encoding/json"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Section selects what Render prints
type Section string

// Render sections
const (
	SectionInventory Section = "inventory"
	SectionStats     Section = "stats"
	SectionAll       Section = "all"
)

// IsValid reports whether the section is known
func (s Section) IsValid() bool {
	switch s {
	case SectionInventory, SectionStats, SectionAll:
		return true
	default:
		return false
	}
}

// State is the whole game-state document of one conversation. Characters are keyed
// by the raw identifier they were addressed with ("char", "user" or a name).
type State struct {
	Version     int                            `json:"version"`
	Inventories map[string]*CharacterInventory `json:"inventories"`
	Stats       map[string]CharacterStats      `json:"stats"`
}

// NewState returns an empty state
func NewState() *State {
	return &State{
		Version:     SchemaVersion,
		Inventories: make(map[string]*CharacterInventory),
		Stats:       make(map[string]CharacterStats),
	}
}

// NewDefaultState is what a conversation starts with: empty inventories for both roles
func NewDefaultState() *State {
	s := NewState()
	s.Inventory(RoleChar)
	s.Inventory(RoleUser)
	return s
}

// Inventory returns the character's inventory, creating an empty one if absent
func (s *State) Inventory(character string) *CharacterInventory {
	if s.Inventories == nil {
		s.Inventories = make(map[string]*CharacterInventory)
	}
	inv, ok := s.Inventories[character]
	if !ok || inv == nil {
		inv = NewCharacterInventory()
		s.Inventories[character] = inv
	}
	return inv
}

// InventoryOf returns the inventory of an entity
func (s *State) InventoryOf(e core.Entity) *CharacterInventory {
	return s.Inventory(e.GetID())
}

// CharacterStats returns the character's stats, creating an empty set if absent
func (s *State) CharacterStats(character string) CharacterStats {
	if s.Stats == nil {
		s.Stats = make(map[string]CharacterStats)
	}
	stats, ok := s.Stats[character]
	if !ok || stats == nil {
		stats = make(CharacterStats)
		s.Stats[character] = stats
	}
	return stats
}

// Clone deep copies the state
func (s *State) Clone() *State {
	out := NewState()
	for character, inv := range s.Inventories {
		if inv != nil {
			out.Inventories[character] = inv.Clone()
		}
	}
	for character, stats := range s.Stats {
		if stats != nil {
			out.Stats[character] = stats.Clone()
		}
	}
	return out
}

// Characters lists every character that has an inventory or stats, sorted
func (s *State) Characters() []string {
	seen := make(map[string]struct{})
	for character := range s.Inventories {
		seen[character] = struct{}{}
	}
	for character := range s.Stats {
		seen[character] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for character := range seen {
		out = append(out, character)
	}
	sort.Strings(out)
	return out
}

// Render returns the indented JSON text shown by the host macro
func (s *State) Render(section Section) (string, error) {
	var v any
	switch section {
	case SectionInventory:
		v = nonNilInventories(s.Inventories)
	case SectionStats:
		v = nonNilStats(s.Stats)
	default:
		v = s
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MarshalJSON always writes the current schema version
func (s *State) MarshalJSON() ([]byte, error) {
	type document State
	doc := document{
		Version:     SchemaVersion,
		Inventories: nonNilInventories(s.Inventories),
		Stats:       nonNilStats(s.Stats),
	}
	return json.Marshal(doc)
}

func nonNilInventories(m map[string]*CharacterInventory) map[string]*CharacterInventory {
	if m == nil {
		return map[string]*CharacterInventory{}
	}
	return m
}

func nonNilStats(m map[string]CharacterStats) map[string]CharacterStats {
	if m == nil {
		return map[string]CharacterStats{}
	}
	return m
}

// UnmarshalJSON accepts the current schema and the legacy shapes Decode migrates
func (s *State) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}
