package inventory

import (
	"bytes"
	"encoding/json"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// Decode parses a stored state document, migrating legacy shapes to the current schema.
//
// Accepted shapes:
//   - current: {"version": 2, "inventories": {...}, "stats": {...}}
//   - stat-bearing legacy: {"inventory": {"char": {"inventory": {...}, "equipped": [...]}}, "stats": {...}}
//   - single-command legacy: {"char": {"items": {...}, "equipped": {"id": {...}}}, "user": {...}}
func Decode(data []byte) (*State, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return NewState(), nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errors.InvalidArgument("state document must be a JSON object")
	}

	var (
		state *State
		err   error
	)
	switch {
	case top["version"] != nil:
		state, err = decodeCurrent(top)
	case isStatBearingLegacy(top):
		state, err = decodeStatBearing(top)
	default:
		state, err = decodeInventories(top)
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func decodeCurrent(top map[string]json.RawMessage) (*State, error) {
	var version int
	if err := json.Unmarshal(top["version"], &version); err != nil {
		return nil, errors.InvalidArgument("state version must be a number")
	}
	if version > SchemaVersion {
		return nil, errors.InvalidArgumentf("unsupported state version %d", version)
	}

	inventories, err := decodeInventoryMap(top["inventories"])
	if err != nil {
		return nil, err
	}
	stats, err := decodeStatsMap(top["stats"])
	if err != nil {
		return nil, err
	}
	return assemble(inventories, stats), nil
}

func isStatBearingLegacy(top map[string]json.RawMessage) bool {
	if top["inventory"] == nil && top["stats"] == nil {
		return false
	}
	for key := range top {
		if key != "inventory" && key != "stats" {
			return false
		}
	}
	return true
}

func decodeStatBearing(top map[string]json.RawMessage) (*State, error) {
	inventories, err := decodeInventoryMap(top["inventory"])
	if err != nil {
		return nil, err
	}
	stats, err := decodeStatsMap(top["stats"])
	if err != nil {
		return nil, err
	}
	return assemble(inventories, stats), nil
}

func decodeInventories(top map[string]json.RawMessage) (*State, error) {
	inventories := make(map[string]*CharacterInventory, len(top))
	for character, raw := range top {
		inv, err := decodeInventory(character, raw)
		if err != nil {
			return nil, err
		}
		inventories[character] = inv
	}
	return assemble(inventories, nil), nil
}

func decodeInventoryMap(data json.RawMessage) (map[string]*CharacterInventory, error) {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.InvalidArgument("inventories must be an object keyed by character")
	}

	out := make(map[string]*CharacterInventory, len(raw))
	for character, entry := range raw {
		inv, err := decodeInventory(character, entry)
		if err != nil {
			return nil, err
		}
		out[character] = inv
	}
	return out, nil
}

func decodeInventory(character string, data json.RawMessage) (*CharacterInventory, error) {
	var inv CharacterInventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, errors.InvalidArgumentf("inventory for %s is malformed: %v", character, err)
	}
	for id, item := range inv.Items {
		if item.Count <= 0 {
			delete(inv.Items, id)
		}
	}
	return &inv, nil
}

func decodeStatsMap(data json.RawMessage) (map[string]CharacterStats, error) {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var raw map[string]map[string]*Stat
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.InvalidArgumentf("stats are malformed: %v", err)
	}

	out := make(map[string]CharacterStats, len(raw))
	for character, stats := range raw {
		cs := make(CharacterStats, len(stats))
		for name, stat := range stats {
			if stat == nil {
				continue
			}
			if stat.Name == "" {
				stat.Name = name
			}
			cs[name] = stat
		}
		out[character] = cs
	}
	return out, nil
}

func assemble(inventories map[string]*CharacterInventory, stats map[string]CharacterStats) *State {
	state := NewState()
	for character, inv := range inventories {
		state.Inventories[character] = inv
	}
	for character, cs := range stats {
		state.Stats[character] = cs
	}
	return state
}
