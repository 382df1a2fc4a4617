// Package commands defines the inventory command batch: the loosely typed arguments an
// agent sends, the validation rules that gate a batch, and the typed commands the
// executor applies.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// Name is the command tag carried in the "cmd" field
type Name string

// Supported commands
const (
	CmdAddItem     Name = "addItem"
	CmdRemoveItem  Name = "removeItem"
	CmdUpdateItem  Name = "updateItem"
	CmdEquipItem   Name = "equipItem"
	CmdUnequipItem Name = "unequipItem"
	CmdSetStat     Name = "setStat"
	CmdUpdateStat  Name = "updateStat"
)

// AllNames returns every supported command in declaration order
func AllNames() []Name {
	return []Name{
		CmdAddItem,
		CmdRemoveItem,
		CmdUpdateItem,
		CmdEquipItem,
		CmdUnequipItem,
		CmdSetStat,
		CmdUpdateStat,
	}
}

// IsValid reports whether the name is a supported command
func (n Name) IsValid() bool {
	switch n {
	case CmdAddItem, CmdRemoveItem, CmdUpdateItem, CmdEquipItem, CmdUnequipItem, CmdSetStat, CmdUpdateStat:
		return true
	default:
		return false
	}
}

// IsItemCommand reports whether the command addresses an item
func (n Name) IsItemCommand() bool {
	switch n {
	case CmdAddItem, CmdRemoveItem, CmdUpdateItem, CmdEquipItem, CmdUnequipItem:
		return true
	default:
		return false
	}
}

// IsStatCommand reports whether the command addresses a stat
func (n Name) IsStatCommand() bool {
	return n == CmdSetStat || n == CmdUpdateStat
}

// ItemArgs is the item part of a command as the agent sends it
type ItemArgs struct {
	ID          string   `json:"id" jsonschema:"camelCase id of the item" jsonschema_description:"camelCase id of the item"`
	Name        *string  `json:"name,omitempty" jsonschema:"proper full name of the item in singular form" jsonschema_description:"Proper full name of the item in singular form"`
	Description *string  `json:"description,omitempty" jsonschema:"short description of the item" jsonschema_description:"Short description of the item"`
	Count       *float64 `json:"count,omitempty" jsonschema:"how many of the item to add or remove" jsonschema_description:"How many of the item to add or remove"`
}

// StatArgs is the stat part of a command as the agent sends it
type StatArgs struct {
	Name        string   `json:"name" jsonschema:"name of the stat" jsonschema_description:"Name of the stat"`
	Description *string  `json:"description,omitempty" jsonschema:"what the stat measures" jsonschema_description:"What the stat measures"`
	Value       any      `json:"value,omitempty" jsonschema:"new value of the stat: a number or a string" jsonschema_description:"New value of the stat: a number or a string"`
	Change      *float64 `json:"change,omitempty" jsonschema:"amount to add to a numeric stat" jsonschema_description:"Amount to add to a numeric stat"`
}

// Raw is one command as the agent sends it
type Raw struct {
	Cmd       Name      `json:"cmd" jsonschema:"command to run: addItem, removeItem, updateItem, equipItem, unequipItem, setStat or updateStat" jsonschema_description:"Command to run: addItem, removeItem, updateItem, equipItem, unequipItem, setStat or updateStat"`
	Character string    `json:"character" jsonschema:"who the command applies to: char, user or a character name" jsonschema_description:"Who the command applies to: char, user or a character name"`
	Item      *ItemArgs `json:"item,omitempty" jsonschema:"the item for item commands" jsonschema_description:"The item for item commands"`
	Stat      *StatArgs `json:"stat,omitempty" jsonschema:"the stat for stat commands" jsonschema_description:"The stat for stat commands"`
}

// UnmarshalJSON accepts any JSON in cmd and character so a wrong type is reported
// by Validate. A non-string cmd keeps its JSON text; a non-string character is empty.
func (r *Raw) UnmarshalJSON(data []byte) error {
	type plain Raw
	var doc struct {
		plain
		Cmd       json.RawMessage `json:"cmd"`
		Character json.RawMessage `json:"character"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*r = Raw(doc.plain)
	r.Cmd = Name(looseString(doc.Cmd, true))
	r.Character = looseString(doc.Character, false)
	return nil
}

func looseString(data json.RawMessage, keepText bool) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	if keepText {
		return string(data)
	}
	return ""
}

// DecodeBatch reads a JSON command batch. A document that is not an array yields a
// nil batch, which Validate reports as not being an array.
func DecodeBatch(data []byte) ([]Raw, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, errors.InvalidBatch([]string{fmt.Sprintf("Commands are malformed: %v", err)})
	}

	batch := make([]Raw, 0, len(elems))
	var problems []string
	for i, elem := range elems {
		if !bytes.HasPrefix(bytes.TrimSpace(elem), []byte("{")) {
			problems = append(problems, fmt.Sprintf("Command %d must be an object", i+1))
			continue
		}
		var raw Raw
		if err := json.Unmarshal(elem, &raw); err != nil {
			problems = append(problems, fmt.Sprintf("Command %d is malformed: %v", i+1, err))
			continue
		}
		batch = append(batch, raw)
	}
	if len(problems) > 0 {
		return nil, errors.InvalidBatch(problems)
	}
	return batch, nil
}
