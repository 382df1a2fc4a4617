// Package tools exposes the inventory operations as function tools an agent can call,
// both as host-registered definitions and over MCP
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
)

// Tool names
const (
	ToolInventoryCommands = "inventoryCommands"
	ToolAddItem           = "addItemToInventory"
	ToolRemoveItem        = "removeItemFromInventory"
	ToolEquipItem         = "equipItem"
	ToolUnequipItem       = "unequipItem"
	ToolSetInventory      = "setInventory"
)

// SchemaVersion is the JSON Schema dialect of tool parameters
const SchemaVersion = "http://json-schema.org/draft-04/schema#"

// Definition is what the host needs to register a function tool
type Definition struct {
	Name        string             `json:"name"`
	DisplayName string             `json:"displayName"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// Result is what a tool call reports back to the agent
type Result struct {
	Message string   `json:"message" jsonschema:"what happened"`
	Summary []string `json:"summary,omitempty" jsonschema:"one sentence per applied command"`
}

type tool struct {
	name        string
	displayName string
	description string
	args        any
	format      func(names entities.Names, args json.RawMessage) string
	invoke      func(ctx context.Context, r *Registry, conversationID string, args json.RawMessage) (*Result, error)
}

// Config holds the dependencies for the tool registry
type Config struct {
	Service inventory.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Service == nil {
		vb.RequiredField("Service")
	}

	return vb.Build()
}

// Registry holds the inventory tools and runs them against the inventory service
type Registry struct {
	service inventory.Service
	tools   []tool
	byName  map[string]tool
}

// NewRegistry creates the registry with every inventory tool
func NewRegistry(cfg *Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &Registry{
		service: cfg.Service,
		tools:   builtinTools(),
	}
	r.byName = make(map[string]tool, len(r.tools))
	for _, t := range r.tools {
		r.byName[t.name] = t
	}
	return r, nil
}

// Definitions returns the tool definitions in registration order
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, Definition{
			Name:        t.name,
			DisplayName: t.displayName,
			Description: t.description,
			Parameters:  parametersSchema(t.args),
		})
	}
	return defs
}

// FormatMessage renders the toast the host shows when the tool is called
func (r *Registry) FormatMessage(name string, names entities.Names, args json.RawMessage) (string, error) {
	t, ok := r.byName[name]
	if !ok {
		return "", errors.NotFoundf("tool %s not found", name)
	}
	return t.format(names, args), nil
}

// InvokeInput defines the request for calling a tool by name
type InvokeInput struct {
	ConversationID string
	Name           string
	Arguments      json.RawMessage
	// Names are used for the toast only
	Names entities.Names
}

// InvokeOutput defines the response of a tool call
type InvokeOutput struct {
	Result *Result
	Toast  string
}

// Invoke decodes the arguments and runs the named tool
func (r *Registry) Invoke(ctx context.Context, input *InvokeInput) (*InvokeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	t, ok := r.byName[input.Name]
	if !ok {
		return nil, errors.NotFoundf("tool %s not found", input.Name)
	}

	result, err := t.invoke(ctx, r, input.ConversationID, input.Arguments)
	if err != nil {
		return nil, err
	}

	return &InvokeOutput{
		Result: result,
		Toast:  t.format(input.Names, input.Arguments),
	}, nil
}

// ApplyCommands runs the batch tool
func (r *Registry) ApplyCommands(ctx context.Context, conversationID string, batch []commands.Raw) (*Result, error) {
	out, err := r.service.ApplyCommands(ctx, &inventory.ApplyCommandsInput{
		ConversationID: conversationID,
		Commands:       batch,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Message: out.Message, Summary: out.Summary}, nil
}

// AddItem runs addItemToInventory
func (r *Registry) AddItem(ctx context.Context, conversationID string, args AddItemArgs) (*Result, error) {
	out, err := r.service.AddItem(ctx, &inventory.AddItemInput{
		ConversationID: conversationID,
		Owner:          string(args.Owner),
		ID:             args.ID,
		Name:           args.Name,
		Description:    args.Description,
		Count:          args.Count,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Message: out.Message}, nil
}

// RemoveItem runs removeItemFromInventory
func (r *Registry) RemoveItem(ctx context.Context, conversationID string, args RemoveItemArgs) (*Result, error) {
	out, err := r.service.RemoveItem(ctx, &inventory.RemoveItemInput{
		ConversationID: conversationID,
		Owner:          string(args.Owner),
		ID:             args.ID,
		Count:          args.Count,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Message: out.Message}, nil
}

// EquipItem runs equipItem
func (r *Registry) EquipItem(ctx context.Context, conversationID string, args EquipItemArgs) (*Result, error) {
	out, err := r.service.EquipItem(ctx, &inventory.EquipItemInput{
		ConversationID: conversationID,
		Owner:          string(args.Owner),
		Wearer:         string(args.Wearer),
		ID:             args.ID,
		Create:         args.Create,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Message: out.Message}, nil
}

// UnequipItem runs unequipItem
func (r *Registry) UnequipItem(ctx context.Context, conversationID string, args UnequipItemArgs) (*Result, error) {
	out, err := r.service.UnequipItem(ctx, &inventory.UnequipItemInput{
		ConversationID: conversationID,
		Owner:          string(args.Owner),
		ID:             args.ID,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Message: out.Message}, nil
}

// SetInventory runs setInventory
func (r *Registry) SetInventory(ctx context.Context, conversationID string, args SetInventoryArgs) (*Result, error) {
	if args.Inventory == nil {
		return nil, errors.InvalidArgument("inventory is required")
	}
	out, err := r.service.SetInventory(ctx, &inventory.SetInventoryInput{
		ConversationID: conversationID,
		Inventories:    args.toEntities(),
	})
	if err != nil {
		return nil, err
	}
	return &Result{Message: out.Message}, nil
}

func builtinTools() []tool {
	return []tool{
		{
			name:        ToolInventoryCommands,
			displayName: "Inventory Commands",
			description: "Runs a batch of inventory and stat commands in order. The whole batch is rejected when any command is invalid.",
			args:        InventoryCommandsArgs{},
			format: func(_ entities.Names, args json.RawMessage) string {
				batch, _ := decodeCommands(args)
				if len(batch) == 1 {
					return "Ran 1 inventory command"
				}
				return fmt.Sprintf("Ran %d inventory commands", len(batch))
			},
			invoke: func(ctx context.Context, r *Registry, conversationID string, args json.RawMessage) (*Result, error) {
				batch, err := decodeCommands(args)
				if err != nil {
					return nil, err
				}
				return r.ApplyCommands(ctx, conversationID, batch)
			},
		},
		{
			name:        ToolAddItem,
			displayName: "Add Item to Inventory",
			description: "Adds an item to the characters",
			args:        AddItemArgs{},
			format: func(names entities.Names, args json.RawMessage) string {
				var a AddItemArgs
				_ = json.Unmarshal(args, &a)
				name := a.Name
				if name == "" {
					name = a.ID
				}
				return fmt.Sprintf("Added %s to %s's inventory", name, names.Display(string(a.Owner)))
			},
			invoke: func(ctx context.Context, r *Registry, conversationID string, args json.RawMessage) (*Result, error) {
				var a AddItemArgs
				if err := decodeArgs(ToolAddItem, args, &a); err != nil {
					return nil, err
				}
				return r.AddItem(ctx, conversationID, a)
			},
		},
		{
			name:        ToolRemoveItem,
			displayName: "Remove Item from Inventory",
			description: "Removes an item from the characters",
			args:        RemoveItemArgs{},
			format: func(names entities.Names, args json.RawMessage) string {
				var a RemoveItemArgs
				_ = json.Unmarshal(args, &a)
				return fmt.Sprintf("Removed %s from %s's inventory", a.ID, names.Display(string(a.Owner)))
			},
			invoke: func(ctx context.Context, r *Registry, conversationID string, args json.RawMessage) (*Result, error) {
				var a RemoveItemArgs
				if err := decodeArgs(ToolRemoveItem, args, &a); err != nil {
					return nil, err
				}
				return r.RemoveItem(ctx, conversationID, a)
			},
		},
		{
			name:        ToolEquipItem,
			displayName: "Equip Item",
			description: "Equips an item on a person",
			args:        EquipItemArgs{},
			format: func(names entities.Names, args json.RawMessage) string {
				var a EquipItemArgs
				_ = json.Unmarshal(args, &a)
				wearer := a.Wearer
				if wearer == "" {
					wearer = a.Owner
				}
				return fmt.Sprintf("Equipped %s for %s", a.ID, names.Display(string(wearer)))
			},
			invoke: func(ctx context.Context, r *Registry, conversationID string, args json.RawMessage) (*Result, error) {
				var a EquipItemArgs
				if err := decodeArgs(ToolEquipItem, args, &a); err != nil {
					return nil, err
				}
				return r.EquipItem(ctx, conversationID, a)
			},
		},
		{
			name:        ToolUnequipItem,
			displayName: "Unequip Item",
			description: "Unequips an item on a person",
			args:        UnequipItemArgs{},
			format: func(names entities.Names, args json.RawMessage) string {
				var a UnequipItemArgs
				_ = json.Unmarshal(args, &a)
				return fmt.Sprintf("Unequipped %s for %s", a.ID, names.Display(string(a.Owner)))
			},
			invoke: func(ctx context.Context, r *Registry, conversationID string, args json.RawMessage) (*Result, error) {
				var a UnequipItemArgs
				if err := decodeArgs(ToolUnequipItem, args, &a); err != nil {
					return nil, err
				}
				return r.UnequipItem(ctx, conversationID, a)
			},
		},
		{
			name:        ToolSetInventory,
			displayName: "Set Inventory Directly",
			description: "Directly sets the entire inventory structure. Use this when multiple items are missing or need updating",
			args:        SetInventoryArgs{},
			format: func(entities.Names, json.RawMessage) string {
				return "Updated entire inventory structure"
			},
			invoke: func(ctx context.Context, r *Registry, conversationID string, args json.RawMessage) (*Result, error) {
				var a SetInventoryArgs
				if err := decodeArgs(ToolSetInventory, args, &a); err != nil {
					return nil, err
				}
				return r.SetInventory(ctx, conversationID, a)
			},
		},
	}
}

// decodeCommands pulls the batch out of {"commands": [...]}. A missing or non-array
// value yields a nil batch so validation can report it.
func decodeCommands(args json.RawMessage) ([]commands.Raw, error) {
	var envelope struct {
		Commands json.RawMessage `json:"commands"`
	}
	if len(bytes.TrimSpace(args)) > 0 {
		if err := json.Unmarshal(args, &envelope); err != nil {
			return nil, errors.InvalidArgumentf("malformed arguments for %s: %v", ToolInventoryCommands, err)
		}
	}
	return commands.DecodeBatch(envelope.Commands)
}

func decodeArgs(name string, args json.RawMessage, v any) error {
	if len(bytes.TrimSpace(args)) == 0 {
		return errors.InvalidArgumentf("arguments are required for %s", name)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return errors.InvalidArgumentf("malformed arguments for %s: %v", name, err)
	}
	return nil
}

func parametersSchema(args any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
		Mapper:         commands.SchemaMapper,
	}
	schema := reflector.ReflectFromType(reflect.TypeOf(args))
	schema.Version = SchemaVersion
	return schema
}
