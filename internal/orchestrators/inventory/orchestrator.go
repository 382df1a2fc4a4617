// Package inventory implements the inventory orchestrator: it loads a conversation,
// runs commands through the engine and hands the result to the state store
package inventory

//go:generate mockgen -destination=mock/mock_service.go -package=inventorymock github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-inventory/internal/engine"
	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation"
	"github.com/KirkDiggler/rpg-inventory/internal/store"
)

const (
	// MessageBatchApplied acknowledges a command batch
	MessageBatchApplied = "Inventory commands executed successfully"

	// MessageInventoryReplaced acknowledges setInventory
	MessageInventoryReplaced = "Inventory has been completely replaced with the new structure"
)

// Service defines the interface for inventory operations
type Service interface {
	// Batch model
	ApplyCommands(ctx context.Context, input *ApplyCommandsInput) (*ApplyCommandsOutput, error)

	// Single-command model
	AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error)
	RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error)
	EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error)
	UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error)
	SetInventory(ctx context.Context, input *SetInventoryInput) (*SetInventoryOutput, error)

	// Reads
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
	RenderState(ctx context.Context, input *RenderStateInput) (*RenderStateOutput, error)

	// Host hooks
	ResetConversation(ctx context.Context, input *ResetConversationInput) (*ResetConversationOutput, error)
	Flush(ctx context.Context) error
}

// Config holds the dependencies for the inventory orchestrator
type Config struct {
	Engine      engine.Engine
	Store       store.StateStore
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	engine engine.Engine
	store  store.StateStore
	idGen  idgen.Generator

	// mu serializes read-modify-write cycles
	mu sync.Mutex
}

// NewOrchestrator creates a new inventory orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine: cfg.Engine,
		store:  cfg.Store,
		idGen:  cfg.IDGenerator,
	}, nil
}

// ApplyCommands validates the whole batch first; nothing is applied when any
// command is rejected
func (o *orchestrator) ApplyCommands(ctx context.Context, input *ApplyCommandsInput) (*ApplyCommandsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ConversationID == "" {
		return nil, errors.InvalidArgument("conversation ID is required")
	}

	batchID := o.idGen.Generate()

	cmds, err := commands.Parse(input.Commands)
	if err != nil {
		slog.Warn("Inventory command batch rejected",
			"conversation_id", input.ConversationID,
			"batch_id", batchID,
			"problems", len(errors.BatchMessages(err)),
		)
		return nil, err
	}

	out, err := o.run(ctx, input.ConversationID, cmds, engine.EquipMark)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to apply batch %s", batchID)
	}

	slog.Info("Inventory commands applied",
		"conversation_id", input.ConversationID,
		"batch_id", batchID,
		"commands", len(cmds),
	)

	return &ApplyCommandsOutput{
		BatchID: batchID,
		Message: MessageBatchApplied,
		Summary: out.Summary,
		State:   out.State,
	}, nil
}

func (o *orchestrator) AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	count := input.Count
	raw := commands.Raw{
		Cmd:       commands.CmdAddItem,
		Character: input.Owner,
		Item: &commands.ItemArgs{
			ID:    input.ID,
			Count: &count,
		},
	}
	if input.Name != "" {
		raw.Item.Name = &input.Name
	}
	if input.Description != "" {
		raw.Item.Description = &input.Description
	}

	message, state, err := o.single(ctx, input.ConversationID, raw, nil)
	if err != nil {
		return nil, err
	}
	return &AddItemOutput{Message: message, State: state}, nil
}

func (o *orchestrator) RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	count := input.Count
	raw := commands.Raw{
		Cmd:       commands.CmdRemoveItem,
		Character: input.Owner,
		Item: &commands.ItemArgs{
			ID:    input.ID,
			Count: &count,
		},
	}
	if input.Name != "" {
		raw.Item.Name = &input.Name
	}

	message, state, err := o.single(ctx, input.ConversationID, raw, nil)
	if err != nil {
		return nil, err
	}
	return &RemoveItemOutput{Message: message, State: state}, nil
}

func (o *orchestrator) EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	wearer := input.Wearer
	if wearer == "" {
		wearer = input.Owner
	}
	raw := commands.Raw{
		Cmd:       commands.CmdEquipItem,
		Character: wearer,
		Item:      &commands.ItemArgs{ID: input.ID},
	}

	message, state, err := o.single(ctx, input.ConversationID, raw, func(cmd commands.Command) commands.Command {
		equip := cmd.(commands.EquipItem)
		equip.Owner = input.Owner
		equip.Create = input.Create
		return equip
	})
	if err != nil {
		return nil, err
	}
	return &EquipItemOutput{Message: message, State: state}, nil
}

func (o *orchestrator) UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	raw := commands.Raw{
		Cmd:       commands.CmdUnequipItem,
		Character: input.Owner,
		Item:      &commands.ItemArgs{ID: input.ID},
	}

	message, state, err := o.single(ctx, input.ConversationID, raw, nil)
	if err != nil {
		return nil, err
	}
	return &UnequipItemOutput{Message: message, State: state}, nil
}

func (o *orchestrator) SetInventory(ctx context.Context, input *SetInventoryInput) (*SetInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ConversationID == "" {
		return nil, errors.InvalidArgument("conversation ID is required")
	}
	if input.Inventories == nil {
		return nil, errors.InvalidArgument("inventory is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	conv, err := o.load(ctx, input.ConversationID)
	if err != nil {
		return nil, err
	}

	replaced := make(map[string]*entities.CharacterInventory, len(input.Inventories))
	for character, inv := range input.Inventories {
		if character == "" {
			return nil, errors.InvalidArgument("character must be specified for every inventory")
		}
		replaced[character] = normalizeInventory(inv)
	}
	conv.State.Inventories = replaced

	if err := o.save(ctx, conv); err != nil {
		return nil, err
	}

	slog.Info("Inventory replaced",
		"conversation_id", input.ConversationID,
		"characters", len(replaced),
	)

	return &SetInventoryOutput{
		Message: MessageInventoryReplaced,
		State:   conv.State.Clone(),
	}, nil
}

func (o *orchestrator) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ConversationID == "" {
		return nil, errors.InvalidArgument("conversation ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	conv, err := o.load(ctx, input.ConversationID)
	if err != nil {
		return nil, err
	}

	return &GetStateOutput{
		State: conv.State,
		Names: conv.Names,
	}, nil
}

func (o *orchestrator) RenderState(ctx context.Context, input *RenderStateInput) (*RenderStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	section := input.Section
	if section == "" {
		section = entities.SectionAll
	}
	if !section.IsValid() {
		return nil, errors.InvalidArgumentf("unknown section %q", section)
	}

	got, err := o.GetState(ctx, &GetStateInput{ConversationID: input.ConversationID})
	if err != nil {
		return nil, err
	}

	text, err := got.State.Render(section)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render state")
	}

	return &RenderStateOutput{Text: text}, nil
}

// ResetConversation starts the conversation over with empty inventories for both roles
func (o *orchestrator) ResetConversation(ctx context.Context, input *ResetConversationInput) (*ResetConversationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ConversationID == "" {
		return nil, errors.InvalidArgument("conversation ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	conv := &conversation.Conversation{
		ID:    input.ConversationID,
		Names: input.Names,
		State: entities.NewDefaultState(),
	}
	if err := o.save(ctx, conv); err != nil {
		return nil, err
	}

	slog.Info("Conversation reset", "conversation_id", input.ConversationID)

	return &ResetConversationOutput{State: conv.State.Clone()}, nil
}

func (o *orchestrator) Flush(ctx context.Context) error {
	return o.store.Flush(ctx)
}

// single runs one command through the same validation as a batch, using the
// transfer equip strategy. adjust may fill in fields Raw cannot carry.
func (o *orchestrator) single(
	ctx context.Context,
	conversationID string,
	raw commands.Raw,
	adjust func(commands.Command) commands.Command,
) (string, *entities.State, error) {
	if conversationID == "" {
		return "", nil, errors.InvalidArgument("conversation ID is required")
	}

	cmds, err := commands.Parse([]commands.Raw{raw})
	if err != nil {
		return "", nil, err
	}
	if adjust != nil {
		cmds[0] = adjust(cmds[0])
	}

	out, err := o.run(ctx, conversationID, cmds, engine.EquipTransfer)
	if err != nil {
		return "", nil, err
	}

	slog.Info("Inventory command applied",
		"conversation_id", conversationID,
		"command", string(raw.Cmd),
		"character", raw.Character,
	)

	return out.Summary[0], out.State, nil
}

// run is the read-modify-write cycle shared by every mutating command
func (o *orchestrator) run(
	ctx context.Context,
	conversationID string,
	cmds []commands.Command,
	equip engine.EquipStrategy,
) (*engine.ExecuteOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	conv, err := o.load(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.Execute(ctx, &engine.ExecuteInput{
		State:    conv.State,
		Names:    conv.Names,
		Commands: cmds,
		Equip:    equip,
	})
	if err != nil {
		return nil, err
	}

	conv.State = out.State
	if err := o.save(ctx, conv); err != nil {
		return nil, err
	}

	return &engine.ExecuteOutput{
		State:   out.State.Clone(),
		Summary: out.Summary,
	}, nil
}

// load returns the stored conversation or a fresh default one
func (o *orchestrator) load(ctx context.Context, conversationID string) (*conversation.Conversation, error) {
	out, err := o.store.Load(ctx, &store.LoadInput{ConversationID: conversationID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &conversation.Conversation{
				ID:    conversationID,
				State: entities.NewDefaultState(),
			}, nil
		}
		return nil, errors.Wrapf(err, "failed to load conversation %s", conversationID)
	}

	conv := out.Conversation
	if conv.State == nil {
		conv.State = entities.NewDefaultState()
	}
	return conv, nil
}

func (o *orchestrator) save(ctx context.Context, conv *conversation.Conversation) error {
	if _, err := o.store.Save(ctx, &store.SaveInput{Conversation: conv}); err != nil {
		return errors.Wrapf(err, "failed to save conversation %s", conv.ID)
	}
	return nil
}

// normalizeInventory copies an inventory supplied from outside, dropping empty stacks
// and filling item ids from their keys
func normalizeInventory(inv *entities.CharacterInventory) *entities.CharacterInventory {
	out := entities.NewCharacterInventory()
	if inv == nil {
		return out
	}
	for id, item := range inv.Items {
		if item == nil || item.Count <= 0 {
			continue
		}
		copied := item.Clone()
		copied.ID = id
		if copied.Name == "" {
			copied.Name = id
		}
		out.Items[id] = copied
	}
	for id := range inv.Equipped {
		out.Equip(id)
	}
	return out
}
