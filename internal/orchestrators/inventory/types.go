package inventory

import (
	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
)

// ApplyCommandsInput defines the request for running a command batch
type ApplyCommandsInput struct {
	ConversationID string
	// Commands is nil when the caller sent no array
	Commands []commands.Raw
}

// ApplyCommandsOutput defines the response for a command batch
type ApplyCommandsOutput struct {
	BatchID string
	// Message is the fixed acknowledgement shown to the agent
	Message string
	// Summary has one sentence per command
	Summary []string
	State   *entities.State
}

// AddItemInput defines the request for adding items to one character
type AddItemInput struct {
	ConversationID string
	Owner          string
	ID             string
	Name           string
	Description    string
	// Count is validated as a positive integer
	Count          float64
}

// AddItemOutput defines the response for adding items
type AddItemOutput struct {
	Message string
	State   *entities.State
}

// RemoveItemInput defines the request for removing items from one character
type RemoveItemInput struct {
	ConversationID string
	Owner          string
	ID             string
	Name           string
	Count          float64
}

// RemoveItemOutput defines the response for removing items
type RemoveItemOutput struct {
	Message string
	State   *entities.State
}

// EquipItemInput defines the request for moving an item from Owner to Wearer and
// equipping it. An empty Wearer means the owner equips it.
type EquipItemInput struct {
	ConversationID string
	Owner          string
	Wearer         string
	ID             string
	Create         bool
}

// EquipItemOutput defines the response for equipping
type EquipItemOutput struct {
	Message string
	State   *entities.State
}

// UnequipItemInput defines the request for unequipping
type UnequipItemInput struct {
	ConversationID string
	Owner          string
	ID             string
}

// UnequipItemOutput defines the response for unequipping
type UnequipItemOutput struct {
	Message string
	State   *entities.State
}

// SetInventoryInput defines the request for replacing every inventory at once
type SetInventoryInput struct {
	ConversationID string
	Inventories    map[string]*entities.CharacterInventory
}

// SetInventoryOutput defines the response for replacing inventories
type SetInventoryOutput struct {
	Message string
	State   *entities.State
}

// GetStateInput defines the request for reading a conversation
type GetStateInput struct {
	ConversationID string
}

// GetStateOutput defines the response for reading a conversation
type GetStateOutput struct {
	State *entities.State
	Names entities.Names
}

// RenderStateInput defines the request for the macro text
type RenderStateInput struct {
	ConversationID string
	// Section defaults to all
	Section entities.Section
}

// RenderStateOutput defines the response for the macro text
type RenderStateOutput struct {
	Text string
}

// ResetConversationInput defines the request sent when the host switches chats
type ResetConversationInput struct {
	ConversationID string
	Names          entities.Names
}

// ResetConversationOutput defines the response for a reset
type ResetConversationOutput struct {
	State *entities.State
}
