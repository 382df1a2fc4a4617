// Package conversation provides the repository interface and types for per-conversation
// inventory state
package conversation

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=conversationmock github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation Repository

// Conversation is the stored record of one chat: its game state and the display
// names the host uses for the two roles
type Conversation struct {
	ID        string           `json:"id"`
	Names     inventory.Names  `json:"names"`
	State     *inventory.State `json:"state"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Clone deep copies the record
func (c *Conversation) Clone() *Conversation {
	out := *c
	if c.State != nil {
		out.State = c.State.Clone()
	}
	return &out
}

// GetInput contains parameters for retrieving a conversation
type GetInput struct {
	ID string
}

// GetOutput contains the stored conversation
type GetOutput struct {
	Conversation *Conversation
}

// SaveInput contains the conversation to store
type SaveInput struct {
	Conversation *Conversation
}

// SaveOutput contains the conversation as stored, with UpdatedAt set
type SaveOutput struct {
	Conversation *Conversation
}

// DeleteInput contains parameters for deleting a conversation
type DeleteInput struct {
	ID string
}

// DeleteOutput reports whether anything was removed
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the interface for conversation storage operations
type Repository interface {
	// Get returns NotFound when nothing is stored for the id
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Save creates or replaces the record
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

const (
	errInputNil        = "input is required"
	errIDEmpty         = "conversation ID is required"
	errConversationNil = "conversation is required"
)

func validateID(id string) error {
	if id == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	return nil
}

func validateSave(input *SaveInput) error {
	if input == nil {
		return errors.InvalidArgument(errInputNil)
	}
	if input.Conversation == nil {
		return errors.InvalidArgument(errConversationNil)
	}
	return validateID(input.Conversation.ID)
}
