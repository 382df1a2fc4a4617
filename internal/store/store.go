// Package store gives the orchestrator the narrow state interface it needs: load the
// current conversation, hand back a changed one, and force pending writes out
package store

//go:generate mockgen -destination=mock/mock_store.go -package=storemock github.com/KirkDiggler/rpg-inventory/internal/store StateStore

import (
	"context"

	"github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation"
)

// StateStore reads and writes conversation state
type StateStore interface {
	// Load returns NotFound when the conversation has never been stored
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	// Save accepts the conversation for persistence. It may return before the
	// write reaches the repository.
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Flush writes everything pending now
	Flush(ctx context.Context) error
}

// LoadInput identifies the conversation to load
type LoadInput struct {
	ConversationID string
}

// LoadOutput contains the latest known version of the conversation
type LoadOutput struct {
	Conversation *conversation.Conversation
}

// SaveInput contains the conversation to persist
type SaveInput struct {
	Conversation *conversation.Conversation
}

// SaveOutput reports whether the write was deferred
type SaveOutput struct {
	Pending bool
}
