package conversation

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*Conversation
}

// NewInMemory creates a new in-memory repository. A nil clock uses the system time.
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string]*Conversation),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Get returns a copy of the stored conversation
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("conversation %s not found", input.ID)
	}

	return &GetOutput{Conversation: conv.Clone()}, nil
}

// Save stores a copy of the conversation
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	conv := input.Conversation.Clone()
	conv.UpdatedAt = r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[conv.ID] = conv

	return &SaveOutput{Conversation: conv.Clone()}, nil
}

// Delete removes the conversation
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.store[input.ID]
	delete(r.store, input.ID)

	return &DeleteOutput{Deleted: exists}, nil
}
