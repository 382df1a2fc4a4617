package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation"
)

// Config configures the debounced store
type Config struct {
	Repository conversation.Repository
	// Delay is how long a conversation may stay dirty before it is written. Saves
	// within the delay coalesce into one write. Zero writes through.
	Delay time.Duration
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("repository")
	}
	if c.Delay < 0 {
		vb.Field("delay", "cannot be negative")
	}
	return vb.Build()
}

// Debounced keeps the latest unsaved version of each conversation in memory and
// writes it once the delay has passed
type Debounced struct {
	repo  conversation.Repository
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*conversation.Conversation
	timers  map[string]*time.Timer

	// writeMu keeps repository writes in the order versions were taken from pending
	writeMu sync.Mutex
}

// NewDebounced creates a debounced store
func NewDebounced(cfg *Config) (*Debounced, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Debounced{
		repo:    cfg.Repository,
		delay:   cfg.Delay,
		pending: make(map[string]*conversation.Conversation),
		timers:  make(map[string]*time.Timer),
	}, nil
}

var _ StateStore = (*Debounced)(nil)

// Load serves pending data before asking the repository
func (s *Debounced) Load(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ConversationID == "" {
		return nil, errors.InvalidArgument("conversation ID is required")
	}

	s.mu.Lock()
	conv, ok := s.pending[input.ConversationID]
	if ok {
		conv = conv.Clone()
	}
	s.mu.Unlock()

	if ok {
		return &LoadOutput{Conversation: conv}, nil
	}

	out, err := s.repo.Get(ctx, &conversation.GetInput{ID: input.ConversationID})
	if err != nil {
		return nil, err
	}
	return &LoadOutput{Conversation: out.Conversation}, nil
}

// Save records the conversation and schedules a write if none is scheduled yet
func (s *Debounced) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Conversation == nil {
		return nil, errors.InvalidArgument("conversation is required")
	}
	if input.Conversation.ID == "" {
		return nil, errors.InvalidArgument("conversation ID is required")
	}

	if s.delay == 0 {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		if _, err := s.repo.Save(ctx, &conversation.SaveInput{Conversation: input.Conversation}); err != nil {
			return nil, errors.Wrapf(err, "failed to save conversation %s", input.Conversation.ID)
		}
		return &SaveOutput{Pending: false}, nil
	}

	id := input.Conversation.ID

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[id] = input.Conversation.Clone()
	s.schedule(id)

	return &SaveOutput{Pending: true}, nil
}

// Flush stops every timer and writes all pending conversations. Every conversation
// is attempted; the first failure is returned and the failed ones stay pending.
func (s *Debounced) Flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	batch := make(map[string]*conversation.Conversation, len(s.pending))
	for id, conv := range s.pending {
		batch[id] = conv
	}
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	ids := make([]string, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var firstErr error
	for _, id := range ids {
		_, err := s.repo.Save(ctx, &conversation.SaveInput{Conversation: batch[id]})
		s.settle(id, batch[id], err)
		if err != nil {
			slog.Error("failed to flush conversation", "conversation_id", id, "error", err)
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "failed to flush conversation %s", id)
			}
		}
	}

	if len(ids) > 0 {
		slog.Info("Flushed pending conversations", "count", len(ids))
	}
	return firstErr
}

// Pending reports how many conversations are waiting to be written
func (s *Debounced) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// schedule starts the write timer for id unless one is running. Callers hold mu.
func (s *Debounced) schedule(id string) {
	if _, scheduled := s.timers[id]; scheduled {
		return
	}
	s.timers[id] = time.AfterFunc(s.delay, func() {
		s.write(id)
	})
}

// settle drops a written version from pending unless a newer one replaced it.
// A failed version stays pending and is retried after the delay.
func (s *Debounced) settle(id string, written *conversation.Conversation, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		if s.pending[id] == written {
			delete(s.pending, id)
		}
		return
	}
	if _, ok := s.pending[id]; ok {
		s.schedule(id)
	}
}

// write runs on the timer goroutine. The version stays readable from pending
// until the repository has it.
func (s *Debounced) write(id string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	conv, ok := s.pending[id]
	delete(s.timers, id)
	s.mu.Unlock()

	if !ok {
		return
	}

	_, err := s.repo.Save(context.Background(), &conversation.SaveInput{Conversation: conv})
	s.settle(id, conv, err)
	if err != nil {
		slog.Error("failed to persist conversation, will retry", "conversation_id", id, "error", err)
		return
	}
	slog.Debug("Persisted conversation", "conversation_id", id)
}
