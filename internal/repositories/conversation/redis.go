package conversation

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-inventory/internal/redis"
)

const (
	// Key pattern: inventory:conversation:{id}
	conversationKeyPrefix = "inventory:conversation:"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL expires idle conversations. Zero keeps them forever.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("client")
	}
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	if c.TTL < 0 {
		vb.Field("ttl", "cannot be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for conversations
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    cfg.TTL,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, r.buildKey(input.ID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("conversation %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get conversation from Redis")
	}

	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal conversation %s", input.ID)
	}
	if conv.ID == "" {
		conv.ID = input.ID
	}

	return &GetOutput{Conversation: &conv}, nil
}

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	conv := input.Conversation.Clone()
	conv.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(conv)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal conversation")
	}

	// A zero TTL stores without expiry
	if err := r.client.Set(ctx, r.buildKey(conv.ID), data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store conversation in Redis")
	}

	return &SaveOutput{Conversation: conv}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	removed, err := r.client.Del(ctx, r.buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete conversation from Redis")
	}

	return &DeleteOutput{Deleted: removed > 0}, nil
}

// buildKey creates the Redis key for a conversation
func (r *redisRepository) buildKey(id string) string {
	return conversationKeyPrefix + id
}
