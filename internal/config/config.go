// Package config loads process configuration from INVENTORY_* environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds everything the server and MCP commands need to wire the service
type Config struct {
	GRPCPort        int           `env:"INVENTORY_GRPC_PORT"        envDefault:"50051"`
	ShutdownTimeout time.Duration `env:"INVENTORY_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Storage         string        `env:"INVENTORY_STORAGE"          envDefault:"memory"`
	SaveDelay       time.Duration `env:"INVENTORY_SAVE_DELAY"       envDefault:"1s"`
	ConversationTTL time.Duration `env:"INVENTORY_CONVERSATION_TTL"`

	RedisAddrs      []string `env:"INVENTORY_REDIS_ADDRS"       envDefault:"localhost:6379" envSeparator:","`
	RedisMasterName string   `env:"INVENTORY_REDIS_MASTER_NAME"`
	RedisPassword   string   `env:"INVENTORY_REDIS_PASSWORD"`
	RedisDB         int      `env:"INVENTORY_REDIS_DB"`
	RedisTLS        bool     `env:"INVENTORY_REDIS_TLS"`

	// The MCP server works on one conversation at a time
	ConversationID string `env:"INVENTORY_CONVERSATION_ID" envDefault:"default"`
	CharName       string `env:"INVENTORY_CHAR_NAME"`
	UserName       string `env:"INVENTORY_USER_NAME"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and combinations
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		vb.Field("INVENTORY_GRPC_PORT", "must be between 0 and 65535")
	}
	if c.ShutdownTimeout <= 0 {
		vb.Field("INVENTORY_SHUTDOWN_TIMEOUT", "must be positive")
	}
	switch c.Storage {
	case StorageMemory:
	case StorageRedis:
		if len(c.RedisAddrs) == 0 {
			vb.Field("INVENTORY_REDIS_ADDRS", "is required for redis storage")
		}
	default:
		vb.Field("INVENTORY_STORAGE", fmt.Sprintf("unknown storage %q, expected memory or redis", c.Storage))
	}
	if c.SaveDelay < 0 {
		vb.Field("INVENTORY_SAVE_DELAY", "cannot be negative")
	}
	if c.ConversationTTL < 0 {
		vb.Field("INVENTORY_CONVERSATION_TTL", "cannot be negative")
	}
	if c.ConversationID == "" {
		vb.RequiredField("INVENTORY_CONVERSATION_ID")
	}

	return vb.Build()
}
