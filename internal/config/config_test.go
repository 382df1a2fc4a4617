package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-inventory/internal/config"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, time.Second, cfg.SaveDelay)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Duration(0), cfg.ConversationTTL)
	assert.Equal(t, []string{"localhost:6379"}, cfg.RedisAddrs)
	assert.Equal(t, "default", cfg.ConversationID)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("INVENTORY_GRPC_PORT", "6000")
	t.Setenv("INVENTORY_STORAGE", "redis")
	t.Setenv("INVENTORY_REDIS_ADDRS", "r1:6379,r2:6379")
	t.Setenv("INVENTORY_SAVE_DELAY", "250ms")
	t.Setenv("INVENTORY_CONVERSATION_TTL", "24h")
	t.Setenv("INVENTORY_CHAR_NAME", "Seraphina")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.Equal(t, config.StorageRedis, cfg.Storage)
	assert.Equal(t, []string{"r1:6379", "r2:6379"}, cfg.RedisAddrs)
	assert.Equal(t, 250*time.Millisecond, cfg.SaveDelay)
	assert.Equal(t, 24*time.Hour, cfg.ConversationTTL)
	assert.Equal(t, "Seraphina", cfg.CharName)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("INVENTORY_GRPC_PORT", "not-a-port")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoad_ValidationError(t *testing.T) {
	t.Setenv("INVENTORY_STORAGE", "postgres")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "INVENTORY_STORAGE")
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			GRPCPort:        50051,
			ShutdownTimeout: time.Second,
			Storage:         config.StorageMemory,
			ConversationID:  "default",
		}
	}

	testCases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "port out of range", mutate: func(c *config.Config) { c.GRPCPort = 70000 }, wantErr: true},
		{name: "redis without addresses", mutate: func(c *config.Config) { c.Storage = config.StorageRedis }, wantErr: true},
		{name: "negative delay", mutate: func(c *config.Config) { c.SaveDelay = -time.Second }, wantErr: true},
		{name: "no conversation", mutate: func(c *config.Config) { c.ConversationID = "" }, wantErr: true},
		{name: "zero shutdown timeout", mutate: func(c *config.Config) { c.ShutdownTimeout = 0 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
