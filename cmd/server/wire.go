package main

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/rpg-inventory/internal/config"
	"github.com/KirkDiggler/rpg-inventory/internal/engine"
	"github.com/KirkDiggler/rpg-inventory/internal/handlers/tools"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-inventory/internal/redis"
	"github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation"
	"github.com/KirkDiggler/rpg-inventory/internal/store"
)

// app is the wired inventory stack shared by the server and mcp commands
type app struct {
	service  inventory.Service
	registry *tools.Registry
	redis    redis.Client
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	repo, err := buildRepository(ctx, cfg, a)
	if err != nil {
		return nil, err
	}

	stateStore, err := store.NewDebounced(&store.Config{
		Repository: repo,
		Delay:      cfg.SaveDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create state store: %w", err)
	}

	eng, err := engine.New(&engine.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	a.service, err = inventory.NewOrchestrator(&inventory.Config{
		Engine:      eng,
		Store:       stateStore,
		IDGenerator: idgen.NewUUID("batch"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory orchestrator: %w", err)
	}

	a.registry, err = tools.NewRegistry(&tools.Config{Service: a.service})
	if err != nil {
		return nil, fmt.Errorf("failed to create tool registry: %w", err)
	}

	return a, nil
}

func buildRepository(ctx context.Context, cfg *config.Config, a *app) (conversation.Repository, error) {
	if cfg.Storage != config.StorageRedis {
		log.Println("Using in-memory conversation storage")
		return conversation.NewInMemory(clock.New()), nil
	}

	client, err := redis.Connect(ctx, cfg.RedisAddrs, cfg.RedisMasterName, &redis.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		UseTLS:   cfg.RedisTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.redis = client
	log.Printf("Using redis conversation storage at %v", cfg.RedisAddrs)

	repo, err := conversation.NewRedisRepository(&conversation.Config{
		Client: client,
		Clock:  clock.New(),
		TTL:    cfg.ConversationTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation repository: %w", err)
	}
	return repo, nil
}

// close writes pending conversations and releases the redis connection
func (a *app) close(ctx context.Context) error {
	var firstErr error
	if a.service != nil {
		if err := a.service.Flush(ctx); err != nil {
			firstErr = fmt.Errorf("failed to flush pending conversations: %w", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close redis: %w", err)
		}
	}
	return firstErr
}
