package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation"
)

// storedRecord is just enough of a conversation to see which schema its state uses
type storedRecord struct {
	State map[string]json.RawMessage `json:"state"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning conversations for legacy or corrupted state...")

	iter := client.Scan(ctx, 0, "inventory:conversation:*", 0).Iterator()

	var (
		legacyKeys    []string
		corruptedKeys []string
		checkedCount  int
	)

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var record storedRecord
		if err := json.Unmarshal(data, &record); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		var conv conversation.Conversation
		if err := json.Unmarshal(data, &conv); err != nil {
			fmt.Printf("✗ Undecodable state in %s: %v\n", key, err)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		if record.State != nil && record.State["version"] == nil {
			fmt.Printf("• Legacy state in %s\n", key)
			legacyKeys = append(legacyKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d legacy and %d corrupted entries\n",
		checkedCount, len(legacyKeys), len(corruptedKeys))

	if len(legacyKeys) > 0 && confirm("\nRewrite legacy entries in the current schema? (yes/no): ") {
		for _, key := range legacyKeys {
			if err := rewrite(ctx, client, key); err != nil {
				fmt.Printf("Failed to rewrite %s: %v\n", key, err)
			} else {
				fmt.Printf("Rewrote %s\n", key)
			}
		}
	}

	if len(corruptedKeys) > 0 && confirm("\nDo you want to DELETE the corrupted entries? (yes/no): ") {
		for _, key := range corruptedKeys {
			if err := client.Del(ctx, key).Err(); err != nil {
				fmt.Printf("Failed to delete %s: %v\n", key, err)
			} else {
				fmt.Printf("Deleted %s\n", key)
			}
		}
	}

	fmt.Println("\nDone")
}

// rewrite decodes the record, which migrates its state, and stores it back with
// its remaining TTL
func rewrite(ctx context.Context, client *redis.Client, key string) error {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	var conv conversation.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return err
	}

	migrated, err := json.Marshal(&conv)
	if err != nil {
		return err
	}

	ttl, err := client.TTL(ctx, key).Result()
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}

	return client.Set(ctx, key, migrated, ttl).Err()
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	var response string
	_, _ = fmt.Scanln(&response)
	return response == "yes"
}
