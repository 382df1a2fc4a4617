package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-inventory/internal/config"
	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/handlers/tools"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
)

// version is stamped at build time
var version = "dev"

var (
	mcpConversation string
	mcpReset        bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the inventory tools over MCP on stdio",
	Long: `Serve the inventory tools to an MCP client on stdin/stdout. Every tool call applies to
one conversation, INVENTORY_CONVERSATION_ID unless --conversation is given. Logs go to stderr.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpConversation, "conversation", "", "conversation the tools apply to")
	mcpCmd.Flags().BoolVar(&mcpReset, "reset", false, "start the conversation over using INVENTORY_CHAR_NAME and INVENTORY_USER_NAME")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if mcpConversation != "" {
		cfg.ConversationID = mcpConversation
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(context.Background()); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	if mcpReset {
		_, err := a.service.ResetConversation(ctx, &inventory.ResetConversationInput{
			ConversationID: cfg.ConversationID,
			Names:          entities.Names{Char: cfg.CharName, User: cfg.UserName},
		})
		if err != nil {
			return fmt.Errorf("failed to reset conversation: %w", err)
		}
	}

	server, err := tools.NewMCPServer(&tools.MCPConfig{
		Registry:       a.registry,
		ConversationID: cfg.ConversationID,
		Version:        version,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	log.Printf("MCP server ready for conversation %s", cfg.ConversationID)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
