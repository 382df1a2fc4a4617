package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
)

// StateResourceURI is the MCP resource holding the rendered state of the bound conversation
const StateResourceURI = "inventory://state"

// MCPConfig holds the dependencies for the MCP server
type MCPConfig struct {
	Registry *Registry
	// ConversationID is the conversation every tool call applies to
	ConversationID string
	Name           string
	Version        string
}

// Validate ensures all required dependencies are provided
func (c *MCPConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.ConversationID == "" {
		vb.RequiredField("ConversationID")
	}

	return vb.Build()
}

// NewMCPServer creates an MCP server exposing the inventory tools and the state resource
func NewMCPServer(cfg *MCPConfig) (*mcp.Server, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	name := cfg.Name
	if name == "" {
		name = "rpg-inventory"
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, &mcp.ServerOptions{})

	r := cfg.Registry
	id := cfg.ConversationID
	for _, def := range r.Definitions() {
		tool := &mcp.Tool{
			Name:        def.Name,
			Title:       def.DisplayName,
			Description: def.Description,
		}
		switch def.Name {
		case ToolInventoryCommands:
			mcp.AddTool(server, tool, handlerFor(id, func(ctx context.Context, id string, a InventoryCommandsArgs) (*Result, error) {
				return r.ApplyCommands(ctx, id, a.Commands)
			}))
		case ToolAddItem:
			mcp.AddTool(server, tool, handlerFor(id, r.AddItem))
		case ToolRemoveItem:
			mcp.AddTool(server, tool, handlerFor(id, r.RemoveItem))
		case ToolEquipItem:
			mcp.AddTool(server, tool, handlerFor(id, r.EquipItem))
		case ToolUnequipItem:
			mcp.AddTool(server, tool, handlerFor(id, r.UnequipItem))
		case ToolSetInventory:
			mcp.AddTool(server, tool, handlerFor(id, r.SetInventory))
		default:
			return nil, errors.Internalf("tool %s has no MCP handler", def.Name)
		}
	}

	for _, section := range []entities.Section{entities.SectionAll, entities.SectionInventory, entities.SectionStats} {
		uri := sectionURI(section)
		server.AddResource(&mcp.Resource{
			URI:         uri,
			Name:        "inventory-" + string(section),
			Description: fmt.Sprintf("Current %s state of the conversation as JSON", section),
			MIMEType:    "application/json",
		}, stateResourceHandler(r.service, id, section, uri))
	}

	return server, nil
}

func sectionURI(section entities.Section) string {
	if section == entities.SectionAll {
		return StateResourceURI
	}
	return StateResourceURI + "/" + string(section)
}

// handlerFor binds a typed tool call to the conversation and turns failures into
// tool-level errors the agent can read
func handlerFor[In any](
	conversationID string,
	call func(ctx context.Context, conversationID string, args In) (*Result, error),
) mcp.ToolHandlerFor[In, Result] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args In) (*mcp.CallToolResult, Result, error) {
		result, err := call(ctx, conversationID, args)
		if err != nil {
			if !errors.IsInvalidArgument(err) {
				slog.Error("Tool call failed",
					"conversation_id", conversationID,
					"error", err,
				)
			}
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: errors.GetMessage(err)}},
			}, Result{}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result.Message}},
		}, *result, nil
	}
}

func stateResourceHandler(service inventory.Service, conversationID string, section entities.Section, uri string) mcp.ResourceHandler {
	return func(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		out, err := service.RenderState(ctx, &inventory.RenderStateInput{
			ConversationID: conversationID,
			Section:        section,
		})
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", uri, err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     out.Text,
				},
			},
		}, nil
	}
}
