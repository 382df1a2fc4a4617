// Package v1alpha1 handles the inventory gRPC service the host calls
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/handlers/tools"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
)

// HandlerConfig holds dependencies for the inventory handler
type HandlerConfig struct {
	InventoryService inventory.Service
	Tools            *tools.Registry
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.InventoryService == nil {
		return errors.InvalidArgument("inventory service is required")
	}
	if c.Tools == nil {
		return errors.InvalidArgument("tool registry is required")
	}
	return nil
}

// Handler implements InventoryServiceServer
type Handler struct {
	inventoryService inventory.Service
	tools            *tools.Registry
}

var _ InventoryServiceServer = (*Handler)(nil)

// NewHandler creates a new inventory handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		inventoryService: cfg.InventoryService,
		tools:            cfg.Tools,
	}, nil
}

// ApplyCommands runs a command batch against a conversation
func (h *Handler) ApplyCommands(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ApplyCommandsRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ConversationID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("conversation_id is required"))
	}

	batch, err := commands.DecodeBatch(in.Commands)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.inventoryService.ApplyCommands(ctx, &inventory.ApplyCommandsInput{
		ConversationID: in.ConversationID,
		Commands:       batch,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(&ApplyCommandsResponse{
		BatchID: out.BatchID,
		Message: out.Message,
		Summary: out.Summary,
		State:   out.State,
	})
}

// InvokeTool calls one of the registered function tools by name
func (h *Handler) InvokeTool(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in InvokeToolRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ConversationID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("conversation_id is required"))
	}
	if in.Name == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("name is required"))
	}

	out, err := h.tools.Invoke(ctx, &tools.InvokeInput{
		ConversationID: in.ConversationID,
		Name:           in.Name,
		Arguments:      in.Arguments,
		Names:          in.Names,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(&InvokeToolResponse{
		Message: out.Result.Message,
		Summary: out.Result.Summary,
		Toast:   out.Toast,
	})
}

// GetState returns the state document and display names of a conversation
func (h *Handler) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ConversationRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ConversationID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("conversation_id is required"))
	}

	out, err := h.inventoryService.GetState(ctx, &inventory.GetStateInput{ConversationID: in.ConversationID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(&GetStateResponse{State: out.State, Names: out.Names})
}

// RenderState returns the macro text for a conversation
func (h *Handler) RenderState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in RenderStateRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ConversationID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("conversation_id is required"))
	}

	out, err := h.inventoryService.RenderState(ctx, &inventory.RenderStateInput{
		ConversationID: in.ConversationID,
		Section:        in.Section,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(&RenderStateResponse{Text: out.Text})
}

// SetInventory replaces every inventory of a conversation
func (h *Handler) SetInventory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in SetInventoryRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ConversationID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("conversation_id is required"))
	}

	out, err := h.inventoryService.SetInventory(ctx, &inventory.SetInventoryInput{
		ConversationID: in.ConversationID,
		Inventories:    in.Inventory,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(&SetInventoryResponse{Message: out.Message, State: out.State})
}

// ResetConversation is called when the host switches to another chat
func (h *Handler) ResetConversation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ResetConversationRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ConversationID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("conversation_id is required"))
	}

	out, err := h.inventoryService.ResetConversation(ctx, &inventory.ResetConversationInput{
		ConversationID: in.ConversationID,
		Names:          in.Names,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(&ResetConversationResponse{State: out.State})
}

func encode(v any) (*structpb.Struct, error) {
	out, err := EncodeStruct(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
