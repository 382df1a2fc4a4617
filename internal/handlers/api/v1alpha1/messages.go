package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// ApplyCommandsRequest is the ApplyCommands request body
type ApplyCommandsRequest struct {
	ConversationID string `json:"conversation_id"`
	// Commands stays raw so a value that is not an array reaches validation
	Commands json.RawMessage `json:"commands,omitempty"`
}

// ApplyCommandsResponse is the ApplyCommands response body
type ApplyCommandsResponse struct {
	BatchID string          `json:"batch_id"`
	Message string          `json:"message"`
	Summary []string        `json:"summary"`
	State   *entities.State `json:"state"`
}

// InvokeToolRequest is the InvokeTool request body
type InvokeToolRequest struct {
	ConversationID string          `json:"conversation_id"`
	Name           string          `json:"name"`
	Arguments      json.RawMessage `json:"arguments,omitempty"`
	Names          entities.Names  `json:"names"`
}

// InvokeToolResponse is the InvokeTool response body
type InvokeToolResponse struct {
	Message string   `json:"message"`
	Summary []string `json:"summary,omitempty"`
	Toast   string   `json:"toast"`
}

// ConversationRequest addresses one conversation
type ConversationRequest struct {
	ConversationID string `json:"conversation_id"`
}

// GetStateResponse is the GetState response body
type GetStateResponse struct {
	State *entities.State `json:"state"`
	Names entities.Names  `json:"names"`
}

// RenderStateRequest is the RenderState request body
type RenderStateRequest struct {
	ConversationID string           `json:"conversation_id"`
	Section        entities.Section `json:"section,omitempty"`
}

// RenderStateResponse is the RenderState response body
type RenderStateResponse struct {
	Text string `json:"text"`
}

// SetInventoryRequest is the SetInventory request body. Inventories accept the
// legacy equipped object as well as the list form.
type SetInventoryRequest struct {
	ConversationID string                                  `json:"conversation_id"`
	Inventory      map[string]*entities.CharacterInventory `json:"inventory"`
}

// SetInventoryResponse is the SetInventory response body
type SetInventoryResponse struct {
	Message string          `json:"message"`
	State   *entities.State `json:"state"`
}

// ResetConversationRequest is the ResetConversation request body
type ResetConversationRequest struct {
	ConversationID string         `json:"conversation_id"`
	Names          entities.Names `json:"names"`
}

// ResetConversationResponse is the ResetConversation response body
type ResetConversationResponse struct {
	State *entities.State `json:"state"`
}

// DecodeStruct reads a Struct message into a request type
func DecodeStruct(in *structpb.Struct, v any) error {
	if in == nil {
		return errors.InvalidArgument("request is required")
	}
	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to read request")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}

// EncodeStruct writes a response type as a Struct message
func EncodeStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write response")
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to write response")
	}
	return out, nil
}
