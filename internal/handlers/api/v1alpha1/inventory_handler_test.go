package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-inventory/internal/engine/commands"
	entities "github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/rpg-inventory/internal/handlers/tools"
	"github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory"
	inventorymock "github.com/KirkDiggler/rpg-inventory/internal/orchestrators/inventory/mock"
	"github.com/KirkDiggler/rpg-inventory/internal/testutils"
)

type InventoryHandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	ctx           context.Context
	mockInventory *inventorymock.MockService
	handler       *v1alpha1.Handler
}

func TestInventoryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryHandlerTestSuite))
}

func (s *InventoryHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.mockInventory = inventorymock.NewMockService(s.ctrl)

	registry, err := tools.NewRegistry(&tools.Config{Service: s.mockInventory})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		InventoryService: s.mockInventory,
		Tools:            registry,
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *InventoryHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *InventoryHandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func (s *InventoryHandlerTestSuite) TestNewHandler_Validation() {
	_, err := v1alpha1.NewHandler(nil)
	s.Error(err)

	_, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{InventoryService: s.mockInventory})
	s.Error(err)
}

func (s *InventoryHandlerTestSuite) TestApplyCommands_Success() {
	state := testutils.CreateTestState()
	s.mockInventory.EXPECT().
		ApplyCommands(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *inventory.ApplyCommandsInput) (*inventory.ApplyCommandsOutput, error) {
			s.Equal(testutils.TestConversationID, input.ConversationID)
			s.Require().Len(input.Commands, 1)
			s.Equal(commands.CmdSetStat, input.Commands[0].Cmd)
			s.Equal(float64(7), input.Commands[0].Stat.Value)
			return &inventory.ApplyCommandsOutput{
				BatchID: "batch_1",
				Message: inventory.MessageBatchApplied,
				Summary: []string{"Set Seraphina's hp to 7."},
				State:   state,
			}, nil
		})

	resp, err := s.handler.ApplyCommands(s.ctx, s.request(map[string]any{
		"conversation_id": testutils.TestConversationID,
		"commands": []any{
			map[string]any{"cmd": "setStat", "character": "char", "stat": map[string]any{"name": "hp", "value": 7}},
		},
	}))
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal("batch_1", got["batch_id"])
	s.Equal(inventory.MessageBatchApplied, got["message"])
	s.Equal([]any{"Set Seraphina's hp to 7."}, got["summary"])

	doc := got["state"].(map[string]any)
	s.EqualValues(entities.SchemaVersion, doc["version"])
	s.Contains(doc["inventories"], entities.RoleChar)
}

func (s *InventoryHandlerTestSuite) TestApplyCommands_CommandsNotAnArray() {
	s.mockInventory.EXPECT().
		ApplyCommands(s.ctx, &inventory.ApplyCommandsInput{ConversationID: testutils.TestConversationID}).
		Return(nil, errors.InvalidBatch([]string{"Commands must be an array"}))

	_, err := s.handler.ApplyCommands(s.ctx, s.request(map[string]any{
		"conversation_id": testutils.TestConversationID,
		"commands":        "addItem",
	}))
	s.Require().Error(err)

	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(codes.InvalidArgument, st.Code())
	s.Equal("Commands must be an array", st.Message())
	s.Equal([]string{"Commands must be an array"}, errors.BatchMessages(errors.FromGRPCError(err)))
}

func (s *InventoryHandlerTestSuite) TestApplyCommands_MissingConversation() {
	_, err := s.handler.ApplyCommands(s.ctx, s.request(map[string]any{
		"commands": []any{},
	}))
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *InventoryHandlerTestSuite) TestInvokeTool() {
	s.mockInventory.EXPECT().
		UnequipItem(s.ctx, &inventory.UnequipItemInput{
			ConversationID: testutils.TestConversationID,
			Owner:          entities.RoleChar,
			ID:             "sword",
		}).
		Return(&inventory.UnequipItemOutput{Message: "Seraphina unequipped sword"}, nil)

	resp, err := s.handler.InvokeTool(s.ctx, s.request(map[string]any{
		"conversation_id": testutils.TestConversationID,
		"name":            tools.ToolUnequipItem,
		"arguments":       map[string]any{"owner": "char", "id": "sword"},
		"names":           map[string]any{"char": testutils.TestCharName, "user": testutils.TestUserName},
	}))
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal("Seraphina unequipped sword", got["message"])
	s.Equal("Unequipped sword for Seraphina", got["toast"])
}

func (s *InventoryHandlerTestSuite) TestInvokeTool_UnknownTool() {
	_, err := s.handler.InvokeTool(s.ctx, s.request(map[string]any{
		"conversation_id": testutils.TestConversationID,
		"name":            "castSpell",
	}))
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *InventoryHandlerTestSuite) TestGetState() {
	s.mockInventory.EXPECT().
		GetState(s.ctx, &inventory.GetStateInput{ConversationID: testutils.TestConversationID}).
		Return(&inventory.GetStateOutput{
			State: testutils.CreateTestState(),
			Names: testutils.TestNames(),
		}, nil)

	resp, err := s.handler.GetState(s.ctx, s.request(map[string]any{
		"conversation_id": testutils.TestConversationID,
	}))
	s.Require().NoError(err)

	got := resp.AsMap()
	names := got["names"].(map[string]any)
	s.Equal(testutils.TestCharName, names["char"])

	inventories := got["state"].(map[string]any)["inventories"].(map[string]any)
	char := inventories[entities.RoleChar].(map[string]any)
	s.Equal([]any{"sword"}, char["equipped"])
}

func (s *InventoryHandlerTestSuite) TestRenderState() {
	s.mockInventory.EXPECT().
		RenderState(s.ctx, &inventory.RenderStateInput{
			ConversationID: testutils.TestConversationID,
			Section:        entities.SectionStats,
		}).
		Return(&inventory.RenderStateOutput{Text: "{}"}, nil)

	resp, err := s.handler.RenderState(s.ctx, s.request(map[string]any{
		"conversation_id": testutils.TestConversationID,
		"section":         "stats",
	}))
	s.Require().NoError(err)
	s.Equal("{}", resp.AsMap()["text"])
}

func (s *InventoryHandlerTestSuite) TestSetInventory_AcceptsLegacyEquipped() {
	s.mockInventory.EXPECT().
		SetInventory(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *inventory.SetInventoryInput) (*inventory.SetInventoryOutput, error) {
			inv := input.Inventories[entities.RoleUser]
			s.Require().NotNil(inv)
			s.Equal(4, inv.Items["torch"].Count)
			s.True(inv.IsEquipped("torch"))
			return &inventory.SetInventoryOutput{
				Message: inventory.MessageInventoryReplaced,
				State:   entities.NewDefaultState(),
			}, nil
		})

	resp, err := s.handler.SetInventory(s.ctx, s.request(map[string]any{
		"conversation_id": testutils.TestConversationID,
		"inventory": map[string]any{
			"user": map[string]any{
				"items":    map[string]any{"torch": map[string]any{"name": "Torch", "count": 4}},
				"equipped": map[string]any{"torch": map[string]any{"name": "Torch", "count": 1}},
			},
		},
	}))
	s.Require().NoError(err)
	s.Equal(inventory.MessageInventoryReplaced, resp.AsMap()["message"])
}

func (s *InventoryHandlerTestSuite) TestResetConversation() {
	s.mockInventory.EXPECT().
		ResetConversation(s.ctx, &inventory.ResetConversationInput{
			ConversationID: "conv-2",
			Names:          entities.Names{Char: "Mira", User: "Ash"},
		}).
		Return(&inventory.ResetConversationOutput{State: entities.NewDefaultState()}, nil)

	resp, err := s.handler.ResetConversation(s.ctx, s.request(map[string]any{
		"conversation_id": "conv-2",
		"names":           map[string]any{"char": "Mira", "user": "Ash"},
	}))
	s.Require().NoError(err)

	inventories := resp.AsMap()["state"].(map[string]any)["inventories"].(map[string]any)
	s.Contains(inventories, entities.RoleChar)
	s.Contains(inventories, entities.RoleUser)
}

func (s *InventoryHandlerTestSuite) TestServiceErrorsMapToStatus() {
	s.mockInventory.EXPECT().
		GetState(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis is down"))

	_, err := s.handler.GetState(s.ctx, s.request(map[string]any{
		"conversation_id": testutils.TestConversationID,
	}))
	s.Require().Error(err)
	s.Equal(codes.Internal, status.Code(err))
}
