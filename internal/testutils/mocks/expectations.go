// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation"
	"github.com/KirkDiggler/rpg-inventory/internal/store"
	storemock "github.com/KirkDiggler/rpg-inventory/internal/store/mock"
)

// ExpectConversationLoad sets up a load that returns a fresh copy of conv on every
// call, or NotFound when conv is nil
func ExpectConversationLoad(
	ctx context.Context, mockStore *storemock.MockStateStore, conversationID string, conv *conversation.Conversation,
) *gomock.Call {
	call := mockStore.EXPECT().Load(ctx, &store.LoadInput{ConversationID: conversationID})
	if conv == nil {
		return call.Return(nil, errors.NotFoundf("conversation %s not found", conversationID))
	}
	return call.DoAndReturn(func(context.Context, *store.LoadInput) (*store.LoadOutput, error) {
		return &store.LoadOutput{Conversation: conv.Clone()}, nil
	})
}

// SavedConversation collects what the orchestrator handed to the store
type SavedConversation struct {
	Conversation *conversation.Conversation
	Calls        int
}

// ExpectConversationSave sets up exactly one save and records the conversation written
func ExpectConversationSave(ctx context.Context, mockStore *storemock.MockStateStore) *SavedConversation {
	saved := &SavedConversation{}
	mockStore.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *store.SaveInput) (*store.SaveOutput, error) {
			saved.Conversation = input.Conversation.Clone()
			saved.Calls++
			return &store.SaveOutput{Pending: true}, nil
		})
	return saved
}
