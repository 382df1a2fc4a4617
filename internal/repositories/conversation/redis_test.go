package conversation_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-inventory/internal/redis"
	"github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation"
	"github.com/KirkDiggler/rpg-inventory/internal/testutils"
)

const (
	testConversationID  = "conv_test123"
	testConversationKey = "inventory:conversation:conv_test123"
)

type RedisConversationTestSuite struct {
	suite.Suite
	ctx    context.Context
	client redisclient.Client
	mr     *miniredis.Miniredis
	clock  *clock.Fixed
	repo   conversation.Repository
}

func (s *RedisConversationTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.mr = testutils.CreateTestRedisClient(s.T())
	s.clock = &clock.Fixed{At: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}

	repo, err := conversation.NewRedisRepository(&conversation.Config{
		Client: s.client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func TestRedisConversationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisConversationTestSuite))
}

func (s *RedisConversationTestSuite) TestNewRedisRepository() {
	testCases := []struct {
		name    string
		config  *conversation.Config
		wantErr bool
	}{
		{
			name:   "valid config",
			config: &conversation.Config{Client: s.client, Clock: s.clock, TTL: time.Hour},
		},
		{
			name:    "nil config",
			wantErr: true,
		},
		{
			name:    "missing client",
			config:  &conversation.Config{Clock: s.clock},
			wantErr: true,
		},
		{
			name:    "missing clock",
			config:  &conversation.Config{Client: s.client},
			wantErr: true,
		},
		{
			name:    "negative ttl",
			config:  &conversation.Config{Client: s.client, Clock: s.clock, TTL: -time.Second},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := conversation.NewRedisRepository(tc.config)
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
				s.Nil(repo)
				return
			}
			s.NoError(err)
			s.NotNil(repo)
		})
	}
}

func (s *RedisConversationTestSuite) TestSaveThenGet() {
	state := inventory.NewDefaultState()
	state.Inventory(inventory.RoleChar).Items["sword"] = &inventory.Item{ID: "sword", Name: "Sword", Count: 1}
	state.Inventory(inventory.RoleChar).Equip("sword")
	state.CharacterStats(inventory.RoleUser)["hp"] = &inventory.Stat{Name: "hp", Value: inventory.Number(12)}

	saved, err := s.repo.Save(s.ctx, &conversation.SaveInput{
		Conversation: &conversation.Conversation{
			ID:    testConversationID,
			Names: inventory.Names{Char: "Seraphina", User: "Thorin"},
			State: state,
		},
	})
	s.Require().NoError(err)
	s.True(s.clock.At.Equal(saved.Conversation.UpdatedAt))
	s.True(s.mr.Exists(testConversationKey))
	s.Equal(time.Duration(0), s.mr.TTL(testConversationKey))

	got, err := s.repo.Get(s.ctx, &conversation.GetInput{ID: testConversationID})
	s.Require().NoError(err)
	s.Equal(testConversationID, got.Conversation.ID)
	s.Equal("Seraphina", got.Conversation.Names.Char)
	s.Equal(state, got.Conversation.State)
	s.True(s.clock.At.Equal(got.Conversation.UpdatedAt))
}

func (s *RedisConversationTestSuite) TestSave_DoesNotAliasInput() {
	conv := &conversation.Conversation{ID: testConversationID, State: inventory.NewDefaultState()}
	_, err := s.repo.Save(s.ctx, &conversation.SaveInput{Conversation: conv})
	s.Require().NoError(err)

	s.True(conv.UpdatedAt.IsZero())
}

func (s *RedisConversationTestSuite) TestSave_Validation() {
	_, err := s.repo.Save(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, &conversation.SaveInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, &conversation.SaveInput{Conversation: &conversation.Conversation{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisConversationTestSuite) TestGet_NotFound() {
	got, err := s.repo.Get(s.ctx, &conversation.GetInput{ID: "missing"})
	s.Error(err)
	s.Nil(got)
	s.True(errors.IsNotFound(err))
}

func (s *RedisConversationTestSuite) TestGet_EmptyID() {
	_, err := s.repo.Get(s.ctx, &conversation.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisConversationTestSuite) TestGet_MigratesLegacyState() {
	s.Require().NoError(s.mr.Set(testConversationKey, `{
		"state": {
			"char": {"items": {"cloak": {"name": "Cloak", "count": 2}}, "equipped": {}},
			"user": {"items": {}, "equipped": {}}
		}
	}`))

	got, err := s.repo.Get(s.ctx, &conversation.GetInput{ID: testConversationID})
	s.Require().NoError(err)
	s.Equal(testConversationID, got.Conversation.ID)
	s.Equal(inventory.SchemaVersion, got.Conversation.State.Version)
	s.Equal(&inventory.Item{ID: "cloak", Name: "Cloak", Count: 2},
		got.Conversation.State.Inventory(inventory.RoleChar).Items["cloak"])
}

func (s *RedisConversationTestSuite) TestGet_CorruptData() {
	s.Require().NoError(s.mr.Set(testConversationKey, `{not json`))

	got, err := s.repo.Get(s.ctx, &conversation.GetInput{ID: testConversationID})
	s.Error(err)
	s.Nil(got)
	s.True(errors.IsInternal(err))
}

func (s *RedisConversationTestSuite) TestSave_WithTTL() {
	repo, err := conversation.NewRedisRepository(&conversation.Config{
		Client: s.client,
		Clock:  s.clock,
		TTL:    30 * time.Minute,
	})
	s.Require().NoError(err)

	_, err = repo.Save(s.ctx, &conversation.SaveInput{
		Conversation: &conversation.Conversation{ID: testConversationID, State: inventory.NewDefaultState()},
	})
	s.Require().NoError(err)
	s.Equal(30*time.Minute, s.mr.TTL(testConversationKey))

	s.mr.FastForward(31 * time.Minute)

	_, err = repo.Get(s.ctx, &conversation.GetInput{ID: testConversationID})
	s.True(errors.IsNotFound(err))
}

func (s *RedisConversationTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, &conversation.SaveInput{
		Conversation: &conversation.Conversation{ID: testConversationID, State: inventory.NewDefaultState()},
	})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, &conversation.DeleteInput{ID: testConversationID})
	s.Require().NoError(err)
	s.True(out.Deleted)
	s.False(s.mr.Exists(testConversationKey))

	out, err = s.repo.Delete(s.ctx, &conversation.DeleteInput{ID: testConversationID})
	s.Require().NoError(err)
	s.False(out.Deleted)
}
