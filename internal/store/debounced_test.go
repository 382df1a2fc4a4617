package store_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation"
	conversationmock "github.com/KirkDiggler/rpg-inventory/internal/repositories/conversation/mock"
	"github.com/KirkDiggler/rpg-inventory/internal/store"
)

// countingRepository counts writes reaching the in-memory repository
type countingRepository struct {
	*conversation.InMemoryRepository
	saves atomic.Int32
}

func (r *countingRepository) Save(ctx context.Context, input *conversation.SaveInput) (*conversation.SaveOutput, error) {
	r.saves.Add(1)
	return r.InMemoryRepository.Save(ctx, input)
}

// blockingRepository holds every write until release is closed
type blockingRepository struct {
	*conversation.InMemoryRepository
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRepository) Save(ctx context.Context, input *conversation.SaveInput) (*conversation.SaveOutput, error) {
	select {
	case r.entered <- struct{}{}:
	default:
	}
	<-r.release
	return r.InMemoryRepository.Save(ctx, input)
}

// failingRepository rejects the first writes while failures is positive
type failingRepository struct {
	*conversation.InMemoryRepository
	failures atomic.Int32
	failed   chan struct{}
}

func (r *failingRepository) Save(ctx context.Context, input *conversation.SaveInput) (*conversation.SaveOutput, error) {
	if r.failures.Add(-1) >= 0 {
		select {
		case r.failed <- struct{}{}:
		default:
		}
		return nil, errors.Unavailable("redis down")
	}
	return r.InMemoryRepository.Save(ctx, input)
}

type DebouncedTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo *countingRepository
}

func (s *DebouncedTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = &countingRepository{InMemoryRepository: conversation.NewInMemory(nil)}
}

func TestDebouncedTestSuite(t *testing.T) {
	suite.Run(t, new(DebouncedTestSuite))
}

func (s *DebouncedTestSuite) newStore(delay time.Duration) *store.Debounced {
	st, err := store.NewDebounced(&store.Config{Repository: s.repo, Delay: delay})
	s.Require().NoError(err)
	return st
}

func withGold(id string, gold int) *conversation.Conversation {
	state := inventory.NewDefaultState()
	state.Inventory(inventory.RoleUser).Items["gold"] = &inventory.Item{ID: "gold", Name: "Gold", Count: gold}
	return &conversation.Conversation{ID: id, State: state}
}

func (s *DebouncedTestSuite) goldInRepo(id string) int {
	out, err := s.repo.Get(s.ctx, &conversation.GetInput{ID: id})
	s.Require().NoError(err)
	return out.Conversation.State.Inventory(inventory.RoleUser).Items["gold"].Count
}

func (s *DebouncedTestSuite) TestNewDebounced_Validation() {
	_, err := store.NewDebounced(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = store.NewDebounced(&store.Config{})
	s.True(errors.IsInvalidArgument(err))

	_, err = store.NewDebounced(&store.Config{Repository: s.repo, Delay: -time.Second})
	s.True(errors.IsInvalidArgument(err))
}

func (s *DebouncedTestSuite) TestSave_CoalescesWrites() {
	st := s.newStore(50 * time.Millisecond)

	for gold := 1; gold <= 3; gold++ {
		out, err := st.Save(s.ctx, &store.SaveInput{Conversation: withGold("c1", gold)})
		s.Require().NoError(err)
		s.True(out.Pending)
	}

	// nothing written yet, but reads see the latest version
	_, err := s.repo.Get(s.ctx, &conversation.GetInput{ID: "c1"})
	s.True(errors.IsNotFound(err))

	loaded, err := st.Load(s.ctx, &store.LoadInput{ConversationID: "c1"})
	s.Require().NoError(err)
	s.Equal(3, loaded.Conversation.State.Inventory(inventory.RoleUser).Items["gold"].Count)

	s.Eventually(func() bool {
		return st.Pending() == 0 && s.repo.saves.Load() == 1
	}, time.Second, 5*time.Millisecond)
	s.Equal(3, s.goldInRepo("c1"))
}

func (s *DebouncedTestSuite) TestSave_CopiesInput() {
	st := s.newStore(time.Hour)

	conv := withGold("c1", 5)
	_, err := st.Save(s.ctx, &store.SaveInput{Conversation: conv})
	s.Require().NoError(err)
	conv.State.Inventory(inventory.RoleUser).Items["gold"].Count = 500

	loaded, err := st.Load(s.ctx, &store.LoadInput{ConversationID: "c1"})
	s.Require().NoError(err)
	s.Equal(5, loaded.Conversation.State.Inventory(inventory.RoleUser).Items["gold"].Count)
}

func (s *DebouncedTestSuite) TestFlush_WritesImmediately() {
	st := s.newStore(time.Hour)

	_, err := st.Save(s.ctx, &store.SaveInput{Conversation: withGold("c1", 7)})
	s.Require().NoError(err)
	_, err = st.Save(s.ctx, &store.SaveInput{Conversation: withGold("c2", 9)})
	s.Require().NoError(err)
	s.Equal(2, st.Pending())

	s.Require().NoError(st.Flush(s.ctx))
	s.Equal(0, st.Pending())
	s.Equal(int32(2), s.repo.saves.Load())
	s.Equal(7, s.goldInRepo("c1"))
	s.Equal(9, s.goldInRepo("c2"))

	// a second flush has nothing to do
	s.Require().NoError(st.Flush(s.ctx))
	s.Equal(int32(2), s.repo.saves.Load())
}

func (s *DebouncedTestSuite) TestZeroDelay_WritesThrough() {
	st := s.newStore(0)

	out, err := st.Save(s.ctx, &store.SaveInput{Conversation: withGold("c1", 4)})
	s.Require().NoError(err)
	s.False(out.Pending)
	s.Equal(4, s.goldInRepo("c1"))
}

func (s *DebouncedTestSuite) TestLoad_FallsBackToRepository() {
	st := s.newStore(time.Hour)

	_, err := s.repo.Save(s.ctx, &conversation.SaveInput{Conversation: withGold("c1", 11)})
	s.Require().NoError(err)

	loaded, err := st.Load(s.ctx, &store.LoadInput{ConversationID: "c1"})
	s.Require().NoError(err)
	s.Equal(11, loaded.Conversation.State.Inventory(inventory.RoleUser).Items["gold"].Count)

	_, err = st.Load(s.ctx, &store.LoadInput{ConversationID: "missing"})
	s.True(errors.IsNotFound(err))

	_, err = st.Load(s.ctx, &store.LoadInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *DebouncedTestSuite) TestFlush_ReportsRepositoryFailure() {
	ctrl := gomock.NewController(s.T())
	mockRepo := conversationmock.NewMockRepository(ctrl)

	st, err := store.NewDebounced(&store.Config{Repository: mockRepo, Delay: time.Hour})
	s.Require().NoError(err)

	_, err = st.Save(s.ctx, &store.SaveInput{Conversation: withGold("c1", 1)})
	s.Require().NoError(err)

	mockRepo.EXPECT().
		Save(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	err = st.Flush(s.ctx)
	s.Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	// the unsaved version is still served
	s.Equal(1, st.Pending())
	loaded, err := st.Load(s.ctx, &store.LoadInput{ConversationID: "c1"})
	s.Require().NoError(err)
	s.Equal(1, loaded.Conversation.State.Inventory(inventory.RoleUser).Items["gold"].Count)
}

func (s *DebouncedTestSuite) TestLoad_DuringInFlightWrite() {
	repo := &blockingRepository{
		InMemoryRepository: conversation.NewInMemory(nil),
		entered:            make(chan struct{}, 1),
		release:            make(chan struct{}),
	}
	st, err := store.NewDebounced(&store.Config{Repository: repo, Delay: 10 * time.Millisecond})
	s.Require().NoError(err)

	_, err = st.Save(s.ctx, &store.SaveInput{Conversation: withGold("c1", 3)})
	s.Require().NoError(err)

	select {
	case <-repo.entered:
	case <-time.After(time.Second):
		s.FailNow("write never started")
	}

	loaded, err := st.Load(s.ctx, &store.LoadInput{ConversationID: "c1"})
	s.Require().NoError(err)
	s.Equal(3, loaded.Conversation.State.Inventory(inventory.RoleUser).Items["gold"].Count)

	// a newer version saved mid-write must survive the older write finishing
	_, err = st.Save(s.ctx, &store.SaveInput{Conversation: withGold("c1", 4)})
	s.Require().NoError(err)

	close(repo.release)

	s.Eventually(func() bool {
		return st.Pending() == 0
	}, time.Second, 5*time.Millisecond)

	out, err := repo.Get(s.ctx, &conversation.GetInput{ID: "c1"})
	s.Require().NoError(err)
	s.Equal(4, out.Conversation.State.Inventory(inventory.RoleUser).Items["gold"].Count)
}

func (s *DebouncedTestSuite) TestWrite_RetriesAfterFailure() {
	repo := &failingRepository{
		InMemoryRepository: conversation.NewInMemory(nil),
		failed:             make(chan struct{}, 1),
	}
	repo.failures.Store(1)
	st, err := store.NewDebounced(&store.Config{Repository: repo, Delay: 10 * time.Millisecond})
	s.Require().NoError(err)

	_, err = st.Save(s.ctx, &store.SaveInput{Conversation: withGold("c1", 6)})
	s.Require().NoError(err)

	select {
	case <-repo.failed:
	case <-time.After(time.Second):
		s.FailNow("write never attempted")
	}

	loaded, err := st.Load(s.ctx, &store.LoadInput{ConversationID: "c1"})
	s.Require().NoError(err)
	s.Equal(6, loaded.Conversation.State.Inventory(inventory.RoleUser).Items["gold"].Count)

	s.Eventually(func() bool {
		out, err := repo.Get(s.ctx, &conversation.GetInput{ID: "c1"})
		return err == nil && st.Pending() == 0 &&
			out.Conversation.State.Inventory(inventory.RoleUser).Items["gold"].Count == 6
	}, time.Second, 5*time.Millisecond)
}
