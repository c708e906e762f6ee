package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"

	"qna_board_service/internal/board/domain"
	memberdomain "qna_board_service/internal/member/domain"
	errprocess "qna_board_service/pkg/err"
	"qna_board_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const placeholder = "hidden"

var testSettings = Settings{MaxPageSize: 100, MaxMessageLength: 1000, DeniedPlaceholder: placeholder}

type mockDeps struct {
	repo    *MockMessageRepo
	members *MockMemberLookup
	events  *MockEventPublisher
	cards   *MockCardRefresher
}

func newMockUseCase() (*mockDeps, BoardUseCase) {
	logger.SetNewNop()
	d := &mockDeps{
		repo:    new(MockMessageRepo),
		members: new(MockMemberLookup),
		events:  new(MockEventPublisher),
		cards:   new(MockCardRefresher),
	}
	return d, NewBoardUseCase(d.repo, d.members, d.events, d.cards, testSettings)
}

func TestPostValidation(t *testing.T) {
	ctx := context.Background()
	d, uc := newMockUseCase()

	_, err := uc.Post(ctx, domain.PostReq{Body: "hi"})
	assert.True(t, errprocess.IsKind(err, errprocess.KindBadRequest))

	_, err = uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: "   "})
	assert.True(t, errprocess.IsKind(err, errprocess.KindBadRequest))

	_, err = uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: strings.Repeat("가", 1001)})
	assert.True(t, errprocess.IsKind(err, errprocess.KindBadRequest))

	d.repo.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostPublishesEvent(t *testing.T) {
	ctx := context.Background()
	d, uc := newMockUseCase()

	msg := &domain.Message{ID: "m1", MemberID: "u1", MessageNo: 1, Body: "hi"}
	d.repo.On("Post", ctx, "u1", "hi", (*domain.Author)(nil)).Return(msg, nil).Once()
	d.events.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventMessagePosted && e.MessageID == "m1"
	})).Return(nil).Once()

	got, err := uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: "hi", Author: &domain.Author{PhotoURL: "x"}})
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	d.events.AssertExpectations(t)
	d.cards.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostEventFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	d, uc := newMockUseCase()

	msg := &domain.Message{ID: "m1", MemberID: "u1", MessageNo: 1}
	d.repo.On("Post", ctx, "u1", "hi", mock.Anything).Return(msg, nil).Once()
	d.events.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	_, err := uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: "hi"})
	assert.NoError(t, err)
}

func TestLedgerErrorMapping(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		kind errprocess.Kind
	}{
		{"member", domain.ErrMemberNotFound, errprocess.KindNotFound},
		{"message", domain.ErrMessageNotFound, errprocess.KindNotFound},
		{"replied", domain.ErrAlreadyReplied, errprocess.KindConflict},
		{"driver", errors.New("socket closed"), errprocess.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, uc := newMockUseCase()
			d.repo.On("Reply", ctx, "u1", "m1", "yo").Return(nil, tt.err).Once()

			_, err := uc.Reply(ctx, "u1", "m1", "yo")
			assert.True(t, errprocess.IsKind(err, tt.kind), "got %v", err)
			d.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestReplyRefreshesCard(t *testing.T) {
	ctx := context.Background()
	d, uc := newMockUseCase()

	msg := &domain.Message{ID: "m1", MemberID: "u1", Reply: "yo"}
	d.repo.On("Reply", ctx, "u1", "m1", "yo").Return(msg, nil).Once()
	d.events.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
	d.cards.On("Refresh", mock.Anything, "u1", "m1", "").Return(nil).Once()

	_, err := uc.Reply(ctx, "u1", "m1", "yo")
	require.NoError(t, err)
	d.cards.AssertExpectations(t)
}

func TestSetVisibilityReturnsUnredacted(t *testing.T) {
	ctx := context.Background()
	d, uc := newMockUseCase()

	msg := &domain.Message{ID: "m1", MemberID: "u1", Body: "secret", Deny: true}
	d.repo.On("SetDeny", ctx, "u1", "m1", true).Return(msg, nil).Once()
	d.events.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
	d.cards.On("Refresh", mock.Anything, "u1", "m1", placeholder).Return(errors.New("queue down")).Once()

	got, err := uc.SetVisibility(ctx, "u1", "m1", true)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Body)
	assert.True(t, got.Deny)
}

func TestListPageValidation(t *testing.T) {
	ctx := context.Background()
	d, uc := newMockUseCase()

	for _, tc := range []struct{ page, size int64 }{{0, 10}, {1, 0}, {1, 101}, {-1, 10}} {
		_, err := uc.ListPage(ctx, "u1", tc.page, tc.size)
		assert.True(t, errprocess.IsKind(err, errprocess.KindBadRequest), "page=%d size=%d", tc.page, tc.size)
	}
	_, err := uc.ListPage(ctx, "", 1, 10)
	assert.True(t, errprocess.IsKind(err, errprocess.KindBadRequest))

	d.repo.AssertNotCalled(t, "ListPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListPageByUnknownScreenName(t *testing.T) {
	ctx := context.Background()
	d, uc := newMockUseCase()
	d.members.On("FindByScreenName", ctx, "nobody").Return(nil, nil).Once()

	p, err := uc.ListPageByScreenName(ctx, "nobody", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, p.TotalElements)
	assert.Zero(t, p.TotalPages)
	assert.Empty(t, p.Content)
}

func TestListPageByScreenName(t *testing.T) {
	ctx := context.Background()
	d, uc := newMockUseCase()
	d.members.On("FindByScreenName", ctx, "alice").Return(&memberdomain.Member{UID: "u1"}, nil).Once()
	d.repo.On("ListPage", ctx, "u1", int64(1), int64(10)).Return(&domain.Page{
		TotalElements: 1, TotalPages: 1, Page: 1, Size: 10,
		Content: []*domain.Message{{ID: "m1", Body: "secret", Deny: true}},
	}, nil).Once()

	p, err := uc.ListPageByScreenName(ctx, "alice", 1, 10)
	require.NoError(t, err)
	require.Len(t, p.Content, 1)
	assert.Equal(t, placeholder, p.Content[0].Body)
}

// newFakeUseCase use case over the in-memory ledger
func newFakeUseCase() (*memoryLedger, BoardUseCase) {
	logger.SetNewNop()
	l := newMemoryLedger()
	return l, NewBoardUseCase(l, l, nil, nil, testSettings)
}

func TestThreePostsScenario(t *testing.T) {
	ctx := context.Background()
	l, uc := newFakeUseCase()
	one := int64(1)
	l.addMember("u1", "alice", &one)

	for i := 1; i <= 3; i++ {
		msg, err := uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: fmt.Sprintf("q%d", i)})
		require.NoError(t, err)
		assert.Equal(t, int64(i), msg.MessageNo)
	}
	assert.Equal(t, int64(4), l.counter("u1"))

	p, err := uc.ListPage(ctx, "u1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.TotalElements)
	assert.Equal(t, int64(2), p.TotalPages)
	require.Len(t, p.Content, 2)
	assert.Equal(t, int64(3), p.Content[0].MessageNo)
	assert.Equal(t, int64(2), p.Content[1].MessageNo)

	p, err = uc.ListPage(ctx, "u1", 2, 2)
	require.NoError(t, err)
	require.Len(t, p.Content, 1)
	assert.Equal(t, int64(1), p.Content[0].MessageNo)

	p, err = uc.ListPage(ctx, "u1", 3, 2)
	require.NoError(t, err)
	assert.Empty(t, p.Content)
	assert.Zero(t, p.TotalPages)
}

func TestListPageFarBeyondDataIsEmpty(t *testing.T) {
	ctx := context.Background()
	l, uc := newFakeUseCase()
	one := int64(1)
	l.addMember("u1", "alice", &one)
	for i := 1; i <= 3; i++ {
		_, err := uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: fmt.Sprintf("q%d", i)})
		require.NoError(t, err)
	}

	for _, page := range []int64{1 << 62, math.MaxInt64} {
		p, err := uc.ListPage(ctx, "u1", page, 4)
		require.NoError(t, err)
		assert.Empty(t, p.Content, "page=%d", page)
		assert.Zero(t, p.TotalPages, "page=%d", page)
		assert.Equal(t, int64(3), p.TotalElements)
	}
}

func TestPostWithoutCounterStartsAtOne(t *testing.T) {
	ctx := context.Background()
	l, uc := newFakeUseCase()
	l.addMember("u1", "alice", nil)

	p, err := uc.ListPage(ctx, "u1", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, p.TotalElements)

	msg, err := uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: "first"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.MessageNo)
}

func TestPostUnknownMember(t *testing.T) {
	_, uc := newFakeUseCase()
	_, err := uc.Post(context.Background(), domain.PostReq{MemberID: "ghost", Body: "hi"})
	assert.True(t, errprocess.IsKind(err, errprocess.KindNotFound))
}

func TestConcurrentPostsGetDistinctContiguousNumbers(t *testing.T) {
	ctx := context.Background()
	l, uc := newFakeUseCase()
	l.addMember("u1", "alice", nil)

	const n = 50
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		nos []int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg, err := uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: fmt.Sprintf("q%d", i)})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			nos = append(nos, msg.MessageNo)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.Len(t, nos, n)
	sort.Slice(nos, func(i, j int) bool { return nos[i] < nos[j] })
	for i, no := range nos {
		assert.Equal(t, int64(i+1), no)
	}
	assert.Equal(t, int64(n+1), l.counter("u1"))
}

func TestReplyOnceOnly(t *testing.T) {
	ctx := context.Background()
	l, uc := newFakeUseCase()
	l.addMember("u1", "alice", nil)

	msg, err := uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: "q"})
	require.NoError(t, err)

	_, err = uc.Reply(ctx, "u1", msg.ID, "x")
	require.NoError(t, err)

	_, err = uc.Reply(ctx, "u1", msg.ID, "y")
	assert.True(t, errprocess.IsKind(err, errprocess.KindConflict))

	got, err := uc.Get(ctx, "u1", msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Reply)
	assert.NotNil(t, got.ReplyAt)
}

func TestVisibilityToggle(t *testing.T) {
	ctx := context.Background()
	l, uc := newFakeUseCase()
	l.addMember("u1", "alice", nil)

	msg, err := uc.Post(ctx, domain.PostReq{MemberID: "u1", Body: "original"})
	require.NoError(t, err)

	_, err = uc.SetVisibility(ctx, "u1", msg.ID, true)
	require.NoError(t, err)
	got, err := uc.Get(ctx, "u1", msg.ID)
	require.NoError(t, err)
	assert.Equal(t, placeholder, got.Body)

	p, err := uc.ListPage(ctx, "u1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, placeholder, p.Content[0].Body)

	_, err = uc.SetVisibility(ctx, "u1", msg.ID, false)
	require.NoError(t, err)
	got, err = uc.Get(ctx, "u1", msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Body)
}
