package app

import (
	"context"
	"errors"
	"testing"

	"qna_board_service/internal/member/domain"
	errprocess "qna_board_service/pkg/err"
	"qna_board_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUseCase() (*MockMemberRepo, MemberUseCase) {
	logger.SetNewNop()
	repo := new(MockMemberRepo)
	return repo, NewMemberUseCase(repo, "@gmail.com")
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("new member", func(t *testing.T) {
		repo, uc := newTestUseCase()
		repo.On("Create", ctx, mock.MatchedBy(func(m *domain.Member) bool {
			return m.UID == "u1" && m.ScreenName == "alice" && m.DisplayName == "Alice"
		})).Return(true, nil).Once()

		res, err := uc.Register(ctx, domain.RegisterReq{UID: "u1", Email: "alice@gmail.com", DisplayName: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, &domain.RegisterResult{MemberID: "u1", ScreenName: "alice", Created: true}, res)
		repo.AssertExpectations(t)
	})

	t.Run("existing member is a no-op", func(t *testing.T) {
		repo, uc := newTestUseCase()
		repo.On("Create", ctx, mock.Anything).Return(false, nil).Once()

		res, err := uc.Register(ctx, domain.RegisterReq{UID: "u1", Email: "alice@gmail.com"})
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, "u1", res.MemberID)
	})

	t.Run("non gmail takes local part", func(t *testing.T) {
		repo, uc := newTestUseCase()
		repo.On("Create", ctx, mock.MatchedBy(func(m *domain.Member) bool {
			return m.ScreenName == "carol"
		})).Return(true, nil).Once()

		res, err := uc.Register(ctx, domain.RegisterReq{UID: "u3", Email: "carol@example.org"})
		require.NoError(t, err)
		assert.Equal(t, "carol", res.ScreenName)
	})

	t.Run("screen name taken", func(t *testing.T) {
		repo, uc := newTestUseCase()
		repo.On("Create", ctx, mock.Anything).Return(false, domain.ErrScreenNameTaken).Once()

		_, err := uc.Register(ctx, domain.RegisterReq{UID: "u2", Email: "alice@gmail.com"})
		assert.True(t, errprocess.IsKind(err, errprocess.KindConflict))
	})

	t.Run("missing fields", func(t *testing.T) {
		repo, uc := newTestUseCase()

		_, err := uc.Register(ctx, domain.RegisterReq{Email: "alice@gmail.com"})
		assert.True(t, errprocess.IsKind(err, errprocess.KindBadRequest))

		_, err = uc.Register(ctx, domain.RegisterReq{UID: "u1"})
		assert.True(t, errprocess.IsKind(err, errprocess.KindBadRequest))

		_, err = uc.Register(ctx, domain.RegisterReq{UID: "u1", Email: "@gmail.com"})
		assert.True(t, errprocess.IsKind(err, errprocess.KindBadRequest))

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		repo, uc := newTestUseCase()
		repo.On("Create", ctx, mock.Anything).Return(false, errors.New("connection reset")).Once()

		_, err := uc.Register(ctx, domain.RegisterReq{UID: "u1", Email: "alice@gmail.com"})
		assert.True(t, errprocess.IsKind(err, errprocess.KindInternal))
		assert.Equal(t, errprocess.ServerErrorMessage, errprocess.PublicMessage(err))
	})
}

func TestFindByScreenName(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, uc := newTestUseCase()
		want := &domain.Member{UID: "u1", ScreenName: "alice"}
		repo.On("FindByScreenName", ctx, "alice").Return(want, nil).Once()

		got, err := uc.FindByScreenName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("absent returns nil nil", func(t *testing.T) {
		repo, uc := newTestUseCase()
		repo.On("FindByScreenName", ctx, "nobody").Return(nil, domain.ErrMemberNotFound).Once()

		got, err := uc.FindByScreenName(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()
	repo, uc := newTestUseCase()
	repo.On("FindByID", ctx, "ghost").Return(nil, domain.ErrMemberNotFound).Once()

	_, err := uc.FindByID(ctx, "ghost")
	assert.True(t, errprocess.IsKind(err, errprocess.KindNotFound))
}
