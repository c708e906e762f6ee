package app

import (
	"context"

	"qna_board_service/internal/member/domain"

	"github.com/stretchr/testify/mock"
)

// MockMemberRepo Mock MemberRepository
type MockMemberRepo struct {
	mock.Mock
}

// Create mock create member
func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) (bool, error) {
	args := m.Called(ctx, member)
	return args.Bool(0), args.Error(1)
}

// FindByID mock find member by uid
func (m *MockMemberRepo) FindByID(ctx context.Context, uid string) (*domain.Member, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByScreenName mock find member by screen name
func (m *MockMemberRepo) FindByScreenName(ctx context.Context, screenName string) (*domain.Member, error) {
	args := m.Called(ctx, screenName)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}
