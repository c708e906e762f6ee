package app

import (
	"context"

	"qna_board_service/internal/board/domain"
	memberdomain "qna_board_service/internal/member/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepo Mock MessageRepository
type MockMessageRepo struct {
	mock.Mock
}

func messageResult(args mock.Arguments) (*domain.Message, error) {
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// Post mock post
func (m *MockMessageRepo) Post(ctx context.Context, memberID, body string, author *domain.Author) (*domain.Message, error) {
	return messageResult(m.Called(ctx, memberID, body, author))
}

// Reply mock reply
func (m *MockMessageRepo) Reply(ctx context.Context, memberID, messageID, reply string) (*domain.Message, error) {
	return messageResult(m.Called(ctx, memberID, messageID, reply))
}

// SetDeny mock set deny
func (m *MockMessageRepo) SetDeny(ctx context.Context, memberID, messageID string, deny bool) (*domain.Message, error) {
	return messageResult(m.Called(ctx, memberID, messageID, deny))
}

// Get mock get
func (m *MockMessageRepo) Get(ctx context.Context, memberID, messageID string) (*domain.Message, error) {
	return messageResult(m.Called(ctx, memberID, messageID))
}

// ListPage mock list page
func (m *MockMessageRepo) ListPage(ctx context.Context, memberID string, page, size int64) (*domain.Page, error) {
	args := m.Called(ctx, memberID, page, size)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Page), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMemberLookup Mock MemberLookup
type MockMemberLookup struct {
	mock.Mock
}

// FindByScreenName mock find by screen name
func (m *MockMemberLookup) FindByScreenName(ctx context.Context, screenName string) (*memberdomain.Member, error) {
	args := m.Called(ctx, screenName)
	if args.Get(0) != nil {
		return args.Get(0).(*memberdomain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockEventPublisher Mock EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// Publish mock publish
func (m *MockEventPublisher) Publish(ctx context.Context, e domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

// Close mock close
func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockCardRefresher Mock CardRefresher
type MockCardRefresher struct {
	mock.Mock
}

// Refresh mock refresh
func (m *MockCardRefresher) Refresh(ctx context.Context, memberID, messageID, text string) error {
	return m.Called(ctx, memberID, messageID, text).Error(0)
}
