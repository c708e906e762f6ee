package router

import (
	"context"

	boarddomain "qna_board_service/internal/board/domain"
	memberdomain "qna_board_service/internal/member/domain"
	thumbdomain "qna_board_service/internal/thumbnail/domain"

	"github.com/stretchr/testify/mock"
)

type mockBoard struct {
	mock.Mock
}

func messageOf(args mock.Arguments) (*boarddomain.Message, error) {
	if args.Get(0) != nil {
		return args.Get(0).(*boarddomain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func pageOf(args mock.Arguments) (*boarddomain.Page, error) {
	if args.Get(0) != nil {
		return args.Get(0).(*boarddomain.Page), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBoard) Post(ctx context.Context, req boarddomain.PostReq) (*boarddomain.Message, error) {
	return messageOf(m.Called(ctx, req))
}

func (m *mockBoard) Reply(ctx context.Context, memberID, messageID, reply string) (*boarddomain.Message, error) {
	return messageOf(m.Called(ctx, memberID, messageID, reply))
}

func (m *mockBoard) SetVisibility(ctx context.Context, memberID, messageID string, deny bool) (*boarddomain.Message, error) {
	return messageOf(m.Called(ctx, memberID, messageID, deny))
}

func (m *mockBoard) Get(ctx context.Context, memberID, messageID string) (*boarddomain.Message, error) {
	return messageOf(m.Called(ctx, memberID, messageID))
}

func (m *mockBoard) ListPage(ctx context.Context, memberID string, page, size int64) (*boarddomain.Page, error) {
	return pageOf(m.Called(ctx, memberID, page, size))
}

func (m *mockBoard) ListPageByScreenName(ctx context.Context, screenName string, page, size int64) (*boarddomain.Page, error) {
	return pageOf(m.Called(ctx, screenName, page, size))
}

type mockMembers struct {
	mock.Mock
}

func (m *mockMembers) Register(ctx context.Context, req memberdomain.RegisterReq) (*memberdomain.RegisterResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) != nil {
		return args.Get(0).(*memberdomain.RegisterResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMembers) FindByScreenName(ctx context.Context, screenName string) (*memberdomain.Member, error) {
	args := m.Called(ctx, screenName)
	if args.Get(0) != nil {
		return args.Get(0).(*memberdomain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMembers) FindByID(ctx context.Context, uid string) (*memberdomain.Member, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) != nil {
		return args.Get(0).(*memberdomain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockThumbnails struct {
	mock.Mock
}

func (m *mockThumbnails) Get(ctx context.Context, cardURL string) ([]byte, error) {
	args := m.Called(ctx, cardURL)
	if args.Get(0) != nil {
		return args.Get(0).([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockThumbnails) Refresh(ctx context.Context, memberID, messageID, text string) error {
	return m.Called(ctx, memberID, messageID, text).Error(0)
}

func (m *mockThumbnails) Process(ctx context.Context, job thumbdomain.RenderJob) error {
	return m.Called(ctx, job).Error(0)
}
