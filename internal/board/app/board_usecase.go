package app

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"qna_board_service/internal/board/domain"
	"qna_board_service/internal/board/repository"
	memberdomain "qna_board_service/internal/member/domain"
	errprocess "qna_board_service/pkg/err"
	"qna_board_service/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const sideEffectTimeout = 5 * time.Second

// BoardUseCase message ledger and pagination
type BoardUseCase interface {
	Post(ctx context.Context, req domain.PostReq) (*domain.Message, error)
	Reply(ctx context.Context, memberID, messageID, reply string) (*domain.Message, error)
	// SetVisibility 回傳未遮蔽的訊息, caller 已驗證為 owner
	SetVisibility(ctx context.Context, memberID, messageID string, deny bool) (*domain.Message, error)
	Get(ctx context.Context, memberID, messageID string) (*domain.Message, error)
	ListPage(ctx context.Context, memberID string, page, size int64) (*domain.Page, error)
	ListPageByScreenName(ctx context.Context, screenName string, page, size int64) (*domain.Page, error)
}

// MemberLookup resolve a screen name, (nil, nil) when absent
type MemberLookup interface {
	FindByScreenName(ctx context.Context, screenName string) (*memberdomain.Member, error)
}

// CardRefresher queue a re-render of a message card showing text
type CardRefresher interface {
	Refresh(ctx context.Context, memberID, messageID, text string) error
}

// Settings ledger limits
type Settings struct {
	MaxPageSize       int64
	MaxMessageLength  int
	DeniedPlaceholder string
}

type boardUseCase struct {
	messageRepo repository.MessageRepository
	members     MemberLookup
	events      repository.EventPublisher
	cards       CardRefresher
	settings    Settings
}

// NewBoardUseCase 建立 BoardUseCase, events 與 cards 可為 nil
func NewBoardUseCase(
	messageRepo repository.MessageRepository,
	members MemberLookup,
	events repository.EventPublisher,
	cards CardRefresher,
	settings Settings,
) BoardUseCase {
	if events == nil {
		events = repository.NewNopEventPublisher()
	}
	return &boardUseCase{
		messageRepo: messageRepo,
		members:     members,
		events:      events,
		cards:       cards,
		settings:    settings,
	}
}

func (b *boardUseCase) Post(ctx context.Context, req domain.PostReq) (*domain.Message, error) {
	if req.MemberID == "" {
		return nil, errprocess.BadRequest("uid is required")
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, errprocess.BadRequest("message is required")
	}
	if b.settings.MaxMessageLength > 0 && utf8.RuneCountInString(req.Body) > b.settings.MaxMessageLength {
		return nil, errprocess.BadRequest("message is too long")
	}

	msg, err := b.messageRepo.Post(ctx, req.MemberID, req.Body, req.NormalizedAuthor())
	if err != nil {
		return nil, mapLedgerError("post message", err)
	}

	logger.Log.Debug("message posted", zap.String("uid", msg.MemberID), zap.Int64("message_no", msg.MessageNo))
	b.afterCommit(ctx, domain.EventMessagePosted, msg, false)
	return msg, nil
}

func (b *boardUseCase) Reply(ctx context.Context, memberID, messageID, reply string) (*domain.Message, error) {
	if memberID == "" || messageID == "" {
		return nil, errprocess.BadRequest("uid and messageId are required")
	}
	if strings.TrimSpace(reply) == "" {
		return nil, errprocess.BadRequest("reply is required")
	}

	msg, err := b.messageRepo.Reply(ctx, memberID, messageID, reply)
	if err != nil {
		return nil, mapLedgerError("reply message", err)
	}

	b.afterCommit(ctx, domain.EventMessageReplied, msg, true)
	return msg, nil
}

func (b *boardUseCase) SetVisibility(ctx context.Context, memberID, messageID string, deny bool) (*domain.Message, error) {
	if memberID == "" || messageID == "" {
		return nil, errprocess.BadRequest("uid and messageId are required")
	}

	msg, err := b.messageRepo.SetDeny(ctx, memberID, messageID, deny)
	if err != nil {
		return nil, mapLedgerError("set visibility", err)
	}

	b.afterCommit(ctx, domain.EventVisibilityChanged, msg, true)
	return msg, nil
}

func (b *boardUseCase) Get(ctx context.Context, memberID, messageID string) (*domain.Message, error) {
	if memberID == "" || messageID == "" {
		return nil, errprocess.BadRequest("uid and messageId are required")
	}

	msg, err := b.messageRepo.Get(ctx, memberID, messageID)
	if err != nil {
		return nil, mapLedgerError("get message", err)
	}
	return msg.Redacted(b.settings.DeniedPlaceholder), nil
}

func (b *boardUseCase) ListPage(ctx context.Context, memberID string, page, size int64) (*domain.Page, error) {
	if memberID == "" {
		return nil, errprocess.BadRequest("uid is required")
	}
	if err := b.validateWindow(page, size); err != nil {
		return nil, err
	}

	p, err := b.messageRepo.ListPage(ctx, memberID, page, size)
	if err != nil {
		return nil, mapLedgerError("list messages", err)
	}
	for i, m := range p.Content {
		p.Content[i] = m.Redacted(b.settings.DeniedPlaceholder)
	}
	return p, nil
}

func (b *boardUseCase) ListPageByScreenName(ctx context.Context, screenName string, page, size int64) (*domain.Page, error) {
	if screenName == "" {
		return nil, errprocess.BadRequest("screenName is required")
	}
	if err := b.validateWindow(page, size); err != nil {
		return nil, err
	}

	member, err := b.members.FindByScreenName(ctx, screenName)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return domain.NewEmptyPage(domain.PageWindow{Page: page, Size: size}), nil
	}
	return b.ListPage(ctx, member.UID, page, size)
}

func (b *boardUseCase) validateWindow(page, size int64) error {
	if page < 1 {
		return errprocess.BadRequest("page must be >= 1")
	}
	if size < 1 {
		return errprocess.BadRequest("size must be >= 1")
	}
	if b.settings.MaxPageSize > 0 && size > b.settings.MaxPageSize {
		return errprocess.BadRequest("size is too large")
	}
	return nil
}

// afterCommit 事件與卡片刷新失敗只記錄, 不影響 request
func (b *boardUseCase) afterCommit(ctx context.Context, t domain.EventType, msg *domain.Message, refreshCard bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if err := b.events.Publish(ctx, domain.NewEvent(t, msg)); err != nil {
		logger.Log.Warn("publish event failed",
			zap.String("type", string(t)), zap.String("message_id", msg.ID), zap.Error(err))
	}
	if refreshCard && b.cards != nil {
		text := msg.Redacted(b.settings.DeniedPlaceholder).Body
		if err := b.cards.Refresh(ctx, msg.MemberID, msg.ID, text); err != nil {
			logger.Log.Warn("card refresh failed", zap.String("message_id", msg.ID), zap.Error(err))
		}
	}
}

func mapLedgerError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrMemberNotFound):
		return errprocess.NotFound(domain.ErrMemberNotFound.Error())
	case errors.Is(err, domain.ErrMessageNotFound):
		return errprocess.NotFound(domain.ErrMessageNotFound.Error())
	case errors.Is(err, domain.ErrAlreadyReplied):
		return errprocess.Conflict(domain.ErrAlreadyReplied.Error())
	}
	return errprocess.Internal(op, err)
}
