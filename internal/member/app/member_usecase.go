package app

import (
	"context"
	"strings"

	"qna_board_service/internal/member/domain"
	"qna_board_service/internal/member/repository"
	errprocess "qna_board_service/pkg/err"
	"qna_board_service/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MemberUseCase 這裡封裝了對外提供的應用服務
type MemberUseCase interface {
	Register(ctx context.Context, req domain.RegisterReq) (*domain.RegisterResult, error)
	// FindByScreenName 不存在時回傳 (nil, nil)
	FindByScreenName(ctx context.Context, screenName string) (*domain.Member, error)
	FindByID(ctx context.Context, uid string) (*domain.Member, error)
}

type memberUseCase struct {
	memberRepo       repository.MemberRepository
	screenNameSuffix string
}

// NewMemberUseCase 建立一個新的 MemberUseCase
func NewMemberUseCase(memberRepo repository.MemberRepository, screenNameSuffix string) MemberUseCase {
	return &memberUseCase{
		memberRepo:       memberRepo,
		screenNameSuffix: screenNameSuffix,
	}
}

// Register 建立會員, 已存在時不做任何事
func (m *memberUseCase) Register(ctx context.Context, req domain.RegisterReq) (*domain.RegisterResult, error) {
	req.UID = strings.TrimSpace(req.UID)
	if req.UID == "" {
		return nil, errprocess.BadRequest("uid is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, errprocess.BadRequest("email is required")
	}

	screenName, err := domain.ScreenNameFromEmail(req.Email, m.screenNameSuffix)
	if err != nil {
		return nil, errprocess.BadRequest(err.Error())
	}

	member := &domain.Member{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		ScreenName:  screenName,
	}

	created, err := m.memberRepo.Create(ctx, member)
	if err != nil {
		if errors.Is(err, domain.ErrScreenNameTaken) {
			return nil, errprocess.Conflict(domain.ErrScreenNameTaken.Error())
		}
		return nil, errprocess.Internal("member register", err)
	}

	logger.Log.Info("member register",
		zap.String("uid", req.UID),
		zap.String("screen_name", screenName),
		zap.Bool("created", created),
	)

	return &domain.RegisterResult{
		MemberID:   req.UID,
		ScreenName: screenName,
		Created:    created,
	}, nil
}

func (m *memberUseCase) FindByScreenName(ctx context.Context, screenName string) (*domain.Member, error) {
	if screenName == "" {
		return nil, errprocess.BadRequest("screenName is required")
	}
	member, err := m.memberRepo.FindByScreenName(ctx, screenName)
	if errors.Is(err, domain.ErrMemberNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errprocess.Internal("find member by screen name", err)
	}
	return member, nil
}

func (m *memberUseCase) FindByID(ctx context.Context, uid string) (*domain.Member, error) {
	if uid == "" {
		return nil, errprocess.BadRequest("uid is required")
	}
	member, err := m.memberRepo.FindByID(ctx, uid)
	if errors.Is(err, domain.ErrMemberNotFound) {
		return nil, errprocess.NotFound("member not found")
	}
	if err != nil {
		return nil, errprocess.Internal("find member", err)
	}
	return member, nil
}
