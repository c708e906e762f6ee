package repository

import (
	"context"

	"qna_board_service/internal/member/domain"
)

// collection / table names
const (
	MemberCollection     = "members"
	ScreenNameCollection = "screen_names"
)

// MemberRepository definition get Member info
type MemberRepository interface {
	// Create 在同一個 transaction 內寫入 member 與 screen name, 已存在時回傳 false
	Create(ctx context.Context, member *domain.Member) (bool, error)
	FindByID(ctx context.Context, uid string) (*domain.Member, error)
	FindByScreenName(ctx context.Context, screenName string) (*domain.Member, error)
}
