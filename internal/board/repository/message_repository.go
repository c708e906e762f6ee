package repository

import (
	"context"

	"qna_board_service/internal/board/domain"
)

// MessageCollection messages collection / table name
const MessageCollection = "messages"

// MessageRepository per-member message ledger, 每個方法都在單一 transaction 內完成
type MessageRepository interface {
	// Post assign messageNo from the member counter and insert the message
	Post(ctx context.Context, memberID, body string, author *domain.Author) (*domain.Message, error)
	Reply(ctx context.Context, memberID, messageID, reply string) (*domain.Message, error)
	SetDeny(ctx context.Context, memberID, messageID string, deny bool) (*domain.Message, error)
	Get(ctx context.Context, memberID, messageID string) (*domain.Message, error)
	// ListPage read the counter and the window rows in the same transaction
	ListPage(ctx context.Context, memberID string, page, size int64) (*domain.Page, error)
}
