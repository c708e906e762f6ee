package repository

import (
	"context"
	"time"

	"qna_board_service/internal/thumbnail/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ThumbnailRepo render registry
type ThumbnailRepo interface {
	AutoMigrate() error
	MarkPending(ctx context.Context, t *domain.Thumbnail) error
	MarkReady(ctx context.Context, objectKey string, size int) error
	MarkFailed(ctx context.Context, objectKey string, cause error) error
	FindByKey(ctx context.Context, objectKey string) (*domain.Thumbnail, error)
}

type thumbnailRepo struct {
	db *gorm.DB
}

// NewThumbnailRepo create ThumbnailRepo
func NewThumbnailRepo(db *gorm.DB) ThumbnailRepo {
	return &thumbnailRepo{db: db}
}

func (r *thumbnailRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Thumbnail{})
}

// MarkPending upsert by object key, ready 狀態不會被覆蓋回 pending
func (r *thumbnailRepo) MarkPending(ctx context.Context, t *domain.Thumbnail) error {
	t.Status = domain.StatusPending
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "object_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"card_url":   t.CardURL,
			"member_id":  t.MemberID,
			"message_id": t.MessageID,
			"updated_at": time.Now(),
			"status":     gorm.Expr("CASE WHEN thumbnails.status = ? THEN thumbnails.status ELSE ? END", domain.StatusReady, domain.StatusPending),
		}),
	}).Create(t).Error
	return errors.Wrap(err, "mark pending")
}

func (r *thumbnailRepo) MarkReady(ctx context.Context, objectKey string, size int) error {
	err := r.db.WithContext(ctx).Model(&domain.Thumbnail{}).
		Where("object_key = ?", objectKey).
		Updates(map[string]interface{}{
			"status":     domain.StatusReady,
			"bytes":      size,
			"last_error": "",
			"renders":    gorm.Expr("renders + 1"),
		}).Error
	return errors.Wrap(err, "mark ready")
}

func (r *thumbnailRepo) MarkFailed(ctx context.Context, objectKey string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	err := r.db.WithContext(ctx).Model(&domain.Thumbnail{}).
		Where("object_key = ?", objectKey).
		Updates(map[string]interface{}{
			"status":     domain.StatusFailed,
			"last_error": msg,
		}).Error
	return errors.Wrap(err, "mark failed")
}

func (r *thumbnailRepo) FindByKey(ctx context.Context, objectKey string) (*domain.Thumbnail, error) {
	var t domain.Thumbnail
	if err := r.db.WithContext(ctx).Where("object_key = ?", objectKey).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
