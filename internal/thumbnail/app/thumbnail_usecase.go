package app

import (
	"context"
	"time"

	"qna_board_service/internal/thumbnail/domain"
	"qna_board_service/internal/thumbnail/repository"
	"qna_board_service/pkg/database"
	errprocess "qna_board_service/pkg/err"
	"qna_board_service/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ThumbnailUseCase card screenshots
type ThumbnailUseCase interface {
	// Get 回傳 card 的 jpeg, 不在 MinIO 時同步 render
	Get(ctx context.Context, cardURL string) ([]byte, error)
	// Refresh queue a render of the card showing text
	Refresh(ctx context.Context, memberID, messageID, text string) error
	// Process render one job, used by the worker
	Process(ctx context.Context, job domain.RenderJob) error
}

// Settings card origin
type Settings struct {
	BaseURL      string
	AllowedHosts []string
}

type thumbnailUseCase struct {
	store    database.ObjectStore
	registry repository.ThumbnailRepo
	queue    repository.JobQueue
	renderer repository.Renderer
	settings Settings
}

// NewThumbnailUseCase queue may be nil for the worker
func NewThumbnailUseCase(
	store database.ObjectStore,
	registry repository.ThumbnailRepo,
	queue repository.JobQueue,
	renderer repository.Renderer,
	settings Settings,
) ThumbnailUseCase {
	return &thumbnailUseCase{
		store:    store,
		registry: registry,
		queue:    queue,
		renderer: renderer,
		settings: settings,
	}
}

func (t *thumbnailUseCase) Get(ctx context.Context, cardURL string) ([]byte, error) {
	if cardURL == "" {
		return nil, errprocess.BadRequest("url is required")
	}
	u, err := domain.ValidateCardURL(cardURL, t.settings.BaseURL, t.settings.AllowedHosts)
	if err != nil {
		return nil, errprocess.BadRequest(err.Error())
	}

	key := domain.ObjectKeyFor(u.String())
	img, err := t.store.GetObject(ctx, key)
	if err == nil && len(img) > 0 {
		return img, nil
	}
	if err != nil && !t.store.IsNotFound(err) {
		// storage 異常時仍直接 render
		logger.Log.Warn("read cached card failed", zap.String("key", key), zap.Error(err))
	}

	if err := t.registry.MarkPending(ctx, &domain.Thumbnail{ObjectKey: key, CardURL: u.String()}); err != nil {
		logger.Log.Warn("mark pending failed", zap.String("key", key), zap.Error(err))
	}
	img, err = t.render(ctx, u.String(), key)
	if err != nil {
		return nil, errprocess.Internal("render card", err)
	}
	return img, nil
}

func (t *thumbnailUseCase) Refresh(ctx context.Context, memberID, messageID, text string) error {
	if t.queue == nil {
		return errprocess.Set("render queue is not configured")
	}
	cardURL := domain.CardURL(t.settings.BaseURL, text)
	key := domain.ObjectKeyFor(cardURL)

	if err := t.registry.MarkPending(ctx, &domain.Thumbnail{
		ObjectKey: key,
		CardURL:   cardURL,
		MemberID:  memberID,
		MessageID: messageID,
	}); err != nil {
		return err
	}
	return t.queue.Enqueue(ctx, domain.RenderJob{
		CardURL:     cardURL,
		ObjectKey:   key,
		MemberID:    memberID,
		MessageID:   messageID,
		RequestedAt: time.Now().UTC(),
	})
}

func (t *thumbnailUseCase) Process(ctx context.Context, job domain.RenderJob) error {
	if job.CardURL == "" {
		return errprocess.Set("render job without card url")
	}
	key := job.ObjectKey
	if key == "" {
		key = domain.ObjectKeyFor(job.CardURL)
	}
	_, err := t.render(ctx, job.CardURL, key)
	return err
}

// render screenshot -> MinIO -> registry
func (t *thumbnailUseCase) render(ctx context.Context, cardURL, key string) ([]byte, error) {
	img, err := t.renderer.Screenshot(ctx, cardURL)
	if err != nil {
		t.markFailed(ctx, key, err)
		return nil, errors.Wrap(err, "screenshot")
	}
	if err := t.store.PutObject(ctx, key, img, domain.ContentType); err != nil {
		t.markFailed(ctx, key, err)
		return nil, errors.Wrap(err, "store card")
	}
	if err := t.registry.MarkReady(ctx, key, len(img)); err != nil {
		logger.Log.Warn("mark ready failed", zap.String("key", key), zap.Error(err))
	}

	logger.Log.Debug("card rendered", zap.String("key", key), zap.Int("bytes", len(img)))
	return img, nil
}

func (t *thumbnailUseCase) markFailed(ctx context.Context, key string, cause error) {
	if err := t.registry.MarkFailed(ctx, key, cause); err != nil {
		logger.Log.Warn("mark failed failed", zap.String("key", key), zap.Error(err))
	}
}
