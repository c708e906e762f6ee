package app

import (
	"context"
	"errors"
	"testing"

	"qna_board_service/internal/thumbnail/domain"
	errprocess "qna_board_service/pkg/err"
	"qna_board_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://ask.example.com"

var jpeg = []byte{0xff, 0xd8, 0xff, 0xe0}

type thumbDeps struct {
	store    *MockObjectStore
	registry *MockThumbnailRepo
	queue    *MockJobQueue
	renderer *MockRenderer
}

func newThumbUseCase() (*thumbDeps, ThumbnailUseCase) {
	logger.SetNewNop()
	d := &thumbDeps{
		store:    new(MockObjectStore),
		registry: new(MockThumbnailRepo),
		queue:    new(MockJobQueue),
		renderer: new(MockRenderer),
	}
	uc := NewThumbnailUseCase(d.store, d.registry, d.queue, d.renderer, Settings{
		BaseURL:      baseURL,
		AllowedHosts: []string{"cdn.example.com"},
	})
	return d, uc
}

func TestGetRejectsForeignURL(t *testing.T) {
	d, uc := newThumbUseCase()

	for _, raw := range []string{"", "https://evil.example.org/x", "ftp://ask.example.com/x", "not a url"} {
		_, err := uc.Get(context.Background(), raw)
		assert.True(t, errprocess.IsKind(err, errprocess.KindBadRequest), raw)
	}
	d.renderer.AssertNotCalled(t, "Screenshot", mock.Anything, mock.Anything)
}

func TestGetServesCachedObject(t *testing.T) {
	d, uc := newThumbUseCase()
	card := domain.CardURL(baseURL, "hello")
	key := domain.ObjectKeyFor(card)

	d.store.On("GetObject", mock.Anything, key).Return(jpeg, nil)

	img, err := uc.Get(context.Background(), card)
	require.NoError(t, err)
	assert.Equal(t, jpeg, img)
	d.renderer.AssertNotCalled(t, "Screenshot", mock.Anything, mock.Anything)
}

func TestGetRendersOnMiss(t *testing.T) {
	d, uc := newThumbUseCase()
	card := domain.CardURL(baseURL, "hello")
	key := domain.ObjectKeyFor(card)
	missing := errors.New("NoSuchKey")

	d.store.On("GetObject", mock.Anything, key).Return(nil, missing)
	d.store.On("IsNotFound", missing).Return(true)
	d.registry.On("MarkPending", mock.Anything, mock.MatchedBy(func(th *domain.Thumbnail) bool {
		return th.ObjectKey == key && th.CardURL == card
	})).Return(nil)
	d.renderer.On("Screenshot", mock.Anything, card).Return(jpeg, nil)
	d.store.On("PutObject", mock.Anything, key, jpeg, domain.ContentType).Return(nil)
	d.registry.On("MarkReady", mock.Anything, key, len(jpeg)).Return(nil)

	img, err := uc.Get(context.Background(), card)
	require.NoError(t, err)
	assert.Equal(t, jpeg, img)
	d.store.AssertExpectations(t)
	d.registry.AssertExpectations(t)
}

func TestGetRenderFailureIsInternal(t *testing.T) {
	d, uc := newThumbUseCase()
	card := "https://cdn.example.com/open-graph-img?text=x"
	key := domain.ObjectKeyFor(card)
	missing := errors.New("NoSuchKey")
	boom := errors.New("browser crashed")

	d.store.On("GetObject", mock.Anything, key).Return(nil, missing)
	d.store.On("IsNotFound", missing).Return(true)
	d.registry.On("MarkPending", mock.Anything, mock.Anything).Return(nil)
	d.renderer.On("Screenshot", mock.Anything, card).Return(nil, boom)
	d.registry.On("MarkFailed", mock.Anything, key, boom).Return(nil)

	_, err := uc.Get(context.Background(), card)
	assert.True(t, errprocess.IsKind(err, errprocess.KindInternal))
	assert.Equal(t, errprocess.ServerErrorMessage, errprocess.PublicMessage(err))
	d.store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	d.registry.AssertExpectations(t)
}

func TestRefreshEnqueuesJob(t *testing.T) {
	d, uc := newThumbUseCase()
	card := domain.CardURL(baseURL, "new body")
	key := domain.ObjectKeyFor(card)

	d.registry.On("MarkPending", mock.Anything, mock.MatchedBy(func(th *domain.Thumbnail) bool {
		return th.ObjectKey == key && th.MemberID == "u1" && th.MessageID == "m1"
	})).Return(nil)
	d.queue.On("Enqueue", mock.Anything, mock.MatchedBy(func(job domain.RenderJob) bool {
		return job.CardURL == card && job.ObjectKey == key && job.MessageID == "m1" && !job.RequestedAt.IsZero()
	})).Return(nil)

	require.NoError(t, uc.Refresh(context.Background(), "u1", "m1", "new body"))
	d.queue.AssertExpectations(t)
}

func TestRefreshStopsWhenRegistryFails(t *testing.T) {
	d, uc := newThumbUseCase()
	d.registry.On("MarkPending", mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.Error(t, uc.Refresh(context.Background(), "u1", "m1", "x"))
	d.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestProcessStoresRender(t *testing.T) {
	d, uc := newThumbUseCase()
	job := domain.RenderJob{CardURL: domain.CardURL(baseURL, "a")}
	key := domain.ObjectKeyFor(job.CardURL)

	d.renderer.On("Screenshot", mock.Anything, job.CardURL).Return(jpeg, nil)
	d.store.On("PutObject", mock.Anything, key, jpeg, domain.ContentType).Return(nil)
	d.registry.On("MarkReady", mock.Anything, key, len(jpeg)).Return(nil)

	require.NoError(t, uc.Process(context.Background(), job))
	d.registry.AssertExpectations(t)
}

func TestProcessStoreFailureMarksFailed(t *testing.T) {
	d, uc := newThumbUseCase()
	job := domain.RenderJob{CardURL: domain.CardURL(baseURL, "a"), ObjectKey: "cards/k.jpg"}
	putErr := errors.New("bucket gone")

	d.renderer.On("Screenshot", mock.Anything, job.CardURL).Return(jpeg, nil)
	d.store.On("PutObject", mock.Anything, "cards/k.jpg", jpeg, domain.ContentType).Return(putErr)
	d.registry.On("MarkFailed", mock.Anything, "cards/k.jpg", putErr).Return(nil)

	assert.Error(t, uc.Process(context.Background(), job))
	d.registry.AssertNotCalled(t, "MarkReady", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshWithoutQueue(t *testing.T) {
	logger.SetNewNop()
	registry := new(MockThumbnailRepo)
	uc := NewThumbnailUseCase(new(MockObjectStore), registry, nil, new(MockRenderer), Settings{BaseURL: baseURL})

	err := uc.Refresh(context.Background(), "u1", "m1", "hello")
	assert.EqualError(t, err, "render queue is not configured")
	registry.AssertNotCalled(t, "MarkPending", mock.Anything, mock.Anything)
}

func TestProcessRejectsJobWithoutURL(t *testing.T) {
	d, uc := newThumbUseCase()

	err := uc.Process(context.Background(), domain.RenderJob{ObjectKey: "cards/x.jpg"})
	assert.EqualError(t, err, "render job without card url")
	d.renderer.AssertNotCalled(t, "Screenshot", mock.Anything, mock.Anything)
}
