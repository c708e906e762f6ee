package app

import (
	"context"

	"qna_board_service/internal/thumbnail/domain"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore Mock database.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

// PutObject mock put
func (m *MockObjectStore) PutObject(ctx context.Context, objectName string, data []byte, contentType string) error {
	return m.Called(ctx, objectName, data, contentType).Error(0)
}

// GetObject mock get
func (m *MockObjectStore) GetObject(ctx context.Context, objectName string) ([]byte, error) {
	args := m.Called(ctx, objectName)
	if args.Get(0) != nil {
		return args.Get(0).([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

// IsNotFound mock not found check
func (m *MockObjectStore) IsNotFound(err error) bool {
	return m.Called(err).Bool(0)
}

// MockThumbnailRepo Mock ThumbnailRepo
type MockThumbnailRepo struct {
	mock.Mock
}

// AutoMigrate mock migrate
func (m *MockThumbnailRepo) AutoMigrate() error {
	return m.Called().Error(0)
}

// MarkPending mock pending
func (m *MockThumbnailRepo) MarkPending(ctx context.Context, t *domain.Thumbnail) error {
	return m.Called(ctx, t).Error(0)
}

// MarkReady mock ready
func (m *MockThumbnailRepo) MarkReady(ctx context.Context, objectKey string, size int) error {
	return m.Called(ctx, objectKey, size).Error(0)
}

// MarkFailed mock failed
func (m *MockThumbnailRepo) MarkFailed(ctx context.Context, objectKey string, cause error) error {
	return m.Called(ctx, objectKey, cause).Error(0)
}

// FindByKey mock find
func (m *MockThumbnailRepo) FindByKey(ctx context.Context, objectKey string) (*domain.Thumbnail, error) {
	args := m.Called(ctx, objectKey)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Thumbnail), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockJobQueue Mock JobQueue
type MockJobQueue struct {
	mock.Mock
}

// Enqueue mock enqueue
func (m *MockJobQueue) Enqueue(ctx context.Context, job domain.RenderJob) error {
	return m.Called(ctx, job).Error(0)
}

// MockRenderer Mock Renderer
type MockRenderer struct {
	mock.Mock
}

// Screenshot mock screenshot
func (m *MockRenderer) Screenshot(ctx context.Context, pageURL string) ([]byte, error) {
	args := m.Called(ctx, pageURL)
	if args.Get(0) != nil {
		return args.Get(0).([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAcknowledger Mock amqp.Acknowledger
type MockAcknowledger struct {
	mock.Mock
}

// Ack mock ack
func (m *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	return m.Called(tag, multiple).Error(0)
}

// Nack mock nack
func (m *MockAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	return m.Called(tag, multiple, requeue).Error(0)
}

// Reject mock reject
func (m *MockAcknowledger) Reject(tag uint64, requeue bool) error {
	return m.Called(tag, requeue).Error(0)
}
