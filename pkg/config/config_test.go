package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boardYAML = `
port: "8080"
store:
  driver: postgres
pg:
  host: localhost
  port: 5432
  user: board
  password: ${BOARD_TEST_PG_PASSWORD}
  database: board
identity:
  secret: s3cret
  token_ttl: 30m
board:
  max_page_size: 50
kafka:
  enabled: true
  brokers: ["localhost:9092"]
thumbnail:
  enabled: true
  base_url: https://ask.example.com
  renderer_url: http://renderer:3000/screenshot
  allowed_hosts: ["cdn.example.com"]
`

func TestReadConfigExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "board_service.yaml"), []byte(boardYAML), 0o600))
	t.Setenv("BOARD_TEST_PG_PASSWORD", "from-env")

	cfg, err := ReadConfig[Board]("board_service", dir)
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateAndSetDefaults())

	assert.Equal(t, "from-env", cfg.PostgreSQL.Password)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Identity.TokenTTL)
	assert.Equal(t, int64(50), cfg.Ledger.MaxPageSize)
	assert.Equal(t, int64(10), cfg.Ledger.DefaultPageSize)
	assert.Equal(t, "board.activity", cfg.Kafka.Topic)
	assert.Equal(t, []string{"cdn.example.com"}, cfg.Thumbnail.AllowedHosts)
	assert.Equal(t, 1200, cfg.Thumbnail.Width)
	assert.Equal(t, 675, cfg.Thumbnail.Height)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig[Board]("nope", t.TempDir())
	assert.Error(t, err)
}

func TestBoardDefaults(t *testing.T) {
	cfg := Board{Port: "8080", Identity: IdentityConfig{Secret: "x"}}
	require.NoError(t, cfg.ValidateAndSetDefaults())

	assert.Equal(t, StoreMongo, cfg.Store.Driver)
	assert.Equal(t, 500, cfg.BodyKiB)
	assert.Equal(t, "@gmail.com", cfg.Identity.ScreenNameSuffix)
	assert.Equal(t, 60*time.Minute, cfg.Identity.TokenTTL)
	assert.Equal(t, int64(100), cfg.Ledger.MaxPageSize)
	assert.Equal(t, 1000, cfg.Ledger.MaxMessageLength)
	assert.NotEmpty(t, cfg.Ledger.DeniedPlaceholder)
	assert.Equal(t, 3, cfg.MongoDB.RetryCount)
}

func TestBoardValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Board
	}{
		{"missing port", Board{Identity: IdentityConfig{Secret: "x"}}},
		{"missing secret", Board{Port: "8080"}},
		{"bad driver", Board{Port: "8080", Identity: IdentityConfig{Secret: "x"}, Store: StoreConfig{Driver: "sqlite"}}},
		{"kafka without brokers", Board{Port: "8080", Identity: IdentityConfig{Secret: "x"}, Kafka: KafkaConfig{Enabled: true}}},
		{"nats without servers", Board{Port: "8080", Identity: IdentityConfig{Secret: "x"}, Nats: NatsConfig{Enabled: true}}},
		{"thumbnail without base url", Board{Port: "8080", Identity: IdentityConfig{Secret: "x"}, Thumbnail: ThumbnailConfig{Enabled: true, RendererURL: "http://r"}}},
		{"thumbnail without renderer", Board{Port: "8080", Identity: IdentityConfig{Secret: "x"}, Thumbnail: ThumbnailConfig{Enabled: true, BaseURL: "https://a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.ValidateAndSetDefaults())
		})
	}
}

func TestThumbnailWorkerValidation(t *testing.T) {
	assert.Error(t, (&ThumbnailWorker{}).ValidateAndSetDefaults())
	assert.Error(t, (&ThumbnailWorker{HealthPort: "9090"}).ValidateAndSetDefaults())

	cfg := ThumbnailWorker{HealthPort: "9090", Thumbnail: ThumbnailConfig{RendererURL: "http://r"}}
	require.NoError(t, cfg.ValidateAndSetDefaults())
	assert.Equal(t, 30*time.Second, cfg.Thumbnail.Timeout)
	assert.Equal(t, 3, cfg.RabbitMQ.RetryCount)
}
