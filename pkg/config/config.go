package config

import (
	"errors"
	"time"
)

// store drivers
const (
	// StoreMongo members/messages in MongoDB
	StoreMongo = "mongo"
	// StorePostgres members/messages in PostgreSQL
	StorePostgres = "postgres"
)

const (
	defaultPageSize          = 10
	defaultMaxPageSize       = 100
	defaultMaxMessageLength  = 1000
	defaultDeniedPlaceholder = "This message has been hidden by its owner."
	defaultScreenNameSuffix  = "@gmail.com"
	defaultTokenTTL          = 60 * time.Minute
	defaultRetryCount        = 3
	defaultRetryInterval     = 2
	defaultCardWidth         = 1200
	defaultCardHeight        = 675
	defaultEventTopic        = "board.activity"
)

// Board definition board_service YAML structure
type Board struct {
	Port    string `mapstructure:"port"`
	BodyKiB int    `mapstructure:"body_limit_kib"`

	Store      StoreConfig     `mapstructure:"store"`
	MongoDB    DatabaseConfig  `mapstructure:"mongo"`
	PostgreSQL DatabaseConfig  `mapstructure:"pg"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Identity   IdentityConfig  `mapstructure:"identity"`
	Ledger     LedgerConfig    `mapstructure:"board"`
	Kafka      KafkaConfig     `mapstructure:"kafka"`
	Nats       NatsConfig      `mapstructure:"nats"`
	RabbitMQ   RabbitMQConfig  `mapstructure:"rabbitmq"`
	MinIO      MinIOConfig     `mapstructure:"minio"`
	Thumbnail  ThumbnailConfig `mapstructure:"thumbnail"`
}

// ThumbnailWorker definition thumbnail_worker YAML structure
type ThumbnailWorker struct {
	HealthPort string `mapstructure:"health_port"`

	PostgreSQL DatabaseConfig  `mapstructure:"pg"`
	RabbitMQ   RabbitMQConfig  `mapstructure:"rabbitmq"`
	MinIO      MinIOConfig     `mapstructure:"minio"`
	Thumbnail  ThumbnailConfig `mapstructure:"thumbnail"`
}

// StoreConfig pick the member/message backend
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	RedisDB int    `mapstructure:"redis_db"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	Options       string `mapstructure:"options"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// IdentityConfig identity token settings
type IdentityConfig struct {
	Secret   string        `mapstructure:"secret"`
	Issuer   string        `mapstructure:"issuer"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// DevIssuer expose POST /api/auth.token, local only
	DevIssuer        bool   `mapstructure:"dev_issuer"`
	ScreenNameSuffix string `mapstructure:"screen_name_suffix"`
}

// LedgerConfig message board limits
type LedgerConfig struct {
	DefaultPageSize   int64  `mapstructure:"default_page_size"`
	MaxPageSize       int64  `mapstructure:"max_page_size"`
	MaxMessageLength  int    `mapstructure:"max_message_length"`
	DeniedPlaceholder string `mapstructure:"denied_placeholder"`
}

// KafkaConfig activity event stream
type KafkaConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	RetryCount    int      `mapstructure:"retry_count"`
	RetryInterval int      `mapstructure:"retry_interval"`
}

// NatsConfig activity events over NATS, used when kafka is disabled
type NatsConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Servers []string `mapstructure:"servers"`
	Subject string   `mapstructure:"subject"`

	RetryCount    int `mapstructure:"retry_count"`
	RetryInterval int `mapstructure:"retry_interval"`
}

// RabbitMQConfig card render queue
type RabbitMQConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	IP            string `mapstructure:"ip"`
	Port          string `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	RetryCount    int    `mapstructure:"retry_count"`
	RetryInterval int    `mapstructure:"retry_interval"`
}

// MinIOConfig thumbnail object storage
type MinIOConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	BucketName    string `mapstructure:"bucket_name"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	RetryCount    int    `mapstructure:"retry_count"`
	RetryInterval int    `mapstructure:"retry_interval"`
}

// ThumbnailConfig card screenshot settings
type ThumbnailConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// BaseURL public origin of the card pages, e.g. https://ask.example.com
	BaseURL      string   `mapstructure:"base_url"`
	AllowedHosts []string `mapstructure:"allowed_hosts"`
	// RendererURL headless browser screenshot endpoint
	RendererURL string        `mapstructure:"renderer_url"`
	Width       int           `mapstructure:"width"`
	Height      int           `mapstructure:"height"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ValidateAndSetDefaults validates the configuration and sets default values.
func (c *Board) ValidateAndSetDefaults() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.BodyKiB <= 0 {
		c.BodyKiB = 500
	}
	switch c.Store.Driver {
	case "":
		c.Store.Driver = StoreMongo
	case StoreMongo, StorePostgres:
	default:
		return errors.New("store.driver must be mongo or postgres")
	}
	if c.Identity.Secret == "" {
		return errors.New("identity.secret is required")
	}
	if c.Identity.TokenTTL <= 0 {
		c.Identity.TokenTTL = defaultTokenTTL
	}
	if c.Identity.ScreenNameSuffix == "" {
		c.Identity.ScreenNameSuffix = defaultScreenNameSuffix
	}
	c.Ledger.setDefaults()
	c.MongoDB.setDefaults()
	c.PostgreSQL.setDefaults()
	c.MinIO.setDefaults()
	c.Thumbnail.setDefaults()
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("kafka.brokers is required when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			c.Kafka.Topic = defaultEventTopic
		}
		if c.Kafka.RetryCount <= 0 {
			c.Kafka.RetryCount = defaultRetryCount
		}
		if c.Kafka.RetryInterval <= 0 {
			c.Kafka.RetryInterval = defaultRetryInterval
		}
	}
	if c.Nats.Enabled {
		if len(c.Nats.Servers) == 0 {
			return errors.New("nats.servers is required when nats is enabled")
		}
		if c.Nats.Subject == "" {
			c.Nats.Subject = defaultEventTopic
		}
		if c.Nats.RetryCount <= 0 {
			c.Nats.RetryCount = defaultRetryCount
		}
		if c.Nats.RetryInterval <= 0 {
			c.Nats.RetryInterval = defaultRetryInterval
		}
	}
	if c.Thumbnail.Enabled {
		if c.Thumbnail.BaseURL == "" {
			return errors.New("thumbnail.base_url is required when thumbnail is enabled")
		}
		if c.Thumbnail.RendererURL == "" {
			return errors.New("thumbnail.renderer_url is required when thumbnail is enabled")
		}
		if c.RabbitMQ.RetryCount <= 0 {
			c.RabbitMQ.RetryCount = defaultRetryCount
		}
		if c.RabbitMQ.RetryInterval <= 0 {
			c.RabbitMQ.RetryInterval = defaultRetryInterval
		}
	}
	return nil
}

// ValidateAndSetDefaults validates the worker configuration and sets default values.
func (c *ThumbnailWorker) ValidateAndSetDefaults() error {
	if c.HealthPort == "" {
		return errors.New("health_port is required")
	}
	if c.Thumbnail.RendererURL == "" {
		return errors.New("thumbnail.renderer_url is required")
	}
	c.PostgreSQL.setDefaults()
	c.MinIO.setDefaults()
	c.Thumbnail.setDefaults()
	if c.RabbitMQ.RetryCount <= 0 {
		c.RabbitMQ.RetryCount = defaultRetryCount
	}
	if c.RabbitMQ.RetryInterval <= 0 {
		c.RabbitMQ.RetryInterval = defaultRetryInterval
	}
	return nil
}

func (l *LedgerConfig) setDefaults() {
	if l.DefaultPageSize <= 0 {
		l.DefaultPageSize = defaultPageSize
	}
	if l.MaxPageSize <= 0 {
		l.MaxPageSize = defaultMaxPageSize
	}
	if l.MaxMessageLength <= 0 {
		l.MaxMessageLength = defaultMaxMessageLength
	}
	if l.DeniedPlaceholder == "" {
		l.DeniedPlaceholder = defaultDeniedPlaceholder
	}
}

func (d *DatabaseConfig) setDefaults() {
	if d.RetryCount <= 0 {
		d.RetryCount = defaultRetryCount
	}
	if d.RetryInterval <= 0 {
		d.RetryInterval = defaultRetryInterval
	}
}

func (m *MinIOConfig) setDefaults() {
	if m.RetryCount <= 0 {
		m.RetryCount = defaultRetryCount
	}
	if m.RetryInterval <= 0 {
		m.RetryInterval = defaultRetryInterval
	}
}

func (t *ThumbnailConfig) setDefaults() {
	if t.Width <= 0 {
		t.Width = defaultCardWidth
	}
	if t.Height <= 0 {
		t.Height = defaultCardHeight
	}
	if t.Timeout <= 0 {
		t.Timeout = 30 * time.Second
	}
}
