package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qna_board_service/internal/thumbnail/app"
	"qna_board_service/internal/thumbnail/domain"
	"qna_board_service/internal/thumbnail/repository"
	"qna_board_service/pkg/config"
	"qna_board_service/pkg/database"
	"qna_board_service/pkg/logger"

	"go.uber.org/zap"
)

const (
	healthService = "thumbnail_worker"
	retryDelay    = 10 * time.Second
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ThumbnailWorker, config.EnvConfig.ThumbnailWorkerLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.ThumbnailWorker](config.EnvConfig.ThumbnailWorker, config.EnvConfig.ThumbnailWorkerYAMLPath)
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		logger.Log.Fatal("invalid config", zap.Error(err))
	}

	// 0. gRPC health, 在依賴就緒前為 NOT_SERVING
	health := database.NewHealthServer()
	health.SetServing(healthService, false)
	go func() {
		if err := health.Serve(":" + cfg.HealthPort); err != nil {
			logger.Log.Fatal("gRPC health server failed", zap.Error(err))
		}
	}()
	defer health.Stop()

	// 1. 連線 PostgreSQL (render registry)
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		cfg.PostgreSQL.Host, cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Database, cfg.PostgreSQL.Port)
	db, err := database.NewPGConnection(database.Connection{
		ConnectStr:    dsn,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL database after retries",
			zap.String("host", cfg.PostgreSQL.Host), zap.Error(err))
	}
	registry := repository.NewThumbnailRepo(db)
	if err := registry.AutoMigrate(); err != nil {
		logger.Log.Fatal("資料表遷移失敗", zap.Error(err))
	}

	// 2. 初始化 MinIO 客戶端
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.BucketName,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to minio after retries", zap.Error(err))
	}

	// 3. RabbitMQ
	rabbitURL := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port)
	conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    rabbitURL,
		RetryCount:    cfg.RabbitMQ.RetryCount,
		RetryInterval: time.Duration(cfg.RabbitMQ.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("RabbitMQ 連線失敗", zap.Error(err))
	}
	defer conn.Close()

	rabbitChannel, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RabbitMQ.RetryCount, time.Duration(cfg.RabbitMQ.RetryInterval))
	if err != nil {
		logger.Log.Fatal("取得 RabbitMQ Channel 失敗", zap.Error(err))
	}
	defer rabbitChannel.Close()

	if err := database.DeclareDurableQueue(rabbitChannel, domain.QueueName); err != nil {
		logger.Log.Fatal("Queue Declare failed", zap.Error(err))
	}

	renderer := repository.NewHTTPRenderer(cfg.Thumbnail.RendererURL, cfg.Thumbnail.Width, cfg.Thumbnail.Height, cfg.Thumbnail.Timeout)
	usecase := app.NewThumbnailUseCase(minioClient, registry, nil, renderer, app.Settings{
		BaseURL:      cfg.Thumbnail.BaseURL,
		AllowedHosts: cfg.Thumbnail.AllowedHosts,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := app.NewConsumer(rabbitChannel, usecase, domain.QueueName, retryDelay)
	health.SetServing(healthService, true)
	health.SetServing("", true)

	if err := consumer.StartConsumer(ctx); err != nil {
		health.SetServing(healthService, false)
		logger.Log.Error("consumer stopped", zap.Error(err))
		return
	}
	logger.Log.Info("thumbnail worker stopped")
}
