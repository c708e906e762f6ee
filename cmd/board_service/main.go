package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "qna_board_service/cmd/board_service/docs" // swagger docs
	"qna_board_service/internal/api/handlers"
	"qna_board_service/internal/api/router"
	boardapp "qna_board_service/internal/board/app"
	boardrepo "qna_board_service/internal/board/repository"
	memberapp "qna_board_service/internal/member/app"
	memberrepo "qna_board_service/internal/member/repository"
	thumbapp "qna_board_service/internal/thumbnail/app"
	thumbdomain "qna_board_service/internal/thumbnail/domain"
	thumbrepo "qna_board_service/internal/thumbnail/repository"
	"qna_board_service/pkg/config"
	"qna_board_service/pkg/database"
	"qna_board_service/pkg/logger"
	testtool "qna_board_service/pkg/test_tool"
	t_token "qna_board_service/pkg/token"

	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const pprofAddr = "127.0.0.1:6060"

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.BoardService, config.EnvConfig.BoardServiceLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.Board](config.EnvConfig.BoardService, config.EnvConfig.BoardServiceYAMLPath)
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		logger.Log.Fatal("invalid config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. member / message store
	memberRepo, messageRepo, closeStore := openStore(ctx, cfg)
	defer closeStore()

	// 2. identity token revocation list (redis), 未啟用時 sign out 不生效
	var revoked database.RedisRepository[t_token.Revocation]
	if cfg.Redis.Enabled {
		masterName, sentinel := config.GetRedisSetting()
		redisClient, err := database.NewRedisClient(database.RedisConnection{
			MasterName:    masterName,
			SentinelAddrs: sentinel,
			Addr:          cfg.Redis.Addr,
			DB:            cfg.Redis.RedisDB,
		})
		if err != nil {
			logger.Log.Fatal("connect redis err", zap.Error(err))
		}
		defer redisClient.Close()
		revoked = database.NewRedisRepository[t_token.Revocation](redisClient)
	}
	provider := t_token.NewJWTProvider(cfg.Identity.Secret, cfg.Identity.Issuer, cfg.Identity.TokenTTL, revoked)

	// 3. activity events (kafka, 否則 nats)
	events := boardrepo.NewNopEventPublisher()
	if cfg.Kafka.Enabled {
		writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.Kafka.RetryCount,
			RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
		})
		if err != nil {
			logger.Log.Fatal("Kafka Writer 建立失敗", zap.Error(err))
		}
		events = boardrepo.NewKafkaEventPublisher(writer)
	} else if cfg.Nats.Enabled {
		nc, err := database.NewNatsConnWithRetry(database.NatsConnection{
			Servers:       cfg.Nats.Servers,
			Name:          config.EnvConfig.BoardService,
			RetryCount:    cfg.Nats.RetryCount,
			RetryInterval: time.Duration(cfg.Nats.RetryInterval),
		})
		if err != nil {
			logger.Log.Fatal("NATS 連線失敗", zap.Error(err))
		}
		events = boardrepo.NewNatsEventPublisher(nc, cfg.Nats.Subject)
	}
	defer events.Close()

	// 4. card thumbnails (minio + rabbitmq + gorm)
	var (
		thumbUC      thumbapp.ThumbnailUseCase
		thumbHandler *handlers.ThumbnailHandler
		cards        boardapp.CardRefresher
	)
	if cfg.Thumbnail.Enabled {
		var closeThumb func()
		thumbUC, closeThumb = openThumbnails(cfg)
		defer closeThumb()

		thumbHandler = handlers.NewThumbnailHandler(thumbUC)
		if cfg.RabbitMQ.Enabled {
			cards = thumbUC
		}
	}

	memberUC := memberapp.NewMemberUseCase(memberRepo, cfg.Identity.ScreenNameSuffix)
	boardUC := boardapp.NewBoardUseCase(messageRepo, memberUC, events, cards, boardapp.Settings{
		MaxPageSize:       cfg.Ledger.MaxPageSize,
		MaxMessageLength:  cfg.Ledger.MaxMessageLength,
		DeniedPlaceholder: cfg.Ledger.DeniedPlaceholder,
	})

	// 5. http
	r := router.NewApp(cfg.BodyKiB)
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.BoardServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(recover.New())
	r.Use(requestid.New())
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // access log 輸出到檔案
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	router.RegisterRoutes(r, router.Handlers{
		Member:    handlers.NewMemberHandler(memberUC),
		Message:   handlers.NewMessageHandler(boardUC, cfg.Ledger.DefaultPageSize),
		Auth:      handlers.NewAuthHandler(provider, memberUC),
		Thumbnail: thumbHandler,
		DevIssuer: cfg.Identity.DevIssuer && !config.IsProduction(),
	}, provider)

	testtool.StartPprof(pprofAddr)

	go func() {
		<-ctx.Done()
		logger.Log.Info("shutting down board service")
		if err := r.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Log.Info("board service listening", zap.String("port", cfg.Port), zap.String("store", cfg.Store.Driver))
	if err := r.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}

// openStore connect the configured backend and make sure indexes / tables exist
func openStore(ctx context.Context, cfg config.Board) (memberrepo.MemberRepository, boardrepo.MessageRepository, func()) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
		if cfg.PostgreSQL.Options != "" {
			dsn += "?" + cfg.PostgreSQL.Options
		}
		pool, err := database.NewDatabaseConnection(database.Connection{
			ConnectStr:    dsn,
			RetryCount:    cfg.PostgreSQL.RetryCount,
			RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
		})
		if err != nil {
			logger.Log.Fatal("Unable to connect to postgreSQL database after retries",
				zap.String("host", cfg.PostgreSQL.Host), zap.Error(err))
		}
		if err := memberrepo.EnsurePGSchema(ctx, pool); err != nil {
			logger.Log.Fatal("create member schema", zap.Error(err))
		}
		if err := boardrepo.EnsurePGSchema(ctx, pool); err != nil {
			logger.Log.Fatal("create message schema", zap.Error(err))
		}
		return memberrepo.NewPGMemberRepository(pool), boardrepo.NewPGMessageRepository(pool), pool.Close

	default:
		uri := fmt.Sprintf("mongodb://%s:%s@%s:%d/", cfg.MongoDB.User, cfg.MongoDB.Password, cfg.MongoDB.Host, cfg.MongoDB.Port)
		if cfg.MongoDB.Options != "" {
			uri += "?" + cfg.MongoDB.Options
		}
		mongo, err := database.NewMongoDB(ctx, database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.MongoDB.RetryCount,
			RetryInterval: time.Duration(cfg.MongoDB.RetryInterval),
		}, cfg.MongoDB.Database)
		if err != nil {
			logger.Log.Fatal("Unable to connect to mongoDB database after retries",
				zap.String("host", cfg.MongoDB.Host), zap.Error(err))
		}
		if err := boardrepo.EnsureMongoIndexes(ctx, mongo); err != nil {
			logger.Log.Fatal("create message indexes", zap.Error(err))
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongo.Close(closeCtx)
		}
		return memberrepo.NewMongoMemberRepository(mongo), boardrepo.NewMongoMessageRepository(mongo), closeFn
	}
}

// openThumbnails minio + registry + (optional) render queue
func openThumbnails(cfg config.Board) (thumbapp.ThumbnailUseCase, func()) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

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

	registry := openRegistry(cfg.PostgreSQL)

	var queue thumbrepo.JobQueue
	if cfg.RabbitMQ.Enabled {
		rabbitURL := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port)
		conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
			ConnectStr:    rabbitURL,
			RetryCount:    cfg.RabbitMQ.RetryCount,
			RetryInterval: time.Duration(cfg.RabbitMQ.RetryInterval),
		})
		if err != nil {
			logger.Log.Fatal("RabbitMQ 連線失敗", zap.Error(err))
		}
		closers = append(closers, func() { _ = conn.Close() })

		ch, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RabbitMQ.RetryCount, time.Duration(cfg.RabbitMQ.RetryInterval))
		if err != nil {
			logger.Log.Fatal("取得 RabbitMQ Channel 失敗", zap.Error(err))
		}
		closers = append(closers, func() { _ = ch.Close() })

		if err := database.DeclareDurableQueue(ch, thumbdomain.QueueName); err != nil {
			logger.Log.Fatal("Queue Declare failed", zap.Error(err))
		}
		queue = thumbrepo.NewRabbitJobQueue(database.NewRabbitRepository(ch), thumbdomain.QueueName)
	}

	renderer := thumbrepo.NewHTTPRenderer(cfg.Thumbnail.RendererURL, cfg.Thumbnail.Width, cfg.Thumbnail.Height, cfg.Thumbnail.Timeout)
	uc := thumbapp.NewThumbnailUseCase(minioClient, registry, queue, renderer, thumbapp.Settings{
		BaseURL:      cfg.Thumbnail.BaseURL,
		AllowedHosts: cfg.Thumbnail.AllowedHosts,
	})
	return uc, closeAll
}

// openRegistry gorm thumbnail registry with auto migrate
func openRegistry(pg config.DatabaseConfig) thumbrepo.ThumbnailRepo {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		pg.Host, pg.User, pg.Password, pg.Database, pg.Port)
	db, err := database.NewPGConnection(database.Connection{
		ConnectStr:    dsn,
		RetryCount:    pg.RetryCount,
		RetryInterval: time.Duration(pg.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL database after retries",
			zap.String("host", pg.Host), zap.Error(err))
	}

	registry := thumbrepo.NewThumbnailRepo(db)
	if err := registry.AutoMigrate(); err != nil {
		logger.Log.Fatal("資料表遷移失敗", zap.Error(err))
	}
	return registry
}
