package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sefazor/meetapp-backend/internal/config"
	"github.com/sefazor/meetapp-backend/internal/handler"
	"github.com/sefazor/meetapp-backend/internal/jobs"
	"github.com/sefazor/meetapp-backend/internal/repository"
	"github.com/sefazor/meetapp-backend/internal/router"
	"github.com/sefazor/meetapp-backend/internal/service"
	"github.com/sefazor/meetapp-backend/pkg/database"
	"github.com/sefazor/meetapp-backend/pkg/jwt"
	appLogger "github.com/sefazor/meetapp-backend/pkg/logger"
	"github.com/sefazor/meetapp-backend/pkg/queue"
	"github.com/sefazor/meetapp-backend/pkg/storage"
	"github.com/sefazor/meetapp-backend/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := appLogger.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if err := run(cfg, zl); err != nil {
		zl.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDatabase(cfg.DatabaseURL, zl)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, database.Close(db)) }()

	queueClient := queue.NewClient(cfg.Redis)
	defer func() { err = multierr.Append(err, queueClient.Close()) }()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { err = multierr.Append(err, rdb.Close()) }()

	r2Storage, err := storage.NewCloudflareStorage(ctx, cfg.R2, zl)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db, cfg.R2.PublicURL)
	meetupRepo := repository.NewMeetupRepository(db, cfg.R2.PublicURL)
	subscriptionRepo := repository.NewSubscriptionRepository(db, cfg.R2.PublicURL)

	validator := utils.NewValidator()
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	dispatcher := jobs.NewDispatcher(queueClient, cfg.Queue.MaxRetry, cfg.Queue.TaskTimeout)

	// Services
	authService := service.NewAuthService(userRepo, tokens, dispatcher, validator, zl)
	userService := service.NewUserService(userRepo, validator)
	fileService := service.NewFileService(fileRepo, r2Storage, validator, zl)
	meetupService := service.NewMeetupService(meetupRepo, fileRepo, validator, cfg.Location, zl)
	subscriptionService := service.NewSubscriptionService(meetupRepo, subscriptionRepo, userRepo, dispatcher, zl)

	app := fiber.New(fiber.Config{
		AppName:      "meetapp-backend",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		BodyLimit:    6 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	router.Setup(app, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, zl),
		User:         handler.NewUserHandler(userService, zl),
		File:         handler.NewFileHandler(fileService, zl),
		Meetup:       handler.NewMeetupHandler(meetupService, zl),
		Subscription: handler.NewSubscriptionHandler(subscriptionService, zl),
		Health: handler.NewHealthHandler(zl,
			handler.HealthCheck{Name: "database", Check: func(ctx context.Context) error {
				return database.Ping(ctx, db)
			}},
			handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}},
		),
	}, tokens)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Info("api listening", zap.String("port", cfg.Port))
		return app.Listen(":" + cfg.Port)
	})

	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down api")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	return g.Wait()
}
