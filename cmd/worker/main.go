package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/meetapp-backend/internal/config"
	"github.com/sefazor/meetapp-backend/internal/jobs"
	"github.com/sefazor/meetapp-backend/pkg/email"
	appLogger "github.com/sefazor/meetapp-backend/pkg/logger"
	"github.com/sefazor/meetapp-backend/pkg/queue"
)

func main() {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mailer := email.NewEmailService(cfg.Mail, zl)
	handler := jobs.NewHandler(mailer, zl,
		jobs.WithLocation(cfg.Location),
		jobs.WithLocale(cfg.Mail.Locale),
		jobs.WithTaskTimeout(cfg.Queue.TaskTimeout),
	)

	srv := queue.NewServer(cfg.Redis, cfg.Queue, zl)
	if err := srv.Start(handler); err != nil {
		zl.Fatal("worker failed to start", zap.Error(err))
	}

	<-ctx.Done()
	srv.Shutdown()
}
