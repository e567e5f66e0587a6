package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedbox/internal/config"
	"feedbox/internal/database"
	"feedbox/internal/repositories"
	"feedbox/internal/server"
	"feedbox/internal/services"
	"feedbox/pkg/logger"
	"feedbox/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application holds everything that must be released on shutdown.
type application struct {
	app *fiber.App
	db  *gorm.DB
	mq  *rabbitmq.Client
	log *zap.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := bootstrap(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("Startup failed", zap.Error(err))
	}

	go func() {
		log.Info("Starting server", zap.String("port", cfg.AppPort))
		if err := a.app.Listen(cfg.AppPort); err != nil {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	a.shutdown()
	log.Info("Server gracefully stopped")
}

// bootstrap connects the store, migrates it, seeds the admin account and
// builds the HTTP app. Nothing is served until it returns.
func bootstrap(ctx context.Context, cfg *config.Config, log *zap.Logger) (*application, error) {
	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}

	users := services.NewUserService(repositories.NewGORMStore(db), log)
	if _, err := users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	a := &application{db: db, log: log}

	// A nil *rabbitmq.Client must not end up inside the interface.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			database.Close(db)
			return nil, err
		}
		if err := mq.Consume(logEvent(log)); err != nil {
			log.Warn("Failed to start event consumer", zap.Error(err))
		}
		a.mq = mq
		events = mq
	} else {
		log.Info("RABBITMQ_URL not set, feedback events are disabled")
	}

	a.app = server.New(db, events, log)
	return a, nil
}

func (a *application) shutdown() {
	if a.app != nil {
		if err := a.app.Shutdown(); err != nil {
			a.log.Error("Error during Fiber shutdown", zap.Error(err))
		}
	}
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ client", zap.Error(err))
		}
	}
	if err := database.Close(a.db); err != nil {
		a.log.Error("Error closing database", zap.Error(err))
	}
}

func logEvent(log *zap.Logger) func(rabbitmq.Event) error {
	return func(ev rabbitmq.Event) error {
		log.Info("Received feedback event",
			zap.String("id", ev.ID),
			zap.String("type", ev.Type),
			zap.Uint("feedback_id", ev.FeedbackID),
			zap.Uint("user_id", ev.UserID),
			zap.Int("rating", ev.Rating))
		return nil
	}
}
