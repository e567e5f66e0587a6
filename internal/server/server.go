package server

import (
	"context"

	"feedbox/internal/database"
	"feedbox/internal/handlers"
	"feedbox/internal/middleware"
	"feedbox/internal/repositories"
	"feedbox/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a Fiber app. events may
// be nil, in which case no lifecycle events are published.
func New(db *gorm.DB, events services.EventPublisher, log *zap.Logger) *fiber.App {
	store := repositories.NewGORMStore(db)

	feedbackService := services.NewFeedbackService(store, events, log)
	userService := services.NewUserService(store, log)

	app := fiber.New(fiber.Config{
		AppName:      "feedbox",
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())

	api := app.Group("/api")
	handlers.NewFeedbackHandler(feedbackService, log).RegisterRoutes(api)
	handlers.NewUserHandler(userService, log).RegisterRoutes(api)

	handlers.NewHomeHandler(feedbackService).RegisterRoutes(app)
	handlers.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}).RegisterRoutes(app)

	return app
}
