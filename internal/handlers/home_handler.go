package handlers

import (
	"context"
	"html"
	"time"

	"feedbox/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HomeHandler serves the HTML landing page showing the first feedback.
type HomeHandler struct {
	feedbacks *services.FeedbackService
}

func NewHomeHandler(feedbacks *services.FeedbackService) *HomeHandler {
	return &HomeHandler{feedbacks: feedbacks}
}

func (h *HomeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/feedbacks", h.HandleHome)
}

func (h *HomeHandler) HandleHome(c *fiber.Ctx) error {
	feedbacks, err := h.feedbacks.ListFeedbacks(c.UserContext())
	if err != nil {
		return err
	}

	headline := "No feedback yet."
	if len(feedbacks) > 0 {
		headline = feedbacks[0].Feedback
	}
	c.Type("html", "utf-8")
	return c.SendString("<h1>" + html.EscapeString(headline) + "</h1>")
}

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
