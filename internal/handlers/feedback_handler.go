package handlers

import (
	"feedbox/internal/schemas"
	"feedbox/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var feedbackErrors = []errorMapping{
	{services.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{services.ErrPostNotFound, fiber.StatusNotFound, "Post not found"},
	{services.ErrFeedbackNotFound, fiber.StatusNotFound, "Feedback not found"},
	{services.ErrUnauthorized, fiber.StatusUnauthorized, "Requesting user not found"},
	{services.ErrForbidden, fiber.StatusForbidden, "Not authorized to delete this post."},
}

// FeedbackHandler handles HTTP requests for feedbacks.
type FeedbackHandler struct {
	service *services.FeedbackService
	log     *zap.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service *services.FeedbackService, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the feedback routes under router.
func (h *FeedbackHandler) RegisterRoutes(router fiber.Router) {
	feedbackRoutes := router.Group("/feedbacks")
	feedbackRoutes.Post("/", h.HandleCreateFeedback)
	feedbackRoutes.Get("/", h.HandleGetFeedbacks)
	feedbackRoutes.Get("/:id", h.HandleGetFeedback)
	feedbackRoutes.Patch("/:id", h.HandleUpdateFeedback)
	feedbackRoutes.Delete("/:id", h.HandleDeleteFeedback)
}

// HandleCreateFeedback creates a feedback and answers 201 with it.
func (h *FeedbackHandler) HandleCreateFeedback(c *fiber.Ctx) error {
	var in schemas.FeedbackCreate
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, h.log, err)
	}

	feedback, err := h.service.CreateFeedback(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, feedbackErrors...)
	}
	return c.Status(fiber.StatusCreated).JSON(schemas.NewFeedbackResponse(feedback))
}

// HandleGetFeedbacks lists every feedback.
func (h *FeedbackHandler) HandleGetFeedbacks(c *fiber.Ctx) error {
	feedbacks, err := h.service.ListFeedbacks(c.UserContext())
	if err != nil {
		return respondError(c, err, feedbackErrors...)
	}
	return c.JSON(schemas.NewFeedbackResponses(feedbacks))
}

// HandleGetFeedback answers with the list of feedbacks matching :id.
func (h *FeedbackHandler) HandleGetFeedback(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	feedbacks, err := h.service.GetFeedback(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, feedbackErrors...)
	}
	return c.JSON(schemas.NewFeedbackResponses(feedbacks))
}

// HandleUpdateFeedback applies a partial update.
func (h *FeedbackHandler) HandleUpdateFeedback(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	var patch schemas.FeedbackUpdate
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, h.log, err)
	}

	feedback, err := h.service.UpdateFeedbackPartial(c.UserContext(), id, patch)
	if err != nil {
		return respondError(c, err, feedbackErrors...)
	}
	return c.JSON(schemas.NewFeedbackResponse(feedback))
}

// HandleDeleteFeedback deletes a feedback on behalf of ?email=, who must be
// an admin.
func (h *FeedbackHandler) HandleDeleteFeedback(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	email := c.Query("email")
	if email == "" {
		return missingEmail(c)
	}

	if err := h.service.DeleteFeedback(c.UserContext(), email, id); err != nil {
		return respondError(c, err, feedbackErrors...)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
