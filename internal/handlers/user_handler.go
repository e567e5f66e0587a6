package handlers

import (
	"feedbox/internal/schemas"
	"feedbox/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var userErrors = []errorMapping{
	{services.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{services.ErrUnauthorized, fiber.StatusUnauthorized, "Requesting user not found"},
	{services.ErrForbidden, fiber.StatusForbidden, "Not authorized to delete this user."},
	{services.ErrUsernameTaken, fiber.StatusConflict, "Username already taken"},
	{services.ErrEmailTaken, fiber.StatusConflict, "Email already registered"},
	{services.ErrDuplicateUser, fiber.StatusConflict, "Username or email already registered"},
	{services.ErrUserHasFeedback, fiber.StatusConflict, "User still has feedback"},
}

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service *services.UserService
	log     *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the user routes under router.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Patch("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var in schemas.UserCreate
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, h.log, err)
	}

	user, err := h.service.CreateUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, userErrors...)
	}
	return c.Status(fiber.StatusCreated).JSON(schemas.NewUserResponse(user))
}

func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err, userErrors...)
	}
	return c.JSON(schemas.NewUserResponses(users))
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	user, err := h.service.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, userErrors...)
	}
	return c.JSON(schemas.NewUserResponse(user))
}

func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	var patch schemas.UserUpdate
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, h.log, err)
	}

	user, err := h.service.UpdateUserPartial(c.UserContext(), id, patch)
	if err != nil {
		return respondError(c, err, userErrors...)
	}
	return c.JSON(schemas.NewUserResponse(user))
}

// HandleDeleteUser deletes a user that owns no feedback. ?email= must name an
// admin.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	email := c.Query("email")
	if email == "" {
		return missingEmail(c)
	}

	if err := h.service.DeleteUser(c.UserContext(), email, id); err != nil {
		return respondError(c, err, userErrors...)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
