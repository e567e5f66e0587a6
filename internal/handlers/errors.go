package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"feedbox/internal/middleware"
	"feedbox/internal/schemas"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorMapping ties a domain error to the response a client sees.
type errorMapping struct {
	target  error
	status  int
	message string
}

// respondError writes the response for a known failure. Anything it does not
// recognise is returned unchanged so ErrorHandler can report it.
func respondError(c *fiber.Ctx, err error, mappings ...errorMapping) error {
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Errors,
		})
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(fiber.Map{
				"message": m.message,
			})
		}
	}
	return err
}

// ErrorHandler is the last stop for errors returned by handlers. Internal
// detail is logged, never sent to the client.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"message": fe.Message,
			})
		}

		log.Error("Unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals(middleware.RequestIDKey)),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

// parseID reads the :id path parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid ID",
	})
}

// invalidBody answers a body BodyParser could not decode. A well-formed body
// holding a value of the wrong type is reported like any other field error.
func invalidBody(c *fiber.Ctx, log *zap.Logger, err error) error {
	log.Debug("Error parsing request body", zap.String("path", c.Path()), zap.Error(err))

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return respondError(c, &schemas.ValidationError{Errors: []schemas.FieldError{{
			Field:   typeErr.Field,
			Tag:     "type",
			Message: fmt.Sprintf("Field '%s' must be of type %s", typeErr.Field, jsonKind(typeErr)),
		}}})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
	})
}

func jsonKind(e *json.UnmarshalTypeError) string {
	if e.Type == nil {
		return "value"
	}
	switch e.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	default:
		return e.Type.String()
	}
}

// missingEmail answers destructive requests sent without the requester's email.
func missingEmail(c *fiber.Ctx) error {
	return respondError(c, &schemas.ValidationError{Errors: []schemas.FieldError{{
		Field:   "email",
		Tag:     "required",
		Message: "Query parameter 'email' is required",
	}}})
}
