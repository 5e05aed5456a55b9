package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookclub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errorResponse writes the {"error": message} envelope used by every failure path.
func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// statusFor maps a service error to an HTTP status. Anything unrecognised came from
// the store rejecting a write and is the client's fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

// validationMessage flattens validator errors into a single line.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return strings.Join(messages, "; ")
}

// paramID parses a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, c.Params(name))
	}
	return uint(id), nil
}

// parseOptionalBody decodes the body if there is one. DELETE requests often carry none.
func parseOptionalBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}
