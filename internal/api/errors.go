package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/social-api/internal/service"
)

// fail maps the service error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a persistence failure the client may retry.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidOperation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "not found"})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "server error"})
	}
}
