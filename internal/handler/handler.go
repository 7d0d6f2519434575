package handler

import (
	"errors"

	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper to read the acting user id set by the auth middleware
func getUserID(c *fiber.Ctx) uuid.UUID {
	raw, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Helper to parse a UUID path parameter
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// queryUUID parses an optional UUID query parameter; nil when absent
func queryUUID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// fail maps service errors onto the external error contract. Domain failures
// keep their message; anything unexpected stays generic.
func fail(c *fiber.Ctx, err error) error {
	var dupName *service.DuplicateNameError
	var dupConfig *service.DuplicateConfigurationError

	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &dupName),
		errors.As(err, &dupConfig),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInsufficientStock):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCapacityExhausted):
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
