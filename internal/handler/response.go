package handler

import (
	"go-inventory-ledger/internal/middleware"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusFor maps a service error kind to an HTTP status.
func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindNotFound:
		return fiber.StatusNotFound
	case service.KindInactiveSupplier, service.KindInsufficientStock, service.KindInvalidInput:
		return fiber.StatusBadRequest
	case service.KindConflict:
		return fiber.StatusConflict
	case service.KindUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(service.KindOf(err))
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "Internal Server Error"
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": message})
}

// respond writes a success body with data under key ("data", "purchase" or "sale").
func respond(c *fiber.Ctx, status int, message, key string, data interface{}) error {
	body := fiber.Map{"success": true, "message": message}
	if key != "" {
		body[key] = data
	}
	return c.Status(status).JSON(body)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// actorFrom reads the identity set by the auth middleware.
func actorFrom(c *fiber.Ctx) model.Actor {
	actor := model.Actor{}
	if v, ok := c.Locals(middleware.LocalUserID).(string); ok {
		actor.ID = v
	}
	if v, ok := c.Locals(middleware.LocalUserName).(string); ok {
		actor.Name = v
	}
	if v, ok := c.Locals(middleware.LocalUserEmail).(string); ok {
		actor.Email = v
	}
	return actor
}
