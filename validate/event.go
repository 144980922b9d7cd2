package validate

import (
	"event_manager/model"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return structErrorResponse(c, err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return structErrorResponse(c, err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func CreateZone() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateZoneInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return structErrorResponse(c, err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func CreateSeatLayout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateSeatLayoutInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid input", err)
		}
		if err := validate.Struct(input); err != nil {
			return structErrorResponse(c, err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}
