package validate

import (
	"event_manager/model"

	"github.com/gofiber/fiber/v2"
)

// Purchase parses and validates the cart before any database work; an
// empty cart never reaches the sale transaction.
func Purchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PurchaseInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase payload"})
		}
		if len(input.Items) == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Cart must contain at least one item"})
		}
		if err := validate.Struct(input); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		for _, item := range input.Items {
			if item.Type == model.ItemTypeSeat && item.SeatId == 0 {
				return c.Status(400).JSON(fiber.Map{"error": "Seat items require a seatId"})
			}
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func Transfer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.TransferTicketInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid transfer payload"})
		}
		if err := validate.Struct(input); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		c.Locals("input", input)
		return c.Next()
	}
}
