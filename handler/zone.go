package handler

import (
	"event_manager/database"
	"event_manager/model"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateZone(c *fiber.Ctx) error {
	eventId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, 400, "Invalid event id", nil)
	}
	input, ok := c.Locals("input").(model.CreateZoneInput)
	if !ok {
		return utils.ErrorResponse(c, 500, "Failed to read input", nil)
	}

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Event not found", err)
	}

	zoneType := input.Type
	if zoneType == "" {
		zoneType = "SALE"
	}

	zone := model.Zone{
		EventId:  event.ID,
		Name:     input.Name,
		Price:    input.Price,
		Capacity: input.Capacity,
		Type:     zoneType,
	}
	if err := db.Create(&zone).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to create zone", err)
	}

	return utils.SuccessResponse(c, 201, zone)
}

func GetZonesByEvent(c *fiber.Ctx) error {
	eventId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, 400, "Invalid event id", nil)
	}

	var zones []model.Zone
	if err := database.DB.Where("event_id = ?", eventId).Order("id").Find(&zones).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to load zones", err)
	}

	result := make([]model.ZoneAvailability, 0, len(zones))
	for _, zone := range zones {
		var sold int64
		database.DB.Model(&model.Ticket{}).
			Where("zone_id = ? AND status <> ?", zone.ID, model.TicketCancelled).
			Count(&sold)

		availability := model.ZoneAvailability{Zone: zone, Sold: sold}
		if zone.Capacity != nil {
			remaining := *zone.Capacity - int(sold)
			if remaining < 0 {
				remaining = 0
			}
			availability.Remaining = &remaining
		}
		result = append(result, availability)
	}

	return utils.SuccessResponse(c, 200, result)
}
