package handler

import (
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetEvents(c *fiber.Ctx) error {
	var input model.FilterEventInput
	if err := c.QueryParser(&input); err != nil {
		return utils.ErrorResponse(c, 400, "Invalid filter", err)
	}

	query := database.DB.Model(&model.Event{}).Order("start_time asc")
	if input.Status != "" {
		query = query.Where("status = ?", input.Status)
	}
	if input.Search != "" {
		query = query.Where("title ILIKE ?", "%"+input.Search+"%")
	}

	var totalCount int64
	query.Count(&totalCount)
	query = utils.ApplyPagination(query, input.Limit, input.Page)

	var events []model.Event
	if err := query.Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to load events", err)
	}

	return utils.SuccessResponse(c, 200, model.ResponseCustom{
		Rows:       events,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: totalCount,
	})
}

func GetEventDetail(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var event model.Event
	if err := database.DB.
		Preload("Zones").
		Where("slug = ?", slugParam).
		First(&event).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Event not found", err)
	}

	zones := make([]model.ZoneAvailability, 0, len(event.Zones))
	for _, zone := range event.Zones {
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
		zones = append(zones, availability)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"event": event,
		"zones": zones,
	})
}

func CreateEvent(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateEventInput)
	if !ok {
		return utils.ErrorResponse(c, 500, "Failed to read input", nil)
	}

	db := database.DB
	var event model.Event

	err := db.Transaction(func(tx *gorm.DB) error {
		event = model.Event{
			Title:       input.Title,
			Slug:        helper.GenerateUniqueEventSlug(tx, input.Title),
			Description: input.Description,
			Venue:       input.Venue,
			StartTime:   input.StartTime,
			EndTime:     input.EndTime,
			SaleStart:   input.SaleStart,
			BannerUrl:   input.BannerUrl,
			Status:      model.EventUpcoming,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, 500, "Failed to create event", err)
	}

	return utils.SuccessResponse(c, 201, event)
}

func EditEvent(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.UpdateEventInput)
	if !ok {
		return utils.ErrorResponse(c, 500, "Failed to read input", nil)
	}
	eventId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, 400, "Invalid event id", nil)
	}

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Event not found", err)
	}

	copier.CopyWithOption(&event, &input, copier.Option{IgnoreEmpty: true})

	if err := db.Save(&event).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to update event", err)
	}

	return utils.SuccessResponse(c, 200, event)
}

// CancelEvent stops sales; existing tickets stay untouched here.
func CancelEvent(c *fiber.Ctx) error {
	eventId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, 400, "Invalid event id", nil)
	}

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Event not found", err)
	}
	if event.Status == model.EventCancelled {
		return utils.ErrorResponse(c, 400, "Event is already cancelled", nil)
	}

	if err := db.Model(&event).Update("status", model.EventCancelled).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to cancel event", err)
	}

	return utils.SuccessResponse(c, 200, event)
}

func DeleteEvent(c *fiber.Ctx) error {
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, 400, "Invalid input", nil)
	}

	if err := database.DB.Delete(&model.Event{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to delete events", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"deleted": len(input.IDs)})
}
