package handler

import (
	"event_manager/database"
	"event_manager/model"
	"event_manager/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SeatUI struct {
	Id         uint   `json:"id"`
	Label      string `json:"label"`
	ZoneId     uint   `json:"zoneId"`
	Status     string `json:"status"`
	HolderName string `json:"holderName,omitempty"`
}

// CreateSeatLayout generates a rows x columns grid inside one zone.
func CreateSeatLayout(c *fiber.Ctx) error {
	eventId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, 400, "Invalid event id", nil)
	}
	input, ok := c.Locals("input").(model.CreateSeatLayoutInput)
	if !ok {
		return utils.ErrorResponse(c, 500, "Failed to read input", nil)
	}

	db := database.DB

	var zone model.Zone
	if err := db.Where("id = ? AND event_id = ?", input.ZoneId, eventId).First(&zone).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Zone not found for this event", err)
	}

	var existing int64
	db.Model(&model.Seat{}).Where("zone_id = ?", zone.ID).Count(&existing)
	if existing > 0 {
		return utils.ErrorResponse(c, 400, "Zone already has a seat layout", nil)
	}

	var seats []model.Seat
	for _, row := range input.Rows {
		for col := 1; col <= input.Columns; col++ {
			seats = append(seats, model.Seat{
				ZoneId:  zone.ID,
				EventId: zone.EventId,
				Row:     row,
				Column:  col,
				Status:  model.SeatAvailable,
			})
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&seats).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, 500, "Failed to create seats", err)
	}

	return utils.SuccessResponse(c, 201, fiber.Map{"created": len(seats)})
}

// GetSeatMap returns the event's seats grouped by row for the seat picker.
func GetSeatMap(c *fiber.Ctx) error {
	eventId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, 400, "Invalid event id", nil)
	}

	seatMap, err := FetchEventSeatMap(uint(eventId))
	if err != nil {
		return utils.ErrorResponse(c, 500, "Failed to load seat map", err)
	}

	return utils.SuccessResponse(c, 200, seatMap)
}

// FetchEventSeatMap is shared by the REST endpoint and the websocket
// broadcast path.
func FetchEventSeatMap(eventId uint) (map[string][]SeatUI, error) {
	var seats []model.Seat
	if err := database.DB.
		Where("event_id = ?", eventId).
		Order("row, \"column\"").
		Find(&seats).Error; err != nil {
		return nil, err
	}

	result := make(map[string][]SeatUI)
	for _, s := range seats {
		result[s.Row] = append(result[s.Row], SeatUI{
			Id:         s.ID,
			Label:      fmt.Sprintf("%s%d", s.Row, s.Column),
			ZoneId:     s.ZoneId,
			Status:     s.Status,
			HolderName: s.HolderName,
		})
	}
	return result, nil
}
