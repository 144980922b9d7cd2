package handler

import (
	"encoding/base64"
	"errors"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/model"
	"event_manager/utils"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetTickets(c *fiber.Ctx) error {
	var input model.FilterTicketInput
	if err := c.QueryParser(&input); err != nil {
		return utils.ErrorResponse(c, 400, "Invalid filter", err)
	}

	query := database.DB.Model(&model.Ticket{}).Order("created_at desc")
	if input.EventId != 0 {
		query = query.Where("event_id = ?", input.EventId)
	}
	if input.Status != "" {
		query = query.Where("status = ?", input.Status)
	}

	var totalCount int64
	query.Count(&totalCount)
	query = utils.ApplyPagination(query, input.Limit, input.Page)

	var tickets []model.Ticket
	if err := query.Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to load tickets", err)
	}

	return utils.SuccessResponse(c, 200, model.ResponseCustom{
		Rows:       tickets,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: totalCount,
	})
}

func GetTicketByCode(c *fiber.Ctx) error {
	code := c.Params("code")

	var ticket model.Ticket
	if err := database.DB.
		Preload("Event").
		Preload("Zone").
		Where("ticket_code = ?", code).
		First(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.TICKET_NOT_FOUND, err)
	}

	seatLabel := ""
	if ticket.SeatId != nil {
		var seat model.Seat
		if err := database.DB.First(&seat, *ticket.SeatId).Error; err == nil {
			seatLabel = fmt.Sprintf("%s%d", seat.Row, seat.Column)
		}
	}

	qrBytes, err := utils.GenerateQRCode(ticket.TicketCode, 400)
	qrBase64 := ""
	if err != nil {
		log.Printf("QR generation failed for ticket %s: %v", ticket.TicketCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"ticketCode": ticket.TicketCode,
		"eventTitle": ticket.Event.Title,
		"eventStart": ticket.Event.StartTime.Format("02/01/2006 15:04"),
		"zone":       ticket.Zone.Name,
		"seatLabel":  seatLabel,
		"ownerName":  ticket.OwnerName,
		"ownerEmail": ticket.OwnerEmail,
		"price":      ticket.Price,
		"status":     ticket.Status,
		"qrCode":     qrBase64,
	})
}

// CheckInTicket marks a VALID ticket as USED, exactly once.
// POST /api/v1/tickets/:code/check-in
func CheckInTicket(c *fiber.Ctx) error {
	code := c.Params("code")
	db := database.DB

	var ticket model.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("ticket_code = ?", code).
			First(&ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &SaleError{Status: 404, Message: constants.TICKET_NOT_FOUND}
			}
			return err
		}

		switch ticket.Status {
		case model.TicketUsed:
			return saleErrorf(400, "Ticket %s was already used", ticket.TicketCode)
		case model.TicketCancelled, model.TicketRefunded:
			return saleErrorf(400, "Ticket %s is %s", ticket.TicketCode, ticket.Status)
		}

		now := time.Now()
		return tx.Model(&ticket).Updates(map[string]any{
			"status":  model.TicketUsed,
			"used_at": now,
		}).Error
	})

	if err != nil {
		var se *SaleError
		if errors.As(err, &se) {
			return c.Status(se.Status).JSON(fiber.Map{"error": se.Message})
		}
		return utils.ErrorResponse(c, 500, "Check-in failed", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"message": "Checked in",
		"ticket":  ticket,
	})
}

// CancelTicket voids a ticket and releases its seat and its zone capacity
// unit. POST /api/v1/tickets/:code/cancel
func CancelTicket(c *fiber.Ctx) error {
	code := c.Params("code")
	db := database.DB

	var ticket model.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("ticket_code = ?", code).
			First(&ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &SaleError{Status: 404, Message: constants.TICKET_NOT_FOUND}
			}
			return err
		}

		if ticket.Status == model.TicketUsed {
			return saleErrorf(400, "Ticket %s was already used and cannot be cancelled", ticket.TicketCode)
		}
		if ticket.Status == model.TicketCancelled {
			return saleErrorf(400, "Ticket %s is already cancelled", ticket.TicketCode)
		}

		now := time.Now()
		if err := tx.Model(&ticket).Updates(map[string]any{
			"status":       model.TicketCancelled,
			"cancelled_at": now,
		}).Error; err != nil {
			return err
		}

		// release the seat for resale
		if ticket.SeatId != nil {
			if err := tx.Model(&model.Seat{}).
				Where("id = ?", *ticket.SeatId).
				Updates(map[string]any{
					"status":      model.SeatAvailable,
					"holder_name": "",
					"ticket_code": "",
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		var se *SaleError
		if errors.As(err, &se) {
			return c.Status(se.Status).JSON(fiber.Map{"error": se.Message})
		}
		return utils.ErrorResponse(c, 500, "Cancel failed", err)
	}

	PublishSeatUpdate(ticket.EventId)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"message": "Ticket cancelled",
		"ticket":  ticket,
	})
}

func GetPurchaseByCode(c *fiber.Ctx) error {
	code := c.Params("purchaseCode")

	var purchase model.TicketPurchase
	if err := database.DB.
		Preload("Tickets").
		Preload("Event").
		Where("public_code = ?", code).
		First(&purchase).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Purchase not found", err)
	}

	qrBytes, err := utils.GenerateQRCode(purchase.PublicCode, 400)
	qrBase64 := ""
	if err != nil {
		log.Printf("QR generation failed for purchase %s: %v", purchase.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"purchaseCode": purchase.PublicCode,
		"eventTitle":   purchase.Event.Title,
		"customerName": purchase.CustomerName,
		"email":        purchase.Email,
		"totalAmount":  purchase.TotalAmount,
		"ticketCount":  len(purchase.Tickets),
		"tickets":      purchase.Tickets,
		"qrCode":       qrBase64,
	})
}
