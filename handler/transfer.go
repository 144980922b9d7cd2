package handler

import (
	"errors"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransferTicket reassigns a ticket's owner contact fields and appends one
// audit row, atomically. POST /api/v1/tickets/transfer
func TransferTicket(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.TransferTicketInput)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transfer payload"})
	}

	db := database.DB
	var ticket model.Ticket

	err := db.Transaction(func(tx *gorm.DB) error {
		return applyTransfer(tx, &ticket, input)
	})

	if err != nil {
		var se *SaleError
		if errors.As(err, &se) {
			return c.Status(se.Status).JSON(fiber.Map{"error": se.Message})
		}
		return utils.ErrorResponse(c, 500, "Could not transfer ticket", err)
	}

	notifyTransfer(&ticket)

	return c.Status(200).JSON(fiber.Map{
		"success": true,
		"ticket":  ticket,
	})
}

// applyTransfer does the locked read, ownership check, audit insert and
// owner update inside the caller's transaction. The ticket is left holding
// the new owner on success.
func applyTransfer(tx *gorm.DB, ticket *model.Ticket, input model.TransferTicketInput) error {
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("ticket_code = ?", input.TicketCode).
		First(ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SaleError{Status: 404, Message: constants.TICKET_NOT_FOUND}
		}
		return err
	}

	// best-effort ownership check, not a proof of identity
	if input.CurrentOwnerEmail != "" && !strings.EqualFold(input.CurrentOwnerEmail, ticket.OwnerEmail) {
		return &SaleError{Status: 403, Message: "Current owner email does not match"}
	}

	if ticket.Status == model.TicketCancelled || ticket.Status == model.TicketRefunded {
		return saleErrorf(400, "Ticket %s is %s and cannot be transferred", ticket.TicketCode, ticket.Status)
	}

	transfer := model.TicketTransfer{
		TicketId:           ticket.ID,
		PreviousOwnerName:  ticket.OwnerName,
		PreviousOwnerEmail: ticket.OwnerEmail,
		NewOwnerName:       input.NewOwner.Name,
		NewOwnerEmail:      input.NewOwner.Email,
	}
	if err := tx.Create(&transfer).Error; err != nil {
		return err
	}

	return tx.Model(ticket).Updates(map[string]any{
		"owner_name":   input.NewOwner.Name,
		"owner_email":  input.NewOwner.Email,
		"owner_phone":  input.NewOwner.Phone,
		"owner_doc_id": input.NewOwner.DocId,
	}).Error
}

// notifyTransfer mails the new owner, who the ticket already holds after
// the committed update.
func notifyTransfer(ticket *model.Ticket) {
	if !helper.ValidEmail(ticket.OwnerEmail) {
		return
	}

	var event model.Event
	if err := database.DB.First(&event, ticket.EventId).Error; err != nil {
		return
	}

	seatLabel := ""
	if ticket.SeatId != nil {
		var seat model.Seat
		if err := database.DB.First(&seat, *ticket.SeatId).Error; err == nil {
			seatLabel = fmt.Sprintf("%s%d", seat.Row, seat.Column)
		}
	}

	previousOwner := ""
	var lastTransfer model.TicketTransfer
	if err := database.DB.Where("ticket_id = ?", ticket.ID).Order("created_at desc").First(&lastTransfer).Error; err == nil {
		previousOwner = lastTransfer.PreviousOwnerName
	}

	utils.SendTransferNotificationEmail(ticket.OwnerEmail, utils.TransferNotificationData{
		TicketCode:        ticket.TicketCode,
		EventTitle:        event.Title,
		SeatLabel:         seatLabel,
		NewOwnerName:      ticket.OwnerName,
		PreviousOwnerName: previousOwner,
	})
}
