package handler

import (
	"context"
	"errors"
	"event_manager/config"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseTxTimeout bounds the whole sale transaction, lock waits included.
const PurchaseTxTimeout = 15 * time.Second

// SaleError is a business-rule abort raised inside the sale transaction.
// Status is the HTTP status the failure maps to.
type SaleError struct {
	Status  int
	Message string
}

func (e *SaleError) Error() string { return e.Message }

func saleErrorf(status int, format string, args ...any) *SaleError {
	return &SaleError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// groupGeneralByZone counts requested general-admission quantity per zone.
func groupGeneralByZone(items []model.PurchaseItemInput) map[uint]int {
	requested := make(map[uint]int)
	for _, item := range items {
		if item.Type == model.ItemTypeGeneral {
			requested[item.ZoneId]++
		}
	}
	return requested
}

func collectSeatIds(items []model.PurchaseItemInput) []uint {
	var ids []uint
	for _, item := range items {
		if item.Type == model.ItemTypeSeat {
			ids = append(ids, item.SeatId)
		}
	}
	return ids
}

// sumItemPrices totals the cart with decimal arithmetic so float drift
// never reaches the purchase record.
func sumItemPrices(items []model.PurchaseItemInput) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price))
	}
	f, _ := total.Float64()
	return f
}

// PurchaseTickets converts a cart of seat and general-admission items into
// persisted tickets, atomically. POST /api/v1/events/:eventId/purchase
func PurchaseTickets(c *fiber.Ctx) error {
	eventId, ok := c.Locals("inputId").(int)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid event id"})
	}
	input, ok := c.Locals("input").(model.PurchaseInput)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase payload"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), PurchaseTxTimeout)
	defer cancel()

	tickets, purchase, err := ExecutePurchase(ctx, database.DB, uint(eventId), input)
	if err != nil {
		var se *SaleError
		if errors.As(err, &se) {
			return c.Status(se.Status).JSON(fiber.Map{"error": se.Message})
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(500).JSON(fiber.Map{"error": "Purchase timed out, please retry"})
		}
		return utils.ErrorResponse(c, 500, "Could not complete purchase", err)
	}

	// post-commit: confirmation mail and live seat-map fan-out; neither can
	// fail the purchase at this point
	notifyPurchase(purchase, tickets)
	PublishSeatUpdate(purchase.EventId)

	return c.Status(201).JSON(fiber.Map{
		"success":      true,
		"purchaseCode": purchase.PublicCode,
		"totalAmount":  purchase.TotalAmount,
		"tickets":      tickets,
	})
}

// ExecutePurchase runs the sale as a single transaction: capacity
// pre-check with the zone rows locked, purchase record, seat validation
// and sale, batch ticket insert. Any failure rolls the whole batch back.
// Seat items are processed before general-admission items; the result
// order follows that, not the input order.
func ExecutePurchase(ctx context.Context, db *gorm.DB, eventId uint, input model.PurchaseInput) ([]model.Ticket, *model.TicketPurchase, error) {
	var created []model.Ticket
	var purchase model.TicketPurchase

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.First(&event, eventId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &SaleError{Status: 404, Message: constants.EVENT_NOT_FOUND}
			}
			return err
		}

		// Capacity pre-check. Zone rows are locked in ascending id order so
		// two multi-zone purchases cannot deadlock each other; the count is
		// read under the same lock, never from memory.
		requested := groupGeneralByZone(input.Items)
		zoneIds := make([]uint, 0, len(requested))
		for zoneId := range requested {
			zoneIds = append(zoneIds, zoneId)
		}
		sort.Slice(zoneIds, func(i, j int) bool { return zoneIds[i] < zoneIds[j] })

		for _, zoneId := range zoneIds {
			qty := requested[zoneId]
			var zone model.Zone
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND event_id = ?", zoneId, event.ID).
				First(&zone).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return saleErrorf(404, "Zone %d not found for this event", zoneId)
				}
				return err
			}
			if zone.Type != "SALE" {
				return saleErrorf(400, "Zone %s is not on sale", zone.Name)
			}
			if zone.Capacity == nil {
				continue
			}
			var sold int64
			if err := tx.Model(&model.Ticket{}).
				Where("zone_id = ? AND status <> ?", zone.ID, model.TicketCancelled).
				Count(&sold).Error; err != nil {
				return err
			}
			if sold+int64(qty) > int64(*zone.Capacity) {
				remaining := int64(*zone.Capacity) - sold
				if remaining < 0 {
					remaining = 0
				}
				return saleErrorf(400, "Zone %s has %d tickets remaining, %d requested", zone.Name, remaining, qty)
			}
		}

		now := time.Now()
		purchase = model.TicketPurchase{
			PublicCode:   helper.NewPurchaseCode(),
			EventId:      event.ID,
			CustomerName: input.Customer.FullName,
			Email:        input.Customer.Email,
			Phone:        input.Customer.Phone,
			DocId:        input.Customer.DocId,
			TotalAmount:  sumItemPrices(input.Items),
			PaidAt:       &now,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		// Every requested seat fetched in one locked read; the lock is held
		// until commit, so two racing purchases of the same seat serialize
		// here and the loser sees SOLD.
		seatIds := collectSeatIds(input.Items)
		seatById := make(map[uint]*model.Seat, len(seatIds))
		if len(seatIds) > 0 {
			var seats []model.Seat
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id IN ? AND event_id = ?", seatIds, event.ID).
				Find(&seats).Error; err != nil {
				return err
			}
			for i := range seats {
				seatById[seats[i].ID] = &seats[i]
			}
			for _, id := range seatIds {
				if _, ok := seatById[id]; !ok {
					return saleErrorf(404, "Seat %d not found", id)
				}
			}
			for _, id := range seatIds {
				if s := seatById[id]; s.Status != model.SeatAvailable {
					return saleErrorf(400, "Seat %s%d is no longer available", s.Row, s.Column)
				}
			}
		}

		var tickets []model.Ticket
		for _, item := range input.Items {
			if item.Type != model.ItemTypeSeat {
				continue
			}
			seat := seatById[item.SeatId]
			code := helper.NewTicketCode(event.ID, item.ZoneId)

			// guarded update: RowsAffected 0 means someone else sold the
			// seat between read and write, abort everything
			res := tx.Model(&model.Seat{}).
				Where("id = ? AND status = ?", seat.ID, model.SeatAvailable).
				Updates(map[string]any{
					"status":      model.SeatSold,
					"holder_name": input.Customer.FullName,
					"ticket_code": code,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return saleErrorf(400, "Seat %s%d is no longer available", seat.Row, seat.Column)
			}

			seatId := seat.ID
			tickets = append(tickets, model.Ticket{
				TicketCode: code,
				EventId:    event.ID,
				ZoneId:     item.ZoneId,
				SeatId:     &seatId,
				PurchaseId: purchase.ID,
				OwnerName:  input.Customer.FullName,
				OwnerEmail: input.Customer.Email,
				OwnerPhone: input.Customer.Phone,
				OwnerDocId: input.Customer.DocId,
				Price:      item.Price,
				Status:     model.TicketValid,
				IssuedAt:   now,
			})
		}
		for _, item := range input.Items {
			if item.Type != model.ItemTypeGeneral {
				continue
			}
			tickets = append(tickets, model.Ticket{
				TicketCode: helper.NewTicketCode(event.ID, item.ZoneId),
				EventId:    event.ID,
				ZoneId:     item.ZoneId,
				PurchaseId: purchase.ID,
				OwnerName:  input.Customer.FullName,
				OwnerEmail: input.Customer.Email,
				OwnerPhone: input.Customer.Phone,
				OwnerDocId: input.Customer.DocId,
				Price:      item.Price,
				Status:     model.TicketValid,
				IssuedAt:   now,
			})
		}

		if err := tx.Create(&tickets).Error; err != nil {
			return err
		}

		created = tickets
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, &purchase, nil
}

func notifyPurchase(purchase *model.TicketPurchase, tickets []model.Ticket) {
	if !helper.ValidEmail(purchase.Email) {
		return
	}

	var event model.Event
	if err := database.DB.First(&event, purchase.EventId).Error; err != nil {
		return
	}

	var seatIds []uint
	generalCount := 0
	for _, t := range tickets {
		if t.SeatId != nil {
			seatIds = append(seatIds, *t.SeatId)
		} else {
			generalCount++
		}
	}
	var seatLabels []string
	if len(seatIds) > 0 {
		var seats []model.Seat
		if err := database.DB.Where("id IN ?", seatIds).Order("row, \"column\"").Find(&seats).Error; err == nil {
			for _, s := range seats {
				seatLabels = append(seatLabels, fmt.Sprintf("%s%d", s.Row, s.Column))
			}
		}
	}

	utils.SendPurchaseConfirmationEmail(purchase.Email, utils.PurchaseConfirmationData{
		PurchaseCode: purchase.PublicCode,
		EventTitle:   event.Title,
		EventStart:   event.StartTime.Format("02/01/2006 15:04"),
		Venue:        event.Venue,
		Seats:        strings.Join(seatLabels, ", "),
		GeneralCount: generalCount,
		TicketCount:  len(tickets),
		TotalAmount:  purchase.TotalAmount,
		DetailLink:   fmt.Sprintf("%s/purchases/%s", frontendBaseUrl(), purchase.PublicCode),
	})
}

func frontendBaseUrl() string {
	return config.ConfigDefault("FRONTEND_BASE_URL", "http://localhost:5173")
}
