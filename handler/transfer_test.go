package handler

import (
	"context"
	"testing"

	"event_manager/model"
	"event_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTransferTicket(t *testing.T, db *gorm.DB) (model.Event, model.Ticket) {
	event, _, general, _ := seedSaleEvent(t, db, utils.Ptr(100))

	input := model.PurchaseInput{
		Items:    []model.PurchaseItemInput{{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80}},
		Customer: testCustomer(),
	}
	tickets, _, err := ExecutePurchase(context.Background(), db, event.ID, input)
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	return event, tickets[0]
}

func transferInTx(db *gorm.DB, input model.TransferTicketInput) (model.Ticket, error) {
	var ticket model.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		return applyTransfer(tx, &ticket, input)
	})
	return ticket, err
}

func TestTransfer_UpdatesOwnerAndWritesAudit(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, ticket := seedTransferTicket(t, db)
	defer cleanupSaleData(t, db, event.ID)

	updated, err := transferInTx(db, model.TransferTicketInput{
		TicketCode: ticket.TicketCode,
		NewOwner: model.TransferOwnerInput{
			Name:  "New Holder",
			Email: "new.holder@example.com",
			Phone: "0987654321",
		},
		CurrentOwnerEmail: "buyer@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Holder", updated.OwnerName)
	assert.Equal(t, "new.holder@example.com", updated.OwnerEmail)

	var audit model.TicketTransfer
	require.NoError(t, db.Where("ticket_id = ?", ticket.ID).First(&audit).Error)
	assert.Equal(t, "Test Buyer", audit.PreviousOwnerName)
	assert.Equal(t, "buyer@example.com", audit.PreviousOwnerEmail)
	assert.Equal(t, "New Holder", audit.NewOwnerName)
	assert.Equal(t, "new.holder@example.com", audit.NewOwnerEmail)
}

func TestTransfer_OwnerEmailMismatchLeavesTicketUntouched(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, ticket := seedTransferTicket(t, db)
	defer cleanupSaleData(t, db, event.ID)

	_, err := transferInTx(db, model.TransferTicketInput{
		TicketCode:        ticket.TicketCode,
		NewOwner:          model.TransferOwnerInput{Name: "Thief", Email: "thief@example.com"},
		CurrentOwnerEmail: "wrong@example.com",
	})
	var se *SaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 403, se.Status)

	var current model.Ticket
	require.NoError(t, db.First(&current, ticket.ID).Error)
	assert.Equal(t, "Test Buyer", current.OwnerName)

	var audits int64
	db.Model(&model.TicketTransfer{}).Where("ticket_id = ?", ticket.ID).Count(&audits)
	assert.Zero(t, audits)
}

func TestTransfer_OwnerEmailMatchIsCaseInsensitive(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, ticket := seedTransferTicket(t, db)
	defer cleanupSaleData(t, db, event.ID)

	_, err := transferInTx(db, model.TransferTicketInput{
		TicketCode:        ticket.TicketCode,
		NewOwner:          model.TransferOwnerInput{Name: "New Holder", Email: "new.holder@example.com"},
		CurrentOwnerEmail: "BUYER@Example.COM",
	})
	assert.NoError(t, err)
}

func TestTransfer_UnknownTicket(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)

	_, err := transferInTx(db, model.TransferTicketInput{
		TicketCode: "TKT-does-not-exist",
		NewOwner:   model.TransferOwnerInput{Name: "Someone", Email: "someone@example.com"},
	})
	var se *SaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 404, se.Status)
}

func TestTransfer_CancelledTicketRejected(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, ticket := seedTransferTicket(t, db)
	defer cleanupSaleData(t, db, event.ID)

	require.NoError(t, db.Model(&model.Ticket{}).Where("id = ?", ticket.ID).
		Update("status", model.TicketCancelled).Error)

	_, err := transferInTx(db, model.TransferTicketInput{
		TicketCode: ticket.TicketCode,
		NewOwner:   model.TransferOwnerInput{Name: "Someone", Email: "someone@example.com"},
	})
	var se *SaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Status)
}

func TestTransfer_ChainKeepsFullAuditTrail(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, ticket := seedTransferTicket(t, db)
	defer cleanupSaleData(t, db, event.ID)

	_, err := transferInTx(db, model.TransferTicketInput{
		TicketCode: ticket.TicketCode,
		NewOwner:   model.TransferOwnerInput{Name: "Second Owner", Email: "second@example.com"},
	})
	require.NoError(t, err)

	_, err = transferInTx(db, model.TransferTicketInput{
		TicketCode:        ticket.TicketCode,
		NewOwner:          model.TransferOwnerInput{Name: "Third Owner", Email: "third@example.com"},
		CurrentOwnerEmail: "second@example.com",
	})
	require.NoError(t, err)

	var audits []model.TicketTransfer
	require.NoError(t, db.Where("ticket_id = ?", ticket.ID).Order("created_at asc").Find(&audits).Error)
	require.Len(t, audits, 2)
	assert.Equal(t, "Test Buyer", audits[0].PreviousOwnerName)
	assert.Equal(t, "Second Owner", audits[0].NewOwnerName)
	assert.Equal(t, "Second Owner", audits[1].PreviousOwnerName)
	assert.Equal(t, "Third Owner", audits[1].NewOwnerName)

	var current model.Ticket
	require.NoError(t, db.First(&current, ticket.ID).Error)
	assert.Equal(t, "Third Owner", current.OwnerName)
}
