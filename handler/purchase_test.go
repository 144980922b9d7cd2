package handler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"event_manager/database"
	"event_manager/model"
	"event_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGroupGeneralByZone(t *testing.T) {
	items := []model.PurchaseItemInput{
		{Type: model.ItemTypeGeneral, ZoneId: 2, Price: 100},
		{Type: model.ItemTypeGeneral, ZoneId: 2, Price: 100},
		{Type: model.ItemTypeGeneral, ZoneId: 5, Price: 50},
		{Type: model.ItemTypeSeat, ZoneId: 1, SeatId: 10, Price: 200},
	}

	requested := groupGeneralByZone(items)

	assert.Equal(t, map[uint]int{2: 2, 5: 1}, requested)
}

func TestCollectSeatIds(t *testing.T) {
	items := []model.PurchaseItemInput{
		{Type: model.ItemTypeSeat, ZoneId: 1, SeatId: 7},
		{Type: model.ItemTypeGeneral, ZoneId: 2},
		{Type: model.ItemTypeSeat, ZoneId: 1, SeatId: 9},
	}

	assert.Equal(t, []uint{7, 9}, collectSeatIds(items))
	assert.Nil(t, collectSeatIds(nil))
}

func TestSumItemPrices(t *testing.T) {
	// 0.1+0.2 style drift must not leak into the stored total
	items := []model.PurchaseItemInput{
		{Type: model.ItemTypeGeneral, ZoneId: 1, Price: 0.1},
		{Type: model.ItemTypeGeneral, ZoneId: 1, Price: 0.2},
	}
	assert.Equal(t, 0.3, sumItemPrices(items))

	items = []model.PurchaseItemInput{
		{Type: model.ItemTypeSeat, ZoneId: 1, SeatId: 1, Price: 119.99},
		{Type: model.ItemTypeSeat, ZoneId: 1, SeatId: 2, Price: 119.99},
		{Type: model.ItemTypeGeneral, ZoneId: 2, Price: 49.50},
	}
	assert.Equal(t, 289.48, sumItemPrices(items))

	assert.Equal(t, 0.0, sumItemPrices(nil))
}

func skipIfNoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "event_manager_test"),
		getEnv("TEST_DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	database.Migrate(db)
	return db
}

func cleanupSaleData(t *testing.T, db *gorm.DB, eventId uint) {
	for _, stmt := range []string{
		"DELETE FROM ticket_transfers WHERE ticket_id IN (SELECT id FROM tickets WHERE event_id = ?)",
		"DELETE FROM tickets WHERE event_id = ?",
		"DELETE FROM ticket_purchases WHERE event_id = ?",
		"DELETE FROM seats WHERE event_id = ?",
		"DELETE FROM zones WHERE event_id = ?",
		"DELETE FROM events WHERE id = ?",
	} {
		if err := db.Exec(stmt, eventId).Error; err != nil {
			t.Logf("Warning: cleanup failed: %v", err)
		}
	}
}

func seedSaleEvent(t *testing.T, db *gorm.DB, generalCapacity *int) (model.Event, model.Zone, model.Zone, []model.Seat) {
	event := model.Event{
		Title:     "Test Night " + time.Now().Format("150405.000"),
		Slug:      fmt.Sprintf("test-night-%d", time.Now().UnixNano()),
		Venue:     "Test Hall",
		StartTime: time.Now().Add(48 * time.Hour),
		EndTime:   time.Now().Add(52 * time.Hour),
		Status:    model.EventOnSale,
	}
	require.NoError(t, db.Create(&event).Error)

	seated := model.Zone{EventId: event.ID, Name: "Seated", Price: 200, Type: "SALE"}
	require.NoError(t, db.Create(&seated).Error)

	general := model.Zone{EventId: event.ID, Name: "General", Price: 80, Capacity: generalCapacity, Type: "SALE"}
	require.NoError(t, db.Create(&general).Error)

	var seats []model.Seat
	for col := 1; col <= 5; col++ {
		seats = append(seats, model.Seat{
			ZoneId:  seated.ID,
			EventId: event.ID,
			Row:     "A",
			Column:  col,
			Status:  model.SeatAvailable,
		})
	}
	require.NoError(t, db.Create(&seats).Error)

	return event, seated, general, seats
}

func testCustomer() model.PurchaseCustomerInput {
	return model.PurchaseCustomerInput{
		FullName: "Test Buyer",
		Email:    "buyer@example.com",
		Phone:    "0123456789",
	}
}

func TestExecutePurchase_MixedCart(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, seated, general, seats := seedSaleEvent(t, db, utils.Ptr(100))
	defer cleanupSaleData(t, db, event.ID)

	input := model.PurchaseInput{
		Items: []model.PurchaseItemInput{
			{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80},
			{Type: model.ItemTypeSeat, ZoneId: seated.ID, SeatId: seats[0].ID, Price: 200},
			{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80},
		},
		Customer: testCustomer(),
	}

	tickets, purchase, err := ExecutePurchase(context.Background(), db, event.ID, input)
	require.NoError(t, err)
	require.Len(t, tickets, 3)

	// seat tickets come first regardless of cart order
	assert.NotNil(t, tickets[0].SeatId)
	assert.Nil(t, tickets[1].SeatId)
	assert.Nil(t, tickets[2].SeatId)

	assert.Equal(t, 360.0, purchase.TotalAmount)
	assert.Contains(t, purchase.PublicCode, "PUR-")
	assert.NotNil(t, purchase.PaidAt)

	var seat model.Seat
	require.NoError(t, db.First(&seat, seats[0].ID).Error)
	assert.Equal(t, model.SeatSold, seat.Status)
	assert.Equal(t, "Test Buyer", seat.HolderName)
	assert.Equal(t, tickets[0].TicketCode, seat.TicketCode)
}

func TestExecutePurchase_EventNotFound(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)

	input := model.PurchaseInput{
		Items:    []model.PurchaseItemInput{{Type: model.ItemTypeGeneral, ZoneId: 1, Price: 10}},
		Customer: testCustomer(),
	}

	_, _, err := ExecutePurchase(context.Background(), db, 999999999, input)
	var se *SaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 404, se.Status)
}

func TestExecutePurchase_CapacityExceeded(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, _, general, _ := seedSaleEvent(t, db, utils.Ptr(2))
	defer cleanupSaleData(t, db, event.ID)

	input := model.PurchaseInput{
		Items: []model.PurchaseItemInput{
			{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80},
			{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80},
			{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80},
		},
		Customer: testCustomer(),
	}

	_, _, err := ExecutePurchase(context.Background(), db, event.ID, input)
	var se *SaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Status)
	assert.Contains(t, se.Message, "2 tickets remaining, 3 requested")

	// nothing written
	var purchases int64
	db.Model(&model.TicketPurchase{}).Where("event_id = ?", event.ID).Count(&purchases)
	assert.Zero(t, purchases)
}

func TestExecutePurchase_SeatNotFound(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, seated, _, _ := seedSaleEvent(t, db, nil)
	defer cleanupSaleData(t, db, event.ID)

	input := model.PurchaseInput{
		Items: []model.PurchaseItemInput{
			{Type: model.ItemTypeSeat, ZoneId: seated.ID, SeatId: 999999999, Price: 200},
		},
		Customer: testCustomer(),
	}

	_, _, err := ExecutePurchase(context.Background(), db, event.ID, input)
	var se *SaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 404, se.Status)
	assert.Contains(t, se.Message, "Seat 999999999 not found")
}

func TestExecutePurchase_SoldSeatRollsBackEverything(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, seated, general, seats := seedSaleEvent(t, db, utils.Ptr(100))
	defer cleanupSaleData(t, db, event.ID)

	require.NoError(t, db.Model(&model.Seat{}).Where("id = ?", seats[1].ID).
		Update("status", model.SeatSold).Error)

	input := model.PurchaseInput{
		Items: []model.PurchaseItemInput{
			{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80},
			{Type: model.ItemTypeSeat, ZoneId: seated.ID, SeatId: seats[0].ID, Price: 200},
			{Type: model.ItemTypeSeat, ZoneId: seated.ID, SeatId: seats[1].ID, Price: 200},
		},
		Customer: testCustomer(),
	}

	_, _, err := ExecutePurchase(context.Background(), db, event.ID, input)
	var se *SaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Status)
	assert.Contains(t, se.Message, "A2 is no longer available")

	// the whole batch rolled back: no purchase, no tickets, first seat untouched
	var purchases, tickets int64
	db.Model(&model.TicketPurchase{}).Where("event_id = ?", event.ID).Count(&purchases)
	db.Model(&model.Ticket{}).Where("event_id = ?", event.ID).Count(&tickets)
	assert.Zero(t, purchases)
	assert.Zero(t, tickets)

	var seat model.Seat
	require.NoError(t, db.First(&seat, seats[0].ID).Error)
	assert.Equal(t, model.SeatAvailable, seat.Status)
}

func TestExecutePurchase_SeatRaceHasOneWinner(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, seated, _, seats := seedSaleEvent(t, db, nil)
	defer cleanupSaleData(t, db, event.ID)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := model.PurchaseInput{
				Items: []model.PurchaseItemInput{
					{Type: model.ItemTypeSeat, ZoneId: seated.ID, SeatId: seats[0].ID, Price: 200},
				},
				Customer: testCustomer(),
			}
			_, _, errs[i] = ExecutePurchase(context.Background(), db, event.ID, input)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			var se *SaleError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 400, se.Status)
		}
	}
	assert.Equal(t, 1, winners)

	var tickets int64
	db.Model(&model.Ticket{}).Where("seat_id = ?", seats[0].ID).Count(&tickets)
	assert.EqualValues(t, 1, tickets)
}

func TestExecutePurchase_CapacityRaceNeverOversells(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, _, general, _ := seedSaleEvent(t, db, utils.Ptr(3))
	defer cleanupSaleData(t, db, event.ID)

	const racers = 10
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := model.PurchaseInput{
				Items: []model.PurchaseItemInput{
					{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80},
				},
				Customer: testCustomer(),
			}
			_, _, errs[i] = ExecutePurchase(context.Background(), db, event.ID, input)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		}
	}
	assert.Equal(t, 3, winners)

	var sold int64
	db.Model(&model.Ticket{}).
		Where("zone_id = ? AND status <> ?", general.ID, model.TicketCancelled).
		Count(&sold)
	assert.EqualValues(t, 3, sold)
}

func TestExecutePurchase_CancelledTicketsFreeCapacity(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, _, general, _ := seedSaleEvent(t, db, utils.Ptr(1))
	defer cleanupSaleData(t, db, event.ID)

	input := model.PurchaseInput{
		Items:    []model.PurchaseItemInput{{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80}},
		Customer: testCustomer(),
	}

	tickets, _, err := ExecutePurchase(context.Background(), db, event.ID, input)
	require.NoError(t, err)

	// zone full now
	_, _, err = ExecutePurchase(context.Background(), db, event.ID, input)
	var se *SaleError
	require.ErrorAs(t, err, &se)

	// cancelling releases the slot
	require.NoError(t, db.Model(&model.Ticket{}).Where("id = ?", tickets[0].ID).
		Update("status", model.TicketCancelled).Error)

	_, _, err = ExecutePurchase(context.Background(), db, event.ID, input)
	assert.NoError(t, err)
}

func TestExecutePurchase_ContextTimeout(t *testing.T) {
	skipIfNoIntegration(t)

	db := setupTestDB(t)
	event, _, general, _ := seedSaleEvent(t, db, nil)
	defer cleanupSaleData(t, db, event.ID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()

	input := model.PurchaseInput{
		Items:    []model.PurchaseItemInput{{Type: model.ItemTypeGeneral, ZoneId: general.ID, Price: 80}},
		Customer: testCustomer(),
	}

	_, _, err := ExecutePurchase(ctx, db, event.ID, input)
	assert.Error(t, err)
}
