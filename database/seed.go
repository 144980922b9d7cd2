package database

import (
	"event_manager/constants"
	"event_manager/model"
	"log"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456ev"), 10)
	hashPassword := string(bytes)
	if err != nil {
		hashPassword = "123456ev"
	}
	accounts := []model.Account{
		{Username: "Administration", Password: hashPassword, Active: true, Role: constants.ROLE_ADMIN},
		{Username: "GateStaff", Password: hashPassword, Active: true, Role: constants.ROLE_GATE},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed account:", account.Username, "error:", err)
		}
	}

	seedDemoEvent(db)
}

// seedDemoEvent creates one sellable event with a seated VIP zone and a
// capacity-bounded general zone so a fresh install has something to sell.
func seedDemoEvent(db *gorm.DB) {
	var count int64
	db.Model(&model.Event{}).Count(&count)
	if count > 0 {
		return
	}

	start := time.Now().AddDate(0, 1, 0)
	event := model.Event{
		Title:     "Launch Night",
		Slug:      slug.Make("Launch Night"),
		Venue:     "Main Hall",
		StartTime: start,
		EndTime:   start.Add(4 * time.Hour),
		Status:    model.EventOnSale,
	}
	if err := db.Create(&event).Error; err != nil {
		log.Println("failed to seed demo event:", err)
		return
	}

	capacity := 200
	zones := []model.Zone{
		{EventId: event.ID, Name: "VIP Front", Price: 150, Type: "SALE"},
		{EventId: event.ID, Name: "General", Price: 60, Capacity: &capacity, Type: "SALE"},
	}
	if err := db.Create(&zones).Error; err != nil {
		log.Println("failed to seed demo zones:", err)
		return
	}

	var seats []model.Seat
	for _, row := range []string{"A", "B", "C"} {
		for col := 1; col <= 10; col++ {
			seats = append(seats, model.Seat{
				ZoneId:  zones[0].ID,
				EventId: event.ID,
				Row:     row,
				Column:  col,
				Status:  model.SeatAvailable,
			})
		}
	}
	if err := db.Create(&seats).Error; err != nil {
		log.Println("failed to seed demo seats:", err)
	}
}
