package helper

import (
	"event_manager/database"
	"event_manager/model"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var eventScheduler gocron.Scheduler
var sweepScheduler *cron.Cron

// AutoUpdateEventStatus opens sales for upcoming events whose sale date
// has arrived. Runs daily shortly after midnight.
func AutoUpdateEventStatus() {
	log.Println("[CRON] AutoUpdateEventStatus triggered")

	db := database.DB
	now := time.Now()

	var events []model.Event
	if err := db.Where("status = ?", model.EventUpcoming).Find(&events).Error; err != nil {
		log.Printf("failed to scan upcoming events: %v", err)
		return
	}

	for _, event := range events {
		saleStart := event.StartTime
		if event.SaleStart != nil {
			saleStart = *event.SaleStart
		}
		if now.Before(saleStart) {
			continue
		}
		if err := db.Model(&event).Update("status", model.EventOnSale).Error; err != nil {
			log.Printf("failed to open sales for event '%s': %v", event.Title, err)
		} else {
			log.Printf("event '%s' is now ON_SALE", event.Title)
		}
	}
}

func StartEventStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("failed to create event scheduler: %v", err)
		return
	}
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoUpdateEventStatus),
	)
	if err != nil {
		log.Printf("failed to schedule event status job: %v", err)
		return
	}
	s.Start()
	eventScheduler = s
	log.Println("Event status scheduler started (daily 00:05)")
}

func StopEventStatusScheduler() {
	if eventScheduler != nil {
		_ = eventScheduler.Shutdown()
	}
}

func updateEndedEvents() {
	now := time.Now()
	result := database.DB.Model(&model.Event{}).
		Where("status IN ? AND end_time < ?", []model.EventStatus{model.EventUpcoming, model.EventOnSale}, now).
		Update("status", model.EventEnded)

	if result.Error != nil {
		log.Printf("failed to sweep ended events: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("marked %d events as ENDED", result.RowsAffected)
	}
}

func StartEndedEventSweeper() {
	sweepScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := sweepScheduler.AddFunc("*/5 * * * *", updateEndedEvents)
	if err != nil {
		log.Printf("failed to start ended-event sweeper: %v", err)
		return
	}

	sweepScheduler.Start()
	log.Println("Ended-event sweeper started (every 5 minutes)")
}

func StopEndedEventSweeper() {
	if sweepScheduler != nil {
		sweepScheduler.Stop()
	}
}
