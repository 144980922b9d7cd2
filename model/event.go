package model

import "time"

type EventStatus string

const (
	EventUpcoming  EventStatus = "UPCOMING"
	EventOnSale    EventStatus = "ON_SALE"
	EventEnded     EventStatus = "ENDED"
	EventCancelled EventStatus = "CANCELLED"
)

type Event struct {
	DTO
	Title       string      `gorm:"not null" validate:"required" json:"title"`
	Slug        string      `gorm:"size:120;uniqueIndex" json:"slug"`
	Description string      `json:"description"`
	Venue       string      `json:"venue"`
	BannerUrl   *string     `json:"bannerUrl,omitempty"`
	StartTime   time.Time   `validate:"required" json:"startTime"`
	EndTime     time.Time   `validate:"required" json:"endTime"`
	SaleStart   *time.Time  `json:"saleStart,omitempty"`
	Status      EventStatus `gorm:"size:20;default:'UPCOMING'" json:"status"`

	Zones []Zone `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE" json:"zones,omitempty"`
	Seats []Seat `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE" json:"-"`
}

type CreateEventInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	StartTime   time.Time  `json:"startTime" validate:"required"`
	EndTime     time.Time  `json:"endTime" validate:"required,gtfield=StartTime"`
	SaleStart   *time.Time `json:"saleStart"`
	BannerUrl   *string    `json:"bannerUrl"`
}

type UpdateEventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Venue       *string    `json:"venue"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	SaleStart   *time.Time `json:"saleStart"`
	BannerUrl   *string    `json:"bannerUrl"`
}

type FilterEventInput struct {
	Pagination
	Status string `query:"status" validate:"omitempty,oneof=UPCOMING ON_SALE ENDED CANCELLED"`
	Search string `query:"search"`
}
