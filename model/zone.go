package model

type Zone struct {
	DTO
	EventId  uint    `gorm:"index;not null" json:"eventId"`
	Name     string  `gorm:"not null" validate:"required" json:"name"`
	Price    float64 `gorm:"not null" validate:"required,gte=0" json:"price"`
	Capacity *int    `json:"capacity"` // nil = unbounded
	Type     string  `gorm:"size:20;default:'SALE'" json:"type"` // SALE, STAGE, BLOCKED

	Event Event  `gorm:"foreignKey:EventId" json:"-"`
	Seats []Seat `gorm:"foreignKey:ZoneId" json:"seats,omitempty"`
}

type CreateZoneInput struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Capacity *int    `json:"capacity" validate:"omitempty,gte=0"`
	Type     string  `json:"type" validate:"omitempty,oneof=SALE STAGE BLOCKED"`
}

// ZoneAvailability is the listing shape with live sold counts.
type ZoneAvailability struct {
	Zone
	Sold      int64 `json:"sold"`
	Remaining *int  `json:"remaining"` // nil when capacity is unbounded
}
