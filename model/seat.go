package model

const (
	SeatAvailable = "AVAILABLE"
	SeatSold      = "SOLD"
	SeatBlocked   = "BLOCKED"
)

type Seat struct {
	DTO
	ZoneId     uint   `gorm:"index;not null" json:"zoneId"`
	EventId    uint   `gorm:"index;not null" json:"eventId"`
	Row        string `gorm:"not null" validate:"required" json:"row"`          // e.g., "A", "B"
	Column     int    `gorm:"not null" validate:"required,min=1" json:"column"` // e.g., 1, 2
	Status     string `gorm:"not null;default:'AVAILABLE'" json:"status"`
	HolderName string `json:"holderName,omitempty"`
	TicketCode string `gorm:"size:60" json:"ticketCode,omitempty"`

	Zone  Zone  `gorm:"foreignKey:ZoneId" json:"-"`
	Event Event `gorm:"foreignKey:EventId" json:"-"`
}

// CreateSeatLayoutInput generates a rows x columns grid inside a zone.
type CreateSeatLayoutInput struct {
	ZoneId  uint     `json:"zoneId" validate:"required"`
	Rows    []string `json:"rows" validate:"required,dive,required"`
	Columns int      `json:"columns" validate:"required,min=1"`
}
