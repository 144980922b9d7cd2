package model

import "time"

const (
	TicketValid     = "VALID"
	TicketUsed      = "USED"
	TicketRefunded  = "REFUNDED"
	TicketCancelled = "CANCELLED"
)

type Ticket struct {
	DTO
	TicketCode string  `gorm:"size:60;uniqueIndex" json:"ticketCode"`
	EventId    uint    `gorm:"index;not null" json:"eventId"`
	ZoneId     uint    `gorm:"index;not null" json:"zoneId"`
	SeatId     *uint   `gorm:"index" json:"seatId,omitempty"` // nil for general admission
	PurchaseId uint    `gorm:"index;not null" json:"purchaseId"`
	OwnerName  string  `gorm:"not null" json:"ownerName"`
	OwnerEmail string  `gorm:"not null" json:"ownerEmail"`
	OwnerPhone string  `json:"ownerPhone,omitempty"`
	OwnerDocId string  `json:"ownerDocId,omitempty"`
	Price      float64 `gorm:"not null" json:"price"`
	Status     string  `gorm:"not null;default:'VALID'" json:"status"`

	IssuedAt    time.Time  `json:"issuedAt"`
	UsedAt      *time.Time `json:"usedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	// Relationship - not exposed in JSON by default
	Event    Event          `gorm:"foreignKey:EventId" json:"-"`
	Zone     Zone           `gorm:"foreignKey:ZoneId" json:"-"`
	Seat     *Seat          `gorm:"foreignKey:SeatId" json:"-"`
	Purchase TicketPurchase `gorm:"foreignKey:PurchaseId" json:"-"`
}

type FilterTicketInput struct {
	Pagination
	EventId uint   `query:"eventId" validate:"omitempty,gt=0"`
	Status  string `query:"status" validate:"omitempty,oneof=VALID USED REFUNDED CANCELLED"`
}
