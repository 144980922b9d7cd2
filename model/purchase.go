package model

import "time"

type TicketPurchase struct {
	DTO
	PublicCode   string  `gorm:"unique;size:20" json:"publicCode"` // PUR-XXXXXX
	EventId      uint    `gorm:"index;not null" json:"eventId"`
	CustomerName string  `gorm:"not null" json:"customerName"`
	Email        string  `gorm:"not null" json:"email"`
	Phone        string  `json:"phone,omitempty"`
	DocId        string  `json:"docId,omitempty"`
	TotalAmount  float64 `json:"totalAmount"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`

	Event   Event    `gorm:"foreignKey:EventId" json:"-"`
	Tickets []Ticket `gorm:"foreignKey:PurchaseId" json:"tickets,omitempty"`
}

const (
	ItemTypeSeat    = "seat"
	ItemTypeGeneral = "general"
)

// PurchaseItemInput is one cart entry: a named seat or a general-admission
// slot in a zone. Seat entries carry SeatId, general entries do not.
type PurchaseItemInput struct {
	Type   string  `json:"type" validate:"required,oneof=seat general"`
	SeatId uint    `json:"seatId" validate:"required_if=Type seat"`
	ZoneId uint    `json:"zoneId" validate:"required"`
	Price  float64 `json:"price" validate:"gte=0"`
}

type PurchaseCustomerInput struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty"`
	DocId    string `json:"docId" validate:"omitempty"`
}

type PurchaseInput struct {
	Items    []PurchaseItemInput   `json:"items" validate:"required,min=1,dive"`
	Customer PurchaseCustomerInput `json:"customer" validate:"required"`
}
