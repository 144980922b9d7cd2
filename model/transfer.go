package model

// TicketTransfer is an append-only audit row: one record per ownership
// change, never updated or deleted.
type TicketTransfer struct {
	DTO
	TicketId          uint   `gorm:"index;not null" json:"ticketId"`
	PreviousOwnerName string `json:"previousOwnerName"`
	PreviousOwnerEmail string `json:"previousOwnerEmail"`
	NewOwnerName      string `json:"newOwnerName"`
	NewOwnerEmail     string `json:"newOwnerEmail"`

	Ticket Ticket `gorm:"foreignKey:TicketId" json:"-"`
}

type TransferOwnerInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty"`
	DocId string `json:"docId" validate:"omitempty"`
}

type TransferTicketInput struct {
	TicketCode        string             `json:"ticketCode" validate:"required"`
	NewOwner          TransferOwnerInput `json:"newOwner" validate:"required"`
	CurrentOwnerEmail string             `json:"currentOwnerEmail" validate:"omitempty,email"`
}
