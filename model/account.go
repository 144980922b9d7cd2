package model

type Account struct {
	DTO
	Username string `gorm:"uniqueIndex;size:50" validate:"required" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"size:20;default:'ORGANIZER'" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`
}

type CreateAccountInput struct {
	Username       string `json:"username" validate:"required,min=4"`
	Password       string `json:"password" validate:"required,min=6"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
	Role           string `json:"role" validate:"omitempty,oneof=ADMIN ORGANIZER GATE"`
}
