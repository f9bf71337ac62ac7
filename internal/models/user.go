package models

import "time"

// User represents a registered user of the coffee machine API.
type User struct {
	ID       string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username string  `json:"username" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=3,max=50"`
	Password string  `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Pin      *string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash of the 8-digit PIN
	Role     string  `json:"role" gorm:"type:varchar(20);default:user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
