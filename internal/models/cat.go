package models

import "time"

// Cat is the demo pet resource.
type Cat struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Type string `json:"type" gorm:"type:varchar(50)" validate:"required,oneof=persian siamese 'maine coon' bengal ragdoll other"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
