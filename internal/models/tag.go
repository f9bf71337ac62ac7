package models

import "time"

// Tag labels recipes. Two names that normalize to the same slug are the
// same tag; both name and slug carry unique constraints.
type Tag struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Slug string `json:"slug" gorm:"uniqueIndex;type:varchar(100)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeTag links a tag to a recipe. The composite primary key prevents
// duplicate links.
type RecipeTag struct {
	RecipeID string `json:"recipe_id" gorm:"primaryKey;type:varchar(36)"`
	TagID    string `json:"tag_id" gorm:"primaryKey;type:varchar(36)"`

	CreatedAt time.Time `json:"created_at"`
}
