package models

import "time"

// Recipe represents a coffee brewing recipe.
type Recipe struct {
	ID               string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CreatedBy        *string `json:"created_by" gorm:"type:varchar(36);index"`
	Name             string  `json:"name" validate:"required,min=1,max=100"`
	Description      string  `json:"description" validate:"omitempty,max=500"`
	CoffeeWeight     float64 `json:"coffee_weight" validate:"gte=0"`
	WaterWeight      float64 `json:"water_weight" validate:"gte=0"`
	WaterTemperature int     `json:"water_temperature" validate:"gte=0,lte=100"`
	GrindSize        string  `json:"grind_size"`
	BrewTime         int     `json:"brew_time" validate:"gte=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy reports whether the given user may mutate this recipe.
// Unowned recipes (created_by unset) are editable by anyone.
func (r *Recipe) OwnedBy(userID string) bool {
	return r.CreatedBy == nil || *r.CreatedBy == userID
}
