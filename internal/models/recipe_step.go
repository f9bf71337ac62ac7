package models

import "time"

// Command types a machine step can execute.
const (
	CommandMove    = "move"
	CommandGrind   = "grind"
	CommandPour    = "pour"
	CommandWait    = "wait"
	CommandMeasure = "measure"
	CommandOther   = "other"
)

// RecipeStep is a single ordered instruction belonging to a recipe.
// Steps are removed together with their parent recipe.
type RecipeStep struct {
	ID               string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RecipeID         string `json:"recipe_id" gorm:"type:varchar(36);index;not null" validate:"required"`
	StepOrder        int    `json:"step_order" validate:"gte=0"`
	DurationSec      *int   `json:"duration_sec" validate:"omitempty,gte=0"`
	CommandType      string `json:"command_type" validate:"required,oneof=move grind pour wait measure other"`
	CommandParameter *int   `json:"command_parameter"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
