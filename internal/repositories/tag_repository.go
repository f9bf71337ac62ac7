package repositories

import "decaf/internal/models"

// TagRepository defines data access for tags and their recipe links.
type TagRepository interface {
	GetByNames(names []string) ([]models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	GetByRecipe(recipeID string) ([]models.Tag, error)
	Create(tag *models.Tag) error
	LinkToRecipe(recipeID, tagID string) error
}
