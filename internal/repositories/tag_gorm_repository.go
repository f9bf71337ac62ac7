package repositories

import (
	"fmt"

	"decaf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{db: db}
}

// GetByNames retrieves tags whose name is exactly in names
// (case-sensitive).
func (r *GORMTagRepository) GetByNames(names []string) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags by names: %w", err)
	}
	return tags, nil
}

// GetBySlug retrieves a tag by its slug.
func (r *GORMTagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "slug = ?", slug).Error; err != nil {
		return nil, fmt.Errorf("failed to get tag by slug %s: %w", slug, translateError(err))
	}
	return &tag, nil
}

// GetByRecipe retrieves all tags linked to the given recipe.
func (r *GORMTagRepository) GetByRecipe(recipeID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.
		Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Where("recipe_tags.recipe_id = ?", recipeID).
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tags for recipe %s: %w", recipeID, err)
	}
	return tags, nil
}

// Create inserts a new tag, assigning a fresh UUID when none is set.
// A concurrent insert of the same name or slug surfaces as ErrDuplicate.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", translateError(err))
	}
	return nil
}

// LinkToRecipe inserts one junction row. An existing link surfaces as
// ErrDuplicate, which callers treat as a no-op.
func (r *GORMTagRepository) LinkToRecipe(recipeID, tagID string) error {
	link := models.RecipeTag{RecipeID: recipeID, TagID: tagID}
	if err := r.db.Create(&link).Error; err != nil {
		return fmt.Errorf("failed to link tag %s to recipe %s: %w", tagID, recipeID, translateError(err))
	}
	return nil
}
