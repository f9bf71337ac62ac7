package repositories

import (
	"fmt"

	"decaf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCatRepository is a GORM implementation of CatRepository.
type GORMCatRepository struct {
	db *gorm.DB
}

// NewGORMCatRepository creates a new instance of GORMCatRepository.
func NewGORMCatRepository(db *gorm.DB) *GORMCatRepository {
	return &GORMCatRepository{db: db}
}

// GetAll retrieves all cats.
func (r *GORMCatRepository) GetAll() ([]models.Cat, error) {
	var cats []models.Cat
	if err := r.db.Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("failed to get all cats: %w", err)
	}
	return cats, nil
}

// GetByID retrieves a single cat by its ID.
func (r *GORMCatRepository) GetByID(id string) (*models.Cat, error) {
	var cat models.Cat
	if err := r.db.First(&cat, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get cat by ID %s: %w", id, translateError(err))
	}
	return &cat, nil
}

// Create inserts a new cat, assigning a fresh UUID when none is set.
func (r *GORMCatRepository) Create(cat *models.Cat) error {
	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	if err := r.db.Create(cat).Error; err != nil {
		return fmt.Errorf("failed to create cat: %w", err)
	}
	return nil
}

// Update persists all fields of an existing cat.
func (r *GORMCatRepository) Update(cat *models.Cat) error {
	res := r.db.Save(cat)
	if res.Error != nil {
		return fmt.Errorf("failed to update cat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cat %s: %w", cat.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a cat by its ID.
func (r *GORMCatRepository) Delete(id string) error {
	res := r.db.Delete(&models.Cat{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cat %s: %w", id, ErrNotFound)
	}
	return nil
}
