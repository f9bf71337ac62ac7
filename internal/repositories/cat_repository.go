package repositories

import "decaf/internal/models"

// CatRepository defines the interface for cat data access.
type CatRepository interface {
	GetAll() ([]models.Cat, error)
	GetByID(id string) (*models.Cat, error)
	Create(cat *models.Cat) error
	Update(cat *models.Cat) error
	Delete(id string) error
}
