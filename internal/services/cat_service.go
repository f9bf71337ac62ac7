package services

import (
	"errors"
	"fmt"
	"time"

	"decaf/internal/models"
	"decaf/internal/repositories"
)

// CatUpdate carries the fields of a partial cat update.
type CatUpdate struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Type *string `json:"type" validate:"omitempty,oneof=persian siamese 'maine coon' bengal ragdoll other"`
}

// CatService handles business logic for the cat resource.
type CatService struct {
	catRepo repositories.CatRepository
}

// NewCatService creates a new CatService.
func NewCatService(catRepo repositories.CatRepository) *CatService {
	return &CatService{catRepo: catRepo}
}

// GetAllCats retrieves all cats.
func (s *CatService) GetAllCats() ([]models.Cat, error) {
	return s.catRepo.GetAll()
}

// GetCatByID retrieves a single cat.
func (s *CatService) GetCatByID(id string) (*models.Cat, error) {
	cat, err := s.catRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NotFoundError(fmt.Sprintf("Cat with ID %s not found", id))
		}
		return nil, err
	}
	return cat, nil
}

// CreateCat creates a new cat.
func (s *CatService) CreateCat(cat *models.Cat) error {
	return s.catRepo.Create(cat)
}

// UpdateCat applies a partial update to an existing cat.
func (s *CatService) UpdateCat(id string, upd CatUpdate) (*models.Cat, error) {
	cat, err := s.GetCatByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		cat.Name = *upd.Name
	}
	if upd.Type != nil {
		cat.Type = *upd.Type
	}
	cat.UpdatedAt = time.Now()

	if err := s.catRepo.Update(cat); err != nil {
		return nil, fmt.Errorf("failed to update cat: %w", err)
	}
	return cat, nil
}

// DeleteCat removes a cat.
func (s *CatService) DeleteCat(id string) error {
	if _, err := s.GetCatByID(id); err != nil {
		return err
	}
	return s.catRepo.Delete(id)
}
