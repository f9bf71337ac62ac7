package repositories

import (
	"fmt"

	"decaf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPreferencesRepository is a GORM implementation of
// PreferencesRepository.
type GORMPreferencesRepository struct {
	db *gorm.DB
}

// NewGORMPreferencesRepository creates a new instance of
// GORMPreferencesRepository.
func NewGORMPreferencesRepository(db *gorm.DB) *GORMPreferencesRepository {
	return &GORMPreferencesRepository{db: db}
}

// GetByUserID retrieves the preferences row for the given user.
func (r *GORMPreferencesRepository) GetByUserID(userID string) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	if err := r.db.First(&prefs, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get preferences for user %s: %w", userID, translateError(err))
	}
	return &prefs, nil
}

// Create inserts a new preferences row, assigning a fresh UUID when none
// is set. A second row for the same user surfaces as ErrDuplicate.
func (r *GORMPreferencesRepository) Create(prefs *models.UserPreferences) error {
	if prefs.ID == "" {
		prefs.ID = uuid.New().String()
	}
	if err := r.db.Create(prefs).Error; err != nil {
		return fmt.Errorf("failed to create preferences: %w", translateError(err))
	}
	return nil
}

// Update persists all fields of an existing preferences row.
func (r *GORMPreferencesRepository) Update(prefs *models.UserPreferences) error {
	res := r.db.Save(prefs)
	if res.Error != nil {
		return fmt.Errorf("failed to update preferences: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("preferences for user %s: %w", prefs.UserID, ErrNotFound)
	}
	return nil
}

// DeleteByUserID removes the preferences row for the given user.
func (r *GORMPreferencesRepository) DeleteByUserID(userID string) error {
	res := r.db.Delete(&models.UserPreferences{}, "user_id = ?", userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete preferences: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("preferences for user %s: %w", userID, ErrNotFound)
	}
	return nil
}
