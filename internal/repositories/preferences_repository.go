package repositories

import "decaf/internal/models"

// PreferencesRepository defines data access for user preferences.
type PreferencesRepository interface {
	GetByUserID(userID string) (*models.UserPreferences, error)
	Create(prefs *models.UserPreferences) error
	Update(prefs *models.UserPreferences) error
	DeleteByUserID(userID string) error
}
