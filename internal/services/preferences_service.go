package services

import (
	"errors"
	"fmt"
	"time"

	"decaf/internal/models"
	"decaf/internal/repositories"
)

// PreferencesInput carries the optional fields of a preferences create
// or update request. Nil fields keep their default (on create) or
// current (on update) value.
type PreferencesInput struct {
	StrengthPreference       *string `json:"strength_preference" validate:"omitempty,oneof=light medium strong"`
	DefaultCupSize           *int    `json:"default_cup_size" validate:"omitempty,gt=0"`
	NotificationsBrewed      *bool   `json:"notifications_brewed"`
	NotificationsMaintenance *bool   `json:"notifications_maintenance"`
	NotificationsErrors      *bool   `json:"notifications_errors"`
	NotificationMethod       *string `json:"notification_method" validate:"omitempty,oneof=email sms push none"`
	SmsPhoneNumber           *string `json:"sms_phone_number"`
	AllowIntegrations        *bool   `json:"allow_integrations"`
	CloudControlAccess       *bool   `json:"cloud_control_access"`
	Theme                    *string `json:"theme"`
	AutoBrewSchedule         *string `json:"auto_brew_schedule"`
	Units                    *string `json:"units" validate:"omitempty,oneof=metric imperial"`
	ShareRecipes             *bool   `json:"share_recipes"`
	Language                 *string `json:"language"`
	Timezone                 *string `json:"timezone"`
}

// PreferencesService manages the caller's own preferences row.
type PreferencesService struct {
	prefsRepo repositories.PreferencesRepository
}

// NewPreferencesService creates a new PreferencesService.
func NewPreferencesService(prefsRepo repositories.PreferencesRepository) *PreferencesService {
	return &PreferencesService{prefsRepo: prefsRepo}
}

// GetPreferences retrieves the preferences for the given user.
func (s *PreferencesService) GetPreferences(userID string) (*models.UserPreferences, error) {
	prefs, err := s.prefsRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NotFoundError("User preferences not found")
		}
		return nil, err
	}
	return prefs, nil
}

// CreatePreferences creates the user's preferences row with defaults,
// overridden by any provided fields. A second create is a conflict.
func (s *PreferencesService) CreatePreferences(userID string, input PreferencesInput) (*models.UserPreferences, error) {
	if _, err := s.prefsRepo.GetByUserID(userID); err == nil {
		return nil, models.ConflictError("User preferences already exist. Use PUT to update them.")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing preferences: %w", err)
	}

	prefs := models.DefaultUserPreferences(userID)
	applyPreferencesInput(&prefs, input)

	if err := s.prefsRepo.Create(&prefs); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.ConflictError("User preferences already exist. Use PUT to update them.")
		}
		return nil, fmt.Errorf("failed to create preferences: %w", err)
	}
	return &prefs, nil
}

// UpdatePreferences applies a partial update to the user's row.
func (s *PreferencesService) UpdatePreferences(userID string, input PreferencesInput) (*models.UserPreferences, error) {
	prefs, err := s.GetPreferences(userID)
	if err != nil {
		return nil, err
	}

	applyPreferencesInput(prefs, input)
	prefs.UpdatedAt = time.Now()

	if err := s.prefsRepo.Update(prefs); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return prefs, nil
}

// DeletePreferences removes the user's preferences row.
func (s *PreferencesService) DeletePreferences(userID string) error {
	if _, err := s.GetPreferences(userID); err != nil {
		return err
	}
	return s.prefsRepo.DeleteByUserID(userID)
}

func applyPreferencesInput(prefs *models.UserPreferences, input PreferencesInput) {
	if input.StrengthPreference != nil {
		prefs.StrengthPreference = *input.StrengthPreference
	}
	if input.DefaultCupSize != nil {
		prefs.DefaultCupSize = *input.DefaultCupSize
	}
	if input.NotificationsBrewed != nil {
		prefs.NotificationsBrewed = *input.NotificationsBrewed
	}
	if input.NotificationsMaintenance != nil {
		prefs.NotificationsMaintenance = *input.NotificationsMaintenance
	}
	if input.NotificationsErrors != nil {
		prefs.NotificationsErrors = *input.NotificationsErrors
	}
	if input.NotificationMethod != nil {
		prefs.NotificationMethod = *input.NotificationMethod
	}
	if input.SmsPhoneNumber != nil {
		prefs.SmsPhoneNumber = *input.SmsPhoneNumber
	}
	if input.AllowIntegrations != nil {
		prefs.AllowIntegrations = *input.AllowIntegrations
	}
	if input.CloudControlAccess != nil {
		prefs.CloudControlAccess = *input.CloudControlAccess
	}
	if input.Theme != nil {
		prefs.Theme = *input.Theme
	}
	if input.AutoBrewSchedule != nil {
		prefs.AutoBrewSchedule = *input.AutoBrewSchedule
	}
	if input.Units != nil {
		prefs.Units = *input.Units
	}
	if input.ShareRecipes != nil {
		prefs.ShareRecipes = *input.ShareRecipes
	}
	if input.Language != nil {
		prefs.Language = *input.Language
	}
	if input.Timezone != nil {
		prefs.Timezone = *input.Timezone
	}
}
