package models

import "time"

// UserPreferences holds per-user display, brewing, and notification
// settings. One row per user, created lazily on explicit request.
type UserPreferences struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID string `json:"user_id" gorm:"uniqueIndex;type:varchar(36);not null"`

	StrengthPreference string `json:"strength_preference" gorm:"type:varchar(20)"` // light, medium, strong
	DefaultCupSize     int    `json:"default_cup_size"`                            // ml

	NotificationsBrewed      bool   `json:"notifications_brewed"`
	NotificationsMaintenance bool   `json:"notifications_maintenance"`
	NotificationsErrors      bool   `json:"notifications_errors"`
	NotificationMethod       string `json:"notification_method" gorm:"type:varchar(20)"` // email, sms, push, none
	SmsPhoneNumber           string `json:"sms_phone_number" gorm:"type:varchar(30)"`

	AllowIntegrations  bool   `json:"allow_integrations"`
	CloudControlAccess bool   `json:"cloud_control_access"`
	Theme              string `json:"theme" gorm:"type:varchar(30)"`
	AutoBrewSchedule   string `json:"auto_brew_schedule"` // JSON-encoded schedule
	Units              string `json:"units" gorm:"type:varchar(10)"` // metric, imperial
	ShareRecipes       bool   `json:"share_recipes"`
	Language           string `json:"language" gorm:"type:varchar(10)"`
	Timezone           string `json:"timezone" gorm:"type:varchar(50)"` // IANA timezone name

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultUserPreferences returns a preferences row populated with the
// documented defaults for the given user.
func DefaultUserPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:                   userID,
		StrengthPreference:       "medium",
		DefaultCupSize:           300,
		NotificationsBrewed:      true,
		NotificationsMaintenance: true,
		NotificationsErrors:      true,
		NotificationMethod:       "email",
		Theme:                    "auto",
		Units:                    "metric",
		ShareRecipes:             true,
		Language:                 "en",
		Timezone:                 "UTC",
	}
}
