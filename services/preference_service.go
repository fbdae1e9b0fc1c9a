// File: /services/preference_service.go
package services

import (
	"context"

	"gorm.io/gorm"

	"triptracker-api/database"
	"triptracker-api/models"
	"triptracker-api/repositories"
)

// PreferenceService wraps the singleton-per-key preference store used to
// pre-populate forms (last user, last vehicle).
type PreferenceService struct {
	prefs *repositories.Store[models.Preference]
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{
		prefs: repositories.NewStore[models.Preference](db, database.PreferencesStore),
	}
}

// Set upserts the value for key.
func (s *PreferenceService) Set(ctx context.Context, key, value string) error {
	return s.prefs.Put(ctx, &models.Preference{ID: key, Value: value})
}

// Get returns the stored value. A missing key surfaces as
// repositories.ErrNotFound, which callers treat as "no preference yet".
func (s *PreferenceService) Get(ctx context.Context, key string) (string, error) {
	pref, err := s.prefs.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return pref.Value, nil
}
