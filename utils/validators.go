// File: /utils/validators.go
package utils

import (
	"time"

	"triptracker-api/models"
)

func IsValidTripType(tripType string) bool {
	return tripType == models.TripTypeTravel || tripType == models.TripTypeOffice
}

func IsValidTripStatus(status string) bool {
	return status == models.TripStatusActive || status == models.TripStatusCompleted
}

// IsValidReminderDate accepts the YYYY-MM-DD form reminders are stored in.
func IsValidReminderDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func IsValidKm(km int) bool {
	return km >= 0
}
