// File: /models/trip.go
package models

import (
	"time"
)

const (
	TripTypeTravel = "travel"
	TripTypeOffice = "office"

	TripStatusActive    = "active"
	TripStatusCompleted = "completed"
)

// Trip is a single work activity: a travel trip or an office session.
// An active trip lives in the slot file, not in this store; it is persisted
// here only once completed.
type Trip struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Type        string     `json:"type" gorm:"not null;size:20"`
	Status      string     `json:"status" gorm:"not null;size:20"`
	User        string     `json:"user" gorm:"size:100"`
	Vehicle     string     `json:"vehicle" gorm:"size:100"` // vehicle name, only for travel
	StartKm     int        `json:"startKm"`
	EndKm       int        `json:"endKm"`
	Customer    string     `json:"customer" gorm:"size:200"` // customer name, not a foreign key
	Purpose     string     `json:"purpose" gorm:"size:500"`
	WorkDetails string     `json:"workDetails"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Date        time.Time  `json:"date"`
}

func (Trip) TableName() string {
	return "trips"
}

func (t Trip) PrimaryKey() any {
	return t.ID
}

// IsTravel reports whether the odometer fields apply to this trip.
func (t Trip) IsTravel() bool {
	return t.Type == TripTypeTravel
}
