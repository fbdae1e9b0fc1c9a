// File: /models/vehicle.go
package models

import (
	"time"
)

// Vehicle carries a running odometer total. CurrentKm is advanced explicitly
// when a travel trip completes; it is never recomputed from trip history.
type Vehicle struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null;size:100"` // unique via registry index
	LicensePlate string    `json:"licensePlate" gorm:"size:20"`
	CurrentKm    int       `json:"currentKm"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v Vehicle) PrimaryKey() any {
	return v.ID
}
