// File: /models/report.go
package models

import (
	"time"
)

// Device types recognised by the report field policy.
const (
	DeviceTypePC      = "PC"
	DeviceTypePrinter = "Printer"
	DeviceTypeNetwork = "Network"
)

// Report is a device-fault attachment on a completed trip, looked up through
// the tripId index.
type Report struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TripID       uint      `json:"tripId" gorm:"not null"`
	DeviceType   string    `json:"deviceType" gorm:"size:50"`
	Model        string    `json:"model" gorm:"size:100"`
	Brand        string    `json:"brand" gorm:"size:100"`
	Description  string    `json:"description" gorm:"size:500"`
	SerialNumber string    `json:"serialNumber" gorm:"size:100"`
	Details      string    `json:"details" gorm:"not null"`
	Photos       PhotoList `json:"photos" gorm:"type:json"`
	Timestamp    time.Time `json:"timestamp"`
}

func (Report) TableName() string {
	return "reports"
}

func (r Report) PrimaryKey() any {
	return r.ID
}

// Photo is an inline-encoded image attached to a report.
type Photo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	DataURL string `json:"dataUrl"`
}
