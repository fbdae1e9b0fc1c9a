// File: /models/reminder.go
package models

import (
	"time"
)

const ReminderStatusPending = "pending"

// Reminder is a scheduled future activity. Promoting it copies its fields
// into a new active trip draft and deletes the reminder.
type Reminder struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Type         string    `json:"type" gorm:"size:20"`
	Customer     string    `json:"customer" gorm:"size:200"`
	Purpose      string    `json:"purpose" gorm:"size:500"`
	ReminderDate string    `json:"reminderDate" gorm:"size:10"` // YYYY-MM-DD
	CreatedAt    time.Time `json:"createdAt"`
	Status       string    `json:"status" gorm:"size:20"`
}

func (Reminder) TableName() string {
	return "reminders"
}

func (r Reminder) PrimaryKey() any {
	return r.ID
}
