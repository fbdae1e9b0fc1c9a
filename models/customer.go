// File: /models/customer.go
package models

import (
	"time"
)

// Customer is referenced from trips and reminders by name only; deleting a
// customer does not cascade.
type Customer struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	Name      string      `json:"name" gorm:"not null;size:200"`
	Address   string      `json:"address" gorm:"size:500"` // free text or a map-service URL
	Contacts  ContactList `json:"contacts" gorm:"type:json"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c Customer) PrimaryKey() any {
	return c.ID
}

// Contact is one person/number pair on a customer.
type Contact struct {
	Person string `json:"person"`
	Number string `json:"number"`
}
