// File: /models/preference.go
package models

// Preference keys in use.
const (
	PreferenceLastUser    = "lastUser"
	PreferenceLastVehicle = "lastVehicle"
)

// Preference is a singleton-per-key value used to pre-populate forms.
type Preference struct {
	ID    string `json:"id" gorm:"primaryKey;size:100"`
	Value string `json:"value" gorm:"size:500"`
}

func (Preference) TableName() string {
	return "preferences"
}

func (p Preference) PrimaryKey() any {
	return p.ID
}
