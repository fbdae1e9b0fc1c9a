// File: /models/types.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ContactList is a custom type for handling JSON arrays of contacts in database
type ContactList []Contact

// Value implements driver.Valuer interface for database storage
func (cl ContactList) Value() (driver.Value, error) {
	if cl == nil {
		return nil, nil
	}
	return json.Marshal(cl)
}

// Scan implements sql.Scanner interface for database retrieval
func (cl *ContactList) Scan(value interface{}) error {
	if value == nil {
		*cl = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, cl)
	case string:
		return json.Unmarshal([]byte(v), cl)
	default:
		return fmt.Errorf("cannot scan %T into ContactList", value)
	}
}

// GormDataType returns the data type for GORM
func (ContactList) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (cl ContactList) MarshalJSON() ([]byte, error) {
	if cl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Contact(cl))
}

// PhotoList is a custom type for handling JSON arrays of photos in database
type PhotoList []Photo

// Value implements driver.Valuer interface for database storage
func (pl PhotoList) Value() (driver.Value, error) {
	if pl == nil {
		return nil, nil
	}
	return json.Marshal(pl)
}

// Scan implements sql.Scanner interface for database retrieval
func (pl *PhotoList) Scan(value interface{}) error {
	if value == nil {
		*pl = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, pl)
	case string:
		return json.Unmarshal([]byte(v), pl)
	default:
		return fmt.Errorf("cannot scan %T into PhotoList", value)
	}
}

// GormDataType returns the data type for GORM
func (PhotoList) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (pl PhotoList) MarshalJSON() ([]byte, error) {
	if pl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Photo(pl))
}
