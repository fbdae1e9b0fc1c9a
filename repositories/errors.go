// File: /repositories/errors.go
package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Common storage errors
var (
	// ErrNotFound is returned when a lookup by key or index matches nothing.
	// It is a normal outcome, not something to log loudly.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation is returned on a unique-index or key conflict.
	// Callers should re-prompt rather than retry blindly.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrTransactionFailure is returned when the engine aborted a transaction.
	// Nothing retries automatically; the caller surfaces "save failed".
	ErrTransactionFailure = errors.New("transaction failed")
)

// translate maps engine errors onto the storage taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConstraintViolation
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		// raw-SQL unique indexes are not covered by gorm's error translation
		return ErrConstraintViolation
	default:
		return fmt.Errorf("%w: %v", ErrTransactionFailure, err)
	}
}
