// File: /repositories/store.go
package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"triptracker-api/database"
)

// Keyed is implemented by every model so the accessor can inspect the
// record's primary key without reflection.
type Keyed interface {
	PrimaryKey() any
}

// Store is a typed accessor over one named store. Every operation runs in its
// own single-store transaction: it either fully commits or fully fails.
// Cross-store consistency is the caller's responsibility.
type Store[T Keyed] struct {
	db   *gorm.DB
	spec database.StoreSpec
}

func NewStore[T Keyed](db *gorm.DB, spec database.StoreSpec) *Store[T] {
	return &Store[T]{db: db, spec: spec}
}

// Name returns the store's registered name.
func (s *Store[T]) Name() string {
	return s.spec.Name
}

// GetAll returns every record in the store.
func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Find(&out).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// GetByKey returns the record with the given primary key, or ErrNotFound.
func (s *Store[T]) GetByKey(ctx context.Context, key any) (*T, error) {
	var out T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.First(&out, "id = ?", key).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// GetByIndex returns all records whose indexed column equals value. The index
// must be declared in the schema registry.
func (s *Store[T]) GetByIndex(ctx context.Context, indexName string, value any) ([]T, error) {
	column := ""
	for _, idx := range s.spec.Indexes {
		if idx.Name == indexName {
			column = idx.Column
			break
		}
	}
	if column == "" {
		return nil, fmt.Errorf("store %s has no index %q", s.spec.Name, indexName)
	}

	var out []T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where(fmt.Sprintf("%s = ?", column), value).Find(&out).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Add inserts a new record. On an auto-incrementing store the record must not
// carry a key; a unique-index conflict surfaces as ErrConstraintViolation.
func (s *Store[T]) Add(ctx context.Context, record *T) error {
	if s.spec.AutoIncrement && !isZeroKey((*record).PrimaryKey()) {
		return fmt.Errorf("%w: store %s assigns its own keys", ErrConstraintViolation, s.spec.Name)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	return translate(err)
}

// Put inserts or replaces the record keyed by its primary key.
func (s *Store[T]) Put(ctx context.Context, record *T) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(record).Error
	})
	return translate(err)
}

// Delete removes the record with the given key. Deleting a missing key is not
// an error.
func (s *Store[T]) Delete(ctx context.Context, key any) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(new(T), "id = ?", key).Error
	})
	return translate(err)
}

// Clear removes every record in the store.
func (s *Store[T]) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error
	})
	return translate(err)
}

// ClearAndAdd replaces the store's contents with records, all in one
// transaction. Used by the import boundary. Returns the number added.
func (s *Store[T]) ClearAndAdd(ctx context.Context, records []T) (int, error) {
	added := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
			return err
		}
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}
	return added, nil
}

// Count returns the number of records in the store.
func (s *Store[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(new(T)).Count(&n).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func isZeroKey(key any) bool {
	switch k := key.(type) {
	case nil:
		return true
	case uint:
		return k == 0
	case int:
		return k == 0
	case int64:
		return k == 0
	case string:
		return k == ""
	}
	return false
}
