// File: /database/database.go
package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrStorageUnavailable means the local database could not be opened at all
// (missing directory, permissions, corrupt file). Fatal for the caller; there
// is no point proceeding with a nil connection.
var ErrStorageUnavailable = errors.New("storage unavailable")

// SchemaInfo is the single persisted row recording the on-disk schema version.
type SchemaInfo struct {
	ID      int `gorm:"primaryKey"`
	Version int
}

func (SchemaInfo) TableName() string {
	return "schema_info"
}

// Open opens the database file at the requested schema version. When the
// on-disk version is lower, the registry is reconciled up to requestedVersion
// and the stored version bumped. When it is equal or higher (another caller
// already upgraded), reconciliation is skipped; the version is never lowered,
// so successive opens converge on the union of all declared schemas.
func Open(path string, requestedVersion int) (*gorm.DB, error) {
	if requestedVersion < 1 || requestedVersion > SchemaVersion {
		return nil, fmt.Errorf("requested schema version %d out of range [1,%d]", requestedVersion, SchemaVersion)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, path, err)
	}

	if err := db.AutoMigrate(&SchemaInfo{}); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("%w: schema info: %v", ErrStorageUnavailable, err)
	}

	info := SchemaInfo{ID: 1}
	if err := db.First(&info, "id = ?", 1).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			_ = Close(db)
			return nil, fmt.Errorf("%w: read schema version: %v", ErrStorageUnavailable, err)
		}
		info.Version = 0
	}

	if info.Version < requestedVersion {
		if err := Reconcile(db, info.Version, requestedVersion); err != nil {
			_ = Close(db)
			return nil, err
		}
		info.Version = requestedVersion
		if err := db.Save(&info).Error; err != nil {
			_ = Close(db)
			return nil, fmt.Errorf("%w: record schema version: %v", ErrStorageUnavailable, err)
		}
	}

	return db, nil
}

// Version reads the persisted schema version.
func Version(db *gorm.DB) (int, error) {
	var info SchemaInfo
	if err := db.First(&info, "id = ?", 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return info.Version, nil
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
