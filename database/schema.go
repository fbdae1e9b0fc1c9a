// File: /database/schema.go
package database

import (
	"fmt"

	"gorm.io/gorm"

	"triptracker-api/models"
)

// SchemaVersion is the highest schema version any caller may request.
// The version history mirrors how the database grew:
//
//	v1: trips, customers
//	v2: customers name index, vehicles, preferences
//	v3: reminders
//	v4: unique vehicle name index, reports with tripId index
const SchemaVersion = 4

// IndexSpec declares one secondary index on a store.
type IndexSpec struct {
	Name   string // index name used by Store.GetByIndex
	Column string // database column
	Unique bool
	Since  int // schema version that introduced the index
}

// StoreSpec declares one object store: its model, key strategy and indexes.
type StoreSpec struct {
	Name          string
	Model         interface{}
	AutoIncrement bool
	Since         int // schema version that introduced the store
	Indexes       []IndexSpec
}

var (
	TripsStore = StoreSpec{
		Name:          "trips",
		Model:         &models.Trip{},
		AutoIncrement: true,
		Since:         1,
	}

	CustomersStore = StoreSpec{
		Name:          "customers",
		Model:         &models.Customer{},
		AutoIncrement: true,
		Since:         1,
		Indexes: []IndexSpec{
			{Name: "name", Column: "name", Unique: false, Since: 2},
		},
	}

	VehiclesStore = StoreSpec{
		Name:          "vehicles",
		Model:         &models.Vehicle{},
		AutoIncrement: true,
		Since:         2,
		Indexes: []IndexSpec{
			{Name: "name", Column: "name", Unique: true, Since: 4},
		},
	}

	PreferencesStore = StoreSpec{
		Name:          "preferences",
		Model:         &models.Preference{},
		AutoIncrement: false, // explicit string keys
		Since:         2,
	}

	RemindersStore = StoreSpec{
		Name:          "reminders",
		Model:         &models.Reminder{},
		AutoIncrement: true,
		Since:         3,
	}

	ReportsStore = StoreSpec{
		Name:          "reports",
		Model:         &models.Report{},
		AutoIncrement: true,
		Since:         4,
		Indexes: []IndexSpec{
			{Name: "tripId", Column: "trip_id", Unique: false, Since: 4},
		},
	}
)

// Registry is the full declarative schema. Every page-level open request is
// reconciled against this single list instead of scattering per-page
// objectStore checks.
var Registry = []StoreSpec{
	TripsStore,
	CustomersStore,
	VehiclesStore,
	PreferencesStore,
	RemindersStore,
	ReportsStore,
}

// SpecFor returns the registry entry for a store name.
func SpecFor(name string) (StoreSpec, bool) {
	for _, spec := range Registry {
		if spec.Name == name {
			return spec, true
		}
	}
	return StoreSpec{}, false
}

// Reconcile creates every store and index declared at or below toVersion that
// does not already exist. It is idempotent: redundant calls never error and
// never duplicate a store or index. A create failure is a fatal configuration
// error and aborts the open; nothing retries it.
func Reconcile(db *gorm.DB, fromVersion, toVersion int) error {
	migrator := db.Migrator()

	for _, spec := range Registry {
		if spec.Since > toVersion {
			continue
		}

		if !migrator.HasTable(spec.Model) {
			if err := migrator.CreateTable(spec.Model); err != nil {
				return fmt.Errorf("failed to create store %s: %w", spec.Name, err)
			}
		}

		for _, idx := range spec.Indexes {
			if idx.Since > toVersion {
				continue
			}
			unique := ""
			if idx.Unique {
				unique = "UNIQUE "
			}
			stmt := fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS idx_%s_%s ON %s(%s)",
				unique, spec.Name, idx.Column, spec.Name, idx.Column)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create index %s on %s: %w", idx.Name, spec.Name, err)
			}
		}
	}

	return nil
}
