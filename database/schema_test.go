// File: /database/schema_test.go
package database

import (
	"path/filepath"
	"testing"
)

func TestOpenAtVersionOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path, 1)
	if err != nil {
		t.Fatalf("open at v1: %v", err)
	}
	defer Close(db)

	migrator := db.Migrator()
	if !migrator.HasTable("trips") {
		t.Fatal("trips store missing at v1")
	}
	if !migrator.HasTable("customers") {
		t.Fatal("customers store missing at v1")
	}
	for _, name := range []string{"vehicles", "preferences", "reminders", "reports"} {
		if migrator.HasTable(name) {
			t.Fatalf("store %s should not exist at v1", name)
		}
	}

	version, err := Version(db)
	if err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected version 1, got %d", version)
	}
}

func TestUpgradeAndIdempotentReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path, 1)
	if err != nil {
		t.Fatalf("open at v1: %v", err)
	}
	if err := Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Upgrade, then reopen twice at the same version.
	for i := 0; i < 3; i++ {
		db, err = Open(path, SchemaVersion)
		if err != nil {
			t.Fatalf("open at v%d (pass %d): %v", SchemaVersion, i, err)
		}

		for _, name := range []string{"trips", "customers", "vehicles", "preferences", "reminders", "reports"} {
			if !db.Migrator().HasTable(name) {
				t.Fatalf("store %s missing after upgrade (pass %d)", name, i)
			}
		}

		var n int64
		if err := db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_vehicles_name'").Scan(&n).Error; err != nil {
			t.Fatalf("count vehicle name index: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected exactly one vehicles name index, got %d (pass %d)", n, i)
		}

		if err := Close(db); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
}

func TestOpenNeverDowngrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path, SchemaVersion)
	if err != nil {
		t.Fatalf("open at v%d: %v", SchemaVersion, err)
	}
	if err := Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}

	// An older caller requesting v2 must not lose the v4 schema.
	db, err = Open(path, 2)
	if err != nil {
		t.Fatalf("reopen at v2: %v", err)
	}
	defer Close(db)

	version, err := Version(db)
	if err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != SchemaVersion {
		t.Fatalf("version downgraded to %d", version)
	}
	if !db.Migrator().HasTable("reports") {
		t.Fatal("reports store lost after lower-version reopen")
	}
}

func TestOpenRejectsOutOfRangeVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	if _, err := Open(path, 0); err == nil {
		t.Fatal("expected error for version 0")
	}
	if _, err := Open(path, SchemaVersion+1); err == nil {
		t.Fatal("expected error for version above maximum")
	}
}

func TestSpecFor(t *testing.T) {
	spec, ok := SpecFor("reports")
	if !ok {
		t.Fatal("reports spec not found")
	}
	if len(spec.Indexes) != 1 || spec.Indexes[0].Name != "tripId" {
		t.Fatalf("unexpected reports indexes: %+v", spec.Indexes)
	}

	if _, ok := SpecFor("nope"); ok {
		t.Fatal("unknown store should not resolve")
	}
}
