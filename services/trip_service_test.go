// File: /services/trip_service_test.go
package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"triptracker-api/activeslot"
	"triptracker-api/database"
	"triptracker-api/models"
)

func newTestEnv(t *testing.T) (*gorm.DB, *activeslot.Slot, *logrus.Logger) {
	t.Helper()
	dir := t.TempDir()
	db, err := database.Open(filepath.Join(dir, "test.db"), database.SchemaVersion)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return db, activeslot.New(filepath.Join(dir, "active_trip.json")), log
}

func intPtr(v int) *int { return &v }

func TestStartAndCompletePersistsTripAndOdometer(t *testing.T) {
	db, slot, log := newTestEnv(t)
	ctx := context.Background()

	vehicles := NewVehicleService(db, log)
	prefs := NewPreferenceService(db)
	trips := NewTripService(db, slot, vehicles, prefs, log)

	van := models.Vehicle{Name: "Van", CurrentKm: 100}
	if err := vehicles.Create(ctx, &van); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	started, err := trips.Start(ctx, models.Trip{
		Type: models.TripTypeTravel, User: "Alice", Vehicle: "Van",
		StartKm: 100, Customer: "Acme", Purpose: "printer repair",
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != models.TripStatusActive {
		t.Fatalf("expected active draft, got %q", started.Status)
	}

	completed, err := trips.Complete(ctx, activeslot.Completion{EndKm: intPtr(150), WorkDetails: "done"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.ID == 0 {
		t.Fatal("completed trip was not persisted")
	}
	if completed.Status != models.TripStatusCompleted || completed.EndKm != 150 {
		t.Fatalf("unexpected completed record: %+v", completed)
	}

	all, err := trips.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 persisted trip, got %d", len(all))
	}

	updatedVan, err := vehicles.Get(ctx, van.ID)
	if err != nil {
		t.Fatalf("get vehicle: %v", err)
	}
	if updatedVan.CurrentKm != 150 {
		t.Fatalf("odometer not advanced, got %d", updatedVan.CurrentKm)
	}

	lastUser, err := prefs.Get(ctx, models.PreferenceLastUser)
	if err != nil || lastUser != "Alice" {
		t.Fatalf("last user preference not recorded: %q, %v", lastUser, err)
	}
	lastVehicle, err := prefs.Get(ctx, models.PreferenceLastVehicle)
	if err != nil || lastVehicle != "Van" {
		t.Fatalf("last vehicle preference not recorded: %q, %v", lastVehicle, err)
	}
}

func TestStartWhileActiveFails(t *testing.T) {
	db, slot, log := newTestEnv(t)
	ctx := context.Background()
	trips := NewTripService(db, slot, NewVehicleService(db, log), NewPreferenceService(db), log)

	if _, err := trips.Start(ctx, models.Trip{Type: models.TripTypeOffice, User: "Alice"}); err != nil {
		t.Fatalf("first start: %v", err)
	}
	_, err := trips.Start(ctx, models.Trip{Type: models.TripTypeOffice, User: "Bob"})
	if !errors.Is(err, activeslot.ErrAlreadyInProgress) {
		t.Fatalf("expected ErrAlreadyInProgress, got %v", err)
	}
}

func TestStartTravelRequiresVehicle(t *testing.T) {
	db, slot, log := newTestEnv(t)
	trips := NewTripService(db, slot, NewVehicleService(db, log), NewPreferenceService(db), log)

	if _, err := trips.Start(context.Background(), models.Trip{Type: models.TripTypeTravel, StartKm: 100}); err == nil {
		t.Fatal("expected validation error for travel without a vehicle")
	}
}

func TestCompleteWithoutActive(t *testing.T) {
	db, slot, log := newTestEnv(t)
	trips := NewTripService(db, slot, NewVehicleService(db, log), NewPreferenceService(db), log)

	_, err := trips.Complete(context.Background(), activeslot.Completion{EndKm: intPtr(10)})
	if !errors.Is(err, activeslot.ErrNoActiveActivity) {
		t.Fatalf("expected ErrNoActiveActivity, got %v", err)
	}
}

func TestUpdateRejectsOdometerRegression(t *testing.T) {
	db, slot, log := newTestEnv(t)
	ctx := context.Background()
	trips := NewTripService(db, slot, NewVehicleService(db, log), NewPreferenceService(db), log)

	if _, err := trips.Start(ctx, models.Trip{Type: models.TripTypeTravel, Vehicle: "Van", StartKm: 100}); err != nil {
		t.Fatalf("start: %v", err)
	}
	completed, err := trips.Complete(ctx, activeslot.Completion{EndKm: intPtr(150)})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	completed.EndKm = 50
	err = trips.Update(ctx, completed)
	if !errors.Is(err, activeslot.ErrOdometerBelowStart) {
		t.Fatalf("expected ErrOdometerBelowStart, got %v", err)
	}
}
