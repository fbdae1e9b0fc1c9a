// File: /activeslot/slot_test.go
package activeslot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"triptracker-api/models"
)

func newTestSlot(t *testing.T) (*Slot, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "active_trip.json")
	return New(path), path
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestTryBeginOccupiesSlot(t *testing.T) {
	slot, _ := newTestSlot(t)

	started, err := slot.TryBegin(models.Trip{Type: models.TripTypeTravel, Vehicle: "Van", StartKm: 100})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if started.ID != 0 {
		t.Fatalf("draft must not carry a key, got %d", started.ID)
	}
	if started.Status != models.TripStatusActive {
		t.Fatalf("expected active status, got %q", started.Status)
	}
	if started.StartTime.IsZero() || started.Date.IsZero() {
		t.Fatal("expected start time and date to be defaulted")
	}

	if _, err := slot.TryBegin(models.Trip{Type: models.TripTypeOffice}); !errors.Is(err, ErrAlreadyInProgress) {
		t.Fatalf("expected ErrAlreadyInProgress, got %v", err)
	}
}

func TestGetOnEmptySlot(t *testing.T) {
	slot, _ := newTestSlot(t)

	current, err := slot.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current != nil {
		t.Fatalf("expected empty slot, got %+v", current)
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	slot, _ := newTestSlot(t)

	if _, err := slot.TryBegin(models.Trip{Type: models.TripTypeTravel, Vehicle: "Van", Customer: "Acme", StartKm: 100}); err != nil {
		t.Fatalf("begin: %v", err)
	}

	updated, err := slot.Update(Patch{Customer: strPtr("Globex"), StartKm: intPtr(110)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Customer != "Globex" || updated.StartKm != 110 {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Vehicle != "Van" {
		t.Fatalf("untouched field changed: %q", updated.Vehicle)
	}
}

func TestUpdateEmptySlot(t *testing.T) {
	slot, _ := newTestSlot(t)

	if _, err := slot.Update(Patch{Customer: strPtr("Acme")}); !errors.Is(err, ErrNoActiveActivity) {
		t.Fatalf("expected ErrNoActiveActivity, got %v", err)
	}
}

func TestCompleteTravelRequiresEndKm(t *testing.T) {
	slot, _ := newTestSlot(t)

	if _, err := slot.TryBegin(models.Trip{Type: models.TripTypeTravel, Vehicle: "Van", StartKm: 100}); err != nil {
		t.Fatalf("begin: %v", err)
	}

	if _, err := slot.Complete(Completion{}); err == nil {
		t.Fatal("expected error for missing end km")
	}

	// The rejected completion must not consume the draft.
	current, err := slot.Get()
	if err != nil || current == nil {
		t.Fatalf("slot should still be occupied, got %+v, %v", current, err)
	}
}

func TestCompleteRejectsOdometerRegression(t *testing.T) {
	slot, _ := newTestSlot(t)

	if _, err := slot.TryBegin(models.Trip{Type: models.TripTypeTravel, Vehicle: "Van", StartKm: 100}); err != nil {
		t.Fatalf("begin: %v", err)
	}

	_, err := slot.Complete(Completion{EndKm: intPtr(90)})
	if !errors.Is(err, ErrOdometerBelowStart) {
		t.Fatalf("expected ErrOdometerBelowStart, got %v", err)
	}

	current, err := slot.Get()
	if err != nil || current == nil {
		t.Fatalf("slot should still be occupied, got %+v, %v", current, err)
	}
}

func TestCompleteClearsSlotAndPreservesFields(t *testing.T) {
	slot, path := newTestSlot(t)

	if _, err := slot.TryBegin(models.Trip{Type: models.TripTypeTravel, Vehicle: "Van", Customer: "Acme", StartKm: 100}); err != nil {
		t.Fatalf("begin: %v", err)
	}

	end := time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)
	completed, err := slot.Complete(Completion{EndKm: intPtr(150), WorkDetails: "replaced router", EndTime: end})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if completed.Status != models.TripStatusCompleted {
		t.Fatalf("expected completed status, got %q", completed.Status)
	}
	if completed.EndKm != 150 || completed.WorkDetails != "replaced router" || completed.Customer != "Acme" {
		t.Fatalf("fields lost on completion: %+v", completed)
	}
	if completed.EndTime == nil || !completed.EndTime.Equal(end) {
		t.Fatalf("end time not applied: %v", completed.EndTime)
	}

	current, err := slot.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current != nil {
		t.Fatal("slot not cleared after completion")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("slot file still on disk after completion")
	}
}

func TestCompleteOfficeWithoutEndKm(t *testing.T) {
	slot, _ := newTestSlot(t)

	if _, err := slot.TryBegin(models.Trip{Type: models.TripTypeOffice, User: "Alice"}); err != nil {
		t.Fatalf("begin: %v", err)
	}

	completed, err := slot.Complete(Completion{WorkDetails: "inventory"})
	if err != nil {
		t.Fatalf("office completion should not need an odometer: %v", err)
	}
	if completed.WorkDetails != "inventory" {
		t.Fatalf("work details lost: %+v", completed)
	}
}

func TestDiscardEmptySlot(t *testing.T) {
	slot, _ := newTestSlot(t)

	if err := slot.Discard(); !errors.Is(err, ErrNoActiveActivity) {
		t.Fatalf("expected ErrNoActiveActivity, got %v", err)
	}
}

func TestDraftSurvivesReload(t *testing.T) {
	slot, path := newTestSlot(t)

	if _, err := slot.TryBegin(models.Trip{Type: models.TripTypeTravel, Vehicle: "Van", StartKm: 100}); err != nil {
		t.Fatalf("begin: %v", err)
	}

	// A fresh Slot over the same file sees the draft, like a restarted process.
	reopened := New(path)
	current, err := reopened.Get()
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if current == nil || current.Vehicle != "Van" || current.StartKm != 100 {
		t.Fatalf("draft lost across reload: %+v", current)
	}

	if _, err := reopened.TryBegin(models.Trip{}); !errors.Is(err, ErrAlreadyInProgress) {
		t.Fatalf("reloaded slot should still be occupied, got %v", err)
	}
}
