// File: /services/reminder_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"triptracker-api/activeslot"
	"triptracker-api/models"
	"triptracker-api/repositories"
)

func TestDueFiltersByDateAndStatus(t *testing.T) {
	db, slot, log := newTestEnv(t)
	ctx := context.Background()
	reminders := NewReminderService(db, slot, log)

	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	seed := []models.Reminder{
		{Customer: "Acme", ReminderDate: "2026-03-14"},                        // overdue
		{Customer: "Globex", ReminderDate: "2026-03-15"},                      // today
		{Customer: "Initech", ReminderDate: "2026-03-20"},                     // future
		{Customer: "Hooli", ReminderDate: "2026-03-10", Status: "dismissed"},  // not pending
	}
	for i := range seed {
		if err := reminders.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed reminder %d: %v", i, err)
		}
	}
	due, err := reminders.Due(ctx, now)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected 2 due reminders, got %d", len(due))
	}
	for _, r := range due {
		if r.Customer != "Acme" && r.Customer != "Globex" {
			t.Fatalf("unexpected due reminder: %+v", r)
		}
	}
}

func TestCreateValidatesDate(t *testing.T) {
	db, slot, log := newTestEnv(t)
	reminders := NewReminderService(db, slot, log)

	if err := reminders.Create(context.Background(), &models.Reminder{Customer: "Acme"}); err == nil {
		t.Fatal("expected error for missing reminder date")
	}
	if err := reminders.Create(context.Background(), &models.Reminder{Customer: "Acme", ReminderDate: "15/03/2026"}); err == nil {
		t.Fatal("expected error for malformed reminder date")
	}
}

func TestPromoteConsumesReminder(t *testing.T) {
	db, slot, log := newTestEnv(t)
	ctx := context.Background()
	reminders := NewReminderService(db, slot, log)

	reminder := models.Reminder{Customer: "Acme", Purpose: "router swap", ReminderDate: "2026-03-15"}
	if err := reminders.Create(ctx, &reminder); err != nil {
		t.Fatalf("create: %v", err)
	}

	started, err := reminders.PromoteToActive(ctx, reminder.ID)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if started.Customer != "Acme" || started.Purpose != "router swap" {
		t.Fatalf("draft did not inherit reminder fields: %+v", started)
	}
	if started.Type != models.TripTypeTravel {
		t.Fatalf("expected travel fallback type, got %q", started.Type)
	}
	if started.Status != models.TripStatusActive {
		t.Fatalf("expected active draft, got %q", started.Status)
	}

	if _, err := reminders.Get(ctx, reminder.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("promoted reminder should be deleted, got %v", err)
	}
}

func TestPromoteWhileActiveLeavesReminder(t *testing.T) {
	db, slot, log := newTestEnv(t)
	ctx := context.Background()
	reminders := NewReminderService(db, slot, log)

	reminder := models.Reminder{Customer: "Acme", ReminderDate: "2026-03-15"}
	if err := reminders.Create(ctx, &reminder); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := slot.TryBegin(models.Trip{Type: models.TripTypeOffice}); err != nil {
		t.Fatalf("occupy slot: %v", err)
	}

	_, err := reminders.PromoteToActive(ctx, reminder.ID)
	if !errors.Is(err, activeslot.ErrAlreadyInProgress) {
		t.Fatalf("expected ErrAlreadyInProgress, got %v", err)
	}

	// The failed promotion must not consume the reminder.
	if _, err := reminders.Get(ctx, reminder.ID); err != nil {
		t.Fatalf("reminder should still exist: %v", err)
	}
}
