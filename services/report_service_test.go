// File: /services/report_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"triptracker-api/database"
	"triptracker-api/models"
	"triptracker-api/repositories"
)

func seedCompletedTrip(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	store := repositories.NewStore[models.Trip](db, database.TripsStore)
	trip := models.Trip{Type: models.TripTypeTravel, Status: models.TripStatusCompleted, Vehicle: "Van"}
	if err := store.Add(context.Background(), &trip); err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	return trip.ID
}

func TestReportFieldPolicy(t *testing.T) {
	db, _, _ := newTestEnv(t)
	ctx := context.Background()
	reports := NewReportService(db)
	tripID := seedCompletedTrip(t, db)

	cases := []struct {
		name    string
		report  models.Report
		wantErr bool
	}{
		{
			name:    "pc without model",
			report:  models.Report{TripID: tripID, DeviceType: models.DeviceTypePC, Details: "won't boot", SerialNumber: "SN1"},
			wantErr: true,
		},
		{
			name:   "pc with model",
			report: models.Report{TripID: tripID, DeviceType: models.DeviceTypePC, Model: "ThinkCentre", Details: "won't boot"},
		},
		{
			name:    "printer without model",
			report:  models.Report{TripID: tripID, DeviceType: models.DeviceTypePrinter, Details: "paper jam"},
			wantErr: true,
		},
		{
			name:   "network without serial",
			report: models.Report{TripID: tripID, DeviceType: models.DeviceTypeNetwork, Details: "link flapping"},
		},
		{
			name:    "other device without serial",
			report:  models.Report{TripID: tripID, DeviceType: "Monitor", Details: "dead pixels"},
			wantErr: true,
		},
		{
			name:   "other device with serial",
			report: models.Report{TripID: tripID, DeviceType: "Monitor", SerialNumber: "SN2", Details: "dead pixels"},
		},
		{
			name:    "missing details",
			report:  models.Report{TripID: tripID, DeviceType: models.DeviceTypeNetwork},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := tc.report
			err := reports.Create(ctx, &report)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestReportRequiresCompletedTrip(t *testing.T) {
	db, _, _ := newTestEnv(t)
	ctx := context.Background()
	reports := NewReportService(db)

	// Missing parent trip.
	err := reports.Create(ctx, &models.Report{TripID: 99, DeviceType: models.DeviceTypeNetwork, Details: "x"})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing trip, got %v", err)
	}

	// Active parent trip.
	store := repositories.NewStore[models.Trip](db, database.TripsStore)
	active := models.Trip{Type: models.TripTypeOffice, Status: models.TripStatusActive}
	if err := store.Add(ctx, &active); err != nil {
		t.Fatalf("seed active trip: %v", err)
	}
	err = reports.Create(ctx, &models.Report{TripID: active.ID, DeviceType: models.DeviceTypeNetwork, Details: "x"})
	if err == nil {
		t.Fatal("expected error attaching a report to an uncompleted trip")
	}
}

func TestCreateStampsPhotosAndTimestamp(t *testing.T) {
	db, _, _ := newTestEnv(t)
	ctx := context.Background()
	reports := NewReportService(db)
	tripID := seedCompletedTrip(t, db)

	report := models.Report{
		TripID:     tripID,
		DeviceType: models.DeviceTypeNetwork,
		Details:    "switch port dead",
		Photos: models.PhotoList{
			{Name: "front.jpg", Type: "image/jpeg", Size: 1024, DataURL: "data:image/jpeg;base64,xxxx"},
		},
	}
	if err := reports.Create(ctx, &report); err != nil {
		t.Fatalf("create: %v", err)
	}
	if report.Timestamp.IsZero() {
		t.Fatal("timestamp not stamped")
	}
	if report.Photos[0].ID == "" {
		t.Fatal("photo id not assigned")
	}

	got, err := reports.Get(ctx, report.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Photos) != 1 || got.Photos[0].Name != "front.jpg" {
		t.Fatalf("photos did not round-trip through the json column: %+v", got.Photos)
	}
}

func TestListByTrip(t *testing.T) {
	db, _, _ := newTestEnv(t)
	ctx := context.Background()
	reports := NewReportService(db)
	first := seedCompletedTrip(t, db)
	second := seedCompletedTrip(t, db)

	for i, tripID := range []uint{first, first, second} {
		r := models.Report{TripID: tripID, DeviceType: models.DeviceTypeNetwork, Details: "fault"}
		if err := reports.Create(ctx, &r); err != nil {
			t.Fatalf("create report %d: %v", i, err)
		}
	}

	got, err := reports.ListByTrip(ctx, first)
	if err != nil {
		t.Fatalf("list by trip: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reports on the first trip, got %d", len(got))
	}
}
