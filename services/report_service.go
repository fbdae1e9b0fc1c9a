// File: /services/report_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"triptracker-api/database"
	"triptracker-api/models"
	"triptracker-api/repositories"
)

// ReportService manages device-fault reports attached to completed trips.
type ReportService struct {
	reports *repositories.Store[models.Report]
	trips   *repositories.Store[models.Trip]
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		reports: repositories.NewStore[models.Report](db, database.ReportsStore),
		trips:   repositories.NewStore[models.Trip](db, database.TripsStore),
	}
}

// ListByTrip returns all reports attached to a trip via the tripId index.
func (s *ReportService) ListByTrip(ctx context.Context, tripID uint) ([]models.Report, error) {
	return s.reports.GetByIndex(ctx, "tripId", tripID)
}

func (s *ReportService) Get(ctx context.Context, id uint) (*models.Report, error) {
	return s.reports.GetByKey(ctx, id)
}

// Create validates the device-type field policy, stamps the report and adds
// it. The parent trip must exist and be completed.
func (s *ReportService) Create(ctx context.Context, report *models.Report) error {
	if err := s.validate(ctx, report, true); err != nil {
		return err
	}
	if report.Timestamp.IsZero() {
		report.Timestamp = time.Now()
	}
	for i := range report.Photos {
		if report.Photos[i].ID == "" {
			report.Photos[i].ID = uuid.New().String()
		}
	}
	return s.reports.Add(ctx, report)
}

func (s *ReportService) Update(ctx context.Context, report *models.Report) error {
	if report.ID == 0 {
		return errors.New("report id is required")
	}
	if err := s.validate(ctx, report, false); err != nil {
		return err
	}
	if _, err := s.reports.GetByKey(ctx, report.ID); err != nil {
		return err
	}
	for i := range report.Photos {
		if report.Photos[i].ID == "" {
			report.Photos[i].ID = uuid.New().String()
		}
	}
	return s.reports.Put(ctx, report)
}

func (s *ReportService) Delete(ctx context.Context, id uint) error {
	return s.reports.Delete(ctx, id)
}

// validate enforces the conditional required fields by device type:
// PC and Printer reports need a model, Network devices are exempt from the
// serial number, every other device type requires one.
func (s *ReportService) validate(ctx context.Context, report *models.Report, checkTrip bool) error {
	if strings.TrimSpace(report.Details) == "" {
		return errors.New("fault report details are required")
	}
	if report.TripID == 0 {
		return errors.New("report must reference a trip")
	}

	switch report.DeviceType {
	case models.DeviceTypePC, models.DeviceTypePrinter:
		if strings.TrimSpace(report.Model) == "" {
			return errors.New("device model is required for PC and Printer reports")
		}
	case models.DeviceTypeNetwork:
		// serial number optional for network gear
	default:
		if strings.TrimSpace(report.SerialNumber) == "" {
			return errors.New("serial number is required for this device type")
		}
	}

	if checkTrip {
		trip, err := s.trips.GetByKey(ctx, report.TripID)
		if err != nil {
			return err
		}
		if trip.Status != models.TripStatusCompleted {
			return errors.New("reports can only be attached to completed trips")
		}
	}
	return nil
}
