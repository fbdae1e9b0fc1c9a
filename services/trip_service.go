// File: /services/trip_service.go
package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"triptracker-api/activeslot"
	"triptracker-api/database"
	"triptracker-api/models"
	"triptracker-api/repositories"
	"triptracker-api/utils"
)

// TripService owns the trip lifecycle: the active draft in the slot and the
// completed records in the trips store.
type TripService struct {
	trips    *repositories.Store[models.Trip]
	slot     *activeslot.Slot
	vehicles *VehicleService
	prefs    *PreferenceService
	log      *logrus.Logger
}

func NewTripService(db *gorm.DB, slot *activeslot.Slot, vehicles *VehicleService, prefs *PreferenceService, log *logrus.Logger) *TripService {
	return &TripService{
		trips:    repositories.NewStore[models.Trip](db, database.TripsStore),
		slot:     slot,
		vehicles: vehicles,
		prefs:    prefs,
		log:      log,
	}
}

// List returns all persisted trips, newest first.
func (s *TripService) List(ctx context.Context) ([]models.Trip, error) {
	trips, err := s.trips.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].Date.After(trips[j].Date)
	})
	return trips, nil
}

func (s *TripService) Get(ctx context.Context, id uint) (*models.Trip, error) {
	return s.trips.GetByKey(ctx, id)
}

// Start begins a new activity in the slot. It fails with
// activeslot.ErrAlreadyInProgress while another activity is underway. The
// chosen user and vehicle are remembered as preferences for the next form.
func (s *TripService) Start(ctx context.Context, draft models.Trip) (*models.Trip, error) {
	if draft.Type == "" {
		draft.Type = models.TripTypeTravel
	}
	if !utils.IsValidTripType(draft.Type) {
		return nil, errors.New("activity type must be travel or office")
	}
	draft.Customer = strings.TrimSpace(draft.Customer)
	if draft.IsTravel() {
		if strings.TrimSpace(draft.Vehicle) == "" {
			return nil, errors.New("vehicle is required for a travel activity")
		}
		if !utils.IsValidKm(draft.StartKm) {
			return nil, errors.New("start km cannot be negative")
		}
	}

	started, err := s.slot.TryBegin(draft)
	if err != nil {
		return nil, err
	}

	// best-effort form defaults for next time
	if started.User != "" {
		if err := s.prefs.Set(ctx, models.PreferenceLastUser, started.User); err != nil {
			s.log.Warnf("failed to record last user preference: %v", err)
		}
	}
	if started.Vehicle != "" {
		if err := s.prefs.Set(ctx, models.PreferenceLastVehicle, started.Vehicle); err != nil {
			s.log.Warnf("failed to record last vehicle preference: %v", err)
		}
	}

	return started, nil
}

// Active returns the in-progress draft, or nil when there is none.
func (s *TripService) Active() (*models.Trip, error) {
	return s.slot.Get()
}

// UpdateActive edits the in-progress draft in place.
func (s *TripService) UpdateActive(patch activeslot.Patch) (*models.Trip, error) {
	return s.slot.Update(patch)
}

// Complete finishes the active activity: the slot validates and clears, the
// finished record is persisted, and for travel the vehicle's odometer is
// advanced. The odometer write-back is best-effort; once the trip committed
// it is never rolled back, so a write-back failure is only logged.
func (s *TripService) Complete(ctx context.Context, final activeslot.Completion) (*models.Trip, error) {
	completed, err := s.slot.Complete(final)
	if err != nil {
		return nil, err
	}

	if err := s.trips.Add(ctx, completed); err != nil {
		return nil, err
	}

	if completed.IsTravel() && completed.Vehicle != "" {
		if err := s.vehicles.RecordTripCompletion(ctx, completed.Vehicle, completed.EndKm); err != nil {
			s.log.Warnf("trip %d saved but odometer update for %q failed: %v", completed.ID, completed.Vehicle, err)
		}
	}

	return completed, nil
}

// Discard drops the in-progress draft without persisting it.
func (s *TripService) Discard() error {
	return s.slot.Discard()
}

// Update edits an already persisted trip (administrative edit).
func (s *TripService) Update(ctx context.Context, trip *models.Trip) error {
	if trip.ID == 0 {
		return errors.New("trip id is required")
	}
	if !utils.IsValidTripType(trip.Type) {
		return errors.New("activity type must be travel or office")
	}
	if !utils.IsValidTripStatus(trip.Status) {
		return errors.New("status must be active or completed")
	}
	if trip.Type == models.TripTypeTravel && trip.Status == models.TripStatusCompleted && trip.EndKm < trip.StartKm {
		return activeslot.ErrOdometerBelowStart
	}
	if _, err := s.trips.GetByKey(ctx, trip.ID); err != nil {
		return err
	}
	return s.trips.Put(ctx, trip)
}

func (s *TripService) Delete(ctx context.Context, id uint) error {
	return s.trips.Delete(ctx, id)
}
