// File: /services/vehicle_service.go
package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"triptracker-api/database"
	"triptracker-api/models"
	"triptracker-api/repositories"
)

type VehicleService struct {
	vehicles *repositories.Store[models.Vehicle]
	log      *logrus.Logger
}

func NewVehicleService(db *gorm.DB, log *logrus.Logger) *VehicleService {
	return &VehicleService{
		vehicles: repositories.NewStore[models.Vehicle](db, database.VehiclesStore),
		log:      log,
	}
}

// List returns all vehicles sorted by name.
func (s *VehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	vehicles, err := s.vehicles.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].Name < vehicles[j].Name
	})
	return vehicles, nil
}

func (s *VehicleService) Get(ctx context.Context, id uint) (*models.Vehicle, error) {
	return s.vehicles.GetByKey(ctx, id)
}

// Create adds a vehicle. A duplicate name surfaces as
// repositories.ErrConstraintViolation via the unique name index.
func (s *VehicleService) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.Name = strings.TrimSpace(vehicle.Name)
	if vehicle.Name == "" {
		return errors.New("vehicle name is required")
	}
	if vehicle.CurrentKm < 0 {
		return errors.New("current km cannot be negative")
	}
	return s.vehicles.Add(ctx, vehicle)
}

func (s *VehicleService) Update(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.ID == 0 {
		return errors.New("vehicle id is required")
	}
	vehicle.Name = strings.TrimSpace(vehicle.Name)
	if vehicle.Name == "" {
		return errors.New("vehicle name is required")
	}
	if _, err := s.vehicles.GetByKey(ctx, vehicle.ID); err != nil {
		return err
	}
	return s.vehicles.Put(ctx, vehicle)
}

func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	return s.vehicles.Delete(ctx, id)
}

// RecordTripCompletion advances the named vehicle's running odometer to the
// trip's end reading. A missing vehicle is a logged warning, not an error:
// the trip is already saved and the odometer update is best-effort.
func (s *VehicleService) RecordTripCompletion(ctx context.Context, vehicleName string, endKm int) error {
	matches, err := s.vehicles.GetByIndex(ctx, "name", vehicleName)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		s.log.Warnf("no vehicle named %q; odometer not updated", vehicleName)
		return nil
	}

	vehicle := matches[0]
	vehicle.CurrentKm = endKm
	return s.vehicles.Put(ctx, &vehicle)
}
