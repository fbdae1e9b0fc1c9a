// File: /services/reminder_service.go
package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"triptracker-api/activeslot"
	"triptracker-api/database"
	"triptracker-api/models"
	"triptracker-api/repositories"
	"triptracker-api/utils"
)

type ReminderService struct {
	reminders *repositories.Store[models.Reminder]
	slot      *activeslot.Slot
	log       *logrus.Logger
}

func NewReminderService(db *gorm.DB, slot *activeslot.Slot, log *logrus.Logger) *ReminderService {
	return &ReminderService{
		reminders: repositories.NewStore[models.Reminder](db, database.RemindersStore),
		slot:      slot,
		log:       log,
	}
}

// List returns all reminders ordered by reminder date.
func (s *ReminderService) List(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.reminders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ReminderDate < reminders[j].ReminderDate
	})
	return reminders, nil
}

func (s *ReminderService) Get(ctx context.Context, id uint) (*models.Reminder, error) {
	return s.reminders.GetByKey(ctx, id)
}

func (s *ReminderService) Create(ctx context.Context, reminder *models.Reminder) error {
	if err := validateReminder(reminder); err != nil {
		return err
	}
	if reminder.Status == "" {
		reminder.Status = models.ReminderStatusPending
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}
	return s.reminders.Add(ctx, reminder)
}

func (s *ReminderService) Update(ctx context.Context, reminder *models.Reminder) error {
	if reminder.ID == 0 {
		return errors.New("reminder id is required")
	}
	if err := validateReminder(reminder); err != nil {
		return err
	}
	if _, err := s.reminders.GetByKey(ctx, reminder.ID); err != nil {
		return err
	}
	return s.reminders.Put(ctx, reminder)
}

func (s *ReminderService) Delete(ctx context.Context, id uint) error {
	return s.reminders.Delete(ctx, id)
}

// Due returns pending reminders dated today or earlier. The YYYY-MM-DD form
// makes the cutoff a plain string comparison.
func (s *ReminderService) Due(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	reminders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := now.Format("2006-01-02")
	var due []models.Reminder
	for _, r := range reminders {
		if r.Status == models.ReminderStatusPending && r.ReminderDate <= cutoff {
			due = append(due, r)
		}
	}
	return due, nil
}

// PromoteToActive consumes a reminder: its fields become a new active trip
// draft and the reminder is deleted. When the slot is occupied the promotion
// fails with activeslot.ErrAlreadyInProgress and the reminder is left
// untouched for the caller to surface.
func (s *ReminderService) PromoteToActive(ctx context.Context, id uint) (*models.Trip, error) {
	reminder, err := s.reminders.GetByKey(ctx, id)
	if err != nil {
		return nil, err
	}

	draftType := reminder.Type
	if !utils.IsValidTripType(draftType) {
		draftType = models.TripTypeTravel
	}
	draft := models.Trip{
		Type:     draftType,
		Customer: reminder.Customer,
		Purpose:  reminder.Purpose,
	}

	started, err := s.slot.TryBegin(draft)
	if err != nil {
		return nil, err
	}

	// The reminder is consumed by the promotion. A delete failure here leaves
	// a stale reminder behind; log it, the started activity stands.
	if err := s.reminders.Delete(ctx, id); err != nil {
		s.log.Warnf("reminder %d promoted but not deleted: %v", id, err)
	}

	return started, nil
}

func validateReminder(reminder *models.Reminder) error {
	reminder.Customer = strings.TrimSpace(reminder.Customer)
	if reminder.ReminderDate == "" {
		return errors.New("reminder date is required")
	}
	if !utils.IsValidReminderDate(reminder.ReminderDate) {
		return errors.New("reminder date must be YYYY-MM-DD")
	}
	if reminder.Type != "" && !utils.IsValidTripType(reminder.Type) {
		return errors.New("activity type must be travel or office")
	}
	return nil
}
