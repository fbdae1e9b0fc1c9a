// File: /activeslot/slot.go
package activeslot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"triptracker-api/models"
)

// Slot state-machine errors
var (
	// ErrAlreadyInProgress is returned by TryBegin while a draft is active.
	ErrAlreadyInProgress = errors.New("an activity is already in progress")

	// ErrNoActiveActivity is returned by Complete/Update/Discard on an empty slot.
	ErrNoActiveActivity = errors.New("no activity in progress")

	// ErrOdometerBelowStart is returned when a travel activity is completed
	// with an end reading below its start reading.
	ErrOdometerBelowStart = errors.New("end km is below start km")
)

// Slot holds the single in-progress activity draft in a JSON file next to the
// database, so it survives restarts without being a durable trip record.
//
// The occupancy check is advisory: the mutex serializes callers within this
// process, but two processes sharing the data directory can still both begin
// an activity. Accepted for a single-user, single-device tool.
type Slot struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Slot {
	return &Slot{path: path}
}

// Patch carries in-place edits for the active draft. Nil fields are left
// unchanged.
type Patch struct {
	User        *string `json:"user"`
	Vehicle     *string `json:"vehicle"`
	Customer    *string `json:"customer"`
	Purpose     *string `json:"purpose"`
	WorkDetails *string `json:"workDetails"`
	StartKm     *int    `json:"startKm"`
}

// Completion carries the final fields merged into the draft on completion.
type Completion struct {
	EndKm       *int      `json:"endKm"`
	WorkDetails string    `json:"workDetails"`
	EndTime     time.Time `json:"endTime"`
}

// TryBegin occupies the slot with the draft. This is the only gate enforcing
// the one-active-activity rule.
func (s *Slot) TryBegin(draft models.Trip) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, ErrAlreadyInProgress
	}

	draft.ID = 0
	draft.Status = models.TripStatusActive
	draft.EndTime = nil
	now := time.Now()
	if draft.StartTime.IsZero() {
		draft.StartTime = now
	}
	if draft.Date.IsZero() {
		draft.Date = now
	}

	if err := s.write(&draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Get returns the active draft, or nil when the slot is empty.
func (s *Slot) Get() (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Update applies an in-place edit to the active draft.
func (s *Slot) Update(patch Patch) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoActiveActivity
	}

	if patch.User != nil {
		current.User = *patch.User
	}
	if patch.Vehicle != nil {
		current.Vehicle = *patch.Vehicle
	}
	if patch.Customer != nil {
		current.Customer = *patch.Customer
	}
	if patch.Purpose != nil {
		current.Purpose = *patch.Purpose
	}
	if patch.WorkDetails != nil {
		current.WorkDetails = *patch.WorkDetails
	}
	if patch.StartKm != nil {
		current.StartKm = *patch.StartKm
	}

	if err := s.write(current); err != nil {
		return nil, err
	}
	return current, nil
}

// Complete merges the final fields into the draft, clears the slot and
// returns the finished record for the caller to persist. Travel drafts reject
// an end reading below the start reading before anything is cleared.
func (s *Slot) Complete(final Completion) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoActiveActivity
	}

	if current.IsTravel() {
		if final.EndKm == nil {
			return nil, fmt.Errorf("end km is required to complete a travel activity")
		}
		if *final.EndKm < current.StartKm {
			return nil, fmt.Errorf("%w: start %d, end %d", ErrOdometerBelowStart, current.StartKm, *final.EndKm)
		}
	}
	if final.EndKm != nil {
		current.EndKm = *final.EndKm
	}
	if final.WorkDetails != "" {
		current.WorkDetails = final.WorkDetails
	}

	end := final.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	current.EndTime = &end
	current.Status = models.TripStatusCompleted

	if err := s.clear(); err != nil {
		return nil, err
	}
	return current, nil
}

// Discard clears the slot without persisting anything.
func (s *Slot) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNoActiveActivity
	}
	return s.clear()
}

func (s *Slot) read() (*models.Trip, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read active slot: %w", err)
	}
	var trip models.Trip
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, fmt.Errorf("decode active slot: %w", err)
	}
	return &trip, nil
}

func (s *Slot) write(trip *models.Trip) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("encode active slot: %w", err)
	}

	// write-then-rename so a crash never leaves a half-written draft
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("write active slot: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write active slot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write active slot: %w", err)
	}
	return nil
}

func (s *Slot) clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear active slot: %w", err)
	}
	return nil
}
