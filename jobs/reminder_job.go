// File: /jobs/reminder_job.go
package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"triptracker-api/activeslot"
	"triptracker-api/services"
)

// ReminderJob periodically sweeps the reminders store for due entries and
// mails a digest when email is configured.
type ReminderJob struct {
	reminders *services.ReminderService
	email     *services.EmailService
	log       *logrus.Logger
	ticker    *time.Ticker
	done      chan bool
}

// NewReminderJob creates a new reminder sweep job.
func NewReminderJob(db *gorm.DB, slot *activeslot.Slot, email *services.EmailService, log *logrus.Logger, interval time.Duration) *ReminderJob {
	return &ReminderJob{
		reminders: services.NewReminderService(db, slot, log),
		email:     email,
		log:       log,
		ticker:    time.NewTicker(interval),
		done:      make(chan bool),
	}
}

// Start begins the sweep job.
func (j *ReminderJob) Start() {
	j.log.Info("reminder sweep job started")

	go func() {
		// Run immediately on start
		j.sweep()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.sweep()
			case <-j.done:
				j.log.Info("reminder sweep job stopped")
				return
			}
		}
	}()
}

// Stop stops the sweep job.
func (j *ReminderJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *ReminderJob) sweep() {
	ctx := context.Background()

	due, err := j.reminders.Due(ctx, time.Now())
	if err != nil {
		j.log.Errorf("reminder sweep failed: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	for _, r := range due {
		j.log.Infof("reminder due: %s %s (%s)", r.ReminderDate, r.Customer, r.Purpose)
	}

	if err := j.email.SendReminderDigest(due); err != nil {
		j.log.Errorf("failed to send reminder digest: %v", err)
	}
}
