// File: /services/email_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"triptracker-api/config"
	"triptracker-api/models"
)

// EmailService sends due-reminder digests. Without an SMTP host configured it
// stays a logged no-op, which is the normal state for an offline device.
type EmailService struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	log    *logrus.Logger
}

func NewEmailService(cfg *config.Config, log *logrus.Logger) *EmailService {
	service := &EmailService{cfg: cfg, log: log}
	if cfg.SMTPHost != "" && cfg.NotifyEmail != "" {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return service
}

// Enabled reports whether digests will actually be sent.
func (es *EmailService) Enabled() bool {
	return es.dialer != nil
}

// SendReminderDigest mails the list of due reminders to the configured
// notification address.
func (es *EmailService) SendReminderDigest(reminders []models.Reminder) error {
	if !es.Enabled() {
		es.log.Debug("email disabled, skipping reminder digest")
		return nil
	}
	if len(reminders) == 0 {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "You have %d work reminder(s) due:\n\n", len(reminders))
	for _, r := range reminders {
		fmt.Fprintf(&body, "- %s  %s  %s  (%s)\n", r.ReminderDate, r.Customer, r.Purpose, r.Type)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", es.cfg.FromEmail, es.cfg.FromName)
	m.SetHeader("To", es.cfg.NotifyEmail)
	m.SetHeader("Subject", fmt.Sprintf("TripTracker: %d reminder(s) due", len(reminders)))
	m.SetBody("text/plain", body.String())

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send reminder digest: %w", err)
	}
	return nil
}
