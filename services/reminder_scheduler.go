package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// ReminderScheduler drives the hourly reminder sweep. Each tick checks which
// users picked the current hour for their practice reminder.
type ReminderScheduler struct {
	cron          *cron.Cron
	notifications *NotificationService
}

func NewReminderScheduler(notifications *NotificationService) *ReminderScheduler {
	return &ReminderScheduler{
		cron:          cron.New(),
		notifications: notifications,
	}
}

func (s *ReminderScheduler) Start() {
	s.cron.AddFunc("0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		hour := time.Now().Hour()
		if err := s.notifications.SendDailyReminders(ctx, hour); err != nil {
			log.Printf("Reminder sweep for hour %d failed: %v", hour, err)
		}
	})

	s.cron.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderScheduler) Stop() {
	s.cron.Stop()
}
