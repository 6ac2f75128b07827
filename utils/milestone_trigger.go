package utils

import (
	"context"

	log "github.com/sirupsen/logrus"

	"kriyaConnectAPI/internal/accrual"
)

// MilestoneNotifier is the slice of the notification service the trigger
// needs.
type MilestoneNotifier interface {
	SendStreakMilestone(ctx context.Context, userID, challengeName string, streak int) error
}

// StreakMilestoneReached fires a celebration push when a streak lands on a
// milestone. Delivery is best-effort and detached from the request.
func StreakMilestoneReached(notifier MilestoneNotifier, userID, challengeName string, streak int) {
	if notifier == nil || !accrual.IsMilestone(streak) {
		return
	}

	go func() {
		if err := notifier.SendStreakMilestone(context.Background(), userID, challengeName, streak); err != nil {
			log.Printf("Failed to send streak milestone push for user %s: %v", userID, err)
		}
	}()
}
