package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"kriyaConnectAPI/internal/types/notification"
)

// PushProvider is the transport that actually delivers pushes (FCM in
// production).
type PushProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

type NotificationService struct {
	db       *pgxpool.Pool
	provider PushProvider
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{db: db}
}

// SetPushProvider injects the push transport. Without one, sends are
// logged and dropped.
func (s *NotificationService) SetPushProvider(p PushProvider) {
	s.provider = p
}

// RegisterDevice upserts a device token for the authenticated user.
func (s *NotificationService) RegisterDevice(ctx context.Context, clerkID string, req *notification.RegisterDeviceRequest) error {
	if req.Token == "" {
		return fmt.Errorf("%w: device token is required", ErrInvalidInput)
	}

	userID, err := s.userIDByClerkID(ctx, clerkID)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO device_tokens (user_id, token, platform, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (token) DO UPDATE SET user_id = $1, platform = $3
	`, userID, req.Token, req.Platform)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

// GetPreferences returns the user's notification preferences, defaulting to
// an enabled 6am reminder when no row exists yet.
func (s *NotificationService) GetPreferences(ctx context.Context, clerkID string) (*notification.Preferences, error) {
	userID, err := s.userIDByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	prefs := &notification.Preferences{
		UserID:           userID.String(),
		ReminderEnabled:  true,
		ReminderHour:     6,
		MilestoneEnabled: true,
	}

	err = s.db.QueryRow(ctx, `
		SELECT reminder_enabled, reminder_hour, milestone_enabled, updated_at
		FROM notification_preferences WHERE user_id = $1
	`, userID).Scan(&prefs.ReminderEnabled, &prefs.ReminderHour, &prefs.MilestoneEnabled, &prefs.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return prefs, nil
}

// UpdatePreferences upserts the provided fields, leaving the rest at their
// current (or default) values.
func (s *NotificationService) UpdatePreferences(ctx context.Context, clerkID string, req *notification.UpdatePreferencesRequest) (*notification.Preferences, error) {
	current, err := s.GetPreferences(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	if req.ReminderEnabled != nil {
		current.ReminderEnabled = *req.ReminderEnabled
	}
	if req.ReminderHour != nil {
		hour := *req.ReminderHour
		if hour < 0 || hour > 23 {
			return nil, fmt.Errorf("%w: reminder hour must be between 0 and 23", ErrInvalidInput)
		}
		current.ReminderHour = hour
	}
	if req.MilestoneEnabled != nil {
		current.MilestoneEnabled = *req.MilestoneEnabled
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO notification_preferences (user_id, reminder_enabled, reminder_hour, milestone_enabled, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET reminder_enabled = $2, reminder_hour = $3, milestone_enabled = $4, updated_at = NOW()
	`, current.UserID, current.ReminderEnabled, current.ReminderHour, current.MilestoneEnabled)
	if err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}

	return current, nil
}

// SendStreakMilestone pushes a celebration to every device of a user who
// just hit a streak milestone, unless the user opted out.
func (s *NotificationService) SendStreakMilestone(ctx context.Context, userID, challengeName string, streak int) error {
	if s.provider == nil {
		log.Printf("No push provider configured, dropping milestone push for user %s", userID)
		return nil
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	var enabled bool
	err = s.db.QueryRow(ctx, `
		SELECT COALESCE((SELECT milestone_enabled FROM notification_preferences WHERE user_id = $1), TRUE)
	`, userUUID).Scan(&enabled)
	if err != nil {
		return fmt.Errorf("failed to check preferences: %w", err)
	}
	if !enabled {
		return nil
	}

	tokens, err := s.deviceTokens(ctx, userUUID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%d days in a row!", streak)
	body := fmt.Sprintf("Your %s practice just reached a %d-day streak. Keep going!", challengeName, streak)
	if challengeName == "" {
		body = fmt.Sprintf("Your practice just reached a %d-day streak. Keep going!", streak)
	}

	return s.provider.SendPush(ctx, tokens, title, body, map[string]any{
		"type":   "streak_milestone",
		"streak": streak,
	})
}

// SendDailyReminders pushes the practice reminder to every opted-in user
// whose preferred hour matches. Called from the hourly cron job.
func (s *NotificationService) SendDailyReminders(ctx context.Context, hour int) error {
	if s.provider == nil {
		return nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT dt.user_id, dt.token, dt.platform
		FROM device_tokens dt
		JOIN notification_preferences np ON np.user_id = dt.user_id
		WHERE np.reminder_enabled = TRUE AND np.reminder_hour = $1
	`, hour)
	if err != nil {
		return fmt.Errorf("failed to query reminder devices: %w", err)
	}
	defer rows.Close()

	byUser := make(map[uuid.UUID][]notification.DeviceToken)
	for rows.Next() {
		var userID uuid.UUID
		var token notification.DeviceToken
		if err := rows.Scan(&userID, &token.Token, &token.Platform); err != nil {
			continue
		}
		byUser[userID] = append(byUser[userID], token)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	sent := 0
	for userID, tokens := range byUser {
		err := s.provider.SendPush(ctx, tokens, "Time for your practice", "Your daily practice is waiting. A few minutes now keeps the streak alive.", map[string]any{
			"type": "daily_reminder",
		})
		if err != nil {
			log.Printf("Failed to send reminder to user %s: %v", userID, err)
			continue
		}
		sent++
	}

	log.Printf("Daily reminders: pushed to %d users for hour %d", sent, hour)
	return nil
}

func (s *NotificationService) userIDByClerkID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("user not found")
		}
		return uuid.Nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userID, nil
}

func (s *NotificationService) deviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `SELECT token, COALESCE(platform, '') FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query device tokens: %w", err)
	}
	defer rows.Close()

	tokens := make([]notification.DeviceToken, 0)
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.Token, &t.Platform); err != nil {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
