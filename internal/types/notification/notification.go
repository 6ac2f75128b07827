package notification

import "time"

type DeviceToken struct {
	Token    string `json:"token" db:"token"`
	Platform string `json:"platform" db:"platform"`
}

type Preferences struct {
	UserID           string    `json:"user_id" db:"user_id"`
	ReminderEnabled  bool      `json:"reminder_enabled" db:"reminder_enabled"`
	ReminderHour     int       `json:"reminder_hour" db:"reminder_hour"`
	MilestoneEnabled bool      `json:"milestone_enabled" db:"milestone_enabled"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform"`
}

type UpdatePreferencesRequest struct {
	ReminderEnabled  *bool `json:"reminder_enabled,omitempty"`
	ReminderHour     *int  `json:"reminder_hour,omitempty"`
	MilestoneEnabled *bool `json:"milestone_enabled,omitempty"`
}
