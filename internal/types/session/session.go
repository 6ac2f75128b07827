package session

import (
	"kriyaConnectAPI/internal/accrual"
	"kriyaConnectAPI/internal/types/user"
)

// Session carries the acting user's identity and teacher-network binding
// into every accrual call. It is built per request from the authenticated
// user row; there is no ambient current-user singleton.
type Session struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserImage string `json:"user_image"`
	UserRole  string `json:"user_role"`
	TeacherID string `json:"teacher_id"`
}

// FromUser derives a session from a synced user row. Teachers own their own
// network, so their aggregate key is their own id.
func FromUser(u *user.User) Session {
	teacherID := u.TeacherID
	if u.Role == user.RoleTeacher {
		teacherID = u.ID
	}
	return Session{
		UserID:    u.ID,
		UserName:  u.Username,
		UserImage: u.ImageURL,
		UserRole:  u.Role,
		TeacherID: teacherID,
	}
}

// Snapshot is the member identity frozen into the coin aggregate.
func (s Session) Snapshot() accrual.MemberSnapshot {
	return accrual.MemberSnapshot{
		UserID:    s.UserID,
		UserName:  s.UserName,
		UserImage: s.UserImage,
		UserRole:  s.UserRole,
	}
}

// IsTeacher reports whether the session may perform teacher-only actions.
func (s Session) IsTeacher() bool {
	return s.UserRole == user.RoleTeacher
}
