package progress

import "kriyaConnectAPI/internal/accrual"

// ChallengeProgress is one challenge's slice of a user's progress document.
// Completed entries are unique per calendar day; Streak is the stored,
// incrementally maintained value, trusted as-is rather than recomputed from
// history.
type ChallengeProgress struct {
	Completed []accrual.Completion `json:"completed" firestore:"completed"`
	Streak    int                  `json:"streak" firestore:"streak"`
}

// Record is a user's whole progress document, keyed by challenge id.
type Record struct {
	UserID     string                        `json:"user_id"`
	Challenges map[string]*ChallengeProgress `json:"challenges"`
}

// Challenge returns the progress slice for a challenge, or an empty one if
// the user never touched it.
func (r *Record) Challenge(challengeID string) *ChallengeProgress {
	if r.Challenges == nil {
		return &ChallengeProgress{}
	}
	if cp := r.Challenges[challengeID]; cp != nil {
		return cp
	}
	return &ChallengeProgress{}
}
