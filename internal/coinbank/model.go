package coinbank

import "kriyaConnectAPI/internal/accrual"

// Aggregate is a teacher network's coin summary document: one entry per
// member, weekly buckets plus all-time totals.
type Aggregate struct {
	TeacherID string
	Members   []*accrual.MemberTotals
}

// Member returns the entry for a user, or nil if the user has never been
// rewarded inside this network.
func (a *Aggregate) Member(userID string) *accrual.MemberTotals {
	for _, m := range a.Members {
		if m.UserID == userID {
			return m
		}
	}
	return nil
}
