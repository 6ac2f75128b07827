package coinbank

import "context"

// Repository is the injectable persistence port for coin aggregates. Get
// treats an absent document as an empty member list. Save is a plain
// merge-write of the whole member list: there is no transaction spanning the
// caller's read, so concurrent writers overwrite each other and the last
// write wins. A stronger implementation can substitute a server-side
// transactional merge without touching the accrual arithmetic.
type Repository interface {
	Get(ctx context.Context, teacherID string) (*Aggregate, error)
	Save(ctx context.Context, agg *Aggregate) error
}
