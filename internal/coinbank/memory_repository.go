package coinbank

import (
	"context"
	"sync"

	"kriyaConnectAPI/internal/accrual"
)

type memoryRepository struct {
	mu   sync.Mutex
	aggs map[string][]*accrual.MemberTotals
}

// NewMemoryRepository creates an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{aggs: make(map[string][]*accrual.MemberTotals)}
}

func (r *memoryRepository) Get(ctx context.Context, teacherID string) (*Aggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &Aggregate{TeacherID: teacherID, Members: cloneMembers(r.aggs[teacherID])}, nil
}

func (r *memoryRepository) Save(ctx context.Context, agg *Aggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aggs[agg.TeacherID] = cloneMembers(agg.Members)
	return nil
}

func cloneMembers(members []*accrual.MemberTotals) []*accrual.MemberTotals {
	if members == nil {
		return nil
	}
	clones := make([]*accrual.MemberTotals, 0, len(members))
	for _, m := range members {
		clone := *m
		clone.Weekly = make(map[string]*accrual.Totals, len(m.Weekly))
		for k, v := range m.Weekly {
			week := *v
			clone.Weekly[k] = &week
		}
		clones = append(clones, &clone)
	}
	return clones
}
