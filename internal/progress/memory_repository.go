package progress

import (
	"context"
	"sync"

	"kriyaConnectAPI/internal/accrual"
)

type memoryRepository struct {
	mu      sync.Mutex
	records map[string]map[string]*ChallengeProgress
}

// NewMemoryRepository creates an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{records: make(map[string]map[string]*ChallengeProgress)}
}

func (r *memoryRepository) Get(ctx context.Context, userID string) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	challenges := make(map[string]*ChallengeProgress)
	for id, cp := range r.records[userID] {
		challenges[id] = cloneProgress(cp)
	}
	return &Record{UserID: userID, Challenges: challenges}, nil
}

func (r *memoryRepository) Save(ctx context.Context, userID, challengeID string, cp *ChallengeProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.records[userID] == nil {
		r.records[userID] = make(map[string]*ChallengeProgress)
	}
	r.records[userID][challengeID] = cloneProgress(cp)
	return nil
}

func cloneProgress(cp *ChallengeProgress) *ChallengeProgress {
	clone := &ChallengeProgress{Streak: cp.Streak}
	clone.Completed = append([]accrual.Completion(nil), cp.Completed...)
	return clone
}
