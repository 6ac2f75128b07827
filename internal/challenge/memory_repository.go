package challenge

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu   sync.Mutex
	defs map[string]Definition
}

// NewMemoryRepository creates an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{defs: make(map[string]Definition)}
}

func (r *memoryRepository) Create(ctx context.Context, def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.ChallengeID]; exists {
		return ErrConflict
	}
	r.defs[def.ChallengeID] = def
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, challengeID string) (Definition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.defs[challengeID]
	if !ok {
		return Definition{}, ErrNotFound
	}
	return def, nil
}

func (r *memoryRepository) ListByTeacher(ctx context.Context, teacherID string) ([]Definition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defs := make([]Definition, 0)
	for _, def := range r.defs {
		if def.TeacherID == teacherID {
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].CreatedDate.After(defs[j].CreatedDate)
	})
	return defs, nil
}
