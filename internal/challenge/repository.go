package challenge

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("challenge not found")
	ErrConflict = errors.New("challenge already exists")
)

type Repository interface {
	Create(ctx context.Context, def Definition) error
	GetByID(ctx context.Context, challengeID string) (Definition, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]Definition, error)
}
