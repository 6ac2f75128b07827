package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kriyaConnectAPI/internal/challenge"
	"kriyaConnectAPI/internal/types/session"
)

type ChallengeService struct {
	challenges challenge.Repository
}

func NewChallengeService(challenges challenge.Repository) *ChallengeService {
	return &ChallengeService{challenges: challenges}
}

// CreateChallenge defines a new recurring practice for the teacher's
// network. Teacher-only.
func (s *ChallengeService) CreateChallenge(ctx context.Context, sess session.Session, req *challenge.CreateChallengeRequest) (*challenge.Definition, error) {
	if !sess.IsTeacher() {
		return nil, fmt.Errorf("%w: only teachers can create challenges", ErrForbidden)
	}
	if req.ChallengeName == "" || req.ChallengeDuration < 1 {
		return nil, fmt.Errorf("%w: challenge name and a positive duration are required", ErrInvalidInput)
	}

	def := challenge.Definition{
		ChallengeID:       uuid.New().String(),
		ChallengeName:     req.ChallengeName,
		ChallengeDuration: req.ChallengeDuration,
		CreatedDate:       time.Now(),
		TeacherID:         sess.TeacherID,
	}

	if err := s.challenges.Create(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return &def, nil
}

func (s *ChallengeService) GetChallenge(ctx context.Context, challengeID string) (*challenge.Definition, error) {
	if challengeID == "" {
		return nil, fmt.Errorf("%w: challenge id is required", ErrInvalidInput)
	}
	def, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (s *ChallengeService) ListChallenges(ctx context.Context, sess session.Session) ([]challenge.Definition, error) {
	if sess.TeacherID == "" {
		return nil, fmt.Errorf("%w: the user is not part of a teacher network", ErrInvalidInput)
	}
	defs, err := s.challenges.ListByTeacher(ctx, sess.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return defs, nil
}
