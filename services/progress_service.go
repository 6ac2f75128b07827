package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kriyaConnectAPI/internal/accrual"
	"kriyaConnectAPI/internal/challenge"
	"kriyaConnectAPI/internal/coinbank"
	"kriyaConnectAPI/internal/progress"
	"kriyaConnectAPI/internal/types/session"
	"kriyaConnectAPI/utils"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// AlreadyCompletedMessage is shown when a user re-submits today's completion.
const AlreadyCompletedMessage = "You have already completed this challenge today."

// MemberDirectory resolves member ids into aggregate snapshots. Implemented
// by UserService; faked in tests.
type MemberDirectory interface {
	GetMemberSnapshot(ctx context.Context, userID string) (accrual.MemberSnapshot, error)
}

// ProgressService runs the completion flow: read progress, run the tracker,
// price the reward, merge the coin aggregate, write both documents back.
// The read-merge-write is deliberately unguarded: at-most-once-per-day is
// only enforced against the state visible at read time, and two concurrent
// writers of the same aggregate race with last write winning.
type ProgressService struct {
	challenges challenge.Repository
	progress   progress.Repository
	coinbank   coinbank.Repository
	members    MemberDirectory
	notifier   utils.MilestoneNotifier

	now func() time.Time
}

func NewProgressService(challenges challenge.Repository, prog progress.Repository, bank coinbank.Repository, members MemberDirectory) *ProgressService {
	return &ProgressService{
		challenges: challenges,
		progress:   prog,
		coinbank:   bank,
		members:    members,
		now:        time.Now,
	}
}

// SetMilestoneNotifier injects the push sender for streak milestones.
func (s *ProgressService) SetMilestoneNotifier(n utils.MilestoneNotifier) {
	s.notifier = n
}

// CompletionOutcome is the user-facing result of one completion attempt.
type CompletionOutcome struct {
	Streak      int                 `json:"streak"`
	CoinsEarned int                 `json:"coins_earned"`
	AlreadyDone bool                `json:"already_completed"`
	Message     string              `json:"message,omitempty"`
	WeekKey     string              `json:"week_key,omitempty"`
	Level       accrual.StreakLevel `json:"level"`
}

// CompleteChallenge records a self-service completion for today. Duplicate
// completions are a normal branch, not an error: the outcome carries the
// already-completed message and no coins are awarded.
func (s *ProgressService) CompleteChallenge(ctx context.Context, sess session.Session, challengeID string) (*CompletionOutcome, error) {
	if sess.UserID == "" || sess.TeacherID == "" || challengeID == "" {
		return nil, fmt.Errorf("%w: user, teacher and challenge ids are required", ErrInvalidInput)
	}

	// An absent definition is not fatal: the reward falls through to the
	// default row of the coin table.
	def, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil && !errors.Is(err, challenge.ErrNotFound) {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	rec, err := s.progress.Get(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	cp := rec.Challenge(challengeID)

	now := s.now()
	res := accrual.RecordCompletion(cp.Completed, cp.Streak, now, accrual.LookupScan)
	if res.AlreadyDone {
		return &CompletionOutcome{
			Streak:      cp.Streak,
			AlreadyDone: true,
			Message:     AlreadyCompletedMessage,
			Level:       accrual.LevelFromStreak(cp.Streak),
		}, nil
	}

	coins := accrual.CoinsForCompletion(def.ChallengeName, res.Streak)
	weekKey := accrual.WeekKeyFor(now)

	if err := s.progress.Save(ctx, sess.UserID, challengeID, &progress.ChallengeProgress{
		Completed: res.History,
		Streak:    res.Streak,
	}); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	agg, err := s.coinbank.Get(ctx, sess.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("progress saved but coin aggregate read failed: %w", err)
	}
	agg.Members = accrual.ApplyReward(agg.Members, sess.Snapshot(), weekKey, coins, res.Streak)
	if err := s.coinbank.Save(ctx, agg); err != nil {
		// The two documents now diverge; surfaced, not rolled back.
		return nil, fmt.Errorf("progress saved but coin aggregate write failed: %w", err)
	}

	utils.StreakMilestoneReached(s.notifier, sess.UserID, def.ChallengeName, res.Streak)

	return &CompletionOutcome{
		Streak:      res.Streak,
		CoinsEarned: coins,
		WeekKey:     weekKey,
		Level:       accrual.LevelFromStreak(res.Streak),
	}, nil
}

// AttendanceResult is one member's outcome of a group attendance marking.
type AttendanceResult struct {
	UserID      string `json:"user_id"`
	Streak      int    `json:"streak"`
	CoinsEarned int    `json:"coins_earned"`
	AlreadyDone bool   `json:"already_completed"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// MarkGroupAttendance records a teacher-marked group kriya session for the
// listed members. Attendance pays the flat group reward regardless of
// streak, checks yesterday positionally, and has always bucketed into the
// legacy week key; none of that goes through the self-service switch.
func (s *ProgressService) MarkGroupAttendance(ctx context.Context, sess session.Session, challengeID string, memberIDs []string) ([]*AttendanceResult, error) {
	if !sess.IsTeacher() {
		return nil, fmt.Errorf("%w: only teachers can mark group attendance", ErrForbidden)
	}
	if challengeID == "" || len(memberIDs) == 0 {
		return nil, fmt.Errorf("%w: challenge id and at least one member are required", ErrInvalidInput)
	}

	def, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil && !errors.Is(err, challenge.ErrNotFound) {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	now := s.now()
	weekKey := accrual.LegacyWeekKey(now)

	agg, err := s.coinbank.Get(ctx, sess.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coin aggregate: %w", err)
	}

	results := make([]*AttendanceResult, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		result := &AttendanceResult{UserID: memberID}
		results = append(results, result)

		snap, err := s.members.GetMemberSnapshot(ctx, memberID)
		if err != nil {
			result.Error = "member not found"
			continue
		}

		rec, err := s.progress.Get(ctx, memberID)
		if err != nil {
			result.Error = "failed to load progress"
			continue
		}
		cp := rec.Challenge(challengeID)

		res := accrual.RecordCompletion(cp.Completed, cp.Streak, now, accrual.LookupTail)
		if res.AlreadyDone {
			result.AlreadyDone = true
			result.Streak = cp.Streak
			result.Message = AlreadyCompletedMessage
			continue
		}

		if err := s.progress.Save(ctx, memberID, challengeID, &progress.ChallengeProgress{
			Completed: res.History,
			Streak:    res.Streak,
		}); err != nil {
			result.Error = "failed to save progress"
			continue
		}

		agg.Members = accrual.ApplyReward(agg.Members, snap, weekKey, accrual.GroupKriyaCoins, res.Streak)
		result.Streak = res.Streak
		result.CoinsEarned = accrual.GroupKriyaCoins

		utils.StreakMilestoneReached(s.notifier, memberID, def.ChallengeName, res.Streak)
	}

	if err := s.coinbank.Save(ctx, agg); err != nil {
		return results, fmt.Errorf("attendance recorded but coin aggregate write failed: %w", err)
	}
	return results, nil
}

// GetUserProgress returns the caller's whole progress document.
func (s *ProgressService) GetUserProgress(ctx context.Context, sess session.Session) (*progress.Record, error) {
	if sess.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	rec, err := s.progress.Get(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return rec, nil
}
