package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"kriyaConnectAPI/internal/accrual"
	"kriyaConnectAPI/internal/challenge"
	"kriyaConnectAPI/internal/coinbank"
	"kriyaConnectAPI/internal/progress"
	"kriyaConnectAPI/internal/types/session"
)

type fakeDirectory map[string]accrual.MemberSnapshot

func (d fakeDirectory) GetMemberSnapshot(ctx context.Context, userID string) (accrual.MemberSnapshot, error) {
	snap, ok := d[userID]
	if !ok {
		return accrual.MemberSnapshot{}, fmt.Errorf("member %s not found", userID)
	}
	return snap, nil
}

func newTestProgressService(t *testing.T, at time.Time) (*ProgressService, challenge.Repository, coinbank.Repository) {
	t.Helper()

	challenges := challenge.NewMemoryRepository()
	bank := coinbank.NewMemoryRepository()
	dir := fakeDirectory{
		"member-1": {UserID: "member-1", UserName: "asha", UserRole: "member"},
		"member-2": {UserID: "member-2", UserName: "ravi", UserRole: "member"},
	}

	svc := NewProgressService(challenges, progress.NewMemoryRepository(), bank, dir)
	svc.now = func() time.Time { return at }
	return svc, challenges, bank
}

func memberSession() session.Session {
	return session.Session{
		UserID:    "member-1",
		UserName:  "asha",
		UserRole:  "member",
		TeacherID: "teacher-1",
	}
}

func teacherSession() session.Session {
	return session.Session{
		UserID:    "teacher-1",
		UserName:  "guruji",
		UserRole:  "teacher",
		TeacherID: "teacher-1",
	}
}

func seedKriya(t *testing.T, challenges challenge.Repository) {
	t.Helper()
	err := challenges.Create(context.Background(), challenge.Definition{
		ChallengeID:   "ch-kriya",
		ChallengeName: "Kriya",
		TeacherID:     "teacher-1",
		CreatedDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed challenge: %v", err)
	}
}

func TestCompleteChallengeFirstDay(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	svc, challenges, bank := newTestProgressService(t, day1)
	seedKriya(t, challenges)

	out, err := svc.CompleteChallenge(context.Background(), memberSession(), "ch-kriya")
	if err != nil {
		t.Fatalf("CompleteChallenge: %v", err)
	}

	if out.AlreadyDone {
		t.Fatal("first completion flagged as duplicate")
	}
	if out.Streak != 1 {
		t.Errorf("streak = %d, want 1", out.Streak)
	}
	if out.CoinsEarned != 5 {
		t.Errorf("coins = %d, want 5", out.CoinsEarned)
	}
	if out.WeekKey != "week11year2025" {
		t.Errorf("week key = %q, want week11year2025", out.WeekKey)
	}

	agg, err := bank.Get(context.Background(), "teacher-1")
	if err != nil {
		t.Fatalf("bank.Get: %v", err)
	}
	m := agg.Member("member-1")
	if m == nil {
		t.Fatal("member missing from aggregate")
	}
	if m.AllTime.Coins != 5 || m.AllTime.Streak != 1 {
		t.Errorf("all-time = %+v, want coins 5 streak 1", m.AllTime)
	}
	week := m.Weekly[out.WeekKey]
	if week == nil || week.Coins != 5 || week.Streak != 1 {
		t.Errorf("weekly bucket = %+v, want coins 5 streak 1", week)
	}
}

func TestCompleteChallengeConsecutiveDays(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	svc, challenges, bank := newTestProgressService(t, day1)
	seedKriya(t, challenges)

	if _, err := svc.CompleteChallenge(context.Background(), memberSession(), "ch-kriya"); err != nil {
		t.Fatalf("day 1: %v", err)
	}

	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	out, err := svc.CompleteChallenge(context.Background(), memberSession(), "ch-kriya")
	if err != nil {
		t.Fatalf("day 2: %v", err)
	}

	if out.Streak != 2 {
		t.Errorf("streak = %d, want 2", out.Streak)
	}
	if out.CoinsEarned != 5 {
		t.Errorf("coins = %d, want 5", out.CoinsEarned)
	}

	agg, _ := bank.Get(context.Background(), "teacher-1")
	m := agg.Member("member-1")
	if m.AllTime.Coins != 10 || m.AllTime.Streak != 2 {
		t.Errorf("all-time = %+v, want coins 10 streak 2", m.AllTime)
	}
}

func TestCompleteChallengeGapResetsStreak(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	svc, challenges, _ := newTestProgressService(t, day1)
	seedKriya(t, challenges)

	if _, err := svc.CompleteChallenge(context.Background(), memberSession(), "ch-kriya"); err != nil {
		t.Fatalf("day 1: %v", err)
	}

	// Skip a day
	svc.now = func() time.Time { return day1.AddDate(0, 0, 2) }
	out, err := svc.CompleteChallenge(context.Background(), memberSession(), "ch-kriya")
	if err != nil {
		t.Fatalf("after gap: %v", err)
	}
	if out.Streak != 1 {
		t.Errorf("streak after gap = %d, want 1", out.Streak)
	}
}

func TestCompleteChallengeDuplicateSameDay(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	svc, challenges, bank := newTestProgressService(t, day1)
	seedKriya(t, challenges)

	if _, err := svc.CompleteChallenge(context.Background(), memberSession(), "ch-kriya"); err != nil {
		t.Fatalf("first: %v", err)
	}

	// Same day, later
	svc.now = func() time.Time { return day1.Add(6 * time.Hour) }
	out, err := svc.CompleteChallenge(context.Background(), memberSession(), "ch-kriya")
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if !out.AlreadyDone {
		t.Fatal("duplicate not detected")
	}
	if out.Message != AlreadyCompletedMessage {
		t.Errorf("message = %q", out.Message)
	}
	if out.CoinsEarned != 0 {
		t.Errorf("duplicate earned %d coins", out.CoinsEarned)
	}
	if out.Streak != 1 {
		t.Errorf("duplicate streak = %d, want 1", out.Streak)
	}

	agg, _ := bank.Get(context.Background(), "teacher-1")
	m := agg.Member("member-1")
	if m.AllTime.Coins != 5 {
		t.Errorf("all-time coins = %d, want unchanged 5", m.AllTime.Coins)
	}
}

func TestCompleteChallengeUnknownDefinitionPaysDefault(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	svc, _, _ := newTestProgressService(t, day1)

	out, err := svc.CompleteChallenge(context.Background(), memberSession(), "ch-ghost")
	if err != nil {
		t.Fatalf("CompleteChallenge: %v", err)
	}
	if out.CoinsEarned != 10 {
		t.Errorf("coins = %d, want default 10", out.CoinsEarned)
	}
}

func TestCompleteChallengeValidation(t *testing.T) {
	svc, _, _ := newTestProgressService(t, time.Now())

	_, err := svc.CompleteChallenge(context.Background(), session.Session{}, "ch-kriya")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestMarkGroupAttendanceTeacherOnly(t *testing.T) {
	svc, _, _ := newTestProgressService(t, time.Now())

	_, err := svc.MarkGroupAttendance(context.Background(), memberSession(), "ch-kriya", []string{"member-2"})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestMarkGroupAttendance(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	svc, challenges, bank := newTestProgressService(t, day1)
	seedKriya(t, challenges)

	results, err := svc.MarkGroupAttendance(context.Background(), teacherSession(), "ch-kriya", []string{"member-1", "member-2", "member-ghost"})
	if err != nil {
		t.Fatalf("MarkGroupAttendance: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	for _, res := range results[:2] {
		if res.Error != "" {
			t.Errorf("%s: unexpected error %q", res.UserID, res.Error)
		}
		if res.Streak != 1 {
			t.Errorf("%s: streak = %d, want 1", res.UserID, res.Streak)
		}
		if res.CoinsEarned != accrual.GroupKriyaCoins {
			t.Errorf("%s: coins = %d, want %d", res.UserID, res.CoinsEarned, accrual.GroupKriyaCoins)
		}
	}
	if results[2].Error != "member not found" {
		t.Errorf("ghost member error = %q", results[2].Error)
	}

	// Attendance buckets into the legacy week key even after the cutover.
	agg, _ := bank.Get(context.Background(), "teacher-1")
	m := agg.Member("member-1")
	if m == nil {
		t.Fatal("member-1 missing from aggregate")
	}
	legacyKey := accrual.LegacyWeekKey(day1)
	week := m.Weekly[legacyKey]
	if week == nil || week.Coins != accrual.GroupKriyaCoins {
		t.Errorf("legacy bucket %s = %+v, want coins %d", legacyKey, week, accrual.GroupKriyaCoins)
	}
}

func TestMarkGroupAttendanceDuplicate(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	svc, challenges, bank := newTestProgressService(t, day1)
	seedKriya(t, challenges)

	if _, err := svc.MarkGroupAttendance(context.Background(), teacherSession(), "ch-kriya", []string{"member-1"}); err != nil {
		t.Fatalf("first: %v", err)
	}
	results, err := svc.MarkGroupAttendance(context.Background(), teacherSession(), "ch-kriya", []string{"member-1"})
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if !results[0].AlreadyDone {
		t.Fatal("duplicate attendance not detected")
	}

	agg, _ := bank.Get(context.Background(), "teacher-1")
	m := agg.Member("member-1")
	if m.AllTime.Coins != accrual.GroupKriyaCoins {
		t.Errorf("all-time coins = %d, want unchanged %d", m.AllTime.Coins, accrual.GroupKriyaCoins)
	}
}

func TestGetUserProgress(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	svc, challenges, _ := newTestProgressService(t, day1)
	seedKriya(t, challenges)

	if _, err := svc.CompleteChallenge(context.Background(), memberSession(), "ch-kriya"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	rec, err := svc.GetUserProgress(context.Background(), memberSession())
	if err != nil {
		t.Fatalf("GetUserProgress: %v", err)
	}
	cp := rec.Challenge("ch-kriya")
	if cp.Streak != 1 || len(cp.Completed) != 1 {
		t.Errorf("progress = %+v", cp)
	}
	if cp.Completed[0].Date != accrual.DateKey(day1) {
		t.Errorf("completion date = %q, want %q", cp.Completed[0].Date, accrual.DateKey(day1))
	}
}
