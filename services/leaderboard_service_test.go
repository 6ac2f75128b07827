package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kriyaConnectAPI/internal/accrual"
	"kriyaConnectAPI/internal/coinbank"
	"kriyaConnectAPI/internal/types/session"
)

func seedAggregate(t *testing.T, bank coinbank.Repository, weekKey string) {
	t.Helper()
	err := bank.Save(context.Background(), &coinbank.Aggregate{
		TeacherID: "teacher-1",
		Members: []*accrual.MemberTotals{
			{
				UserID:   "member-1",
				UserName: "asha",
				Weekly:   map[string]*accrual.Totals{weekKey: {Coins: 20, Streak: 4}},
				AllTime:  accrual.Totals{Coins: 300, Streak: 12},
			},
			{
				UserID:   "member-2",
				UserName: "ravi",
				Weekly:   map[string]*accrual.Totals{weekKey: {Coins: 35, Streak: 7}},
				AllTime:  accrual.Totals{Coins: 120, Streak: 7},
			},
			{
				UserID:   "member-3",
				UserName: "devi",
				Weekly:   map[string]*accrual.Totals{},
				AllTime:  accrual.Totals{Coins: 120, Streak: 30},
			},
		},
	})
	if err != nil {
		t.Fatalf("seed aggregate: %v", err)
	}
}

func TestGetLeaderboards(t *testing.T) {
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	weekKey := accrual.WeekKeyFor(at)

	bank := coinbank.NewMemoryRepository()
	seedAggregate(t, bank, weekKey)

	svc := NewLeaderboardService(bank)
	svc.now = func() time.Time { return at }

	resp, err := svc.GetLeaderboards(context.Background(), memberSession())
	if err != nil {
		t.Fatalf("GetLeaderboards: %v", err)
	}

	if resp.WeekKey != weekKey {
		t.Errorf("week key = %q, want %q", resp.WeekKey, weekKey)
	}

	// Weekly: ravi 35, asha 20, devi 0 (no bucket this week)
	weekly := resp.Weekly
	if weekly.TotalUsers != 3 {
		t.Fatalf("weekly total = %d, want 3", weekly.TotalUsers)
	}
	wantWeekly := []string{"member-2", "member-1", "member-3"}
	for i, want := range wantWeekly {
		if weekly.Entries[i].UserID != want {
			t.Errorf("weekly[%d] = %s, want %s", i, weekly.Entries[i].UserID, want)
		}
		if weekly.Entries[i].Rank != i+1 {
			t.Errorf("weekly[%d] rank = %d, want %d", i, weekly.Entries[i].Rank, i+1)
		}
	}
	if weekly.Entries[2].Coins != 0 {
		t.Errorf("member without weekly bucket scored %d", weekly.Entries[2].Coins)
	}

	// All-time: asha 300, then the 120/120 tie broken by streak (devi 30 > ravi 7)
	wantAllTime := []string{"member-1", "member-3", "member-2"}
	for i, want := range wantAllTime {
		if resp.AllTime.Entries[i].UserID != want {
			t.Errorf("allTime[%d] = %s, want %s", i, resp.AllTime.Entries[i].UserID, want)
		}
	}

	if resp.Weekly.UserPosition == nil || resp.Weekly.UserPosition.UserID != "member-1" {
		t.Error("caller position missing from weekly board")
	}
	if resp.Weekly.UserPosition.Rank != 2 {
		t.Errorf("caller weekly rank = %d, want 2", resp.Weekly.UserPosition.Rank)
	}
}

func TestGetLeaderboardsRequiresNetwork(t *testing.T) {
	svc := NewLeaderboardService(coinbank.NewMemoryRepository())

	_, err := svc.GetLeaderboards(context.Background(), session.Session{UserID: "member-1"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestGetMemberLevel(t *testing.T) {
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	bank := coinbank.NewMemoryRepository()
	seedAggregate(t, bank, accrual.WeekKeyFor(at))

	svc := NewLeaderboardService(bank)

	level, err := svc.GetMemberLevel(context.Background(), memberSession())
	if err != nil {
		t.Fatalf("GetMemberLevel: %v", err)
	}
	if level.AllTimeCoins != 300 || level.AllTimeStreak != 12 {
		t.Errorf("totals = %d coins / %d streak", level.AllTimeCoins, level.AllTimeStreak)
	}
	if level.StreakLevel != accrual.LevelFromStreak(12) {
		t.Errorf("streak level = %+v", level.StreakLevel)
	}
	if level.CoinLevel != accrual.LevelFromCoins(300) {
		t.Errorf("coin level = %+v", level.CoinLevel)
	}
}

func TestGetMemberLevelUnknownMember(t *testing.T) {
	bank := coinbank.NewMemoryRepository()
	svc := NewLeaderboardService(bank)

	level, err := svc.GetMemberLevel(context.Background(), memberSession())
	if err != nil {
		t.Fatalf("GetMemberLevel: %v", err)
	}
	if level.AllTimeCoins != 0 || level.AllTimeStreak != 0 {
		t.Errorf("unknown member totals = %+v", level)
	}
	want := accrual.LevelFromStreak(0)
	if level.StreakLevel != want {
		t.Errorf("streak level = %+v, want locked fallback %+v", level.StreakLevel, want)
	}
}
