package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"kriyaConnectAPI/internal/accrual"
	"kriyaConnectAPI/internal/coinbank"
	"kriyaConnectAPI/internal/types/leaderboard"
	"kriyaConnectAPI/internal/types/session"
)

type LeaderboardService struct {
	coinbank coinbank.Repository

	now func() time.Time
}

func NewLeaderboardService(bank coinbank.Repository) *LeaderboardService {
	return &LeaderboardService{coinbank: bank, now: time.Now}
}

// GetLeaderboards builds the weekly and all-time boards for the caller's
// teacher network. The weekly board reads the bucket for the current week
// key; members without that bucket score zero.
func (s *LeaderboardService) GetLeaderboards(ctx context.Context, sess session.Session) (*leaderboard.Response, error) {
	if sess.TeacherID == "" {
		return nil, fmt.Errorf("%w: the user is not part of a teacher network", ErrInvalidInput)
	}

	agg, err := s.coinbank.Get(ctx, sess.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coin aggregate: %w", err)
	}

	weekKey := accrual.WeekKeyFor(s.now())

	weekly := buildBoard(agg.Members, sess.UserID, func(m *accrual.MemberTotals) accrual.Totals {
		if w := m.Weekly[weekKey]; w != nil {
			return *w
		}
		return accrual.Totals{}
	})
	allTime := buildBoard(agg.Members, sess.UserID, func(m *accrual.MemberTotals) accrual.Totals {
		return m.AllTime
	})

	return &leaderboard.Response{
		WeekKey: weekKey,
		Weekly:  weekly,
		AllTime: allTime,
	}, nil
}

// GetMemberLevel reports the caller's standing on both level axes: practice
// bands from the all-time streak and coin ranks from lifetime coins.
func (s *LeaderboardService) GetMemberLevel(ctx context.Context, sess session.Session) (*leaderboard.MemberLevel, error) {
	if sess.TeacherID == "" {
		return nil, fmt.Errorf("%w: the user is not part of a teacher network", ErrInvalidInput)
	}

	agg, err := s.coinbank.Get(ctx, sess.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coin aggregate: %w", err)
	}

	var totals accrual.Totals
	if m := agg.Member(sess.UserID); m != nil {
		totals = m.AllTime
	}

	return &leaderboard.MemberLevel{
		AllTimeCoins:  totals.Coins,
		AllTimeStreak: totals.Streak,
		StreakLevel:   accrual.LevelFromStreak(totals.Streak),
		CoinLevel:     accrual.LevelFromCoins(totals.Coins),
	}, nil
}

func buildBoard(members []*accrual.MemberTotals, userID string, totalsOf func(*accrual.MemberTotals) accrual.Totals) *leaderboard.Board {
	entries := make([]*leaderboard.Entry, 0, len(members))
	for _, m := range members {
		totals := totalsOf(m)
		entries = append(entries, &leaderboard.Entry{
			UserID:    m.UserID,
			UserName:  m.UserName,
			UserImage: m.UserImage,
			Coins:     totals.Coins,
			Streak:    totals.Streak,
			Level:     accrual.LevelFromCoins(totals.Coins),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Coins != entries[j].Coins {
			return entries[i].Coins > entries[j].Coins
		}
		return entries[i].Streak > entries[j].Streak
	})

	board := &leaderboard.Board{Entries: entries, TotalUsers: len(entries)}
	for i, e := range entries {
		e.Rank = i + 1
		if e.UserID == userID {
			board.UserPosition = e
		}
	}
	return board
}
