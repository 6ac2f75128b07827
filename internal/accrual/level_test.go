package accrual

import "testing"

func TestLevelFromStreakZeroFallsBack(t *testing.T) {
	got := LevelFromStreak(0)
	if got.Category != "Beginner" || got.SubLevel != "Locked" || got.Progress != 0 {
		t.Errorf("expected locked beginner fallback, got %+v", got)
	}
}

func TestLevelFromStreakBandEdges(t *testing.T) {
	first := LevelFromStreak(1)
	if first.Category != "Beginner" || first.SubLevel != "Stage I" {
		t.Errorf("streak 1: expected Beginner Stage I, got %+v", first)
	}

	// At a band's maxDays progress is exactly 1.
	atMax := LevelFromStreak(7)
	if atMax.Progress != 1 {
		t.Errorf("streak 7: expected progress 1, got %f", atMax.Progress)
	}

	next := LevelFromStreak(8)
	if next.SubLevel != "Stage II" {
		t.Errorf("streak 8: expected Stage II, got %+v", next)
	}
	wantProgress := 1.0 / 7.0
	if diff := next.Progress - wantProgress; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("streak 8: expected progress %f, got %f", wantProgress, next.Progress)
	}
}

func TestLevelFromStreakTopBandIsFull(t *testing.T) {
	for _, streak := range []int{366, 1000, 100000} {
		got := LevelFromStreak(streak)
		if got.Category != "Master" || got.Progress != 1 {
			t.Errorf("streak %d: expected Master at full progress, got %+v", streak, got)
		}
	}
}

func TestLevelFromStreakNegativeFallsBack(t *testing.T) {
	got := LevelFromStreak(-3)
	if got.SubLevel != "Locked" {
		t.Errorf("negative streak should fall back, got %+v", got)
	}
}

func TestLevelFromCoinsThresholds(t *testing.T) {
	tests := []struct {
		coins int
		want  string
	}{
		{0, "New Moon"},
		{249, "New Moon"},
		{250, "Rising"},
		{999, "Rising"},
		{1000, "Steady"},
		{2500, "Devoted"},
		{5000, "Radiant"},
		{10000, "Enlightened"},
		{250000, "Enlightened"},
		{-5, "New Moon"},
	}
	for _, tt := range tests {
		if got := LevelFromCoins(tt.coins); got.Name != tt.want {
			t.Errorf("LevelFromCoins(%d): expected %s, got %s", tt.coins, tt.want, got.Name)
		}
	}
}

func TestIsMilestone(t *testing.T) {
	for _, m := range StreakMilestones {
		if !IsMilestone(m) {
			t.Errorf("expected %d to be a milestone", m)
		}
	}
	for _, s := range []int{0, 1, 8, 22, 100} {
		if IsMilestone(s) {
			t.Errorf("did not expect %d to be a milestone", s)
		}
	}
}
