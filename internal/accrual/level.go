package accrual

import "math"

// StreakLevel is the cosmetic practice band derived from streak length.
type StreakLevel struct {
	Category string  `json:"category"`
	SubLevel string  `json:"sub_level"`
	Progress float64 `json:"progress"`
}

type streakBand struct {
	minDays  int
	maxDays  int
	category string
	subLevel string
}

// Practice bands by consecutive days. The top band is unbounded.
var streakBands = []streakBand{
	{1, 7, "Beginner", "Stage I"},
	{8, 14, "Beginner", "Stage II"},
	{15, 21, "Beginner", "Stage III"},
	{22, 45, "Seeker", "Stage I"},
	{46, 90, "Seeker", "Stage II"},
	{91, 180, "Sadhak", "Stage I"},
	{181, 365, "Sadhak", "Stage II"},
	{366, math.MaxInt32, "Master", "Stage I"},
}

// LevelFromStreak maps a streak to its band and the fraction of the band
// already covered. The unbounded top band always reports full progress. A
// streak below every band (zero or negative) falls back to a locked
// beginner level.
func LevelFromStreak(streak int) StreakLevel {
	for _, b := range streakBands {
		if streak < b.minDays || streak > b.maxDays {
			continue
		}
		if b.maxDays == math.MaxInt32 {
			return StreakLevel{Category: b.category, SubLevel: b.subLevel, Progress: 1}
		}
		progress := float64(streak-b.minDays+1) / float64(b.maxDays-b.minDays+1)
		if progress > 1 {
			progress = 1
		}
		return StreakLevel{Category: b.category, SubLevel: b.subLevel, Progress: progress}
	}
	return StreakLevel{Category: "Beginner", SubLevel: "Locked", Progress: 0}
}

// CoinLevel is the cosmetic rank derived from lifetime coins. It is a
// different axis than StreakLevel even though the UI calls both "level".
type CoinLevel struct {
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	MinCoins int    `json:"min_coins"`
}

// Descending thresholds; the first entry whose MinCoins is covered wins.
var coinLevels = []CoinLevel{
	{"Enlightened", "🌟", 10000},
	{"Radiant", "🌞", 5000},
	{"Devoted", "🪷", 2500},
	{"Steady", "🔥", 1000},
	{"Rising", "🌱", 250},
	{"New Moon", "🌘", 0},
}

// LevelFromCoins maps a lifetime coin total to its rank. Negative totals
// land on the lowest rank.
func LevelFromCoins(total int) CoinLevel {
	for _, l := range coinLevels {
		if total >= l.MinCoins {
			return l
		}
	}
	return coinLevels[len(coinLevels)-1]
}

// StreakMilestones are the streak values that trigger a celebration push.
var StreakMilestones = []int{7, 21, 90, 365}

// IsMilestone reports whether the streak just reached a milestone.
func IsMilestone(streak int) bool {
	for _, m := range StreakMilestones {
		if streak == m {
			return true
		}
	}
	return false
}
