package leaderboard

import "kriyaConnectAPI/internal/accrual"

type Entry struct {
	UserID    string            `json:"user_id"`
	UserName  string            `json:"user_name"`
	UserImage string            `json:"user_image,omitempty"`
	Coins     int               `json:"coins"`
	Streak    int               `json:"streak"`
	Rank      int               `json:"rank"`
	Level     accrual.CoinLevel `json:"level"`
}

type Board struct {
	Entries      []*Entry `json:"entries"`
	UserPosition *Entry   `json:"user_position,omitempty"`
	TotalUsers   int      `json:"total_users"`
}

type Response struct {
	WeekKey string `json:"week_key"`
	Weekly  *Board `json:"weekly"`
	AllTime *Board `json:"all_time"`
}

// MemberLevel is the caller's own standing on both level axes.
type MemberLevel struct {
	AllTimeCoins  int                 `json:"all_time_coins"`
	AllTimeStreak int                 `json:"all_time_streak"`
	StreakLevel   accrual.StreakLevel `json:"streak_level"`
	CoinLevel     accrual.CoinLevel   `json:"coin_level"`
}
