package accrual

import "strings"

// GroupKriyaCoins is the flat reward for teacher-marked group kriya
// attendance. It bypasses the streak tier table used by the self-service
// kriya flow; the two paths pay differently and must not be unified without
// a product decision.
const GroupKriyaCoins = 15

const defaultCoins = 10

// CoinsForCompletion returns the reward for a self-service completion of the
// named challenge at the given (already updated) streak. Names are matched
// case-insensitively; unknown challenges pay a flat default.
func CoinsForCompletion(challengeName string, streak int) int {
	switch strings.ToLower(strings.TrimSpace(challengeName)) {
	case "meditation":
		return tierCoins(streak, 4, 5, 6, 7)
	case "kriya":
		return tierCoins(streak, 5, 7, 9, 10)
	default:
		return defaultCoins
	}
}

func tierCoins(streak, upTo10, upTo15, upTo21, above int) int {
	switch {
	case streak <= 10:
		return upTo10
	case streak <= 15:
		return upTo15
	case streak <= 21:
		return upTo21
	default:
		return above
	}
}

// Totals is a coin/streak pair, used both for weekly buckets and for the
// all-time aggregate.
type Totals struct {
	Coins  int `json:"coins" firestore:"coins"`
	Streak int `json:"streak" firestore:"streak"`
}

// MemberSnapshot identifies a member at reward time. Name, image and role
// are snapshotted into the aggregate on first reward and not re-synced.
type MemberSnapshot struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserImage string `json:"user_image"`
	UserRole  string `json:"user_role"`
}

// MemberTotals is one member's entry in a teacher network's coin aggregate.
type MemberTotals struct {
	UserID    string             `json:"user_id" firestore:"userId"`
	UserName  string             `json:"user_name" firestore:"userName"`
	UserImage string             `json:"user_image" firestore:"userImage"`
	UserRole  string             `json:"user_role" firestore:"userRole"`
	Weekly    map[string]*Totals `json:"weekly" firestore:"weekly"`
	AllTime   Totals             `json:"all_time" firestore:"allTime"`
}

// ApplyReward folds one reward into the aggregate's member list and returns
// the (possibly grown) list. The member entry and the week bucket are
// created lazily. Weekly coins accumulate; the weekly streak is overwritten,
// last write wins. AllTime.Coins only ever grows and AllTime.Streak is the
// running maximum of every streak observed.
func ApplyReward(members []*MemberTotals, member MemberSnapshot, weekKey string, coins, newStreak int) []*MemberTotals {
	if coins < 0 {
		coins = 0
	}
	if newStreak < 0 {
		newStreak = 0
	}

	var entry *MemberTotals
	for _, m := range members {
		if m.UserID == member.UserID {
			entry = m
			break
		}
	}
	if entry == nil {
		entry = &MemberTotals{
			UserID:    member.UserID,
			UserName:  member.UserName,
			UserImage: member.UserImage,
			UserRole:  member.UserRole,
			Weekly:    make(map[string]*Totals),
		}
		members = append(members, entry)
	}
	if entry.Weekly == nil {
		entry.Weekly = make(map[string]*Totals)
	}

	week := entry.Weekly[weekKey]
	if week == nil {
		week = &Totals{}
		entry.Weekly[weekKey] = week
	}

	week.Coins += coins
	week.Streak = newStreak
	entry.AllTime.Coins += coins
	if newStreak > entry.AllTime.Streak {
		entry.AllTime.Streak = newStreak
	}

	return members
}
