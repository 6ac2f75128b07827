package accrual

import "time"

// Completion is one recorded calendar-day completion of a challenge.
type Completion struct {
	Date   string `json:"date" firestore:"date"`
	Status bool   `json:"status" firestore:"status"`
}

// LookupStrategy selects how RecordCompletion decides whether yesterday was
// completed. The two strategies agree on well-ordered history but diverge
// when entries are out of order, and different call sites historically used
// different ones, so the choice is made per call site and never unified.
type LookupStrategy int

const (
	// LookupScan searches the full history for yesterday's date.
	LookupScan LookupStrategy = iota
	// LookupTail only checks the entry directly before the one just
	// appended, i.e. history[len-2].
	LookupTail
)

// CompletionResult is the outcome of recording a completion.
type CompletionResult struct {
	History     []Completion
	Streak      int
	AlreadyDone bool
}

// RecordCompletion marks today as completed. If today is already present in
// history, nothing is mutated and AlreadyDone is set; the caller must not
// award coins for that call. Otherwise the entry is appended and the streak
// continues from streakIn when yesterday is found under the given strategy,
// or resets to 1 on any gap (including the very first completion).
//
// The streak is carried state: it is never re-derived from the full history.
func RecordCompletion(history []Completion, streakIn int, today time.Time, strategy LookupStrategy) CompletionResult {
	todayKey := DateKey(today)
	for _, e := range history {
		if e.Date == todayKey {
			return CompletionResult{History: history, Streak: streakIn, AlreadyDone: true}
		}
	}

	history = append(history, Completion{Date: todayKey, Status: true})

	yesterdayKey := DateKey(today.AddDate(0, 0, -1))
	continued := false
	switch strategy {
	case LookupTail:
		if len(history) >= 2 && history[len(history)-2].Date == yesterdayKey {
			continued = true
		}
	default:
		for _, e := range history {
			if e.Date == yesterdayKey {
				continued = true
				break
			}
		}
	}

	streak := 1
	if continued {
		if streakIn < 0 {
			streakIn = 0
		}
		streak = streakIn + 1
	}

	return CompletionResult{History: history, Streak: streak}
}
