package accrual

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		t.Fatalf("bad test date %s: %v", s, err)
	}
	return d
}

func TestRecordCompletionFirstEver(t *testing.T) {
	res := RecordCompletion(nil, 0, mustDate(t, "2024-01-01"), LookupScan)
	if res.AlreadyDone {
		t.Fatal("first completion should not be flagged as already done")
	}
	if res.Streak != 1 {
		t.Errorf("expected streak 1, got %d", res.Streak)
	}
	if len(res.History) != 1 || res.History[0].Date != "2024-01-01" || !res.History[0].Status {
		t.Errorf("unexpected history: %+v", res.History)
	}
}

func TestRecordCompletionContinuesStreak(t *testing.T) {
	history := []Completion{{Date: "2024-01-01", Status: true}}
	res := RecordCompletion(history, 1, mustDate(t, "2024-01-02"), LookupScan)
	if res.Streak != 2 {
		t.Errorf("expected streak 2, got %d", res.Streak)
	}
}

func TestRecordCompletionResetsOnGap(t *testing.T) {
	history := []Completion{{Date: "2024-01-01", Status: true}}
	res := RecordCompletion(history, 1, mustDate(t, "2024-01-05"), LookupScan)
	if res.Streak != 1 {
		t.Errorf("expected streak reset to 1, got %d", res.Streak)
	}
	if len(res.History) != 2 {
		t.Errorf("expected history of 2, got %d", len(res.History))
	}
}

func TestRecordCompletionIdempotentForToday(t *testing.T) {
	today := mustDate(t, "2024-03-10")
	first := RecordCompletion(nil, 0, today, LookupScan)
	second := RecordCompletion(first.History, first.Streak, today, LookupScan)

	if !second.AlreadyDone {
		t.Fatal("second completion on the same day should report already done")
	}
	if len(second.History) != len(first.History) {
		t.Errorf("history mutated on duplicate completion: %d -> %d", len(first.History), len(second.History))
	}
	if second.Streak != first.Streak {
		t.Errorf("streak changed on duplicate completion: %d -> %d", first.Streak, second.Streak)
	}
}

func TestLookupStrategiesDivergeOnOutOfOrderHistory(t *testing.T) {
	// Yesterday is present but not adjacent to the tail: the scan strategy
	// continues the streak, the positional strategy resets it.
	history := []Completion{
		{Date: "2024-01-03", Status: true},
		{Date: "2024-01-01", Status: true},
	}
	today := mustDate(t, "2024-01-04")

	scan := RecordCompletion(history, 2, today, LookupScan)
	tail := RecordCompletion(history, 2, today, LookupTail)

	if scan.Streak != 3 {
		t.Errorf("scan strategy: expected streak 3, got %d", scan.Streak)
	}
	if tail.Streak != 1 {
		t.Errorf("tail strategy: expected streak 1, got %d", tail.Streak)
	}
}

func TestLookupTailOnOrderedHistory(t *testing.T) {
	history := []Completion{
		{Date: "2024-01-01", Status: true},
		{Date: "2024-01-02", Status: true},
	}
	res := RecordCompletion(history, 2, mustDate(t, "2024-01-03"), LookupTail)
	if res.Streak != 3 {
		t.Errorf("expected streak 3 on ordered history, got %d", res.Streak)
	}
}

func TestRecordCompletionClampsNegativeStreak(t *testing.T) {
	history := []Completion{{Date: "2024-01-01", Status: true}}
	res := RecordCompletion(history, -5, mustDate(t, "2024-01-02"), LookupScan)
	if res.Streak != 1 {
		t.Errorf("expected corrupted streak to restart at 1, got %d", res.Streak)
	}
}
