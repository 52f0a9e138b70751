package streak

import (
	"math"
	"testing"
	"time"

	"github.com/stillapp/still/store"
)

// now is fixed mid-afternoon so day arithmetic is unambiguous.
var now = time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

// onDay returns a valid record created daysAgo days before now.
func onDay(daysAgo int) store.Record {
	createdAt := now.AddDate(0, 0, -daysAgo).Add(-2 * time.Hour)
	return store.Record{
		ID:             createdAt.Format("20060102t150405"),
		PlannedMinutes: 10,
		ActualMinutes:  10,
		ElapsedMinutes: 10,
		Valid:          true,
		CreatedAt:      createdAt,
		CompletedAt:    createdAt.Add(10 * time.Minute),
	}
}

func invalidOnDay(daysAgo int) store.Record {
	rec := onDay(daysAgo)
	rec.ActualMinutes = 0.1
	rec.ElapsedMinutes = 0.1
	rec.Valid = false
	return rec
}

func records(daysAgo ...int) []store.Record {
	recs := make([]store.Record, 0, len(daysAgo))
	for _, d := range daysAgo {
		recs = append(recs, onDay(d))
	}
	return recs
}

func TestCurrentStreakContinuity(t *testing.T) {
	cases := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{name: "empty", daysAgo: nil, want: 0},
		{name: "today only", daysAgo: []int{0}, want: 1},
		{name: "five consecutive days", daysAgo: []int{0, 1, 2, 3, 4}, want: 5},
		{name: "gap before trailing run", daysAgo: []int{0, 1, 3, 4, 5}, want: 2},
		{name: "gap at yesterday", daysAgo: []int{0, 2, 3, 4, 5}, want: 1},
		{name: "only old run", daysAgo: []int{3, 4, 5}, want: 0},
		{name: "multiple sessions per day", daysAgo: []int{0, 0, 1, 1}, want: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Current(records(tc.daysAgo...), now); got != tc.want {
				t.Errorf("Current = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCurrentStreakGraceDay(t *testing.T) {
	// Nothing today; yesterday and the two days before count.
	if got := Current(records(1, 2, 3), now); got != 3 {
		t.Errorf("Current = %d, want 3", got)
	}
	// Nothing today or yesterday breaks the streak.
	if got := Current(records(2, 3, 4), now); got != 0 {
		t.Errorf("Current = %d, want 0", got)
	}
}

func TestCurrentStreakIgnoresInvalidSessions(t *testing.T) {
	recs := []store.Record{onDay(0), invalidOnDay(1), onDay(2)}
	if got := Current(recs, now); got != 1 {
		t.Errorf("Current = %d, want 1", got)
	}
}

func TestCurrentStreakOrderIndependent(t *testing.T) {
	forward := records(0, 1, 2, 3)
	backward := records(3, 2, 1, 0)
	if Current(forward, now) != Current(backward, now) {
		t.Error("Current depends on input ordering")
	}
}

func TestLongestStreak(t *testing.T) {
	cases := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{name: "empty", daysAgo: nil, want: 0},
		{name: "single day", daysAgo: []int{7}, want: 1},
		{name: "historic run longer than current", daysAgo: []int{0, 3, 4, 5}, want: 3},
		{name: "two equal runs", daysAgo: []int{0, 1, 5, 6}, want: 2},
		{name: "all consecutive", daysAgo: []int{0, 1, 2, 3, 4, 5}, want: 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Longest(records(tc.daysAgo...), time.UTC); got != tc.want {
				t.Errorf("Longest = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCurrentCountsOnlyTrailingRun(t *testing.T) {
	// Records on days 0, 1, 3, 4, 5: the older three-day run is
	// disconnected from today by the empty day 2.
	recs := records(0, 1, 3, 4, 5)
	if got := Current(recs, now); got != 2 {
		t.Errorf("Current = %d, want 2", got)
	}
	if got := Longest(recs, time.UTC); got != 3 {
		t.Errorf("Longest = %d, want 3", got)
	}
}

func TestMeditatedOn(t *testing.T) {
	recs := records(0, 2)

	if !MeditatedOn(now, recs) {
		t.Error("expected meditation today")
	}
	if MeditatedOn(now.AddDate(0, 0, -1), recs) {
		t.Error("unexpected meditation yesterday")
	}
	if !MeditatedOn(now.AddDate(0, 0, -2), recs) {
		t.Error("expected meditation two days ago")
	}
	if MeditatedOn(now, []store.Record{invalidOnDay(0)}) {
		t.Error("invalid session counted")
	}
}

func TestLastMeditationDate(t *testing.T) {
	if _, ok := LastMeditationDate(nil); ok {
		t.Error("expected no last date for empty records")
	}
	if _, ok := LastMeditationDate([]store.Record{invalidOnDay(0)}); ok {
		t.Error("expected no last date with only invalid records")
	}

	recs := records(5, 1, 3)
	last, ok := LastMeditationDate(recs)
	if !ok {
		t.Fatal("expected a last date")
	}
	want := onDay(1).CreatedAt
	if !last.Equal(want) {
		t.Errorf("last = %v, want %v", last, want)
	}
}

func TestStreakAcrossLocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 01:00 local on the 29th is 15:00 UTC on the 28th; grouping must
	// follow the local day boundary, not UTC.
	localNow := time.Date(2026, 8, 29, 1, 0, 0, 0, loc)
	rec := store.Record{
		ID:        "night",
		Valid:     true,
		CreatedAt: time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC),
	}
	if got := Current([]store.Record{rec}, localNow); got != 1 {
		t.Errorf("Current = %d, want 1 (record is today in local time)", got)
	}
}

func TestLargeHistoryIsLinearish(t *testing.T) {
	// Thousands of records spanning years stay correct.
	recs := make([]store.Record, 0, 4000)
	for day := 0; day < 2000; day++ {
		recs = append(recs, onDay(day), onDay(day))
	}
	if got := Current(recs, now); got != 2000 {
		t.Errorf("Current = %d, want 2000", got)
	}
	if got := Longest(recs, time.UTC); got != 2000 {
		t.Errorf("Longest = %d, want 2000", got)
	}
}

func TestSummarize(t *testing.T) {
	paused := onDay(1)
	paused.WasPaused = true
	paused.PauseCount = 2

	inProgress := store.Record{ID: "active", PlannedMinutes: 10, CreatedAt: now}

	s := Summarize([]store.Record{onDay(0), paused, invalidOnDay(2), inProgress})
	if s.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, want 3", s.TotalSessions)
	}
	if s.ValidSessions != 2 {
		t.Errorf("ValidSessions = %d, want 2", s.ValidSessions)
	}
	if s.PausedSessions != 1 {
		t.Errorf("PausedSessions = %d, want 1", s.PausedSessions)
	}
	if want := 20.1; math.Abs(s.TotalMinutes-want) > 1e-9 {
		t.Errorf("TotalMinutes = %v, want %v", s.TotalMinutes, want)
	}
}
