// Package streak computes habit streaks over recorded sessions.
//
// Every function is pure: it reads a snapshot of records, mutates
// nothing, and is safe to call concurrently. Results are deterministic
// regardless of input ordering.
package streak

import (
	"sort"
	"time"

	"github.com/stillapp/still/store"
)

// Current returns the number of consecutive calendar days ending at now
// that contain at least one valid session. Days are bounded in
// now's location.
//
// Today gets a grace period: an empty today anchors the count at
// yesterday instead of breaking the streak. An empty today AND an empty
// yesterday means the streak is 0.
func Current(records []store.Record, now time.Time) int {
	days := validDays(records, now.Location())
	if len(days) == 0 {
		return 0
	}

	start := dayOrdinal(now)
	if !days[start] {
		start--
	}

	count := 0
	for day := start; days[day]; day-- {
		count++
	}
	return count
}

// Longest returns the maximum run of consecutive calendar days across
// all of history containing at least one valid session. Days are
// bounded in loc.
func Longest(records []store.Record, loc *time.Location) int {
	days := validDays(records, loc)
	if len(days) == 0 {
		return 0
	}

	ordinals := make([]int, 0, len(days))
	for day := range days {
		ordinals = append(ordinals, day)
	}
	sort.Ints(ordinals)

	longest, run := 1, 1
	for i := 1; i < len(ordinals); i++ {
		if ordinals[i] == ordinals[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// MeditatedOn reports whether any valid session falls on the same
// calendar day as date, in date's location.
func MeditatedOn(date time.Time, records []store.Record) bool {
	target := dayOrdinal(date)
	for _, rec := range records {
		if !rec.Valid {
			continue
		}
		if dayOrdinal(rec.CreatedAt.In(date.Location())) == target {
			return true
		}
	}
	return false
}

// LastMeditationDate returns the start time of the most recent valid
// session. ok is false when no valid session exists.
func LastMeditationDate(records []store.Record) (last time.Time, ok bool) {
	for _, rec := range records {
		if !rec.Valid {
			continue
		}
		if !ok || rec.CreatedAt.After(last) {
			last = rec.CreatedAt
			ok = true
		}
	}
	return last, ok
}

// validDays maps day ordinals containing at least one valid session.
func validDays(records []store.Record, loc *time.Location) map[int]bool {
	days := make(map[int]bool, len(records))
	for _, rec := range records {
		if !rec.Valid {
			continue
		}
		days[dayOrdinal(rec.CreatedAt.In(loc))] = true
	}
	return days
}

// dayOrdinal numbers calendar days consecutively so that adjacent days
// differ by exactly one, independent of DST transitions.
func dayOrdinal(t time.Time) int {
	year, month, day := t.Date()
	return int(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
