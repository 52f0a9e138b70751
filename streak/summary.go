package streak

import "github.com/stillapp/still/store"

// Summary aggregates finalized sessions for reporting.
type Summary struct {
	// TotalSessions counts finalized sessions, valid or not.
	TotalSessions int
	// ValidSessions counts finalized sessions meeting the validity floor.
	ValidSessions int
	// PausedSessions counts finalized sessions paused at least once.
	PausedSessions int
	// TotalMinutes sums actual meditated minutes across finalized sessions.
	TotalMinutes float64
}

// Summarize aggregates records into a Summary. In-progress records are
// excluded; they have no final timing figures yet.
func Summarize(records []store.Record) Summary {
	var s Summary
	for _, rec := range records {
		if rec.InProgress() {
			continue
		}
		s.TotalSessions++
		if rec.Valid {
			s.ValidSessions++
		}
		if rec.WasPaused {
			s.PausedSessions++
		}
		s.TotalMinutes += rec.ActualMinutes
	}
	return s
}
