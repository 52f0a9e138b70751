package store

import "time"

// MinValidSeconds is the floor of actual meditated time below which a
// session does not count toward streaks.
const MinValidSeconds = 15

// SyncFlags tracks which downstream systems have consumed a record.
// Flags only ever flip from false to true; the core never reads them.
type SyncFlags struct {
	Health bool
	Cloud  bool
}

// Record is one meditation session, in progress or finalized.
type Record struct {
	// ID is assigned at creation and never changes.
	ID string

	// PlannedMinutes is the user-requested duration, 1-120.
	PlannedMinutes int

	// ActualMinutes is the time actually meditated, excluding pauses.
	ActualMinutes float64

	// ElapsedMinutes is the running time from start to end. Ticks only
	// advance while running, so pauses are excluded here too.
	ElapsedMinutes float64

	// Valid reports whether ActualMinutes meets the validity floor.
	Valid bool

	// CreatedAt is when the session began.
	CreatedAt time.Time

	// CompletedAt is when the session ended; zero while in progress.
	CompletedAt time.Time

	// WasPaused is true when the session was paused at least once.
	WasPaused bool

	// PauseCount counts pause events, one per pause call that took effect.
	PauseCount int

	// Synced records downstream consumption of the finalized record.
	Synced SyncFlags
}

// InProgress reports whether the record has not been finalized.
func (r Record) InProgress() bool {
	return r.CompletedAt.IsZero()
}

// ValidActualSeconds reports whether a meditated duration in seconds
// meets the validity floor.
func ValidActualSeconds(seconds int) bool {
	return seconds >= MinValidSeconds
}
