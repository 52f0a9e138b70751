// Package session turns countdown events into persisted meditation
// records.
//
// A Manager owns the one-active-session invariant: at most one in-progress
// record exists system-wide. All calls serialize through the manager's
// mutex, which also makes it the single writer for the in-progress record.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/stillapp/still/internal/ids"
	"github.com/stillapp/still/store"
	"github.com/stillapp/still/timer"
)

// MinPlannedMinutes and MaxPlannedMinutes bound the accepted planned
// duration for a session.
const (
	MinPlannedMinutes = 1
	MaxPlannedMinutes = 120
)

// Record is one meditation session record.
type Record = store.Record

// Manager coordinates the countdown engine and the persistence gateway.
type Manager struct {
	mu      sync.Mutex
	engine  *timer.Engine
	gateway *store.Gateway

	activeID string

	now   func() time.Time
	newID func(at time.Time) string
}

// Open creates a manager over the given engine and gateway. A stale
// in-progress record left behind by an interrupted process is deleted:
// its final timing figures were lost with the process, so it can never be
// finalized. The deleted record's ID is returned for display, if any.
func Open(engine *timer.Engine, gateway *store.Gateway) (*Manager, string, error) {
	m := &Manager{
		engine:  engine,
		gateway: gateway,
		now:     time.Now,
		newID: func(at time.Time) string {
			return ids.GenerateWithTimestamp("session", at, ids.DefaultLength)
		},
	}

	stale, ok, err := gateway.Active()
	if err != nil {
		return nil, "", fmt.Errorf("find stale session: %w", err)
	}
	if !ok {
		return m, "", nil
	}
	if err := gateway.Delete(stale.ID); err != nil {
		return nil, "", fmt.Errorf("discard stale session %s: %w", stale.ID, err)
	}
	return m, stale.ID, nil
}

// Start begins a new session with the given planned duration.
//
// Starting while a session is active fails with ErrSessionActive rather
// than replacing the active session; callers that want replacement cancel
// explicitly first.
func (m *Manager) Start(plannedMinutes int) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if plannedMinutes < MinPlannedMinutes || plannedMinutes > MaxPlannedMinutes {
		return Record{}, fmt.Errorf("%w: %d minutes (valid: %d-%d)",
			ErrInvalidDuration, plannedMinutes, MinPlannedMinutes, MaxPlannedMinutes)
	}
	if m.activeID != "" {
		return Record{}, ErrSessionActive
	}

	now := m.now()
	rec := Record{
		ID:             m.newID(now),
		PlannedMinutes: plannedMinutes,
		CreatedAt:      now,
	}
	if err := m.gateway.Create(rec); err != nil {
		return Record{}, fmt.Errorf("create session record: %w", err)
	}

	m.engine.Start(plannedMinutes * 60)
	m.activeID = rec.ID
	return rec, nil
}

// Pause freezes the countdown. The pause is recorded on the in-progress
// record exactly once per pause event that takes effect; pausing an
// already-paused or completed countdown changes nothing.
func (m *Manager) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == "" {
		return ErrNoActiveSession
	}
	if !m.engine.Pause() {
		return nil
	}

	rec, err := m.gateway.Get(m.activeID)
	if err != nil {
		return fmt.Errorf("load active session: %w", err)
	}
	rec.PauseCount++
	rec.WasPaused = true
	if err := m.gateway.Update(rec); err != nil {
		return fmt.Errorf("record pause: %w", err)
	}
	return nil
}

// Resume restarts a paused countdown.
func (m *Manager) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == "" {
		return ErrNoActiveSession
	}
	m.engine.Resume()
	return nil
}

// End finalizes the active session: it freezes the countdown, computes
// actual and elapsed minutes and the validity flag, stamps the completion
// time, persists the record, and resets the engine to idle.
func (m *Manager) End() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == "" {
		return Record{}, ErrNoActiveSession
	}

	m.engine.Stop()
	actualSeconds := m.engine.ActualSeconds()
	snap := m.engine.Snapshot()

	rec, err := m.gateway.Get(m.activeID)
	if err != nil {
		return Record{}, fmt.Errorf("load active session: %w", err)
	}
	rec.ActualMinutes = float64(actualSeconds) / 60
	rec.ElapsedMinutes = float64(snap.Elapsed) / 60
	rec.Valid = store.ValidActualSeconds(actualSeconds)
	rec.CompletedAt = m.now()
	if err := m.gateway.Update(rec); err != nil {
		return Record{}, fmt.Errorf("finalize session: %w", err)
	}

	m.engine.Reset()
	m.activeID = ""
	return rec, nil
}

// Cancel abandons the active session without recording it. Used when the
// sitter gives up before the validity floor and does not want the attempt
// kept.
func (m *Manager) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == "" {
		return ErrNoActiveSession
	}
	if err := m.gateway.Delete(m.activeID); err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	m.engine.Reset()
	m.activeID = ""
	return nil
}

// HasActive reports whether a session is in progress.
func (m *Manager) HasActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.activeID != ""
}

// Active returns the in-progress record, if any.
func (m *Manager) Active() (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == "" {
		return Record{}, false, nil
	}
	rec, err := m.gateway.Get(m.activeID)
	if err != nil {
		return Record{}, false, fmt.Errorf("load active session: %w", err)
	}
	return rec, true, nil
}

// Snapshot exposes the countdown state for display.
func (m *Manager) Snapshot() timer.Snapshot {
	return m.engine.Snapshot()
}
