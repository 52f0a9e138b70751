// Package timer implements the countdown engine for meditation sessions.
//
// An Engine owns a single countdown at a time. All mutable state lives
// behind one mutex; the tick loop goroutine and every control call
// serialize through it, so remaining/elapsed can never be observed
// mid-update. Replacing or cancelling a countdown bumps a generation
// counter that fences off the old tick loop: once Stop, Reset, or a new
// Start returns, the superseded loop can no longer mutate anything.
package timer

import (
	"sync"
	"time"
)

// Phase is the lifecycle state of a countdown.
type Phase string

const (
	// PhaseIdle means no countdown has been started.
	PhaseIdle Phase = "idle"
	// PhaseRunning means the countdown is ticking.
	PhaseRunning Phase = "running"
	// PhasePaused means the countdown is frozen mid-run.
	PhasePaused Phase = "paused"
	// PhaseCompleted means the countdown reached zero or was stopped.
	PhaseCompleted Phase = "completed"
)

// Snapshot is a consistent view of the countdown, in whole seconds.
type Snapshot struct {
	Phase     Phase
	Total     int
	Remaining int
	Elapsed   int
}

// Progress returns elapsed over total, clamped to [0, 1].
// A non-positive total yields 0.
func (s Snapshot) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	ratio := float64(s.Elapsed) / float64(s.Total)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Engine is a countdown timer with pause/resume.
//
// Control signals issued out of phase (pausing while idle, resuming while
// running, stopping twice) are no-ops, never errors. UI callers may race
// against natural completion and must not be punished for it.
type Engine struct {
	mu         sync.Mutex
	phase      Phase
	total      int
	remaining  int
	elapsed    int
	generation uint64
	interval   time.Duration
}

// New returns an idle engine ticking at one-second intervals.
func New() *Engine {
	return NewWithInterval(time.Second)
}

// NewWithInterval returns an idle engine with a custom tick interval.
// Intervals below one millisecond are raised to one millisecond.
func NewWithInterval(interval time.Duration) *Engine {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return &Engine{phase: PhaseIdle, interval: interval}
}

// Start begins a countdown of totalSeconds. Any countdown already in
// flight is cancelled and replaced; its timing data is discarded.
//
// Non-positive durations are accepted: the countdown starts Running with
// zero remaining and completes on the next tick, never instantly, so
// observers always see the Running phase.
func (e *Engine) Start(totalSeconds int) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.phase = PhaseRunning
	e.total = totalSeconds
	e.remaining = totalSeconds
	if e.remaining < 0 {
		e.remaining = 0
	}
	e.elapsed = 0
	e.mu.Unlock()

	go e.run(gen)
}

// Pause freezes the countdown. Only effective while Running; reports
// whether the signal took effect. Wall-clock time spent paused is never
// counted toward remaining or elapsed.
func (e *Engine) Pause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseRunning {
		return false
	}
	e.phase = PhasePaused
	return true
}

// Resume restarts a paused countdown from its frozen values. Only
// effective while Paused; reports whether the signal took effect.
func (e *Engine) Resume() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhasePaused {
		return false
	}
	e.phase = PhaseRunning
	return true
}

// Stop freezes the current values and completes the countdown. Only
// effective while Running or Paused. No further state mutation occurs
// after Stop returns.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseRunning && e.phase != PhasePaused {
		return false
	}
	e.generation++
	e.phase = PhaseCompleted
	return true
}

// Reset cancels any countdown and returns the engine to Idle with zeroed
// counters. No further state mutation occurs after Reset returns.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	e.phase = PhaseIdle
	e.total = 0
	e.remaining = 0
	e.elapsed = 0
}

// Snapshot returns a consistent view of the countdown.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Phase:     e.phase,
		Total:     e.total,
		Remaining: e.remaining,
		Elapsed:   e.elapsed,
	}
}

// ActualSeconds returns elapsed capped at total, guarding against any
// accumulation drift past the planned duration. This is the figure a
// finalized session records as meditated time.
func (e *Engine) ActualSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	limit := e.total
	if limit < 0 {
		limit = 0
	}
	if e.elapsed > limit {
		return limit
	}
	return e.elapsed
}

// run is the tick loop for one countdown generation. It exits as soon as
// the generation is superseded or the countdown completes.
func (e *Engine) run(gen uint64) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for range ticker.C {
		if e.tick(gen) {
			return
		}
	}
}

// tick advances the countdown by one second. It returns true when the
// loop should exit. A paused engine skips the tick without mutating
// counters.
func (e *Engine) tick(gen uint64) (done bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		return true
	}
	if e.phase == PhasePaused {
		return false
	}
	if e.phase != PhaseRunning {
		return true
	}

	if e.remaining > 0 {
		e.remaining--
		e.elapsed++
	}
	if e.remaining <= 0 {
		e.phase = PhaseCompleted
		return true
	}
	return false
}
