package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

// Mode identifies the persistence tier currently in use.
type Mode string

const (
	// ModeSynced means records are written to the sync-managed database.
	ModeSynced Mode = "synced"
	// ModeLocalOnly means records are durable on this device only.
	ModeLocalOnly Mode = "local-only"
	// ModeVolatile means records do not survive process restart.
	ModeVolatile Mode = "volatile"
	// ModeUnavailable means no tier has been chosen yet.
	ModeUnavailable Mode = "unavailable"
)

// Status bundles the active mode with the reason it was chosen, so a
// stale reason can never outlive the mode it belongs to.
type Status struct {
	Mode   Mode
	Reason string
}

// Description returns a human-readable status line for display.
func (s Status) Description() string {
	switch s.Mode {
	case ModeSynced:
		return "synced across devices"
	case ModeLocalOnly:
		if s.Reason == "" {
			return "stored on this device only"
		}
		return fmt.Sprintf("stored on this device only (%s)", s.Reason)
	case ModeVolatile:
		if s.Reason == "" {
			return "in memory only; sessions will not survive restart"
		}
		return fmt.Sprintf("in memory only; sessions will not survive restart (%s)", s.Reason)
	default:
		if s.Reason == "" {
			return "storage unavailable"
		}
		return fmt.Sprintf("storage unavailable (%s)", s.Reason)
	}
}

// DefaultProbeTimeout bounds the sync account probe.
const DefaultProbeTimeout = 3 * time.Second

const (
	syncedDBName = "still.db"
	localDBName  = "sessions.db"
)

// Options configures the gateway cascade.
type Options struct {
	// Sandboxed forces the volatile tier, skipping every durable store.
	Sandboxed bool

	// SyncEnabled turns the synced tier on. When false the cascade
	// starts at the local-only tier without probing.
	SyncEnabled bool

	// SyncDir is the sync-managed directory holding the synced database.
	SyncDir string

	// LocalDir is the state directory holding the local-only database.
	LocalDir string

	// Prober checks sync account availability. Required when
	// SyncEnabled is set; a nil prober reads as indeterminate.
	Prober Prober

	// ProbeTimeout bounds the account probe; DefaultProbeTimeout when zero.
	ProbeTimeout time.Duration
}

// Gateway selects one persistence tier and exposes the CRUD surface over
// it. Opening never fails: the cascade bottoms out at the volatile store.
// Once chosen, the tier is kept for the process lifetime; only
// RefreshStatus re-runs the cascade.
type Gateway struct {
	mu     sync.RWMutex
	active Store
	status Status
	opts   Options

	// openDurable opens a SQLite tier; swapped in tests to inject
	// open failures.
	openDurable func(path string) (Store, error)
}

// Open chooses a persistence tier per the cascade and returns the
// gateway. Degradation is reported through Status, never as an error.
func Open(ctx context.Context, opts Options) *Gateway {
	g := &Gateway{
		opts:   opts,
		status: Status{Mode: ModeUnavailable},
		openDurable: func(path string) (Store, error) {
			return OpenSQLite(path)
		},
	}
	g.choose(ctx)
	return g
}

// Status returns the active mode and the reason it was chosen.
func (g *Gateway) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// RefreshStatus re-runs the cascade, e.g. after the user signs into the
// sync account. The previous tier is closed; records in a volatile tier
// do not carry over.
func (g *Gateway) RefreshStatus(ctx context.Context) Status {
	g.mu.Lock()
	if g.active != nil {
		g.active.Close()
		g.active = nil
	}
	g.mu.Unlock()

	g.choose(ctx)
	return g.Status()
}

// choose walks the cascade and installs the first tier that opens:
// sandboxed -> volatile; sync disabled -> local; probe + open synced;
// fall back to local; fall back to volatile.
func (g *Gateway) choose(ctx context.Context) {
	store, status := g.selectTier(ctx)

	g.mu.Lock()
	g.active = store
	g.status = status
	g.mu.Unlock()
}

func (g *Gateway) selectTier(ctx context.Context) (Store, Status) {
	if g.opts.Sandboxed {
		return NewMemoryStore(), Status{Mode: ModeVolatile, Reason: "sandboxed environment"}
	}

	if !g.opts.SyncEnabled {
		return g.localTier("sync disabled")
	}

	reason := g.syncedUnavailableReason(ctx)
	if reason == "" {
		synced, err := g.openDurable(filepath.Join(g.opts.SyncDir, syncedDBName))
		if err == nil {
			return synced, Status{Mode: ModeSynced}
		}
		reason = fmt.Sprintf("synced store failed: %v", err)
	}

	return g.localTier(reason)
}

// syncedUnavailableReason probes the sync account. It returns an empty
// string when the synced tier may be attempted.
func (g *Gateway) syncedUnavailableReason(ctx context.Context) string {
	if g.opts.SyncDir == "" {
		return "no sync directory configured"
	}
	if g.opts.Prober == nil {
		return "sync account status unknown"
	}

	timeout := g.opts.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	status, err := probeAccount(ctx, g.opts.Prober, timeout)
	switch status {
	case AccountAvailable:
		return ""
	case AccountRestricted:
		return "sync account restricted"
	case AccountIndeterminate:
		return "sync account status indeterminate"
	default:
		if err != nil {
			return fmt.Sprintf("sync account unavailable: %v", err)
		}
		return "sync account unavailable"
	}
}

func (g *Gateway) localTier(reason string) (Store, Status) {
	local, err := g.openDurable(filepath.Join(g.opts.LocalDir, localDBName))
	if err == nil {
		return local, Status{Mode: ModeLocalOnly, Reason: reason}
	}
	return NewMemoryStore(), Status{
		Mode:   ModeVolatile,
		Reason: fmt.Sprintf("local store failed: %v", err),
	}
}

func (g *Gateway) store() Store {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active
}

// Create inserts a new record into the active tier.
func (g *Gateway) Create(rec Record) error {
	return g.store().Create(rec)
}

// Get returns the record with the given ID.
func (g *Gateway) Get(id string) (Record, error) {
	return g.store().Get(id)
}

// List returns all records.
func (g *Gateway) List() ([]Record, error) {
	return g.store().List()
}

// ListRange returns records created in [from, to).
func (g *Gateway) ListRange(from, to time.Time) ([]Record, error) {
	return g.store().ListRange(from, to)
}

// ListValid returns finalized records that meet the validity floor.
func (g *Gateway) ListValid() ([]Record, error) {
	return g.store().ListValid()
}

// Active returns the in-progress record, if one exists.
func (g *Gateway) Active() (Record, bool, error) {
	return g.store().Active()
}

// Update replaces the record with the same ID.
func (g *Gateway) Update(rec Record) error {
	return g.store().Update(rec)
}

// Delete removes the record with the given ID.
func (g *Gateway) Delete(id string) error {
	return g.store().Delete(id)
}

// SyncTarget names a downstream system that consumes finalized records.
type SyncTarget string

const (
	// SyncHealth is the device health integration.
	SyncHealth SyncTarget = "health"
	// SyncCloud is the cloud backup integration.
	SyncCloud SyncTarget = "cloud"
)

// MarkSynced flips a downstream sync flag on a record. Flags are
// monotonic: marking an already-synced target is a no-op.
func (g *Gateway) MarkSynced(id string, target SyncTarget) error {
	rec, err := g.Get(id)
	if err != nil {
		return err
	}
	before := rec.Synced
	switch target {
	case SyncHealth:
		rec.Synced.Health = true
	case SyncCloud:
		rec.Synced.Cloud = true
	default:
		return fmt.Errorf("unknown sync target: %q", target)
	}
	if rec.Synced == before {
		return nil
	}
	return g.Update(rec)
}

// Close releases the active tier.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active == nil {
		return nil
	}
	err := g.active.Close()
	g.active = nil
	return err
}
