// Package store persists meditation session records.
//
// Three storage tiers implement the same CRUD surface: a synced SQLite
// database inside a sync-managed directory, a local-only SQLite database
// in the state directory, and a volatile in-memory store. The Gateway
// picks one tier at startup and degrades through the cascade without ever
// losing the ability to write.
package store

import (
	"errors"
	"time"
)

var (
	// ErrRecordNotFound indicates no record exists with the given ID.
	ErrRecordNotFound = errors.New("record not found")
	// ErrRecordExists indicates a record with the given ID already exists.
	ErrRecordExists = errors.New("record already exists")
)

// Store is the CRUD surface shared by every persistence tier. Callers are
// store-agnostic: a degraded tier behaves identically to the synced one.
//
// List results are ordered by CreatedAt ascending (ID as tiebreak) so
// output is deterministic across tiers.
type Store interface {
	// Create inserts a new record. The ID must be unused.
	Create(rec Record) error

	// Get returns the record with the given ID.
	Get(id string) (Record, error)

	// List returns all records.
	List() ([]Record, error)

	// ListRange returns records created in [from, to).
	ListRange(from, to time.Time) ([]Record, error)

	// ListValid returns finalized records that meet the validity floor.
	ListValid() ([]Record, error)

	// Active returns the in-progress record, if one exists.
	Active() (Record, bool, error)

	// Update replaces the record with the same ID.
	Update(rec Record) error

	// Delete removes the record with the given ID.
	Delete(id string) error

	// Close releases the tier's resources.
	Close() error
}
