// Package storage persists the ticket snapshot through a pluggable
// key-to-text medium and reconciles whatever shape of data it finds there
// into the canonical in-memory snapshot.
package storage

import "context"

// Storage key names. The legacy key is consulted once, when the primary key
// is absent, and migrated forward.
const (
	PrimaryKey = "easy-support-tickets"
	LegacyKey  = "easy-click-support-tickets"
)

// Medium is a minimal key-value text store. Set must behave as a single
// atomic replace of the whole value; Get reports absence via the bool.
type Medium interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
