//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks KeyValueStore

package domain

import "context"

// Storage keys of the persisted collections.
const (
	KeyMembers    = "clubMembers"
	KeyEvents     = "clubEvents"
	KeyAttendance = "clubAttendance"
	KeyTheme      = "theme"
)

// Entry is one key/value pair of a batched write.
type Entry struct {
	Key   string
	Value string
}

// KeyValueStore persists serialized collections under string keys.
type KeyValueStore interface {
	// Get returns found=false without error when key has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes entries in order, atomically where the backend allows it.
	SetMany(ctx context.Context, entries ...Entry) error
	Close() error
}
