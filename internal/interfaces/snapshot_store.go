package interfaces

import "context"

// SnapshotStore persists one opaque string document per key.
// Get reports found=false, with a nil error, when the key has never been written.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
