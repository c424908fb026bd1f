package memory

import (
	"context" // request-scoped cancellation
	"sync"    // guards the map against concurrent ledgers

	interfaces "github.com/sheikh-saqib/fitcoin-ledger/internal/interfaces"
)

// MemorySnapshotStore is an in-memory implementation of interfaces.SnapshotStore.
// It is safe for concurrent use and loses everything when the process exits.
type MemorySnapshotStore struct {
	mu        sync.RWMutex      // protects snapshots
	snapshots map[string]string // key -> serialized ledger state
	failSet   error             // returned by Set when non-nil, used by tests
	failGet   error             // returned by Get when non-nil, used by tests
}

// NewMemorySnapshotStore creates an empty store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snapshots: make(map[string]string),
	}
}

// Get returns the snapshot stored under key.
func (m *MemorySnapshotStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.RLock()         // readers can share the lock
	defer m.mu.RUnlock() // released when Get returns

	if m.failGet != nil {
		return "", false, m.failGet
	}
	v, ok := m.snapshots[key]
	return v, ok, nil
}

// Set overwrites the snapshot stored under key.
func (m *MemorySnapshotStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSet != nil {
		return m.failSet
	}
	m.snapshots[key] = value
	return nil
}

// FailWrites makes every following Set return err. A nil err restores normal writes.
func (m *MemorySnapshotStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSet = err
}

// FailReads makes every following Get return err. A nil err restores normal reads.
func (m *MemorySnapshotStore) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failGet = err
}

// Len returns the number of stored snapshots.
func (m *MemorySnapshotStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snapshots)
}

// Compile-time check: ensure MemorySnapshotStore implements SnapshotStore
var _ interfaces.SnapshotStore = (*MemorySnapshotStore)(nil)
