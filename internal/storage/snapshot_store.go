// Package storage selects the snapshot store backend the ledger persists to.
package storage

import (
	"context"
	"fmt"

	interfaces "github.com/sheikh-saqib/fitcoin-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/storage/firestore"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/storage/postgres"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/storage/sqlite"
)

type Backend string

const (
	BackendMemory    Backend = "memory"
	BackendPostgres  Backend = "postgres"
	BackendSQLite    Backend = "sqlite"
	BackendFirestore Backend = "firestore"
)

// Options carries the settings of every backend; only those of Backend are read.
type Options struct {
	Backend             Backend
	DatabaseURL         string
	SQLitePath          string
	FirestoreProject    string
	FirestoreCollection string
}

// Store is a snapshot store that owns a connection or file handle.
type Store interface {
	interfaces.SnapshotStore
	Close() error
}

type memoryStore struct {
	*memory.MemorySnapshotStore
}

func (memoryStore) Close() error { return nil }

// Open builds the store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return memoryStore{memory.NewMemorySnapshotStore()}, nil
	case BackendPostgres:
		s, err := postgres.Open(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := sqlite.Open(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendFirestore:
		s, err := firestore.Open(ctx, opts.FirestoreProject, opts.FirestoreCollection)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", opts.Backend)
	}
}
