package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" driver

	interfaces "github.com/sheikh-saqib/fitcoin-ledger/internal/interfaces"
)

const schema = `CREATE TABLE IF NOT EXISTS ledger_snapshots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

type PostgresSnapshotStore struct {
	db *sql.DB
}

func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{
		db: db,
	}
}

// Open connects to dsn and makes sure the snapshot table exists.
func Open(ctx context.Context, dsn string) (*PostgresSnapshotStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store := NewPostgresSnapshotStore(db)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Migrate creates the snapshot table when it is missing.
func (p *PostgresSnapshotStore) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create ledger_snapshots: %w", err)
	}
	return nil
}

func (p *PostgresSnapshotStore) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM ledger_snapshots WHERE key = $1`

	var value string
	err := p.db.QueryRowContext(ctx, query, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (p *PostgresSnapshotStore) Set(ctx context.Context, key, value string) error {
	const query = `INSERT INTO ledger_snapshots (key, value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	_, err := p.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

func (p *PostgresSnapshotStore) Close() error {
	return p.db.Close()
}

var _ interfaces.SnapshotStore = (*PostgresSnapshotStore)(nil)
