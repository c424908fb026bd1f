package ledger

import (
	"context"
	"sync"
)

// Registry hands out one RewardLedger per user, opening each lazily.
type Registry struct {
	cfg Config

	mu      sync.Mutex // protects entries
	entries map[string]*registryEntry
}

type registryEntry struct {
	mu     sync.Mutex // held for the whole of Get
	ledger *RewardLedger
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:     cfg,
		entries: make(map[string]*registryEntry),
	}
}

// StoreKey maps a user id to the key its snapshot is stored under.
func StoreKey(userID string) string {
	if userID == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + userID
}

func (r *Registry) entry(key string) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		e = &registryEntry{}
		r.entries[key] = e
	}
	return e
}

// Get returns the user's ledger and starts a session on it, so every access
// counts the current day toward the streak.
//
// A newly opened ledger is cached only after its session started, which
// requires a readable store. While the store is down Get fails and the next
// call opens the ledger again, so fallback defaults never replace a stored snapshot.
func (r *Registry) Get(ctx context.Context, userID string) (*RewardLedger, error) {
	key := StoreKey(userID)
	e := r.entry(key)

	e.mu.Lock()
	defer e.mu.Unlock()

	l := e.ledger
	if l == nil {
		opened, err := Open(ctx, key, r.cfg)
		if err != nil {
			return nil, err
		}
		l = opened
	}
	if _, err := l.StartSession(ctx); err != nil {
		return nil, err
	}
	e.ledger = l
	return l, nil
}
