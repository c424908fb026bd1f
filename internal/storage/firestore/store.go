// Package firestore stores ledger snapshots as Cloud Firestore documents.
package firestore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	interfaces "github.com/sheikh-saqib/fitcoin-ledger/internal/interfaces"
)

// DefaultCollection holds one document per ledger key.
const DefaultCollection = "fitcoin_ledgers"

type document struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type Store struct {
	client     *firestore.Client
	collection string
}

// New wraps an existing client.
func New(client *firestore.Client, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{client: client, collection: collection}
}

// Open creates a Firestore client for projectID.
func Open(ctx context.Context, projectID, collection string) (*Store, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return New(client, collection), nil
}

// docID makes a ledger key safe to use as a document id.
func docID(key string) string {
	return url.PathEscape(key)
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	snap, err := s.client.Collection(s.collection).Doc(docID(key)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get snapshot: %w", err)
	}

	var doc document
	if err := snap.DataTo(&doc); err != nil {
		return "", false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return doc.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.client.Collection(s.collection).Doc(docID(key)).Set(ctx, document{
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ interfaces.SnapshotStore = (*Store)(nil)
