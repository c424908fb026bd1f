package interfaces

import "context"

// EventPublisher delivers ledger notifications. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}
