// Package memory keeps published ledger events in process, for tests and local runs.
package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/fitcoin-ledger/internal/interfaces"
)

// Published is one recorded event.
type Published struct {
	Topic string
	Event any
}

type Recorder struct {
	mu     sync.Mutex
	events []Published
	err    error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(ctx context.Context, topic string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, Published{Topic: topic, Event: event})
	return nil
}

// FailWith makes Publish return err until it is called again with nil.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Events returns everything published so far, oldest first.
func (r *Recorder) Events() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Published(nil), r.events...)
}

// Topic returns the events published to topic.
func (r *Recorder) Topic(topic string) []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []any
	for _, p := range r.events {
		if p.Topic == topic {
			out = append(out, p.Event)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

var _ interfaces.EventPublisher = (*Recorder)(nil)
