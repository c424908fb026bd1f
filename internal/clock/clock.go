// Package clock supplies the wall clock the ledger uses for timestamps and calendar days.
package clock

import (
	"sync"
	"time"

	"cloud.google.com/go/civil"
)

type Clock interface {
	Now() time.Time
}

// System reads the real time in a fixed location.
type System struct {
	loc *time.Location
}

// NewSystem returns a System clock for loc, or UTC when loc is nil.
func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{loc: loc}
}

func (s System) Now() time.Time {
	return time.Now().In(s.loc)
}

// Manual is a clock that only moves when told to.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Today returns the calendar day of c.Now() in the clock's own location.
func Today(c Clock) civil.Date {
	return civil.DateOf(c.Now())
}
