package clock

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestManualAdvance(t *testing.T) {
	start := time.Date(2026, time.March, 1, 23, 30, 0, 0, time.UTC)
	c := NewManual(start)

	if got := Today(c); got != (civil.Date{Year: 2026, Month: time.March, Day: 1}) {
		t.Fatalf("today = %v, want 2026-03-01", got)
	}

	c.Advance(time.Hour)
	if got := Today(c); got != (civil.Date{Year: 2026, Month: time.March, Day: 2}) {
		t.Fatalf("today after advance = %v, want 2026-03-02", got)
	}
}

func TestSystemUsesLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	c := NewSystem(loc)
	if got := c.Now().Location(); got != loc {
		t.Fatalf("location = %v, want %v", got, loc)
	}
	if got := NewSystem(nil).Now().Location(); got != time.UTC {
		t.Fatalf("nil location = %v, want UTC", got)
	}
}
