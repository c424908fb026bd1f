package ledger

import (
	"cloud.google.com/go/civil"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/models"
)

// reconcileStreak counts today as an active day. It reports whether s changed.
//
// A repeat call on the same day is a no-op, a call on the day after the last
// active day extends the streak, and anything else starts a new streak of one.
func reconcileStreak(s *models.LedgerState, today civil.Date) bool {
	last := s.LastActivityDate
	switch {
	case last != nil && *last == today:
		return false
	case last != nil && last.AddDays(1) == today:
		s.Streak++
	default:
		s.Streak = 1
	}
	d := today
	s.LastActivityDate = &d
	return true
}
