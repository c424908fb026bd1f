package models

import "cloud.google.com/go/civil"

// LedgerState is the aggregate persisted for one user.
// It is stored and loaded as a single JSON document.
type LedgerState struct {
	Points             int           `json:"points"`
	Level              int           `json:"level"`
	TotalActivities    int           `json:"totalActivities"`
	Streak             int           `json:"streak"`
	LastActivityDate   *civil.Date   `json:"lastActivityDate"`
	TransactionHistory []Transaction `json:"transactionHistory"` // newest first
	Achievements       []Achievement `json:"achievements"`
}

// NewLedgerState returns the state of a user who has never been active.
func NewLedgerState() LedgerState {
	return LedgerState{
		Level:              1,
		TransactionHistory: []Transaction{},
		Achievements:       []Achievement{},
	}
}

// Clone returns a deep copy of the state.
func (s LedgerState) Clone() LedgerState {
	out := s
	if s.LastActivityDate != nil {
		d := *s.LastActivityDate
		out.LastActivityDate = &d
	}
	out.TransactionHistory = append(make([]Transaction, 0, len(s.TransactionHistory)), s.TransactionHistory...)
	out.Achievements = append(make([]Achievement, 0, len(s.Achievements)), s.Achievements...)
	return out
}

// Normalize repairs fields of a decoded state that fall outside their valid range.
func (s *LedgerState) Normalize() {
	if s.Points < 0 {
		s.Points = 0
	}
	if s.Level < 1 {
		s.Level = 1
	}
	if s.TotalActivities < 0 {
		s.TotalActivities = 0
	}
	if s.Streak < 0 {
		s.Streak = 0
	}
	if s.TransactionHistory == nil {
		s.TransactionHistory = []Transaction{}
	}
	if s.Achievements == nil {
		s.Achievements = []Achievement{}
	}
}
