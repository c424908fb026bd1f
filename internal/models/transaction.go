package models

import "time"

// TransactionType distinguishes points earned from points spent.
type TransactionType string

const (
	TransactionEarned   TransactionType = "earned"
	TransactionRedeemed TransactionType = "redeemed"
)

// Transaction represents a single change to a ledger's balance.
// It is never modified after it has been recorded.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Points      int             `json:"points"`   // signed delta
	Activity    string          `json:"activity"` // activity type or "marketplace_purchase"
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
	TotalPoints int             `json:"totalPoints"` // balance right after this transaction
}
