package events

import (
	"time"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/models"
)

// Topics the ledger publishes to.
const (
	TopicLevelUp             = "fitcoin.level_up"
	TopicAchievementUnlocked = "fitcoin.achievement_unlocked"
	TopicRedeemResult        = "fitcoin.redeem_result"
)

// Reasons attached to a failed RedeemResult.
const (
	ReasonInsufficientPoints = "insufficient_points"
	ReasonItemNotFound       = "item_not_found"
)

type LevelUp struct {
	UserKey    string    `json:"user_key"`
	NewLevel   int       `json:"new_level"`
	Points     int       `json:"points"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AchievementUnlocked carries the balance after the achievement bonus was applied,
// since bonuses are not recorded as transactions.
type AchievementUnlocked struct {
	UserKey     string             `json:"user_key"`
	Achievement models.Achievement `json:"achievement"`
	Points      int                `json:"points"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

type RedeemResult struct {
	UserKey    string              `json:"user_key"`
	Success    bool                `json:"success"`
	Reason     string              `json:"reason,omitempty"`
	ItemID     int                 `json:"item_id"`
	Item       *models.CatalogItem `json:"item,omitempty"`
	Points     int                 `json:"points"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// PartitionKey keeps all events of one ledger on the same partition.
func (e LevelUp) PartitionKey() string { return e.UserKey }

func (e AchievementUnlocked) PartitionKey() string { return e.UserKey }

func (e RedeemResult) PartitionKey() string { return e.UserKey }
