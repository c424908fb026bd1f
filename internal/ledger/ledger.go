package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/clock"
	interfaces "github.com/sheikh-saqib/fitcoin-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/logging"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/models"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/models/events"
)

// DefaultKey is the store key of the ledger that belongs to no particular user.
const DefaultKey = "fitcoin_data"

// MaxAwardPoints caps the points a single activity may earn after its multiplier.
const MaxAwardPoints = math.MaxInt32

// DefaultMultiplier leaves an activity's base points unchanged.
var DefaultMultiplier = decimal.NewFromInt(1)

var maxAward = decimal.NewFromInt(MaxAwardPoints)

// Config carries the collaborators of a RewardLedger.
// Store and Catalog are required; the rest fall back to no-op or system defaults.
type Config struct {
	Store     interfaces.SnapshotStore
	Catalog   interfaces.CatalogProvider
	Publisher interfaces.EventPublisher
	Clock     clock.Clock
	Logger    logrus.FieldLogger
}

// RewardLedger tracks one user's FitCoin balance, level, streak, history and achievements.
// Every mutating operation rewrites the full snapshot to the store before returning.
type RewardLedger struct {
	key       string
	store     interfaces.SnapshotStore
	catalog   interfaces.CatalogProvider
	publisher interfaces.EventPublisher
	clock     clock.Clock
	log       logrus.FieldLogger

	mu    sync.Mutex // serializes operations so each runs to completion
	state models.LedgerState
	// degraded is set when the store could not be read at open. The state is then
	// defaults and must be reloaded before anything is written over the real snapshot.
	degraded bool
}

type pendingEvent struct {
	topic string
	event any
}

// Open builds a ledger for key and loads its snapshot.
// A missing, unreadable or corrupt snapshot yields a fresh ledger; nothing is written back.
func Open(ctx context.Context, key string, cfg Config) (*RewardLedger, error) {
	if cfg.Store == nil {
		return nil, ErrMissingStore
	}
	if cfg.Catalog == nil {
		return nil, ErrMissingCatalog
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key == "" {
		key = DefaultKey
	}

	l := &RewardLedger{
		key:       key,
		store:     cfg.Store,
		catalog:   cfg.Catalog,
		publisher: cfg.Publisher,
		clock:     cfg.Clock,
		log:       cfg.Logger,
	}
	if l.clock == nil {
		l.clock = clock.NewSystem(nil)
	}
	if l.log == nil {
		l.log = logging.Discard()
	}
	l.log = l.log.WithField("ledger", key)

	st, err := l.load(ctx)
	if err != nil {
		l.log.WithError(err).Warn("snapshot store unavailable, starting from defaults")
		l.degraded = true
	}
	l.state = st
	return l, nil
}

// load reads the snapshot. A store error is returned alongside the defaults;
// a missing or corrupt snapshot is not an error.
func (l *RewardLedger) load(ctx context.Context) (models.LedgerState, error) {
	raw, found, err := l.store.Get(ctx, l.key)
	if err != nil {
		return models.NewLedgerState(), err
	}
	if !found {
		return models.NewLedgerState(), nil
	}

	var st models.LedgerState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		l.log.WithError(err).Warn("snapshot is corrupt, starting from defaults")
		return models.NewLedgerState(), nil
	}
	st.Normalize()
	return st, nil
}

// ensureLoaded replaces the fallback state of a degraded ledger with the stored
// snapshot. Callers hold l.mu and call it before any write.
func (l *RewardLedger) ensureLoaded(ctx context.Context) error {
	if !l.degraded {
		return nil
	}
	st, err := l.load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	l.state = st
	l.degraded = false
	l.log.Info("snapshot reloaded after store recovered")
	return nil
}

// Degraded reports whether the ledger still holds fallback state from an unreadable store.
func (l *RewardLedger) Degraded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.degraded
}

// save writes the whole state. Callers hold l.mu.
func (l *RewardLedger) save(ctx context.Context) error {
	data, err := json.Marshal(l.state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := l.store.Set(ctx, l.key, string(data)); err != nil {
		return fmt.Errorf("save snapshot %s: %w", l.key, err)
	}
	return nil
}

// publish hands events to the publisher. Failures are logged, never returned:
// the events are notifications and the state change has already been saved.
// Callers must not hold l.mu.
func (l *RewardLedger) publish(ctx context.Context, pending []pendingEvent) {
	if l.publisher == nil {
		return
	}
	for _, p := range pending {
		if err := l.publisher.Publish(ctx, p.topic, p.event); err != nil {
			l.log.WithError(err).WithField("topic", p.topic).Warn("publish ledger event")
		}
	}
}

func (l *RewardLedger) record(tx models.Transaction) {
	l.state.TransactionHistory = append([]models.Transaction{tx}, l.state.TransactionHistory...)
}

func newTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Key returns the store key the ledger persists under.
func (l *RewardLedger) Key() string {
	return l.key
}

// ReconcileStreak counts today as an active day and reports whether the streak changed.
// It does not persist; call Flush, or let the next earn or redeem save it.
func (l *RewardLedger) ReconcileStreak(today civil.Date) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return reconcileStreak(&l.state, today)
}

// StartSession reconciles the streak against the ledger clock and saves when it changed.
func (l *RewardLedger) StartSession(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx); err != nil {
		return false, err
	}
	before := l.state.Clone()
	if !reconcileStreak(&l.state, clock.Today(l.clock)) {
		return false, nil
	}
	if err := l.save(ctx); err != nil {
		l.state = before
		return false, err
	}
	l.log.WithField("streak", l.state.Streak).Debug("streak reconciled")
	return true, nil
}

// Flush persists the current state. A degraded ledger reloads instead of
// writing its fallback state.
func (l *RewardLedger) Flush(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureLoaded(ctx); err != nil {
		return err
	}
	return l.save(ctx)
}

// AwardPoints credits one activity and returns the points it earned.
//
// Unknown activity types earn the default base points. Achievement bonuses unlocked
// by the activity are added after its transaction is recorded, so they are not part
// of that transaction's total.
func (l *RewardLedger) AwardPoints(ctx context.Context, activity, description string, multiplier decimal.Decimal) (int, error) {
	if !multiplier.IsPositive() {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidMultiplier, multiplier.String())
	}
	product := decimal.NewFromInt(int64(BasePoints(activity))).Mul(multiplier).Floor()
	if product.GreaterThan(maxAward) {
		return 0, fmt.Errorf("%w: %s earns %s points, limit %d", ErrMultiplierTooLarge, activity, product.String(), MaxAwardPoints)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	earned := int(product.IntPart())
	if description == "" {
		description = activityDescriptions[activity]
	}

	pending, err := l.award(ctx, activity, description, earned)
	if err != nil {
		return 0, err
	}
	l.publish(ctx, pending)
	return earned, nil
}

func (l *RewardLedger) award(ctx context.Context, activity, description string, earned int) ([]pendingEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if l.state.Points > math.MaxInt-earned-maxAchievementBonus {
		return nil, fmt.Errorf("%w: balance %d, award %d", ErrPointsOverflow, l.state.Points, earned)
	}

	before := l.state.Clone()
	now := l.clock.Now()
	l.state.Points += earned
	l.state.TotalActivities++

	var pending []pendingEvent
	if lvl := levelFor(l.state.Points); lvl > l.state.Level {
		l.state.Level = lvl
		pending = append(pending, pendingEvent{events.TopicLevelUp, events.LevelUp{
			UserKey:    l.key,
			NewLevel:   lvl,
			Points:     l.state.Points,
			OccurredAt: now,
		}})
	}

	l.record(models.Transaction{
		ID:          newTransactionID(),
		Type:        models.TransactionEarned,
		Points:      earned,
		Activity:    activity,
		Description: description,
		Timestamp:   now,
		TotalPoints: l.state.Points,
	})

	for _, a := range newAchievements(l.state) {
		l.state.Achievements = append(l.state.Achievements, a)
		l.state.Points += a.Points
		pending = append(pending, pendingEvent{events.TopicAchievementUnlocked, events.AchievementUnlocked{
			UserKey:     l.key,
			Achievement: a,
			Points:      l.state.Points,
			OccurredAt:  now,
		}})
	}

	if err := l.save(ctx); err != nil {
		l.state = before
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"activity": activity,
		"earned":   earned,
		"points":   l.state.Points,
		"level":    l.state.Level,
	}).Info("points awarded")
	return pending, nil
}

// RedeemPoints spends the price of a catalog item.
// It returns false, leaving the state untouched, when the item does not exist
// or the balance cannot cover it.
func (l *RewardLedger) RedeemPoints(ctx context.Context, itemID int) (bool, error) {
	res, err := l.Redeem(ctx, itemID)
	if err != nil {
		return false, err
	}
	return res.Success, nil
}

// Redeem is RedeemPoints with the full outcome. A failed redemption carries
// events.ReasonItemNotFound or events.ReasonInsufficientPoints; the same result is published.
func (l *RewardLedger) Redeem(ctx context.Context, itemID int) (events.RedeemResult, error) {
	items, err := l.catalog.List(ctx)
	if err != nil {
		return events.RedeemResult{}, fmt.Errorf("list catalog: %w", err)
	}

	result, err := l.redeem(ctx, items, itemID)
	if err != nil {
		return events.RedeemResult{}, err
	}
	l.publish(ctx, []pendingEvent{{events.TopicRedeemResult, result}})
	return result, nil
}

func (l *RewardLedger) redeem(ctx context.Context, items []models.CatalogItem, itemID int) (events.RedeemResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx); err != nil {
		return events.RedeemResult{}, err
	}

	now := l.clock.Now()
	result := events.RedeemResult{UserKey: l.key, ItemID: itemID, OccurredAt: now}

	item, ok := findItem(items, itemID)
	if !ok {
		result.Reason = events.ReasonItemNotFound
		result.Points = l.state.Points
		return result, nil
	}
	result.Item = &item

	if l.state.Points < item.Points {
		result.Reason = events.ReasonInsufficientPoints
		result.Points = l.state.Points
		l.log.WithFields(logrus.Fields{"item": item.ID, "price": item.Points, "points": l.state.Points}).Info("insufficient points for redemption")
		return result, nil
	}

	before := l.state.Clone()
	l.state.Points -= item.Points
	l.record(models.Transaction{
		ID:          newTransactionID(),
		Type:        models.TransactionRedeemed,
		Points:      -item.Points,
		Activity:    redeemActivity,
		Description: "Redeemed " + item.Name,
		Timestamp:   now,
		TotalPoints: l.state.Points,
	})

	if err := l.save(ctx); err != nil {
		l.state = before
		return events.RedeemResult{}, err
	}

	result.Success = true
	result.Points = l.state.Points
	l.log.WithFields(logrus.Fields{"item": item.ID, "price": item.Points, "points": l.state.Points}).Info("item redeemed")
	return result, nil
}

func findItem(items []models.CatalogItem, id int) (models.CatalogItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return models.CatalogItem{}, false
}

// Snapshot returns a copy of the current state.
func (l *RewardLedger) Snapshot() models.LedgerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

func (l *RewardLedger) Points() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Points
}

func (l *RewardLedger) Level() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Level
}

func (l *RewardLedger) Streak() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Streak
}

// Transactions returns the history, newest first.
func (l *RewardLedger) Transactions() []models.Transaction {
	return l.Snapshot().TransactionHistory
}

// Achievements returns unlocked achievements in unlock order.
func (l *RewardLedger) Achievements() []models.Achievement {
	return l.Snapshot().Achievements
}

func (l *RewardLedger) HasAchievement(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return hasAchievement(l.state, id)
}

// Catalog returns the redeemable items.
func (l *RewardLedger) Catalog(ctx context.Context) ([]models.CatalogItem, error) {
	return l.catalog.List(ctx)
}

// AffordableItems returns the catalog items the current balance can pay for.
func (l *RewardLedger) AffordableItems(ctx context.Context) ([]models.CatalogItem, error) {
	items, err := l.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	points := l.Points()
	var out []models.CatalogItem
	for _, it := range items {
		if it.Points <= points {
			out = append(out, it)
		}
	}
	return out, nil
}
