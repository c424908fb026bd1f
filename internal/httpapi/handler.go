// Package httpapi exposes the reward ledger over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/ledger"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/models"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/models/events"
)

// UserHeader names the user whose ledger a request operates on.
// Requests without it use the default ledger.
const UserHeader = "X-User-ID"

var validate = validator.New()

type Handler struct {
	ledgers *ledger.Registry
	log     logrus.FieldLogger
}

func NewHandler(ledgers *ledger.Registry, log logrus.FieldLogger) *Handler {
	return &Handler{ledgers: ledgers, log: log}
}

// NewRouter returns a chi router with the standard middleware and every ledger route.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	h.Routes(r)
	return r
}

// Routes mounts the ledger endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/ledger", h.getLedger)
		r.Get("/ledger/transactions", h.listTransactions)
		r.Get("/ledger/achievements", h.listAchievements)

		r.Get("/activities", h.listActivityTypes)
		r.Post("/activities", h.recordActivity)

		r.Get("/catalog", h.listCatalog)
		r.Post("/redemptions", h.redeem)
	})
}

func (h *Handler) ledgerFor(w http.ResponseWriter, r *http.Request) (*ledger.RewardLedger, bool) {
	userID := strings.TrimSpace(r.Header.Get(UserHeader))
	l, err := h.ledgers.Get(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("user", userID).Error("open ledger")
		if errors.Is(err, ledger.ErrStoreUnavailable) {
			writeError(w, r, http.StatusServiceUnavailable, "store_unavailable", "ledger store unavailable")
			return nil, false
		}
		writeError(w, r, http.StatusInternalServerError, "internal", "ledger unavailable")
		return nil, false
	}
	return l, true
}

type ledgerResponse struct {
	Points           int         `json:"points"`
	Level            int         `json:"level"`
	TotalActivities  int         `json:"totalActivities"`
	Streak           int         `json:"streak"`
	LastActivityDate *civil.Date `json:"lastActivityDate"`
	Achievements     int         `json:"achievements"`
	Transactions     int         `json:"transactions"`
}

func summarize(s models.LedgerState) ledgerResponse {
	return ledgerResponse{
		Points:           s.Points,
		Level:            s.Level,
		TotalActivities:  s.TotalActivities,
		Streak:           s.Streak,
		LastActivityDate: s.LastActivityDate,
		Achievements:     len(s.Achievements),
		Transactions:     len(s.TransactionHistory),
	}
}

func (h *Handler) getLedger(w http.ResponseWriter, r *http.Request) {
	l, ok := h.ledgerFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summarize(l.Snapshot()))
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	l, ok := h.ledgerFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": l.Transactions()})
}

func (h *Handler) listAchievements(w http.ResponseWriter, r *http.Request) {
	l, ok := h.ledgerFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"achievements": l.Achievements()})
}

func (h *Handler) listActivityTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"activities": ledger.ActivityTypes()})
}

type activityRequest struct {
	Activity    string           `json:"activity" validate:"required"`
	Description string           `json:"description"`
	Multiplier  *decimal.Decimal `json:"multiplier"`
}

type activityResponse struct {
	PointsEarned int            `json:"pointsEarned"`
	Ledger       ledgerResponse `json:"ledger"`
}

func (h *Handler) recordActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "activity is required")
		return
	}
	multiplier := ledger.DefaultMultiplier
	if req.Multiplier != nil {
		multiplier = *req.Multiplier
	}

	l, ok := h.ledgerFor(w, r)
	if !ok {
		return
	}
	earned, err := l.AwardPoints(r.Context(), req.Activity, req.Description, multiplier)
	switch {
	case errors.Is(err, ledger.ErrInvalidMultiplier), errors.Is(err, ledger.ErrMultiplierTooLarge):
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_multiplier", err.Error())
		return
	case errors.Is(err, ledger.ErrPointsOverflow):
		writeError(w, r, http.StatusUnprocessableEntity, "points_overflow", err.Error())
		return
	case errors.Is(err, ledger.ErrStoreUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "store_unavailable", "ledger store unavailable")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("award points")
		writeError(w, r, http.StatusInternalServerError, "internal", "could not record activity")
		return
	}

	writeJSON(w, http.StatusOK, activityResponse{
		PointsEarned: earned,
		Ledger:       summarize(l.Snapshot()),
	})
}

type catalogEntry struct {
	models.CatalogItem
	Affordable bool `json:"affordable"`
}

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request) {
	l, ok := h.ledgerFor(w, r)
	if !ok {
		return
	}
	items, err := l.Catalog(r.Context())
	if err != nil {
		h.log.WithError(err).Error("list catalog")
		writeError(w, r, http.StatusInternalServerError, "internal", "catalog unavailable")
		return
	}
	points := l.Points()
	out := make([]catalogEntry, 0, len(items))
	for _, it := range items {
		out = append(out, catalogEntry{CatalogItem: it, Affordable: it.Points <= points})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

type redeemRequest struct {
	ItemID int `json:"itemId" validate:"required,gt=0"`
}

type redeemResponse struct {
	Success bool `json:"success"`
	ItemID  int  `json:"itemId"`
	Points  int  `json:"points"`
}

func (h *Handler) redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "itemId must be a positive integer")
		return
	}

	l, ok := h.ledgerFor(w, r)
	if !ok {
		return
	}
	res, err := l.Redeem(r.Context(), req.ItemID)
	if err != nil {
		h.log.WithError(err).Error("redeem points")
		writeError(w, r, http.StatusInternalServerError, "internal", "could not redeem item")
		return
	}
	switch {
	case res.Success:
		writeJSON(w, http.StatusOK, redeemResponse{Success: true, ItemID: req.ItemID, Points: res.Points})
	case res.Reason == events.ReasonItemNotFound:
		writeError(w, r, http.StatusNotFound, res.Reason, "item not found")
	default:
		writeError(w, r, http.StatusUnprocessableEntity, res.Reason, "Insufficient FitCoins!")
	}
}
