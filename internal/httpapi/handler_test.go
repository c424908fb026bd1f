package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/catalog"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/clock"
	eventsmem "github.com/sheikh-saqib/fitcoin-ledger/internal/events/memory"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/ledger"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/logging"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/models/events"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/storage/memory"
)

type testServer struct {
	router   http.Handler
	registry *ledger.Registry
	events   *eventsmem.Recorder
	store    *memory.MemorySnapshotStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	rec := eventsmem.NewRecorder()
	store := memory.NewMemorySnapshotStore()
	reg := ledger.NewRegistry(ledger.Config{
		Store:     store,
		Catalog:   catalog.Default(),
		Publisher: rec,
		Clock:     clock.NewManual(time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)),
	})
	return &testServer{
		router:   NewRouter(NewHandler(reg, logging.Discard())),
		registry: reg,
		events:   rec,
		store:    store,
	}
}

func (s *testServer) do(t *testing.T, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func (s *testServer) fund(t *testing.T, user string, referrals int) {
	t.Helper()
	l, err := s.registry.Get(context.Background(), user)
	if err != nil {
		t.Fatalf("get ledger: %v", err)
	}
	for i := 0; i < referrals; i++ {
		if _, err := l.AwardPoints(context.Background(), "referral", "", ledger.DefaultMultiplier); err != nil {
			t.Fatalf("fund: %v", err)
		}
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, http.MethodGet, "/health", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestGetLedgerFresh(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, http.MethodGet, "/v1/ledger", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	got := decode[ledgerResponse](t, rr)
	if got.Points != 0 || got.Level != 1 || got.Streak != 1 {
		t.Fatalf("ledger = %+v, want 0 points, level 1, streak 1", got)
	}
	if got.LastActivityDate == nil || got.LastActivityDate.String() != "2026-10-18" {
		t.Fatalf("lastActivityDate = %v", got.LastActivityDate)
	}
}

func TestRecordActivity(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, http.MethodPost, "/v1/activities", "alice", `{"activity":"workout"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	got := decode[activityResponse](t, rr)
	if got.PointsEarned != 10 || got.Ledger.Points != 110 || got.Ledger.Achievements != 1 {
		t.Fatalf("response = %+v", got)
	}

	rr = s.do(t, http.MethodGet, "/v1/ledger", "bob", "")
	if decode[ledgerResponse](t, rr).Points != 0 {
		t.Fatal("activity leaked into another user's ledger")
	}
}

func TestRecordActivityMultiplier(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, http.MethodPost, "/v1/activities", "", `{"activity":"cardio","multiplier":1.5}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got := decode[activityResponse](t, rr).PointsEarned; got != 22 {
		t.Fatalf("pointsEarned = %d, want 22", got)
	}
}

func TestRecordActivityRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"activity":`, http.StatusBadRequest, "bad_request"},
		{"missing activity", `{"multiplier":2}`, http.StatusBadRequest, "bad_request"},
		{"zero multiplier", `{"activity":"yoga","multiplier":0}`, http.StatusUnprocessableEntity, "invalid_multiplier"},
		{"negative multiplier", `{"activity":"yoga","multiplier":"-2"}`, http.StatusUnprocessableEntity, "invalid_multiplier"},
		{"oversized multiplier", `{"activity":"workout","multiplier":1e18}`, http.StatusUnprocessableEntity, "invalid_multiplier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rr := s.do(t, http.MethodPost, "/v1/activities", "", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.status, rr.Body.String())
			}
			if got := decode[errorResponse](t, rr); got.Code != tt.code {
				t.Fatalf("code = %q, want %q", got.Code, tt.code)
			}
		})
	}
}

func TestListActivityTypes(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, http.MethodGet, "/v1/activities", "", "")
	got := decode[struct {
		Activities map[string]int `json:"activities"`
	}](t, rr)
	if got.Activities["sports"] != 20 || len(got.Activities) != 13 {
		t.Fatalf("activities = %v", got.Activities)
	}
}

func TestCatalogAffordability(t *testing.T) {
	s := newTestServer(t)
	s.fund(t, "dev", 2) // 400 earned + 100 first_workout bonus

	rr := s.do(t, http.MethodGet, "/v1/catalog", "dev", "")
	got := decode[struct {
		Items []catalogEntry `json:"items"`
	}](t, rr)
	if len(got.Items) != 6 {
		t.Fatalf("items = %d, want 6", len(got.Items))
	}
	affordable := map[int]bool{}
	for _, it := range got.Items {
		affordable[it.ID] = it.Affordable
	}
	want := map[int]bool{1: true, 2: true, 3: false, 4: false, 5: true, 6: false}
	for id, w := range want {
		if affordable[id] != w {
			t.Fatalf("item %d affordable = %v, want %v", id, affordable[id], w)
		}
	}
}

func TestRedeem(t *testing.T) {
	s := newTestServer(t)
	s.fund(t, "erin", 2) // 500

	rr := s.do(t, http.MethodPost, "/v1/redemptions", "erin", `{"itemId":2}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got := decode[redeemResponse](t, rr); !got.Success || got.Points != 200 {
		t.Fatalf("response = %+v", got)
	}

	rr = s.do(t, http.MethodGet, "/v1/ledger/transactions", "erin", "")
	txs := decode[struct {
		Transactions []struct {
			Type        string `json:"type"`
			Points      int    `json:"points"`
			TotalPoints int    `json:"totalPoints"`
		} `json:"transactions"`
	}](t, rr).Transactions
	if len(txs) != 3 || txs[0].Type != "redeemed" || txs[0].Points != -300 || txs[0].TotalPoints != 200 {
		t.Fatalf("transactions = %+v", txs)
	}
}

func TestRedeemFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"insufficient points", `{"itemId":4}`, http.StatusUnprocessableEntity, events.ReasonInsufficientPoints},
		{"unknown item", `{"itemId":77}`, http.StatusNotFound, events.ReasonItemNotFound},
		{"missing item id", `{}`, http.StatusBadRequest, "bad_request"},
		{"malformed json", `[`, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.fund(t, "", 2)

			rr := s.do(t, http.MethodPost, "/v1/redemptions", "", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.status, rr.Body.String())
			}
			if got := decode[errorResponse](t, rr); got.Code != tt.code {
				t.Fatalf("code = %q, want %q", got.Code, tt.code)
			}
			if got := decode[ledgerResponse](t, s.do(t, http.MethodGet, "/v1/ledger", "", "")).Points; got != 500 {
				t.Fatalf("points = %d after failed redeem, want 500", got)
			}
		})
	}
}

func TestListAchievements(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/v1/activities", "", `{"activity":"weekly_goal","multiplier":"10"}`)

	rr := s.do(t, http.MethodGet, "/v1/ledger/achievements", "", "")
	got := decode[struct {
		Achievements []struct {
			ID string `json:"id"`
		} `json:"achievements"`
	}](t, rr).Achievements
	if len(got) != 2 || got[0].ID != "first_workout" || got[1].ID != "thousand_points" {
		t.Fatalf("achievements = %+v", got)
	}
	if len(s.events.Topic(events.TopicLevelUp)) != 1 {
		t.Fatal("expected one level-up event")
	}
}

func TestErrorCarriesRequestID(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, http.MethodPost, "/v1/redemptions", "", `{}`)
	if decode[errorResponse](t, rr).RequestID == "" {
		t.Fatal("error response is missing the request id")
	}
}

func TestStoreOutageReturnsServiceUnavailable(t *testing.T) {
	s := newTestServer(t)
	s.fund(t, "frank", 1)
	s.store.FailReads(errors.New("connection refused"))

	rr := s.do(t, http.MethodGet, "/v1/ledger", "grace", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (body %s)", rr.Code, rr.Body.String())
	}
	if got := decode[errorResponse](t, rr); got.Code != "store_unavailable" {
		t.Fatalf("code = %q, want store_unavailable", got.Code)
	}

	s.store.FailReads(nil)
	rr = s.do(t, http.MethodGet, "/v1/ledger", "frank", "")
	if got := decode[ledgerResponse](t, rr); got.Points != 300 {
		t.Fatalf("points = %d, want 300", got.Points)
	}
}
