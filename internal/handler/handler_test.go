package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmoldabe-dev/subtrack/internal/billing"
	"github.com/mmoldabe-dev/subtrack/internal/currency"
	"github.com/mmoldabe-dev/subtrack/internal/domain"
	"github.com/mmoldabe-dev/subtrack/internal/middleware"
	"github.com/mmoldabe-dev/subtrack/internal/service"
)

type stubSubscriptions struct {
	subs       map[uuid.UUID]domain.Subscription
	lastFilter domain.SubscriptionFilter
	lastCur    string
	lastPeriod billing.Period
	lastCount  int
	failWith   error
}

func newStubSubscriptions() *stubSubscriptions {
	return &stubSubscriptions{subs: map[uuid.UUID]domain.Subscription{}}
}

func (s *stubSubscriptions) Create(_ context.Context, sub domain.Subscription) (*domain.Subscription, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	sub.ID = uuid.New()
	s.subs[sub.ID] = sub
	return &sub, nil
}

func (s *stubSubscriptions) GetByID(_ context.Context, id, userID uuid.UUID) (*domain.Subscription, error) {
	sub, ok := s.subs[id]
	if !ok || sub.UserID != userID {
		return nil, fmt.Errorf("service.Subscription.GetByID: %w", domain.ErrNotFound)
	}
	return &sub, nil
}

func (s *stubSubscriptions) List(_ context.Context, userID uuid.UUID, filter domain.SubscriptionFilter) ([]domain.Subscription, error) {
	s.lastFilter = filter
	out := []domain.Subscription{}
	for _, sub := range s.subs {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *stubSubscriptions) Update(ctx context.Context, id, userID uuid.UUID, patch domain.SubscriptionPatch) (*domain.Subscription, error) {
	sub, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(sub)
	s.subs[id] = *sub
	return sub, nil
}

func (s *stubSubscriptions) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	delete(s.subs, id)
	return nil
}

func (s *stubSubscriptions) DashboardStats(_ context.Context, _ uuid.UUID, cur string) (*service.DashboardStats, error) {
	s.lastCur = cur
	return &service.DashboardStats{Stats: billing.Stats{DisplayCurrency: cur}}, nil
}

func (s *stubSubscriptions) SpendingTrends(_ context.Context, _ uuid.UUID, cur string, period billing.Period, count int) (*service.SpendingTrends, error) {
	s.lastCur, s.lastPeriod, s.lastCount = cur, period, count
	return &service.SpendingTrends{Period: period, DisplayCurrency: cur}, nil
}

type stubNotifications struct {
	generated int
	items     []domain.Notification
	lastQuery domain.NotificationQuery
}

func (s *stubNotifications) GeneratePaymentNotifications(context.Context, uuid.UUID) ([]domain.Notification, error) {
	return nil, nil
}

func (s *stubNotifications) GenerateTrialEndingNotifications(context.Context, uuid.UUID) ([]domain.Notification, error) {
	return nil, nil
}

func (s *stubNotifications) CleanupPaidNotifications(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubNotifications) GenerateAll(context.Context, uuid.UUID) (*domain.GenerationResult, error) {
	s.generated++
	return &domain.GenerationResult{Payments: 1, Total: 1}, nil
}

func (s *stubNotifications) GetUserNotifications(_ context.Context, _ uuid.UUID, q domain.NotificationQuery) ([]domain.Notification, error) {
	s.lastQuery = q
	return s.items, nil
}

func (s *stubNotifications) GetUnreadCount(context.Context, uuid.UUID) (int, error) {
	return len(s.items), nil
}

func (s *stubNotifications) MarkAsRead(_ context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	for _, n := range s.items {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return &n, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubNotifications) MarkAllAsRead(context.Context, uuid.UUID) (int64, error) {
	return int64(len(s.items)), nil
}

type fixture struct {
	router http.Handler
	subs   *stubSubscriptions
	notes  *stubNotifications
	user   uuid.UUID
}

func newFixture() *fixture {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	subs := newStubSubscriptions()
	notes := &stubNotifications{}
	router := SetupRouter(
		NewHandlerSubscription(subs, currency.Default(), "CLP", log),
		NewHandlerNotification(notes, log),
		log,
	)
	return &fixture{router: router, subs: subs, notes: notes, user: uuid.New()}
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(middleware.UserIDHeader, f.user.String())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateSubscription(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "valid", body: `{"name":"Netflix","price":"15.99","currency":"usd","cycle":"MONTHLY","category":"STREAMING"}`, wantStatus: http.StatusCreated},
		{name: "numeric price", body: `{"name":"Spotify","price":9.99}`, wantStatus: http.StatusCreated},
		{name: "missing name", body: `{"price":"15.99"}`, wantStatus: http.StatusBadRequest},
		{name: "missing price", body: `{"name":"Netflix"}`, wantStatus: http.StatusBadRequest},
		{name: "negative price", body: `{"name":"Netflix","price":"-1"}`, wantStatus: http.StatusBadRequest},
		{name: "unsupported currency", body: `{"name":"Netflix","price":"1","currency":"JPY"}`, wantStatus: http.StatusBadRequest},
		{name: "bad cycle", body: `{"name":"Netflix","price":"1","cycle":"DAILY"}`, wantStatus: http.StatusBadRequest},
		{name: "bad billing day", body: `{"name":"Netflix","price":"1","billing_day":32}`, wantStatus: http.StatusBadRequest},
		{name: "bad color", body: `{"name":"Netflix","price":"1","color":"red"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"name":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			rec := f.do(http.MethodPost, "/subscriptions", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusCreated {
				return
			}

			var got domain.Subscription
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.UserID != f.user {
				t.Errorf("expected owner %s, got %s", f.user, got.UserID)
			}
		})
	}
}

func TestCreateSubscription_NormalizesCurrency(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodPost, "/subscriptions", `{"name":"Netflix","price":"15.99","currency":"usd"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	for _, sub := range f.subs.subs {
		if sub.Currency != "USD" {
			t.Errorf("expected USD, got %s", sub.Currency)
		}
		if !sub.Price.Equal(decimal.RequireFromString("15.99")) {
			t.Errorf("expected 15.99, got %s", sub.Price)
		}
	}
}

func TestSubscriptionRoutes_RequireUser(t *testing.T) {
	f := newFixture()
	req := httptest.NewRequest(http.MethodGet, "/subscriptions", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestGetSubscription(t *testing.T) {
	f := newFixture()
	mine := domain.Subscription{ID: uuid.New(), UserID: f.user, Name: "Netflix"}
	theirs := domain.Subscription{ID: uuid.New(), UserID: uuid.New(), Name: "Hulu"}
	f.subs.subs[mine.ID] = mine
	f.subs.subs[theirs.ID] = theirs

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "own", path: "/subscriptions/" + mine.ID.String(), wantStatus: http.StatusOK},
		{name: "other user", path: "/subscriptions/" + theirs.ID.String(), wantStatus: http.StatusNotFound},
		{name: "missing", path: "/subscriptions/" + uuid.New().String(), wantStatus: http.StatusNotFound},
		{name: "bad id", path: "/subscriptions/42", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestUpdateAndDeleteSubscription(t *testing.T) {
	f := newFixture()
	sub := domain.Subscription{ID: uuid.New(), UserID: f.user, Name: "Netflix", Status: domain.StatusActive}
	f.subs.subs[sub.ID] = sub
	path := "/subscriptions/" + sub.ID.String()

	rec := f.do(http.MethodPatch, path, `{"status":"PAUSED","name":"  Netflix 4K "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := f.subs.subs[sub.ID]
	if updated.Status != domain.StatusPaused || updated.Name != "Netflix 4K" {
		t.Errorf("patch not applied: %+v", updated)
	}

	if rec := f.do(http.MethodPatch, path, `{"status":"GONE"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status: expected 400, got %d", rec.Code)
	}

	if rec := f.do(http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}
	if rec := f.do(http.MethodDelete, path, ""); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestListSubscriptions_Filters(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/subscriptions?status=ACTIVE&category=MUSIC&min_price=5&max_price=20.5&limit=20&offset=40&name=spot", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := f.subs.lastFilter
	if got.Status != domain.StatusActive || got.Category != domain.CategoryMusic || got.Name != "spot" {
		t.Errorf("unexpected filter %+v", got)
	}
	if !got.MinPrice.Equal(decimal.NewFromInt(5)) || !got.MaxPrice.Equal(decimal.RequireFromString("20.5")) {
		t.Errorf("unexpected price bounds %s..%s", got.MinPrice, got.MaxPrice)
	}
	if got.Limit != 20 || got.Offset != 40 {
		t.Errorf("unexpected paging %d/%d", got.Limit, got.Offset)
	}

	for _, q := range []string{"limit=0", "limit=101", "min_price=-3", "status=NOPE", "offset=x"} {
		if rec := f.do(http.MethodGet, "/subscriptions?"+q, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestDashboardEndpoints(t *testing.T) {
	f := newFixture()

	if rec := f.do(http.MethodGet, "/dashboard/stats", ""); rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", rec.Code)
	}
	if f.subs.lastCur != "CLP" {
		t.Errorf("expected default currency CLP, got %s", f.subs.lastCur)
	}

	if rec := f.do(http.MethodGet, "/dashboard/stats?currency=eur", ""); rec.Code != http.StatusOK {
		t.Fatalf("stats eur: expected 200, got %d", rec.Code)
	}
	if f.subs.lastCur != "EUR" {
		t.Errorf("expected EUR, got %s", f.subs.lastCur)
	}

	if rec := f.do(http.MethodGet, "/dashboard/stats?currency=XYZ", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown currency: expected 400, got %d", rec.Code)
	}

	if rec := f.do(http.MethodGet, "/dashboard/trends?period=weekly&count=12", ""); rec.Code != http.StatusOK {
		t.Fatalf("trends: expected 200, got %d", rec.Code)
	}
	if f.subs.lastPeriod != billing.PeriodWeekly || f.subs.lastCount != 12 {
		t.Errorf("unexpected trend args %s/%d", f.subs.lastPeriod, f.subs.lastCount)
	}

	if rec := f.do(http.MethodGet, "/dashboard/trends?period=daily", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad period: expected 400, got %d", rec.Code)
	}
}

func TestListCurrencies(t *testing.T) {
	f := newFixture()
	req := httptest.NewRequest(http.MethodGet, "/currencies", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without user header, got %d", rec.Code)
	}

	var resp currenciesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Base != "USD" || resp.Default != "CLP" {
		t.Errorf("unexpected base/default %s/%s", resp.Base, resp.Default)
	}
	if len(resp.Currencies) == 0 || resp.Currencies[0].Code != "USD" || resp.Currencies[0].Example != "$10.00" {
		t.Errorf("unexpected currencies %+v", resp.Currencies)
	}
}

func TestListNotifications(t *testing.T) {
	f := newFixture()
	expires := time.Now().Add(time.Hour)
	f.notes.items = []domain.Notification{
		{ID: uuid.New(), UserID: f.user, Type: domain.NotificationUrgentPayment, ExpiresAt: &expires},
	}

	rec := f.do(http.MethodGet, "/notifications?unread_only=true&limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp notificationsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Notifications) != 1 || resp.UnreadCount != 1 {
		t.Errorf("unexpected response %+v", resp)
	}
	if f.notes.generated != 1 {
		t.Errorf("listing should refresh reminders once, got %d", f.notes.generated)
	}
	if !f.notes.lastQuery.UnreadOnly || f.notes.lastQuery.Limit != 5 {
		t.Errorf("unexpected query %+v", f.notes.lastQuery)
	}

	if rec := f.do(http.MethodGet, "/notifications?generate=false", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.notes.generated != 1 {
		t.Errorf("generate=false should skip refresh, got %d runs", f.notes.generated)
	}

	if rec := f.do(http.MethodGet, "/notifications?unread_only=maybe", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestNotificationMutations(t *testing.T) {
	f := newFixture()
	own := domain.Notification{ID: uuid.New(), UserID: f.user}
	f.notes.items = []domain.Notification{own}

	if rec := f.do(http.MethodPatch, "/notifications/"+own.ID.String(), ""); rec.Code != http.StatusOK {
		t.Errorf("mark one: expected 200, got %d", rec.Code)
	}
	if rec := f.do(http.MethodPatch, "/notifications/"+uuid.New().String(), ""); rec.Code != http.StatusNotFound {
		t.Errorf("mark unknown: expected 404, got %d", rec.Code)
	}

	rec := f.do(http.MethodPatch, "/notifications", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("mark all: expected 200, got %d", rec.Code)
	}
	var count countResponse
	if err := json.NewDecoder(rec.Body).Decode(&count); err != nil || count.Count != 1 {
		t.Errorf("unexpected mark-all response %+v (%v)", count, err)
	}

	rec = f.do(http.MethodPost, "/notifications/refresh", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d", rec.Code)
	}
	var res domain.GenerationResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil || res.Total != 1 {
		t.Errorf("unexpected refresh response %+v (%v)", res, err)
	}

	if rec := f.do(http.MethodGet, "/notifications/unread-count", ""); rec.Code != http.StatusOK {
		t.Errorf("unread count: expected 200, got %d", rec.Code)
	}
}

func TestServiceErrorIsHidden(t *testing.T) {
	f := newFixture()
	f.subs.failWith = fmt.Errorf("repository.postgres.Subscription.Create: connection refused")

	rec := f.do(http.MethodPost, "/subscriptions", `{"name":"Netflix","price":"1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("internal error leaked: %s", rec.Body.String())
	}
}
