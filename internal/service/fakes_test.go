package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmoldabe-dev/subtrack/internal/domain"
	"github.com/mmoldabe-dev/subtrack/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memSubscriptions struct {
	mu   sync.Mutex
	subs []domain.Subscription
}

var _ repository.SubscriptionInterface = (*memSubscriptions)(nil)

func (m *memSubscriptions) Create(_ context.Context, sub *domain.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	m.subs = append(m.subs, *sub)
	return nil
}

func (m *memSubscriptions) GetByID(_ context.Context, id, userID uuid.UUID) (*domain.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.ID == id && s.UserID == userID {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("subscription %s: %w", id, domain.ErrNotFound)
}

func (m *memSubscriptions) List(_ context.Context, userID uuid.UUID, filter domain.SubscriptionFilter) ([]domain.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Subscription, 0)
	for _, s := range m.subs {
		if s.UserID != userID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memSubscriptions) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error) {
	return m.List(ctx, userID, domain.SubscriptionFilter{})
}

func (m *memSubscriptions) ListDue(_ context.Context, userID uuid.UUID, status domain.Status, from, to time.Time) ([]domain.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Subscription, 0)
	for _, s := range m.subs {
		if s.UserID != userID || s.Status != status {
			continue
		}
		if s.NextBilling.Before(from) || !s.NextBilling.Before(to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memSubscriptions) Update(_ context.Context, sub *domain.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subs {
		if s.ID == sub.ID && s.UserID == sub.UserID {
			m.subs[i] = *sub
			return nil
		}
	}
	return fmt.Errorf("subscription %s: %w", sub.ID, domain.ErrNotFound)
}

func (m *memSubscriptions) Delete(_ context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subs {
		if s.ID == id && s.UserID == userID {
			m.subs = slices.Delete(m.subs, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("subscription %s: %w", id, domain.ErrNotFound)
}

// memNotifications mimics the Postgres repository, including the unique dedup
// index. With blindExists set, Exists always answers false so the index is
// the only guard.
type memNotifications struct {
	mu          sync.Mutex
	items       []domain.Notification
	blindExists bool
}

var _ repository.NotificationInterface = (*memNotifications)(nil)

func sameKey(n domain.Notification, userID uuid.UUID, key domain.DedupKey) bool {
	return n.UserID == userID && n.SubscriptionID != nil && *n.SubscriptionID == key.SubscriptionID &&
		n.Type == key.Type && n.ExpiresAt != nil && n.ExpiresAt.Equal(key.ExpiresAt)
}

func (m *memNotifications) Exists(_ context.Context, userID uuid.UUID, key domain.DedupKey) (bool, error) {
	if m.blindExists {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.items {
		if sameKey(n, userID, key) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memNotifications) Create(_ context.Context, n *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.SubscriptionID != nil && n.ExpiresAt != nil {
		key := domain.DedupKey{SubscriptionID: *n.SubscriptionID, Type: n.Type, ExpiresAt: *n.ExpiresAt}
		for _, existing := range m.items {
			if sameKey(existing, n.UserID, key) {
				return domain.ErrAlreadyExists
			}
		}
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) DeleteStale(_ context.Context, userID uuid.UUID, types []domain.NotificationType, now, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	m.items = slices.DeleteFunc(m.items, func(n domain.Notification) bool {
		stale := n.UserID == userID && slices.Contains(types, n.Type) && n.ExpiresAt != nil &&
			(n.ExpiresAt.Before(now) || n.ExpiresAt.After(cutoff))
		if stale {
			removed++
		}
		return stale
	})
	return removed, nil
}

func (m *memNotifications) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	m.items = slices.DeleteFunc(m.items, func(n domain.Notification) bool {
		expired := n.ExpiresAt != nil && n.ExpiresAt.Before(now)
		if expired {
			removed++
		}
		return expired
	})
	return removed, nil
}

func visible(n domain.Notification, now time.Time) bool {
	return n.ExpiresAt == nil || !n.ExpiresAt.Before(now)
}

func (m *memNotifications) List(_ context.Context, userID uuid.UUID, q domain.NotificationQuery, now time.Time) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notification, 0)
	for _, n := range m.items {
		if n.UserID != userID || (q.UnreadOnly && n.Read) || (!q.IncludeExpired && !visible(n, now)) {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.ExpiresAt == nil && b.ExpiresAt != nil:
			return false
		case a.ExpiresAt != nil && b.ExpiresAt == nil:
			return true
		case a.ExpiresAt != nil && !a.ExpiresAt.Equal(*b.ExpiresAt):
			return a.ExpiresAt.Before(*b.ExpiresAt)
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memNotifications) CountUnread(_ context.Context, userID uuid.UUID, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.items {
		if n.UserID == userID && !n.Read && visible(n, now) {
			count++
		}
	}
	return count, nil
}

func (m *memNotifications) MarkAsRead(_ context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].UserID == userID {
			m.items[i].Read = true
			n := m.items[i]
			return &n, nil
		}
	}
	return nil, fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
}

func (m *memNotifications) MarkAllAsRead(_ context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var updated int64
	for i := range m.items {
		if m.items[i].UserID == userID && !m.items[i].Read {
			m.items[i].Read = true
			updated++
		}
	}
	return updated, nil
}
