package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmoldabe-dev/subtrack/internal/billing"
	"github.com/mmoldabe-dev/subtrack/internal/currency"
	"github.com/mmoldabe-dev/subtrack/internal/domain"
	"github.com/mmoldabe-dev/subtrack/internal/repository"
)

const maxListLimit = 100

type SubscriptionServiceInterface interface {
	Create(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Subscription, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.SubscriptionFilter) ([]domain.Subscription, error)
	Update(ctx context.Context, id, userID uuid.UUID, patch domain.SubscriptionPatch) (*domain.Subscription, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	DashboardStats(ctx context.Context, userID uuid.UUID, displayCurrency string) (*DashboardStats, error)
	SpendingTrends(ctx context.Context, userID uuid.UUID, displayCurrency string, period billing.Period, count int) (*SpendingTrends, error)
}

type DashboardStats struct {
	billing.Stats
	UpcomingBills []domain.Subscription `json:"upcoming_bills"`
}

type SpendingTrends struct {
	Trends          []billing.TrendPoint `json:"trends"`
	Period          billing.Period       `json:"period"`
	DisplayCurrency string               `json:"display_currency"`
}

type SubscriptionService struct {
	repo repository.SubscriptionInterface
	conv *currency.Converter
	log  *slog.Logger
	now  func() time.Time
}

var _ SubscriptionServiceInterface = (*SubscriptionService)(nil)

func NewSubscriptionService(repo repository.SubscriptionInterface, conv *currency.Converter, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		conv: conv,
		log:  log.With(slog.String("component", "service")),
		now:  time.Now,
	}
}

// Create fills in defaults for omitted fields and stores the subscription.
// Without an explicit next billing date the first charge is derived from the
// billing day and cycle.
func (s *SubscriptionService) Create(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error) {
	const op = "service.Subscription.Create"

	if sub.Price.IsNegative() {
		return nil, fmt.Errorf("%s: price must not be negative", op)
	}

	now := s.now()
	if sub.Status == "" {
		sub.Status = domain.StatusActive
	}
	if sub.Category == "" {
		sub.Category = domain.CategoryOther
	}
	if sub.Cycle == "" {
		sub.Cycle = domain.CycleMonthly
	}
	if sub.Currency == "" {
		sub.Currency = "USD"
	}
	if sub.BillingDay == 0 {
		sub.BillingDay = 1
	}
	if sub.StartDate.IsZero() {
		sub.StartDate = now
	}
	if sub.NextBilling.IsZero() {
		sub.NextBilling = billing.NextBillingDate(sub.BillingDay, sub.Cycle, now)
	}

	if err := s.repo.Create(ctx, &sub); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("subscription created successfully", slog.String("id", sub.ID.String()))
	return &sub, nil
}

func (s *SubscriptionService) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Subscription, error) {
	const op = "service.Subscription.GetByID"

	sub, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

func (s *SubscriptionService) List(ctx context.Context, userID uuid.UUID, filter domain.SubscriptionFilter) ([]domain.Subscription, error) {
	const op = "service.Subscription.List"

	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	subs, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

func (s *SubscriptionService) Update(ctx context.Context, id, userID uuid.UUID, patch domain.SubscriptionPatch) (*domain.Subscription, error) {
	const op = "service.Subscription.Update"

	sub, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	patch.Apply(sub)
	if sub.Price.IsNegative() {
		return nil, fmt.Errorf("%s: price must not be negative", op)
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

func (s *SubscriptionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	const op = "service.Subscription.Delete"

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DashboardStats aggregates one snapshot of the user's subscriptions.
func (s *SubscriptionService) DashboardStats(ctx context.Context, userID uuid.UUID, displayCurrency string) (*DashboardStats, error) {
	const op = "service.Subscription.DashboardStats"

	subs, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &DashboardStats{
		Stats:         billing.Aggregate(subs, displayCurrency, s.conv),
		UpcomingBills: billing.UpcomingBills(subs, s.now()),
	}, nil
}

func (s *SubscriptionService) SpendingTrends(ctx context.Context, userID uuid.UUID, displayCurrency string, period billing.Period, count int) (*SpendingTrends, error) {
	const op = "service.Subscription.SpendingTrends"

	if !period.Valid() {
		period = billing.PeriodMonthly
	}

	subs, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &SpendingTrends{
		Trends:          billing.Reconstruct(subs, displayCurrency, period, count, s.now(), s.conv),
		Period:          period,
		DisplayCurrency: displayCurrency,
	}, nil
}
