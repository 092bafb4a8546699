package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmoldabe-dev/subtrack/internal/currency"
	"github.com/mmoldabe-dev/subtrack/internal/domain"
	"github.com/mmoldabe-dev/subtrack/internal/repository"
)

// noticeWindow covers charges due today or tomorrow.
const noticeWindow = 2 * day

type NotificationServiceInterface interface {
	GeneratePaymentNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	GenerateTrialEndingNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	CleanupPaidNotifications(ctx context.Context, userID uuid.UUID) (int64, error)
	GenerateAll(ctx context.Context, userID uuid.UUID) (*domain.GenerationResult, error)
	GetUserNotifications(ctx context.Context, userID uuid.UUID, q domain.NotificationQuery) ([]domain.Notification, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// NotificationService materializes billing reminders on demand. There is no
// background generator: every refresh of the notification surface runs
// cleanup and then both generators.
type NotificationService struct {
	subs  repository.SubscriptionInterface
	notes repository.NotificationInterface
	log   *slog.Logger
	now   func() time.Time
}

var _ NotificationServiceInterface = (*NotificationService)(nil)

func NewNotificationService(subs repository.SubscriptionInterface, notes repository.NotificationInterface, log *slog.Logger) *NotificationService {
	return &NotificationService{
		subs:  subs,
		notes: notes,
		log:   log.With(slog.String("component", "service")),
		now:   time.Now,
	}
}

type reminder struct {
	typ      domain.NotificationType
	priority domain.Priority
	title    string
	message  string
}

func paymentReminder(sub domain.Subscription, daysLeft int) reminder {
	amount := currency.Format(sub.Price.InexactFloat64(), sub.Currency)
	if daysLeft == 0 {
		return reminder{
			typ:      domain.NotificationUrgentPayment,
			priority: domain.PriorityHigh,
			title:    fmt.Sprintf("Payment today - %s", sub.Name),
			message:  fmt.Sprintf("%s will be charged today", amount),
		}
	}
	return reminder{
		typ:      domain.NotificationUpcomingPayment,
		priority: domain.PriorityMedium,
		title:    fmt.Sprintf("Upcoming payment - %s", sub.Name),
		message:  fmt.Sprintf("%s in %d %s (%s)", amount, daysLeft, pluralDays(daysLeft), sub.NextBilling.Format("Jan 2")),
	}
}

func trialReminder(sub domain.Subscription, daysLeft int) reminder {
	when := "today"
	if daysLeft > 0 {
		when = fmt.Sprintf("in %d %s", daysLeft, pluralDays(daysLeft))
	}
	return reminder{
		typ:      domain.NotificationTrialEnding,
		priority: domain.PriorityHigh,
		title:    fmt.Sprintf("Trial ends %s - %s", when, sub.Name),
		message: fmt.Sprintf("You will be charged %s on %s. Cancel it if you no longer need it",
			currency.Format(sub.Price.InexactFloat64(), sub.Currency), sub.NextBilling.Format("Jan 2")),
	}
}

// GeneratePaymentNotifications creates reminders for ACTIVE subscriptions
// charging today (URGENT_PAYMENT) or tomorrow (UPCOMING_PAYMENT).
func (s *NotificationService) GeneratePaymentNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	const op = "service.Notification.GeneratePaymentNotifications"

	created, err := s.generate(ctx, userID, domain.StatusActive, paymentReminder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GenerateTrialEndingNotifications creates TRIAL_ENDING reminders for trials
// converting to paid today or tomorrow.
func (s *NotificationService) GenerateTrialEndingNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	const op = "service.Notification.GenerateTrialEndingNotifications"

	created, err := s.generate(ctx, userID, domain.StatusTrial, trialReminder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s *NotificationService) generate(ctx context.Context, userID uuid.UUID, status domain.Status, render func(domain.Subscription, int) reminder) ([]domain.Notification, error) {
	now := s.now()

	due, err := s.subs.ListDue(ctx, userID, status, now, now.Add(noticeWindow))
	if err != nil {
		return nil, err
	}

	created := make([]domain.Notification, 0, len(due))
	for _, sub := range due {
		daysLeft := daysUntil(sub.NextBilling, now)
		if daysLeft > 1 {
			continue
		}

		r := render(sub, daysLeft)
		key := domain.DedupKey{SubscriptionID: sub.ID, Type: r.typ, ExpiresAt: sub.NextBilling}

		exists, err := s.notes.Exists(ctx, userID, key)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		subID := sub.ID
		expiresAt := sub.NextBilling
		n := domain.Notification{
			UserID:         userID,
			SubscriptionID: &subID,
			Type:           r.typ,
			Title:          r.title,
			Message:        r.message,
			Priority:       r.priority,
			ActionURL:      "/subscriptions/" + sub.ID.String(),
			Metadata: domain.NotificationMetadata{
				SubscriptionID: sub.ID,
				Amount:         sub.Price.InexactFloat64(),
				Currency:       sub.Currency,
				DaysUntil:      daysLeft,
			},
			ExpiresAt: &expiresAt,
		}

		if err := s.notes.Create(ctx, &n); err != nil {
			// a concurrent refresh created it first
			if errors.Is(err, domain.ErrAlreadyExists) {
				s.log.Debug("notification already exists", slog.String("subscription_id", sub.ID.String()), slog.String("type", string(r.typ)))
				continue
			}
			return nil, err
		}
		created = append(created, n)
	}
	return created, nil
}

// CleanupPaidNotifications deletes reminders whose charge already happened and
// reminders expiring after tomorrow, which a wider notice window used to
// produce.
func (s *NotificationService) CleanupPaidNotifications(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "service.Notification.CleanupPaidNotifications"

	now := s.now()
	n, err := s.notes.DeleteStale(ctx, userID, domain.BillingNotificationTypes, now, endOfTomorrow(now))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (s *NotificationService) GenerateAll(ctx context.Context, userID uuid.UUID) (*domain.GenerationResult, error) {
	const op = "service.Notification.GenerateAll"

	cleaned, err := s.CleanupPaidNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payments, err := s.GeneratePaymentNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	trials, err := s.GenerateTrialEndingNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := &domain.GenerationResult{
		Cleaned:  cleaned,
		Payments: len(payments),
		Trials:   len(trials),
		Total:    len(payments) + len(trials),
	}
	if res.Cleaned > 0 || res.Total > 0 {
		s.log.Info("notifications refreshed",
			slog.String("user_id", userID.String()),
			slog.Int64("cleaned", res.Cleaned),
			slog.Int("created", res.Total),
		)
	}
	return res, nil
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, q domain.NotificationQuery) ([]domain.Notification, error) {
	const op = "service.Notification.GetUserNotifications"

	list, err := s.notes.List(ctx, userID, q, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	const op = "service.Notification.GetUnreadCount"

	n, err := s.notes.CountUnread(ctx, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	const op = "service.Notification.MarkAsRead"

	n, err := s.notes.MarkAsRead(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "service.Notification.MarkAllAsRead"

	n, err := s.notes.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
