package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationUpcomingPayment NotificationType = "UPCOMING_PAYMENT"
	NotificationUrgentPayment   NotificationType = "URGENT_PAYMENT"
	NotificationTrialEnding     NotificationType = "TRIAL_ENDING"
)

// BillingNotificationTypes are the types owned by the billing reminder
// generator and subject to its cleanup pass.
var BillingNotificationTypes = []NotificationType{
	NotificationUpcomingPayment,
	NotificationUrgentPayment,
	NotificationTrialEnding,
}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank orders priorities; higher is more important.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type NotificationMetadata struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	DaysUntil      int       `json:"days_until"`
}

type Notification struct {
	ID             uuid.UUID            `json:"id" db:"id"`
	UserID         uuid.UUID            `json:"user_id" db:"user_id"`
	SubscriptionID *uuid.UUID           `json:"subscription_id,omitempty" db:"subscription_id"`
	Type           NotificationType     `json:"type" db:"type"`
	Title          string               `json:"title" db:"title"`
	Message        string               `json:"message" db:"message"`
	Priority       Priority             `json:"priority" db:"priority"`
	Read           bool                 `json:"read" db:"read"`
	ActionURL      string               `json:"action_url,omitempty" db:"action_url"`
	Metadata       NotificationMetadata `json:"metadata" db:"metadata"`
	ExpiresAt      *time.Time           `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt      time.Time            `json:"created_at" db:"created_at"`
}

// DedupKey identifies one reminder per subscription, type and billing cycle.
type DedupKey struct {
	SubscriptionID uuid.UUID
	Type           NotificationType
	ExpiresAt      time.Time
}

type NotificationQuery struct {
	UnreadOnly     bool
	IncludeExpired bool
	Limit          int
}

// GenerationResult reports what one refresh of a user's reminders did.
type GenerationResult struct {
	Cleaned  int64 `json:"cleaned"`
	Payments int   `json:"payments"`
	Trials   int   `json:"trials"`
	Total    int   `json:"total"`
}
