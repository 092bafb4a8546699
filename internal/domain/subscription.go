package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryStreaming    Category = "STREAMING"
	CategoryGaming       Category = "GAMING"
	CategoryMusic        Category = "MUSIC"
	CategoryProductivity Category = "PRODUCTIVITY"
	CategoryCloudStorage Category = "CLOUD_STORAGE"
	CategoryEducation    Category = "EDUCATION"
	CategoryFitness      Category = "FITNESS"
	CategoryNews         Category = "NEWS"
	CategorySoftware     Category = "SOFTWARE"
	CategoryOther        Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryStreaming, CategoryGaming, CategoryMusic, CategoryProductivity, CategoryCloudStorage,
		CategoryEducation, CategoryFitness, CategoryNews, CategorySoftware, CategoryOther:
		return true
	}
	return false
}

// ChartColor is the hex color used for the category in dashboards.
func (c Category) ChartColor() string {
	switch c {
	case CategoryStreaming:
		return "#a855f7"
	case CategoryGaming:
		return "#ef4444"
	case CategoryMusic:
		return "#ec4899"
	case CategoryProductivity:
		return "#3b82f6"
	case CategoryCloudStorage:
		return "#06b6d4"
	case CategoryEducation:
		return "#eab308"
	case CategoryFitness:
		return "#22c55e"
	case CategoryNews:
		return "#f97316"
	case CategorySoftware:
		return "#6366f1"
	case CategoryOther:
		return "#6b7280"
	}
	return "#6b7280"
}

// Cycle is the billing cadence of a subscription.
type Cycle string

const (
	CycleWeekly     Cycle = "WEEKLY"
	CycleMonthly    Cycle = "MONTHLY"
	CycleQuarterly  Cycle = "QUARTERLY"
	CycleSemiAnnual Cycle = "SEMI_ANNUAL"
	CycleAnnual     Cycle = "ANNUAL"
)

func (c Cycle) Valid() bool {
	switch c {
	case CycleWeekly, CycleMonthly, CycleQuarterly, CycleSemiAnnual, CycleAnnual:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPaused    Status = "PAUSED"
	StatusCancelled Status = "CANCELLED"
	StatusTrial     Status = "TRIAL"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCancelled, StatusTrial:
		return true
	}
	return false
}

type Subscription struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description,omitempty" db:"description"`
	Category    Category        `json:"category" db:"category"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Currency    string          `json:"currency" db:"currency"`
	Cycle       Cycle           `json:"cycle" db:"cycle"`
	BillingDay  int             `json:"billing_day" db:"billing_day"`
	NextBilling time.Time       `json:"next_billing" db:"next_billing"`
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	Status      Status          `json:"status" db:"status"`
	Color       string          `json:"color,omitempty" db:"color"`
	Notes       string          `json:"notes,omitempty" db:"notes"`
	Logo        *string         `json:"logo,omitempty" db:"logo"`
	URL         *string         `json:"url,omitempty" db:"url"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// SubscriptionPatch carries a partial update; nil fields are left untouched.
type SubscriptionPatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *Category        `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency"`
	Cycle       *Cycle           `json:"cycle"`
	BillingDay  *int             `json:"billing_day"`
	NextBilling *time.Time       `json:"next_billing"`
	StartDate   *time.Time       `json:"start_date"`
	Status      *Status          `json:"status"`
	Color       *string          `json:"color"`
	Notes       *string          `json:"notes"`
	Logo        *string          `json:"logo"`
	URL         *string          `json:"url"`
}

// Apply copies every set field of the patch onto sub. Empty logo and url
// strings clear the stored value.
func (p SubscriptionPatch) Apply(sub *Subscription) {
	if p.Name != nil {
		sub.Name = *p.Name
	}
	if p.Description != nil {
		sub.Description = *p.Description
	}
	if p.Category != nil {
		sub.Category = *p.Category
	}
	if p.Price != nil {
		sub.Price = *p.Price
	}
	if p.Currency != nil {
		sub.Currency = *p.Currency
	}
	if p.Cycle != nil {
		sub.Cycle = *p.Cycle
	}
	if p.BillingDay != nil {
		sub.BillingDay = *p.BillingDay
	}
	if p.NextBilling != nil {
		sub.NextBilling = *p.NextBilling
	}
	if p.StartDate != nil {
		sub.StartDate = *p.StartDate
	}
	if p.Status != nil {
		sub.Status = *p.Status
	}
	if p.Color != nil {
		sub.Color = *p.Color
	}
	if p.Notes != nil {
		sub.Notes = *p.Notes
	}
	if p.Logo != nil {
		sub.Logo = nilIfEmpty(*p.Logo)
	}
	if p.URL != nil {
		sub.URL = nilIfEmpty(*p.URL)
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type SubscriptionFilter struct {
	Name     string
	Status   Status
	Category Category
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Limit    int
	Offset   int
}
