package billing

import (
	"sort"
	"time"

	"github.com/mmoldabe-dev/subtrack/internal/currency"
	"github.com/mmoldabe-dev/subtrack/internal/domain"
)

const (
	upcomingHorizon = 30 * 24 * time.Hour
	upcomingLimit   = 5
)

type CategoryTotal struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
	Color string  `json:"color"`
}

type Stats struct {
	TotalActive     int                               `json:"total_active"`
	MonthlyTotal    float64                           `json:"monthly_total"`
	AnnualTotal     float64                           `json:"annual_total"`
	ByCategory      map[domain.Category]CategoryTotal `json:"by_category"`
	DisplayCurrency string                            `json:"display_currency"`
}

// Aggregate totals the ACTIVE subscriptions in displayCurrency.
//
// MonthlyTotal is cadence-normalized. Category totals are converted but keep
// each subscription's billed price as-is; callers switching to a yearly view
// multiply them by 12.
func Aggregate(subs []domain.Subscription, displayCurrency string, conv *currency.Converter) Stats {
	stats := Stats{
		ByCategory:      make(map[domain.Category]CategoryTotal),
		DisplayCurrency: displayCurrency,
	}

	var monthly float64
	for _, sub := range subs {
		if sub.Status != domain.StatusActive {
			continue
		}
		converted := conv.Convert(sub.Price.InexactFloat64(), sub.Currency, displayCurrency)
		monthly += MonthlyEquivalent(converted, sub.Cycle)
		stats.TotalActive++

		ct := stats.ByCategory[sub.Category]
		ct.Count++
		ct.Total += converted
		ct.Color = sub.Category.ChartColor()
		stats.ByCategory[sub.Category] = ct
	}

	for cat, ct := range stats.ByCategory {
		ct.Total = Round2(ct.Total)
		stats.ByCategory[cat] = ct
	}

	stats.MonthlyTotal = Round2(monthly)
	stats.AnnualTotal = Round2(stats.MonthlyTotal * 12)
	return stats
}

// UpcomingBills returns up to five ACTIVE subscriptions charging within the
// next 30 days, soonest first.
func UpcomingBills(subs []domain.Subscription, now time.Time) []domain.Subscription {
	until := now.Add(upcomingHorizon)

	upcoming := make([]domain.Subscription, 0, upcomingLimit)
	for _, sub := range subs {
		if sub.Status != domain.StatusActive {
			continue
		}
		if sub.NextBilling.Before(now) || sub.NextBilling.After(until) {
			continue
		}
		upcoming = append(upcoming, sub)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextBilling.Before(upcoming[j].NextBilling)
	})

	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	return upcoming
}
