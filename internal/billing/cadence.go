package billing

import (
	"math"
	"time"

	"github.com/mmoldabe-dev/subtrack/internal/domain"
)

// WeeksPerMonth is the weekly-to-monthly factor used across dashboards.
const WeeksPerMonth = 4.33

// MonthlyEquivalent normalizes an amount billed every cycle to a per-month cost.
// Values outside the closed Cycle set are treated as already monthly.
func MonthlyEquivalent(amount float64, cycle domain.Cycle) float64 {
	switch cycle {
	case domain.CycleWeekly:
		return amount * WeeksPerMonth
	case domain.CycleMonthly:
		return amount
	case domain.CycleQuarterly:
		return amount / 3
	case domain.CycleSemiAnnual:
		return amount / 6
	case domain.CycleAnnual:
		return amount / 12
	}
	return amount
}

// WeeklyEquivalent is the per-week counterpart of MonthlyEquivalent.
func WeeklyEquivalent(amount float64, cycle domain.Cycle) float64 {
	if cycle == domain.CycleWeekly {
		return amount
	}
	return MonthlyEquivalent(amount, cycle) / WeeksPerMonth
}

// NextBillingDate computes the first charge date for a new subscription:
// billingDay of the current month, pushed one cycle forward when it is not
// after now. Days past the end of a month are clamped to its last day.
func NextBillingDate(billingDay int, cycle domain.Cycle, now time.Time) time.Time {
	next := dayInMonth(now.Year(), now.Month(), billingDay, now.Location())
	if next.After(now) {
		return next
	}

	switch cycle {
	case domain.CycleWeekly:
		return next.AddDate(0, 0, 7)
	case domain.CycleQuarterly:
		return dayInMonth(next.Year(), next.Month()+3, billingDay, now.Location())
	case domain.CycleSemiAnnual:
		return dayInMonth(next.Year(), next.Month()+6, billingDay, now.Location())
	case domain.CycleAnnual:
		return dayInMonth(next.Year()+1, next.Month(), billingDay, now.Location())
	default:
		return dayInMonth(next.Year(), next.Month()+1, billingDay, now.Location())
	}
}

func dayInMonth(year int, month time.Month, day int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
