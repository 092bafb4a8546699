package billing

import (
	"fmt"
	"time"

	"github.com/mmoldabe-dev/subtrack/internal/currency"
	"github.com/mmoldabe-dev/subtrack/internal/domain"
)

type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodWeekly  Period = "weekly"
)

const (
	defaultMonths = 6
	defaultWeeks  = 8
)

func (p Period) Valid() bool {
	return p == PeriodMonthly || p == PeriodWeekly
}

type TrendPoint struct {
	Label     string  `json:"label"`
	FullLabel string  `json:"full_label"`
	Total     float64 `json:"total"`
	Count     int     `json:"count"`
}

// Reconstruct replays the spend of the last count periods ending at now,
// oldest first.
//
// There is no record of when a subscription was paused or cancelled, so a
// subscription that is ACTIVE today counts, at today's price, in every period
// ending after its start date. Historical totals are an approximation.
func Reconstruct(subs []domain.Subscription, displayCurrency string, period Period, count int, now time.Time, conv *currency.Converter) []TrendPoint {
	if count <= 0 {
		count = defaultMonths
		if period == PeriodWeekly {
			count = defaultWeeks
		}
	}

	points := make([]TrendPoint, 0, count)
	for i := count - 1; i >= 0; i-- {
		var start, end time.Time
		if period == PeriodWeekly {
			start = startOfWeek(now).AddDate(0, 0, -7*i)
			end = start.AddDate(0, 0, 7)
		} else {
			start = time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
			end = start.AddDate(0, 1, 0)
		}

		var total float64
		var n int
		for _, sub := range subs {
			if sub.Status != domain.StatusActive || sub.StartDate.After(end) {
				continue
			}
			converted := conv.Convert(sub.Price.InexactFloat64(), sub.Currency, displayCurrency)
			if period == PeriodWeekly {
				total += WeeklyEquivalent(converted, sub.Cycle)
			} else {
				total += MonthlyEquivalent(converted, sub.Cycle)
			}
			n++
		}

		label, full := monthLabels(start)
		if period == PeriodWeekly {
			label, full = weekLabels(start, end)
		}
		points = append(points, TrendPoint{
			Label:     label,
			FullLabel: full,
			Total:     Round2(total),
			Count:     n,
		})
	}
	return points
}

// startOfWeek returns Monday 00:00 of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

func monthLabels(start time.Time) (string, string) {
	return start.Format("Jan 2006"), start.Format("January 2006")
}

func weekLabels(start, end time.Time) (string, string) {
	last := end.AddDate(0, 0, -1)
	return start.Format("Jan 2"), fmt.Sprintf("%s - %s", start.Format("Jan 2"), last.Format("Jan 2, 2006"))
}
