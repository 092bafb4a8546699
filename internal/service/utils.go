package service

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// daysUntil counts whole days to target, rounding any partial day up.
func daysUntil(target, now time.Time) int {
	return int(math.Ceil(float64(target.Sub(now)) / float64(day)))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfTomorrow is the first instant of the day after tomorrow.
func endOfTomorrow(now time.Time) time.Time {
	return startOfDay(now).AddDate(0, 0, 2)
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
