package finance

import (
	"slices"
	"time"
)

// SpendingPoint is one day's aggregated spend for the spending chart.
type SpendingPoint struct {
	DayOfMonth int     `json:"dayOfMonth"`
	Amount     float64 `json:"amount"`
}

// SpendingByDay aggregates per-day spend for the month containing now.
// Amounts are negated so that spending charts positive, and a day-0 zero
// point is always injected to anchor the axis. Callers are expected to pass
// credit-card transactions only. The result is sorted ascending by day.
func SpendingByDay(txns []Transaction, now time.Time) []SpendingPoint {
	perDay := make(map[int]float64)

	for i := range txns {
		d := txns[i].Date()
		if d.IsZero() || d.Month() != now.Month() || d.Year() != now.Year() {
			continue
		}
		perDay[d.Day()] += -txns[i].Amount
	}

	points := make([]SpendingPoint, 0, len(perDay)+1)
	for day, amount := range perDay {
		points = append(points, SpendingPoint{DayOfMonth: day, Amount: amount})
	}
	points = append(points, SpendingPoint{DayOfMonth: 0, Amount: 0})

	slices.SortFunc(points, func(a, b SpendingPoint) int {
		return a.DayOfMonth - b.DayOfMonth
	})

	return points
}
