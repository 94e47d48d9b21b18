package finance

import (
	"fmt"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
)

func txnOn(day int, amount float64) Transaction {
	return Transaction{
		Amount:          amount,
		TransactionDate: fmt.Sprintf("2025-06-%02d", day),
	}
}

func TestSpendingByDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	txns := []Transaction{
		txnOn(5, -20),
		txnOn(5, -5),
		txnOn(9, -10),
	}

	points := SpendingByDay(txns, now)

	expected := []SpendingPoint{
		{DayOfMonth: 0, Amount: 0},
		{DayOfMonth: 5, Amount: 25},
		{DayOfMonth: 9, Amount: 10},
	}
	be.DeepEqual(t, expected, points)
}

func TestSpendingByDayFiltersOtherMonths(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	lastMonth := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	txns := []Transaction{
		txnOn(3, -12.50),
		{Amount: -99, TransactionDate: "2025-05-20", PostedDate: &lastMonth},
		{Amount: -42, TransactionDate: "2024-06-03"},
	}

	points := SpendingByDay(txns, now)

	expected := []SpendingPoint{
		{DayOfMonth: 0, Amount: 0},
		{DayOfMonth: 3, Amount: 12.50},
	}
	be.DeepEqual(t, expected, points)
}

func TestSpendingByDayPrefersPostedDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	posted := time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)

	txns := []Transaction{
		{Amount: -10, TransactionDate: "2025-05-31", PostedDate: &posted},
	}

	points := SpendingByDay(txns, now)

	expected := []SpendingPoint{
		{DayOfMonth: 0, Amount: 0},
		{DayOfMonth: 9, Amount: 10},
	}
	be.DeepEqual(t, expected, points)
}

func TestSpendingByDayEmpty(t *testing.T) {
	points := SpendingByDay(nil, time.Now())
	be.DeepEqual(t, []SpendingPoint{{DayOfMonth: 0, Amount: 0}}, points)
}
