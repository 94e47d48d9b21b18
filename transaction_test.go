package main

import (
	"testing"

	"github.com/carlmjohnson/be"
	"github.com/charmbracelet/lipgloss"

	"github.com/findash/findash/config"
	"github.com/findash/findash/finance"
)

func TestTransactionItem(t *testing.T) {
	theme := newTheme(config.Colors{})
	payee := "Coffee Shop"
	category := "Dining"
	pending := true

	item := transactionItem{t: finance.Transaction{
		ID:              "t1",
		AccountID:       "a1",
		Amount:          -4.50,
		Description:     "CARD PURCHASE 1234",
		TransactionDate: "2025-01-02",
		Payee:           &payee,
		Category:        &category,
		Pending:         &pending,
	}, theme: theme}

	amount := lipgloss.NewStyle().Foreground(theme.Expense).Render("-$4.50")

	be.Equal(t, "Coffee Shop (Pending)", item.Title())
	be.Equal(t, "Jan 2 Dining "+amount, item.Description())
	be.Equal(t, "Coffee Shop", item.FilterValue())
}

func TestTransactionItemFallbacks(t *testing.T) {
	theme := newTheme(config.Colors{})

	item := transactionItem{t: finance.Transaction{
		ID:              "t2",
		AccountID:       "a1",
		Amount:          100,
		Description:     "DIRECT DEPOSIT",
		TransactionDate: "2025-01-15",
	}, theme: theme}

	amount := lipgloss.NewStyle().Foreground(theme.Income).Render("+$100.00")

	be.Equal(t, "DIRECT DEPOSIT", item.Title())
	be.Equal(t, "Jan 15 Category not available "+amount, item.Description())
}

func TestTransactionItemAmountColoring(t *testing.T) {
	theme := newTheme(config.Colors{Income: "#00cc00", Expense: "#cc0000"})

	credit := transactionItem{t: finance.Transaction{
		ID: "t1", Amount: 25, TransactionDate: "2025-01-05",
	}, theme: theme}
	debit := transactionItem{t: finance.Transaction{
		ID: "t2", Amount: -25, TransactionDate: "2025-01-05",
	}, theme: theme}

	income := lipgloss.NewStyle().Foreground(theme.Income).Render("+$25.00")
	expense := lipgloss.NewStyle().Foreground(theme.Expense).Render("-$25.00")

	// Credits carry the income color, debits the expense color.
	be.Equal(t, "Jan 5 Category not available "+income, credit.Description())
	be.Equal(t, "Jan 5 Category not available "+expense, debit.Description())
}

func TestTransactionItemsHidePending(t *testing.T) {
	pending := true
	txns := []finance.Transaction{
		{ID: "t1", Amount: -10, TransactionDate: "2025-01-01"},
		{ID: "t2", Amount: -20, TransactionDate: "2025-01-02", Pending: &pending},
		{ID: "t3", Amount: 30, TransactionDate: "2025-01-03"},
	}

	be.Equal(t, 3, len(transactionItems(txns, false, Theme{})))
	be.Equal(t, 2, len(transactionItems(txns, true, Theme{})))
}

func TestNewTransactionsStats(t *testing.T) {
	pending := true
	items := transactionItems([]finance.Transaction{
		{ID: "t1", Amount: 100, TransactionDate: "2025-01-01"},
		{ID: "t2", Amount: -40, TransactionDate: "2025-01-02"},
		{ID: "t3", Amount: -10, TransactionDate: "2025-01-03", Pending: &pending},
	}, false, Theme{})

	stats := newTransactionsStats(items)

	be.Equal(t, 100.0, stats.income)
	be.Equal(t, 50.0, stats.spend)
	be.Equal(t, 1, stats.pending)
}
