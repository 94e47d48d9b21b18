package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/findash/findash/finance"
)

type transactionItem struct {
	t     finance.Transaction
	theme Theme
}

func (ti transactionItem) Title() string {
	title := ti.t.DisplayName()
	if ti.t.IsPending() {
		title += " (Pending)"
	}
	return title
}

func (ti transactionItem) Description() string {
	when := ti.t.TransactionDate
	if d := ti.t.Date(); !d.IsZero() {
		when = d.Format("Jan 2")
	}

	color := ti.theme.Income
	if ti.t.Amount < 0 {
		color = ti.theme.Expense
	}
	amount := lipgloss.NewStyle().Foreground(color).Render(finance.FormatAmount(ti.t.Amount))

	return fmt.Sprintf("%s %s %s", when, ti.t.CategoryName(), amount)
}

func (ti transactionItem) FilterValue() string {
	return ti.t.DisplayName()
}

// transactionItems converts the merged stream into list items, dropping
// pending transactions when configured to.
func transactionItems(txns []finance.Transaction, hidePending bool, theme Theme) []list.Item {
	items := make([]list.Item, 0, len(txns))
	for i := range txns {
		if hidePending && txns[i].IsPending() {
			continue
		}
		items = append(items, transactionItem{t: txns[i], theme: theme})
	}
	return items
}

// transactionsStats summarizes the listed transactions for the footer line.
type transactionsStats struct {
	income  float64
	spend   float64
	pending int
}

func newTransactionsStats(items []list.Item) *transactionsStats {
	stats := &transactionsStats{}

	for _, item := range items {
		ti, ok := item.(transactionItem)
		if !ok {
			continue
		}

		if ti.t.IsPending() {
			stats.pending++
		}

		if ti.t.Amount >= 0 {
			stats.income += ti.t.Amount
		} else {
			stats.spend -= ti.t.Amount
		}
	}

	return stats
}

func (s *transactionsStats) view(theme Theme) string {
	if s == nil {
		return ""
	}

	income := lipgloss.NewStyle().Foreground(theme.Income).Render(finance.FormatBalance(s.income))
	spend := lipgloss.NewStyle().Foreground(theme.Expense).Render(finance.FormatBalance(s.spend))

	return fmt.Sprintf("In: %s  Out: %s  Pending: %d", income, spend, s.pending)
}

func updateTransactions(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.transactions, cmd = m.transactions.Update(msg)
	return m, cmd
}

func transactionsView(m model) string {
	var b strings.Builder
	b.WriteString(m.transactions.View())

	if stats := m.transactionsStats.view(m.theme); stats != "" {
		b.WriteString("\n")
		b.WriteString(stats)
	}

	return b.String()
}
