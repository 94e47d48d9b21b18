// Package overview renders the dashboard view: account groups, balance
// summary, last sync stats, and the current month's spending chart.
package overview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/findash/findash/finance"
)

var titleCaser = cases.Title(language.English)

// chartWidth is the maximum bar length of the spending chart.
const chartWidth = 30

// Styles collects the lipgloss styles used by the widget.
type Styles struct {
	HeaderStyle   lipgloss.Style
	GroupStyle    lipgloss.Style
	AccountStyle  lipgloss.Style
	BalanceStyle  lipgloss.Style
	DebtStyle     lipgloss.Style
	SubtitleStyle lipgloss.Style
	PanelStyle    lipgloss.Style
	BarStyle      lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		HeaderStyle:   lipgloss.NewStyle().Bold(true),
		GroupStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		AccountStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#d29b1d")),
		BalanceStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		DebtStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		SubtitleStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		PanelStyle:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		BarStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
	}
}

// Model is the dashboard widget state.
type Model struct {
	Styles   Styles
	Viewport viewport.Model

	accounts     []finance.Account
	transactions []finance.Transaction
	syncStats    *finance.SyncStats
	skipped      int
	now          func() time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithNow overrides the clock used for the monthly spending window.
func WithNow(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New creates the dashboard widget.
func New(opts ...Option) Model {
	m := Model{
		Styles:   defaultStyles(),
		Viewport: viewport.New(0, 20),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.UpdateViewport()
	return m
}

// SetAccounts replaces the account list and re-renders.
func (m *Model) SetAccounts(accounts []finance.Account) {
	m.accounts = accounts
	m.UpdateViewport()
}

// SetTransactions replaces the merged transaction stream and re-renders.
func (m *Model) SetTransactions(txns []finance.Transaction) {
	m.transactions = txns
	m.UpdateViewport()
}

// SetSyncStats records the latest sync result for the stats panel.
func (m *Model) SetSyncStats(stats *finance.SyncStats) {
	m.syncStats = stats
	m.UpdateViewport()
}

// SetSkippedAccounts records how many accounts were skipped during the last
// load.
func (m *Model) SetSkippedAccounts(n int) {
	m.skipped = n
	m.UpdateViewport()
}

// SetSize resizes the viewport.
func (m *Model) SetSize(width, height int) {
	m.Viewport.Width = width
	m.Viewport.Height = height
}

// Update scrolls the viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View renders the widget.
func (m Model) View() string {
	return m.Viewport.View()
}

// UpdateViewport rebuilds the viewport content from the current state.
func (m *Model) UpdateViewport() {
	accountsPanel := m.Styles.PanelStyle.Render(m.accountTree().String())

	right := []string{m.summaryView()}
	if chart := m.spendingChart(); chart != "" {
		right = append(right, m.Styles.PanelStyle.Render(chart))
	}
	if stats := m.syncStatsView(); stats != "" {
		right = append(right, m.Styles.PanelStyle.Render(stats))
	}

	m.Viewport.SetContent(lipgloss.JoinHorizontal(lipgloss.Top,
		accountsPanel,
		lipgloss.JoinVertical(lipgloss.Top, right...),
	))
}

// accountTree builds the Credit Cards / Bank Accounts tree. Accounts without
// an institution show a masked account suffix as their subtitle.
func (m *Model) accountTree() *tree.Tree {
	root := tree.New().Root(m.Styles.HeaderStyle.Render("Accounts"))

	groups := map[string][]finance.Account{}
	for _, a := range m.accounts {
		kind := finance.AccountKind(a)
		groups[kind] = append(groups[kind], a)
	}

	for _, kind := range []string{"credit", "bank"} {
		accounts := groups[kind]
		if len(accounts) == 0 {
			continue
		}

		label := "bank accounts"
		if kind == "credit" {
			label = "credit cards"
		}
		branch := tree.New().Root(m.Styles.GroupStyle.Render(titleCaser.String(label)))

		for _, a := range accounts {
			subtitle := finance.InstitutionName(a)
			if a.Institution == "" {
				subtitle = finance.MaskedNumber(a)
			}
			branch.Child(m.Styles.AccountStyle.Render(fmt.Sprintf("%s (%s) %s",
				a.Name,
				finance.FormatBalance(finance.DisplayBalance(a)),
				m.Styles.SubtitleStyle.Render(subtitle),
			)))
		}
		root.Child(branch)
	}

	return root
}

func (m *Model) summaryView() string {
	var bankTotal, creditTotal float64
	for _, a := range m.accounts {
		if finance.IsCreditCard(a) {
			creditTotal += finance.DisplayBalance(a)
		} else {
			bankTotal += a.Balance
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Bank Balance: %s\n",
		m.Styles.BalanceStyle.Render(finance.FormatBalance(bankTotal))))
	b.WriteString(fmt.Sprintf("Credit Card Debt: %s\n",
		m.Styles.DebtStyle.Render(finance.FormatBalance(creditTotal))))

	net := bankTotal - creditTotal
	netStyle := m.Styles.BalanceStyle
	if net < 0 {
		netStyle = m.Styles.DebtStyle
	}
	b.WriteString(fmt.Sprintf("Net: %s", netStyle.Render(finance.FormatBalance(net))))

	if m.skipped > 0 {
		b.WriteString(m.Styles.SubtitleStyle.Render(
			fmt.Sprintf("\n%d account(s) skipped during load", m.skipped)))
	}

	return m.Styles.PanelStyle.Render(b.String())
}

// spendingChart renders the month's credit-card spending as per-day bars.
func (m *Model) spendingChart() string {
	creditAccounts := make(map[string]bool)
	for _, a := range m.accounts {
		if finance.IsCreditCard(a) {
			creditAccounts[a.ID] = true
		}
	}

	var ccTxns []finance.Transaction
	for _, t := range m.transactions {
		if creditAccounts[t.AccountID] {
			ccTxns = append(ccTxns, t)
		}
	}

	now := m.now()
	points := finance.SpendingByDay(ccTxns, now)
	if len(points) <= 1 {
		return ""
	}

	maxAmount := 0.0
	for _, p := range points {
		if p.Amount > maxAmount {
			maxAmount = p.Amount
		}
	}

	var b strings.Builder
	b.WriteString(m.Styles.HeaderStyle.Render(fmt.Sprintf("%s Spending", now.Month())))
	b.WriteString("\n")
	for _, p := range points {
		if p.DayOfMonth == 0 {
			continue
		}

		// A day of net refunds has a negative total; it gets an empty bar.
		width := 0
		if maxAmount > 0 && p.Amount > 0 {
			width = int(p.Amount / maxAmount * chartWidth)
			if width < 1 {
				width = 1
			}
		}

		b.WriteString(fmt.Sprintf("%2d %s %s\n",
			p.DayOfMonth,
			m.Styles.BarStyle.Render(strings.Repeat("█", width)),
			finance.FormatBalance(p.Amount),
		))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) syncStatsView() string {
	if m.syncStats == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.Styles.HeaderStyle.Render("Last Sync"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Accounts updated: %d\n", m.syncStats.AccountsUpdated))
	b.WriteString(fmt.Sprintf("Accounts created: %d\n", m.syncStats.AccountsCreated))
	b.WriteString(fmt.Sprintf("Transactions created: %d\n", m.syncStats.TransactionsCreated))
	b.WriteString(fmt.Sprintf("Balance records: %d\n", m.syncStats.BalanceRecordsCreated))
	b.WriteString(fmt.Sprintf("Duration: %dms", m.syncStats.SyncDurationMs))

	return b.String()
}
