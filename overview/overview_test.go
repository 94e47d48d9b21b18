package overview

import (
	"strings"
	"testing"
	"time"

	"github.com/findash/findash/finance"
)

func ptr[T any](v T) *T { return &v }

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func testAccounts() []finance.Account {
	return []finance.Account{
		{
			ID:               "cc-1",
			Name:             "Rewards Visa",
			AccountType:      "credit card",
			Balance:          -200,
			AvailableBalance: ptr(0.0),
			IsCreditCard:     ptr(true),
		},
		{
			ID:          "chk-1",
			Name:        "Everyday Checking",
			Institution: "Chase",
			AccountType: "checking",
			Balance:     1500.50,
		},
	}
}

func TestAccountTreeGroupsByKind(t *testing.T) {
	m := New(WithNow(fixedNow))
	m.SetAccounts(testAccounts())

	treeString := m.accountTree().String()

	if !strings.Contains(treeString, "Credit Cards") {
		t.Errorf("expected a Credit Cards group, got:\n%s", treeString)
	}
	if !strings.Contains(treeString, "Bank Accounts") {
		t.Errorf("expected a Bank Accounts group, got:\n%s", treeString)
	}
	if !strings.Contains(treeString, "Rewards Visa") {
		t.Error("expected tree to contain 'Rewards Visa'")
	}
	if !strings.Contains(treeString, "Everyday Checking") {
		t.Error("expected tree to contain 'Everyday Checking'")
	}

	// Credit card balance shows as its absolute value.
	if !strings.Contains(treeString, "$200.00") {
		t.Errorf("expected display balance $200.00 in tree, got:\n%s", treeString)
	}

	// The credit card has no institution, so its subtitle is the masked ID.
	if !strings.Contains(treeString, "**** cc-1") {
		t.Errorf("expected masked subtitle for cc-1, got:\n%s", treeString)
	}
	if !strings.Contains(treeString, "Chase") {
		t.Error("expected institution subtitle 'Chase'")
	}
}

func TestAccountTreeEmpty(t *testing.T) {
	m := New(WithNow(fixedNow))
	m.SetAccounts(nil)

	treeString := m.accountTree().String()
	if !strings.Contains(treeString, "Accounts") {
		t.Error("expected root node even with no accounts")
	}
}

func TestSpendingChartCreditCardsOnly(t *testing.T) {
	m := New(WithNow(fixedNow))
	m.SetAccounts(testAccounts())
	m.SetTransactions([]finance.Transaction{
		{ID: "t1", AccountID: "cc-1", Amount: -20, TransactionDate: "2025-06-05"},
		{ID: "t2", AccountID: "cc-1", Amount: -5, TransactionDate: "2025-06-05"},
		{ID: "t3", AccountID: "cc-1", Amount: -10, TransactionDate: "2025-06-09"},
		// Checking-account spend never shows on the chart.
		{ID: "t4", AccountID: "chk-1", Amount: -500, TransactionDate: "2025-06-05"},
	})

	chart := m.spendingChart()

	if !strings.Contains(chart, "June Spending") {
		t.Errorf("expected chart title, got:\n%s", chart)
	}
	if !strings.Contains(chart, "$25.00") {
		t.Errorf("expected aggregated $25.00 for day 5, got:\n%s", chart)
	}
	if !strings.Contains(chart, "$10.00") {
		t.Errorf("expected $10.00 for day 9, got:\n%s", chart)
	}
	if strings.Contains(chart, "$525.00") {
		t.Error("bank-account transactions leaked into the spending chart")
	}
}

func TestSpendingChartRefundDay(t *testing.T) {
	m := New(WithNow(fixedNow))
	m.SetAccounts(testAccounts())
	m.SetTransactions([]finance.Transaction{
		{ID: "t1", AccountID: "cc-1", Amount: -50, TransactionDate: "2025-06-05"},
		// A day that nets to a refund must not break the chart.
		{ID: "t2", AccountID: "cc-1", Amount: 30, TransactionDate: "2025-06-09"},
	})

	chart := m.spendingChart()

	if !strings.Contains(chart, "$50.00") {
		t.Errorf("expected spend for day 5, got:\n%s", chart)
	}
	if !strings.Contains(chart, "-$30.00") {
		t.Errorf("expected refund total for day 9, got:\n%s", chart)
	}
	lines := strings.Split(chart, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, " 9") && strings.Contains(line, "█") {
			t.Errorf("refund day must render an empty bar, got: %q", line)
		}
	}
}

func TestSpendingChartEmptyWithoutData(t *testing.T) {
	m := New(WithNow(fixedNow))
	m.SetAccounts(testAccounts())

	if chart := m.spendingChart(); chart != "" {
		t.Errorf("expected no chart without transactions, got:\n%s", chart)
	}
}

func TestSummaryViewTotals(t *testing.T) {
	m := New(WithNow(fixedNow))
	m.SetAccounts(testAccounts())

	summary := m.summaryView()
	if !strings.Contains(summary, "$1,500.50") {
		t.Errorf("expected bank total in summary, got:\n%s", summary)
	}
	if !strings.Contains(summary, "$200.00") {
		t.Errorf("expected credit debt in summary, got:\n%s", summary)
	}
}

func TestSummaryViewSkippedAccounts(t *testing.T) {
	m := New(WithNow(fixedNow))
	m.SetAccounts(testAccounts())
	m.SetSkippedAccounts(2)

	if !strings.Contains(m.summaryView(), "2 account(s) skipped") {
		t.Error("expected skipped-account note in summary")
	}
}

func TestSyncStatsView(t *testing.T) {
	m := New(WithNow(fixedNow))

	if m.syncStatsView() != "" {
		t.Error("expected empty stats view before first sync")
	}

	m.SetSyncStats(&finance.SyncStats{
		AccountsUpdated:     3,
		TransactionsCreated: 42,
		SyncDurationMs:      1850,
	})

	stats := m.syncStatsView()
	if !strings.Contains(stats, "Accounts updated: 3") {
		t.Errorf("expected accounts updated line, got:\n%s", stats)
	}
	if !strings.Contains(stats, "Duration: 1850ms") {
		t.Errorf("expected duration line, got:\n%s", stats)
	}
}
