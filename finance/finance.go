// Package finance holds the canonical account and transaction model shared
// by the REST client, the SimpleFin client, and the UI, along with the pure
// normalization rules applied to raw server data.
package finance

import (
	"math"
	"time"

	"github.com/Rhymond/go-money"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

// Account is a bank or credit-card record as returned by the server.
type Account struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Institution string    `json:"institution"`
	AccountType string    `json:"account_type"`
	Balance     float64   `json:"balance"`
	LastUpdated time.Time `json:"last_updated"`
	CreatedAt   time.Time `json:"created_at"`
	// SimpleFin integration fields, absent for manually created accounts.
	SimplefinID      *string  `json:"simplefin_id,omitempty"`
	AvailableBalance *float64 `json:"available_balance"`
	IsCreditCard     *bool    `json:"is_credit_card"`
}

// Transaction is a single posted or pending movement against an account.
type Transaction struct {
	ID              string    `json:"id"`
	AccountID       string    `json:"account_id"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	TransactionDate string    `json:"transaction_date"`
	Category        *string   `json:"category"`
	CreatedAt       time.Time `json:"created_at"`
	// SimpleFin integration fields.
	SimplefinID *string    `json:"simplefin_id,omitempty"`
	PostedDate  *time.Time `json:"posted_date"`
	Payee       *string    `json:"payee"`
	Memo        *string    `json:"memo"`
	Pending     *bool      `json:"pending"`
}

// SyncStats is the result of a sync run, passed through to the UI unchanged.
type SyncStats struct {
	AccountsUpdated       int   `json:"accounts_updated"`
	AccountsCreated       int   `json:"accounts_created"`
	TransactionsCreated   int   `json:"transactions_created"`
	BalanceRecordsCreated int   `json:"balance_records_created"`
	SyncDurationMs        int64 `json:"sync_duration_ms"`
}

// IsCreditCard reports whether the account is a credit card. An explicit
// server-provided flag wins; otherwise an available balance of exactly zero
// marks the account as a credit card. A zeroed-out checking account trips the
// inference too — observed behavior, kept as is.
func IsCreditCard(a Account) bool {
	if a.IsCreditCard != nil {
		return *a.IsCreditCard
	}
	return a.AvailableBalance != nil && *a.AvailableBalance == 0
}

// DisplayBalance returns the balance adjusted for presentation: credit cards
// with a known available balance show the absolute value, everything else
// shows the balance unmodified.
func DisplayBalance(a Account) float64 {
	if IsCreditCard(a) && a.AvailableBalance != nil {
		return math.Abs(a.Balance)
	}
	return a.Balance
}

// InstitutionName returns the owning institution, falling back to the
// account type label when the server did not provide one.
func InstitutionName(a Account) string {
	if a.Institution != "" {
		return a.Institution
	}
	return a.AccountType
}

// AccountKind returns the route/display label for the account.
func AccountKind(a Account) string {
	if IsCreditCard(a) {
		return "credit"
	}
	return "bank"
}

// MaskedNumber renders the trailing account identifier the way the cards do,
// e.g. "**** 3f2a".
func MaskedNumber(a Account) string {
	const visible = 4
	id := a.ID
	if len(id) > visible {
		id = id[len(id)-visible:]
	}
	return "**** " + id
}

// Date returns the transaction's effective date, preferring the posted date
// over the transaction date.
func (t *Transaction) Date() time.Time {
	if t.PostedDate != nil {
		return *t.PostedDate
	}
	d, err := time.Parse(DateLayout, t.TransactionDate)
	if err != nil {
		return time.Time{}
	}
	return d
}

// DisplayName returns the payee when present, otherwise the description.
func (t *Transaction) DisplayName() string {
	if t.Payee != nil && *t.Payee != "" {
		return *t.Payee
	}
	return t.Description
}

// IsPending reports whether the transaction is still pending.
func (t *Transaction) IsPending() bool {
	return t.Pending != nil && *t.Pending
}

// CategoryName returns the transaction category with the placeholder used
// across the UI when none is set.
func (t *Transaction) CategoryName() string {
	if t.Category != nil && *t.Category != "" {
		return *t.Category
	}
	return "Category not available"
}

// FormatAmount renders a signed amount for display: "-$42.50" for debits,
// "+$42.50" for credits. Zero counts as a credit.
func FormatAmount(v float64) string {
	display := money.NewFromFloat(math.Abs(v), money.USD).Display()
	if v < 0 {
		return "-" + display
	}
	return "+" + display
}

// FormatBalance renders an unsigned balance, e.g. "$1,500.50".
func FormatBalance(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}
