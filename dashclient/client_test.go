package dashclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carlmjohnson/be"
)

func newTestClient(handler http.HandlerFunc) (*Client, func()) {
	srv := httptest.NewServer(handler)
	return New(srv.URL), srv.Close
}

func TestListAccountsUnwrapsEnvelope(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, http.MethodGet, r.Method)
		be.Equal(t, "/api/accounts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{"id": "acct-1", "name": "Checking", "institution": "Chase", "account_type": "checking", "balance": 500.25},
				{"id": "acct-2", "name": "Visa", "account_type": "credit card", "balance": -200, "available_balance": 0, "is_credit_card": true}
			],
			"error": null
		}`))
	})
	defer done()

	accounts, err := client.ListAccounts(context.Background())
	be.NilErr(t, err)
	be.Equal(t, 2, len(accounts))
	be.Equal(t, "Checking", accounts[0].Name)
	be.Equal(t, 500.25, accounts[0].Balance)
	be.Equal(t, "acct-2", accounts[1].ID)
	be.True(t, accounts[1].IsCreditCard != nil && *accounts[1].IsCreditCard)
}

func TestAccountTransactionsNotFound(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success": false, "data": null, "error": "account not found"}`))
	})
	defer done()

	_, err := client.AccountTransactions(context.Background(), "nope")

	var apiErr *Error
	be.True(t, errors.As(err, &apiErr))
	be.Equal(t, KindNotFound, apiErr.Kind)
	be.Equal(t, 404, apiErr.Status)
	be.Equal(t, "The requested resource was not found", apiErr.Message)
}

func TestSyncClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		expectKind ErrorKind
		expectMsg  string
	}{
		{
			name:       "service unavailable",
			status:     http.StatusServiceUnavailable,
			expectKind: KindServiceUnavailable,
			expectMsg:  "SimpleFin sync service is currently unavailable",
		},
		{
			name:       "internal error",
			status:     http.StatusInternalServerError,
			expectKind: KindInternalError,
			expectMsg:  "An internal server error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, done := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})
			defer done()

			_, err := client.Sync(context.Background())

			var apiErr *Error
			be.True(t, errors.As(err, &apiErr))
			be.Equal(t, tt.expectKind, apiErr.Kind)
			be.Equal(t, tt.expectMsg, apiErr.Message)
		})
	}
}

func TestSyncSuccess(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, http.MethodPost, r.Method)
		be.Equal(t, "/api/sync", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"accounts_updated": 3,
				"accounts_created": 1,
				"transactions_created": 42,
				"balance_records_created": 4,
				"sync_duration_ms": 1850
			},
			"error": null
		}`))
	})
	defer done()

	stats, err := client.Sync(context.Background())
	be.NilErr(t, err)
	be.Equal(t, 3, stats.AccountsUpdated)
	be.Equal(t, 42, stats.TransactionsCreated)
	be.Equal(t, int64(1850), stats.SyncDurationMs)
}

func TestNetworkErrorClassification(t *testing.T) {
	// Point at a server that is already gone.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := New(url)
	_, err := client.ListAccounts(context.Background())

	var apiErr *Error
	be.True(t, errors.As(err, &apiErr))
	be.Equal(t, KindNetworkError, apiErr.Kind)
	be.Equal(t, "Unable to connect to the server. Please check your connection.", apiErr.Message)
	be.Nonzero(t, apiErr.Unwrap())
}

func TestCreateAccountInvalidRequest(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success": false, "data": null, "error": "name is required"}`))
	})
	defer done()

	_, err := client.CreateAccount(context.Background(), CreateAccountRequest{})

	var apiErr *Error
	be.True(t, errors.As(err, &apiErr))
	be.Equal(t, KindInvalidRequest, apiErr.Kind)
	be.Equal(t, "name is required", apiErr.Message)
}

func TestCreateTransaction(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, "/api/transactions", r.URL.Path)
		be.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"id": "txn-9", "account_id": "acct-1", "amount": -12.5, "description": "Lunch", "transaction_date": "2025-06-05"},
			"error": null
		}`))
	})
	defer done()

	txn, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		AccountID:       "acct-1",
		Amount:          -12.5,
		Description:     "Lunch",
		TransactionDate: "2025-06-05",
	})
	be.NilErr(t, err)
	be.Equal(t, "txn-9", txn.ID)
	be.Equal(t, -12.5, txn.Amount)
}

func TestKind(t *testing.T) {
	be.Equal(t, KindNotFound, Kind(&Error{Kind: KindNotFound}))
	be.Equal(t, KindUnknown, Kind(errors.New("plain error")))
}
