// Package dashclient is a typed client for the findash backend REST API.
// Every call unwraps the server's {success, data, error} envelope and
// classifies failures into user-facing error kinds.
package dashclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/findash/findash/finance"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:3001"

// Client talks to the findash backend. The zero value is not usable; use New.
type Client struct {
	// HTTP is exported so callers can install transports, e.g. debug logging.
	HTTP    *http.Client
	baseURL string
}

// New creates a client for the given base URL. An empty baseURL falls back
// to DefaultBaseURL. No request timeout is set; the transport default
// applies.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		HTTP:    &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// CreateAccountRequest is the payload for creating an account by hand.
type CreateAccountRequest struct {
	Name        string  `json:"name"`
	Institution string  `json:"institution"`
	AccountType string  `json:"account_type"`
	Balance     float64 `json:"balance"`
}

// CreateTransactionRequest is the payload for creating a transaction by hand.
type CreateTransactionRequest struct {
	AccountID       string  `json:"account_id"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	TransactionDate string  `json:"transaction_date"`
	Category        *string `json:"category"`
}

// envelope is the wire wrapper around every response body.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

// ListAccounts returns all accounts in server order.
func (c *Client) ListAccounts(ctx context.Context) ([]finance.Account, error) {
	var accounts []finance.Account
	if err := c.do(ctx, http.MethodGet, "/api/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccount returns a single account by ID.
func (c *Client) GetAccount(ctx context.Context, id string) (*finance.Account, error) {
	var account finance.Account
	if err := c.do(ctx, http.MethodGet, "/api/accounts/"+id, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// AccountTransactions returns the transactions for one account in server
// order. A missing account surfaces as NOT_FOUND.
func (c *Client) AccountTransactions(ctx context.Context, accountID string) ([]finance.Transaction, error) {
	var txns []finance.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/accounts/"+accountID+"/transactions", nil, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// CreateAccount creates an account and returns the stored entity.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*finance.Account, error) {
	var account finance.Account
	if err := c.do(ctx, http.MethodPost, "/api/accounts", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateTransaction creates a transaction and returns the stored entity.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*finance.Transaction, error) {
	var txn finance.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", req, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// Sync asks the backend to re-pull data from the aggregation source.
func (c *Client) Sync(ctx context.Context) (*finance.SyncStats, error) {
	var stats finance.SyncStats
	if err := c.do(ctx, http.MethodPost, "/api/sync", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do performs a request and unwraps the envelope into out. The envelope's
// data shape is trusted; only HTTP status and transport failures are
// classified.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		serverMsg := ""
		if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr == nil && env.Error != nil {
			serverMsg = *env.Error
		}
		return classifyStatus(resp.StatusCode, serverMsg)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return decodeError(err)
	}
	if out == nil || env.Data == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return decodeError(err)
	}
	return nil
}
