// Package simplefin fetches account data straight from a SimpleFin bridge,
// bypassing the findash backend. Credentials are carried in the access URL's
// userinfo section, as handed out by the bridge's claim flow.
package simplefin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// daysBack is the transaction lookback window on every fetch.
	daysBack = 30

	requestTimeout = 30 * time.Second
)

// Transaction is a raw SimpleFin transaction. Posted and TransactedAt are
// epoch seconds; Amount is a decimal string.
type Transaction struct {
	ID           string `json:"id"`
	Posted       int64  `json:"posted"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	Payee        string `json:"payee,omitempty"`
	Memo         string `json:"memo,omitempty"`
	TransactedAt int64  `json:"transacted_at,omitempty"`
	Pending      bool   `json:"pending,omitempty"`
}

// Organization identifies the institution owning an account.
type Organization struct {
	Name   string `json:"name,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// Account is a raw SimpleFin account. AvailableBalance and IsCreditCard are
// filled in by FetchAccounts, not by the wire format.
type Account struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Org                 *Organization `json:"org,omitempty"`
	Balance             string        `json:"balance"`
	AvailableBalanceRaw *string       `json:"available-balance,omitempty"`
	Transactions        []Transaction `json:"transactions,omitempty"`

	AvailableBalance float64 `json:"-"`
	IsCreditCard     bool    `json:"-"`
}

// AccountSet is the top-level response from the /accounts endpoint.
type AccountSet struct {
	Accounts []Account `json:"accounts"`
}

// EffectiveDate returns the transaction's date, preferring posted time.
func (t *Transaction) EffectiveDate() time.Time {
	epoch := t.Posted
	if epoch == 0 {
		epoch = t.TransactedAt
	}
	if epoch == 0 {
		return time.Time{}
	}
	return time.Unix(epoch, 0).UTC()
}

// Client fetches from a SimpleFin bridge using basic auth.
type Client struct {
	// HTTP is exported so callers can install transports.
	HTTP     *http.Client
	baseURL  string
	username string
	password string
	now      func() time.Time
}

// New parses the access URL and builds a client with a fixed request
// timeout. The URL must embed a username; its absence is a configuration
// error, not a runtime one.
func New(accessURL string) (*Client, error) {
	parsed, err := url.Parse(accessURL)
	if err != nil {
		return nil, fmt.Errorf("invalid SimpleFin access URL: %w", err)
	}
	if parsed.User == nil || parsed.User.Username() == "" {
		return nil, errors.New("SimpleFin access URL must contain a username")
	}

	password, _ := parsed.User.Password()
	base := fmt.Sprintf("%s://%s%s", parsed.Scheme, parsed.Host, strings.TrimRight(parsed.Path, "/"))

	return &Client{
		HTTP:     &http.Client{Timeout: requestTimeout},
		baseURL:  base,
		username: parsed.User.Username(),
		password: password,
		now:      time.Now,
	}, nil
}

// FetchAccounts pulls all accounts with a 30-day transaction lookback,
// pending transactions included. Each account is post-processed once:
// the available-balance string becomes a float and an available balance of
// exactly zero flags the account as a credit card.
func (c *Client) FetchAccounts(ctx context.Context) (*AccountSet, error) {
	start := c.now().Add(-daysBack * 24 * time.Hour).Unix()

	query := url.Values{}
	query.Set("start-date", strconv.FormatInt(start, 10))
	query.Set("pending", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/accounts?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build SimpleFin request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from SimpleFin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("SimpleFin API error: %s", resp.Status)
	}

	var set AccountSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to parse SimpleFin response: %w", err)
	}

	for i := range set.Accounts {
		normalize(&set.Accounts[i])
	}

	return &set, nil
}

// normalize fills the derived fields on a freshly fetched account.
func normalize(a *Account) {
	if a.AvailableBalanceRaw != nil {
		if v, err := strconv.ParseFloat(*a.AvailableBalanceRaw, 64); err == nil {
			a.AvailableBalance = v
			if v == 0 {
				a.IsCreditCard = true
			}
		}
	}
}
