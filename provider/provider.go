// Package provider owns the fetched dashboard state: the account list, the
// merged transaction stream, and the load/sync lifecycle around them. It
// replaces ambient page-global state with an explicit store that is created
// on startup, driven by the UI, and torn down by context cancellation.
package provider

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/findash/findash/dashclient"
	"github.com/findash/findash/finance"
)

// State is the page-level lifecycle of the store.
type State int

const (
	// StateLoading means the initial or a user-requested full load is in
	// flight and no content should render yet.
	StateLoading State = iota
	// StateReady means accounts and transactions are populated.
	StateReady
	// StateError means the last load or sync failed; Err carries the
	// user-facing message. Previously loaded data stays in the snapshot.
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// errLoadInFlight rejects a sync request while the initial load is showing.
var errLoadInFlight = errors.New("load already in progress")

// API is the subset of the backend client the store depends on.
type API interface {
	ListAccounts(ctx context.Context) ([]finance.Account, error)
	AccountTransactions(ctx context.Context, accountID string) ([]finance.Transaction, error)
	Sync(ctx context.Context) (*finance.SyncStats, error)
}

// Snapshot is an immutable view of the store for rendering. Slices are
// shared but never mutated after publication.
type Snapshot struct {
	State        State
	Accounts     []finance.Account
	Transactions []finance.Transaction
	// SkippedAccounts counts accounts whose transaction fetch failed during
	// the last load. Their failures never fail the load as a whole.
	SkippedAccounts int
	// Err is the user-facing message when State is StateError.
	Err string
	// Syncing is true while a sync request is in flight. It can only be set
	// outside StateLoading.
	Syncing    bool
	SyncStats  *finance.SyncStats
	LastLoaded time.Time
}

// Store is the dashboard data provider. All methods are safe for concurrent
// use; a generation counter ensures a superseded load can never clobber the
// state of a newer one.
type Store struct {
	api        API
	logger     *log.Logger
	fetchLimit int
	now        func() time.Time

	mu         sync.Mutex
	generation uint64
	snap       Snapshot
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for per-account fetch failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithFetchLimit bounds how many per-account transaction fetches run at
// once.
func WithFetchLimit(n int) Option {
	return func(s *Store) { s.fetchLimit = n }
}

// New creates a store in the loading state.
func New(api API, opts ...Option) *Store {
	s := &Store{
		api:        api,
		logger:     log.Default(),
		fetchLimit: 4,
		now:        time.Now,
		snap:       Snapshot{State: StateLoading},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current view of the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// AccountTransactions filters the merged transaction stream down to one
// account, preserving delivery order.
func (s *Store) AccountTransactions(accountID string) []finance.Transaction {
	snap := s.Snapshot()
	var txns []finance.Transaction
	for _, t := range snap.Transactions {
		if t.AccountID == accountID {
			txns = append(txns, t)
		}
	}
	return txns
}

// Load runs a full load with a visible loading state: the account list
// first, then every account's transactions. A single account's transaction
// failure is logged, counted, and skipped; only the account-list fetch
// failing moves the store to StateError.
func (s *Store) Load(ctx context.Context) error {
	gen := s.begin(true)
	return s.load(ctx, gen)
}

// Refresh reloads silently: content keeps rendering from the previous
// snapshot until the new one lands, and only the accounts, transactions,
// and error fields update.
func (s *Store) Refresh(ctx context.Context) error {
	gen := s.begin(false)
	return s.load(ctx, gen)
}

// begin starts a new load cycle and returns its generation. Any cycle still
// in flight is superseded from this point on.
func (s *Store) begin(visible bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if visible {
		s.snap.State = StateLoading
		s.snap.Err = ""
	}
	return s.generation
}

// accountFetch is the per-item result of one account's transaction fetch.
type accountFetch struct {
	txns []finance.Transaction
	err  error
}

func (s *Store) load(ctx context.Context, gen uint64) error {
	accounts, err := s.api.ListAccounts(ctx)
	if err != nil {
		s.logger.Error("failed to load accounts", "error", err)
		s.applyError(gen, err.Error())
		return err
	}

	results := make([]accountFetch, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchLimit)
	for i := range accounts {
		g.Go(func() error {
			txns, fetchErr := s.api.AccountTransactions(gctx, accounts[i].ID)
			results[i] = accountFetch{txns: txns, err: fetchErr}
			return nil
		})
	}
	// Errors are captured per item, never returned to the group.
	_ = g.Wait()

	var merged []finance.Transaction
	skipped := 0
	for i, res := range results {
		if res.err != nil {
			skipped++
			s.logger.Warn("skipping account transactions",
				"account_id", accounts[i].ID,
				"error", res.err,
			)
			continue
		}
		merged = append(merged, res.txns...)
	}

	s.apply(gen, func(snap *Snapshot) {
		snap.State = StateReady
		snap.Accounts = accounts
		snap.Transactions = merged
		snap.SkippedAccounts = skipped
		snap.Err = ""
		snap.LastLoaded = s.now()
	})
	return nil
}

// Sync triggers a backend sync and reloads on success. Previously loaded
// data always survives a failed sync; the error is surfaced as a user-facing
// message classified by kind. Syncing is cleared on every path.
func (s *Store) Sync(ctx context.Context) (*finance.SyncStats, error) {
	s.mu.Lock()
	if s.snap.State == StateLoading {
		s.mu.Unlock()
		return nil, errLoadInFlight
	}
	s.snap.Syncing = true
	s.snap.SyncStats = nil
	gen := s.generation
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.snap.Syncing = false
		s.mu.Unlock()
	}()

	stats, err := s.api.Sync(ctx)
	if err != nil {
		s.logger.Error("sync failed", "error", err)
		s.applyError(gen, syncErrorMessage(err))
		return nil, err
	}

	s.apply(gen, func(snap *Snapshot) {
		snap.SyncStats = stats
	})

	reloadGen := s.begin(false)
	if err := s.load(ctx, reloadGen); err != nil {
		return stats, err
	}
	return stats, nil
}

// Run refreshes the store on a fixed interval until the context is
// canceled. The refresh is silent; a failed one surfaces through the Err
// field only.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("background refresh failed", "error", err)
			}
		}
	}
}

// apply mutates the snapshot only when gen is still the latest cycle.
func (s *Store) apply(gen uint64, mutate func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("discarding stale load result", "generation", gen, "current", s.generation)
		return
	}
	mutate(&s.snap)
}

func (s *Store) applyError(gen uint64, msg string) {
	s.apply(gen, func(snap *Snapshot) {
		snap.State = StateError
		snap.Err = msg
	})
}

// syncErrorMessage maps a failed sync to the message shown to the user.
func syncErrorMessage(err error) string {
	switch dashclient.Kind(err) {
	case dashclient.KindServiceUnavailable:
		return "SimpleFin sync is currently unavailable. Please try again later."
	case dashclient.KindNetworkError:
		return "Unable to connect to the server. Please check your connection and try again."
	default:
		if msg := err.Error(); msg != "" {
			return msg
		}
		return "Sync failed. Please try again."
	}
}
