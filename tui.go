package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/findash/findash/config"
	"github.com/findash/findash/dashclient"
	"github.com/findash/findash/finance"
	"github.com/findash/findash/overview"
	"github.com/findash/findash/provider"
)

const standardMargin = 2

type model struct {
	// loadingSpinner is a spinner model for the initial loading state
	loadingSpinner spinner.Model

	keys   keyMap
	help   help.Model
	styles styles
	theme  Theme

	overview   overview.Model
	configView config.Model

	// sessionState is the current state of the session
	sessionState         sessionState
	previousSessionState sessionState

	// transactions is a bubbletea list model of the merged transaction stream
	transactions      list.Model
	transactionsStats *transactionsStats

	// accounts is a bubbletea list model of all accounts
	accounts list.Model
	// accountDetail lists the transactions of the account under inspection
	accountDetail list.Model
	// currentAccount is the account shown in the detail state
	currentAccount *finance.Account

	createTransactionForm *huh.Form
	createAccountForm     *huh.Form

	// errorMsg is the user-facing message rendered in the error state
	errorMsg string
	// syncing mirrors the store's in-flight sync flag for the title bar
	syncing bool

	// hidePendingTransactions hides pending transactions from all transaction lists
	hidePendingTransactions bool

	// store owns the fetched dashboard data
	store *provider.Store
	// client is the findash backend client, used directly by the create forms
	client *dashclient.Client

	refresh      bool
	refreshEvery time.Duration
}

func newModel(cfg config.Config, store *provider.Store, dc *dashclient.Client) model {
	theme := newTheme(cfg.Colors)

	loadingSpinner := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)

	delegate := newItemDelegate(theme)

	transactionList := list.New([]list.Item{}, delegate, 0, 0)
	transactionList.Title = "Transactions"
	transactionList.StatusMessageLifetime = 5 * time.Second

	accountList := list.New([]list.Item{}, delegate, 0, 0)
	accountList.Title = "Accounts"

	accountDetailList := list.New([]list.Item{}, delegate, 0, 0)
	accountDetailList.SetShowTitle(false)

	configView := config.New()
	configView.SetConfig(cfg)

	refreshEvery := cfg.RefreshInterval
	if refreshEvery <= 0 {
		refreshEvery = 5 * time.Minute
	}

	return model{
		loadingSpinner:          loadingSpinner,
		keys:                    initializeKeyMap(),
		help:                    createHelpModel(theme),
		styles:                  createStyles(theme),
		theme:                   theme,
		overview:                overview.New(),
		configView:              configView,
		sessionState:            loadingState,
		previousSessionState:    dashboardState,
		transactions:            transactionList,
		accounts:                accountList,
		accountDetail:           accountDetailList,
		hidePendingTransactions: cfg.HidePendingTransactions,
		store:                   store,
		client:                  dc,
		refresh:                 cfg.Refresh,
		refreshEvery:            refreshEvery,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadData, m.loadingSpinner.Tick}
	if m.refresh {
		cmds = append(cmds, m.refreshTick())
	}
	return tea.Batch(cmds...)
}

// rootAction starts the TUI. The store is refreshed in the background when
// configured; the UI re-reads its snapshot on a matching tick.
func rootAction(ctx context.Context, cfg config.Config) error {
	store := provider.New(client, provider.WithLogger(log.Default()))

	if cfg.Refresh {
		interval := cfg.RefreshInterval
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go store.Run(ctx, interval)
	}

	p := tea.NewProgram(newModel(cfg, store, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return nil
}
