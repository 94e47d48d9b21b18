package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

type keyMap struct {
	dashboard      key.Binding
	transactions   key.Binding
	accounts       key.Binding
	sync           key.Binding
	newTransaction key.Binding
	newAccount     key.Binding
	config         key.Binding
	escape         key.Binding
	fullHelp       key.Binding
	quit           key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.dashboard,
		km.transactions,
		km.accounts,
		km.sync,
		km.quit,
		km.fullHelp,
	}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			km.dashboard,
			km.transactions,
			km.accounts,
			km.config,
			km.quit,
			km.fullHelp,
		},
		{
			km.sync,
			km.newTransaction,
			km.newAccount,
			km.escape,
		},
	}
}

func initializeKeyMap() keyMap {
	keys := keyMap{
		dashboard: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "dashboard"),
		),
		transactions: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "transactions"),
		),
		accounts: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accounts"),
		),
		sync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sync"),
		),
		newTransaction: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new transaction"),
		),
		newAccount: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new account"),
		),
		config: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "configuration"),
		),
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "escape"),
		),
		fullHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	return keys
}

func handleKeyPress(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	k := msg.String()
	log.Debug("key pressed", "key", k)

	// Handle special keys first
	if model, cmd := handleSpecialKeys(msg, m); cmd != nil {
		return model, cmd
	}

	// Check if input is blocked by active forms
	if isInputBlocked(m) {
		return m, nil
	}

	// Handle session state changes
	if model, cmd := handleSessionStateKeys(msg, m); cmd != nil {
		return model, cmd
	}

	return m, nil
}

func handleSpecialKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.escape) {
		return handleEscape(msg, m)
	}

	return m, nil
}

func isInputBlocked(m *model) bool {
	if m.transactions.FilterState() == list.Filtering {
		return true
	}

	if m.accounts.FilterState() == list.Filtering {
		return true
	}

	if m.accountDetail.FilterState() == list.Filtering {
		return true
	}

	if m.createTransactionForm != nil && m.createTransactionForm.State == huh.StateNormal {
		return true
	}

	if m.createAccountForm != nil && m.createAccountForm.State == huh.StateNormal {
		return true
	}

	if m.sessionState == loadingState {
		return true
	}

	return false
}

func handleSessionStateKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.dashboard):
		if m.sessionState != dashboardState {
			m.previousSessionState = m.sessionState
			m.sessionState = dashboardState
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.transactions):
		if m.sessionState != transactionsState {
			m.previousSessionState = m.sessionState
			m.sessionState = transactionsState
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.accounts):
		if m.sessionState != accountsState {
			m.previousSessionState = m.sessionState
			m.sessionState = accountsState
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.sync):
		if !m.syncing {
			m.syncing = true
			return m, tea.Batch(m.syncData, m.loadingSpinner.Tick)
		}

	case key.Matches(msg, m.keys.newTransaction):
		if m.sessionState != newTransactionState {
			return startCreateTransaction(m)
		}

	case key.Matches(msg, m.keys.newAccount):
		if m.sessionState != newAccountState {
			return startCreateAccount(m)
		}

	case key.Matches(msg, m.keys.config):
		if m.sessionState != configViewState {
			m.previousSessionState = m.sessionState
			m.configView.SetFocus(true)
			m.sessionState = configViewState
			return m, nil
		}

	case key.Matches(msg, m.keys.fullHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// handleEscape backs out of the current state, falling back to the dashboard.
func handleEscape(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	if m.sessionState == newTransactionState {
		log.Debug("handling escape in new transaction state")
		m.sessionState = m.previousSessionState
		m.createTransactionForm.State = huh.StateAborted
		return m, nil
	}

	if m.sessionState == newAccountState {
		log.Debug("handling escape in new account state")
		m.sessionState = m.previousSessionState
		m.createAccountForm.State = huh.StateAborted
		return m, nil
	}

	// handle if user is filtering a list and presses escape
	if m.sessionState == transactionsState && m.transactions.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.transactions, cmd = m.transactions.Update(msg)
		return m, cmd
	}

	if m.sessionState == accountsState && m.accounts.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.accounts, cmd = m.accounts.Update(msg)
		return m, cmd
	}

	if m.sessionState == accountDetailState {
		if m.accountDetail.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.accountDetail, cmd = m.accountDetail.Update(msg)
			return m, cmd
		}

		m.currentAccount = nil
		m.sessionState = accountsState
		return m, nil
	}

	if m.sessionState == errorState {
		m.errorMsg = ""
		m.sessionState = dashboardState
		return m, nil
	}

	m.previousSessionState = m.sessionState
	m.sessionState = dashboardState
	return m, nil
}
