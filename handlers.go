package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/findash/findash/finance"
	"github.com/findash/findash/provider"
)

// Message types for store lifecycle and create-form results.
type (
	loadCompletedMsg struct {
		snap provider.Snapshot
	}

	syncCompletedMsg struct {
		snap provider.Snapshot
	}

	refreshTickMsg struct{}

	createTransactionMsg struct {
		txn *finance.Transaction
		err error
	}

	createAccountMsg struct {
		account *finance.Account
		err     error
	}
)

// Message handlers.
func (m model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h, v := m.styles.docStyle.GetFrameSize()

	takenHeight := 5
	m.overview.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.overview.Viewport.Width = msg.Width
	m.overview.Viewport.Height = msg.Height - takenHeight

	m.transactions.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.accounts.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.accountDetail.SetSize(msg.Width-h, msg.Height-v-takenHeight-3)
	m.configView.SetSize(msg.Width-h, msg.Height-v-takenHeight)

	m.help.Width = msg.Width

	if m.createTransactionForm != nil {
		m.createTransactionForm = m.createTransactionForm.WithHeight(msg.Height - 5).WithWidth(msg.Width)
	}
	if m.createAccountForm != nil {
		m.createAccountForm = m.createAccountForm.WithHeight(msg.Height - 5).WithWidth(msg.Width)
	}

	return m, nil
}

func (m model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.sessionState != loadingState && !m.syncing {
		return m, nil
	}

	var cmd tea.Cmd
	m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
	return m, cmd
}

// handleLoadCompleted applies a fresh snapshot to every view and leaves the
// loading state.
func (m model) handleLoadCompleted(msg loadCompletedMsg) (tea.Model, tea.Cmd) {
	cmd := m.applySnapshot(msg.snap)

	if msg.snap.State == provider.StateError {
		m.previousSessionState = m.sessionState
		m.sessionState = errorState
		m.errorMsg = msg.snap.Err
		return m, cmd
	}

	if m.sessionState == loadingState {
		m.sessionState = dashboardState
	}

	return m, tea.Batch(cmd, tea.WindowSize())
}

func (m model) handleSyncCompleted(msg syncCompletedMsg) (tea.Model, tea.Cmd) {
	m.syncing = false
	cmd := m.applySnapshot(msg.snap)

	if msg.snap.State == provider.StateError {
		m.previousSessionState = m.sessionState
		m.sessionState = errorState
		m.errorMsg = msg.snap.Err
		return m, cmd
	}

	return m, tea.Batch(cmd, m.transactions.NewStatusMessage("Sync completed"))
}

// handleRefreshTick re-reads the store snapshot. The background refresher owns
// the actual fetching; a tick only picks up whatever has landed since.
func (m model) handleRefreshTick(_ refreshTickMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.refreshTick()}

	snap := m.store.Snapshot()
	if snap.State == provider.StateReady {
		cmds = append(cmds, m.applySnapshot(snap))
	}

	return m, tea.Batch(cmds...)
}

// applySnapshot pushes store state into the overview and both lists.
func (m *model) applySnapshot(snap provider.Snapshot) tea.Cmd {
	m.overview.SetAccounts(snap.Accounts)
	m.overview.SetTransactions(snap.Transactions)
	m.overview.SetSyncStats(snap.SyncStats)
	m.overview.SetSkippedAccounts(snap.SkippedAccounts)

	accountItems := make([]list.Item, len(snap.Accounts))
	for i, a := range snap.Accounts {
		accountItems[i] = accountItem{account: a}
	}
	accountsCmd := m.accounts.SetItems(accountItems)

	items := transactionItems(snap.Transactions, m.hidePendingTransactions, m.theme)
	transactionsCmd := m.transactions.SetItems(items)
	m.transactionsStats = newTransactionsStats(items)

	return tea.Batch(accountsCmd, transactionsCmd)
}

// Store-driving commands.
func (m model) loadData() tea.Msg {
	ctx := context.Background()

	if err := m.store.Load(ctx); err != nil {
		log.Debug("load failed", "error", err)
	}

	return loadCompletedMsg{snap: m.store.Snapshot()}
}

func (m model) syncData() tea.Msg {
	ctx := context.Background()

	if _, err := m.store.Sync(ctx); err != nil {
		log.Debug("sync failed", "error", err)
	}

	return syncCompletedMsg{snap: m.store.Snapshot()}
}

func (m model) refreshTick() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}
