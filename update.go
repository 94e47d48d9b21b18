package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// always check for quit key first
	if msg, ok := msg.(tea.KeyMsg); ok {
		if model, cmd := handleKeyPress(msg, &m); cmd != nil {
			log.Debug("key press handled, cmd returned")
			return model, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)

	case loadCompletedMsg:
		return m.handleLoadCompleted(msg)

	case syncCompletedMsg:
		return m.handleSyncCompleted(msg)

	case refreshTickMsg:
		return m.handleRefreshTick(msg)

	case createTransactionMsg:
		if msg.err != nil {
			return m, m.transactions.NewStatusMessage(
				fmt.Sprintf("Error creating transaction: %s", msg.err.Error()),
			)
		}

		return m, tea.Batch(m.loadData,
			m.transactions.NewStatusMessage("Transaction created successfully!"),
		)

	case createAccountMsg:
		if msg.err != nil {
			return m, m.accounts.NewStatusMessage(
				fmt.Sprintf("Error creating account: %s", msg.err.Error()),
			)
		}

		return m, tea.Batch(m.loadData,
			m.accounts.NewStatusMessage("Account created successfully!"),
		)
	}

	var cmd tea.Cmd
	switch m.sessionState {
	case dashboardState:
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd

	case transactionsState:
		return updateTransactions(msg, m)

	case accountsState:
		return updateAccounts(msg, m)

	case accountDetailState:
		return updateAccountDetail(msg, m)

	case newTransactionState:
		return updateCreateTransactionForm(msg, m)

	case newAccountState:
		return updateCreateAccountForm(msg, m)

	case configViewState:
		m.configView, cmd = m.configView.Update(msg)
		return m, cmd

	case loadingState:
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		return m, cmd
	}

	return m, nil
}
