package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/findash/findash/finance"
)

type accountItem struct {
	account finance.Account
}

func (ai accountItem) Title() string {
	return fmt.Sprintf("%s (%s)", ai.account.Name, finance.FormatBalance(finance.DisplayBalance(ai.account)))
}

func (ai accountItem) Description() string {
	subtitle := finance.InstitutionName(ai.account)
	if ai.account.Institution == "" {
		subtitle = finance.MaskedNumber(ai.account)
	}

	kind := "Bank Account"
	if finance.IsCreditCard(ai.account) {
		kind = "Credit Card"
	}

	return fmt.Sprintf("%s %s", kind, subtitle)
}

func (ai accountItem) FilterValue() string {
	return ai.account.Name
}

func updateAccounts(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" &&
		m.accounts.FilterState() != list.Filtering {
		if item, ok := m.accounts.SelectedItem().(accountItem); ok {
			return openAccountDetail(m, item.account)
		}
	}

	var cmd tea.Cmd
	m.accounts, cmd = m.accounts.Update(msg)
	return m, cmd
}

// openAccountDetail switches to the detail state for one account, filtering
// the merged stream down to its transactions.
func openAccountDetail(m model, account finance.Account) (tea.Model, tea.Cmd) {
	m.currentAccount = &account
	m.previousSessionState = m.sessionState
	m.sessionState = accountDetailState

	items := transactionItems(m.store.AccountTransactions(account.ID), m.hidePendingTransactions, m.theme)
	cmd := m.accountDetail.SetItems(items)

	return m, tea.Batch(cmd, tea.WindowSize())
}

func updateAccountDetail(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.accountDetail, cmd = m.accountDetail.Update(msg)
	return m, cmd
}

func accountDetailView(m model) string {
	if m.currentAccount == nil {
		return "No account selected"
	}
	account := *m.currentAccount

	var b strings.Builder
	b.WriteString(m.styles.titleStyle.Render(account.Name))
	b.WriteString("\n")

	line := fmt.Sprintf("%s | %s", finance.InstitutionName(account),
		finance.FormatBalance(finance.DisplayBalance(account)))
	if finance.IsCreditCard(account) {
		line += " | Credit Card"
	}
	b.WriteString(line)
	b.WriteString("\n\n")

	b.WriteString(m.accountDetail.View())

	return b.String()
}
