package main

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	switch m.sessionState {
	case dashboardState:
		b.WriteString(m.overview.View())
	case transactionsState:
		b.WriteString(transactionsView(m))
	case accountsState:
		b.WriteString(m.accounts.View())
	case accountDetailState:
		b.WriteString(accountDetailView(m))
	case newTransactionState:
		b.WriteString(m.createTransactionForm.View())
	case newAccountState:
		b.WriteString(m.createAccountForm.View())
	case configViewState:
		b.WriteString(m.configView.View())
	case loadingState:
		b.WriteString(fmt.Sprintf("%s Loading data...", m.loadingSpinner.View()))
	case errorState:
		b.WriteString(m.styles.errorStyle.Render(
			fmt.Sprintf("%s - 'esc' to go back, 'q' to quit", m.errorMsg),
		))
		return m.styles.docStyle.Render(b.String())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.docStyle.Render(b.String())
}

func (m model) renderTitle() string {
	title := fmt.Sprintf("findash | %s", m.sessionState.String())
	if m.syncing {
		title = fmt.Sprintf("%s | %s syncing", title, m.loadingSpinner.View())
	}

	return m.styles.titleStyle.Render(title)
}
