package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/findash/findash/dashclient"
)

func newCreateAccountForm() *huh.Form {
	typeOpts := []huh.Option[string]{
		huh.NewOption("Checking", "checking"),
		huh.NewOption("Savings", "savings"),
		huh.NewOption("Credit Card", "credit"),
		huh.NewOption("Investment", "investment"),
		huh.NewOption("Other", "other"),
	}

	defaultBalance := "0"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("The account name").
				Key("name").
				Placeholder("Enter account name...").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("name is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Institution (Optional)").
				Key("institution").
				Placeholder("Enter institution name..."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Account Type").
				Options(typeOpts...).
				Key("type"),

			huh.NewInput().
				Title("Starting Balance").
				Key("balance").
				Value(&defaultBalance).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("balance is required")
					}
					if _, err := strconv.ParseFloat(s, 64); err != nil {
						return errors.New("balance must be a valid number")
					}
					return nil
				}),
		),
	)
}

func startCreateAccount(m *model) (tea.Model, tea.Cmd) {
	m.createAccountForm = newCreateAccountForm()
	m.previousSessionState = m.sessionState
	m.sessionState = newAccountState
	return m, tea.Batch(m.createAccountForm.Init(), tea.WindowSize())
}

func updateCreateAccountForm(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	form, cmd := m.createAccountForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.createAccountForm = f
	} else {
		log.Debug("create account form did not return a form")
		return m, nil
	}

	if m.createAccountForm.State == huh.StateCompleted {
		m.sessionState = accountsState
		return m, m.submitCreateAccount
	}

	if m.createAccountForm.State == huh.StateAborted {
		m.sessionState = m.previousSessionState
		return m, nil
	}

	return m, cmd
}

func (m model) submitCreateAccount() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	balanceStr := m.createAccountForm.GetString("balance")
	balance, err := strconv.ParseFloat(balanceStr, 64)
	if err != nil {
		return createAccountMsg{err: fmt.Errorf("invalid balance: %s", balanceStr)}
	}

	req := dashclient.CreateAccountRequest{
		Name:        m.createAccountForm.GetString("name"),
		Institution: m.createAccountForm.GetString("institution"),
		AccountType: m.createAccountForm.GetString("type"),
		Balance:     balance,
	}

	log.Debug("creating account", "request", req)

	account, err := m.client.CreateAccount(ctx, req)
	if err != nil {
		log.Debug("error creating account", "error", err)
		return createAccountMsg{err: err}
	}

	log.Debug("account created", "id", account.ID)

	return createAccountMsg{account: account}
}
