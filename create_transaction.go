package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/findash/findash/dashclient"
	"github.com/findash/findash/finance"
)

func newCreateTransactionForm(accounts []finance.Account) *huh.Form {
	// Create account options
	accountOpts := make([]huh.Option[string], 0, len(accounts))
	for _, a := range accounts {
		label := fmt.Sprintf("%s (%s)", a.Name, finance.InstitutionName(a))
		accountOpts = append(accountOpts, huh.NewOption(label, a.ID))
	}

	// Sort account options
	sort.Slice(accountOpts, func(i, j int) bool {
		return accountOpts[i].Key < accountOpts[j].Key
	})

	// Default date to today
	today := time.Now().Format(finance.DateLayout)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Account").
				Description("The account the transaction belongs to").
				Options(accountOpts...).
				Key("account"),

			huh.NewInput().
				Title("Amount").
				Description("Transaction amount (negative for spending)").
				Key("amount").
				Placeholder("-50.00").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("amount is required")
					}
					if _, err := strconv.ParseFloat(s, 64); err != nil {
						return errors.New("amount must be a valid number")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Key("description").
				Placeholder("Enter description...").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("description is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Date").
				Description("Transaction date (YYYY-MM-DD)").
				Key("date").
				Value(&today).
				Placeholder("YYYY-MM-DD").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("date is required")
					}
					if _, err := time.Parse(finance.DateLayout, s); err != nil {
						return errors.New("date must be in YYYY-MM-DD format")
					}
					return nil
				}),

			huh.NewInput().
				Title("Category (Optional)").
				Key("category").
				Placeholder("Groceries"),
		),
	)
}

func startCreateTransaction(m *model) (tea.Model, tea.Cmd) {
	m.createTransactionForm = newCreateTransactionForm(m.store.Snapshot().Accounts)
	m.previousSessionState = m.sessionState
	m.sessionState = newTransactionState
	return m, tea.Batch(m.createTransactionForm.Init(), tea.WindowSize())
}

func updateCreateTransactionForm(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	form, cmd := m.createTransactionForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.createTransactionForm = f
	} else {
		log.Debug("create transaction form did not return a form")
		return m, nil
	}

	if m.createTransactionForm.State == huh.StateCompleted {
		m.sessionState = transactionsState
		return m, m.submitCreateTransaction
	}

	if m.createTransactionForm.State == huh.StateAborted {
		m.sessionState = m.previousSessionState
		return m, nil
	}

	return m, cmd
}

func (m model) submitCreateTransaction() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	accountID, ok := m.createTransactionForm.Get("account").(string)
	if !ok || accountID == "" {
		return createTransactionMsg{err: errors.New("account not found in form")}
	}

	amountStr := m.createTransactionForm.GetString("amount")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return createTransactionMsg{err: fmt.Errorf("invalid amount: %s", amountStr)}
	}

	req := dashclient.CreateTransactionRequest{
		AccountID:       accountID,
		Amount:          amount,
		Description:     m.createTransactionForm.GetString("description"),
		TransactionDate: m.createTransactionForm.GetString("date"),
	}
	if category := m.createTransactionForm.GetString("category"); category != "" {
		req.Category = &category
	}

	log.Debug("creating transaction", "request", req)

	txn, err := m.client.CreateTransaction(ctx, req)
	if err != nil {
		log.Debug("error creating transaction", "error", err)
		return createTransactionMsg{err: err}
	}

	log.Debug("transaction created", "id", txn.ID)

	return createTransactionMsg{txn: txn}
}
