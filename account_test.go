package main

import (
	"testing"

	"github.com/carlmjohnson/be"

	"github.com/findash/findash/finance"
)

func TestAccountItem(t *testing.T) {
	item := accountItem{account: finance.Account{
		ID:          "b1",
		Name:        "Checking",
		Institution: "Chase",
		AccountType: "checking",
		Balance:     1500.50,
	}}

	be.Equal(t, "Checking ($1,500.50)", item.Title())
	be.Equal(t, "Bank Account Chase", item.Description())
	be.Equal(t, "Checking", item.FilterValue())
}

func TestAccountItemCreditCard(t *testing.T) {
	avail := 500.0
	isCC := true

	item := accountItem{account: finance.Account{
		ID:               "acc-3f2a",
		Name:             "Visa",
		AccountType:      "credit",
		Balance:          -200,
		AvailableBalance: &avail,
		IsCreditCard:     &isCC,
	}}

	// Credit cards with a known available balance show the absolute value
	be.Equal(t, "Visa ($200.00)", item.Title())
	// No institution, so the subtitle falls back to the masked identifier
	be.Equal(t, "Credit Card **** 3f2a", item.Description())
}
