package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/findash/findash/dashclient"
	"github.com/findash/findash/finance"
)

// accountsCmd represents the accounts command.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Account management commands",
	Long:  `Commands for managing accounts in findash.`,
}

// accountsListCmd represents the accounts list command.
var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Long:  `List all accounts with their IDs, balances, and details.`,
	RunE:  accountsListRun,
}

// accountsCreateCmd represents the accounts create command.
var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account",
	Long:  `Create a manually managed account in findash.`,
	RunE:  accountsCreateRun,
}

func init() {
	// Add accounts subcommands
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsCreateCmd)

	// Accounts list flags
	accountsListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	// Accounts create flags
	accountsCreateCmd.Flags().String("name", "", "Account name (required)")
	accountsCreateCmd.Flags().String("institution", "", "Institution name")
	accountsCreateCmd.Flags().String("type", "checking", "Account type (checking, savings, credit, other)")
	accountsCreateCmd.Flags().Float64("balance", 0, "Starting balance")

	_ = accountsCreateCmd.MarkFlagRequired("name")
}

func accountsListRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Get and validate output format
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	// Sort accounts by name for consistent output
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})

	// Output based on format
	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(accounts)
	case tableOutputFormat:
		return outputAccountsTable(accounts)
	default:
		return errors.New("unsupported output format")
	}
}

func outputAccountsTable(accounts []finance.Account) error {
	// Create table
	t := createStyledTable(
		"ID",
		"NAME",
		"INSTITUTION",
		"TYPE",
		"BALANCE",
		"CREDIT CARD",
	)

	// Add accounts to table
	for _, account := range accounts {
		institution := account.Institution
		if institution == "" {
			institution = "-"
		}
		t.Row(
			account.ID,
			account.Name,
			institution,
			account.AccountType,
			finance.FormatBalance(finance.DisplayBalance(account)),
			strconv.FormatBool(finance.IsCreditCard(account)),
		)
	}

	// Print the table
	fmt.Println(t)

	return nil
}

func accountsCreateRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	institution, _ := cmd.Flags().GetString("institution")
	accountType, _ := cmd.Flags().GetString("type")
	balance, _ := cmd.Flags().GetFloat64("balance")

	req := dashclient.CreateAccountRequest{
		Name:        name,
		Institution: institution,
		AccountType: accountType,
		Balance:     balance,
	}

	log.Debug("creating account", "request", req)

	account, err := client.CreateAccount(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	log.Infof("Account created successfully with ID: %s", account.ID)
	return nil
}
