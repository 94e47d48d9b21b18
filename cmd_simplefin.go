package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/findash/findash/finance"
	"github.com/findash/findash/simplefin"
)

// simplefinCmd represents the simplefin command.
var simplefinCmd = &cobra.Command{
	Use:   "simplefin",
	Short: "SimpleFin bridge commands",
	Long:  `Commands that talk to the SimpleFin bridge directly, bypassing the findash backend.`,
}

// simplefinAccountsCmd represents the simplefin accounts command.
var simplefinAccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Fetch accounts straight from the SimpleFin bridge",
	Long:  `Fetch accounts and their last 30 days of transactions straight from the SimpleFin bridge.`,
	RunE:  simplefinAccountsRun,
}

func init() {
	// Add simplefin accounts subcommand
	simplefinCmd.AddCommand(simplefinAccountsCmd)

	// Simplefin accounts flags
	simplefinAccountsCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
}

func simplefinAccountsRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Get and validate output format
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	if cfg.SimplefinAccessURL == "" {
		return errors.New("SimpleFin access URL is required (set via --simplefin-access-url flag, " +
			"SIMPLEFIN_ACCESS_URL environment variable, or config file)")
	}

	sfc, err := simplefin.New(cfg.SimplefinAccessURL)
	if err != nil {
		return err
	}
	sfc.HTTP.Transport = newLoggingTransport(sfc.HTTP.Transport, log.Default())

	set, err := sfc.FetchAccounts(ctx)
	if err != nil {
		return err
	}

	// Sort accounts by name for consistent output
	sort.Slice(set.Accounts, func(i, j int) bool {
		return set.Accounts[i].Name < set.Accounts[j].Name
	})

	// Output based on format
	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(set.Accounts)
	case tableOutputFormat:
		printSimplefinAccounts(set.Accounts)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}

// printSimplefinAccounts renders each account with its recent transactions,
// most recent first.
func printSimplefinAccounts(accounts []simplefin.Account) {
	for i := range accounts {
		account := accounts[i]

		header := account.Name
		if account.IsCreditCard {
			header += " [CC]"
		}
		if account.Org != nil && account.Org.Name != "" {
			header += " - " + account.Org.Name
		}

		fmt.Println(header)

		if balance, err := strconv.ParseFloat(account.Balance, 64); err == nil {
			fmt.Printf("  Balance: %s\n", finance.FormatBalance(balance))
		} else {
			fmt.Printf("  Balance: %s\n", account.Balance)
		}

		txns := append([]simplefin.Transaction(nil), account.Transactions...)
		sort.SliceStable(txns, func(a, b int) bool {
			return txns[a].EffectiveDate().After(txns[b].EffectiveDate())
		})

		for j := range txns {
			txn := txns[j]

			display := txn.Amount
			if amount, parseErr := strconv.ParseFloat(txn.Amount, 64); parseErr == nil {
				display = finance.FormatAmount(amount)
			}

			pending := ""
			if txn.Pending {
				pending = " (pending)"
			}

			fmt.Printf("  %s  %-40.40s %12s%s\n",
				txn.EffectiveDate().Format(finance.DateLayout),
				txn.Description,
				display,
				pending,
			)
		}

		fmt.Println()
	}
}
