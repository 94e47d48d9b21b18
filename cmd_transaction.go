package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/findash/findash/dashclient"
	"github.com/findash/findash/finance"
)

// transactionCmd represents the transaction command.
var transactionCmd = &cobra.Command{
	Use:   "transaction",
	Short: "Transaction management commands",
	Long:  `Commands for managing transactions in findash.`,
}

// transactionListCmd represents the transaction list command.
var transactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions for an account",
	Long:  `List all transactions for one account, in the order the server returns them.`,
	RunE:  transactionListRun,
}

// transactionCreateCmd represents the transaction create command.
var transactionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new transaction",
	Long:  `Create a transaction against an account in findash.`,
	RunE:  transactionCreateRun,
}

func init() {
	// Add transaction subcommands
	transactionCmd.AddCommand(transactionListCmd)
	transactionCmd.AddCommand(transactionCreateCmd)

	// Transaction list flags
	transactionListCmd.Flags().String("account", "", "Account ID (required)")
	transactionListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	_ = transactionListCmd.MarkFlagRequired("account")

	// Transaction create flags
	transactionCreateCmd.Flags().String("account", "", "Account ID (required)")
	transactionCreateCmd.Flags().String("amount", "", "Transaction amount (negative for spending) (required)")
	transactionCreateCmd.Flags().String("description", "", "Transaction description (required)")
	transactionCreateCmd.Flags().String("date", time.Now().Format(finance.DateLayout),
		"Transaction date (YYYY-MM-DD, defaults to today)")
	transactionCreateCmd.Flags().String("category", "", "Category name for the transaction")

	_ = transactionCreateCmd.MarkFlagRequired("account")
	_ = transactionCreateCmd.MarkFlagRequired("amount")
	_ = transactionCreateCmd.MarkFlagRequired("description")
}

func transactionListRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Get and validate output format
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	accountID, _ := cmd.Flags().GetString("account")

	txns, err := client.AccountTransactions(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	// Output based on format
	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(txns)
	case tableOutputFormat:
		return outputTransactionsTable(txns)
	default:
		return errors.New("unsupported output format")
	}
}

func outputTransactionsTable(txns []finance.Transaction) error {
	// Create table
	t := createStyledTable(
		"ID",
		"DATE",
		"DESCRIPTION",
		"CATEGORY",
		"AMOUNT",
		"PENDING",
	)

	// Add transactions to table
	for i := range txns {
		txn := txns[i]

		date := txn.TransactionDate
		if d := txn.Date(); !d.IsZero() {
			date = d.Format(finance.DateLayout)
		}

		t.Row(
			txn.ID,
			date,
			txn.DisplayName(),
			txn.CategoryName(),
			finance.FormatAmount(txn.Amount),
			strconv.FormatBool(txn.IsPending()),
		)
	}

	// Print the table
	fmt.Println(t)

	return nil
}

func transactionCreateRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	accountID, _ := cmd.Flags().GetString("account")
	amountStr, _ := cmd.Flags().GetString("amount")
	description, _ := cmd.Flags().GetString("description")
	dateStr, _ := cmd.Flags().GetString("date")
	category, _ := cmd.Flags().GetString("category")

	// Validate and parse the amount
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %s", amountStr)
	}

	// Validate date format
	if _, err = time.Parse(finance.DateLayout, dateStr); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateStr)
	}

	req := dashclient.CreateTransactionRequest{
		AccountID:       accountID,
		Amount:          amount,
		Description:     description,
		TransactionDate: dateStr,
	}
	if category != "" {
		req.Category = &category
	}

	log.Debug("creating transaction", "request", req)

	txn, err := client.CreateTransaction(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	log.Infof("Transaction created successfully with ID: %s", txn.ID)
	return nil
}
