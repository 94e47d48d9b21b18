package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/findash/findash/finance"
)

// syncCmd represents the sync command.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Trigger a SimpleFin sync",
	Long:  `Ask the findash backend to pull fresh data from the SimpleFin bridge and report what changed.`,
	RunE:  syncRun,
}

func init() {
	syncCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
}

func syncRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Get and validate output format
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	stats, err := client.Sync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	// Output based on format
	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(stats)
	case tableOutputFormat:
		return outputSyncStatsTable(stats)
	default:
		return errors.New("unsupported output format")
	}
}

func outputSyncStatsTable(stats *finance.SyncStats) error {
	// Create table
	t := createStyledTable(
		"ACCOUNTS UPDATED",
		"ACCOUNTS CREATED",
		"TRANSACTIONS CREATED",
		"BALANCE RECORDS",
		"DURATION (MS)",
	)

	t.Row(
		strconv.Itoa(stats.AccountsUpdated),
		strconv.Itoa(stats.AccountsCreated),
		strconv.Itoa(stats.TransactionsCreated),
		strconv.Itoa(stats.BalanceRecordsCreated),
		strconv.FormatInt(stats.SyncDurationMs, 10),
	)

	// Print the table
	fmt.Println(t)

	return nil
}
