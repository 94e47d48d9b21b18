package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/findash/findash/config"
	"github.com/findash/findash/dashclient"
)

const (
	jsonOutputFormat  = "json"
	tableOutputFormat = "table"
)

// Global variables for configuration.
var (
	cfgFile      string
	debug        bool
	apiURL       string
	accessURL    string
	refresh      bool
	refreshEvery time.Duration
	hidePend     bool
	cfg          config.Config
	client       *dashclient.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "findash",
	Short: "A terminal dashboard and CLI for your personal finances",
	Long: `A terminal-based dashboard and CLI for accounts and transactions
aggregated through a SimpleFin-backed findash server.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var colors config.Colors
		_ = viper.UnmarshalKey("colors", &colors)

		cfg = config.Config{
			Debug:                   debug,
			APIURL:                  apiURL,
			SimplefinAccessURL:      accessURL,
			Refresh:                 refresh,
			RefreshInterval:         refreshEvery,
			HidePendingTransactions: hidePend,
			Colors:                  colors,
		}

		// Setup logging
		log.SetLevel(log.InfoLevel)
		if cfg.Debug {
			log.SetLevel(log.DebugLevel)
		}

		// Create the backend client
		client = dashclient.New(cfg.APIURL)
		client.HTTP.Transport = newLoggingTransport(client.HTTP.Transport, log.Default())

		return nil
	},
	RunE: func(c *cobra.Command, _ []string) error {
		// Start TUI when no subcommands are provided
		return rootAction(c.Context(), cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is findash.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", dashclient.DefaultBaseURL,
		"base URL of the findash backend")
	rootCmd.PersistentFlags().StringVar(&accessURL, "simplefin-access-url", "",
		"SimpleFin bridge access URL for direct fetches")
	rootCmd.PersistentFlags().BoolVar(&refresh, "refresh", false, "reload data periodically in the background")
	rootCmd.PersistentFlags().DurationVar(&refreshEvery, "refresh-interval", 5*time.Minute,
		"background reload period")
	rootCmd.PersistentFlags().BoolVar(&hidePend, "hide-pending-transactions", false,
		"hide pending transactions from all transaction lists")

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("simplefin_access_url", rootCmd.PersistentFlags().Lookup("simplefin-access-url"))
	_ = viper.BindPFlag("refresh", rootCmd.PersistentFlags().Lookup("refresh"))
	_ = viper.BindPFlag("refresh_interval", rootCmd.PersistentFlags().Lookup("refresh-interval"))
	_ = viper.BindPFlag("hide_pending_transactions", rootCmd.PersistentFlags().Lookup("hide-pending-transactions"))

	// Bind environment variables
	_ = viper.BindEnv("api_url", "FINDASH_API_URL")
	_ = viper.BindEnv("simplefin_access_url", "SIMPLEFIN_ACCESS_URL")

	// Add subcommands
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(transactionCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(simplefinCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A local .env file can carry SIMPLEFIN_ACCESS_URL and friends.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("Error finding home directory", "error", err)
			os.Exit(1)
		}

		// Search config in multiple locations (in order of precedence)
		// Current directory (highest precedence)
		viper.AddConfigPath(".")
		viper.SetConfigName("findash")
		viper.SetConfigType("toml")

		// User config directory
		if configDir, configErr := os.UserConfigDir(); configErr == nil {
			viper.AddConfigPath(filepath.Join(configDir, "findash"))
		}

		// User home directory
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", "findash"))

		// System-wide config directory (lowest precedence)
		viper.AddConfigPath("/etc/findash")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		log.Debug("Config file not found or error reading", "error", err)
	} else {
		log.Debug("Using config file", "file", viper.ConfigFileUsed())
	}

	// Update global variables from viper
	if !rootCmd.PersistentFlags().Changed("debug") {
		debug = viper.GetBool("debug")
	}
	if !rootCmd.PersistentFlags().Changed("api-url") && viper.GetString("api_url") != "" {
		apiURL = viper.GetString("api_url")
	}
	if !rootCmd.PersistentFlags().Changed("simplefin-access-url") {
		accessURL = viper.GetString("simplefin_access_url")
	}
	if !rootCmd.PersistentFlags().Changed("refresh") {
		refresh = viper.GetBool("refresh")
	}
	if !rootCmd.PersistentFlags().Changed("refresh-interval") && viper.GetDuration("refresh_interval") > 0 {
		refreshEvery = viper.GetDuration("refresh_interval")
	}
	if !rootCmd.PersistentFlags().Changed("hide-pending-transactions") {
		hidePend = viper.GetBool("hide_pending_transactions")
	}
}

// Utility functions for output formatting.
func outputJSON(data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Println(string(jsonData))
	return nil
}

func validateOutputFormat(cmd *cobra.Command) (string, error) {
	outputFormat, _ := cmd.Flags().GetString("output")

	validFormats := []string{tableOutputFormat, jsonOutputFormat}
	if !slices.Contains(validFormats, outputFormat) {
		return "", fmt.Errorf("invalid output format: %s (must be one of %v)", outputFormat, validFormats)
	}

	return outputFormat, nil
}

func createStyledTable(headers ...string) *table.Table {
	var (
		purple    = lipgloss.Color("99")
		gray      = lipgloss.Color("245")
		lightGray = lipgloss.Color("241")

		headerStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1)
		oddRowStyle  = cellStyle.Foreground(gray)
		evenRowStyle = cellStyle.Foreground(lightGray)
	)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers(headers...)
}
