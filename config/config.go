// Package config defines the application settings and a read-only settings
// view for the TUI.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Config represents the application configuration structure.
type Config struct {
	// Debug enables debug logging
	Debug bool `toml:"debug"`
	// APIURL is the findash backend base URL
	APIURL string `toml:"api_url"`
	// SimplefinAccessURL is the SimpleFin bridge access URL for direct fetches
	SimplefinAccessURL string `toml:"simplefin_access_url"`
	// Refresh enables the periodic background reload
	Refresh bool `toml:"refresh"`
	// RefreshInterval is the background reload period
	RefreshInterval time.Duration `toml:"refresh_interval"`
	// HidePendingTransactions hides pending transactions from all transaction lists
	HidePendingTransactions bool `toml:"hide_pending_transactions"`
	// Colors overrides the default theme
	Colors Colors `toml:"colors"`
}

// Colors holds the user-overridable theme colors as hex or ANSI strings.
type Colors struct {
	Primary       string `toml:"primary"        mapstructure:"primary"`
	Error         string `toml:"error"          mapstructure:"error"`
	Success       string `toml:"success"        mapstructure:"success"`
	Warning       string `toml:"warning"        mapstructure:"warning"`
	Muted         string `toml:"muted"          mapstructure:"muted"`
	Income        string `toml:"income"         mapstructure:"income"`
	Expense       string `toml:"expense"        mapstructure:"expense"`
	Border        string `toml:"border"         mapstructure:"border"`
	Background    string `toml:"background"     mapstructure:"background"`
	Text          string `toml:"text"           mapstructure:"text"`
	SecondaryText string `toml:"secondary_text" mapstructure:"secondary_text"`
}

// Model represents the config view model.
type Model struct {
	configTable table.Model
}

// New creates a new config view model.
func New() Model {
	configTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Setting", Width: 30},
			{Title: "Value", Width: 40},
			{Title: "Description", Width: 50},
		}),
	)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color("#ffd644"))

	configTable.SetStyles(tableStyle)

	return Model{configTable: configTable}
}

// SetFocus sets the focus state of the config table.
func (m *Model) SetFocus(focus bool) {
	if focus {
		m.configTable.Focus()
	} else {
		m.configTable.Blur()
	}
}

// SetSize sets the size of the config table.
func (m *Model) SetSize(width, height int) {
	m.configTable.SetHeight(height)
	m.configTable.SetWidth(width)
}

// maskSensitiveValue hides all but a short prefix of a secret-bearing value.
// The SimpleFin access URL embeds credentials, so it never renders whole.
func maskSensitiveValue(value string) string {
	if value == "" {
		return "(not set)"
	}

	const visible = 8
	if len(value) <= visible {
		return strings.Repeat("*", len(value))
	}

	return value[:visible] + strings.Repeat("*", len(value)-visible)
}

// SetConfig sets the configuration data for the view.
func (m *Model) SetConfig(config Config) {
	rows := []table.Row{
		{
			"Debug",
			strconv.FormatBool(config.Debug),
			"Enable debug logging",
		},
		{
			"API URL",
			config.APIURL,
			"findash backend base URL",
		},
		{
			"SimpleFin Access URL",
			maskSensitiveValue(config.SimplefinAccessURL),
			"SimpleFin bridge access URL",
		},
		{
			"Background Refresh",
			strconv.FormatBool(config.Refresh),
			"Reload data periodically",
		},
		{
			"Refresh Interval",
			config.RefreshInterval.String(),
			"Background reload period",
		},
		{
			"Hide Pending Transactions",
			strconv.FormatBool(config.HidePendingTransactions),
			"Hide pending transactions from all transaction lists",
		},
	}

	m.configTable.SetRows(rows)
}

// Init initializes the config view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles updates to the config view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.configTable, cmd = m.configTable.Update(msg)
	return m, cmd
}

// View renders the config view.
func (m Model) View() string {
	return m.configTable.View()
}
