package config

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Colors overrides the default theme. Empty values keep the default.
type Colors struct {
	Primary       string `toml:"primary" mapstructure:"primary"`
	Error         string `toml:"error" mapstructure:"error"`
	Success       string `toml:"success" mapstructure:"success"`
	Warning       string `toml:"warning" mapstructure:"warning"`
	Muted         string `toml:"muted" mapstructure:"muted"`
	Debit         string `toml:"debit" mapstructure:"debit"`
	Credit        string `toml:"credit" mapstructure:"credit"`
	Border        string `toml:"border" mapstructure:"border"`
	Background    string `toml:"background" mapstructure:"background"`
	Text          string `toml:"text" mapstructure:"text"`
	SecondaryText string `toml:"secondary_text" mapstructure:"secondary_text"`
}

// Config represents the application configuration structure.
type Config struct {
	// Debug enables debug logging
	Debug bool `toml:"debug"`
	// BaseURL is the backend origin; "/api" is appended by the client
	BaseURL string `toml:"base_url"`
	// Token is an explicit bearer token, tried before cookies and the store
	Token string `toml:"token"`
	// Cookies is a Cookie header value seeding the cookie jar
	Cookies string `toml:"cookies"`
	// TokenStore is the path of the persistent token file
	TokenStore string `toml:"token_store"`
	// OutputDir is where exports are written
	OutputDir string `toml:"output_dir"`
	// FiscalYearStartMonth is the first month of the fiscal year (4 = April)
	FiscalYearStartMonth int `toml:"fiscal_year_start_month"`
	// PageSize is the number of rows requested per page
	PageSize int `toml:"page_size"`
	// UnresolvedParent is "promote" or "reject"
	UnresolvedParent string `toml:"unresolved_parent"`

	Colors Colors `toml:"colors"`
}

// Model represents the config view model.
type Model struct {
	configTable table.Model
}

// New creates a new config view model.
func New(primary string) Model {
	configTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Setting", Width: 24},
			{Title: "Value", Width: 40},
			{Title: "Description", Width: 50},
		}),
	)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color(primary))

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

func maskSensitiveValue(value string) string {
	if value == "" {
		return "(not set)"
	}

	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}

	return value[:4] + strings.Repeat("*", len(value)-4)
}

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// Rows returns the setting/value/description triples shown for config.
// Secrets are masked.
func Rows(config Config) [][]string {
	return [][]string{
		{"Debug", strconv.FormatBool(config.Debug), "Enable debug logging"},
		{"Base URL", orUnset(config.BaseURL), "Backend origin, /api is appended"},
		{"Token", maskSensitiveValue(config.Token), "Explicit bearer token"},
		{"Cookies", maskSensitiveValue(config.Cookies), "Cookie header holding token, accessToken or jwt"},
		{"Token Store", orUnset(config.TokenStore), "Persistent token file"},
		{"Output Dir", orUnset(config.OutputDir), "Directory for xlsx and pdf exports"},
		{"Fiscal Year Start", strconv.Itoa(config.FiscalYearStartMonth), "First month of the fiscal year"},
		{"Page Size", strconv.Itoa(config.PageSize), "Rows requested per page"},
		{"Unresolved Parent", orUnset(config.UnresolvedParent), "Groups with a missing parent: promote or reject"},
	}
}

// SetConfig sets the configuration data for the view.
func (m *Model) SetConfig(config Config) {
	src := Rows(config)
	rows := make([]table.Row, len(src))
	for i, r := range src {
		rows[i] = table.Row(r)
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
