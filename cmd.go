package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/auth"
	"github.com/flockbooks/flockbooks/config"
	"github.com/flockbooks/flockbooks/groups"
	"github.com/flockbooks/flockbooks/statement"
	"github.com/flockbooks/flockbooks/voucher"
)

const (
	jsonOutputFormat  = "json"
	tableOutputFormat = "table"

	// noClientAnnotation marks commands that run without a backend client.
	noClientAnnotation = "flockbooks/no-client"
)

// backend is the part of *api.Client the commands and the TUI use.
type backend interface {
	Customers(ctx context.Context) ([]api.Customer, error)
	Vendors(ctx context.Context) ([]api.Vendor, error)
	Vouchers(ctx context.Context, q api.VoucherQuery) ([]api.Voucher, *api.Pagination, error)
	Voucher(ctx context.Context, id string) (*api.Voucher, error)
	CreateVoucher(ctx context.Context, in voucher.Input) (*api.Voucher, error)
	Groups(ctx context.Context) ([]groups.Group, error)
	Ledgers(ctx context.Context, q api.LedgerQuery) ([]api.Ledger, error)
	LedgerTransactions(ctx context.Context, id string, r api.Range) ([]api.LedgerEntry, *api.Pagination, error)
	LedgerDailySummary(ctx context.Context, id string, r api.Range) ([]api.LedgerSummary, error)
	LedgerMonthlySummary(ctx context.Context, id string, r api.Range) ([]api.LedgerSummary, error)
	DieselStations(ctx context.Context) ([]api.DieselStation, error)
	DieselStation(ctx context.Context, id string, r api.Range) (*api.DieselStation, error)
	Trips(ctx context.Context, q api.TripQuery) ([]api.Trip, *api.Pagination, error)
	TripDailyStats(ctx context.Context, r api.Range) ([]api.TripDailyStat, error)
	IndirectSalesDaily(ctx context.Context, r api.Range) ([]api.SalesStat, error)
	IndirectSalesMonthly(ctx context.Context, r api.Range) ([]api.SalesStat, error)
	ProfitLoss(ctx context.Context, r api.Range) (*statement.ProfitLoss, error)
	DashboardStats(ctx context.Context) (*api.DashboardStats, error)
	Settings(ctx context.Context) (*api.Settings, error)
}

// Global variables for configuration.
var (
	cfgFile string
	client  backend
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A terminal dashboard and CLI for poultry distribution accounts",
	Long: `flockbooks reads ledgers, vouchers, trips and the profit & loss statement
from the accounting backend and exports reports to xlsx and pdf.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg := currentConfig()

		// Setup logging
		log.SetLevel(log.InfoLevel)
		if cfg.Debug {
			log.SetLevel(log.DebugLevel)
		}

		if cmd.Annotations[noClientAnnotation] != "" {
			return nil
		}

		c, err := newClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to create backend client: %w", err)
		}
		client = c

		return nil
	},
	RunE: func(c *cobra.Command, _ []string) error {
		// Start TUI when no subcommands are provided
		return rootAction(c.Context(), currentConfig(), client)
	},
}

// newClient builds the backend client. The token is looked up per request:
// an explicit token first, then the cookies, then the token store.
func newClient(cfg config.Config) (*api.Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required (set via --base-url flag, " +
			"FLOCKBOOKS_BASE_URL environment variable, or config file)")
	}

	tokens := auth.Chain{auth.Static(cfg.Token)}
	httpClient := &http.Client{}

	cookies, err := auth.NewCookieSource(cfg.BaseURL, cfg.Cookies)
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, cookies)
	httpClient.Jar = cookies.Jar()

	tokens = append(tokens, auth.NewFileStore(cfg.TokenStore))

	c, err := api.NewClient(cfg.BaseURL, tokens,
		api.WithHTTPClient(httpClient),
		api.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, err
	}

	c.HTTP.Transport = newLoggingTransport(c.HTTP.Transport, log.Default())

	return c, nil
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
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./flockbooks.toml or $XDG_CONFIG_HOME/flockbooks/flockbooks.toml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("base-url", "", "backend origin, e.g. https://books.example.in")
	flags.String("token", "", "bearer token, overrides cookies and the token store")
	flags.String("cookies", "", `cookie header holding the token, e.g. "token=abc"`)
	flags.String("token-store", "", "path of the persistent token file")
	flags.String("output-dir", "", "directory exports are written to")
	flags.Int("page-size", defaultPageSize, "rows requested per page")
	flags.Int("fiscal-year-start-month", int(time.April), "first month of the fiscal year")
	flags.String("unresolved-parent", "promote", "groups whose parent is missing: promote or reject")

	// Bind flags to viper
	for key, flag := range map[string]string{
		"debug":                   "debug",
		"base_url":                "base-url",
		"token":                   "token",
		"cookies":                 "cookies",
		"token_store":             "token-store",
		"output_dir":              "output-dir",
		"page_size":               "page-size",
		"fiscal_year_start_month": "fiscal-year-start-month",
		"unresolved_parent":       "unresolved-parent",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	// Bind environment variables
	viper.SetEnvPrefix("FLOCKBOOKS")
	_ = viper.BindEnv("token", "FLOCKBOOKS_TOKEN")
	_ = viper.BindEnv("base_url", "FLOCKBOOKS_BASE_URL")

	// Add subcommands
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(vendorCmd)
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(dieselCmd)
	rootCmd.AddCommand(tripsCmd)
	rootCmd.AddCommand(salesCmd)
	rootCmd.AddCommand(plCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(voucherCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tokenCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(appName)
		viper.SetConfigType("toml")
		for _, path := range configSearchPaths() {
			viper.AddConfigPath(path)
		}
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		log.Debug("Config file not found or error reading", "error", err)
		return
	}

	log.Debug("Using config file", "file", viper.ConfigFileUsed())
}

// addOutputFlag adds the -o flag shared by the listing commands.
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
}

// validateOutputFormat returns the -o value if it is supported.
func validateOutputFormat(cmd *cobra.Command) (string, error) {
	outputFormat, _ := cmd.Flags().GetString("output")

	validFormats := []string{tableOutputFormat, jsonOutputFormat}
	if !slices.Contains(validFormats, outputFormat) {
		return "", fmt.Errorf("invalid output format: %s (must be one of %v)", outputFormat, validFormats)
	}
	return outputFormat, nil
}

// Utility functions for output formatting.
func outputJSON(w io.Writer, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(jsonData))
	return nil
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

// placeholder renders an empty cell as "-".
func placeholder(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
