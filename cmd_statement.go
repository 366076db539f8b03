package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/statement"
)

// plCmd represents the pl command.
var plCmd = &cobra.Command{
	Use:   "pl",
	Short: "Profit & loss commands",
}

var plShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profit & loss statement",
	Long:  `Show income and expense groups with their direct children, then the totals.`,
	RunE:  plShowRun,
}

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the headline figures",
	Long:  `Show company totals and today's trips. A panel that fails to load is reported and skipped.`,
	RunE:  dashboardRun,
}

func init() {
	plCmd.AddCommand(plShowCmd)

	addRangeFlags(plShowCmd)
	addOutputFlag(plShowCmd)

	addOutputFlag(dashboardCmd)
}

func plShowRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	pl, err := client.ProfitLoss(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("failed to fetch profit & loss: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), pl)
	case tableOutputFormat:
		return outputProfitLoss(cmd.OutOrStdout(), *pl)
	default:
		return errors.New("unsupported output format")
	}
}

func outputProfitLoss(w io.Writer, pl statement.ProfitLoss) error {
	t := createStyledTable("GROUP", "AMOUNT")

	for _, l := range statement.NewRenderer().Render(pl.Roots()) {
		name := l.Name
		if !l.Root() {
			name = strings.Repeat("  ", l.Level) + name
		}
		t.Row(name, l.Amount)
	}

	net := statement.FormatAmount(pl.NetProfit)
	if pl.NetProfit.IsNegative() {
		net = "-" + net
	}

	t.Row("Total income", statement.FormatAmount(pl.TotalIncome))
	t.Row("Total expenses", statement.FormatAmount(pl.TotalExpenses))
	t.Row("Net profit", net)

	fmt.Fprintln(w, t)

	return nil
}

// dashboard is the JSON shape of the dashboard command. Panels that failed
// are left out.
type dashboard struct {
	Stats     *api.DashboardStats `json:"stats,omitempty"`
	Settings  *api.Settings       `json:"settings,omitempty"`
	TripStats []api.TripDailyStat `json:"tripStats,omitempty"`
}

// fetchDashboard loads every panel independently. A failed panel is logged
// and the rest are still returned.
func fetchDashboard(ctx context.Context, b backend, today time.Time) dashboard {
	var d dashboard
	day := api.Range{From: today, To: today}

	errs := fetchEach(ctx,
		func(ctx context.Context) error {
			var err error
			d.Stats, err = b.DashboardStats(ctx)
			return err
		},
		func(ctx context.Context) error {
			var err error
			d.Settings, err = b.Settings(ctx)
			return err
		},
		func(ctx context.Context) error {
			var err error
			d.TripStats, err = b.TripDailyStats(ctx, day)
			return err
		},
	)

	for i, panel := range []string{"stats", "settings", "trip stats"} {
		if errs[i] != nil {
			log.Warn("dashboard panel unavailable", "panel", panel, "error", errs[i])
		}
	}

	return d
}

func dashboardRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	d := fetchDashboard(cmd.Context(), client, time.Now())
	if d.Stats == nil && d.Settings == nil && d.TripStats == nil {
		return errors.New("dashboard unavailable, every panel failed")
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), d)
	case tableOutputFormat:
		return outputDashboard(cmd.OutOrStdout(), d)
	default:
		return errors.New("unsupported output format")
	}
}

func outputDashboard(w io.Writer, d dashboard) error {
	if d.Settings != nil && d.Settings.CompanyName != "" {
		fmt.Fprintln(w, d.Settings.CompanyName)
	}

	if s := d.Stats; s != nil {
		t := createStyledTable("FIGURE", "VALUE")
		t.Row("Customers", strconv.Itoa(s.TotalCustomers))
		t.Row("Vendors", strconv.Itoa(s.TotalVendors))
		t.Row("Trips", strconv.Itoa(s.TotalTrips))
		t.Row("Active trips", strconv.Itoa(s.ActiveTrips))
		t.Row("Sales", statement.FormatAmount(s.TotalSales))
		t.Row("Purchases", statement.FormatAmount(s.TotalPurchases))
		t.Row("Receivables", statement.FormatAmount(s.TotalReceivables))
		t.Row("Payables", statement.FormatAmount(s.TotalPayables))
		t.Row("Cash", statement.FormatAmount(s.CashBalance))
		t.Row("Bank", statement.FormatAmount(s.BankBalance))
		fmt.Fprintln(w, t)
	}

	if len(d.TripStats) > 0 {
		t := createStyledTable("DATE", "TRIPS", "BIRDS", "SALES", "PROFIT")
		for _, s := range d.TripStats {
			t.Row(s.Date, strconv.Itoa(s.Trips), s.Birds.StringFixed(0), statement.FormatAmount(s.Sales), statement.FormatAmount(s.Profit))
		}
		fmt.Fprintln(w, t)
	}

	return nil
}
