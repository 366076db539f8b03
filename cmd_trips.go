package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/export"
	"github.com/flockbooks/flockbooks/pager"
	"github.com/flockbooks/flockbooks/statement"
)

// tripsCmd represents the trips command.
var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Trip commands",
	Long:  `Commands for bird-lifting trips.`,
}

var tripsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trips",
	Long:  `List one page of trips, or every page with --all.`,
	RunE:  tripsListRun,
}

var tripsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show daily trip figures",
	RunE:  tripsStatsRun,
}

// salesCmd represents the sales command.
var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Indirect sales commands",
}

var salesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show daily or monthly indirect sales figures",
	RunE:  salesStatsRun,
}

func init() {
	tripsCmd.AddCommand(tripsListCmd, tripsStatsCmd)
	salesCmd.AddCommand(salesStatsCmd)

	addRangeFlags(tripsListCmd)
	addOutputFlag(tripsListCmd)
	addExportFlag(tripsListCmd)
	tripsListCmd.Flags().String("status", "", "only trips with this status")
	tripsListCmd.Flags().Int("page", 1, "page to show")
	tripsListCmd.Flags().Bool("all", false, "fetch every page")

	addRangeFlags(tripsStatsCmd)
	addOutputFlag(tripsStatsCmd)

	addRangeFlags(salesStatsCmd)
	addOutputFlag(salesStatsCmd)
	salesStatsCmd.Flags().String("by", "monthly", "bucket size: daily or monthly")
}

func tripsListRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}
	r.Limit = currentConfig().PageSize

	status, _ := cmd.Flags().GetString("status")
	q := api.TripQuery{Range: r, Status: status}

	var trips []api.Trip
	if all, _ := cmd.Flags().GetBool("all"); all {
		trips, err = fetchAllTrips(cmd.Context(), client, q)
	} else {
		q.Page, _ = cmd.Flags().GetInt("page")
		trips, _, err = client.Trips(cmd.Context(), q)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch trips: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		err = outputJSON(cmd.OutOrStdout(), trips)
	case tableOutputFormat:
		err = outputTripsTable(cmd.OutOrStdout(), trips)
	default:
		return errors.New("unsupported output format")
	}
	if err != nil {
		return err
	}

	return saveExport(cmd, "trips", "register", export.Trips("Trips", trips))
}

// fetchAllTrips walks every page of the trip list.
func fetchAllTrips(ctx context.Context, b backend, q api.TripQuery) ([]api.Trip, error) {
	var (
		all []api.Trip
		p   = pager.New()
	)

	for {
		page, ok := p.TryNext()
		if !ok {
			return all, nil
		}

		q.Page = page
		trips, pagination, err := b.Trips(ctx, q)
		if err != nil {
			p.Failed()
			return nil, err
		}
		all = append(all, trips...)

		total := page
		if pagination != nil {
			total = pagination.TotalPages
		}
		log.Debug("fetched trips page", "page", page, "total", total, "rows", len(trips))
		p.Done(page, total)
	}
}

func outputTripsTable(w io.Writer, trips []api.Trip) error {
	t := createStyledTable("TRIP", "DATE", "VEHICLE", "DRIVER", "PLACE", "STATUS", "BIRDS", "WEIGHT", "PROFIT")

	for _, tr := range trips {
		t.Row(
			tr.TripID,
			tr.Date.String(),
			placeholder(tr.VehicleNumber),
			placeholder(tr.Driver),
			placeholder(tr.Place),
			placeholder(tr.Status),
			tr.Birds.StringFixed(0),
			tr.Weight.StringFixed(2),
			statement.FormatAmount(tr.Profit),
		)
	}

	fmt.Fprintln(w, t)

	return nil
}

func tripsStatsRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	stats, err := client.TripDailyStats(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("failed to fetch trip stats: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), stats)
	case tableOutputFormat:
		t := createStyledTable("DATE", "TRIPS", "BIRDS", "WEIGHT", "PURCHASES", "SALES", "PROFIT")
		for _, s := range stats {
			t.Row(
				s.Date,
				strconv.Itoa(s.Trips),
				s.Birds.StringFixed(0),
				s.Weight.StringFixed(2),
				statement.FormatAmount(s.Purchases),
				statement.FormatAmount(s.Sales),
				statement.FormatAmount(s.Profit),
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}

func salesStatsRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	by, _ := cmd.Flags().GetString("by")
	var stats []api.SalesStat
	switch by {
	case "daily":
		stats, err = client.IndirectSalesDaily(cmd.Context(), r)
	case "monthly":
		stats, err = client.IndirectSalesMonthly(cmd.Context(), r)
	default:
		return fmt.Errorf("invalid --by value: %s (must be daily or monthly)", by)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s sales stats: %w", by, err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), stats)
	case tableOutputFormat:
		t := createStyledTable("PERIOD", "SALES", "BIRDS", "WEIGHT", "AMOUNT")
		for _, s := range stats {
			t.Row(s.Period, strconv.Itoa(s.Count), s.Birds.StringFixed(0), s.Weight.StringFixed(2), statement.FormatAmount(s.Amount))
		}
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}
