package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flockbooks/flockbooks/export"
	"github.com/flockbooks/flockbooks/statement"
)

// dieselCmd represents the diesel command.
var dieselCmd = &cobra.Command{
	Use:   "diesel",
	Short: "Diesel station commands",
	Long:  `Commands for fuel suppliers and their ledgers.`,
}

var dieselListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diesel stations",
	RunE:  dieselListRun,
}

var dieselShowCmd = &cobra.Command{
	Use:   "show <station-id>",
	Short: "Show a diesel station ledger",
	Args:  cobra.ExactArgs(1),
	RunE:  dieselShowRun,
}

func init() {
	dieselCmd.AddCommand(dieselListCmd, dieselShowCmd)

	addOutputFlag(dieselListCmd)

	addRangeFlags(dieselShowCmd)
	addOutputFlag(dieselShowCmd)
	addExportFlag(dieselShowCmd)
}

func dieselListRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	stations, err := client.DieselStations(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch diesel stations: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), stations)
	case tableOutputFormat:
		t := createStyledTable("ID", "NAME", "LOCATION", "LEDGER", "BALANCE")
		for _, s := range stations {
			t.Row(s.ID, s.Name, placeholder(s.Location), placeholder(s.LedgerID), statement.FormatBalance(s.Balance, s.BalanceType))
		}
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}

func dieselShowRun(cmd *cobra.Command, args []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	station, err := client.DieselStation(cmd.Context(), args[0], r)
	if err != nil {
		return fmt.Errorf("failed to fetch diesel station %s: %w", args[0], err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		err = outputJSON(cmd.OutOrStdout(), station)
	case tableOutputFormat:
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", station.Name, statement.FormatBalance(station.Balance, station.BalanceType))
		err = outputLedgerTable(cmd.OutOrStdout(), station.Transactions)
	default:
		return errors.New("unsupported output format")
	}
	if err != nil {
		return err
	}

	return saveExport(cmd, station.Name, "diesel", export.DieselLedger(station.Name, station.Transactions))
}
