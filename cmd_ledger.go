package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/export"
	"github.com/flockbooks/flockbooks/statement"
	"github.com/flockbooks/flockbooks/totals"
)

// ledgerCmd represents the ledger command.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Ledger commands",
	Long:  `Commands for ledgers and their statements.`,
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledgers",
	Long:  `List ledgers with their opening and current balances.`,
	RunE:  ledgerListRun,
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show <ledger-id>",
	Short: "Show a ledger statement",
	Long:  `Show the statement of a ledger with a totals row. The opening row is not part of the totals.`,
	Args:  cobra.ExactArgs(1),
	RunE:  ledgerShowRun,
}

var ledgerSummaryCmd = &cobra.Command{
	Use:   "summary <ledger-id>",
	Short: "Show daily or monthly ledger summaries",
	Args:  cobra.ExactArgs(1),
	RunE:  ledgerSummaryRun,
}

var ledgerExportCmd = &cobra.Command{
	Use:   "export <ledger-id>",
	Short: "Export a ledger statement to xlsx or pdf",
	Args:  cobra.ExactArgs(1),
	RunE:  ledgerExportRun,
}

func init() {
	ledgerCmd.AddCommand(ledgerListCmd, ledgerShowCmd, ledgerSummaryCmd, ledgerExportCmd)

	ledgerListCmd.Flags().String("group", "", "only ledgers of this group id")
	addOutputFlag(ledgerListCmd)

	addRangeFlags(ledgerShowCmd)
	addOutputFlag(ledgerShowCmd)
	addExportFlag(ledgerShowCmd)

	addRangeFlags(ledgerSummaryCmd)
	addOutputFlag(ledgerSummaryCmd)
	ledgerSummaryCmd.Flags().String("by", "daily", "bucket size: daily or monthly")

	addRangeFlags(ledgerExportCmd)
	ledgerExportCmd.Flags().String("format", "xlsx", "export format: xlsx or pdf")
	ledgerExportCmd.Flags().String("kind", "vendor", "column set: vendor, customer or diesel")
}

func ledgerListRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	groupID, _ := cmd.Flags().GetString("group")
	ledgers, err := client.Ledgers(cmd.Context(), api.LedgerQuery{GroupID: groupID})
	if err != nil {
		return fmt.Errorf("failed to fetch ledgers: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), ledgers)
	case tableOutputFormat:
		t := createStyledTable("ID", "NAME", "GROUP", "OPENING", "CURRENT")
		for _, l := range ledgers {
			t.Row(
				l.ID,
				l.Name,
				placeholder(l.GroupName),
				statement.FormatBalance(l.OpeningBalance, l.OpeningBalanceType),
				statement.FormatBalance(l.CurrentBalance, l.CurrentBalanceType),
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}

// ledgerStatement is the JSON shape of ledger show.
type ledgerStatement struct {
	Entries []api.LedgerEntry `json:"entries"`
	Totals  totals.Totals     `json:"totals"`
}

func ledgerShowRun(cmd *cobra.Command, args []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	entries, _, err := client.LedgerTransactions(cmd.Context(), args[0], r)
	if err != nil {
		return fmt.Errorf("failed to fetch ledger %s: %w", args[0], err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		err = outputJSON(cmd.OutOrStdout(), ledgerStatement{Entries: entries, Totals: api.Totals(entries)})
	case tableOutputFormat:
		err = outputLedgerTable(cmd.OutOrStdout(), entries)
	default:
		return errors.New("unsupported output format")
	}
	if err != nil {
		return err
	}

	return saveExport(cmd, args[0], "ledger", export.VendorLedger(args[0], entries))
}

func amountOrDash(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return statement.FormatAmount(*d)
}

func outputLedgerTable(w io.Writer, entries []api.LedgerEntry) error {
	t := createStyledTable("DATE", "TYPE", "VOUCHER", "PARTICULARS", "DEBIT", "CREDIT", "BALANCE")

	for _, e := range entries {
		debit, credit := e.Sides()
		balance := "-"
		if e.Balance != nil {
			balance = statement.FormatBalance(*e.Balance, e.BalanceType)
		}
		t.Row(
			e.Date.String(),
			e.Type,
			placeholder(e.VoucherNumber),
			placeholder(e.Particulars),
			amountOrDash(debit),
			amountOrDash(credit),
			balance,
		)
	}

	sums := api.Totals(entries)
	t.Row("Total", "", "", "", statement.FormatAmount(sums.TotalDebit), statement.FormatAmount(sums.TotalCredit), "")

	fmt.Fprintln(w, t)

	return nil
}

func ledgerSummaryRun(cmd *cobra.Command, args []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	by, _ := cmd.Flags().GetString("by")
	var summaries []api.LedgerSummary
	switch by {
	case "daily":
		summaries, err = client.LedgerDailySummary(cmd.Context(), args[0], r)
	case "monthly":
		summaries, err = client.LedgerMonthlySummary(cmd.Context(), args[0], r)
	default:
		return fmt.Errorf("invalid --by value: %s (must be daily or monthly)", by)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s summary of ledger %s: %w", by, args[0], err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), summaries)
	case tableOutputFormat:
		t := createStyledTable("PERIOD", "DEBIT", "CREDIT", "CLOSING", "ENTRIES")
		for _, s := range summaries {
			t.Row(
				s.Period,
				statement.FormatAmount(s.Debit),
				statement.FormatAmount(s.Credit),
				statement.FormatBalance(s.Closing, s.ClosingType),
				strconv.Itoa(s.Count),
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}

// ledgerExportBuilders maps --kind onto the export column set.
var ledgerExportBuilders = map[string]func(string, []api.LedgerEntry) export.Table{
	"vendor":   export.VendorLedger,
	"customer": export.CustomerLedger,
	"diesel":   export.DieselLedger,
}

func ledgerExportRun(cmd *cobra.Command, args []string) error {
	formatValue, _ := cmd.Flags().GetString("format")
	f, err := export.ParseFormat(formatValue)
	if err != nil {
		return err
	}

	kind, _ := cmd.Flags().GetString("kind")
	build, ok := ledgerExportBuilders[kind]
	if !ok {
		return fmt.Errorf("invalid --kind value: %s (must be vendor, customer or diesel)", kind)
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	name, entries, err := fetchLedgerStatement(cmd.Context(), client, args[0], r)
	if err != nil {
		return err
	}

	path, ok := export.Save(currentConfig().OutputDir, export.Filename(name, kind, time.Now(), f), f, build(name, entries))
	if !ok {
		return fmt.Errorf("export of ledger %s failed, see log", name)
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// fetchLedgerStatement loads a ledger's name and its entries. Both are needed
// for an export, so either failing fails the whole fetch.
func fetchLedgerStatement(ctx context.Context, b backend, id string, r api.Range) (string, []api.LedgerEntry, error) {
	var (
		ledgers []api.Ledger
		entries []api.LedgerEntry
	)

	err := fetchAll(ctx,
		func(ctx context.Context) error {
			var err error
			ledgers, err = b.Ledgers(ctx, api.LedgerQuery{})
			return err
		},
		func(ctx context.Context) error {
			var err error
			entries, _, err = b.LedgerTransactions(ctx, id, r)
			return err
		},
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch ledger %s: %w", id, err)
	}

	name := id
	for _, l := range ledgers {
		if l.ID == id {
			name = l.Name
			break
		}
	}

	return name, entries, nil
}
