package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/export"
	"github.com/flockbooks/flockbooks/statement"
	"github.com/flockbooks/flockbooks/voucher"
)

// voucherCmd represents the voucher command.
var voucherCmd = &cobra.Command{
	Use:   "voucher",
	Short: "Voucher commands",
	Long:  `Commands for listing, showing and posting vouchers.`,
}

var voucherListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vouchers",
	RunE:  voucherListRun,
}

var voucherShowCmd = &cobra.Command{
	Use:   "show <voucher-id>",
	Short: "Show a voucher with its entries",
	Args:  cobra.ExactArgs(1),
	RunE:  voucherShowRun,
}

var voucherCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a voucher",
	Long: `Post a voucher. Each --line is ledgerId:accountName:debit:credit with
one of debit or credit left empty, for example:

  flockbooks voucher create --type PAYMENT \
    --line cash-1:Cash::1500 --line diesel-2:"Diesel Expense":1500:`,
	RunE: voucherCreateRun,
}

func init() {
	voucherCmd.AddCommand(voucherListCmd, voucherShowCmd, voucherCreateCmd)

	addRangeFlags(voucherListCmd)
	addOutputFlag(voucherListCmd)
	addExportFlag(voucherListCmd)
	voucherListCmd.Flags().String("type", "", "only vouchers of this type")
	voucherListCmd.Flags().Int("page", 1, "page to show")

	addOutputFlag(voucherShowCmd)

	addOutputFlag(voucherCreateCmd)
	voucherCreateCmd.Flags().String("type", string(voucher.Journal), "voucher type")
	voucherCreateCmd.Flags().String("date", "", "voucher date (YYYY-MM-DD, default today)")
	voucherCreateCmd.Flags().String("narration", "", "narration")
	voucherCreateCmd.Flags().StringArray("line", nil, "entry as ledgerId:accountName:debit:credit (repeatable)")
}

func voucherListRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	r, err := rangeFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}
	r.Page, _ = cmd.Flags().GetInt("page")
	r.Limit = currentConfig().PageSize

	voucherType, _ := cmd.Flags().GetString("type")
	vouchers, pagination, err := client.Vouchers(cmd.Context(), api.VoucherQuery{Range: r, Type: strings.ToUpper(voucherType)})
	if err != nil {
		return fmt.Errorf("failed to fetch vouchers: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		err = outputJSON(cmd.OutOrStdout(), vouchers)
	case tableOutputFormat:
		err = outputVouchersTable(cmd.OutOrStdout(), vouchers)
		if err == nil && pagination.HasMore() {
			fmt.Fprintf(cmd.ErrOrStderr(), "page %d of %d, use --page for more\n", pagination.CurrentPage, pagination.TotalPages)
		}
	default:
		return errors.New("unsupported output format")
	}
	if err != nil {
		return err
	}

	return saveExport(cmd, "vouchers", "register", export.Vouchers("Vouchers", vouchers))
}

func outputVouchersTable(w io.Writer, vouchers []api.Voucher) error {
	t := createStyledTable("ID", "NUMBER", "TYPE", "DATE", "PARTY", "NARRATION", "AMOUNT")

	for _, v := range vouchers {
		t.Row(
			v.ID,
			placeholder(v.VoucherNumber),
			v.Type,
			v.Date.String(),
			placeholder(v.Party),
			placeholder(v.Narration),
			statement.FormatAmount(v.Total()),
		)
	}

	fmt.Fprintln(w, t)

	return nil
}

func voucherShowRun(cmd *cobra.Command, args []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	v, err := client.Voucher(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch voucher %s: %w", args[0], err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), v)
	case tableOutputFormat:
		return outputVoucher(cmd.OutOrStdout(), *v)
	default:
		return errors.New("unsupported output format")
	}
}

func outputVoucher(w io.Writer, v api.Voucher) error {
	fmt.Fprintf(w, "%s %s  %s\n", v.Type, placeholder(v.VoucherNumber), v.Date.String())
	if v.Narration != "" {
		fmt.Fprintln(w, v.Narration)
	}

	t := createStyledTable("LEDGER", "ACCOUNT", "DEBIT", "CREDIT")
	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range v.Entries {
		t.Row(e.LedgerID, e.AccountName, amountOrBlank(e.Debit), amountOrBlank(e.Credit))
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	t.Row("Total", "", statement.FormatAmount(debit), statement.FormatAmount(credit))

	fmt.Fprintln(w, t)

	return nil
}

func amountOrBlank(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return statement.FormatAmount(d)
}

// parseVoucherLine parses ledgerId:accountName:debit:credit. An empty amount
// is zero.
func parseVoucherLine(s string) (voucher.Line, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return voucher.Line{}, fmt.Errorf("invalid --line %q (expected ledgerId:accountName:debit:credit)", s)
	}

	l := voucher.Line{
		LedgerID:    strings.TrimSpace(parts[0]),
		AccountName: strings.TrimSpace(parts[1]),
	}

	for _, side := range []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"debit", parts[2], &l.Debit},
		{"credit", parts[3], &l.Credit},
	} {
		v := strings.TrimSpace(side.value)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return voucher.Line{}, fmt.Errorf("invalid %s amount %q in --line %q: %w", side.name, v, s, err)
		}
		*side.dst = d
	}

	return l, nil
}

// voucherInputFromFlags builds the voucher posted by voucher create.
func voucherInputFromFlags(cmd *cobra.Command, now time.Time) (voucher.Input, error) {
	voucherType, _ := cmd.Flags().GetString("type")
	narration, _ := cmd.Flags().GetString("narration")
	in := voucher.Input{
		Type:      voucher.Type(strings.ToUpper(voucherType)),
		Date:      now,
		Narration: narration,
	}

	if v, _ := cmd.Flags().GetString("date"); v != "" {
		d, err := time.ParseInLocation(api.DateLayout, v, now.Location())
		if err != nil {
			return in, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD): %w", v, err)
		}
		in.Date = d
	}

	lines, _ := cmd.Flags().GetStringArray("line")
	for _, s := range lines {
		l, err := parseVoucherLine(s)
		if err != nil {
			return in, err
		}
		in.Lines = append(in.Lines, l)
	}

	return in, nil
}

func voucherCreateRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	in, err := voucherInputFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	created, err := client.CreateVoucher(cmd.Context(), in)
	var invalid voucher.ValidationErrors
	if errors.As(err, &invalid) {
		for _, e := range invalid {
			fmt.Fprintln(cmd.ErrOrStderr(), "  "+e.Error())
		}
		return fmt.Errorf("voucher not posted: %d problem(s)", len(invalid))
	}
	if err != nil {
		return fmt.Errorf("failed to post voucher: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), created)
	case tableOutputFormat:
		return outputVoucher(cmd.OutOrStdout(), *created)
	default:
		return errors.New("unsupported output format")
	}
}
