package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/statement"
	"github.com/flockbooks/flockbooks/voucher"
)

// newTestCommand returns a command writing to buffers, with the flags
// added by each setup function.
func newTestCommand(setup ...func(*cobra.Command)) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())
	for _, s := range setup {
		s(cmd)
	}

	return cmd, &out, &errOut
}

func useClient(t *testing.T, b backend) {
	t.Helper()
	prev := client
	client = b
	t.Cleanup(func() { client = prev })
}

func TestValidateOutputFormat(t *testing.T) {
	cmd, _, _ := newTestCommand(addOutputFlag)

	format, err := validateOutputFormat(cmd)
	be.NilErr(t, err)
	be.Equal(t, tableOutputFormat, format)

	be.NilErr(t, cmd.Flags().Set("output", "yaml"))
	_, err = validateOutputFormat(cmd)
	be.In(t, "invalid output format", err.Error())
}

func TestRangeFromFlags(t *testing.T) {
	now := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		flags    map[string]string
		wantFrom time.Time
		wantTo   time.Time
		wantErr  string
	}{
		{
			name: "no filter",
		},
		{
			name:     "month",
			flags:    map[string]string{"period": "month"},
			wantFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC),
		},
		{
			name:     "explicit dates win",
			flags:    map[string]string{"period": "year", "from": "2025-02-01"},
			wantFrom: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:    "bad period",
			flags:   map[string]string{"period": "week"},
			wantErr: "invalid period",
		},
		{
			name:    "bad date",
			flags:   map[string]string{"to": "31/03/2025"},
			wantErr: "invalid --to date",
		},
		{
			name:    "reversed",
			flags:   map[string]string{"from": "2025-04-02", "to": "2025-04-01"},
			wantErr: "is before",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, _ := newTestCommand(addRangeFlags)
			for k, v := range tt.flags {
				be.NilErr(t, cmd.Flags().Set(k, v))
			}

			r, err := rangeFromFlags(cmd, now)
			if tt.wantErr != "" {
				be.In(t, tt.wantErr, err.Error())
				return
			}
			be.NilErr(t, err)
			be.Equal(t, tt.wantFrom, r.From)
			be.Equal(t, tt.wantTo, r.To)
		})
	}
}

func TestParseVoucherLine(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantLedger string
		wantName   string
		wantDebit  string
		wantCredit string
		wantErr    bool
	}{
		{"debit", "l1:Cash:100.50:", "l1", "Cash", "100.5", "0", false},
		{"credit with spaces", " l2 : Ravi Traders : : 75 ", "l2", "Ravi Traders", "0", "75", false},
		{"too few parts", "l1:Cash:100", "", "", "", "", true},
		{"bad amount", "l1:Cash:ten:", "", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := parseVoucherLine(tt.in)
			if tt.wantErr {
				be.Nonzero(t, err)
				return
			}
			be.NilErr(t, err)
			be.Equal(t, tt.wantLedger, l.LedgerID)
			be.Equal(t, tt.wantName, l.AccountName)
			be.Equal(t, tt.wantDebit, l.Debit.String())
			be.Equal(t, tt.wantCredit, l.Credit.String())
		})
	}
}

func voucherCreateFlags(cmd *cobra.Command) {
	addOutputFlag(cmd)
	cmd.Flags().String("type", string(voucher.Journal), "")
	cmd.Flags().String("date", "", "")
	cmd.Flags().String("narration", "", "")
	cmd.Flags().StringArray("line", nil, "")
}

func TestVoucherCreateRun(t *testing.T) {
	b := &fakeBackend{created: &api.Voucher{ID: "v9", VoucherNumber: "PV-9", Type: "PAYMENT"}}
	useClient(t, b)

	cmd, out, _ := newTestCommand(voucherCreateFlags)
	be.NilErr(t, cmd.Flags().Set("type", "payment"))
	be.NilErr(t, cmd.Flags().Set("date", "2025-04-03"))
	be.NilErr(t, cmd.Flags().Set("line", "l2:HP Pump:500:"))
	be.NilErr(t, cmd.Flags().Set("line", "l9:Cash::500"))

	be.NilErr(t, voucherCreateRun(cmd, nil))

	be.Equal(t, 1, len(b.posted))
	in := b.posted[0]
	be.Equal(t, voucher.Payment, in.Type)
	be.Equal(t, 3, in.Date.Day())
	be.Equal(t, 2, len(in.Lines))
	be.Equal(t, "Cash", in.Lines[1].AccountName)
	be.In(t, "PV-9", out.String())
}

func TestVoucherCreateRunRejected(t *testing.T) {
	b := &fakeBackend{createErr: voucher.ValidationErrors{
		{Field: "entries", Message: "at least 2 lines are required"},
	}}
	useClient(t, b)

	cmd, _, errOut := newTestCommand(voucherCreateFlags)
	be.NilErr(t, cmd.Flags().Set("line", "l2:HP Pump:500:"))

	err := voucherCreateRun(cmd, nil)
	be.Equal(t, "voucher not posted: 1 problem(s)", err.Error())
	be.In(t, "at least 2 lines are required", errOut.String())
}

func TestFetchAllTrips(t *testing.T) {
	b := &fakeBackend{tripPages: [][]api.Trip{
		{{TripID: "T-1"}, {TripID: "T-2"}},
		{{TripID: "T-3"}},
		{{TripID: "T-4"}},
	}}

	trips, err := fetchAllTrips(context.Background(), b, api.TripQuery{Status: "COMPLETED"})
	be.NilErr(t, err)
	be.Equal(t, 4, len(trips))
	be.Equal(t, "T-4", trips[3].TripID)
	be.Equal(t, 3, len(b.tripCalls))
	for i, q := range b.tripCalls {
		be.Equal(t, i+1, q.Page)
		be.Equal(t, "COMPLETED", q.Status)
	}

	b.errs = map[string]error{"Trips": errors.New("timeout")}
	_, err = fetchAllTrips(context.Background(), b, api.TripQuery{})
	be.Nonzero(t, err)
}

func TestFetchDashboardDegrades(t *testing.T) {
	b := &fakeBackend{
		stats:    &api.DashboardStats{TotalTrips: 12},
		settings: &api.Settings{CompanyName: "Sri Poultry"},
		errs:     map[string]error{"TripDailyStats": errors.New("timeout")},
	}

	d := fetchDashboard(context.Background(), b, time.Now())
	be.Equal(t, 12, d.Stats.TotalTrips)
	be.Equal(t, "Sri Poultry", d.Settings.CompanyName)
	be.Equal(t, 0, len(d.TripStats))

	var buf bytes.Buffer
	be.NilErr(t, outputDashboard(&buf, d))
	be.In(t, "Sri Poultry", buf.String())
	be.In(t, "Active trips", buf.String())
}

func TestDashboardRunAllPanelsFail(t *testing.T) {
	down := errors.New("down")
	useClient(t, &fakeBackend{errs: map[string]error{
		"DashboardStats": down,
		"Settings":       down,
		"TripDailyStats": down,
	}})

	cmd, _, _ := newTestCommand(addOutputFlag)
	err := dashboardRun(cmd, nil)
	be.In(t, "every panel failed", err.Error())
}

func TestOutputProfitLoss(t *testing.T) {
	pl := statement.ProfitLoss{
		Income: []statement.Node{{
			ID: "i", Name: "Income", Balance: decimal.NewFromInt(1000),
			Children: []statement.Node{{ID: "s", Name: "Bird Sales", Balance: decimal.NewFromInt(1000)}},
		}},
		Expenses: []statement.Node{{
			ID: "e", Name: "Expenses", Balance: decimal.NewFromInt(1500),
			Children: []statement.Node{{ID: "d", Name: "Diesel", Balance: decimal.NewFromInt(1500)}},
		}},
		TotalIncome:   decimal.NewFromInt(1000),
		TotalExpenses: decimal.NewFromInt(1500),
		NetProfit:     decimal.NewFromInt(-500),
	}

	var buf bytes.Buffer
	be.NilErr(t, outputProfitLoss(&buf, pl))

	out := buf.String()
	be.In(t, "Bird Sales", out)
	be.In(t, "Diesel", out)
	be.In(t, "Net profit", out)
	be.In(t, "-", out[strings.Index(out, "Net profit"):])
}

func TestGroupsListRun(t *testing.T) {
	useClient(t, sampleBackend())

	cmd, out, _ := newTestCommand(addOutputFlag)
	be.NilErr(t, cmd.Flags().Set("output", jsonOutputFormat))

	be.NilErr(t, groupsListRun(cmd, nil))
	be.In(t, `"displayName": "  Retail"`, out.String())
	be.In(t, `"level": 1`, out.String())
}

func TestMaskToken(t *testing.T) {
	be.Equal(t, "****", maskToken(""))
	be.Equal(t, "****", maskToken("abcd"))
	be.Equal(t, "abcd****", maskToken("abcdefgh"))
}

func TestTokenCommands(t *testing.T) {
	viper.Set("token_store", filepath.Join(t.TempDir(), "tokens.toml"))
	t.Cleanup(func() { viper.Set("token_store", "") })

	keyFlag := func(cmd *cobra.Command) { cmd.Flags().String("key", "token", "") }

	cmd, out, _ := newTestCommand(keyFlag)
	be.NilErr(t, tokenShowRun(cmd, nil))
	be.In(t, "no token", out.String())

	cmd, _, _ = newTestCommand(keyFlag)
	be.NilErr(t, cmd.Flags().Set("key", "session"))
	be.Nonzero(t, tokenSetRun(cmd, []string{"secret-value"}))

	cmd, _, _ = newTestCommand(keyFlag)
	be.NilErr(t, tokenSetRun(cmd, []string{"secret-value"}))

	cmd, out, _ = newTestCommand(keyFlag)
	be.NilErr(t, tokenShowRun(cmd, nil))
	be.In(t, "token = secr****", out.String())

	cmd, _, _ = newTestCommand(keyFlag)
	be.NilErr(t, tokenClearRun(cmd, nil))

	cmd, out, _ = newTestCommand(keyFlag)
	be.NilErr(t, tokenShowRun(cmd, nil))
	be.In(t, "no token", out.String())
}

func TestPlaceholder(t *testing.T) {
	be.Equal(t, "-", placeholder(""))
	be.Equal(t, "x", placeholder("x"))
}
