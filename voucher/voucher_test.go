package voucher

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validInput() Input {
	return Input{
		Type:      Payment,
		Date:      time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		Narration: "Paid feed supplier",
		Lines: []Line{
			{LedgerID: "l1", AccountName: "Sri Feeds", Debit: amt("12500.50")},
			{LedgerID: "l2", AccountName: "Cash", Credit: amt("12500.50")},
		},
	}
}

func fields(err error) []string {
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestValidateOK(t *testing.T) {
	be.NilErr(t, Validate(validInput()))
}

func TestValidateUnbalanced(t *testing.T) {
	in := validInput()
	in.Lines[1].Credit = amt("12000")

	err := Validate(in)
	be.Nonzero(t, err)
	be.True(t, IsUnbalanced(err))
}

func TestValidateMissingAccountName(t *testing.T) {
	in := validInput()
	in.Lines[0].AccountName = ""

	err := Validate(in)
	be.Nonzero(t, err)
	be.AllEqual(t, []string{"entries[0].accountName"}, fields(err))
	be.False(t, IsUnbalanced(err))
}

func TestValidateEmptyLines(t *testing.T) {
	in := validInput()
	in.Lines = nil

	err := Validate(in)
	be.Nonzero(t, err)
	be.AllEqual(t, []string{"entries"}, fields(err))
}

func TestValidateLineShape(t *testing.T) {
	tests := []struct {
		name string
		line Line
	}{
		{"both sides", Line{LedgerID: "x", AccountName: "X", Debit: amt("1"), Credit: amt("1")}},
		{"no amount", Line{LedgerID: "x", AccountName: "X"}},
		{"negative", Line{LedgerID: "x", AccountName: "X", Debit: amt("-5")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Lines = append(in.Lines, tt.line)
			err := Validate(in)
			be.Nonzero(t, err)
			be.True(t, slices.Contains(fields(err), "entries[2]"))
		})
	}
}

func TestValidateType(t *testing.T) {
	in := validInput()
	in.Type = "GIFT"

	err := Validate(in)
	be.Nonzero(t, err)
	be.AllEqual(t, []string{"voucherType"}, fields(err))
}

func TestTotalsRoundsToPaise(t *testing.T) {
	debit, credit, err := Totals([]Line{
		{Debit: amt("0.105")},
		{Debit: amt("0.1")},
		{Credit: amt("0.21")},
	})
	be.NilErr(t, err)
	be.Equal(t, int64(21), debit.Amount())
	be.Equal(t, int64(21), credit.Amount())
}
