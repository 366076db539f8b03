package totals

import (
	"testing"

	"github.com/carlmjohnson/be"
	"github.com/shopspring/decimal"
)

func d(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	be.True(t, got.IsZero())
	be.Equal(t, 0, got.Count)
}

func TestAggregateOnlyOpening(t *testing.T) {
	got := Aggregate([]Entry{
		{Type: "OPENING", Debit: d("5000"), Birds: d("120")},
		{Type: "opening", Credit: d("75.25")},
	})
	be.True(t, got.IsZero())
	be.Equal(t, 0, got.Count)
}

func TestAggregateAdditivity(t *testing.T) {
	got := Aggregate([]Entry{
		{Type: "PURCHASE", Debit: d("100"), Credit: d("0")},
		{Type: "PAYMENT", Debit: d("0"), Credit: d("50")},
	})
	be.True(t, got.TotalDebit.Equal(decimal.NewFromInt(100)))
	be.True(t, got.TotalCredit.Equal(decimal.NewFromInt(50)))
	be.True(t, got.Net().Equal(decimal.NewFromInt(50)))
	be.Equal(t, 2, got.Count)
}

func TestAggregateMissingFieldsAreZero(t *testing.T) {
	got := Aggregate([]Entry{
		{Type: "PURCHASE", Birds: d("250"), Weight: d("512.75")},
		{Type: "PURCHASE", Birds: d("100")},
		{Type: "JOURNAL", Amount: d("12.5")},
	})
	be.True(t, got.TotalBirds.Equal(decimal.NewFromInt(350)))
	be.True(t, got.TotalWeight.Equal(decimal.RequireFromString("512.75")))
	be.True(t, got.TotalAmount.Equal(decimal.RequireFromString("12.5")))
	be.True(t, got.TotalDebit.IsZero())
	be.True(t, got.TotalVolume.IsZero())
}

func TestAggregateDoesNotRound(t *testing.T) {
	got := Aggregate([]Entry{
		{Type: "PURCHASE", Weight: d("0.001")},
		{Type: "PURCHASE", Weight: d("0.002")},
	})
	be.Equal(t, "0.003", got.TotalWeight.String())
}

func TestWithoutOpening(t *testing.T) {
	in := []Entry{
		{Type: "OPENING", Debit: d("10")},
		{Type: "PURCHASE", Debit: d("20")},
		{Type: "PAYMENT", Credit: d("5")},
	}
	out := WithoutOpening(in)
	be.Equal(t, 2, len(out))
	be.Equal(t, "PURCHASE", out[0].Type)
	be.Equal(t, "PAYMENT", out[1].Type)
	be.True(t, Aggregate(out).TotalDebit.Equal(Aggregate(in).TotalDebit))
}
