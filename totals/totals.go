// Package totals sums ledger entries for summary cards and export footers.
package totals

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OpeningType is the entry type of the opening balance pseudo row.
const OpeningType = "OPENING"

// Entry is the subset of a ledger row the aggregator reads. A nil field is
// treated as zero.
type Entry struct {
	Type   string
	Debit  *decimal.Decimal
	Credit *decimal.Decimal
	Volume *decimal.Decimal
	Birds  *decimal.Decimal
	Weight *decimal.Decimal
	Amount *decimal.Decimal
}

// IsOpening reports whether the entry is an opening balance row.
func (e Entry) IsOpening() bool {
	return strings.EqualFold(strings.TrimSpace(e.Type), OpeningType)
}

// Totals holds independent sums of every numeric field.
type Totals struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalVolume decimal.Decimal `json:"totalVolume"`
	TotalBirds  decimal.Decimal `json:"totalBirds"`
	TotalWeight decimal.Decimal `json:"totalWeight"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	// Count is the number of entries that contributed to the sums.
	Count int `json:"count"`
}

// Net is debit minus credit.
func (t Totals) Net() decimal.Decimal {
	return t.TotalDebit.Sub(t.TotalCredit)
}

// IsZero reports whether every sum is zero.
func (t Totals) IsZero() bool {
	return t.TotalDebit.IsZero() && t.TotalCredit.IsZero() && t.TotalVolume.IsZero() &&
		t.TotalBirds.IsZero() && t.TotalWeight.IsZero() && t.TotalAmount.IsZero()
}

// Aggregate folds entries into Totals. Opening rows never contribute. No
// rounding is applied.
func Aggregate(entries []Entry) Totals {
	var t Totals
	for _, e := range entries {
		if e.IsOpening() {
			continue
		}
		t.TotalDebit = add(t.TotalDebit, e.Debit)
		t.TotalCredit = add(t.TotalCredit, e.Credit)
		t.TotalVolume = add(t.TotalVolume, e.Volume)
		t.TotalBirds = add(t.TotalBirds, e.Birds)
		t.TotalWeight = add(t.TotalWeight, e.Weight)
		t.TotalAmount = add(t.TotalAmount, e.Amount)
		t.Count++
	}
	return t
}

// WithoutOpening returns the entries that are not opening rows, preserving
// order.
func WithoutOpening(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.IsOpening() {
			out = append(out, e)
		}
	}
	return out
}

func add(sum decimal.Decimal, v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return sum
	}
	return sum.Add(*v)
}
