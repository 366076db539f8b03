// Package statement renders the profit & loss statement returned by the
// backend. The backend nests groups itself; this package only shapes the
// first two levels for display.
package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Node is one group of the statement as nested by the backend.
type Node struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceType string          `json:"balanceType,omitempty"`
	Children    []Node          `json:"children,omitempty"`
}

// ProfitLoss is the payload of GET /dashboard/profit-loss.
type ProfitLoss struct {
	Income        []Node          `json:"income"`
	Expenses      []Node          `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// Roots returns income groups followed by expense groups.
func (p ProfitLoss) Roots() []Node {
	roots := make([]Node, 0, len(p.Income)+len(p.Expenses))
	roots = append(roots, p.Income...)
	return append(roots, p.Expenses...)
}

// Equal compares two nodes field by field, recursing into children.
func Equal(a, b Node) bool {
	if a.ID != b.ID || a.Name != b.Name || a.BalanceType != b.BalanceType {
		return false
	}
	if !a.Balance.Equal(b.Balance) {
		return false
	}
	return equalChildren(a.Children, b.Children)
}

func equalChildren(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// DrillDown asks the caller to open the ledgers of a group for the active
// date range.
type DrillDown struct {
	GroupID string
	From    time.Time
	To      time.Time
}
