package api

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flockbooks/flockbooks/groups"
	"github.com/flockbooks/flockbooks/totals"
)

// Customer is a buyer of birds.
type Customer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	Place       string          `json:"place,omitempty"`
	LedgerID    string          `json:"ledgerId,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceType string          `json:"balanceType,omitempty"`
}

// Vendor is a supplier: bird farms, feed, diesel and the like.
type Vendor struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	Category    string          `json:"category,omitempty"`
	LedgerID    string          `json:"ledgerId,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceType string          `json:"balanceType,omitempty"`
}

// VoucherEntry is one leg of a posted voucher.
type VoucherEntry struct {
	LedgerID    string          `json:"ledgerId"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Voucher is a posted accounting voucher.
type Voucher struct {
	ID            string         `json:"id"`
	VoucherNumber string         `json:"voucherNumber"`
	Type          string         `json:"voucherType"`
	Date          Date           `json:"date"`
	Party         string         `json:"party,omitempty"`
	Narration     string         `json:"narration,omitempty"`
	Entries       []VoucherEntry `json:"entries,omitempty"`
}

// Total returns the debit side total, which equals the credit side for a
// posted voucher.
func (v Voucher) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range v.Entries {
		sum = sum.Add(e.Debit)
	}
	return sum
}

// Ledger is an account in the chart of accounts.
type Ledger struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Group              *groups.ParentRef `json:"group,omitempty"`
	GroupName          string            `json:"groupName,omitempty"`
	OpeningBalance     decimal.Decimal   `json:"openingBalance"`
	OpeningBalanceType string            `json:"openingBalanceType,omitempty"`
	CurrentBalance     decimal.Decimal   `json:"currentBalance"`
	CurrentBalanceType string            `json:"currentBalanceType,omitempty"`
}

// GroupID returns the id of the ledger's group, or "".
func (l Ledger) GroupID() string {
	if l.Group == nil {
		return ""
	}
	return l.Group.ID
}

// LedgerEntry is one row of a ledger statement. Vendor, customer and diesel
// ledgers share this shape. Balance is the running balance computed by the
// backend.
type LedgerEntry struct {
	ID            string           `json:"id,omitempty"`
	Date          Date             `json:"date"`
	Type          string           `json:"type"`
	VoucherNumber string           `json:"voucherNumber,omitempty"`
	VehicleNumber string           `json:"vehicleNumber,omitempty"`
	Driver        string           `json:"driverName,omitempty"`
	Particulars   string           `json:"particulars,omitempty"`
	Narration     string           `json:"narration,omitempty"`
	Debit         *decimal.Decimal `json:"debit,omitempty"`
	Credit        *decimal.Decimal `json:"credit,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	AmountType    string           `json:"amountType,omitempty"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	BalanceType   string           `json:"balanceType,omitempty"`
	Birds         *decimal.Decimal `json:"birds,omitempty"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	Rate          *decimal.Decimal `json:"rate,omitempty"`
	Volume        *decimal.Decimal `json:"volume,omitempty"`
}

// IsOpening reports whether the row is the opening balance pseudo row.
func (e LedgerEntry) IsOpening() bool {
	return totals.Entry{Type: e.Type}.IsOpening()
}

// Sides returns the debit and credit of the row. Rows that carry a single
// amount with an amount type are split onto the matching side.
func (e LedgerEntry) Sides() (debit, credit *decimal.Decimal) {
	debit, credit = e.Debit, e.Credit
	if debit != nil || credit != nil || e.Amount == nil {
		return debit, credit
	}
	switch strings.ToLower(e.AmountType) {
	case "debit", "dr":
		return e.Amount, nil
	case "credit", "cr":
		return nil, e.Amount
	}
	return nil, nil
}

// AverageWeight is weight per bird, or nil when either is missing or birds
// is zero.
func (e LedgerEntry) AverageWeight() *decimal.Decimal {
	if e.Birds == nil || e.Weight == nil || e.Birds.IsZero() {
		return nil
	}
	avg := e.Weight.DivRound(*e.Birds, 3)
	return &avg
}

// TotalsEntry converts the row for the totals aggregator.
func (e LedgerEntry) TotalsEntry() totals.Entry {
	debit, credit := e.Sides()
	return totals.Entry{
		Type:   e.Type,
		Debit:  debit,
		Credit: credit,
		Volume: e.Volume,
		Birds:  e.Birds,
		Weight: e.Weight,
		Amount: e.Amount,
	}
}

// Totals aggregates ledger rows, skipping the opening row.
func Totals(entries []LedgerEntry) totals.Totals {
	in := make([]totals.Entry, len(entries))
	for i, e := range entries {
		in[i] = e.TotalsEntry()
	}
	return totals.Aggregate(totals.WithoutOpening(in))
}

// LedgerSummary is one bucket of /ledger/:id/daily-summary or
// /ledger/:id/monthly-summary.
type LedgerSummary struct {
	Period      string          `json:"period"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Closing     decimal.Decimal `json:"closingBalance"`
	ClosingType string          `json:"closingBalanceType,omitempty"`
	Count       int             `json:"count"`
}

// DieselStation is a fuel supplier with its own ledger.
type DieselStation struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Location     string          `json:"location,omitempty"`
	LedgerID     string          `json:"ledgerId,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	BalanceType  string          `json:"balanceType,omitempty"`
	Transactions []LedgerEntry   `json:"transactions,omitempty"`
}

// Trip is one bird-lifting trip from farm to market.
type Trip struct {
	ID             string          `json:"id"`
	TripID         string          `json:"tripId"`
	Date           Date            `json:"date"`
	VehicleNumber  string          `json:"vehicleNumber,omitempty"`
	Driver         string          `json:"driverName,omitempty"`
	Supervisor     string          `json:"supervisor,omitempty"`
	Place          string          `json:"place,omitempty"`
	Status         string          `json:"status,omitempty"`
	Birds          decimal.Decimal `json:"birds"`
	Weight         decimal.Decimal `json:"weight"`
	PurchaseAmount decimal.Decimal `json:"purchaseAmount"`
	SaleAmount     decimal.Decimal `json:"saleAmount"`
	Expenses       decimal.Decimal `json:"expenses"`
	Profit         decimal.Decimal `json:"profit"`
}

// TripDailyStat is one day of /trip/stats/daily.
type TripDailyStat struct {
	Date      string          `json:"date"`
	Trips     int             `json:"trips"`
	Birds     decimal.Decimal `json:"birds"`
	Weight    decimal.Decimal `json:"weight"`
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Profit    decimal.Decimal `json:"profit"`
}

// SalesStat is one bucket of the indirect sales stats.
type SalesStat struct {
	Period string          `json:"period"`
	Count  int             `json:"count"`
	Birds  decimal.Decimal `json:"birds"`
	Weight decimal.Decimal `json:"weight"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardStats is the payload of /dashboard/stats.
type DashboardStats struct {
	TotalCustomers   int             `json:"totalCustomers"`
	TotalVendors     int             `json:"totalVendors"`
	TotalTrips       int             `json:"totalTrips"`
	ActiveTrips      int             `json:"activeTrips"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalPurchases   decimal.Decimal `json:"totalPurchases"`
	TotalReceivables decimal.Decimal `json:"totalReceivables"`
	TotalPayables    decimal.Decimal `json:"totalPayables"`
	CashBalance      decimal.Decimal `json:"cashBalance"`
	BankBalance      decimal.Decimal `json:"bankBalance"`
}

// Settings is the company profile.
type Settings struct {
	CompanyName        string `json:"companyName"`
	Address            string `json:"address,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Email              string `json:"email,omitempty"`
	GSTIN              string `json:"gstin,omitempty"`
	FinancialYearStart string `json:"financialYearStart,omitempty"`
	Currency           string `json:"currency,omitempty"`
}
