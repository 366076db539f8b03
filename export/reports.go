package export

import (
	"github.com/shopspring/decimal"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/totals"
)

type entryColumn struct {
	Column
	cell func(api.LedgerEntry) Cell
	// total is nil for columns left blank in the totals row.
	total func(totals.Totals) Cell
	// physical columns do not apply to opening rows.
	physical bool
}

func col(header string, width float64) Column {
	return Column{Header: header, Width: width}
}

func num(header string, width float64, places int) Column {
	return Column{Header: header, Width: width, Numeric: true, Places: places}
}

func debitCell(e api.LedgerEntry) Cell {
	d, _ := e.Sides()
	return Optional(d)
}

func creditCell(e api.LedgerEntry) Cell {
	_, c := e.Sides()
	return Optional(c)
}

var (
	dateCol        = entryColumn{Column: col("Date", 11), cell: func(e api.LedgerEntry) Cell { return Text(e.Date.String()) }}
	typeCol        = entryColumn{Column: col("Type", 11), cell: func(e api.LedgerEntry) Cell { return Text(e.Type) }}
	voucherNoCol   = entryColumn{Column: col("Voucher No", 12), cell: func(e api.LedgerEntry) Cell { return Text(e.VoucherNumber) }}
	vehicleNoCol   = entryColumn{Column: col("Vehicle No", 12), cell: func(e api.LedgerEntry) Cell { return Text(e.VehicleNumber) }}
	driverCol      = entryColumn{Column: col("Driver", 14), cell: func(e api.LedgerEntry) Cell { return Text(e.Driver) }}
	particularsCol = entryColumn{Column: col("Particulars", 22), cell: func(e api.LedgerEntry) Cell { return Text(e.Particulars) }}
	birdsCol       = entryColumn{
		Column:   num("Birds", 9, 0),
		cell:     func(e api.LedgerEntry) Cell { return Optional(e.Birds) },
		total:    func(t totals.Totals) Cell { return Number(t.TotalBirds) },
		physical: true,
	}
	weightCol = entryColumn{
		Column:   num("Weight", 10, 2),
		cell:     func(e api.LedgerEntry) Cell { return Optional(e.Weight) },
		total:    func(t totals.Totals) Cell { return Number(t.TotalWeight) },
		physical: true,
	}
	avgWeightCol = entryColumn{
		Column:   num("Avg Wt", 8, 3),
		cell:     func(e api.LedgerEntry) Cell { return Optional(e.AverageWeight()) },
		physical: true,
	}
	rateCol = entryColumn{
		Column:   num("Rate", 9, 2),
		cell:     func(e api.LedgerEntry) Cell { return Optional(e.Rate) },
		physical: true,
	}
	amountCol = entryColumn{
		Column: num("Amount", 13, 2),
		cell:   func(e api.LedgerEntry) Cell { return Optional(e.Amount) },
		total:  func(t totals.Totals) Cell { return Number(t.TotalAmount) },
	}
	volumeCol = entryColumn{
		Column:   num("Volume", 9, 2),
		cell:     func(e api.LedgerEntry) Cell { return Optional(e.Volume) },
		total:    func(t totals.Totals) Cell { return Number(t.TotalVolume) },
		physical: true,
	}
	debitCol = entryColumn{
		Column: num("Debit", 13, 2),
		cell:   debitCell,
		total:  func(t totals.Totals) Cell { return Number(t.TotalDebit) },
	}
	creditCol = entryColumn{
		Column: num("Credit", 13, 2),
		cell:   creditCell,
		total:  func(t totals.Totals) Cell { return Number(t.TotalCredit) },
	}
	balanceCol = entryColumn{
		Column: num("Balance", 14, 2),
		cell: func(e api.LedgerEntry) Cell {
			if e.Balance == nil {
				return Text(Placeholder)
			}
			return Number(e.Balance.Abs())
		},
	}
	drCrCol      = entryColumn{Column: col("Dr/Cr", 6), cell: func(e api.LedgerEntry) Cell { return Text(drCr(e)) }}
	narrationCol = entryColumn{Column: col("Narration", 24), cell: func(e api.LedgerEntry) Cell { return Text(e.Narration) }}
)

var vendorLedger = []entryColumn{
	dateCol, typeCol, voucherNoCol, vehicleNoCol, driverCol, particularsCol,
	birdsCol, weightCol, avgWeightCol, rateCol, amountCol, volumeCol,
	debitCol, creditCol, balanceCol, drCrCol, narrationCol,
}

var customerLedger = []entryColumn{
	dateCol, typeCol, voucherNoCol, vehicleNoCol, particularsCol,
	birdsCol, weightCol, avgWeightCol, rateCol,
	debitCol, creditCol, balanceCol, drCrCol,
}

var dieselLedger = []entryColumn{
	dateCol, typeCol, voucherNoCol, vehicleNoCol, particularsCol,
	volumeCol, rateCol,
	debitCol, creditCol, balanceCol, drCrCol,
}

// Column sets of the ledger exports.
var (
	VendorLedgerColumns   = columnsOf(vendorLedger)
	CustomerLedgerColumns = columnsOf(customerLedger)
	DieselLedgerColumns   = columnsOf(dieselLedger)
)

func columnsOf(cols []entryColumn) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = c.Column
	}
	return out
}

func drCr(e api.LedgerEntry) string {
	switch e.BalanceType {
	case "debit", "Dr", "DR":
		return "Dr"
	case "credit", "Cr", "CR":
		return "Cr"
	}
	if e.Balance == nil {
		return ""
	}
	if e.Balance.IsNegative() {
		return "Cr"
	}
	return "Dr"
}

func ledgerTable(title string, cols []entryColumn, entries []api.LedgerEntry) Table {
	t := Table{Title: title, Columns: columnsOf(cols)}

	for _, e := range entries {
		row := make([]Cell, len(cols))
		for i, c := range cols {
			if c.physical && e.IsOpening() {
				row[i] = Text(Placeholder)
				continue
			}
			row[i] = c.cell(e)
		}
		t.Rows = append(t.Rows, row)
	}

	sums := api.Totals(entries)
	t.Totals = make([]Cell, len(cols))
	t.Totals[0] = Text("Total")
	for i, c := range cols {
		if c.total != nil {
			t.Totals[i] = c.total(sums)
		}
	}

	return t
}

// VendorLedger builds the vendor ledger export.
func VendorLedger(title string, entries []api.LedgerEntry) Table {
	return ledgerTable(title, vendorLedger, entries)
}

// CustomerLedger builds the customer ledger export.
func CustomerLedger(title string, entries []api.LedgerEntry) Table {
	return ledgerTable(title, customerLedger, entries)
}

// DieselLedger builds the diesel station ledger export.
func DieselLedger(title string, entries []api.LedgerEntry) Table {
	return ledgerTable(title, dieselLedger, entries)
}

// TripColumns is the column set of the trip export.
var TripColumns = []Column{
	col("Trip ID", 12), col("Date", 11), col("Vehicle No", 12), col("Driver", 14),
	col("Supervisor", 14), col("Place", 16), col("Status", 10),
	num("Birds", 9, 0), num("Weight", 10, 2),
	num("Purchase", 13, 2), num("Sale", 13, 2), num("Expenses", 12, 2), num("Profit", 13, 2),
}

// Trips builds the trip export.
func Trips(title string, trips []api.Trip) Table {
	t := Table{Title: title, Columns: TripColumns}

	var birds, weight, purchase, sale, expenses, profit decimal.Decimal
	for _, tr := range trips {
		t.Rows = append(t.Rows, []Cell{
			Text(tr.TripID), Text(tr.Date.String()), Text(tr.VehicleNumber), Text(tr.Driver),
			Text(tr.Supervisor), Text(tr.Place), Text(tr.Status),
			Number(tr.Birds), Number(tr.Weight),
			Number(tr.PurchaseAmount), Number(tr.SaleAmount), Number(tr.Expenses), Number(tr.Profit),
		})
		birds = birds.Add(tr.Birds)
		weight = weight.Add(tr.Weight)
		purchase = purchase.Add(tr.PurchaseAmount)
		sale = sale.Add(tr.SaleAmount)
		expenses = expenses.Add(tr.Expenses)
		profit = profit.Add(tr.Profit)
	}

	t.Totals = []Cell{
		Text("Total"), {}, {}, {}, {}, {}, {},
		Number(birds), Number(weight), Number(purchase), Number(sale), Number(expenses), Number(profit),
	}
	return t
}

// VoucherColumns is the column set of the voucher register export.
var VoucherColumns = []Column{
	col("Voucher No", 12), col("Date", 11), col("Type", 11), col("Party", 22), col("Narration", 30),
	num("Amount", 14, 2),
}

// Vouchers builds the voucher register export.
func Vouchers(title string, vouchers []api.Voucher) Table {
	t := Table{Title: title, Columns: VoucherColumns}

	var sum decimal.Decimal
	for _, v := range vouchers {
		total := v.Total()
		t.Rows = append(t.Rows, []Cell{
			Text(v.VoucherNumber), Text(v.Date.String()), Text(v.Type), Text(v.Party), Text(v.Narration),
			Number(total),
		})
		sum = sum.Add(total)
	}

	t.Totals = []Cell{Text("Total"), {}, {}, {}, {}, Number(sum)}
	return t
}
