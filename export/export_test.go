package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/flockbooks/flockbooks/api"
)

func dp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(d int) api.Date {
	return api.NewDate(time.Date(2025, 4, d, 0, 0, 0, 0, time.Local))
}

func sampleEntries() []api.LedgerEntry {
	return []api.LedgerEntry{
		{Date: day(1), Type: "OPENING", Debit: dp("5000"), Balance: dp("5000"), BalanceType: "debit", Birds: dp("10")},
		{
			Date: day(2), Type: "PURCHASE", VoucherNumber: "PV-1", VehicleNumber: "AP39TX1234",
			Birds: dp("1000"), Weight: dp("2150.5"), Rate: dp("98"), Credit: dp("210749"),
			Balance: dp("-205749"), BalanceType: "credit",
		},
		{Date: day(3), Type: "PAYMENT", Amount: dp("100000"), AmountType: "debit", Balance: dp("-105749")},
	}
}

func TestPaddedOpeningRow(t *testing.T) {
	entries := sampleEntries()
	entries[0].Type = " OPENING"

	tbl := VendorLedger("Sri Farms", entries)
	opening := tbl.Rows[0]
	for _, i := range []int{6, 7, 8, 9, 11} {
		be.True(t, opening[i].IsPlaceholder())
	}
	be.Equal(t, 2, api.Totals(entries).Count)
}

func TestVendorLedgerColumns(t *testing.T) {
	be.Equal(t, 17, len(VendorLedgerColumns))
	be.Equal(t, "Date", VendorLedgerColumns[0].Header)
	be.Equal(t, "Narration", VendorLedgerColumns[16].Header)

	tbl := VendorLedger("Sri Farms", sampleEntries())
	be.Equal(t, 17, len(tbl.Headers()))
	be.Equal(t, 3, len(tbl.Rows))
	for _, r := range tbl.Rows {
		be.Equal(t, 17, len(r))
	}
	be.Equal(t, 17, len(tbl.Totals))
}

func TestOpeningRowPlaceholders(t *testing.T) {
	tbl := VendorLedger("Sri Farms", sampleEntries())
	opening := tbl.Rows[0]

	// Birds, Weight, Avg Wt, Rate, Volume
	for _, i := range []int{6, 7, 8, 9, 11} {
		be.True(t, opening[i].IsPlaceholder())
	}
	// opening debit is a real number
	be.True(t, opening[12].Number.Equal(decimal.NewFromInt(5000)))

	purchase := tbl.Rows[1]
	be.True(t, purchase[6].Number.Equal(decimal.NewFromInt(1000)))
	be.Equal(t, "2.151", purchase[8].format(3))
	// no debit on a purchase row: placeholder, not zero
	be.True(t, purchase[12].IsPlaceholder())
	be.Equal(t, "Cr", purchase[15].Text)

	payment := tbl.Rows[2]
	be.True(t, payment[12].Number.Equal(decimal.NewFromInt(100000)))
	be.Equal(t, "Cr", payment[15].Text)
}

func TestTotalsRowSkipsOpening(t *testing.T) {
	tbl := VendorLedger("Sri Farms", sampleEntries())

	be.Equal(t, "Total", tbl.Totals[0].Text)
	be.True(t, tbl.Totals[6].Number.Equal(decimal.NewFromInt(1000)))
	be.True(t, tbl.Totals[12].Number.Equal(decimal.NewFromInt(100000)))
	be.True(t, tbl.Totals[13].Number.Equal(decimal.NewFromInt(210749)))
	be.True(t, tbl.Totals[14].Number == nil)
}

func TestWriteSpreadsheetReadBack(t *testing.T) {
	dir := t.TempDir()
	tbl := VendorLedger("Sri Farms", sampleEntries())

	path, ok := Save(dir, "sri_ledger.xlsx", XLSX, tbl)
	be.True(t, ok)

	f, err := excelize.OpenFile(path)
	be.NilErr(t, err)
	defer f.Close()

	be.AllEqual(t, []string{"Sri Farms"}, f.GetSheetList())

	rows, err := f.GetRows("Sri Farms", excelize.Options{RawCellValue: true})
	be.NilErr(t, err)
	be.Equal(t, 5, len(rows))
	be.AllEqual(t, tbl.Headers(), rows[0])
	be.Equal(t, "OPENING", rows[1][1])
	be.Equal(t, Placeholder, rows[1][6])
	be.Equal(t, "1000", rows[2][6])
	be.Equal(t, "Total", rows[4][0])
	be.Equal(t, "210749", rows[4][13])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	entries := sampleEntries()
	for range 80 {
		entries = append(entries, entries[1])
	}

	be.NilErr(t, WritePDF(&buf, VendorLedger("Sri Farms", entries)))
	be.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSaveFailureReportsFalse(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	be.NilErr(t, os.WriteFile(blocker, []byte("x"), 0o600))

	path, ok := Save(filepath.Join(blocker, "sub"), "x.pdf", PDF, Trips("Trips", nil))
	be.False(t, ok)
	be.Equal(t, "", path)
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 4, 5, 14, 0, 0, 0, time.UTC)
	be.Equal(t, "Sri_Farms_ledger_05-Apr-25.xlsx", Filename("Sri Farms", "ledger", at, XLSX))
	be.Equal(t, "Indian_Oil_Kavali_diesel_05-Apr-25.pdf", Filename("Indian Oil / Kavali", "diesel", at, PDF))
	be.Equal(t, "export_trips_05-Apr-25.pdf", Filename("  ", "trips", at, PDF))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"xlsx": XLSX, ".XLSX": XLSX, "excel": XLSX, "pdf": PDF} {
		got, err := ParseFormat(in)
		be.NilErr(t, err)
		be.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	be.Nonzero(t, err)
}

func TestSheetName(t *testing.T) {
	be.Equal(t, "Sheet1", SheetName(""))
	be.Equal(t, "a-b", SheetName("a/b"))
	be.Equal(t, 31, len([]rune(SheetName("Sri Lakshmi Venkateswara Poultry Farms Ledger"))))
}

func TestTripsAndVouchers(t *testing.T) {
	trips := Trips("Trips", []api.Trip{
		{TripID: "T1", Birds: decimal.NewFromInt(100), Profit: decimal.NewFromInt(500)},
		{TripID: "T2", Birds: decimal.NewFromInt(50), Profit: decimal.NewFromInt(-20)},
	})
	be.Equal(t, len(TripColumns), len(trips.Totals))
	be.True(t, trips.Totals[7].Number.Equal(decimal.NewFromInt(150)))
	be.True(t, trips.Totals[12].Number.Equal(decimal.NewFromInt(480)))

	vouchers := Vouchers("Vouchers", []api.Voucher{{
		VoucherNumber: "JV-1",
		Entries: []api.VoucherEntry{
			{Debit: decimal.NewFromInt(300)},
			{Credit: decimal.NewFromInt(300)},
		},
	}})
	be.True(t, vouchers.Totals[5].Number.Equal(decimal.NewFromInt(300)))
}
