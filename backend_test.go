package main

import (
	"context"
	"sync"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/groups"
	"github.com/flockbooks/flockbooks/statement"
	"github.com/flockbooks/flockbooks/voucher"
)

// fakeBackend serves canned data. Zero values mean empty results.
type fakeBackend struct {
	mu sync.Mutex

	customers []api.Customer
	vendors   []api.Vendor
	vouchers  []api.Voucher
	groups    []groups.Group
	ledgers   []api.Ledger
	entries   map[string][]api.LedgerEntry
	tripPages [][]api.Trip
	tripStats []api.TripDailyStat
	sales     []api.SalesStat
	pl        *statement.ProfitLoss
	stats     *api.DashboardStats
	settings  *api.Settings

	created   *api.Voucher
	createErr error

	// errs fails the named method.
	errs map[string]error

	// calls records the methods invoked, with the trip page for Trips.
	calls     []string
	tripCalls []api.TripQuery
	entryRngs []api.Range
	posted    []voucher.Input
}

func (f *fakeBackend) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeBackend) Customers(context.Context) ([]api.Customer, error) {
	if err := f.record("Customers"); err != nil {
		return nil, err
	}
	return f.customers, nil
}

func (f *fakeBackend) Vendors(context.Context) ([]api.Vendor, error) {
	if err := f.record("Vendors"); err != nil {
		return nil, err
	}
	return f.vendors, nil
}

func (f *fakeBackend) Vouchers(context.Context, api.VoucherQuery) ([]api.Voucher, *api.Pagination, error) {
	if err := f.record("Vouchers"); err != nil {
		return nil, nil, err
	}
	return f.vouchers, &api.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: len(f.vouchers)}, nil
}

func (f *fakeBackend) Voucher(_ context.Context, id string) (*api.Voucher, error) {
	if err := f.record("Voucher"); err != nil {
		return nil, err
	}
	for _, v := range f.vouchers {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, &api.Error{Status: 404, Method: "GET", URL: "/voucher/" + id, Message: "voucher not found"}
}

func (f *fakeBackend) CreateVoucher(_ context.Context, in voucher.Input) (*api.Voucher, error) {
	if err := f.record("CreateVoucher"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.posted = append(f.posted, in)
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeBackend) Groups(context.Context) ([]groups.Group, error) {
	if err := f.record("Groups"); err != nil {
		return nil, err
	}
	return f.groups, nil
}

func (f *fakeBackend) Ledgers(_ context.Context, q api.LedgerQuery) ([]api.Ledger, error) {
	if err := f.record("Ledgers"); err != nil {
		return nil, err
	}
	if q.GroupID == "" {
		return f.ledgers, nil
	}
	var ls []api.Ledger
	for _, l := range f.ledgers {
		if l.GroupID() == q.GroupID {
			ls = append(ls, l)
		}
	}
	return ls, nil
}

func (f *fakeBackend) LedgerTransactions(_ context.Context, id string, r api.Range) ([]api.LedgerEntry, *api.Pagination, error) {
	if err := f.record("LedgerTransactions"); err != nil {
		return nil, nil, err
	}
	f.mu.Lock()
	f.entryRngs = append(f.entryRngs, r)
	f.mu.Unlock()
	return f.entries[id], nil, nil
}

func (f *fakeBackend) LedgerDailySummary(context.Context, string, api.Range) ([]api.LedgerSummary, error) {
	return nil, f.record("LedgerDailySummary")
}

func (f *fakeBackend) LedgerMonthlySummary(context.Context, string, api.Range) ([]api.LedgerSummary, error) {
	return nil, f.record("LedgerMonthlySummary")
}

func (f *fakeBackend) DieselStations(context.Context) ([]api.DieselStation, error) {
	return nil, f.record("DieselStations")
}

func (f *fakeBackend) DieselStation(context.Context, string, api.Range) (*api.DieselStation, error) {
	return nil, f.record("DieselStation")
}

func (f *fakeBackend) Trips(_ context.Context, q api.TripQuery) ([]api.Trip, *api.Pagination, error) {
	if err := f.record("Trips"); err != nil {
		return nil, nil, err
	}
	f.mu.Lock()
	f.tripCalls = append(f.tripCalls, q)
	f.mu.Unlock()

	total := len(f.tripPages)
	if q.Page < 1 || q.Page > total {
		return nil, &api.Pagination{CurrentPage: q.Page, TotalPages: total}, nil
	}
	return f.tripPages[q.Page-1], &api.Pagination{CurrentPage: q.Page, TotalPages: total}, nil
}

func (f *fakeBackend) TripDailyStats(context.Context, api.Range) ([]api.TripDailyStat, error) {
	if err := f.record("TripDailyStats"); err != nil {
		return nil, err
	}
	return f.tripStats, nil
}

func (f *fakeBackend) IndirectSalesDaily(context.Context, api.Range) ([]api.SalesStat, error) {
	if err := f.record("IndirectSalesDaily"); err != nil {
		return nil, err
	}
	return f.sales, nil
}

func (f *fakeBackend) IndirectSalesMonthly(context.Context, api.Range) ([]api.SalesStat, error) {
	if err := f.record("IndirectSalesMonthly"); err != nil {
		return nil, err
	}
	return f.sales, nil
}

func (f *fakeBackend) ProfitLoss(context.Context, api.Range) (*statement.ProfitLoss, error) {
	if err := f.record("ProfitLoss"); err != nil {
		return nil, err
	}
	return f.pl, nil
}

func (f *fakeBackend) DashboardStats(context.Context) (*api.DashboardStats, error) {
	if err := f.record("DashboardStats"); err != nil {
		return nil, err
	}
	return f.stats, nil
}

func (f *fakeBackend) Settings(context.Context) (*api.Settings, error) {
	if err := f.record("Settings"); err != nil {
		return nil, err
	}
	return f.settings, nil
}

var _ backend = (*fakeBackend)(nil)
