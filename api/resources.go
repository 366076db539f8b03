package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/flockbooks/flockbooks/groups"
	"github.com/flockbooks/flockbooks/statement"
	"github.com/flockbooks/flockbooks/voucher"
)

// Range filters by date and selects a page. Zero fields are omitted.
type Range struct {
	From  time.Time
	To    time.Time
	Page  int
	Limit int
}

func (r Range) values() url.Values {
	v := url.Values{}
	if !r.From.IsZero() {
		v.Set("startDate", r.From.Format(DateLayout))
	}
	if !r.To.IsZero() {
		v.Set("endDate", r.To.Format(DateLayout))
	}
	if r.Page > 0 {
		v.Set("page", strconv.Itoa(r.Page))
	}
	if r.Limit > 0 {
		v.Set("limit", strconv.Itoa(r.Limit))
	}
	return v
}

func (c *Client) Customers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	_, err := c.get(ctx, &out, nil, "customer")
	return out, err
}

func (c *Client) Vendors(ctx context.Context) ([]Vendor, error) {
	var out []Vendor
	_, err := c.get(ctx, &out, nil, "vendor")
	return out, err
}

// VoucherQuery filters /voucher.
type VoucherQuery struct {
	Range
	Type string
}

func (c *Client) Vouchers(ctx context.Context, q VoucherQuery) ([]Voucher, *Pagination, error) {
	v := q.values()
	if q.Type != "" {
		v.Set("voucherType", q.Type)
	}

	var out []Voucher
	p, err := c.get(ctx, &out, v, "voucher")
	return out, p, err
}

func (c *Client) Voucher(ctx context.Context, id string) (*Voucher, error) {
	var out Voucher
	if _, err := c.get(ctx, &out, nil, "voucher", id); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateVoucher validates in and posts it. Invalid input returns
// voucher.ValidationErrors without sending a request.
func (c *Client) CreateVoucher(ctx context.Context, in voucher.Input) (*Voucher, error) {
	if err := voucher.Validate(in); err != nil {
		return nil, err
	}

	var out Voucher
	if err := c.post(ctx, in, &out, "voucher"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Groups(ctx context.Context) ([]groups.Group, error) {
	var out []groups.Group
	_, err := c.get(ctx, &out, nil, "group")
	return out, err
}

// LedgerQuery filters /ledger.
type LedgerQuery struct {
	GroupID string
}

func (c *Client) Ledgers(ctx context.Context, q LedgerQuery) ([]Ledger, error) {
	v := url.Values{}
	if q.GroupID != "" {
		v.Set("group", q.GroupID)
	}

	var out []Ledger
	_, err := c.get(ctx, &out, v, "ledger")
	return out, err
}

// LedgerTransactions returns the statement rows of a ledger. The first row
// is usually the opening balance.
func (c *Client) LedgerTransactions(ctx context.Context, id string, r Range) ([]LedgerEntry, *Pagination, error) {
	var out []LedgerEntry
	p, err := c.get(ctx, &out, r.values(), "ledger", id, "transactions")
	return out, p, err
}

func (c *Client) LedgerDailySummary(ctx context.Context, id string, r Range) ([]LedgerSummary, error) {
	var out []LedgerSummary
	_, err := c.get(ctx, &out, r.values(), "ledger", id, "daily-summary")
	return out, err
}

func (c *Client) LedgerMonthlySummary(ctx context.Context, id string, r Range) ([]LedgerSummary, error) {
	var out []LedgerSummary
	_, err := c.get(ctx, &out, r.values(), "ledger", id, "monthly-summary")
	return out, err
}

func (c *Client) DieselStations(ctx context.Context) ([]DieselStation, error) {
	var out []DieselStation
	_, err := c.get(ctx, &out, nil, "diesel-stations")
	return out, err
}

// DieselStation returns a station with its transactions for the range.
func (c *Client) DieselStation(ctx context.Context, id string, r Range) (*DieselStation, error) {
	var out DieselStation
	if _, err := c.get(ctx, &out, r.values(), "diesel-stations", id); err != nil {
		return nil, err
	}
	return &out, nil
}

// TripQuery filters /trip.
type TripQuery struct {
	Range
	Status string
}

// Trips returns one page of trips. The backend wraps them under "trips"
// rather than "data".
func (c *Client) Trips(ctx context.Context, q TripQuery) ([]Trip, *Pagination, error) {
	v := q.values()
	if q.Status != "" {
		v.Set("status", q.Status)
	}

	var out []Trip
	p, err := c.get(ctx, &out, v, "trip")
	return out, p, err
}

func (c *Client) TripDailyStats(ctx context.Context, r Range) ([]TripDailyStat, error) {
	var out []TripDailyStat
	_, err := c.get(ctx, &out, r.values(), "trip", "stats", "daily")
	return out, err
}

func (c *Client) IndirectSalesDaily(ctx context.Context, r Range) ([]SalesStat, error) {
	var out []SalesStat
	_, err := c.get(ctx, &out, r.values(), "indirect-sales", "stats", "daily")
	return out, err
}

func (c *Client) IndirectSalesMonthly(ctx context.Context, r Range) ([]SalesStat, error) {
	var out []SalesStat
	_, err := c.get(ctx, &out, r.values(), "indirect-sales", "stats", "monthly")
	return out, err
}

func (c *Client) ProfitLoss(ctx context.Context, r Range) (*statement.ProfitLoss, error) {
	var out statement.ProfitLoss
	if _, err := c.get(ctx, &out, r.values(), "dashboard", "profit-loss"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if _, err := c.get(ctx, &out, nil, "dashboard", "stats"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	var out Settings
	if _, err := c.get(ctx, &out, nil, "settings"); err != nil {
		return nil, err
	}
	return &out, nil
}
