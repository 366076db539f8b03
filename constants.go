package main

// Period types
const (
	monthlyPeriodType = "month"
	annualPeriodType  = "year"
	fiscalPeriodType  = "fiscal"
)

// Session states
type sessionState int

const (
	dashboardState sessionState = iota
	ledgersState
	ledgerDetailState
	profitLossState
	tripsState
	vouchersState
	voucherFormState
	groupPickerState
	configView
	loading
	errorState
)

func (ss sessionState) String() string {
	switch ss {
	case dashboardState:
		return "dashboard"
	case ledgersState:
		return "ledgers"
	case ledgerDetailState:
		return "ledger"
	case profitLossState:
		return "profit & loss"
	case tripsState:
		return "trips"
	case vouchersState:
		return "vouchers"
	case voucherFormState:
		return "new voucher"
	case groupPickerState:
		return "select group"
	case configView:
		return "configuration"
	case loading:
		return "loading"
	case errorState:
		return "error"
	}

	return "unknown"
}

// Loading keys
const (
	ledgersKey   = "ledgers"
	entriesKey   = "entries"
	plKey        = "profit & loss"
	tripsKey     = "trips"
	vouchersKey  = "vouchers"
	dashboardKey = "dashboard"
)
