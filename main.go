package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/config"
	"github.com/flockbooks/flockbooks/groups"
	"github.com/flockbooks/flockbooks/overview"
	"github.com/flockbooks/flockbooks/pager"
	"github.com/flockbooks/flockbooks/statement"
	"github.com/flockbooks/flockbooks/totals"
	"github.com/flockbooks/flockbooks/trips"
)

type model struct {
	// scope owns the context of the open view
	scope *viewScope

	// loadingSpinner is a spinner model for the loading state
	loadingSpinner spinner.Model

	keys   keyMap
	help   help.Model
	theme  Theme
	styles styles

	// sessionState is the current state of the session
	sessionState sessionState
	// previousSessionState is where escape returns to
	previousSessionState sessionState
	// targetState is the view being loaded, entered once loadingState is done
	targetState  sessionState
	loadingState loadingState
	errorMsg     string
	statusMsg    string

	width  int
	height int

	period        Period
	periodType    string
	currentPeriod time.Time

	cfg    config.Config
	client backend

	dashboard  overview.Model
	configView config.Model

	// flatGroups is the chart of accounts in display order
	flatGroups []groups.FlatGroup
	// groupFilter limits the ledgers view to one group id
	groupFilter string
	// drillRange is the profit & loss range a drill-down came from; ledger
	// entries use it instead of the period while it is set
	drillRange *api.Range
	groupForm   *huh.Form

	ledgers       list.Model
	ledgerKeys    *ledgerKeyMap
	allLedgers    []api.Ledger
	currentLedger *api.Ledger

	entries      table.Model
	entryRows    []api.LedgerEntry
	entryTotals  totals.Totals
	profitLoss   statement.Model
	tripList     trips.Model
	tripPager    *pager.Pager
	vouchers     list.Model
	voucherList  []api.Voucher
	voucherForm  *huh.Form
	voucherDraft *voucherDraft
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.openView(dashboardState),
		m.loadingSpinner.Tick,
	)
}

func main() {
	Execute()
}

// newModel builds the TUI model for client.
func newModel(ctx context.Context, cfg config.Config, client backend, now time.Time) model {
	theme := newTheme(cfg.Colors)

	m := model{
		scope:          newViewScope(ctx),
		keys:           initializeKeyMap(),
		help:           createHelpModel(theme),
		theme:          theme,
		styles:         createStyles(theme),
		sessionState:   loading,
		targetState:    dashboardState,
		loadingState:   newLoadingState(),
		periodType:     monthlyPeriodType,
		currentPeriod:  now,
		cfg:            cfg,
		client:         client,
		loadingSpinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		dashboard:      overview.New(overview.WithStyles(overviewStyles(theme))),
		configView:     config.New(string(theme.Primary)),
		ledgerKeys:     newLedgerKeyMap(),
		entries:        newEntriesTable(theme),
		profitLoss:     statement.New(),
		tripList:       trips.New(trips.Colors{Primary: string(theme.Primary)}),
		tripPager:      pager.New(),
	}

	m.period.setPeriod(now, m.periodType, m.fiscalStart())
	m.profitLoss.Styles = statementStyles(theme)
	m.configView.SetConfig(cfg)

	ledgerList := list.New([]list.Item{}, m.newLedgerDelegate(m.ledgerKeys), 0, 0)
	ledgerList.SetShowTitle(false)
	ledgerList.StatusMessageLifetime = 3 * time.Second
	ledgerList.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{m.keys.groups}
	}
	m.ledgers = ledgerList

	voucherList := list.New([]list.Item{}, m.newVoucherDelegate(), 0, 0)
	voucherList.SetShowTitle(false)
	voucherList.StatusMessageLifetime = 3 * time.Second
	voucherList.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{m.keys.newVoucher, m.keys.export}
	}
	m.vouchers = voucherList

	return m
}

// rootAction runs the TUI.
func rootAction(ctx context.Context, cfg config.Config, client backend) error {
	m := newModel(ctx, cfg, client, time.Now())
	defer m.scope.close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}

func (m model) fiscalStart() time.Month {
	return time.Month(m.cfg.FiscalYearStartMonth)
}
