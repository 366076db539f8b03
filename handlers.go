package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/export"
	"github.com/flockbooks/flockbooks/groups"
	"github.com/flockbooks/flockbooks/overview"
	"github.com/flockbooks/flockbooks/statement"
	"github.com/flockbooks/flockbooks/voucher"
)

// Message types for different API responses. gen is the view generation
// the request was made for.
type (
	getDashboardMsg struct {
		gen       int
		stats     *api.DashboardStats
		settings  *api.Settings
		tripStats []api.TripDailyStat
		sales     []api.SalesStat
		groups    []groups.Group
		errs      map[string]error
	}

	getLedgersMsg struct {
		gen     int
		groupID string
		ledgers []api.Ledger
		groups  []groups.Group
		err     error
	}

	getEntriesMsg struct {
		gen     int
		ledger  api.Ledger
		entries []api.LedgerEntry
		err     error
	}

	getProfitLossMsg struct {
		gen int
		pl  *statement.ProfitLoss
		err error
	}

	getTripsMsg struct {
		gen        int
		page       int
		trips      []api.Trip
		pagination *api.Pagination
		err        error
	}

	getVouchersMsg struct {
		gen      int
		vouchers []api.Voucher
		err      error
	}

	createVoucherMsg struct {
		voucher *api.Voucher
		err     error
	}

	exportMsg struct {
		path string
		ok   bool
	}
)

// Message handlers.
func (m model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h, v := m.styles.docStyle.GetFrameSize()
	m.width, m.height = msg.Width, msg.Height

	takenHeight := 5
	m.dashboard.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.dashboard.Viewport.Width = msg.Width
	m.dashboard.Viewport.Height = msg.Height - takenHeight

	m.ledgers.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.vouchers.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	// the totals footer takes two more lines
	m.entries.SetHeight(msg.Height - v - takenHeight - 2)
	m.entries.SetWidth(msg.Width - h)
	m.tripList.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.profitLoss.SetSize(msg.Width-h, msg.Height-v-takenHeight)
	m.configView.SetSize(msg.Width-h, msg.Height-v-takenHeight)

	m.help.Width = msg.Width

	if m.voucherForm != nil {
		m.voucherForm = m.voucherForm.WithHeight(msg.Height - takenHeight).WithWidth(msg.Width - h)
	}
	if m.groupForm != nil {
		m.groupForm = m.groupForm.WithHeight(msg.Height - takenHeight).WithWidth(msg.Width - h)
	}

	return m, nil
}

func (m model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.sessionState != loading {
		return m, nil
	}

	var cmd tea.Cmd
	m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
	return m, cmd
}

// failed moves to the error state. Canceled requests belong to a closed view
// and are ignored.
func (m *model) failed(what string, err error) {
	if errors.Is(err, context.Canceled) {
		log.Debug("dropping canceled response", "what", what)
		return
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		log.Debug("request failed", "what", what, "detail", apiErr.Detail())
	}

	m.sessionState = errorState
	m.errorMsg = fmt.Sprintf("Could not load %s: %s", what, err.Error())
}

// loaded marks key done and enters the target view once nothing is pending.
func (m *model) loaded(key string) {
	m.loadingState.set(key)
	if ok, _ := m.loadingState.allLoaded(); ok && m.sessionState == loading {
		m.sessionState = m.targetState
	}
}

func (m model) handleGetDashboard(msg getDashboardMsg) (tea.Model, tea.Cmd) {
	if !m.scope.current(msg.gen) {
		return m, nil
	}

	for panel, err := range msg.errs {
		if errors.Is(err, context.Canceled) {
			return m, nil
		}
		log.Warn("dashboard panel unavailable", "panel", panel, "error", err)
		m.dashboard.SetUnavailable(panel, err)
	}
	if len(msg.errs) == len(dashboardPanels) {
		m.failed("the dashboard", msg.errs[overview.StatsPanel])
		return m, nil
	}

	if msg.stats != nil {
		m.dashboard.SetStats(msg.stats)
	}
	if msg.settings != nil {
		m.dashboard.SetSettings(msg.settings)
	}
	if msg.tripStats != nil {
		m.dashboard.SetTripStats(msg.tripStats)
	}
	if msg.sales != nil {
		m.dashboard.SetSales(msg.sales)
	}
	if msg.groups != nil {
		m.setGroups(msg.groups)
	}

	m.loaded(dashboardKey)

	return m, nil
}

// setGroups builds the chart of accounts. Broken trees are logged and the
// previous groups kept.
func (m *model) setGroups(gs []groups.Group) {
	policy, err := groups.ParsePolicy(m.cfg.UnresolvedParent)
	if err != nil {
		log.Warn("invalid unresolved parent policy, promoting", "error", err)
	}

	roots, err := groups.Build(gs, groups.WithUnresolvedParent(policy))
	if err != nil {
		log.Warn("could not build group tree", "error", err)
		m.dashboard.SetUnavailable(overview.GroupsPanel, err)
		return
	}

	m.flatGroups = groups.Flatten(roots)
	m.dashboard.SetGroups(roots)
}

func (m model) handleGetLedgers(msg getLedgersMsg) (tea.Model, tea.Cmd) {
	if !m.scope.current(msg.gen) {
		return m, nil
	}
	if msg.err != nil {
		m.failed("ledgers", msg.err)
		return m, nil
	}

	m.setGroups(msg.groups)

	if msg.groupID == "" {
		m.allLedgers = msg.ledgers
	}

	if m.targetState == voucherFormState {
		if len(m.allLedgers) == 0 {
			m.sessionState = vouchersState
			m.statusMsg = "No ledgers to post a voucher to"
			return m, nil
		}
		cmd := m.openVoucherForm()
		return m, cmd
	}

	items := make([]list.Item, len(msg.ledgers))
	for i, l := range msg.ledgers {
		items[i] = ledgerItem{l: l, groupName: m.groupName(l)}
	}
	cmd := m.ledgers.SetItems(items)

	m.loaded(ledgersKey)

	return m, cmd
}

// groupName prefers the name from the chart of accounts.
func (m model) groupName(l api.Ledger) string {
	id := l.GroupID()
	for _, g := range m.flatGroups {
		if g.ID == id {
			return g.Name
		}
	}
	return l.GroupName
}

func (m model) handleGetEntries(msg getEntriesMsg) (tea.Model, tea.Cmd) {
	if !m.scope.current(msg.gen) {
		return m, nil
	}
	if msg.err != nil {
		m.failed("the ledger statement", msg.err)
		return m, nil
	}

	ledger := msg.ledger
	m.currentLedger = &ledger
	m.setEntries(msg.entries)

	m.loaded(entriesKey)

	return m, nil
}

func (m model) handleGetProfitLoss(msg getProfitLossMsg) (tea.Model, tea.Cmd) {
	if !m.scope.current(msg.gen) {
		return m, nil
	}
	if msg.err != nil {
		m.failed("the profit & loss statement", msg.err)
		return m, nil
	}

	m.profitLoss.SetRange(m.period.start, m.period.end)
	m.profitLoss.SetStatement(*msg.pl)

	hits, misses := m.profitLoss.RendererStats()
	log.Debug("rendered profit & loss", "reused", hits, "rendered", misses)

	m.loaded(plKey)

	return m, nil
}

func (m model) handleGetTrips(msg getTripsMsg) (tea.Model, tea.Cmd) {
	if !m.scope.current(msg.gen) {
		return m, nil
	}
	if msg.err != nil {
		m.tripPager.Failed()
		if msg.page > 1 {
			if !errors.Is(msg.err, context.Canceled) {
				m.statusMsg = fmt.Sprintf("Could not load more trips: %s", msg.err.Error())
			}
			return m, nil
		}
		m.failed("trips", msg.err)
		return m, nil
	}

	total := msg.page
	if msg.pagination != nil {
		total = msg.pagination.TotalPages
	}
	m.tripPager.Done(msg.page, total)

	if msg.page == 1 {
		m.tripList.SetTrips(msg.trips)
		m.tripList.SetFocus(true)
	} else {
		m.tripList.AppendTrips(msg.trips)
	}
	m.statusMsg = ""

	m.loaded(tripsKey)

	return m, nil
}

func (m model) handleGetVouchers(msg getVouchersMsg) (tea.Model, tea.Cmd) {
	if !m.scope.current(msg.gen) {
		return m, nil
	}
	if msg.err != nil {
		m.failed("vouchers", msg.err)
		return m, nil
	}

	m.voucherList = msg.vouchers
	items := make([]list.Item, len(msg.vouchers))
	for i, v := range msg.vouchers {
		items[i] = voucherItem{v: v}
	}
	cmd := m.vouchers.SetItems(items)

	m.loaded(vouchersKey)

	return m, cmd
}

func (m model) handleCreateVoucher(msg createVoucherMsg) (tea.Model, tea.Cmd) {
	var invalid voucher.ValidationErrors
	switch {
	case errors.As(msg.err, &invalid):
		m.statusMsg = "Voucher not posted: " + invalid.Error()
		return m, nil
	case msg.err != nil:
		m.statusMsg = "Voucher not posted: " + msg.err.Error()
		return m, nil
	}

	cmd := m.openView(vouchersState)
	return m, tea.Batch(cmd, m.vouchers.NewStatusMessage(
		fmt.Sprintf("Posted %s voucher %s", msg.voucher.Type, msg.voucher.VoucherNumber),
	))
}

func (m model) handleExport(msg exportMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.statusMsg = "Export failed, see log"
		return m, nil
	}
	m.statusMsg = "Saved " + msg.path
	return m, nil
}

// dashboardPanels is the order of the dashboard fetches.
var dashboardPanels = []string{
	overview.StatsPanel,
	overview.SettingsPanel,
	overview.TripsPanel,
	overview.SalesPanel,
	overview.GroupsPanel,
}

// API call functions. Each returns a command bound to the context and
// generation of the view it loads.
func (m model) getDashboard(ctx context.Context, gen int) tea.Cmd {
	r := m.period.rng()
	today := time.Now()
	day := api.Range{From: today, To: today}

	return func() tea.Msg {
		msg := getDashboardMsg{gen: gen, errs: map[string]error{}}

		errs := fetchEach(ctx,
			func(ctx context.Context) error {
				var err error
				msg.stats, err = m.client.DashboardStats(ctx)
				return err
			},
			func(ctx context.Context) error {
				var err error
				msg.settings, err = m.client.Settings(ctx)
				return err
			},
			func(ctx context.Context) error {
				var err error
				msg.tripStats, err = m.client.TripDailyStats(ctx, day)
				return err
			},
			func(ctx context.Context) error {
				var err error
				msg.sales, err = m.client.IndirectSalesMonthly(ctx, r)
				return err
			},
			func(ctx context.Context) error {
				var err error
				msg.groups, err = m.client.Groups(ctx)
				return err
			},
		)
		for i, err := range errs {
			if err != nil {
				msg.errs[dashboardPanels[i]] = err
			}
		}

		return msg
	}
}

func (m model) getLedgers(ctx context.Context, gen int) tea.Cmd {
	return m.getLedgersIn(ctx, gen, m.groupFilter)
}

// getLedgersIn loads the ledgers of one group, or all when groupID is empty,
// together with the groups.
func (m model) getLedgersIn(ctx context.Context, gen int, groupID string) tea.Cmd {
	q := api.LedgerQuery{GroupID: groupID}

	return func() tea.Msg {
		msg := getLedgersMsg{gen: gen, groupID: groupID}
		msg.err = fetchAll(ctx,
			func(ctx context.Context) error {
				var err error
				msg.ledgers, err = m.client.Ledgers(ctx, q)
				return err
			},
			func(ctx context.Context) error {
				var err error
				msg.groups, err = m.client.Groups(ctx)
				return err
			},
		)
		return msg
	}
}

// entriesRange is the drill-down range when there is one, else the period.
func (m model) entriesRange() api.Range {
	if m.drillRange != nil {
		return *m.drillRange
	}
	return m.period.rng()
}

func (m model) getEntries(ctx context.Context, gen int, ledger api.Ledger) tea.Cmd {
	r := m.entriesRange()

	return func() tea.Msg {
		entries, _, err := m.client.LedgerTransactions(ctx, ledger.ID, r)
		return getEntriesMsg{gen: gen, ledger: ledger, entries: entries, err: err}
	}
}

func (m model) getProfitLoss(ctx context.Context, gen int) tea.Cmd {
	r := m.period.rng()

	return func() tea.Msg {
		pl, err := m.client.ProfitLoss(ctx, r)
		return getProfitLossMsg{gen: gen, pl: pl, err: err}
	}
}

func (m model) getTrips(ctx context.Context, gen, page int) tea.Cmd {
	q := api.TripQuery{Range: m.period.rng()}
	q.Page = page
	q.Limit = m.cfg.PageSize

	return func() tea.Msg {
		ts, pagination, err := m.client.Trips(ctx, q)
		return getTripsMsg{gen: gen, page: page, trips: ts, pagination: pagination, err: err}
	}
}

func (m model) getVouchers(ctx context.Context, gen int) tea.Cmd {
	q := api.VoucherQuery{Range: m.period.rng()}
	q.Limit = m.cfg.PageSize

	return func() tea.Msg {
		vs, _, err := m.client.Vouchers(ctx, q)
		return getVouchersMsg{gen: gen, vouchers: vs, err: err}
	}
}

func (m model) createVoucher(in voucher.Input) tea.Cmd {
	ctx, _ := m.scope.child()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		log.Debug("posting voucher", "type", in.Type, "lines", len(in.Lines))
		v, err := m.client.CreateVoucher(ctx, in)
		return createVoucherMsg{voucher: v, err: err}
	}
}

// saveExport writes t to the output directory off the update loop.
func (m model) saveExport(entity, kind string, f export.Format, t export.Table) tea.Cmd {
	dir := m.cfg.OutputDir

	return func() tea.Msg {
		path, ok := export.Save(dir, export.Filename(entity, kind, time.Now(), f), f, t)
		return exportMsg{path: path, ok: ok}
	}
}
