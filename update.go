package main

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/statement"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// always check the global keys first
	if msg, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := handleKeyPress(msg, &m); handled {
			log.Debug("key press handled", "state", m.sessionState)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)

	case getDashboardMsg:
		return m.handleGetDashboard(msg)

	case getLedgersMsg:
		return m.handleGetLedgers(msg)

	case getEntriesMsg:
		return m.handleGetEntries(msg)

	case getProfitLossMsg:
		return m.handleGetProfitLoss(msg)

	case getTripsMsg:
		return m.handleGetTrips(msg)

	case getVouchersMsg:
		return m.handleGetVouchers(msg)

	case createVoucherMsg:
		return m.handleCreateVoucher(msg)

	case exportMsg:
		return m.handleExport(msg)

	case statement.DrillDown:
		return m.handleDrillDown(msg)
	}

	var cmd tea.Cmd
	switch m.sessionState {
	case dashboardState:
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case ledgersState:
		return updateLedgers(msg, m)

	case ledgerDetailState:
		m.entries, cmd = m.entries.Update(msg)
		return m, cmd

	case profitLossState:
		m.profitLoss, cmd = m.profitLoss.Update(msg)
		return m, cmd

	case tripsState:
		return updateTrips(msg, m)

	case vouchersState:
		m.vouchers, cmd = m.vouchers.Update(msg)
		return m, cmd

	case voucherFormState:
		return updateVoucherForm(msg, m)

	case groupPickerState:
		return updateGroupPicker(msg, m)

	case configView:
		m.configView, cmd = m.configView.Update(msg)
		return m, cmd

	case loading:
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleDrillDown opens the ledgers of the selected profit & loss group.
func (m model) handleDrillDown(msg statement.DrillDown) (tea.Model, tea.Cmd) {
	log.Debug("drilling into group", "group", msg.GroupID, "from", msg.From, "to", msg.To)
	m.groupFilter = msg.GroupID
	m.drillRange = nil
	if !msg.From.IsZero() && !msg.To.IsZero() {
		m.drillRange = &api.Range{From: msg.From, To: msg.To}
	}
	cmd := m.switchTo(ledgersState)
	return m, cmd
}

func updateTrips(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.tripList, cmd = m.tripList.Update(msg)

	if !m.tripPager.ShouldFetch(m.tripList.Cursor(), m.tripList.Len()) {
		return m, cmd
	}

	page, ok := m.tripPager.TryNext()
	if !ok {
		return m, cmd
	}

	log.Debug("fetching next trips page", "page", page)
	m.statusMsg = "Loading more trips..."
	ctx, gen := m.scope.child()
	return m, tea.Batch(cmd, m.getTrips(ctx, gen, page))
}
