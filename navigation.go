package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// openView cancels whatever the previous view was loading and starts loading
// state. Views without remote data are entered directly.
func (m *model) openView(state sessionState) tea.Cmd {
	log.Debug("opening view", "state", state)

	m.statusMsg = ""
	m.errorMsg = ""
	m.targetState = state

	switch state {
	case configView:
		m.scope.open()
		m.configView.SetConfig(m.cfg)
		m.configView.SetFocus(true)
		m.sessionState = configView
		return nil
	case groupPickerState:
		m.scope.open()
		return m.openGroupPicker()
	case voucherFormState:
		m.scope.open()
		return m.openVoucherForm()
	}

	ctx, gen := m.scope.open()
	m.sessionState = loading

	switch state {
	case dashboardState:
		m.loadingState.reset(dashboardKey)
		return tea.Batch(m.getDashboard(ctx, gen), m.loadingSpinner.Tick)
	case ledgersState:
		m.loadingState.reset(ledgersKey)
		return tea.Batch(m.getLedgers(ctx, gen), m.loadingSpinner.Tick)
	case ledgerDetailState:
		if m.currentLedger == nil {
			m.sessionState = ledgersState
			return nil
		}
		m.loadingState.reset(entriesKey)
		return tea.Batch(m.getEntries(ctx, gen, *m.currentLedger), m.loadingSpinner.Tick)
	case profitLossState:
		m.loadingState.reset(plKey)
		return tea.Batch(m.getProfitLoss(ctx, gen), m.loadingSpinner.Tick)
	case tripsState:
		m.loadingState.reset(tripsKey)
		m.tripPager.Reset()
		page, _ := m.tripPager.TryNext()
		return tea.Batch(m.getTrips(ctx, gen, page), m.loadingSpinner.Tick)
	case vouchersState:
		m.loadingState.reset(vouchersKey)
		return tea.Batch(m.getVouchers(ctx, gen), m.loadingSpinner.Tick)
	}

	m.sessionState = state
	return nil
}

// switchTo records where escape should return and opens state.
func (m *model) switchTo(state sessionState) tea.Cmd {
	if m.sessionState != loading && m.sessionState != errorState {
		m.previousSessionState = m.sessionState
	}
	return m.openView(state)
}

// reloadView reloads the open view, or the view that was loading or failed.
func (m *model) reloadView() tea.Cmd {
	state := m.sessionState
	if state == loading || state == errorState {
		state = m.targetState
	}
	return m.openView(state)
}

// periodSensitive reports whether state shows data filtered by the period.
func periodSensitive(state sessionState) bool {
	switch state {
	case dashboardState, ledgerDetailState, profitLossState, tripsState, vouchersState:
		return true
	}
	return false
}

func (m *model) setCurrentPeriod() tea.Cmd {
	m.period.setPeriod(m.currentPeriod, m.periodType, m.fiscalStart())
	m.drillRange = nil
	log.Debug("period changed", "type", m.periodType, "period", m.period.String())

	state := m.sessionState
	if state == loading || state == errorState {
		state = m.targetState
	}
	if !periodSensitive(state) {
		return nil
	}
	return m.openView(state)
}

// advancePeriod moves forward by one month or year depending on the period type.
func advancePeriod(m *model) tea.Cmd {
	m.currentPeriod = shiftPeriod(m.currentPeriod, m.periodType, 1)
	return m.setCurrentPeriod()
}

// retrievePreviousPeriod moves back by one month or year depending on the period type.
func retrievePreviousPeriod(m *model) tea.Cmd {
	m.currentPeriod = shiftPeriod(m.currentPeriod, m.periodType, -1)
	return m.setCurrentPeriod()
}

func switchPeriodType(m *model) tea.Cmd {
	m.periodType = nextPeriodType(m.periodType)
	return m.setCurrentPeriod()
}
