package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/flockbooks/flockbooks/export"
)

type keyMap struct {
	dashboard      key.Binding
	ledgers        key.Binding
	profitLoss     key.Binding
	trips          key.Binding
	vouchers       key.Binding
	newVoucher     key.Binding
	groups         key.Binding
	config         key.Binding
	export         key.Binding
	exportPDF      key.Binding
	nextPeriod     key.Binding
	previousPeriod key.Binding
	switchPeriod   key.Binding
	reload         key.Binding
	escape         key.Binding
	fullHelp       key.Binding
	quit           key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.dashboard,
		km.ledgers,
		km.profitLoss,
		km.trips,
		km.vouchers,
		km.switchPeriod,
		km.quit,
		km.fullHelp,
	}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			km.dashboard,
			km.ledgers,
			km.profitLoss,
			km.trips,
			km.vouchers,
			km.config,
			km.quit,
			km.fullHelp,
		},
		{
			km.newVoucher,
			km.groups,
			km.export,
			km.exportPDF,
			km.reload,
		},
		{
			km.nextPeriod,
			km.previousPeriod,
			km.switchPeriod,
		},
	}
}

func initializeKeyMap() keyMap {
	keys := keyMap{
		dashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dashboard"),
		),
		ledgers: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "ledgers"),
		),
		profitLoss: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profit & loss"),
		),
		trips: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trips"),
		),
		vouchers: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "vouchers"),
		),
		newVoucher: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new voucher"),
		),
		groups: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "filter by group"),
		),
		config: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "configuration"),
		),
		export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export xlsx"),
		),
		exportPDF: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export pdf"),
		),
		nextPeriod: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next period"),
		),
		previousPeriod: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous period"),
		),
		switchPeriod: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "month/year/fiscal"),
		),
		reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		fullHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	return keys
}

// handleKeyPress runs the global bindings. It reports whether the key was
// consumed; unconsumed keys go to the open view.
func handleKeyPress(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	k := msg.String()
	log.Debug("key pressed", "key", k)

	// Handle special keys first
	if cmd, ok := handleSpecialKeys(msg, m); ok {
		return cmd, true
	}

	// Check if input is blocked by active forms
	if isInputBlocked(m) {
		return nil, false
	}

	// Handle navigation keys
	if cmd, ok := handleNavigationKeys(msg, m); ok {
		return cmd, true
	}

	// Handle session state changes
	return handleSessionStateKeys(msg, m)
}

func handleSpecialKeys(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	// q is text while a form or filter has focus
	if key.Matches(msg, m.keys.quit) && (msg.String() == "ctrl+c" || !isInputBlocked(m)) {
		return tea.Quit, true
	}

	if key.Matches(msg, m.keys.escape) {
		return handleEscape(msg, m)
	}

	return nil, false
}

func isInputBlocked(m *model) bool {
	if m.sessionState == ledgersState && m.ledgers.FilterState() == list.Filtering {
		return true
	}

	if m.sessionState == vouchersState && m.vouchers.FilterState() == list.Filtering {
		return true
	}

	if m.sessionState == voucherFormState && m.voucherForm != nil && m.voucherForm.State == huh.StateNormal {
		return true
	}

	if m.sessionState == groupPickerState && m.groupForm != nil && m.groupForm.State == huh.StateNormal {
		return true
	}

	return false
}

func handleNavigationKeys(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.nextPeriod):
		return advancePeriod(m), true
	case key.Matches(msg, m.keys.previousPeriod):
		return retrievePreviousPeriod(m), true
	case key.Matches(msg, m.keys.switchPeriod):
		return switchPeriodType(m), true
	case key.Matches(msg, m.keys.reload):
		return m.reloadView(), true
	}

	return nil, false
}

func handleSessionStateKeys(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.dashboard):
		return m.switchTo(dashboardState), true

	case key.Matches(msg, m.keys.ledgers):
		m.groupFilter = ""
		m.drillRange = nil
		return m.switchTo(ledgersState), true

	case key.Matches(msg, m.keys.profitLoss):
		return m.switchTo(profitLossState), true

	case key.Matches(msg, m.keys.trips):
		return m.switchTo(tripsState), true

	case key.Matches(msg, m.keys.vouchers):
		return m.switchTo(vouchersState), true

	case key.Matches(msg, m.keys.newVoucher):
		return m.switchTo(voucherFormState), true

	case key.Matches(msg, m.keys.groups):
		return m.switchTo(groupPickerState), true

	case key.Matches(msg, m.keys.config):
		return m.switchTo(configView), true

	case key.Matches(msg, m.keys.export):
		return m.exportView(export.XLSX), true

	case key.Matches(msg, m.keys.exportPDF):
		return m.exportView(export.PDF), true

	case key.Matches(msg, m.keys.fullHelp):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}

	return nil, false
}

// handleEscape steps back out of the open view.
func handleEscape(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	switch m.sessionState {
	case voucherFormState:
		log.Debug("handling escape in voucher form")
		if m.voucherForm != nil {
			m.voucherForm.State = huh.StateAborted
		}
		m.voucherForm = nil
		m.voucherDraft = nil
		m.sessionState = vouchersState
		return nil, true

	case groupPickerState:
		log.Debug("handling escape in group picker")
		if m.groupForm != nil {
			m.groupForm.State = huh.StateAborted
		}
		m.groupForm = nil
		m.sessionState = m.previousSessionState
		return nil, true

	case ledgersState:
		// handle if user is filtering ledgers and presses escape
		if m.ledgers.FilterState() != list.Unfiltered {
			var cmd tea.Cmd
			m.ledgers, cmd = m.ledgers.Update(msg)
			return cmd, true
		}

	case vouchersState:
		if m.vouchers.FilterState() != list.Unfiltered {
			var cmd tea.Cmd
			m.vouchers, cmd = m.vouchers.Update(msg)
			return cmd, true
		}

	case ledgerDetailState:
		// back to the list without reloading it
		m.scope.open()
		m.statusMsg = ""
		m.sessionState = ledgersState
		return nil, true

	case loading, errorState:
		m.scope.open()
		m.errorMsg = ""
		m.sessionState = dashboardState
		return nil, true
	}

	m.scope.open()
	m.statusMsg = ""
	m.configView.SetFocus(false)
	m.previousSessionState = m.sessionState
	m.sessionState = dashboardState
	return nil, true
}
