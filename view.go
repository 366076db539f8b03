package main

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	switch m.sessionState {
	case dashboardState:
		b.WriteString(m.dashboard.View())
	case ledgersState:
		b.WriteString(ledgersView(m))
	case ledgerDetailState:
		b.WriteString(ledgerDetailView(m))
	case profitLossState:
		b.WriteString(m.profitLoss.View())
	case tripsState:
		b.WriteString(m.tripList.View())
	case vouchersState:
		b.WriteString(m.vouchers.View())
	case voucherFormState:
		b.WriteString(voucherFormView(m))
	case groupPickerState:
		b.WriteString(groupPickerView(m))
	case configView:
		b.WriteString(m.configView.View())
	case loading:
		b.WriteString(fmt.Sprintf("%s %s", m.loadingSpinner.View(), m.loadingState.describe()))
	case errorState:
		b.WriteString(m.styles.errorStyle.Render(fmt.Sprintf("%s - 'r' to retry, 'esc' for the dashboard, 'q' to quit", m.errorMsg)))
		return m.styles.docStyle.Render(b.String())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.statusStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.docStyle.Render(b.String())
}

func (m model) renderTitle() string {
	var b strings.Builder

	if m.period.start.IsZero() {
		b.WriteString(m.styles.titleStyle.Render(fmt.Sprintf("%s | %s", appName, m.sessionState.String())))
		return b.String()
	}

	b.WriteString(m.styles.titleStyle.Render(
		fmt.Sprintf("%s | %s | %s | %s",
			appName,
			m.sessionState.String(),
			m.period.label(m.periodType),
			m.periodType,
		),
	))

	return b.String()
}
