package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/export"
	"github.com/flockbooks/flockbooks/statement"
)

func newEntriesTable(theme Theme) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Type", Width: 10},
			{Title: "Voucher", Width: 10},
			{Title: "Particulars", Width: 28},
			{Title: "Debit", Width: 14},
			{Title: "Credit", Width: 14},
			{Title: "Balance", Width: 17},
		}),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Selected = s.Selected.Foreground(theme.Primary)
	t.SetStyles(s)

	return t
}

// setEntries fills the statement table. The totals leave out the opening row.
func (m *model) setEntries(entries []api.LedgerEntry) {
	m.entryRows = entries
	m.entryTotals = api.Totals(entries)

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		debit, credit := e.Sides()
		balance := ""
		if e.Balance != nil {
			balance = statement.FormatBalance(*e.Balance, e.BalanceType)
		}
		rows[i] = table.Row{
			e.Date.String(),
			e.Type,
			e.VoucherNumber,
			e.Particulars,
			amountOrDash(debit),
			amountOrDash(credit),
			balance,
		}
	}

	m.entries.SetRows(rows)
	m.entries.SetCursor(0)
}

func ledgerDetailView(m model) string {
	if m.currentLedger == nil {
		return ""
	}

	var b strings.Builder

	l := m.currentLedger
	b.WriteString(fmt.Sprintf("%s  %s\n", l.Name, m.styles.mutedStyle.Render(m.groupName(*l))))

	if len(m.entryRows) == 0 {
		b.WriteString("No entries for this period")
		return b.String()
	}

	b.WriteString(m.entries.View())
	b.WriteString("\n")

	t := m.entryTotals
	net := statement.FormatAmount(t.Net().Abs())
	if t.Net().IsNegative() {
		net += " Cr"
	} else if t.Net().IsPositive() {
		net += " Dr"
	}
	b.WriteString(m.styles.totalsStyle.Render(fmt.Sprintf(
		"Debit %s   Credit %s   Net %s   Birds %s   Weight %s   Entries %d",
		statement.FormatAmount(t.TotalDebit),
		statement.FormatAmount(t.TotalCredit),
		net,
		t.TotalBirds.StringFixed(0),
		t.TotalWeight.StringFixed(2),
		t.Count,
	)))

	return b.String()
}

// ledgerExportKind picks the export column set from the ledger's group.
func ledgerExportKind(groupName string) string {
	g := strings.ToLower(groupName)
	switch {
	case strings.Contains(g, "diesel"):
		return "diesel"
	case strings.Contains(g, "debtor"), strings.Contains(g, "customer"):
		return "customer"
	}
	return "vendor"
}

// exportView writes what the open view shows to the output directory.
func (m *model) exportView(f export.Format) tea.Cmd {
	switch m.sessionState {
	case ledgerDetailState:
		if m.currentLedger == nil {
			return nil
		}
		name := m.currentLedger.Name
		kind := ledgerExportKind(m.groupName(*m.currentLedger))
		log.Debug("exporting ledger", "ledger", name, "kind", kind, "format", f)
		m.statusMsg = "Exporting " + name + "..."
		return m.saveExport(name, kind, f, ledgerExportBuilders[kind](name, m.entryRows))

	case tripsState:
		m.statusMsg = "Exporting trips..."
		title := "Trips " + m.period.label(m.periodType)
		return m.saveExport("trips", "register", f, export.Trips(title, m.tripList.Trips()))

	case vouchersState:
		m.statusMsg = "Exporting vouchers..."
		title := "Vouchers " + m.period.label(m.periodType)
		return m.saveExport("vouchers", "register", f, export.Vouchers(title, m.voucherList))
	}

	return nil
}
