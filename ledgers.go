package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/statement"
)

type ledgerItem struct {
	l         api.Ledger
	groupName string
}

func (i ledgerItem) Title() string {
	return i.l.Name
}

func (i ledgerItem) Description() string {
	return fmt.Sprintf("%s | opening %s | current %s",
		placeholder(i.groupName),
		statement.FormatBalance(i.l.OpeningBalance, i.l.OpeningBalanceType),
		statement.FormatBalance(i.l.CurrentBalance, i.l.CurrentBalanceType),
	)
}

func (i ledgerItem) FilterValue() string {
	return i.l.Name + " " + i.groupName
}

type voucherItem struct {
	v api.Voucher
}

func (i voucherItem) Title() string {
	title := i.v.Type + " " + placeholder(i.v.VoucherNumber)
	if i.v.Party != "" {
		title += " - " + i.v.Party
	}
	return title
}

func (i voucherItem) Description() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s",
		i.v.Date.String(),
		statement.FormatAmount(i.v.Total()),
		i.v.Narration,
	))
}

func (i voucherItem) FilterValue() string {
	return i.v.VoucherNumber + " " + i.v.Party + " " + i.v.Narration
}

func updateLedgers(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(openLedgerMsg); ok {
		ledger := msg.ledger
		m.currentLedger = &ledger
		cmd := m.switchTo(ledgerDetailState)
		return m, cmd
	}

	var cmd tea.Cmd
	m.ledgers, cmd = m.ledgers.Update(msg)

	return m, cmd
}

func ledgersView(m model) string {
	if m.groupFilter == "" {
		return m.ledgers.View()
	}

	name := m.groupFilter
	for _, g := range m.flatGroups {
		if g.ID == m.groupFilter {
			name = g.Name
			break
		}
	}

	return m.styles.mutedStyle.Render("Group: "+name+" (l for all ledgers)") + "\n" + m.ledgers.View()
}
