package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flockbooks/flockbooks/api"
)

// openLedgerMsg asks for the statement of a ledger.
type openLedgerMsg struct {
	ledger api.Ledger
}

func (m model) selectedStyles(d *list.DefaultDelegate) {
	d.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.AdaptiveColor{Light: string(m.theme.Primary), Dark: string(m.theme.Primary)}).
		Foreground(lipgloss.AdaptiveColor{Light: string(m.theme.Primary), Dark: string(m.theme.Primary)}).
		Padding(0, 0, 0, 1)

	d.Styles.SelectedDesc = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: string(m.theme.Primary), Dark: string(m.theme.Primary)})
}

func (m model) newLedgerDelegate(keys *ledgerKeyMap) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	m.selectedStyles(&d)

	d.UpdateFunc = func(msg tea.Msg, listModel *list.Model) tea.Cmd {
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.open) {
			return openSelectedLedger(listModel)
		}

		return nil
	}

	help := []key.Binding{keys.open}

	d.ShortHelpFunc = func() []key.Binding {
		return help
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{help}
	}

	return d
}

func openSelectedLedger(listModel *list.Model) tea.Cmd {
	li, isValidLedgerItem := listModel.SelectedItem().(ledgerItem)
	if !isValidLedgerItem {
		return nil
	}

	return func() tea.Msg {
		return openLedgerMsg{ledger: li.l}
	}
}

func (m model) newVoucherDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	m.selectedStyles(&d)
	return d
}

type ledgerKeyMap struct {
	open key.Binding
}

func (d ledgerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		d.open,
	}
}

func (d ledgerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			d.open,
		},
	}
}

func newLedgerKeyMap() *ledgerKeyMap {
	return &ledgerKeyMap{
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "statement"),
		),
	}
}
