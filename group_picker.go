package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/flockbooks/flockbooks/groups"
)

const allGroups = ""

func newGroupForm(flat []groups.FlatGroup, selected string) *huh.Form {
	options := make([]huh.Option[string], 0, len(flat)+1)
	options = append(options, huh.NewOption("All groups", allGroups))
	for _, g := range flat {
		options = append(options, huh.NewOption(g.DisplayName, g.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("group").
				Title("Show ledgers of").
				Options(options...).
				Filtering(true).
				Height(15).
				Value(&selected),
		),
	).WithShowHelp(true)
}

// openGroupPicker shows the chart of accounts as an indented list.
func (m *model) openGroupPicker() tea.Cmd {
	if len(m.flatGroups) == 0 {
		m.statusMsg = "Groups are not loaded yet, open the ledgers first"
		return nil
	}

	m.groupForm = newGroupForm(m.flatGroups, m.groupFilter)
	if m.width > 0 {
		m.groupForm = m.groupForm.WithWidth(m.width - 2*standardMargin).WithHeight(m.height - 5)
	}
	m.sessionState = groupPickerState

	return m.groupForm.Init()
}

func updateGroupPicker(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	if m.groupForm == nil {
		return m, nil
	}

	form, formCmd := m.groupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.groupForm = f
	} else {
		log.Debug("groupForm did not return a form, returning nil")
		return m, nil
	}

	if m.groupForm.State != huh.StateCompleted {
		return m, formCmd
	}

	m.groupFilter = m.groupForm.GetString("group")
	m.drillRange = nil
	m.groupForm = nil
	log.Debug("group selected", "group", m.groupFilter)

	cmd := m.openView(ledgersState)
	return m, cmd
}

func groupPickerView(m model) string {
	if m.groupForm == nil {
		return ""
	}
	return m.groupForm.View()
}
