// Package trips is the scrolling trip table. Pages are appended as the
// cursor reaches the last row.
package trips

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/statement"
)

type Colors struct {
	Primary string
}

type Model struct {
	table table.Model
	trips []api.Trip
}

func New(colors Colors) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Trip ID", Width: 10},
			{Title: "Date", Width: 10},
			{Title: "Vehicle", Width: 12},
			{Title: "Driver", Width: 14},
			{Title: "Place", Width: 14},
			{Title: "Status", Width: 10},
			{Title: "Birds", Width: 8},
			{Title: "Weight", Width: 10},
			{Title: "Profit", Width: 14},
		}),
	)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color(colors.Primary))

	t.SetStyles(tableStyle)

	return Model{table: t}
}

func (m *Model) SetFocus(focus bool) {
	if focus {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

func (m *Model) SetSize(width, height int) {
	m.table.SetHeight(height)
	m.table.SetWidth(width)
}

// SetTrips replaces the loaded trips and moves the cursor to the top.
func (m *Model) SetTrips(trips []api.Trip) {
	m.trips = append([]api.Trip(nil), trips...)

	rows := make([]table.Row, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, row(t))
	}
	// The table clamps the cursor to the last row, so the rows go in first.
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// AppendTrips adds the next page below the loaded rows. The cursor stays
// where it is.
func (m *Model) AppendTrips(trips []api.Trip) {
	m.trips = append(m.trips, trips...)

	rows := m.table.Rows()
	for _, t := range trips {
		rows = append(rows, row(t))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
}

func row(t api.Trip) table.Row {
	return table.Row{
		t.TripID,
		t.Date.String(),
		t.VehicleNumber,
		t.Driver,
		t.Place,
		t.Status,
		t.Birds.StringFixed(0),
		t.Weight.StringFixed(2),
		statement.FormatAmount(t.Profit) + sign(t),
	}
}

func sign(t api.Trip) string {
	if t.Profit.IsNegative() {
		return " loss"
	}
	return ""
}

// Trips returns the loaded trips in display order.
func (m Model) Trips() []api.Trip {
	return m.trips
}

// Len is the number of loaded rows.
func (m Model) Len() int {
	return len(m.trips)
}

// Cursor is the index of the selected row.
func (m Model) Cursor() int {
	return m.table.Cursor()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.trips) == 0 {
		return "No trips for this period"
	}
	return m.table.View()
}
