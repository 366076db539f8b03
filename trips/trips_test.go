package trips

import (
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/flockbooks/flockbooks/api"
)

func trip(id string, profit int64) api.Trip {
	return api.Trip{
		TripID:        id,
		Date:          api.NewDate(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)),
		VehicleNumber: "AP39TX1234",
		Birds:         decimal.NewFromInt(1200),
		Weight:        decimal.RequireFromString("2580.5"),
		Profit:        decimal.NewFromInt(profit),
	}
}

func TestNew(t *testing.T) {
	m := New(Colors{Primary: "#ff0000"})

	columns := m.table.Columns()
	be.Equal(t, 9, len(columns))
	be.Equal(t, "Trip ID", columns[0].Title)
	be.Equal(t, "Profit", columns[8].Title)
	be.Equal(t, 0, m.Len())
}

func TestSetAndAppendTrips(t *testing.T) {
	tests := []struct {
		name   string
		first  []api.Trip
		second []api.Trip
		want   int
	}{
		{name: "empty", want: 0},
		{name: "one page", first: []api.Trip{trip("T1", 10)}, want: 1},
		{
			name:   "two pages",
			first:  []api.Trip{trip("T1", 10), trip("T2", 20)},
			second: []api.Trip{trip("T3", -5)},
			want:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Colors{Primary: "#ff0000"})
			m.SetTrips(tt.first)
			m.AppendTrips(tt.second)

			be.Equal(t, tt.want, m.Len())
			be.Equal(t, tt.want, len(m.table.Rows()))
		})
	}
}

func TestSetTripsReplaces(t *testing.T) {
	m := New(Colors{Primary: "#ff0000"})
	m.SetTrips([]api.Trip{trip("T1", 1), trip("T2", 2)})
	m.SetTrips([]api.Trip{trip("T9", 9)})

	be.Equal(t, 1, m.Len())
	be.Equal(t, "T9", m.Trips()[0].TripID)
	be.Equal(t, 0, m.Cursor())
}

func TestCursorAfterLoad(t *testing.T) {
	tests := []struct {
		name   string
		first  []api.Trip
		second []api.Trip
	}{
		{"single row", []api.Trip{trip("T1", 1)}, nil},
		{"single row then a page", []api.Trip{trip("T1", 1)}, []api.Trip{trip("T2", 2)}},
		{"empty then a page", nil, []api.Trip{trip("T2", 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Colors{Primary: "#ff0000"})
			m.SetTrips(tt.first)
			m.AppendTrips(tt.second)
			be.Equal(t, 0, m.Cursor())
		})
	}
}

func TestRowFormatting(t *testing.T) {
	r := row(trip("T1", -1500))

	be.Equal(t, "02-Apr-25", r[1])
	be.Equal(t, "1200", r[6])
	be.Equal(t, "2580.50", r[7])
	be.Equal(t, "1,500.00 loss", r[8])
}

func TestCursorMovesDown(t *testing.T) {
	m := New(Colors{Primary: "#ff0000"})
	m.SetSize(120, 10)
	m.SetFocus(true)
	m.SetTrips([]api.Trip{trip("T1", 1), trip("T2", 2), trip("T3", 3)})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	be.Equal(t, 2, m.Cursor())
}

func TestView(t *testing.T) {
	m := New(Colors{Primary: "#ff0000"})
	be.Equal(t, "No trips for this period", m.View())

	m.SetSize(120, 10)
	m.SetTrips([]api.Trip{trip("T1", 1)})
	be.True(t, strings.Contains(m.View(), "AP39TX1234"))
}
