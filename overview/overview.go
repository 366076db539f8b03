// Package overview is the dashboard: headline stats, the chart of accounts
// and recent trip and sales activity. Each panel is filled independently and
// shows a notice when its data could not be loaded.
package overview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/groups"
	"github.com/flockbooks/flockbooks/statement"
)

var titleCaser = cases.Title(language.English)

// Panel names accepted by SetUnavailable.
const (
	StatsPanel    = "stats"
	GroupsPanel   = "groups"
	TripsPanel    = "trips"
	SalesPanel    = "sales"
	SettingsPanel = "settings"
)

// Model defines the state for the dashboard widget.
type Model struct {
	Styles      Styles
	Viewport    viewport.Model
	stats       *api.DashboardStats
	settings    *api.Settings
	tripStats   []api.TripDailyStat
	sales       []api.SalesStat
	groupTree   *tree.Tree
	unavailable map[string]string
}

type Styles struct {
	DebitStyle     lipgloss.Style
	CreditStyle    lipgloss.Style
	TreeRootStyle  lipgloss.Style
	GroupTypeStyle lipgloss.Style
	GroupStyle     lipgloss.Style
	MutedStyle     lipgloss.Style
	SummaryStyle   lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		DebitStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		CreditStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		TreeRootStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		GroupTypeStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		GroupStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#d29b1d")),
		MutedStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7f7d78")).Italic(true),

		SummaryStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}

type Option func(*Model)

func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.Styles = s
	}
}

func New(opts ...Option) Model {
	m := Model{
		Styles:      defaultStyles(),
		Viewport:    viewport.New(0, 20),
		unavailable: make(map[string]string),
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.groupTree = tree.New().Root(m.Styles.TreeRootStyle.Render("Chart of accounts"))
	m.UpdateViewport()

	return m
}

// SetStats sets the headline figures.
func (m *Model) SetStats(stats *api.DashboardStats) {
	log.Debug("setting dashboard stats")
	m.stats = stats
	delete(m.unavailable, StatsPanel)
	m.UpdateViewport()
}

// SetSettings sets the company profile shown in the header.
func (m *Model) SetSettings(settings *api.Settings) {
	m.settings = settings
	delete(m.unavailable, SettingsPanel)
	m.UpdateViewport()
}

// SetTripStats sets the daily trip figures.
func (m *Model) SetTripStats(stats []api.TripDailyStat) {
	m.tripStats = stats
	delete(m.unavailable, TripsPanel)
	m.UpdateViewport()
}

// SetSales sets the monthly indirect sales figures.
func (m *Model) SetSales(sales []api.SalesStat) {
	m.sales = sales
	delete(m.unavailable, SalesPanel)
	m.UpdateViewport()
}

// SetGroups rebuilds the chart of accounts from the group forest.
func (m *Model) SetGroups(roots []*groups.Node) {
	m.groupTree = tree.New().Root(m.Styles.TreeRootStyle.Render("Chart of accounts"))

	// roots are bucketed by their classification, in first-seen order
	var order []string
	byType := make(map[string]*tree.Tree)
	for _, r := range roots {
		typ := r.Type
		if typ == "" {
			typ = "other"
		}
		t, ok := byType[typ]
		if !ok {
			t = tree.New().Root(m.Styles.GroupTypeStyle.Render(titleCaser.String(typ)))
			byType[typ] = t
			order = append(order, typ)
		}
		t.Child(m.groupNode(r))
	}
	for _, typ := range order {
		m.groupTree.Child(byType[typ])
	}

	delete(m.unavailable, GroupsPanel)
	m.UpdateViewport()
}

func (m *Model) groupNode(n *groups.Node) any {
	name := m.Styles.GroupStyle.Render(n.Name)
	if len(n.Children) == 0 {
		return name
	}

	t := tree.New().Root(name)
	for _, c := range n.Children {
		t.Child(m.groupNode(c))
	}
	return t
}

// SetUnavailable marks a panel as failed. The other panels keep rendering.
func (m *Model) SetUnavailable(panel string, err error) {
	m.unavailable[panel] = err.Error()
	m.UpdateViewport()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.Viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.Viewport.Width = width
	m.Viewport.Height = height
}

func (m *Model) UpdateViewport() {
	groupContent := m.Styles.SummaryStyle.Render(m.panel(GroupsPanel, m.groupTree.String()))

	activity := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(
			lipgloss.JoinVertical(lipgloss.Top,
				lipgloss.NewStyle().Bold(true).Render("Trips by day"),
				m.panel(TripsPanel, m.tripTable()),
				"",
				lipgloss.NewStyle().Bold(true).Render("Indirect sales by month"),
				m.panel(SalesPanel, m.salesTable()),
			),
		)

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top,
		m.summaryView(),
		groupContent,
		activity,
	)

	m.Viewport.SetContent(
		lipgloss.JoinVertical(lipgloss.Top,
			m.headerView(),
			mainContent,
		),
	)
}

func (m Model) panel(name, content string) string {
	if reason, ok := m.unavailable[name]; ok {
		return m.Styles.MutedStyle.Render("unavailable: " + reason)
	}
	return content
}

func (m Model) headerView() string {
	if m.settings == nil || m.settings.CompanyName == "" {
		return "Dashboard"
	}

	return fmt.Sprintf("Welcome - %s!", m.settings.CompanyName)
}

func (m Model) summaryView() string {
	if m.stats == nil {
		return m.Styles.SummaryStyle.Render(m.panel(StatsPanel, "Loading stats..."))
	}

	s := m.stats
	var b strings.Builder

	fmt.Fprintf(&b, "Sales: %s\n", m.Styles.DebitStyle.Render(statement.FormatAmount(s.TotalSales)))
	fmt.Fprintf(&b, "Purchases: %s\n", m.Styles.CreditStyle.Render(statement.FormatAmount(s.TotalPurchases)))
	fmt.Fprintf(&b, "Receivables: %s\n", m.Styles.DebitStyle.Render(statement.FormatAmount(s.TotalReceivables)))
	fmt.Fprintf(&b, "Payables: %s\n", m.Styles.CreditStyle.Render(statement.FormatAmount(s.TotalPayables)))
	fmt.Fprintf(&b, "Cash: %s\n", m.signed(s.CashBalance))
	fmt.Fprintf(&b, "Bank: %s\n\n", m.signed(s.BankBalance))
	fmt.Fprintf(&b, "Customers: %d  Vendors: %d\n", s.TotalCustomers, s.TotalVendors)
	fmt.Fprintf(&b, "Trips: %d (%d active)", s.TotalTrips, s.ActiveTrips)

	return m.Styles.SummaryStyle.Render(b.String())
}

func (m Model) signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return m.Styles.CreditStyle.Render("-" + statement.FormatAmount(d))
	}
	return m.Styles.DebitStyle.Render(statement.FormatAmount(d))
}

func (m Model) tripTable() string {
	rows := make([]table.Row, 0, len(m.tripStats))
	for _, s := range m.tripStats {
		rows = append(rows, table.Row{
			s.Date,
			strconv.Itoa(s.Trips),
			s.Birds.StringFixed(0),
			statement.FormatAmount(s.Profit),
		})
	}

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Trips", Width: 6},
			{Title: "Birds", Width: 9},
			{Title: "Profit", Width: 14},
		}),
		table.WithRows(rows),
		table.WithHeight(min(len(rows), 7)+1),
	).View()
}

func (m Model) salesTable() string {
	rows := make([]table.Row, 0, len(m.sales))
	for _, s := range m.sales {
		rows = append(rows, table.Row{
			s.Period,
			strconv.Itoa(s.Count),
			s.Weight.StringFixed(2),
			statement.FormatAmount(s.Amount),
		})
	}

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Month", Width: 10},
			{Title: "Sales", Width: 6},
			{Title: "Weight", Width: 10},
			{Title: "Amount", Width: 14},
		}),
		table.WithRows(rows),
		table.WithHeight(min(len(rows), 6)+1),
	).View()
}
