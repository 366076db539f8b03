package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Column widths of a rendered line.
const (
	nameWidth   = 40
	amountWidth = 20
)

type Styles struct {
	Header   lipgloss.Style
	Child    lipgloss.Style
	Selected lipgloss.Style
	Debit    lipgloss.Style
	Credit   lipgloss.Style
	Summary  lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true),
		Child:    lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd644")),
		Debit:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		Credit:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Summary:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open ledgers")),
}

// Model is the profit & loss view.
type Model struct {
	Styles   Styles
	renderer *Renderer
	data     ProfitLoss
	lines    []Line
	cursor   int
	from     time.Time
	to       time.Time
	width    int
}

func New() Model {
	return Model{
		Styles:   defaultStyles(),
		renderer: NewRenderer(),
	}
}

// SetStatement replaces the statement. Unchanged groups keep their rendered
// lines.
func (m *Model) SetStatement(p ProfitLoss) {
	m.data = p
	m.lines = m.renderer.Render(p.Roots())
	if m.cursor >= len(m.lines) {
		m.cursor = max(len(m.lines)-1, 0)
	}
}

// SetRange sets the date range carried by drill-down requests.
func (m *Model) SetRange(from, to time.Time) {
	m.from = from
	m.to = to
}

func (m *Model) SetSize(width, _ int) {
	m.width = width
}

// Lines returns the rendered lines.
func (m Model) Lines() []Line {
	return m.lines
}

// RendererStats returns how many groups were reused and rendered so far.
func (m Model) RendererStats() (hits, misses int) {
	return m.renderer.Stats()
}

// Selected returns the line under the cursor.
func (m Model) Selected() (Line, bool) {
	if len(m.lines) == 0 {
		return Line{}, false
	}
	return m.lines[m.cursor], true
}

// Select drills into the line under the cursor. Root lines are headers and
// produce no command.
func (m Model) Select() tea.Cmd {
	line, ok := m.Selected()
	if !ok || line.Root() {
		return nil
	}

	dd := DrillDown{GroupID: line.ID, From: m.from, To: m.to}
	return func() tea.Msg {
		return dd
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(m.lines)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Select):
		return m, m.Select()
	}

	return m, nil
}

func (m Model) View() string {
	if len(m.lines) == 0 {
		return "No profit & loss data for this period"
	}

	var b strings.Builder
	for i, l := range m.lines {
		b.WriteString(m.renderLine(l, i == m.cursor))
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("Income: %s   Expenses: %s   Net profit: %s",
		FormatAmount(m.data.TotalIncome),
		FormatAmount(m.data.TotalExpenses),
		netProfit(m.data),
	)

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), m.Styles.Summary.Render(summary))
}

// renderLine lays out a name and an amount column. Widths are measured on
// the styled text so colour codes do not shift the columns.
func (m Model) renderLine(l Line, selected bool) string {
	name := l.Name
	style := m.Styles.Child
	if l.Root() {
		style = m.Styles.Header
	}
	if selected {
		style = style.Inherit(m.Styles.Selected)
		name = "> " + name
	}

	amount := m.Styles.Debit.Render(l.Amount)
	if strings.HasSuffix(l.Amount, "Cr") {
		amount = m.Styles.Credit.Render(l.Amount)
	}

	return lipgloss.PlaceHorizontal(nameWidth, lipgloss.Left, style.Render(name)) +
		" " + lipgloss.PlaceHorizontal(amountWidth, lipgloss.Right, amount)
}

func netProfit(p ProfitLoss) string {
	if p.NetProfit.IsNegative() {
		return "-" + FormatAmount(p.NetProfit)
	}
	return FormatAmount(p.NetProfit)
}
