package statement

import (
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleStatement() ProfitLoss {
	return ProfitLoss{
		Income: []Node{{
			ID: "income", Name: "Income", Balance: dec("-5000"), BalanceType: "credit",
			Children: []Node{{
				ID: "sales", Name: "Sales", Balance: dec("-5000"), BalanceType: "credit",
				Children: []Node{
					{ID: "broilers", Name: "Broilers", Balance: dec("-5000"), BalanceType: "credit"},
				},
			}},
		}},
		Expenses: []Node{{
			ID: "expenses", Name: "Expenses", Balance: dec("1200"), BalanceType: "debit",
			Children: []Node{
				{ID: "rent", Name: "Rent", Balance: dec("1200"), BalanceType: "debit"},
			},
		}},
		TotalIncome:   dec("5000"),
		TotalExpenses: dec("1200"),
		NetProfit:     dec("3800"),
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-1234.5", "1,234.50"},
		{"1234.5", "1,234.50"},
		{"0", "0.00"},
		{"99.999", "100.00"},
		{"12.3", "12.30"},
		{"12345678.9", "1,23,45,678.90"},
		{"99999999999999.99", "9,99,99,99,99,99,999.99"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			be.Equal(t, tt.want, FormatAmount(dec(tt.in)))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in     string
		places int
		want   string
	}{
		{"-1234.5", 2, "-1,234.50"},
		{"-0.001", 2, "0.00"},
		{"2.1507", 3, "2.151"},
		{"1500", 0, "1,500"},
		{"123456789012.345", 3, "1,23,45,67,89,012.345"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			be.Equal(t, tt.want, FormatNumber(dec(tt.in), tt.places))
		})
	}
}

func TestSuffix(t *testing.T) {
	tests := []struct {
		name        string
		balance     string
		balanceType string
		want        string
	}{
		{"type wins over sign", "-1234.5", "debit", "Dr"},
		{"credit type", "1234.5", "credit", "Cr"},
		{"short form", "10", "CR", "Cr"},
		{"negative without type", "-1", "", "Cr"},
		{"positive without type", "1", "", "Dr"},
		{"zero without type", "0", "", "Dr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.want, Suffix(dec(tt.balance), tt.balanceType))
		})
	}

	be.Equal(t, "1,234.50 Dr", FormatBalance(dec("-1234.5"), "debit"))
}

func TestRenderDepthCutoff(t *testing.T) {
	lines := NewRenderer().Render(sampleStatement().Roots())

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID)
		be.True(t, l.Level <= MaxLevel)
	}
	be.AllEqual(t, []string{"income", "sales", "expenses", "rent"}, ids)
	be.True(t, lines[0].Root())
	be.False(t, lines[1].Root())
	be.Equal(t, "5,000.00 Cr", lines[0].Amount)
}

func TestRenderMemo(t *testing.T) {
	r := NewRenderer()
	p := sampleStatement()

	first := r.Render(p.Roots())
	hits, misses := r.Stats()
	be.Equal(t, 0, hits)
	be.Equal(t, 4, misses)

	second := r.Render(sampleStatement().Roots())
	hits, misses = r.Stats()
	be.Equal(t, 2, hits)
	be.Equal(t, 4, misses)
	be.AllEqual(t, first, second)

	changed := sampleStatement()
	changed.Expenses[0].Children[0].Balance = dec("1300")
	changed.Expenses[0].Balance = dec("1300")
	lines := r.Render(changed.Roots())
	hits, misses = r.Stats()
	be.Equal(t, 3, hits)
	be.Equal(t, 6, misses)
	be.Equal(t, "1,300.00 Dr", lines[3].Amount)
}

func TestRenderMemoChildrenCompared(t *testing.T) {
	r := NewRenderer()
	r.Render(sampleStatement().Roots())

	// same root balance, different child name
	changed := sampleStatement()
	changed.Expenses[0].Children[0].Name = "Shed rent"
	lines := r.Render(changed.Roots())
	be.Equal(t, "Shed rent", lines[3].Name)
}

func TestEqual(t *testing.T) {
	a := sampleStatement().Income[0]
	b := sampleStatement().Income[0]
	be.True(t, Equal(a, b))

	b.Children[0].Children[0].Balance = dec("-5000.00")
	be.True(t, Equal(a, b))

	b.Children[0].Children[0].BalanceType = "debit"
	be.False(t, Equal(a, b))

	c := sampleStatement().Income[0]
	c.Children = nil
	be.False(t, Equal(a, c))
}

func TestModelDrillDown(t *testing.T) {
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	m := New()
	m.SetRange(from, to)
	m.SetStatement(sampleStatement())

	// cursor starts on the Income header
	be.True(t, m.Select() == nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	line, ok := m.Selected()
	be.True(t, ok)
	be.Equal(t, "sales", line.ID)

	cmd := m.Select()
	be.True(t, cmd != nil)
	dd, ok := cmd().(DrillDown)
	be.True(t, ok)
	be.Equal(t, "sales", dd.GroupID)
	be.True(t, dd.From.Equal(from))
	be.True(t, dd.To.Equal(to))

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	be.True(t, cmd != nil)
	_, ok = cmd().(DrillDown)
	be.True(t, ok)
}

func TestModelViewColumnsAlign(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	m := New()
	m.SetStatement(sampleStatement())

	for _, l := range m.lines {
		plain := m.renderLine(l, false)
		selected := m.renderLine(l, true)
		be.In(t, "\x1b[", selected)
		be.Equal(t, nameWidth+1+amountWidth, lipgloss.Width(plain))
		be.Equal(t, nameWidth+1+amountWidth, lipgloss.Width(selected))
		be.Equal(t,
			strings.Index(ansi.Strip(plain), l.Amount),
			strings.Index(ansi.Strip(selected), l.Amount))
	}
}

func TestModelEmptyView(t *testing.T) {
	m := New()
	be.Equal(t, "No profit & loss data for this period", m.View())
	be.True(t, m.Select() == nil)
}
