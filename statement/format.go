package statement

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount prints the absolute value with two decimals and Indian digit
// grouping.
func FormatAmount(d decimal.Decimal) string {
	return FormatNumber(d.Abs(), 2)
}

// FormatNumber prints d rounded to places decimals with Indian digit
// grouping. Only the integer part goes through the locale printer, so the
// decimals are exact.
func FormatNumber(d decimal.Decimal, places int) string {
	d = d.Round(int32(places))
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(int32(places)), ".")

	grouped := whole
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		grouped = printer.Sprint(number.Decimal(n))
	}

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(grouped)
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Suffix returns "Dr" or "Cr". An explicit balance type wins; otherwise a
// negative balance is a credit.
func Suffix(balance decimal.Decimal, balanceType string) string {
	switch strings.ToLower(strings.TrimSpace(balanceType)) {
	case "debit", "dr":
		return "Dr"
	case "credit", "cr":
		return "Cr"
	}
	if balance.IsNegative() {
		return "Cr"
	}
	return "Dr"
}

// FormatBalance renders a balance as "1,234.50 Dr".
func FormatBalance(balance decimal.Decimal, balanceType string) string {
	return FormatAmount(balance) + " " + Suffix(balance, balanceType)
}
