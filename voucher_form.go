package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/flockbooks/flockbooks/api"
	"github.com/flockbooks/flockbooks/voucher"
)

// voucherDraft is what the voucher form collects: a two-line voucher moving
// one amount from the credit ledger to the debit ledger.
type voucherDraft struct {
	Type         string
	Date         string
	DebitLedger  string
	CreditLedger string
	Amount       string
	Narration    string
}

func newVoucherDraft(now time.Time) *voucherDraft {
	return &voucherDraft{
		Type: string(voucher.Journal),
		Date: now.Format(api.DateLayout),
	}
}

// input converts the draft, looking up account names by ledger id.
func (d voucherDraft) input(ledgers []api.Ledger, loc *time.Location) (voucher.Input, error) {
	in := voucher.Input{
		Type:      voucher.Type(d.Type),
		Narration: strings.TrimSpace(d.Narration),
	}

	date, err := time.ParseInLocation(api.DateLayout, strings.TrimSpace(d.Date), loc)
	if err != nil {
		return in, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", d.Date)
	}
	in.Date = date

	amount, err := decimal.NewFromString(strings.TrimSpace(d.Amount))
	if err != nil {
		return in, fmt.Errorf("invalid amount %q", d.Amount)
	}

	names := make(map[string]string, len(ledgers))
	for _, l := range ledgers {
		names[l.ID] = l.Name
	}

	in.Lines = []voucher.Line{
		{LedgerID: d.DebitLedger, AccountName: names[d.DebitLedger], Debit: amount},
		{LedgerID: d.CreditLedger, AccountName: names[d.CreditLedger], Credit: amount},
	}

	return in, nil
}

func validateVoucherDate(s string) error {
	if _, err := time.Parse(api.DateLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	return nil
}

func validateVoucherAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("amount must be a number")
	}
	if !d.IsPositive() {
		return errors.New("amount must be more than zero")
	}
	return nil
}

func newVoucherForm(d *voucherDraft, ledgers []api.Ledger) *huh.Form {
	typeOptions := make([]huh.Option[string], len(voucher.Types))
	for i, t := range voucher.Types {
		typeOptions[i] = huh.NewOption(string(t), string(t))
	}

	ledgerOptions := make([]huh.Option[string], len(ledgers))
	for i, l := range ledgers {
		label := l.Name
		if l.GroupName != "" {
			label += " (" + l.GroupName + ")"
		}
		ledgerOptions[i] = huh.NewOption(label, l.ID)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Voucher type").
				Options(typeOptions...).
				Value(&d.Type),
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Validate(validateVoucherDate).
				Value(&d.Date),
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Validate(validateVoucherAmount).
				Value(&d.Amount),
			huh.NewText().
				Key("narration").
				Title("Narration").
				CharLimit(500).
				Value(&d.Narration),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("debit").
				Title("Debit ledger").
				Options(ledgerOptions...).
				Filtering(true).
				Height(10).
				Value(&d.DebitLedger),
			huh.NewSelect[string]().
				Key("credit").
				Title("Credit ledger").
				Options(ledgerOptions...).
				Filtering(true).
				Height(10).
				Validate(func(s string) error {
					if s == d.DebitLedger {
						return errors.New("debit and credit ledgers must differ")
					}
					return nil
				}).
				Value(&d.CreditLedger),
		),
	).WithShowHelp(true)
}

// openVoucherForm shows the form, loading the ledgers first when needed.
func (m *model) openVoucherForm() tea.Cmd {
	if len(m.allLedgers) == 0 {
		ctx, gen := m.scope.child()
		m.sessionState = loading
		m.loadingState.reset(ledgersKey)
		return tea.Batch(m.getLedgersIn(ctx, gen, ""), m.loadingSpinner.Tick)
	}

	if m.voucherDraft == nil {
		m.voucherDraft = newVoucherDraft(m.currentPeriod)
	}

	m.voucherForm = newVoucherForm(m.voucherDraft, m.allLedgers)
	if m.width > 0 {
		m.voucherForm = m.voucherForm.WithWidth(m.width - 2*standardMargin).WithHeight(m.height - 5)
	}
	m.sessionState = voucherFormState

	return m.voucherForm.Init()
}

func updateVoucherForm(msg tea.Msg, m model) (tea.Model, tea.Cmd) {
	if m.voucherForm == nil {
		return m, nil
	}

	form, formCmd := m.voucherForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.voucherForm = f
	} else {
		log.Debug("voucherForm did not return a form, returning nil")
		return m, nil
	}

	if m.voucherForm.State != huh.StateCompleted {
		return m, formCmd
	}

	in, err := m.voucherDraft.input(m.allLedgers, m.currentPeriod.Location())
	m.voucherForm = nil
	m.sessionState = vouchersState
	if err != nil {
		m.statusMsg = "Voucher not posted: " + err.Error()
		return m, nil
	}

	if err := voucher.Validate(in); err != nil {
		m.statusMsg = "Voucher not posted: " + err.Error()
		return m, nil
	}

	m.statusMsg = "Posting voucher..."
	m.voucherDraft = nil

	cmd := m.createVoucher(in)
	return m, cmd
}

func voucherFormView(m model) string {
	if m.voucherForm == nil {
		return ""
	}
	return m.voucherForm.View()
}
