// Package voucher validates vouchers before they are posted to the backend.
package voucher

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Currency is the currency all vouchers are kept in.
const Currency = money.INR

// Type is the voucher classification.
type Type string

const (
	Sales    Type = "SALES"
	Purchase Type = "PURCHASE"
	Payment  Type = "PAYMENT"
	Receipt  Type = "RECEIPT"
	Journal  Type = "JOURNAL"
	Contra   Type = "CONTRA"
)

// Types lists the voucher types in menu order.
var Types = []Type{Journal, Payment, Receipt, Sales, Purchase, Contra}

// Line is one debit or credit leg.
type Line struct {
	LedgerID    string          `json:"ledgerId" validate:"required"`
	AccountName string          `json:"accountName" validate:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Input is the body of POST /voucher.
type Input struct {
	Type      Type      `json:"voucherType" validate:"required,oneof=SALES PURCHASE PAYMENT RECEIPT JOURNAL CONTRA"`
	Date      time.Time `json:"date" validate:"required"`
	Narration string    `json:"narration,omitempty" validate:"max=500"`
	Lines     []Line    `json:"entries" validate:"min=2,dive"`
}

// ValidationError describes one problem with an Input.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors is every problem found in an Input.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ErrUnbalanced is wrapped by the validation error reported when debits and
// credits differ.
var ErrUnbalanced = errors.New("debits do not equal credits")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the input. It returns nil or a ValidationErrors.
func Validate(in Input) error {
	var errs ValidationErrors

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating voucher: %w", err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{Field: fieldPath(fe), Message: describe(fe)})
		}
	}

	for i, l := range in.Lines {
		field := fmt.Sprintf("entries[%d]", i)
		switch {
		case l.Debit.IsNegative() || l.Credit.IsNegative():
			errs = append(errs, ValidationError{Field: field, Message: "amounts cannot be negative"})
		case l.Debit.IsPositive() && l.Credit.IsPositive():
			errs = append(errs, ValidationError{Field: field, Message: "a line is either a debit or a credit, not both"})
		case l.Debit.IsZero() && l.Credit.IsZero():
			errs = append(errs, ValidationError{Field: field, Message: "amount is required"})
		}
	}

	if len(in.Lines) > 0 {
		debit, credit, err := Totals(in.Lines)
		if err != nil {
			return err
		}
		if ok, _ := debit.Equals(credit); !ok {
			errs = append(errs, ValidationError{
				Message: fmt.Sprintf("%s: debit %s, credit %s", ErrUnbalanced, debit.Display(), credit.Display()),
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Totals sums the debit and credit sides in paise.
func Totals(lines []Line) (debit, credit *money.Money, err error) {
	debit = money.New(0, Currency)
	credit = money.New(0, Currency)
	for _, l := range lines {
		if debit, err = debit.Add(toMoney(l.Debit)); err != nil {
			return nil, nil, fmt.Errorf("summing debits: %w", err)
		}
		if credit, err = credit.Add(toMoney(l.Credit)); err != nil {
			return nil, nil, fmt.Errorf("summing credits: %w", err)
		}
	}
	return debit, credit, nil
}

func toMoney(d decimal.Decimal) *money.Money {
	return money.New(d.Shift(2).Round(0).IntPart(), Currency)
}

// IsUnbalanced reports whether err carries an unbalanced-voucher problem.
func IsUnbalanced(err error) bool {
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		return false
	}
	for _, e := range errs {
		if strings.HasPrefix(e.Message, ErrUnbalanced.Error()) {
			return true
		}
	}
	return false
}

// fieldPath drops the struct name from the namespace: Input.entries[0].ledgerId
// becomes entries[0].ledgerId.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("needs at least %s lines", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "is invalid"
}
