package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates which side of an entry a line sits on.
type Side string

const (
	DebitSide  Side = "DEBIT"
	CreditSide Side = "CREDIT"
)

// SourceDocument references the paper/electronic document backing a line
// (invoice, receipt, bank slip...).
type SourceDocument struct {
	Number string    `json:"number"`
	Date   time.Time `json:"date"`
	Kind   string    `json:"kind"`
}

// ForeignCurrency carries the original-currency leg of a line. Amount times
// ExchangeRate, rounded to 2 decimal places, must equal the line amount.
type ForeignCurrency struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// JournalLine is one debit-or-credit amount against one account. It is a
// value object: immutable after construction, with all shape invariants
// enforced by NewJournalLine. An invalid line cannot be instantiated.
type JournalLine struct {
	AccountCode  string           `json:"accountCode"`
	Debit        decimal.Decimal  `json:"debit"`
	Credit       decimal.Decimal  `json:"credit"`
	Foreign      *ForeignCurrency `json:"foreign,omitempty"`
	SourceDoc    *SourceDocument  `json:"sourceDoc,omitempty"`
	CashFlowCode string           `json:"cashFlowCode,omitempty"` // cash-flow statement classification
	Memo         string           `json:"memo,omitempty"`
}

// LineOption configures optional metadata on a JournalLine.
type LineOption func(*JournalLine)

// WithForeignCurrency attaches the original-currency leg.
func WithForeignCurrency(amount decimal.Decimal, currencyCode string, rate decimal.Decimal) LineOption {
	return func(l *JournalLine) {
		l.Foreign = &ForeignCurrency{Amount: amount, CurrencyCode: currencyCode, ExchangeRate: rate}
	}
}

// WithSourceDocument attaches the backing document reference.
func WithSourceDocument(number string, date time.Time, kind string) LineOption {
	return func(l *JournalLine) {
		l.SourceDoc = &SourceDocument{Number: number, Date: date, Kind: kind}
	}
}

// WithCashFlowCode tags the line for cash-flow statement grouping.
func WithCashFlowCode(code string) LineOption {
	return func(l *JournalLine) { l.CashFlowCode = code }
}

// WithMemo attaches a free-text memo.
func WithMemo(memo string) LineOption {
	return func(l *JournalLine) { l.Memo = memo }
}

// NewJournalLine builds a line with exactly one positive side.
func NewJournalLine(accountCode string, debit, credit decimal.Decimal, opts ...LineOption) (JournalLine, error) {
	if debit.IsNegative() || credit.IsNegative() {
		return JournalLine{}, fmt.Errorf("%w: account %s debit=%s credit=%s", ErrInvalidAmount, accountCode, debit, credit)
	}
	if debit.IsPositive() && credit.IsPositive() {
		return JournalLine{}, fmt.Errorf("%w: account %s", ErrAmbiguousSide, accountCode)
	}
	if debit.IsZero() && credit.IsZero() {
		return JournalLine{}, fmt.Errorf("%w: account %s", ErrEmptyLine, accountCode)
	}

	line := JournalLine{AccountCode: accountCode, Debit: debit, Credit: credit}
	for _, opt := range opts {
		opt(&line)
	}

	if line.Foreign != nil {
		fc := line.Foreign
		if fc.CurrencyCode == "" || !fc.ExchangeRate.IsPositive() {
			return JournalLine{}, fmt.Errorf("%w: account %s: currency code and positive rate are required", ErrCurrencyMismatch, accountCode)
		}
		converted := fc.Amount.Mul(fc.ExchangeRate).Round(2)
		if !converted.Equal(line.Amount().Round(2)) {
			return JournalLine{}, fmt.Errorf("%w: account %s: %s %s at %s gives %s, line amount is %s",
				ErrCurrencyMismatch, accountCode, fc.Amount, fc.CurrencyCode, fc.ExchangeRate, converted, line.Amount())
		}
	}

	return line, nil
}

// Side returns which side the line's amount sits on.
func (l JournalLine) Side() Side {
	if l.Debit.IsPositive() {
		return DebitSide
	}
	return CreditSide
}

// Amount returns the line's single positive amount regardless of side.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}
