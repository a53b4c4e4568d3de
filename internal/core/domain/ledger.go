package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Balance is the accumulated debit/credit pair of one account.
type Balance struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// Net applies the normal-side convention: debit-increase accounts report
// debit minus credit, credit-increase accounts the opposite.
func (b Balance) Net(side NormalSide) decimal.Decimal {
	if side == NormalDebit {
		return b.Debit.Sub(b.Credit)
	}
	return b.Credit.Sub(b.Debit)
}

// Ledger is the balance engine: a pure accumulator keyed by account code,
// fed exclusively through Post. It holds no period or persistence concerns;
// callers rebuild it by replaying posted entries for whatever date range a
// query needs.
type Ledger struct {
	chart    *Chart
	balances map[string]Balance
	log      []*JournalEntry // append-only record of posted entries
}

// NewLedger creates an empty ledger over the given chart.
func NewLedger(chart *Chart) *Ledger {
	return &Ledger{
		chart:    chart,
		balances: make(map[string]Balance),
	}
}

// Replay posts every entry in order, stopping at the first failure.
func (l *Ledger) Replay(entries []*JournalEntry) error {
	for _, e := range entries {
		if err := l.Post(e); err != nil {
			return err
		}
	}
	return nil
}

// Post validates the entry against the chart and accumulates its lines. It is
// the only mutating operation: either every line is applied or none is, so a
// failed post leaves the ledger untouched. Posting the same entry twice
// double-counts; preventing that is the journaling layer's job via the
// entry's own status.
func (l *Ledger) Post(entry *JournalEntry) error {
	if entry == nil {
		return fmt.Errorf("nil entry")
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	for _, line := range entry.Lines {
		if !l.chart.Contains(line.AccountCode) {
			return fmt.Errorf("%w: %s (entry %s)", ErrUnknownAccount, line.AccountCode, entry.DocumentNo)
		}
	}

	for _, line := range entry.Lines {
		bal := l.balances[line.AccountCode]
		bal.Debit = bal.Debit.Add(line.Debit)
		bal.Credit = bal.Credit.Add(line.Credit)
		l.balances[line.AccountCode] = bal
	}
	l.log = append(l.log, entry)
	return nil
}

// Balance returns the accumulated totals for code. Unknown or untouched codes
// yield zero totals; reporting leans on this default.
func (l *Ledger) Balance(code string) Balance {
	return l.balances[code]
}

// NetBalance returns the signed net balance for code per the account's
// normal side.
func (l *Ledger) NetBalance(code string) (decimal.Decimal, error) {
	acc, err := l.chart.Get(code)
	if err != nil {
		return decimal.Zero, err
	}
	return l.balances[code].Net(acc.NormalSide), nil
}

// TrialBalance returns a snapshot of every touched account's totals.
func (l *Ledger) TrialBalance() map[string]Balance {
	out := make(map[string]Balance, len(l.balances))
	for code, bal := range l.balances {
		out[code] = bal
	}
	return out
}

// Totals returns the grand debit and credit totals across all accounts.
// For a ledger fed only balanced entries the two are always equal.
func (l *Ledger) Totals() (debit, credit decimal.Decimal) {
	for _, bal := range l.balances {
		debit = debit.Add(bal.Debit)
		credit = credit.Add(bal.Credit)
	}
	return debit.Round(2), credit.Round(2)
}

// Entries returns the posted entry log in posting order.
func (l *Ledger) Entries() []*JournalEntry {
	return l.log
}

// Chart returns the chart the ledger was built over.
func (l *Ledger) Chart() *Chart {
	return l.chart
}
