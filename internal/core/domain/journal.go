package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Locked EntryStatus = "LOCKED"
)

// IsValid reports whether s is one of the three entry statuses.
func (s EntryStatus) IsValid() bool {
	return s == Draft || s == Posted || s == Locked
}

// JournalEntry is a single balanced double-entry event. Structural invariants
// (at least two lines, a document number, balanced rounded totals, a valid
// status) hold from construction on; there is no build-then-validate path.
type JournalEntry struct {
	EntryID     string        `json:"entryID"` // assigned on persistence (UUID)
	EntryDate   time.Time     `json:"entryDate"`
	DocumentNo  string        `json:"documentNo"` // unique across all entries
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	Status      EntryStatus   `json:"status"`
	AuditFields
}

// NewJournalEntry builds a validated entry in the given status.
func NewJournalEntry(date time.Time, documentNo, description string, lines []JournalLine, status EntryStatus) (*JournalEntry, error) {
	e := &JournalEntry{
		EntryDate:   date,
		DocumentNo:  strings.TrimSpace(documentNo),
		Description: description,
		Lines:       lines,
		Status:      status,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate re-checks the structural invariants. It is run at construction and
// again on every status transition.
func (e *JournalEntry) Validate() error {
	if len(e.Lines) < 2 {
		return fmt.Errorf("%w: got %d", ErrInsufficientLines, len(e.Lines))
	}
	if strings.TrimSpace(e.DocumentNo) == "" {
		return ErrEmptyDocumentNo
	}
	if !e.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status)
	}

	debits := e.TotalDebit()
	credits := e.TotalCredit()
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalanced, debits, credits)
	}
	return nil
}

// TotalDebit returns the debit total rounded to 2 decimal places.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.Debit)
	}
	return sum.Round(2)
}

// TotalCredit returns the credit total rounded to 2 decimal places.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.Credit)
	}
	return sum.Round(2)
}

// AccountCodes returns the distinct account codes referenced by the lines.
func (e *JournalEntry) AccountCodes() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	codes := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountCode]; ok {
			continue
		}
		seen[l.AccountCode] = struct{}{}
		codes = append(codes, l.AccountCode)
	}
	return codes
}
