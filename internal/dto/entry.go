package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

// CreateLineRequest is one line of an entry payload. Amounts arrive as exact
// decimal strings; shopspring/decimal handles the JSON conversion.
type CreateLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required,acctcode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`

	// Optional foreign-currency leg: all three must be present together.
	ForeignAmount   *decimal.Decimal `json:"foreignAmount,omitempty"`
	ForeignCurrency *string          `json:"foreignCurrency,omitempty"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty"`

	// Optional source document reference.
	SourceDocNo   *string    `json:"sourceDocNo,omitempty"`
	SourceDocDate *time.Time `json:"sourceDocDate,omitempty"`
	SourceDocKind *string    `json:"sourceDocKind,omitempty"`

	CashFlowCode string `json:"cashFlowCode,omitempty"`
	Memo         string `json:"memo,omitempty"`
}

// ToDomainLine builds the validated domain line from the request.
func (r CreateLineRequest) ToDomainLine() (domain.JournalLine, error) {
	var opts []domain.LineOption
	if r.ForeignAmount != nil || r.ForeignCurrency != nil || r.ExchangeRate != nil {
		var (
			amount decimal.Decimal
			code   string
			rate   decimal.Decimal
		)
		if r.ForeignAmount != nil {
			amount = *r.ForeignAmount
		}
		if r.ForeignCurrency != nil {
			code = *r.ForeignCurrency
		}
		if r.ExchangeRate != nil {
			rate = *r.ExchangeRate
		}
		opts = append(opts, domain.WithForeignCurrency(amount, code, rate))
	}
	if r.SourceDocNo != nil {
		var docDate time.Time
		if r.SourceDocDate != nil {
			docDate = *r.SourceDocDate
		}
		kind := ""
		if r.SourceDocKind != nil {
			kind = *r.SourceDocKind
		}
		opts = append(opts, domain.WithSourceDocument(*r.SourceDocNo, docDate, kind))
	}
	if r.CashFlowCode != "" {
		opts = append(opts, domain.WithCashFlowCode(r.CashFlowCode))
	}
	if r.Memo != "" {
		opts = append(opts, domain.WithMemo(r.Memo))
	}
	return domain.NewJournalLine(r.AccountCode, r.Debit, r.Credit, opts...)
}

// CreateEntryRequest is the payload for creating a journal entry (in Draft).
type CreateEntryRequest struct {
	Date        time.Time           `json:"date" binding:"required"`
	DocumentNo  string              `json:"documentNo" binding:"required"`
	Description string              `json:"description"`
	Lines       []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest carries a partial update for a Draft entry. Nil fields
// are left unchanged; a non-nil Lines slice replaces all lines.
type UpdateEntryRequest struct {
	Date        *time.Time          `json:"date,omitempty"`
	Description *string             `json:"description,omitempty"`
	Lines       []CreateLineRequest `json:"lines,omitempty" binding:"omitempty,min=2,dive"`
}

// ListEntriesParams filters the entry listing.
type ListEntriesParams struct {
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Status *string    `form:"status"`
}

// LineResponse mirrors a domain line for API output.
type LineResponse struct {
	AccountCode  string          `json:"accountCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CashFlowCode string          `json:"cashFlowCode,omitempty"`
	Memo         string          `json:"memo,omitempty"`
}

// EntryResponse is the API shape of a journal entry.
type EntryResponse struct {
	EntryID     string          `json:"entryID"`
	Date        time.Time       `json:"date"`
	DocumentNo  string          `json:"documentNo"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Lines       []LineResponse  `json:"lines"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToEntryResponse converts a domain entry to its API shape.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LineResponse{
			AccountCode:  l.AccountCode,
			Debit:        l.Debit,
			Credit:       l.Credit,
			CashFlowCode: l.CashFlowCode,
			Memo:         l.Memo,
		}
	}
	return EntryResponse{
		EntryID:     e.EntryID,
		Date:        e.EntryDate,
		DocumentNo:  e.DocumentNo,
		Description: e.Description,
		Status:      string(e.Status),
		TotalDebit:  e.TotalDebit(),
		TotalCredit: e.TotalCredit(),
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}
