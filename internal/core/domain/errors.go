package domain

import "errors"

// Construction and posting failures form a closed set so callers can branch
// with errors.Is instead of matching message text.
var (
	// Line shape errors.
	ErrInvalidAmount    = errors.New("line amount must not be negative")
	ErrAmbiguousSide    = errors.New("line cannot carry both a debit and a credit amount")
	ErrEmptyLine        = errors.New("line must carry either a debit or a credit amount")
	ErrCurrencyMismatch = errors.New("foreign currency amount times rate does not equal the line amount")

	// Entry shape errors.
	ErrInsufficientLines = errors.New("entry must have at least two lines")
	ErrEmptyDocumentNo   = errors.New("entry document number must not be empty")
	ErrInvalidStatus     = errors.New("entry status is not one of DRAFT, POSTED, LOCKED")
	ErrUnbalanced        = errors.New("entry debit and credit totals do not balance")

	// Reference errors.
	ErrUnknownAccount = errors.New("account code is not present in the chart of accounts")
	ErrUnknownParent  = errors.New("account parent code is not present in the chart of accounts")
)
