package services

import (
	"context"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

// ClosingSvcFacade performs the year-end close.
type ClosingSvcFacade interface {
	// CloseYear nets every revenue- and expense-category balance of the year
	// into retained earnings through ordinary journal entries. No 9xx
	// clearing account is involved.
	CloseYear(ctx context.Context, year int, userID string) (*domain.ClosingResult, error)
}
