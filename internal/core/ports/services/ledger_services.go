package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

// LedgerSvcFacade is the balance engine surface. Balances are derived by
// replaying posted entries from the store into a fresh domain.Ledger, which
// gives every query a consistent point-in-time snapshot.
type LedgerSvcFacade interface {
	// BuildLedger replays all Posted entries dated in [from, to].
	BuildLedger(ctx context.Context, from, to time.Time) (*domain.Ledger, error)
	// BalanceAsOf returns the accumulated totals for code over (-inf, asOf].
	BalanceAsOf(ctx context.Context, code string, asOf time.Time) (domain.Balance, error)
	// NetBalanceAsOf applies the account's normal-side convention.
	NetBalanceAsOf(ctx context.Context, code string, asOf time.Time) (decimal.Decimal, error)
	// Movement returns the totals accumulated strictly within [from, to].
	Movement(ctx context.Context, code string, from, to time.Time) (domain.Balance, error)
}
