package services

import (
	"context"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

// ChartSvcFacade exposes the loaded chart of accounts.
type ChartSvcFacade interface {
	Chart() *domain.Chart
	GetAccount(ctx context.Context, code string) (domain.Account, error)
	ListAccounts(ctx context.Context) []domain.Account
	// SeedChart persists the loaded chart into the store (idempotent).
	SeedChart(ctx context.Context) error
}
