package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
)

// chartService exposes the chart of accounts loaded at startup. The chart is
// immutable for the life of the process.
type chartService struct {
	BaseService
	chart       *domain.Chart
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewChartService creates the chart service over an already-validated chart.
func NewChartService(chart *domain.Chart, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ChartSvcFacade {
	return &chartService{chart: chart, accountRepo: accountRepo}
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

func (s *chartService) Chart() *domain.Chart {
	return s.chart
}

func (s *chartService) GetAccount(ctx context.Context, code string) (domain.Account, error) {
	return s.chart.Get(code)
}

func (s *chartService) ListAccounts(ctx context.Context) []domain.Account {
	return s.chart.Accounts()
}

// SeedChart upserts every chart account into the store. Run once at startup;
// repeating it is harmless.
func (s *chartService) SeedChart(ctx context.Context) error {
	if err := s.accountRepo.SaveAccounts(ctx, s.chart.Accounts()); err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts")
		return fmt.Errorf("failed to seed chart of accounts: %w", err)
	}
	s.LogInfo(ctx, "Chart of accounts seeded", slog.Int("accounts", s.chart.Len()))
	return nil
}
