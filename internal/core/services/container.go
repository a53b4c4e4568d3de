package services

import (
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/platform/config"
)

// NewServiceProvider creates the service provider with properly initialized dependencies
func NewServiceProvider(cfg *config.Config, chart *domain.Chart, repos portsrepo.RepositoryProvider) *portssvc.ServiceProvider {
	provider := &portssvc.ServiceProvider{}

	// Period service first since journal mutation is gated on it
	provider.PeriodSvc = NewPeriodService(repos.PeriodRepo, repos.EntryRepo)

	provider.ChartSvc = NewChartService(chart, repos.AccountRepo)
	provider.JournalSvc = NewJournalService(chart, repos.EntryRepo, provider.PeriodSvc)
	provider.LedgerSvc = NewLedgerService(chart, repos.EntryRepo)
	provider.ReportingSvc = NewReportingService(chart, provider.LedgerSvc)

	// Closing posts through the journal service so the period gate applies
	provider.ClosingSvc = NewClosingService(chart, provider.LedgerSvc, provider.JournalSvc,
		WithRetainedEarningsCode(cfg.RetainedEarningsAccount))

	return provider
}
