package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
)

// ledgerEpoch predates any entry the system can hold; open-start range
// queries begin here.
var ledgerEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ledgerService is the balance engine. It rebuilds a domain.Ledger per query
// by replaying Posted entries fetched from the store, so every answer is a
// consistent point-in-time snapshot and unposted entries simply vanish from
// the next replay. O(entries) per query is an accepted tradeoff: reports are
// generated on demand, not on the hot path.
type ledgerService struct {
	BaseService
	chart     *domain.Chart
	entryRepo portsrepo.EntryRepositoryFacade
}

// NewLedgerService creates the balance engine service.
func NewLedgerService(chart *domain.Chart, entryRepo portsrepo.EntryRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{chart: chart, entryRepo: entryRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// BuildLedger replays all Posted entries dated in [from, to] into a fresh ledger.
func (s *ledgerService) BuildLedger(ctx context.Context, from, to time.Time) (*domain.Ledger, error) {
	status := domain.Posted
	entries, err := s.entryRepo.ListEntriesByDateRange(ctx, from, to, &status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list posted entries for replay")
		return nil, fmt.Errorf("failed to list posted entries: %w", err)
	}

	ledger := domain.NewLedger(s.chart)
	for i := range entries {
		if err := ledger.Post(&entries[i]); err != nil {
			// A stored posted entry that fails replay is a data integrity
			// problem, not a caller mistake.
			s.LogError(ctx, err, "Stored entry failed ledger replay", "document_no", entries[i].DocumentNo)
			return nil, fmt.Errorf("entry %s failed replay: %w", entries[i].DocumentNo, err)
		}
	}
	return ledger, nil
}

func (s *ledgerService) BalanceAsOf(ctx context.Context, code string, asOf time.Time) (domain.Balance, error) {
	ledger, err := s.BuildLedger(ctx, ledgerEpoch, asOf)
	if err != nil {
		return domain.Balance{}, err
	}
	return ledger.Balance(code), nil
}

func (s *ledgerService) NetBalanceAsOf(ctx context.Context, code string, asOf time.Time) (decimal.Decimal, error) {
	ledger, err := s.BuildLedger(ctx, ledgerEpoch, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.NetBalance(code)
}

func (s *ledgerService) Movement(ctx context.Context, code string, from, to time.Time) (domain.Balance, error) {
	ledger, err := s.BuildLedger(ctx, from, to)
	if err != nil {
		return domain.Balance{}, err
	}
	return ledger.Balance(code), nil
}
