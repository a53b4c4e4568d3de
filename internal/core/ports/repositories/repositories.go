package repositories

import (
	"context"
	"time"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for chart accounts.
// The chart is seeded once at startup and read-only afterwards.
type AccountRepositoryFacade interface {
	// SaveAccounts upserts the full chart; repeat seeding is idempotent.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// EntryRepositoryFacade defines persistence operations for journal entries.
// Saving an entry persists its lines atomically.
type EntryRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindEntryByDocumentNo(ctx context.Context, documentNo string) (*domain.JournalEntry, error)
	// ListEntriesByDateRange returns entries dated in [from, to], optionally
	// filtered by status, ordered by entry date then creation time. The period
	// gate uses the Draft filter; balance replay uses the Posted filter.
	ListEntriesByDateRange(ctx context.Context, from, to time.Time, status *domain.EntryStatus) ([]domain.JournalEntry, error)
	// UpdateEntry replaces the entry header and its lines. Callers guarantee
	// the entry is still in Draft.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error
	DeleteEntry(ctx context.Context, entryID string) error
}

// PeriodRepositoryFacade defines persistence operations for accounting periods.
type PeriodRepositoryFacade interface {
	SavePeriod(ctx context.Context, period domain.Period) error
	FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)
	// FindPeriodByDate returns the period whose range covers the given date.
	FindPeriodByDate(ctx context.Context, date time.Time) (*domain.Period, error)
	ListPeriods(ctx context.Context) ([]domain.Period, error)
	UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, note string, updatedBy string, updatedAt time.Time) error
}

// RepositoryProvider holds all repository interfaces needed by services,
// keeping service-container construction tidy.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	EntryRepo   EntryRepositoryFacade
	PeriodRepo  PeriodRepositoryFacade
}
