package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql repositories behind their ports.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		EntryRepo:   newPgxEntryRepository(dbPool),
		PeriodRepo:  newPgxPeriodRepository(dbPool),
	}
}
