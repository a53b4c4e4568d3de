package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soketoanvn/vn_ledger_app/internal/apperrors"
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
)

// PgxAccountRepository persists the chart of accounts. The chart is seeded at
// startup and read-only afterwards, so there is no update or delete path.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `code, name, category, normal_side, level, parent_code, is_aggregate, created_at, created_by, last_updated_at, last_updated_by`

// SaveAccounts upserts the full chart in one transaction. Reseeding with the
// same chart file is a no-op apart from the name refresh.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			normal_side = EXCLUDED.normal_side,
			level = EXCLUDED.level,
			parent_code = EXCLUDED.parent_code,
			is_aggregate = EXCLUDED.is_aggregate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	batch := &pgx.Batch{}
	for _, acc := range accounts {
		var parent *string
		if acc.ParentCode != "" {
			parent = &acc.ParentCode
		}
		batch.Queue(query,
			acc.Code, acc.Name, string(acc.Category), string(acc.NormalSide),
			acc.Level, parent, acc.IsAggregate,
			now, "system", now, "system",
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to upsert accounts: %w", err)
	}
	return r.Commit(ctx, tx)
}

// FindAccountByCode retrieves one account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + code + " not found")
		}
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return acc, nil
}

// ListAccounts returns every account ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		acc      domain.Account
		category string
		side     string
		parent   *string
	)
	err := row.Scan(
		&acc.Code, &acc.Name, &category, &side, &acc.Level, &parent, &acc.IsAggregate,
		&acc.CreatedAt, &acc.CreatedBy, &acc.LastUpdatedAt, &acc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	acc.Category = domain.AccountCategory(category)
	acc.NormalSide = domain.NormalSide(side)
	if parent != nil {
		acc.ParentCode = *parent
	}
	return &acc, nil
}
