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

// PgxPeriodRepository persists accounting periods.
type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, name, start_date, end_date, status, note, created_at, created_by, last_updated_at, last_updated_by`

// SavePeriod inserts a new period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	query := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		period.PeriodID, period.Name, period.StartDate, period.EndDate,
		string(period.Status), period.Note,
		period.CreatedAt, period.CreatedBy, period.LastUpdatedAt, period.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert period %s: %w", period.Name, err)
	}
	return nil
}

// FindPeriodByID retrieves one period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1;`

	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("period " + periodID + " not found")
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	return period, nil
}

// FindPeriodByDate returns the period whose date range covers the given
// date's calendar day. Overlapping ranges are rejected at creation, so at
// most one row matches.
func (r *PgxPeriodRepository) FindPeriodByDate(ctx context.Context, date time.Time) (*domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE start_date <= $1::date AND end_date >= $1::date
		LIMIT 1;
	`
	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no period covers " + date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find period for %s: %w", date.Format("2006-01-02"), err)
	}
	return period, nil
}

// ListPeriods returns all periods ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.Period
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		periods = append(periods, *period)
	}
	return periods, rows.Err()
}

// UpdatePeriodStatus flips the period status and rewrites the note, used for
// lock and unlock.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, note string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE periods
		SET status = $2, note = $3, last_updated_at = $4, last_updated_by = $5
		WHERE period_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, string(status), note, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("period " + periodID + " not found")
	}
	return nil
}

func scanPeriod(row pgx.Row) (*domain.Period, error) {
	var (
		period domain.Period
		status string
		note   *string
	)
	err := row.Scan(
		&period.PeriodID, &period.Name, &period.StartDate, &period.EndDate, &status, &note,
		&period.CreatedAt, &period.CreatedBy, &period.LastUpdatedAt, &period.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	period.Status = domain.PeriodStatus(status)
	if note != nil {
		period.Note = *note
	}
	return &period, nil
}
