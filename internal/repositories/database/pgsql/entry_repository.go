package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/soketoanvn/vn_ledger_app/internal/apperrors"
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
)

// PgxEntryRepository persists journal entries together with their lines. The
// header and the lines always move in one database transaction.
type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, entry_date, document_no, description, status, created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_lines (
		entry_id, line_no, account_code, debit, credit,
		foreign_amount, foreign_currency, exchange_rate,
		source_doc_no, source_doc_date, source_doc_kind,
		cash_flow_code, memo
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

// SaveEntry inserts the entry header and all its lines atomically.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, headerQuery,
		entry.EntryID, entry.EntryDate, entry.DocumentNo, entry.Description, string(entry.Status),
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", entry.EntryID, err)
	}

	if err := insertLines(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateEntry replaces the header fields and rewrites the line set.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		entry.EntryID, entry.EntryDate, entry.Description, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entry.EntryID + " not found")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to clear lines of entry %s: %w", entry.EntryID, err)
	}
	if err := insertLines(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateEntryStatus flips the entry status, used for post and unpost.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, string(status), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entryID + " not found")
	}
	return nil
}

// DeleteEntry removes the entry; lines go with it via ON DELETE CASCADE.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entryID + " not found")
	}
	return nil
}

// FindEntryByID retrieves one entry with its lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntryBy(ctx, "entry_id", entryID)
}

// FindEntryByDocumentNo retrieves one entry with its lines by document number.
func (r *PgxEntryRepository) FindEntryByDocumentNo(ctx context.Context, documentNo string) (*domain.JournalEntry, error) {
	return r.findEntryBy(ctx, "document_no", documentNo)
}

func (r *PgxEntryRepository) findEntryBy(ctx context.Context, column, value string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + column + ` = $1;`

	entry, err := scanEntryHeader(r.Pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("entry with " + column + " " + value + " not found")
		}
		return nil, fmt.Errorf("failed to find entry by %s %s: %w", column, value, err)
	}

	lines, err := r.loadLines(ctx, []string{entry.EntryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entry.EntryID]
	return entry, nil
}

// ListEntriesByDateRange returns entries dated in [from, to], optionally
// filtered by status, with lines attached.
func (r *PgxEntryRepository) ListEntriesByDateRange(ctx context.Context, from, to time.Time, status *domain.EntryStatus) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_date >= $1 AND entry_date <= $2
	`
	args := []any{from, to}
	if status != nil {
		query += ` AND status = $3`
		args = append(args, string(*status))
	}
	query += ` ORDER BY entry_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	var ids []string
	for rows.Next() {
		entry, err := scanEntryHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
		ids = append(ids, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

// loadLines fetches the lines of all given entries in one query, keyed by
// entry ID and ordered by line number.
func (r *PgxEntryRepository) loadLines(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	query := `
		SELECT entry_id, account_code, debit, credit,
			foreign_amount, foreign_currency, exchange_rate,
			source_doc_no, source_doc_date, source_doc_kind,
			cash_flow_code, memo
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.JournalLine, len(entryIDs))
	for rows.Next() {
		var (
			entryID         string
			line            domain.JournalLine
			foreignAmount   *decimal.Decimal
			foreignCurrency *string
			exchangeRate    *decimal.Decimal
			sourceDocNo     *string
			sourceDocDate   *time.Time
			sourceDocKind   *string
			cashFlowCode    *string
			memo            *string
		)
		err := rows.Scan(
			&entryID, &line.AccountCode, &line.Debit, &line.Credit,
			&foreignAmount, &foreignCurrency, &exchangeRate,
			&sourceDocNo, &sourceDocDate, &sourceDocKind,
			&cashFlowCode, &memo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		if foreignAmount != nil && foreignCurrency != nil && exchangeRate != nil {
			line.Foreign = &domain.ForeignCurrency{
				Amount:       *foreignAmount,
				CurrencyCode: *foreignCurrency,
				ExchangeRate: *exchangeRate,
			}
		}
		if sourceDocNo != nil {
			doc := domain.SourceDocument{Number: *sourceDocNo}
			if sourceDocDate != nil {
				doc.Date = *sourceDocDate
			}
			if sourceDocKind != nil {
				doc.Kind = *sourceDocKind
			}
			line.SourceDoc = &doc
		}
		if cashFlowCode != nil {
			line.CashFlowCode = *cashFlowCode
		}
		if memo != nil {
			line.Memo = *memo
		}
		out[entryID] = append(out[entryID], line)
	}
	return out, rows.Err()
}

func insertLines(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	for i, line := range lines {
		var (
			foreignAmount   *decimal.Decimal
			foreignCurrency *string
			exchangeRate    *decimal.Decimal
			sourceDocNo     *string
			sourceDocDate   *time.Time
			sourceDocKind   *string
			cashFlowCode    *string
			memo            *string
		)
		if line.Foreign != nil {
			foreignAmount = &line.Foreign.Amount
			foreignCurrency = &line.Foreign.CurrencyCode
			exchangeRate = &line.Foreign.ExchangeRate
		}
		if line.SourceDoc != nil {
			sourceDocNo = &line.SourceDoc.Number
			sourceDocDate = &line.SourceDoc.Date
			sourceDocKind = &line.SourceDoc.Kind
		}
		if line.CashFlowCode != "" {
			cashFlowCode = &line.CashFlowCode
		}
		if line.Memo != "" {
			memo = &line.Memo
		}
		batch.Queue(insertLineQuery,
			entryID, i+1, line.AccountCode, line.Debit, line.Credit,
			foreignAmount, foreignCurrency, exchangeRate,
			sourceDocNo, sourceDocDate, sourceDocKind,
			cashFlowCode, memo,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines of entry %s: %w", entryID, err)
	}
	return nil
}

func scanEntryHeader(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		entry  domain.JournalEntry
		status string
	)
	err := row.Scan(
		&entry.EntryID, &entry.EntryDate, &entry.DocumentNo, &entry.Description, &status,
		&entry.CreatedAt, &entry.CreatedBy, &entry.LastUpdatedAt, &entry.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	entry.Status = domain.EntryStatus(status)
	return &entry, nil
}
