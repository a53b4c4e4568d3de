package services

import (
	"context"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
)

// JournalSvcFacade is the entry-mutation surface. Every mutation resolves the
// covering accounting period first and is rejected while that period is
// locked; the check is not bypassable from this API.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, entryID string, userID string) error
	// PostEntry transitions Draft -> Posted ("ghi sổ").
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)
	// UnpostEntry transitions Posted -> Draft ("hủy ghi sổ") while the
	// covering period remains open.
	UnpostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)
}
