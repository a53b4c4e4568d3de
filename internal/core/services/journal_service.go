package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/soketoanvn/vn_ledger_app/internal/apperrors"
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
)

var (
	ErrEntryNotDraft  = errors.New("entry must be in DRAFT status")
	ErrEntryNotPosted = errors.New("entry must be in POSTED status")
)

// journalService implements entry mutation with the mandatory period gate.
type journalService struct {
	BaseService
	chart     *domain.Chart
	entryRepo portsrepo.EntryRepositoryFacade
	periodSvc portssvc.PeriodSvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(chart *domain.Chart, entryRepo portsrepo.EntryRepositoryFacade, periodSvc portssvc.PeriodSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{chart: chart, entryRepo: entryRepo, periodSvc: periodSvc}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts request lines into validated domain lines.
func (s *journalService) buildLines(reqLines []dto.CreateLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, 0, len(reqLines))
	for _, lr := range reqLines {
		line, err := lr.ToDomainLine()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// checkAccounts verifies every referenced code exists in the chart and is
// postable, before any state is touched.
func (s *journalService) checkAccounts(entry *domain.JournalEntry) error {
	for _, code := range entry.AccountCodes() {
		acc, err := s.chart.Get(code)
		if err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		if acc.IsAggregate {
			return fmt.Errorf("%w: account %s is a summing account and cannot be posted to", apperrors.ErrValidation, code)
		}
	}
	return nil
}

// CreateEntry validates and persists a new entry in Draft status.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := s.periodSvc.GateMutation(ctx, req.Date); err != nil {
		return nil, err
	}

	lines, err := s.buildLines(req.Lines)
	if err != nil {
		return nil, err
	}

	entry, err := domain.NewJournalEntry(req.Date, req.DocumentNo, req.Description, lines, domain.Draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	if err := s.checkAccounts(entry); err != nil {
		return nil, err
	}

	// Document numbers are unique across the book of entries.
	if existing, err := s.entryRepo.FindEntryByDocumentNo(ctx, entry.DocumentNo); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check document number: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("%w: document number %s", apperrors.ErrDuplicate, entry.DocumentNo)
	}

	now := time.Now().UTC()
	entry.EntryID = uuid.NewString()
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	if err := s.entryRepo.SaveEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("document_no", entry.DocumentNo))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.LogInfo(ctx, "Entry created", slog.String("entry_id", entry.EntryID), slog.String("document_no", entry.DocumentNo))
	return entry, nil
}

// GetEntry retrieves an entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries returns entries filtered by date range and status.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	from := ledgerEpoch
	to := time.Now().UTC().AddDate(100, 0, 0)
	if params.From != nil {
		from = *params.From
	}
	if params.To != nil {
		to = *params.To
	}

	var status *domain.EntryStatus
	if params.Status != nil {
		st := domain.EntryStatus(*params.Status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, domain.ErrInvalidStatus)
		}
		status = &st
	}

	entries, err := s.entryRepo.ListEntriesByDateRange(ctx, from, to, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry edits a Draft entry's date, description or lines.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrEntryNotDraft, entry.Status)
	}

	// Both the current and the target date must fall in open periods.
	if err := s.periodSvc.GateMutation(ctx, entry.EntryDate); err != nil {
		return nil, err
	}
	if req.Date != nil {
		if err := s.periodSvc.GateMutation(ctx, *req.Date); err != nil {
			return nil, err
		}
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if len(req.Lines) > 0 {
		lines, err := s.buildLines(req.Lines)
		if err != nil {
			return nil, err
		}
		entry.Lines = lines
	}

	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if err := s.checkAccounts(entry); err != nil {
		return nil, err
	}

	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	s.LogInfo(ctx, "Entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteEntry removes a Draft entry whose period is open.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrEntryNotDraft, entry.Status)
	}
	if err := s.periodSvc.GateMutation(ctx, entry.EntryDate); err != nil {
		return err
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	s.LogInfo(ctx, "Entry deleted", slog.String("entry_id", entryID), slog.String("document_no", entry.DocumentNo))
	return nil
}

// PostEntry transitions a Draft entry to Posted, making it visible to the
// balance engine.
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrEntryNotDraft, entry.Status)
	}
	if err := s.periodSvc.GateMutation(ctx, entry.EntryDate); err != nil {
		return nil, err
	}

	// Re-run the structural checks at the transition, not just at creation.
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if err := s.checkAccounts(entry); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Posted, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}

	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Entry posted", slog.String("entry_id", entryID), slog.String("document_no", entry.DocumentNo))
	return entry, nil
}

// UnpostEntry transitions a Posted entry back to Draft while its period is
// still open, removing it from subsequent balance replays.
func (s *journalService) UnpostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrEntryNotPosted, entry.Status)
	}
	if err := s.periodSvc.GateMutation(ctx, entry.EntryDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Draft, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to unpost entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to unpost entry: %w", err)
	}

	entry.Status = domain.Draft
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Entry unposted", slog.String("entry_id", entryID), slog.String("document_no", entry.DocumentNo))
	return entry, nil
}
