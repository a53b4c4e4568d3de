package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soketoanvn/vn_ledger_app/internal/apperrors"
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
)

var (
	ErrPeriodNotLocked = errors.New("period must be in LOCKED status")
	ErrReasonRequired  = errors.New("unlock justification must not be empty")
)

// maxListedDocumentNos caps how many offending document numbers a failed lock
// names before trailing off with an ellipsis.
const maxListedDocumentNos = 5

// periodService manages accounting periods and gates every entry mutation.
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
	entryRepo  portsrepo.EntryRepositoryFacade
}

// NewPeriodService creates a new period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, entryRepo portsrepo.EntryRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo, entryRepo: entryRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod creates a new period in Open status.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date %s precedes start date %s",
			apperrors.ErrValidation, req.EndDate.Format("2006-01-02"), req.StartDate.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	period := domain.Period{
		PeriodID:  uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		Note:      req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if period.Name == "" {
		return nil, fmt.Errorf("%w: period name is required", apperrors.ErrValidation)
	}

	// Names must be unique and ranges must not overlap: the mutation gate
	// resolves an entry date to a single covering period, so two periods
	// sharing a day would make the lock status of that day ambiguous.
	existing, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	for _, p := range existing {
		if p.Name == period.Name {
			return nil, fmt.Errorf("%w: period name %s", apperrors.ErrDuplicate, period.Name)
		}
		if p.Overlaps(&period) {
			return nil, fmt.Errorf("%w: range %s to %s overlaps period %s",
				apperrors.ErrConflict,
				period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"), p.Name)
		}
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save period", slog.String("name", period.Name))
		return nil, fmt.Errorf("failed to save period: %w", err)
	}

	s.LogInfo(ctx, "Period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

func (s *periodService) GetPeriod(ctx context.Context, periodID string) (*domain.Period, error) {
	return s.periodRepo.FindPeriodByID(ctx, periodID)
}

func (s *periodService) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	return s.periodRepo.ListPeriods(ctx)
}

// LockPeriod transitions Open -> Locked. It fails while any Draft entry is
// dated inside the period, naming the offending document numbers.
func (s *periodService) LockPeriod(ctx context.Context, periodID string, userID string) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period %s is already LOCKED", apperrors.ErrConflict, period.Name)
	}

	draft := domain.Draft
	drafts, err := s.entryRepo.ListEntriesByDateRange(ctx, period.StartDate, period.EndDate, &draft)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft entries: %w", err)
	}
	if len(drafts) > 0 {
		return nil, fmt.Errorf("%w: period %s has %d draft entries: %s",
			apperrors.ErrConflict, period.Name, len(drafts), summarizeDocumentNos(drafts))
	}

	now := time.Now().UTC()
	if err := s.periodRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodLocked, period.Note, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to lock period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to lock period: %w", err)
	}

	period.Status = domain.PeriodLocked
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID
	s.LogInfo(ctx, "Period locked", slog.String("period_id", periodID), slog.String("name", period.Name))
	return period, nil
}

// UnlockPeriod transitions Locked -> Open. The justification is mandatory and
// checked before anything else, then recorded on the period note.
func (s *periodService) UnlockPeriod(ctx context.Context, periodID string, reason string, userID string) (*domain.Period, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrReasonRequired)
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodLocked {
		return nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrPeriodNotLocked, period.Status)
	}

	now := time.Now().UTC()
	note := appendNote(period.Note, fmt.Sprintf("unlocked %s by %s: %s", now.Format("2006-01-02"), userID, strings.TrimSpace(reason)))
	if err := s.periodRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodOpen, note, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to unlock period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to unlock period: %w", err)
	}

	period.Status = domain.PeriodOpen
	period.Note = note
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID
	s.LogInfo(ctx, "Period unlocked", slog.String("period_id", periodID), slog.String("name", period.Name))
	return period, nil
}

// GateMutation resolves the period covering date and rejects the mutation
// when none exists or the covering period is locked. Only the calendar day
// of the date matters.
func (s *periodService) GateMutation(ctx context.Context, date time.Time) error {
	day := domain.DayOf(date)
	period, err := s.periodRepo.FindPeriodByDate(ctx, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: no accounting period covers %s", apperrors.ErrNotFound, day.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to resolve period for %s: %w", day.Format("2006-01-02"), err)
	}
	if period.Status == domain.PeriodLocked {
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodLocked, period.Name)
	}
	return nil
}

// summarizeDocumentNos lists up to maxListedDocumentNos document numbers,
// trailing off with an ellipsis when more exist.
func summarizeDocumentNos(entries []domain.JournalEntry) string {
	limit := len(entries)
	if limit > maxListedDocumentNos {
		limit = maxListedDocumentNos
	}
	nos := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		nos = append(nos, entries[i].DocumentNo)
	}
	out := strings.Join(nos, ", ")
	if len(entries) > maxListedDocumentNos {
		out += ", …"
	}
	return out
}

func appendNote(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + "\n" + addition
}
