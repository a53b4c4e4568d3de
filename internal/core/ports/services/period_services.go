package services

import (
	"context"
	"time"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
)

// PeriodSvcFacade manages accounting periods and gates entry mutations.
type PeriodSvcFacade interface {
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error)
	GetPeriod(ctx context.Context, periodID string) (*domain.Period, error)
	ListPeriods(ctx context.Context) ([]domain.Period, error)
	// LockPeriod fails while any Draft entry is dated inside the period,
	// naming the first offending document numbers.
	LockPeriod(ctx context.Context, periodID string, userID string) (*domain.Period, error)
	// UnlockPeriod requires a non-empty justification, recorded on the period.
	UnlockPeriod(ctx context.Context, periodID string, reason string, userID string) (*domain.Period, error)
	// GateMutation resolves the period covering date and rejects the
	// mutation when none exists or the period is locked.
	GateMutation(ctx context.Context, date time.Time) error
}
