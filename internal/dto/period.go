package dto

import (
	"time"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

// CreatePeriodRequest is the payload for creating an accounting period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	Note      string    `json:"note"`
}

// UnlockPeriodRequest carries the mandatory unlock justification.
type UnlockPeriodRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PeriodResponse is the API shape of a period.
type PeriodResponse struct {
	PeriodID  string    `json:"periodID"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
}

// ToPeriodResponse converts a domain period to its API shape.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    string(p.Status),
		Note:      p.Note,
	}
}

// ToPeriodResponses converts a slice of domain periods.
func ToPeriodResponses(periods []domain.Period) []PeriodResponse {
	out := make([]PeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToPeriodResponse(&periods[i])
	}
	return out
}
