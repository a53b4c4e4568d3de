package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

func TestPeriodContains(t *testing.T) {
	period := domain.Period{
		Name:      "2025-Q1",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}

	assert.True(t, period.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
	// Time of day on the boundary must not matter.
	assert.True(t, period.Contains(time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPeriodOverlaps(t *testing.T) {
	q1 := domain.Period{
		Name:      "2025-Q1",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	q2 := domain.Period{
		Name:      "2025-Q2",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	feb := domain.Period{
		Name:      "2025-Feb",
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	straddle := domain.Period{
		Name:      "2025-Mar-Apr",
		StartDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
	}

	// A nested range overlaps, seen from either side.
	assert.True(t, q1.Overlaps(&feb))
	assert.True(t, feb.Overlaps(&q1))
	// A partial straddle overlaps both quarters.
	assert.True(t, q1.Overlaps(&straddle))
	assert.True(t, q2.Overlaps(&straddle))
	// Adjacent quarters do not.
	assert.False(t, q1.Overlaps(&q2))
	assert.False(t, q2.Overlaps(&q1))
}
