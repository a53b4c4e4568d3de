package domain

import "time"

// PeriodStatus indicates whether an accounting period accepts mutations.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodLocked PeriodStatus = "LOCKED"
)

// IsValid reports whether s is OPEN or LOCKED.
func (s PeriodStatus) IsValid() bool {
	return s == PeriodOpen || s == PeriodLocked
}

// Period is an accounting period. While Locked, every entry whose date falls
// inside [StartDate, EndDate] is frozen: no create, edit, delete, post or
// unpost may touch it.
type Period struct {
	PeriodID  string       `json:"periodID"` // Primary key (UUID)
	Name      string       `json:"name"`     // unique, e.g. "2025-Q1"
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	Note      string       `json:"note,omitempty"` // carries unlock justifications
	AuditFields
}

// Contains reports whether d falls inside the period, boundaries inclusive.
// Only the calendar date matters, not the time of day.
func (p *Period) Contains(d time.Time) bool {
	day := DayOf(d)
	return !day.Before(DayOf(p.StartDate)) && !day.After(DayOf(p.EndDate))
}

// Overlaps reports whether the two periods share at least one calendar day.
func (p *Period) Overlaps(other *Period) bool {
	return p.Contains(other.StartDate) || other.Contains(p.StartDate)
}

// DayOf truncates t to its calendar day in UTC. Period arithmetic works on
// whole days; entry timestamps carry a time of day that must not leak into
// the comparison.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
