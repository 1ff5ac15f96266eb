package models

import "time"

// DateLayout is the wire and storage format for calendar dates. Dates are
// plain wall-clock strings; zero-padded YYYY-MM-DD also orders correctly
// under plain string comparison.
const DateLayout = "2006-01-02"

// DefaultTimeOffReason is applied when a period is created with no reason.
const DefaultTimeOffReason = "Unavailable"

// TimeOffPeriod is an instructor-declared unavailability window. Both dates
// are inclusive and EndDate is never before StartDate once persisted.
type TimeOffPeriod struct {
	ID           string    `db:"id" json:"id"`
	InstructorID string    `db:"instructor_id" json:"instructor_id,omitempty"`
	StartDate    string    `db:"start_date" json:"start_date"`
	EndDate      string    `db:"end_date" json:"end_date"`
	Reason       string    `db:"reason" json:"reason"`
	Notes        string    `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at,omitempty"`
}

// Overlaps reports whether two inclusive date ranges share at least one
// calendar day. Ranges touching on a single endpoint day overlap.
func (p TimeOffPeriod) Overlaps(other TimeOffPeriod) bool {
	return p.StartDate <= other.EndDate && other.StartDate <= p.EndDate
}

// TimeOffConflictError is returned when a new period collides with an
// existing one; the conflicting period is surfaced to the caller.
type TimeOffConflictError struct {
	Message  string        `json:"message"`
	Conflict TimeOffPeriod `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *TimeOffConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// ValidDate reports whether value is a zero-padded YYYY-MM-DD string.
func ValidDate(value string) bool {
	if len(value) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
