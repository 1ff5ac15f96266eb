package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/drivelink/instructor-api/internal/models"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
)

// ValidateNewPeriod normalizes and checks a candidate time-off period
// against the given existing periods. A missing end date makes the period
// single-day; a blank reason defaults. The first overlapping existing
// period aborts the validation and is reported back to the caller.
func ValidateNewPeriod(candidate models.TimeOffPeriod, existing []models.TimeOffPeriod) (models.TimeOffPeriod, error) {
	candidate.StartDate = strings.TrimSpace(candidate.StartDate)
	candidate.EndDate = strings.TrimSpace(candidate.EndDate)

	if candidate.StartDate == "" {
		return candidate, appErrors.Clone(appErrors.ErrValidation, "start date is required")
	}
	if !models.ValidDate(candidate.StartDate) {
		return candidate, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid start date %q", candidate.StartDate))
	}

	if candidate.EndDate == "" {
		candidate.EndDate = candidate.StartDate
	} else {
		if !models.ValidDate(candidate.EndDate) {
			return candidate, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid end date %q", candidate.EndDate))
		}
		if candidate.EndDate < candidate.StartDate {
			return candidate, appErrors.Clone(appErrors.ErrValidation, "end date must not be before start date")
		}
	}

	for i := range existing {
		if candidate.Overlaps(existing[i]) {
			return candidate, &models.TimeOffConflictError{
				Message:  fmt.Sprintf("overlaps existing time off %s to %s", existing[i].StartDate, existing[i].EndDate),
				Conflict: existing[i],
			}
		}
	}

	if strings.TrimSpace(candidate.Reason) == "" {
		candidate.Reason = models.DefaultTimeOffReason
	}
	return candidate, nil
}

// DisabledDates expands every period into its full inclusive list of
// calendar days, for date pickers that block already-taken days. Periods
// with malformed dates are skipped. The materialization is bounded by
// limit when limit is positive.
func DisabledDates(periods []models.TimeOffPeriod, limit int) []string {
	var dates []string
	for _, period := range periods {
		start, err := time.Parse(models.DateLayout, period.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(models.DateLayout, period.EndDate)
		if err != nil {
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if limit > 0 && len(dates) >= limit {
				return dates
			}
			dates = append(dates, d.Format(models.DateLayout))
		}
	}
	return dates
}
