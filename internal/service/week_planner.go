package service

import (
	"fmt"

	"github.com/drivelink/instructor-api/internal/models"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
)

// TimeField selects which edge of a day's window to edit.
type TimeField string

const (
	FieldStartTime TimeField = "start_time"
	FieldEndTime   TimeField = "end_time"
)

// WeekPlanner holds an instructor's working copy of the weekly schedule:
// exactly one entry per weekday, regardless of how many rows the store
// returned. Deactivated days keep their last chosen times so re-activating
// restores them.
type WeekPlanner struct {
	days map[models.Weekday]models.ScheduleDay
}

// NewWeekPlanner builds the working week from stored rows. Days without a
// stored row get the inactive 08:00-17:00 default. When the store holds
// duplicate rows for a day, the first one wins.
func NewWeekPlanner(stored []models.ScheduleDay) *WeekPlanner {
	days := make(map[models.Weekday]models.ScheduleDay, len(models.Weekdays))
	for _, row := range stored {
		if !models.ValidWeekday(row.DayOfWeek) {
			continue
		}
		if _, exists := days[row.DayOfWeek]; exists {
			continue
		}
		days[row.DayOfWeek] = row
	}
	for _, day := range models.Weekdays {
		if _, exists := days[day]; !exists {
			days[day] = models.DefaultScheduleDay(day)
		}
	}
	return &WeekPlanner{days: days}
}

// Days returns the full week in display order, Monday first.
func (p *WeekPlanner) Days() []models.ScheduleDay {
	out := make([]models.ScheduleDay, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		out = append(out, p.days[day])
	}
	return out
}

// SetDayActive flips the active flag for one day without touching its times.
func (p *WeekPlanner) SetDayActive(day models.Weekday, active bool) error {
	entry, exists := p.days[day]
	if !exists {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", day))
	}
	entry.IsActive = active
	p.days[day] = entry
	return nil
}

// SetDayTime sets one edge of a day's window to an HH:MM value.
func (p *WeekPlanner) SetDayTime(day models.Weekday, field TimeField, value string) error {
	entry, exists := p.days[day]
	if !exists {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", day))
	}
	if !models.ValidClockTime(value) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid time %q for %s", value, day))
	}
	switch field {
	case FieldStartTime:
		entry.StartTime = value
	case FieldEndTime:
		entry.EndTime = value
	default:
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown time field %q", field))
	}
	p.days[day] = entry
	return nil
}

// SetAllActive bulk-sets the active flag for every day, keeping each day's
// previously chosen times and falling back to the default window where a
// day has none. Idempotent.
func (p *WeekPlanner) SetAllActive(active bool) {
	for _, day := range models.Weekdays {
		entry := p.days[day]
		entry.IsActive = active
		if entry.StartTime == "" {
			entry.StartTime = models.DefaultStartTime
		}
		if entry.EndTime == "" {
			entry.EndTime = models.DefaultEndTime
		}
		p.days[day] = entry
	}
}

// ValidateForSave returns the active subset in display order. The save is
// all-or-nothing: an empty active set or the first day whose start is not
// strictly before its end aborts the whole validation.
func (p *WeekPlanner) ValidateForSave() ([]models.ScheduleDay, error) {
	var active []models.ScheduleDay
	for _, day := range models.Weekdays {
		entry := p.days[day]
		if !entry.IsActive {
			continue
		}
		if !models.ValidClockTime(entry.StartTime) || !models.ValidClockTime(entry.EndTime) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid time format for %s", day))
		}
		if entry.StartTime >= entry.EndTime {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid time range for %s: start must be before end", day))
		}
		active = append(active, entry)
	}
	if len(active) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no active days selected")
	}
	return active, nil
}

// PersistencePlan describes the replace: every stored row is deleted and
// the validated active subset recreated with fresh identity.
type PersistencePlan struct {
	DeleteIDs []string
	Creates   []models.ScheduleDay
}

// Plan validates the working week and returns the delete-then-recreate
// operation lists.
func (p *WeekPlanner) Plan() (*PersistencePlan, error) {
	active, err := p.ValidateForSave()
	if err != nil {
		return nil, err
	}

	plan := &PersistencePlan{}
	for _, day := range models.Weekdays {
		if id := p.days[day].ID; id != "" {
			plan.DeleteIDs = append(plan.DeleteIDs, id)
		}
	}
	for _, entry := range active {
		plan.Creates = append(plan.Creates, models.ScheduleDay{
			DayOfWeek: entry.DayOfWeek,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			IsActive:  true,
		})
	}
	return plan, nil
}
