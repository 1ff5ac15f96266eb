package models

import "time"

// Weekday is the closed set of schedule days. The weekly schedule always
// holds exactly one entry per Weekday, keyed by name.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists every schedule day in display order, Monday first.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ValidWeekday reports whether name is one of the seven schedule days.
func ValidWeekday(name Weekday) bool {
	for _, day := range Weekdays {
		if day == name {
			return true
		}
	}
	return false
}

// Default working window applied to days the instructor has not configured.
const (
	DefaultStartTime = "08:00"
	DefaultEndTime   = "17:00"
)

// ScheduleDay is one recurring weekly availability window. Times are
// wall-clock HH:MM strings with no timezone; an entry with an empty ID has
// not been persisted yet.
type ScheduleDay struct {
	ID           string    `db:"id" json:"id,omitempty"`
	InstructorID string    `db:"instructor_id" json:"instructor_id,omitempty"`
	DayOfWeek    Weekday   `db:"day_of_week" json:"day_of_week"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// DefaultScheduleDay synthesizes the inactive default window for a day the
// server has no record for.
func DefaultScheduleDay(day Weekday) ScheduleDay {
	return ScheduleDay{
		DayOfWeek: day,
		StartTime: DefaultStartTime,
		EndTime:   DefaultEndTime,
		IsActive:  false,
	}
}

// ValidClockTime reports whether value is a zero-padded 24-hour HH:MM
// string. Valid clock times compare correctly as plain strings.
func ValidClockTime(value string) bool {
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}
