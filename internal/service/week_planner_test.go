package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelink/instructor-api/internal/models"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
)

func TestWeekPlannerFillsDefaults(t *testing.T) {
	planner := NewWeekPlanner(nil)
	days := planner.Days()
	require.Len(t, days, 7)
	for i, day := range days {
		assert.Equal(t, models.Weekdays[i], day.DayOfWeek)
		assert.Equal(t, models.DefaultStartTime, day.StartTime)
		assert.Equal(t, models.DefaultEndTime, day.EndTime)
		assert.False(t, day.IsActive)
	}
}

func TestWeekPlannerSingleStoredRow(t *testing.T) {
	planner := NewWeekPlanner([]models.ScheduleDay{
		{ID: "row-1", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "12:00", IsActive: true},
	})
	days := planner.Days()
	require.Len(t, days, 7)

	assert.Equal(t, "row-1", days[0].ID)
	assert.Equal(t, "09:00", days[0].StartTime)
	assert.Equal(t, "12:00", days[0].EndTime)
	assert.True(t, days[0].IsActive)

	for _, day := range days[1:] {
		assert.Empty(t, day.ID)
		assert.Equal(t, models.DefaultStartTime, day.StartTime)
		assert.False(t, day.IsActive)
	}
}

func TestWeekPlannerIgnoresInvalidAndDuplicateRows(t *testing.T) {
	planner := NewWeekPlanner([]models.ScheduleDay{
		{ID: "row-1", DayOfWeek: models.Friday, StartTime: "10:00", EndTime: "14:00", IsActive: true},
		{ID: "row-2", DayOfWeek: models.Friday, StartTime: "06:00", EndTime: "07:00", IsActive: true},
		{ID: "row-3", DayOfWeek: "Funday", StartTime: "08:00", EndTime: "09:00", IsActive: true},
	})
	days := planner.Days()
	require.Len(t, days, 7)

	friday := days[4]
	assert.Equal(t, "row-1", friday.ID)
	assert.Equal(t, "10:00", friday.StartTime)
}

func TestWeekPlannerSetDayTimeAndActive(t *testing.T) {
	planner := NewWeekPlanner(nil)
	require.NoError(t, planner.SetDayTime(models.Tuesday, FieldStartTime, "07:30"))
	require.NoError(t, planner.SetDayTime(models.Tuesday, FieldEndTime, "15:45"))
	require.NoError(t, planner.SetDayActive(models.Tuesday, true))

	tuesday := planner.Days()[1]
	assert.Equal(t, "07:30", tuesday.StartTime)
	assert.Equal(t, "15:45", tuesday.EndTime)
	assert.True(t, tuesday.IsActive)

	err := planner.SetDayTime(models.Tuesday, FieldStartTime, "7:30")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestWeekPlannerSetAllActiveKeepsTimes(t *testing.T) {
	planner := NewWeekPlanner([]models.ScheduleDay{
		{ID: "row-1", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "12:00", IsActive: true},
	})

	planner.SetAllActive(true)
	planner.SetAllActive(true)

	days := planner.Days()
	assert.Equal(t, "09:00", days[0].StartTime)
	for _, day := range days {
		assert.True(t, day.IsActive)
		assert.NotEmpty(t, day.StartTime)
		assert.NotEmpty(t, day.EndTime)
	}

	planner.SetAllActive(false)
	days = planner.Days()
	assert.Equal(t, "09:00", days[0].StartTime)
	for _, day := range days {
		assert.False(t, day.IsActive)
	}
}

func TestWeekPlannerValidateForSaveNoActiveDays(t *testing.T) {
	planner := NewWeekPlanner(nil)
	_, err := planner.ValidateForSave()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active days selected")
}

func TestWeekPlannerValidateForSaveRejectsInvertedRange(t *testing.T) {
	planner := NewWeekPlanner(nil)
	require.NoError(t, planner.SetDayTime(models.Monday, FieldStartTime, "09:00"))
	require.NoError(t, planner.SetDayTime(models.Monday, FieldEndTime, "08:00"))
	require.NoError(t, planner.SetDayActive(models.Monday, true))
	require.NoError(t, planner.SetDayActive(models.Wednesday, true))

	_, err := planner.ValidateForSave()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Monday")
	assert.Contains(t, err.Error(), "start must be before end")
}

func TestWeekPlannerValidateForSaveEqualTimesRejected(t *testing.T) {
	planner := NewWeekPlanner(nil)
	require.NoError(t, planner.SetDayTime(models.Monday, FieldStartTime, "09:00"))
	require.NoError(t, planner.SetDayTime(models.Monday, FieldEndTime, "09:00"))
	require.NoError(t, planner.SetDayActive(models.Monday, true))

	_, err := planner.ValidateForSave()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Monday")
}

func TestWeekPlannerValidateForSaveActiveSubsetInOrder(t *testing.T) {
	planner := NewWeekPlanner(nil)
	require.NoError(t, planner.SetDayActive(models.Friday, true))
	require.NoError(t, planner.SetDayActive(models.Monday, true))

	active, err := planner.ValidateForSave()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, models.Monday, active[0].DayOfWeek)
	assert.Equal(t, models.Friday, active[1].DayOfWeek)
}

func TestWeekPlannerPlan(t *testing.T) {
	planner := NewWeekPlanner([]models.ScheduleDay{
		{ID: "row-1", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		{ID: "row-2", DayOfWeek: models.Tuesday, StartTime: "09:00", EndTime: "12:00", IsActive: true},
	})
	require.NoError(t, planner.SetDayActive(models.Tuesday, false))

	plan, err := planner.Plan()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"row-1", "row-2"}, plan.DeleteIDs)
	require.Len(t, plan.Creates, 1)
	assert.Empty(t, plan.Creates[0].ID)
	assert.Equal(t, models.Monday, plan.Creates[0].DayOfWeek)
	assert.True(t, plan.Creates[0].IsActive)
}

func TestWeekPlannerPlanValidationFailure(t *testing.T) {
	planner := NewWeekPlanner([]models.ScheduleDay{
		{ID: "row-1", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "12:00", IsActive: false},
	})
	_, err := planner.Plan()
	require.Error(t, err)
}
