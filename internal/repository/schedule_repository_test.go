package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelink/instructor-api/internal/models"
)

func newScheduleMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestScheduleRepositoryListByInstructor(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "instructor_id", "day_of_week", "start_time", "end_time", "is_active", "created_at", "updated_at"}).
		AddRow("row-1", "inst-1", "Monday", "09:00", "12:00", true, now, now).
		AddRow("row-2", "inst-1", "Friday", "08:00", "17:00", true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, instructor_id, day_of_week, start_time, end_time, is_active, created_at, updated_at FROM schedule_days WHERE instructor_id = $1 ORDER BY created_at ASC")).
		WithArgs("inst-1").
		WillReturnRows(rows)

	days, err := repo.ListByInstructor(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, models.Monday, days[0].DayOfWeek)
	assert.Equal(t, "09:00", days[0].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("DELETE FROM schedule_days WHERE id").
		WithArgs("row-1", "inst-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), "inst-1", "row-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("DELETE FROM schedule_days WHERE id").
		WithArgs("missing", "inst-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), "inst-1", "missing")
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestScheduleRepositoryReplace(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM schedule_days WHERE instructor_id").
		WithArgs("inst-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO schedule_days").
		WithArgs(sqlmock.AnyArg(), "inst-1", "Monday", "09:00", "17:00", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO schedule_days").
		WithArgs(sqlmock.AnyArg(), "inst-1", "Tuesday", "09:00", "17:00", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Replace(context.Background(), "inst-1", []models.ScheduleDay{
		{DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		{DayOfWeek: models.Tuesday, StartTime: "09:00", EndTime: "17:00", IsActive: true},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM schedule_days WHERE instructor_id").
		WithArgs("inst-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO schedule_days").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), "inst-1", []models.ScheduleDay{
		{DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "17:00", IsActive: true},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryBulkCreate(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO schedule_days").
		WithArgs(sqlmock.AnyArg(), "inst-1", "Wednesday", "10:00", "14:00", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.BulkCreate(context.Background(), "inst-1", []models.ScheduleDay{
		{DayOfWeek: models.Wednesday, StartTime: "10:00", EndTime: "14:00", IsActive: true},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
