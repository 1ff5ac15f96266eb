package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelink/instructor-api/internal/models"
)

func newTimeOffMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimeOffRepositoryListByInstructor(t *testing.T) {
	db, mock, cleanup := newTimeOffMock(t)
	defer cleanup()
	repo := NewTimeOffRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "instructor_id", "start_date", "end_date", "reason", "notes", "created_at"}).
		AddRow("p-1", "inst-1", "2025-06-01", "2025-06-05", "Vacation", "", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, instructor_id, start_date, end_date, reason, notes, created_at FROM time_off_periods WHERE instructor_id = $1 ORDER BY start_date ASC")).
		WithArgs("inst-1").
		WillReturnRows(rows)

	periods, err := repo.ListByInstructor(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "2025-06-01", periods[0].StartDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeOffRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newTimeOffMock(t)
	defer cleanup()
	repo := NewTimeOffRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, instructor_id, start_date, end_date, reason, notes, created_at FROM time_off_periods").
		WithArgs("inst-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "instructor_id", "start_date", "end_date", "reason", "notes", "created_at"}))
	mock.ExpectExec("INSERT INTO time_off_periods").
		WithArgs(sqlmock.AnyArg(), "inst-1", "2025-07-01", "2025-07-03", "Unavailable", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	period := &models.TimeOffPeriod{
		InstructorID: "inst-1",
		StartDate:    "2025-07-01",
		EndDate:      "2025-07-03",
		Reason:       "Unavailable",
	}
	require.NoError(t, repo.Create(context.Background(), period))
	assert.NotEmpty(t, period.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeOffRepositoryCreateConflictRollsBack(t *testing.T) {
	db, mock, cleanup := newTimeOffMock(t)
	defer cleanup()
	repo := NewTimeOffRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, instructor_id, start_date, end_date, reason, notes, created_at FROM time_off_periods").
		WithArgs("inst-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "instructor_id", "start_date", "end_date", "reason", "notes", "created_at"}).
			AddRow("p-1", "inst-1", "2025-06-01", "2025-06-05", "Vacation", "", now))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.TimeOffPeriod{
		InstructorID: "inst-1",
		StartDate:    "2025-06-04",
		EndDate:      "2025-06-10",
	})
	require.Error(t, err)

	var conflict *models.TimeOffConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "p-1", conflict.Conflict.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeOffRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newTimeOffMock(t)
	defer cleanup()
	repo := NewTimeOffRepository(db)

	mock.ExpectExec("DELETE FROM time_off_periods WHERE id").
		WithArgs("p-1", "inst-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), "inst-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
