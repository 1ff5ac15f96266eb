package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/drivelink/instructor-api/internal/models"
)

// TimeOffRepository persists instructor time-off periods.
type TimeOffRepository struct {
	db *sqlx.DB
}

// NewTimeOffRepository constructs the repository.
func NewTimeOffRepository(db *sqlx.DB) *TimeOffRepository {
	return &TimeOffRepository{db: db}
}

// ListByInstructor returns all time-off periods for an instructor ordered by
// start date.
func (r *TimeOffRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.TimeOffPeriod, error) {
	const query = `SELECT id, instructor_id, start_date, end_date, reason, notes, created_at FROM time_off_periods WHERE instructor_id = $1 ORDER BY start_date ASC`
	var periods []models.TimeOffPeriod
	if err := r.db.SelectContext(ctx, &periods, query, instructorID); err != nil {
		return nil, fmt.Errorf("list time off periods: %w", err)
	}
	return periods, nil
}

// Create inserts a period after re-checking overlap against the rows
// currently in the table. The existing rows are locked for the duration of
// the transaction, so two concurrent sessions cannot both slip an
// overlapping period past a stale snapshot.
func (r *TimeOffRepository) Create(ctx context.Context, period *models.TimeOffPeriod) (err error) {
	if period.ID == "" {
		period.ID = uuid.NewString()
	}
	if period.CreatedAt.IsZero() {
		period.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create time off: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const lock = `SELECT id, instructor_id, start_date, end_date, reason, notes, created_at FROM time_off_periods WHERE instructor_id = $1 FOR UPDATE`
	var existing []models.TimeOffPeriod
	if err = tx.SelectContext(ctx, &existing, lock, period.InstructorID); err != nil {
		return fmt.Errorf("lock time off periods: %w", err)
	}

	for i := range existing {
		if period.Overlaps(existing[i]) {
			err = &models.TimeOffConflictError{
				Message:  fmt.Sprintf("overlaps existing time off %s to %s", existing[i].StartDate, existing[i].EndDate),
				Conflict: existing[i],
			}
			return err
		}
	}

	const insert = `INSERT INTO time_off_periods (id, instructor_id, start_date, end_date, reason, notes, created_at)
VALUES (:id, :instructor_id, :start_date, :end_date, :reason, :notes, :created_at)`
	if _, err = tx.NamedExecContext(ctx, insert, period); err != nil {
		return fmt.Errorf("insert time off period: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create time off: %w", err)
	}
	return nil
}

// Delete removes one period owned by the instructor and reports the number
// of rows removed.
func (r *TimeOffRepository) Delete(ctx context.Context, instructorID, id string) (int64, error) {
	const query = `DELETE FROM time_off_periods WHERE id = $1 AND instructor_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, instructorID)
	if err != nil {
		return 0, fmt.Errorf("delete time off period: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete time off period rows affected: %w", err)
	}
	return affected, nil
}
