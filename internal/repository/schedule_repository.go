package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/drivelink/instructor-api/internal/models"
)

// ScheduleRepository persists weekly availability windows.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByInstructor returns every stored schedule day for an instructor. The
// server may hold anywhere from 0 to 7 rows; callers fill the gaps.
func (r *ScheduleRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.ScheduleDay, error) {
	const query = `SELECT id, instructor_id, day_of_week, start_time, end_time, is_active, created_at, updated_at FROM schedule_days WHERE instructor_id = $1 ORDER BY created_at ASC`
	var days []models.ScheduleDay
	if err := r.db.SelectContext(ctx, &days, query, instructorID); err != nil {
		return nil, fmt.Errorf("list schedule days: %w", err)
	}
	return days, nil
}

// Delete removes one schedule day owned by the instructor. Returns the
// number of rows removed so callers can distinguish a missing record.
func (r *ScheduleRepository) Delete(ctx context.Context, instructorID, id string) (int64, error) {
	const query = `DELETE FROM schedule_days WHERE id = $1 AND instructor_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, instructorID)
	if err != nil {
		return 0, fmt.Errorf("delete schedule day: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete schedule day rows affected: %w", err)
	}
	return affected, nil
}

// BulkCreate inserts schedule days within a transaction. Legacy compat path
// for clients that orchestrate delete-then-recreate themselves.
func (r *ScheduleRepository) BulkCreate(ctx context.Context, instructorID string, days []models.ScheduleDay) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create schedule days: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.bulkInsert(ctx, tx, instructorID, days); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create schedule days: %w", err)
	}
	return nil
}

// Replace atomically swaps the instructor's stored week for the given active
// set: every existing row is deleted and the new rows inserted in one
// transaction, so a failure can never leave a partially deleted schedule.
func (r *ScheduleRepository) Replace(ctx context.Context, instructorID string, days []models.ScheduleDay) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace schedule: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const del = `DELETE FROM schedule_days WHERE instructor_id = $1`
	if _, err = tx.ExecContext(ctx, del, instructorID); err != nil {
		return fmt.Errorf("replace schedule delete: %w", err)
	}

	if err = r.bulkInsert(ctx, tx, instructorID, days); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) bulkInsert(ctx context.Context, exec sqlx.ExtContext, instructorID string, days []models.ScheduleDay) error {
	const query = `INSERT INTO schedule_days (id, instructor_id, day_of_week, start_time, end_time, is_active, created_at, updated_at)
VALUES (:id, :instructor_id, :day_of_week, :start_time, :end_time, :is_active, :created_at, :updated_at)`

	now := time.Now().UTC()
	for i := range days {
		payload := days[i]
		payload.InstructorID = instructorID
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		payload.UpdatedAt = now
		if _, err := sqlx.NamedExecContext(ctx, exec, query, payload); err != nil {
			return fmt.Errorf("insert schedule day %s: %w", payload.DayOfWeek, err)
		}
	}
	return nil
}
