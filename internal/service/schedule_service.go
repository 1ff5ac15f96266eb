package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/drivelink/instructor-api/internal/models"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
)

type scheduleRepository interface {
	ListByInstructor(ctx context.Context, instructorID string) ([]models.ScheduleDay, error)
	Delete(ctx context.Context, instructorID, id string) (int64, error)
	BulkCreate(ctx context.Context, instructorID string, days []models.ScheduleDay) error
	Replace(ctx context.Context, instructorID string, days []models.ScheduleDay) error
}

type saveLocker interface {
	Acquire(ctx context.Context, instructorID string) (bool, error)
	Release(ctx context.Context, instructorID string) error
}

// ScheduleDayInput is one submitted day entry.
type ScheduleDayInput struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	IsActive  bool   `json:"is_active"`
}

// ReplaceWeekRequest carries the full working week for a transactional
// replace. AllActive mirrors the bulk toggle: applied before per-day edits.
type ReplaceWeekRequest struct {
	Schedules []ScheduleDayInput `json:"schedules" validate:"required,min=1,dive"`
	AllActive *bool              `json:"all_active,omitempty"`
}

// BulkCreateWeekRequest is the legacy create-only path; clients that still
// orchestrate delete-then-recreate themselves post the active set here.
type BulkCreateWeekRequest struct {
	Schedules []ScheduleDayInput `json:"schedules" validate:"required,min=1,dive"`
}

// ScheduleService owns the weekly availability workflows.
type ScheduleService struct {
	repo      scheduleRepository
	locks     saveLocker
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService builds the service.
func NewScheduleService(repo scheduleRepository, locks saveLocker, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, locks: locks, metrics: metrics, validator: validate, logger: logger}
}

// GetWeek returns the instructor's full week, always exactly 7 entries with
// inactive defaults filled in for days the store has no row for.
func (s *ScheduleService) GetWeek(ctx context.Context, instructorID string) ([]models.ScheduleDay, error) {
	stored, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly schedule")
	}
	return NewWeekPlanner(stored).Days(), nil
}

// ReplaceWeek validates the submitted week and atomically swaps the stored
// schedule for its active subset. A per-instructor save lock rejects
// concurrent replaces from duplicate gestures or parallel sessions.
func (s *ScheduleService) ReplaceWeek(ctx context.Context, instructorID string, req ReplaceWeekRequest) ([]models.ScheduleDay, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	stored, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly schedule")
	}

	planner := NewWeekPlanner(stored)
	if req.AllActive != nil {
		planner.SetAllActive(*req.AllActive)
	}
	for _, input := range req.Schedules {
		day := models.Weekday(input.DayOfWeek)
		if !models.ValidWeekday(day) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", input.DayOfWeek))
		}
		if err := planner.SetDayTime(day, FieldStartTime, input.StartTime); err != nil {
			return nil, err
		}
		if err := planner.SetDayTime(day, FieldEndTime, input.EndTime); err != nil {
			return nil, err
		}
		if err := planner.SetDayActive(day, input.IsActive); err != nil {
			return nil, err
		}
	}

	plan, err := planner.Plan()
	if err != nil {
		s.metrics.RecordSave("validation_error")
		return nil, err
	}

	if s.locks != nil {
		acquired, err := s.locks.Acquire(ctx, instructorID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to acquire save lock")
		}
		if !acquired {
			s.metrics.RecordSaveLockDenied()
			return nil, appErrors.ErrSaveInProgress
		}
		defer func() {
			if err := s.locks.Release(ctx, instructorID); err != nil {
				s.logger.Warn("release save lock", zap.String("instructor_id", instructorID), zap.Error(err))
			}
		}()
	}

	start := time.Now()
	if err := s.repo.Replace(ctx, instructorID, plan.Creates); err != nil {
		s.metrics.RecordSave("error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace weekly schedule")
	}
	s.metrics.ObserveDBQuery("schedule_replace", time.Since(start))

	s.metrics.RecordSave("success")
	s.logger.Info("weekly schedule replaced",
		zap.String("instructor_id", instructorID),
		zap.Int("active_days", len(plan.Creates)),
		zap.Int("deleted_rows", len(plan.DeleteIDs)),
	)

	return s.GetWeek(ctx, instructorID)
}

// BulkCreateWeek inserts the submitted active set without touching existing
// rows. Kept for clients that still issue their own per-row deletes first;
// unlike ReplaceWeek the overall delete-then-create sequence is not atomic.
func (s *ScheduleService) BulkCreateWeek(ctx context.Context, instructorID string, req BulkCreateWeekRequest) ([]models.ScheduleDay, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	days := make([]models.ScheduleDay, 0, len(req.Schedules))
	for _, input := range req.Schedules {
		day := models.Weekday(input.DayOfWeek)
		if !models.ValidWeekday(day) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", input.DayOfWeek))
		}
		days = append(days, models.ScheduleDay{
			DayOfWeek: day,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
			IsActive:  input.IsActive,
		})
	}

	active, err := NewWeekPlanner(days).ValidateForSave()
	if err != nil {
		return nil, err
	}

	if err := s.repo.BulkCreate(ctx, instructorID, active); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to bulk create schedule")
	}
	return active, nil
}

// DeleteDay removes a single stored day by id.
func (s *ScheduleService) DeleteDay(ctx context.Context, instructorID, id string) error {
	affected, err := s.repo.Delete(ctx, instructorID, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule day")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "schedule day not found")
	}
	return nil
}
