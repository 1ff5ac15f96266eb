package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/drivelink/instructor-api/internal/models"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
)

type timeOffRepository interface {
	ListByInstructor(ctx context.Context, instructorID string) ([]models.TimeOffPeriod, error)
	Create(ctx context.Context, period *models.TimeOffPeriod) error
	Delete(ctx context.Context, instructorID, id string) (int64, error)
}

// CreateTimeOffRequest carries a candidate unavailability window. EndDate
// may be omitted for a single-day period.
type CreateTimeOffRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Reason    string `json:"reason,omitempty" validate:"max=200"`
	Notes     string `json:"notes,omitempty" validate:"max=1000"`
}

// TimeOffService owns time-off declaration and removal.
type TimeOffService struct {
	repo               timeOffRepository
	validator          *validator.Validate
	logger             *zap.Logger
	disabledDatesLimit int
}

// NewTimeOffService builds the service.
func NewTimeOffService(repo timeOffRepository, validate *validator.Validate, logger *zap.Logger, disabledDatesLimit int) *TimeOffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeOffService{repo: repo, validator: validate, logger: logger, disabledDatesLimit: disabledDatesLimit}
}

// List returns the instructor's time-off periods.
func (s *TimeOffService) List(ctx context.Context, instructorID string) ([]models.TimeOffPeriod, error) {
	periods, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time off periods")
	}
	return periods, nil
}

// Create validates the candidate against the current periods and persists
// it. The repository re-checks overlap inside its insert transaction, so a
// period added by a concurrent session between the read and the write is
// still caught.
func (s *TimeOffService) Create(ctx context.Context, instructorID string, req CreateTimeOffRequest) (*models.TimeOffPeriod, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time off payload")
	}

	existing, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time off periods")
	}

	candidate := models.TimeOffPeriod{
		InstructorID: instructorID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Reason:       req.Reason,
		Notes:        req.Notes,
	}
	normalized, err := ValidateNewPeriod(candidate, existing)
	if err != nil {
		return nil, s.wrapConflict(err)
	}

	if err := s.repo.Create(ctx, &normalized); err != nil {
		var conflict *models.TimeOffConflictError
		if errors.As(err, &conflict) {
			return nil, s.wrapConflict(conflict)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create time off period")
	}

	s.logger.Info("time off created",
		zap.String("instructor_id", instructorID),
		zap.String("start_date", normalized.StartDate),
		zap.String("end_date", normalized.EndDate),
	)
	return &normalized, nil
}

// Delete removes one period by id.
func (s *TimeOffService) Delete(ctx context.Context, instructorID, id string) error {
	affected, err := s.repo.Delete(ctx, instructorID, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete time off period")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "time off period not found")
	}
	return nil
}

// DisabledDates returns every calendar day already covered by a time-off
// period, for date pickers that block re-selection.
func (s *TimeOffService) DisabledDates(ctx context.Context, instructorID string) ([]string, error) {
	periods, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time off periods")
	}
	return DisabledDates(periods, s.disabledDatesLimit), nil
}

func (s *TimeOffService) wrapConflict(err error) error {
	var conflict *models.TimeOffConflictError
	if errors.As(err, &conflict) {
		return appErrors.Wrap(conflict, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
			fmt.Sprintf("time off conflict: %s", conflict.Message))
	}
	return err
}
