package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drivelink/instructor-api/internal/models"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
)

type timeOffRepoMock struct {
	periods   []models.TimeOffPeriod
	createErr error
	deleted   int64
}

func (m *timeOffRepoMock) ListByInstructor(ctx context.Context, instructorID string) ([]models.TimeOffPeriod, error) {
	out := make([]models.TimeOffPeriod, len(m.periods))
	copy(out, m.periods)
	return out, nil
}

func (m *timeOffRepoMock) Create(ctx context.Context, period *models.TimeOffPeriod) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.periods = append(m.periods, *period)
	return nil
}

func (m *timeOffRepoMock) Delete(ctx context.Context, instructorID, id string) (int64, error) {
	return m.deleted, nil
}

func TestTimeOffServiceCreate(t *testing.T) {
	repo := &timeOffRepoMock{}
	svc := NewTimeOffService(repo, validator.New(), zap.NewNop(), 366)

	period, err := svc.Create(context.Background(), "inst-1", CreateTimeOffRequest{
		StartDate: "2025-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "inst-1", period.InstructorID)
	assert.Equal(t, "2025-07-01", period.EndDate)
	assert.Equal(t, models.DefaultTimeOffReason, period.Reason)
	require.Len(t, repo.periods, 1)
}

func TestTimeOffServiceCreateConflict(t *testing.T) {
	repo := &timeOffRepoMock{periods: []models.TimeOffPeriod{
		{ID: "p-1", InstructorID: "inst-1", StartDate: "2025-06-01", EndDate: "2025-06-05"},
	}}
	svc := NewTimeOffService(repo, validator.New(), zap.NewNop(), 366)

	_, err := svc.Create(context.Background(), "inst-1", CreateTimeOffRequest{
		StartDate: "2025-06-04",
		EndDate:   "2025-06-10",
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "2025-06-01")
	require.Len(t, repo.periods, 1)
}

func TestTimeOffServiceCreateRepositoryConflict(t *testing.T) {
	repo := &timeOffRepoMock{createErr: &models.TimeOffConflictError{
		Message:  "overlaps existing time off 2025-06-01 to 2025-06-05",
		Conflict: models.TimeOffPeriod{ID: "p-1"},
	}}
	svc := NewTimeOffService(repo, validator.New(), zap.NewNop(), 366)

	_, err := svc.Create(context.Background(), "inst-1", CreateTimeOffRequest{
		StartDate: "2025-06-20",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestTimeOffServiceCreateInvalidDates(t *testing.T) {
	svc := NewTimeOffService(&timeOffRepoMock{}, validator.New(), zap.NewNop(), 366)

	_, err := svc.Create(context.Background(), "inst-1", CreateTimeOffRequest{
		StartDate: "2025-07-05",
		EndDate:   "2025-07-01",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimeOffServiceDeleteNotFound(t *testing.T) {
	svc := NewTimeOffService(&timeOffRepoMock{deleted: 0}, validator.New(), zap.NewNop(), 366)

	err := svc.Delete(context.Background(), "inst-1", "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimeOffServiceDisabledDates(t *testing.T) {
	repo := &timeOffRepoMock{periods: []models.TimeOffPeriod{
		{StartDate: "2025-01-10", EndDate: "2025-01-12"},
	}}
	svc := NewTimeOffService(repo, validator.New(), zap.NewNop(), 366)

	dates, err := svc.DisabledDates(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-10", "2025-01-11", "2025-01-12"}, dates)
}
