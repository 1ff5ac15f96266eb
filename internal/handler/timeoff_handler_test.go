package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/drivelink/instructor-api/internal/models"
	"github.com/drivelink/instructor-api/internal/service"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
)

type timeOffServiceMock struct {
	periods   []models.TimeOffPeriod
	created   *models.TimeOffPeriod
	dates     []string
	err       error
	createReq *service.CreateTimeOffRequest
}

func (m *timeOffServiceMock) List(ctx context.Context, instructorID string) ([]models.TimeOffPeriod, error) {
	return m.periods, m.err
}

func (m *timeOffServiceMock) Create(ctx context.Context, instructorID string, req service.CreateTimeOffRequest) (*models.TimeOffPeriod, error) {
	m.createReq = &req
	return m.created, m.err
}

func (m *timeOffServiceMock) Delete(ctx context.Context, instructorID, id string) error {
	return m.err
}

func (m *timeOffServiceMock) DisabledDates(ctx context.Context, instructorID string) ([]string, error) {
	return m.dates, m.err
}

func TestTimeOffHandlerList(t *testing.T) {
	mockSvc := &timeOffServiceMock{periods: []models.TimeOffPeriod{{ID: "p-1"}}}
	h := NewTimeOffHandler(mockSvc)
	c, w := authedContext(t, http.MethodGet, "/availability/time-off", nil)

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestTimeOffHandlerCreate(t *testing.T) {
	mockSvc := &timeOffServiceMock{created: &models.TimeOffPeriod{ID: "p-1", StartDate: "2025-07-01", EndDate: "2025-07-01"}}
	h := NewTimeOffHandler(mockSvc)
	body := []byte(`{"start_date":"2025-07-01"}`)
	c, w := authedContext(t, http.MethodPost, "/availability/time-off", body)

	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mockSvc.createReq)
	require.Equal(t, "2025-07-01", mockSvc.createReq.StartDate)
}

func TestTimeOffHandlerCreateConflict(t *testing.T) {
	mockSvc := &timeOffServiceMock{err: appErrors.Clone(appErrors.ErrConflict, "time off conflict: overlaps existing time off 2025-06-01 to 2025-06-05")}
	h := NewTimeOffHandler(mockSvc)
	body := []byte(`{"start_date":"2025-06-04","end_date":"2025-06-10"}`)
	c, w := authedContext(t, http.MethodPost, "/availability/time-off", body)

	h.Create(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestTimeOffHandlerCreateMalformedBody(t *testing.T) {
	h := NewTimeOffHandler(&timeOffServiceMock{})
	c, w := authedContext(t, http.MethodPost, "/availability/time-off", []byte(`{`))

	h.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimeOffHandlerDelete(t *testing.T) {
	h := NewTimeOffHandler(&timeOffServiceMock{})
	c, w := authedContext(t, http.MethodDelete, "/availability/time-off/p-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p-1"}}

	h.Delete(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestTimeOffHandlerDisabledDates(t *testing.T) {
	mockSvc := &timeOffServiceMock{dates: []string{"2025-01-10", "2025-01-11"}}
	h := NewTimeOffHandler(mockSvc)
	c, w := authedContext(t, http.MethodGet, "/availability/time-off/disabled-dates", nil)

	h.DisabledDates(c)

	require.Equal(t, http.StatusOK, w.Code)
}
