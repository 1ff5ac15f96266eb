package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/drivelink/instructor-api/internal/middleware"
	"github.com/drivelink/instructor-api/internal/models"
	"github.com/drivelink/instructor-api/internal/service"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
)

type scheduleServiceMock struct {
	week       []models.ScheduleDay
	err        error
	replaceReq *service.ReplaceWeekRequest
}

func (m *scheduleServiceMock) GetWeek(ctx context.Context, instructorID string) ([]models.ScheduleDay, error) {
	return m.week, m.err
}

func (m *scheduleServiceMock) ReplaceWeek(ctx context.Context, instructorID string, req service.ReplaceWeekRequest) ([]models.ScheduleDay, error) {
	m.replaceReq = &req
	return m.week, m.err
}

func (m *scheduleServiceMock) BulkCreateWeek(ctx context.Context, instructorID string, req service.BulkCreateWeekRequest) ([]models.ScheduleDay, error) {
	return m.week, m.err
}

func (m *scheduleServiceMock) DeleteDay(ctx context.Context, instructorID, id string) error {
	return m.err
}

func authedContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, target, nil)
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "inst-1", Role: models.RoleInstructor})
	return c, w
}

func TestScheduleHandlerGet(t *testing.T) {
	mockSvc := &scheduleServiceMock{week: []models.ScheduleDay{{DayOfWeek: models.Monday}}}
	h := NewScheduleHandler(mockSvc)
	c, w := authedContext(t, http.MethodGet, "/availability/schedule", nil)

	h.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleHandlerGetUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewScheduleHandler(&scheduleServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/availability/schedule", nil)
	c.Request = req

	h.Get(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestScheduleHandlerReplace(t *testing.T) {
	mockSvc := &scheduleServiceMock{week: []models.ScheduleDay{{DayOfWeek: models.Monday}}}
	h := NewScheduleHandler(mockSvc)
	body := []byte(`{"schedules":[{"day_of_week":"Monday","start_time":"09:00","end_time":"17:00","is_active":true}]}`)
	c, w := authedContext(t, http.MethodPut, "/availability/schedule", body)

	h.Replace(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockSvc.replaceReq)
	require.Len(t, mockSvc.replaceReq.Schedules, 1)
	require.Equal(t, "Monday", mockSvc.replaceReq.Schedules[0].DayOfWeek)
}

func TestScheduleHandlerReplaceMalformedBody(t *testing.T) {
	h := NewScheduleHandler(&scheduleServiceMock{})
	c, w := authedContext(t, http.MethodPut, "/availability/schedule", []byte(`{not json`))

	h.Replace(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerReplaceSaveInProgress(t *testing.T) {
	h := NewScheduleHandler(&scheduleServiceMock{err: appErrors.ErrSaveInProgress})
	body := []byte(`{"schedules":[{"day_of_week":"Monday","start_time":"09:00","end_time":"17:00","is_active":true}]}`)
	c, w := authedContext(t, http.MethodPut, "/availability/schedule", body)

	h.Replace(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestScheduleHandlerBulkCreate(t *testing.T) {
	h := NewScheduleHandler(&scheduleServiceMock{week: []models.ScheduleDay{{DayOfWeek: models.Monday}}})
	body := []byte(`{"schedules":[{"day_of_week":"Monday","start_time":"09:00","end_time":"17:00","is_active":true}]}`)
	c, w := authedContext(t, http.MethodPost, "/availability/schedule/bulk", body)

	h.BulkCreate(c)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestScheduleHandlerDeleteNotFound(t *testing.T) {
	h := NewScheduleHandler(&scheduleServiceMock{err: appErrors.ErrNotFound})
	c, w := authedContext(t, http.MethodDelete, "/availability/schedule/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.Delete(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandlerDelete(t *testing.T) {
	h := NewScheduleHandler(&scheduleServiceMock{})
	c, w := authedContext(t, http.MethodDelete, "/availability/schedule/row-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "row-1"}}

	h.Delete(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
}
