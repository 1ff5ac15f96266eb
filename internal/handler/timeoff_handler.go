package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivelink/instructor-api/internal/models"
	"github.com/drivelink/instructor-api/internal/service"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
	"github.com/drivelink/instructor-api/pkg/response"
)

type timeOffService interface {
	List(ctx context.Context, instructorID string) ([]models.TimeOffPeriod, error)
	Create(ctx context.Context, instructorID string, req service.CreateTimeOffRequest) (*models.TimeOffPeriod, error)
	Delete(ctx context.Context, instructorID, id string) error
	DisabledDates(ctx context.Context, instructorID string) ([]string, error)
}

// TimeOffHandler exposes the time-off period endpoints.
type TimeOffHandler struct {
	service timeOffService
}

// NewTimeOffHandler constructs the handler.
func NewTimeOffHandler(service timeOffService) *TimeOffHandler {
	return &TimeOffHandler{service: service}
}

// List godoc
// @Summary List time-off periods
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /availability/time-off [get]
func (h *TimeOffHandler) List(c *gin.Context) {
	instructorID := requireUserID(c)
	if instructorID == "" {
		return
	}
	periods, err := h.service.List(c.Request.Context(), instructorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods, nil)
}

// Create godoc
// @Summary Declare a time-off period
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.CreateTimeOffRequest true "Time-off period"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /availability/time-off [post]
func (h *TimeOffHandler) Create(c *gin.Context) {
	instructorID := requireUserID(c)
	if instructorID == "" {
		return
	}
	var req service.CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time off payload"))
		return
	}
	period, err := h.service.Create(c.Request.Context(), instructorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, period)
}

// Delete godoc
// @Summary Delete a time-off period
// @Tags Availability
// @Produce json
// @Param id path string true "Time-off period ID"
// @Success 204
// @Router /availability/time-off/{id} [delete]
func (h *TimeOffHandler) Delete(c *gin.Context) {
	instructorID := requireUserID(c)
	if instructorID == "" {
		return
	}
	if err := h.service.Delete(c.Request.Context(), instructorID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DisabledDates godoc
// @Summary List calendar days already covered by time-off
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /availability/time-off/disabled-dates [get]
func (h *TimeOffHandler) DisabledDates(c *gin.Context) {
	instructorID := requireUserID(c)
	if instructorID == "" {
		return
	}
	dates, err := h.service.DisabledDates(c.Request.Context(), instructorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dates, nil)
}
