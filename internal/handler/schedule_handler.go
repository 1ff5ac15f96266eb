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

type scheduleService interface {
	GetWeek(ctx context.Context, instructorID string) ([]models.ScheduleDay, error)
	ReplaceWeek(ctx context.Context, instructorID string, req service.ReplaceWeekRequest) ([]models.ScheduleDay, error)
	BulkCreateWeek(ctx context.Context, instructorID string, req service.BulkCreateWeekRequest) ([]models.ScheduleDay, error)
	DeleteDay(ctx context.Context, instructorID, id string) error
}

// ScheduleHandler exposes the weekly availability endpoints.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Get godoc
// @Summary Get the weekly availability schedule
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /availability/schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	instructorID := requireUserID(c)
	if instructorID == "" {
		return
	}
	week, err := h.service.GetWeek(c.Request.Context(), instructorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, week, nil)
}

// Replace godoc
// @Summary Replace the weekly availability schedule atomically
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.ReplaceWeekRequest true "Full working week"
// @Success 200 {object} response.Envelope
// @Router /availability/schedule [put]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	instructorID := requireUserID(c)
	if instructorID == "" {
		return
	}
	var req service.ReplaceWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	week, err := h.service.ReplaceWeek(c.Request.Context(), instructorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, week, nil)
}

// BulkCreate godoc
// @Summary Bulk create schedule days (legacy create-only path)
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.BulkCreateWeekRequest true "Active schedule days"
// @Success 201 {object} response.Envelope
// @Router /availability/schedule/bulk [post]
func (h *ScheduleHandler) BulkCreate(c *gin.Context) {
	instructorID := requireUserID(c)
	if instructorID == "" {
		return
	}
	var req service.BulkCreateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	created, err := h.service.BulkCreateWeek(c.Request.Context(), instructorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Delete godoc
// @Summary Delete one stored schedule day
// @Tags Availability
// @Produce json
// @Param id path string true "Schedule day ID"
// @Success 204
// @Router /availability/schedule/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	instructorID := requireUserID(c)
	if instructorID == "" {
		return
	}
	if err := h.service.DeleteDay(c.Request.Context(), instructorID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
