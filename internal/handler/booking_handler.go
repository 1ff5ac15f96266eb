package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/drivelink/instructor-api/internal/models"
	"github.com/drivelink/instructor-api/pkg/response"
)

type bookingService interface {
	List(ctx context.Context, userID string, filter models.BookingFilter) ([]models.Booking, int, error)
	Hide(ctx context.Context, userID, bookingID string) error
	Unhide(ctx context.Context, userID, bookingID string) error
}

// BookingHandler exposes the read-only lesson feed.
type BookingHandler struct {
	service         bookingService
	defaultPageSize int
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(service bookingService, defaultPageSize int) *BookingHandler {
	if defaultPageSize < 1 {
		defaultPageSize = 50
	}
	return &BookingHandler{service: service, defaultPageSize: defaultPageSize}
}

// List godoc
// @Summary List the caller's lesson bookings
// @Tags Bookings
// @Produce json
// @Param status query string false "Booking status"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	userID := requireUserID(c)
	if userID == "" {
		return
	}

	filter := models.BookingFilter{
		Status:   models.BookingStatus(c.Query("status")),
		FromDate: c.Query("from"),
		ToDate:   c.Query("to"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", h.defaultPageSize),
	}
	if claims.Role == models.RoleStudent {
		filter.StudentID = userID
	} else {
		filter.InstructorID = userID
	}

	bookings, total, err := h.service.List(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, bookings, pagination)
}

// Hide godoc
// @Summary Hide a booking from the caller's feed
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 204
// @Router /bookings/{id}/hide [post]
func (h *BookingHandler) Hide(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	if err := h.service.Hide(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Unhide godoc
// @Summary Restore a hidden booking to the caller's feed
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 204
// @Router /bookings/{id}/hide [delete]
func (h *BookingHandler) Unhide(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	if err := h.service.Unhide(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
