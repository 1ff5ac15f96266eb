package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/drivelink/instructor-api/internal/models"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
)

type bookingRepository interface {
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error)
	FindByID(ctx context.Context, id string) (*models.Booking, error)
}

type visibilityRepository interface {
	HiddenIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	Hide(ctx context.Context, userID, bookingID string) error
	Unhide(ctx context.Context, userID, bookingID string) error
}

// BookingService exposes the read-only lesson feed with the per-user
// visibility filter. Scheduling of bookings belongs to another system.
type BookingService struct {
	repo       bookingRepository
	visibility visibilityRepository
	logger     *zap.Logger
}

// NewBookingService builds the service.
func NewBookingService(repo bookingRepository, visibility visibilityRepository, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{repo: repo, visibility: visibility, logger: logger}
}

// List returns the caller's bookings. Bookings the user has hidden are
// filtered out after the page is fetched; the hidden set is a presentation
// concern and never narrows the total count.
func (s *BookingService) List(ctx context.Context, userID string, filter models.BookingFilter) ([]models.Booking, int, error) {
	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}

	hidden, err := s.visibility.HiddenIDs(ctx, userID)
	if err != nil {
		s.logger.Warn("load hidden bookings", zap.String("user_id", userID), zap.Error(err))
		return bookings, total, nil
	}
	if len(hidden) == 0 {
		return bookings, total, nil
	}

	visible := bookings[:0]
	for _, booking := range bookings {
		if _, ok := hidden[booking.ID]; ok {
			continue
		}
		visible = append(visible, booking)
	}
	return visible, total, nil
}

// Hide adds a booking to the caller's hidden set. The booking must exist
// and belong to the caller on either side of the lesson.
func (s *BookingService) Hide(ctx context.Context, userID, bookingID string) error {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	if booking.InstructorID != userID && booking.StudentID != userID {
		return appErrors.Clone(appErrors.ErrForbidden, "booking does not belong to you")
	}

	if err := s.visibility.Hide(ctx, userID, bookingID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hide booking")
	}
	return nil
}

// Unhide removes a booking from the caller's hidden set.
func (s *BookingService) Unhide(ctx context.Context, userID, bookingID string) error {
	if err := s.visibility.Unhide(ctx, userID, bookingID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unhide booking")
	}
	return nil
}
