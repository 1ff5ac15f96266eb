package models

import "time"

// BookingStatus tracks the lifecycle of a lesson booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking represents a scheduled lesson between an instructor and a student.
// The availability module never creates these; they are read-only feed data.
type Booking struct {
	ID           string        `db:"id" json:"id"`
	InstructorID string        `db:"instructor_id" json:"instructor_id"`
	StudentID    string        `db:"student_id" json:"student_id"`
	LessonDate   string        `db:"lesson_date" json:"lesson_date"`
	StartTime    string        `db:"start_time" json:"start_time"`
	EndTime      string        `db:"end_time" json:"end_time"`
	Status       BookingStatus `db:"status" json:"status"`
	PickupPoint  string        `db:"pickup_point" json:"pickup_point,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// BookingFilter describes query params for listing bookings.
type BookingFilter struct {
	InstructorID string
	StudentID    string
	Status       BookingStatus
	FromDate     string
	ToDate       string
	Page         int
	PageSize     int
}
