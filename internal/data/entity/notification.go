package entity

import (
	"github.com/google/uuid"
)

const (
	NotificationBookingRequest   = "BOOKING_REQUEST"
	NotificationBookingConfirmed = "BOOKING_CONFIRMED"
	NotificationBookingCancelled = "BOOKING_CANCELLED"
	NotificationBookingCompleted = "BOOKING_COMPLETED"
)

// Notification is a delivered event record for a user. Rows are written by
// the dispatch worker only; delivery is best-effort and never feeds back
// into booking state.
type Notification struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	Title   string    `db:"title"`
	Message string    `db:"message"`
	Type    string    `db:"type"`
	Data    *string   `db:"data"`
	IsRead  bool      `db:"is_read"`
}
