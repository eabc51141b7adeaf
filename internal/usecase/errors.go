package usecase

import "sheikhdin-booking/pkg/apperror"

// Domain errors, mapped to HTTP at the handler boundary. Ownership and
// party checks reuse the not-found messages so callers cannot probe for
// existence.
var (
	ErrMissingFields         = apperror.BadRequest("Missing required fields")
	ErrInvalidTimeRange      = apperror.BadRequest("endTime must be after startTime")
	ErrInvalidTime           = apperror.BadRequest("Invalid time format")
	ErrInvalidRecurrence     = apperror.BadRequest("Invalid recurrence data")
	ErrEventIDRequired       = apperror.BadRequest("Event ID is required")
	ErrEventNotFound         = apperror.NotFound("Event not found or unauthorized")
	ErrEventHasBooking       = apperror.Conflict("Event has an active booking")
	ErrSlotUnavailable       = apperror.BadRequest("Event not available for booking")
	ErrBookingFieldsRequired = apperror.BadRequest("Booking ID and status are required")
	ErrBookingNotFound       = apperror.NotFound("Booking not found or unauthorized")
	ErrInvalidTransition     = apperror.BadRequest("Invalid status transition")
	ErrInvalidSelection      = apperror.BadRequest("Invalid request")
)
