package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeAvailability EventType = "AVAILABILITY"
	EventTypeBooking      EventType = "BOOKING"
	EventTypeBreak        EventType = "BREAK"
	EventTypePersonal     EventType = "PERSONAL"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeAvailability, EventTypeBooking, EventTypeBreak, EventTypePersonal:
		return true
	}
	return false
}

type EventStatus string

const (
	EventStatusAvailable EventStatus = "AVAILABLE"
	EventStatusBooked    EventStatus = "BOOKED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// RecurrenceRule is stored as an opaque jsonb value. It is never expanded
// into concrete event instances.
type RecurrenceRule struct {
	Frequency string     `json:"frequency"`
	Interval  int        `json:"interval"`
	Until     *time.Time `json:"until,omitempty"`
}

func (r RecurrenceRule) Valid() bool {
	switch r.Frequency {
	case "DAILY", "WEEKLY", "MONTHLY":
	default:
		return false
	}
	return r.Interval >= 1
}

// CalendarEvent is a provider-published time slot. Invariant: IsBooked is
// true iff Status is BOOKED iff exactly one non-cancelled booking references
// the event. Only EventRepository.Reserve may set IsBooked.
type CalendarEvent struct {
	BaseNoDelete
	UserID      uuid.UUID       `db:"user_id"`
	Title       string          `db:"title"`
	Description *string         `db:"description"`
	StartTime   time.Time       `db:"start_time"`
	EndTime     time.Time       `db:"end_time"`
	EventType   EventType       `db:"event_type"`
	ServiceType *string         `db:"service_type"`
	Location    *string         `db:"location"`
	MeetingURL  *string         `db:"meeting_url"`
	IsRecurring bool            `db:"is_recurring"`
	Recurrence  *RecurrenceRule `db:"recurrence"`
	IsBooked    bool            `db:"is_booked"`
	BookedBy    *uuid.UUID      `db:"booked_by"`
	Status      EventStatus     `db:"status"`
}
