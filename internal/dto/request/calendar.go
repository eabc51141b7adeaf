package request

import "sheikhdin-booking/internal/data/entity"

type CreateEventRequest struct {
	Title       string                 `json:"title" validate:"required"`
	Description *string                `json:"description,omitempty"`
	StartTime   string                 `json:"startTime" validate:"required"`
	EndTime     string                 `json:"endTime" validate:"required"`
	EventType   string                 `json:"eventType" validate:"required,oneof=AVAILABILITY BOOKING BREAK PERSONAL"`
	ServiceType *string                `json:"serviceType,omitempty"`
	Location    *string                `json:"location,omitempty"`
	MeetingURL  *string                `json:"meetingUrl,omitempty"`
	IsRecurring bool                   `json:"isRecurring"`
	Recurrence  *entity.RecurrenceRule `json:"recurrence,omitempty"`
}

// UpdateEventRequest is a patch: nil fields stay untouched.
type UpdateEventRequest struct {
	EventID     string                 `json:"eventId" validate:"required,uuid4"`
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	StartTime   *string                `json:"startTime,omitempty"`
	EndTime     *string                `json:"endTime,omitempty"`
	EventType   *string                `json:"eventType,omitempty"`
	ServiceType *string                `json:"serviceType,omitempty"`
	Location    *string                `json:"location,omitempty"`
	MeetingURL  *string                `json:"meetingUrl,omitempty"`
	IsRecurring *bool                  `json:"isRecurring,omitempty"`
	Recurrence  *entity.RecurrenceRule `json:"recurrence,omitempty"`
}
