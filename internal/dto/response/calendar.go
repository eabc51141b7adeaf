package response

import (
	"time"

	"sheikhdin-booking/internal/data/entity"
)

type EventResponse struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"userId"`
	Title       string                 `json:"title"`
	Description *string                `json:"description,omitempty"`
	StartTime   time.Time              `json:"startTime"`
	EndTime     time.Time              `json:"endTime"`
	EventType   entity.EventType       `json:"eventType"`
	ServiceType *string                `json:"serviceType,omitempty"`
	Location    *string                `json:"location,omitempty"`
	MeetingURL  *string                `json:"meetingUrl,omitempty"`
	IsRecurring bool                   `json:"isRecurring"`
	Recurrence  *entity.RecurrenceRule `json:"recurrence,omitempty"`
	IsBooked    bool                   `json:"isBooked"`
	BookedBy    *string                `json:"bookedBy,omitempty"`
	Status      entity.EventStatus     `json:"status"`
	CreatedAt   time.Time              `json:"createdAt"`
}

type EventEnvelope struct {
	Event EventResponse `json:"event"`
}

type EventsEnvelope struct {
	Events []EventResponse `json:"events"`
}

type DeleteEnvelope struct {
	Success bool `json:"success"`
}

// OverviewEntry is one rendered row of the calendar view: a slot, plus the
// booking that holds it when there is one.
type OverviewEntry struct {
	EventID     string             `json:"eventId"`
	Title       string             `json:"title"`
	StartTime   time.Time          `json:"startTime"`
	EndTime     time.Time          `json:"endTime"`
	EventType   entity.EventType   `json:"eventType"`
	Status      entity.EventStatus `json:"status"`
	BookingID   *string            `json:"bookingId,omitempty"`
	ServiceType *string            `json:"serviceType,omitempty"`
}

type DayOverview struct {
	Date    string          `json:"date"`
	Entries []OverviewEntry `json:"entries"`
}

type OverviewEnvelope struct {
	Days []DayOverview `json:"days"`
}

func EventToResponse(e *entity.CalendarEvent) EventResponse {
	resp := EventResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID.String(),
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		EventType:   e.EventType,
		ServiceType: e.ServiceType,
		Location:    e.Location,
		MeetingURL:  e.MeetingURL,
		IsRecurring: e.IsRecurring,
		Recurrence:  e.Recurrence,
		IsBooked:    e.IsBooked,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
	}
	if e.BookedBy != nil {
		bookedBy := e.BookedBy.String()
		resp.BookedBy = &bookedBy
	}
	return resp
}

func EventsToResponse(events []*entity.CalendarEvent) []EventResponse {
	responses := make([]EventResponse, len(events))
	for i, e := range events {
		responses[i] = EventToResponse(e)
	}
	return responses
}
