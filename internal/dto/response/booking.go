package response

import (
	"time"

	"sheikhdin-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	SheikhID    string               `json:"sheikhId"`
	ClientID    string               `json:"clientId"`
	EventID     string               `json:"eventId"`
	ServiceType string               `json:"serviceType"`
	StartTime   time.Time            `json:"startTime"`
	EndTime     time.Time            `json:"endTime"`
	Location    *string              `json:"location,omitempty"`
	Description *string              `json:"description,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
	Price       *float64             `json:"price,omitempty"`
	MeetingURL  string               `json:"meetingUrl"`
	Status      entity.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type BookingEnvelope struct {
	Booking BookingResponse `json:"booking"`
}

type BookingsEnvelope struct {
	Bookings []BookingResponse `json:"bookings"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		SheikhID:    b.SheikhID.String(),
		ClientID:    b.ClientID.String(),
		EventID:     b.EventID.String(),
		ServiceType: b.ServiceType,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Location:    b.Location,
		Description: b.Description,
		Notes:       b.Notes,
		Price:       b.Price,
		MeetingURL:  b.MeetingURL,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = BookingToResponse(b)
	}
	return responses
}
