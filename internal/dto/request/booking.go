package request

type CreateBookingRequest struct {
	SheikhID    string   `json:"sheikhId" validate:"required,uuid4"`
	EventID     string   `json:"eventId" validate:"required,uuid4"`
	ServiceType string   `json:"serviceType" validate:"required"`
	StartTime   string   `json:"startTime" validate:"required"`
	EndTime     string   `json:"endTime" validate:"required"`
	Location    *string  `json:"location,omitempty"`
	Description *string  `json:"description,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

type UpdateBookingStatusRequest struct {
	BookingID string  `json:"bookingId" validate:"required,uuid4"`
	Status    string  `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	Notes     *string `json:"notes,omitempty"`
}
