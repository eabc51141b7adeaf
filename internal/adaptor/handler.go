package adaptor

import (
	"sheikhdin-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Calendar     *CalendarHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Calendar:     NewCalendarHandler(service.Calendar, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}
