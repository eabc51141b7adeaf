package usecase

import (
	"sheikhdin-booking/internal/data/repository"
	"sheikhdin-booking/internal/notifier"

	"go.uber.org/zap"
)

type Service struct {
	Calendar     CalendarService
	Booking      BookingService
	Notification NotificationService
}

func NewService(repo *repository.Repository, dispatcher notifier.Dispatcher, log *zap.Logger) *Service {
	return &Service{
		Calendar:     NewCalendarService(repo, log),
		Booking:      NewBookingService(repo, dispatcher, log),
		Notification: NewNotificationService(repo, log),
	}
}
