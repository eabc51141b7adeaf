package repository

import (
	"sheikhdin-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Event        EventRepository
	Booking      BookingRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Event:        NewEventRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
