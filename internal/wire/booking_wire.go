package wire

import (
	"sheikhdin-booking/internal/adaptor"
	"sheikhdin-booking/internal/data/repository"
	"sheikhdin-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(repo.Session, log))

		r.Get("/api/bookings", bookingHandler.ListBookings)
		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Patch("/api/bookings", bookingHandler.UpdateBookingStatus)
	})
}
