package wire

import (
	"sheikhdin-booking/internal/adaptor"
	"sheikhdin-booking/internal/data/repository"
	"sheikhdin-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCalendar(
	r chi.Router,
	calendarHandler *adaptor.CalendarHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(repo.Session, log))

		r.Get("/api/calendar", calendarHandler.ListEvents)
		r.Post("/api/calendar", calendarHandler.CreateEvent)
		r.Put("/api/calendar", calendarHandler.UpdateEvent)
		r.Delete("/api/calendar", calendarHandler.DeleteEvent)
		r.Get("/api/calendar/overview", calendarHandler.GetOverview)
	})
}
