package wire

import (
	"sheikhdin-booking/internal/adaptor"
	"sheikhdin-booking/internal/data/repository"
	"sheikhdin-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(repo.Session, log))

		r.Get("/api/notifications", notificationHandler.ListNotifications)
		r.Patch("/api/notifications", notificationHandler.MarkRead)
		r.Delete("/api/notifications", notificationHandler.Delete)
	})
}
