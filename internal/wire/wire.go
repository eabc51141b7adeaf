package wire

import (
	"net/http"

	"sheikhdin-booking/internal/adaptor"
	"sheikhdin-booking/internal/data/repository"
	"sheikhdin-booking/internal/notifier"
	"sheikhdin-booking/internal/usecase"
	"sheikhdin-booking/pkg/middleware"
	"sheikhdin-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, dispatcher notifier.Dispatcher, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, dispatcher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	wireCalendar(r, handler.Calendar, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireNotification(r, handler.Notification, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
