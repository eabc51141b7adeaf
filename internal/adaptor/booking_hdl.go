package adaptor

import (
	"encoding/json"
	"net/http"

	"sheikhdin-booking/internal/dto/request"
	"sheikhdin-booking/internal/dto/response"
	"sheikhdin-booking/internal/usecase"
	"sheikhdin-booking/pkg/apperror"
	"sheikhdin-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	query := r.URL.Query()
	role := query.Get("type") // "sheikh", "client" or empty for both

	bookings, err := h.service.ListBookings(r.Context(), callerID,
		role, query.Get("status"), query.Get("start"), query.Get("end"))
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, response.BookingsEnvelope{Bookings: bookings})
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), callerID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseSuccess(w, response.BookingEnvelope{Booking: *booking})
}

// UpdateBookingStatus handles PATCH /api/bookings
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), callerID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, response.BookingEnvelope{Booking: *booking})
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	if appErr, ok := apperror.From(err); ok {
		h.log.Warn(operation+" rejected",
			zap.String("operation", operation),
			zap.String("reason", appErr.Message),
		)
		utils.ResponseError(w, appErr.Status, appErr.Message)
		return
	}

	h.log.Error("Failed to "+operation,
		zap.Error(err),
		zap.String("operation", operation),
	)
	utils.ResponseInternalError(w, "Internal server error")
}
