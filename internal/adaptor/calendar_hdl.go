package adaptor

import (
	"encoding/json"
	"net/http"

	"sheikhdin-booking/internal/dto/request"
	"sheikhdin-booking/internal/dto/response"
	"sheikhdin-booking/internal/usecase"
	"sheikhdin-booking/pkg/apperror"
	"sheikhdin-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	service usecase.CalendarService
	log     *zap.Logger
}

func NewCalendarHandler(service usecase.CalendarService, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log.With(zap.String("handler", "calendar")),
	}
}

// ListEvents handles GET /api/calendar
func (h *CalendarHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	query := r.URL.Query()

	// Other providers' published calendars are viewable; booking needs them.
	targetID := callerID
	if raw := query.Get("userId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid userId")
			return
		}
		targetID = parsed
	}

	events, err := h.service.ListEvents(r.Context(), targetID, query.Get("start"), query.Get("end"))
	if err != nil {
		h.handleServiceError(w, err, "list calendar events")
		return
	}

	utils.ResponseSuccess(w, response.EventsEnvelope{Events: events})
}

// CreateEvent handles POST /api/calendar
func (h *CalendarHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	event, err := h.service.CreateEvent(r.Context(), callerID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create calendar event")
		return
	}

	utils.ResponseSuccess(w, response.EventEnvelope{Event: *event})
}

// UpdateEvent handles PUT /api/calendar
func (h *CalendarHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), callerID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update calendar event")
		return
	}

	utils.ResponseSuccess(w, response.EventEnvelope{Event: *event})
}

// DeleteEvent handles DELETE /api/calendar?eventId=...
func (h *CalendarHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	eventID := r.URL.Query().Get("eventId")

	if err := h.service.DeleteEvent(r.Context(), callerID, eventID); err != nil {
		h.handleServiceError(w, err, "delete calendar event")
		return
	}

	utils.ResponseSuccess(w, response.DeleteEnvelope{Success: true})
}

// GetOverview handles GET /api/calendar/overview
func (h *CalendarHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	query := r.URL.Query()
	days, err := h.service.GetOverview(r.Context(), callerID, query.Get("start"), query.Get("end"))
	if err != nil {
		h.handleServiceError(w, err, "get calendar overview")
		return
	}

	utils.ResponseSuccess(w, response.OverviewEnvelope{Days: days})
}

func (h *CalendarHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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
