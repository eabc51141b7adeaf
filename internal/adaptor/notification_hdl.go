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

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "notification")),
	}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	query := r.URL.Query()

	var isRead *bool
	if raw := query.Get("isRead"); raw != "" {
		val := raw == "true"
		isRead = &val
	}

	page := utils.ParseInt(query.Get("page"), 1)
	limit := utils.ParseInt(query.Get("limit"), 20)

	envelope, err := h.service.ListNotifications(r.Context(), callerID, query.Get("type"), isRead, page, limit)
	if err != nil {
		if _, ok := apperror.From(err); !ok {
			h.log.Error("Failed to list notifications", zap.Error(err))
		}
		utils.ResponseFromError(w, err)
		return
	}

	utils.ResponseSuccess(w, envelope)
}

// MarkRead handles PATCH /api/notifications
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.UpdateNotificationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.MarkNotificationsRead(r.Context(), callerID, &req); err != nil {
		if _, ok := apperror.From(err); !ok {
			h.log.Error("Failed to mark notifications read", zap.Error(err))
		}
		utils.ResponseFromError(w, err)
		return
	}

	utils.ResponseSuccess(w, response.DeleteEnvelope{Success: true})
}

// Delete handles DELETE /api/notifications
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.DeleteNotificationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.DeleteNotifications(r.Context(), callerID, &req); err != nil {
		if _, ok := apperror.From(err); !ok {
			h.log.Error("Failed to delete notifications", zap.Error(err))
		}
		utils.ResponseFromError(w, err)
		return
	}

	utils.ResponseSuccess(w, response.DeleteEnvelope{Success: true})
}
