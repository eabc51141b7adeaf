package response

import (
	"time"

	"sheikhdin-booking/internal/data/entity"
	"sheikhdin-booking/pkg/utils"
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Data      *string   `json:"data,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationsEnvelope struct {
	Notifications []NotificationResponse `json:"notifications"`
	Pagination    PaginationMeta         `json:"pagination"`
}

type PaginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func NewNotificationsEnvelope(notifications []*entity.Notification, page, limit int, total int64) *NotificationsEnvelope {
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = NotificationToResponse(n)
	}

	return &NotificationsEnvelope{
		Notifications: responses,
		Pagination: PaginationMeta{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: utils.CalculateTotalPages(total, limit),
		},
	}
}
