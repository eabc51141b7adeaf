package usecase

import (
	"context"
	"fmt"

	"sheikhdin-booking/internal/data/repository"
	"sheikhdin-booking/internal/dto/request"
	"sheikhdin-booking/internal/dto/response"
	"sheikhdin-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService is the user-facing side of the dispatcher: listing what
// the worker has delivered, marking it read, and clearing it out.
type NotificationService interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, ntype string, isRead *bool, page, limit int) (*response.NotificationsEnvelope, error)
	MarkNotificationsRead(ctx context.Context, userID uuid.UUID, req *request.UpdateNotificationsRequest) error
	DeleteNotifications(ctx context.Context, userID uuid.UUID, req *request.DeleteNotificationsRequest) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, ntype string, isRead *bool, page, limit int) (*response.NotificationsEnvelope, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := repository.NotificationFilter{
		Type:   ntype,
		IsRead: isRead,
	}
	offset := utils.CalculateOffset(page, limit)

	notifications, err := s.repo.Notification.FindByUserID(ctx, userID, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list notifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	total, err := s.repo.Notification.CountByUserID(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("count notifications: %w", err)
	}

	return response.NewNotificationsEnvelope(notifications, page, limit, total), nil
}

// parseSelection turns a notificationIds list into UUIDs. A nil list is only
// acceptable when the all flag is set; an empty list is a valid no-op.
func parseSelection(ids []string, all bool) ([]uuid.UUID, error) {
	if all {
		return nil, nil
	}
	if ids == nil {
		return nil, ErrInvalidSelection
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidSelection
		}
		parsed = append(parsed, id)
	}
	return parsed, nil
}

func (s *notificationService) MarkNotificationsRead(ctx context.Context, userID uuid.UUID, req *request.UpdateNotificationsRequest) error {
	ids, err := parseSelection(req.NotificationIDs, req.MarkAllAsRead)
	if err != nil {
		return err
	}

	if req.MarkAllAsRead {
		err = s.repo.Notification.MarkAllRead(ctx, userID)
	} else {
		err = s.repo.Notification.MarkRead(ctx, userID, ids)
	}
	if err != nil {
		s.log.Error("Failed to mark notifications read",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("mark notifications read: %w", err)
	}

	return nil
}

func (s *notificationService) DeleteNotifications(ctx context.Context, userID uuid.UUID, req *request.DeleteNotificationsRequest) error {
	ids, err := parseSelection(req.NotificationIDs, req.DeleteAll)
	if err != nil {
		return err
	}

	if req.DeleteAll {
		err = s.repo.Notification.DeleteAll(ctx, userID)
	} else {
		err = s.repo.Notification.Delete(ctx, userID, ids)
	}
	if err != nil {
		s.log.Error("Failed to delete notifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete notifications: %w", err)
	}

	return nil
}
