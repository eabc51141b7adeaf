package repository

import (
	"context"
	"fmt"

	"sheikhdin-booking/internal/data/entity"
	"sheikhdin-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationFilter narrows FindByUserID. Type and IsRead are optional.
type NotificationFilter struct {
	Type   string
	IsRead *bool
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByUserID(ctx context.Context, userID uuid.UUID, filter NotificationFilter, limit, offset int) ([]*entity.Notification, error)
	CountByUserID(ctx context.Context, userID uuid.UUID, filter NotificationFilter) (int64, error)

	// All write-backs are scoped to the owning user; IDs belonging to someone
	// else simply do not match.
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, type, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
		notification.Data,
		notification.IsRead,
		notification.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("user_id", notification.UserID.String()),
			zap.String("type", notification.Type),
		)
		return fmt.Errorf("create notification for user %s: %w", notification.UserID.String(), err)
	}

	return nil
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter NotificationFilter, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, data, is_read, created_at
		FROM notifications
		WHERE user_id = $1
	`

	args := []interface{}{userID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.IsRead != nil {
		args = append(args, *filter.IsRead)
		query += fmt.Sprintf(" AND is_read = $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find notifications by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find notifications by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var notification entity.Notification
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Title,
			&notification.Message,
			&notification.Type,
			&notification.Data,
			&notification.IsRead,
			&notification.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan notification row", zap.Error(err))
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE notifications SET is_read = true WHERE user_id = $1 AND id = ANY($2)`

	_, err := r.db.Exec(ctx, query, userID, ids)
	if err != nil {
		r.log.Error("Failed to mark notifications read",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("count", len(ids)),
		)
		return fmt.Errorf("mark notifications read for user %s: %w", userID.String(), err)
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to mark all notifications read",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("mark all notifications read for user %s: %w", userID.String(), err)
	}

	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM notifications WHERE user_id = $1 AND id = ANY($2)`

	_, err := r.db.Exec(ctx, query, userID, ids)
	if err != nil {
		r.log.Error("Failed to delete notifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("count", len(ids)),
		)
		return fmt.Errorf("delete notifications for user %s: %w", userID.String(), err)
	}

	return nil
}

func (r *notificationRepository) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM notifications WHERE user_id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to delete all notifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete all notifications for user %s: %w", userID.String(), err)
	}

	return nil
}

func (r *notificationRepository) CountByUserID(ctx context.Context, userID uuid.UUID, filter NotificationFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`

	args := []interface{}{userID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.IsRead != nil {
		args = append(args, *filter.IsRead)
		query += fmt.Sprintf(" AND is_read = $%d", len(args))
	}

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count notifications by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count notifications by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}
