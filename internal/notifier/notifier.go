package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeNotificationDeliver = "notification:deliver"

// DeliverPayload is the queued form of a notification.
type DeliverPayload struct {
	UserID  uuid.UUID         `json:"userId"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Data    map[string]string `json:"data,omitempty"`
}

// Dispatcher hands notification events off for delivery. Dispatch is
// fire-and-forget from the caller's point of view: a returned error is for
// logging only and must never roll back committed booking state.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID uuid.UUID, title, message, ntype string, data map[string]string) error
}

// AsynqDispatcher enqueues notifications on the redis-backed task queue; the
// worker in this package picks them up.
type AsynqDispatcher struct {
	client *asynq.Client
	log    *zap.Logger
}

func NewAsynqDispatcher(redisOpt asynq.RedisClientOpt, log *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{
		client: asynq.NewClient(redisOpt),
		log:    log.With(zap.String("component", "dispatcher")),
	}
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, userID uuid.UUID, title, message, ntype string, data map[string]string) error {
	payload := DeliverPayload{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    ntype,
		Data:    data,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	task := asynq.NewTask(TypeNotificationDeliver, b)
	info, err := d.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue notification for user %s: %w", userID.String(), err)
	}

	d.log.Debug("Notification enqueued",
		zap.String("task_id", info.ID),
		zap.String("user_id", userID.String()),
		zap.String("type", ntype),
	)
	return nil
}

func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
