package notifier

import (
	"context"
	"encoding/json"
	"time"

	"sheikhdin-booking/internal/data/entity"
	"sheikhdin-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker consumes queued notifications and persists them. It is the only
// writer of notification rows.
type Worker struct {
	srv  *asynq.Server
	repo repository.NotificationRepository
	log  *zap.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, repo repository.NotificationRepository, log *zap.Logger) *Worker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	return &Worker{
		srv:  srv,
		repo: repo,
		log:  log.With(zap.String("component", "notification_worker")),
	}
}

// Start runs the worker in the background. Delivery failures are retried by
// asynq; they never touch booking state.
func (w *Worker) Start() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotificationDeliver, w.handleDeliver)

	go func() {
		w.log.Info("Starting notification worker")
		if err := w.srv.Run(mux); err != nil {
			w.log.Error("Notification worker stopped", zap.Error(err))
		}
	}()
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) handleDeliver(ctx context.Context, task *asynq.Task) error {
	var p DeliverPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.log.Error("Invalid notification payload", zap.Error(err))
		// Malformed payloads never become valid; don't retry.
		return nil
	}

	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  p.UserID,
		Title:   p.Title,
		Message: p.Message,
		Type:    p.Type,
	}

	if len(p.Data) > 0 {
		b, err := json.Marshal(p.Data)
		if err != nil {
			w.log.Error("Failed to marshal notification data", zap.Error(err))
			return nil
		}
		data := string(b)
		notification.Data = &data
	}

	if err := w.repo.Create(ctx, notification); err != nil {
		w.log.Error("Failed to persist notification",
			zap.Error(err),
			zap.String("user_id", p.UserID.String()),
			zap.String("type", p.Type),
		)
		return err
	}

	w.log.Info("Notification delivered",
		zap.String("user_id", p.UserID.String()),
		zap.String("type", p.Type),
		zap.String("title", p.Title),
	)
	return nil
}
