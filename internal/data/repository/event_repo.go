package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sheikhdin-booking/internal/data/entity"
	"sheikhdin-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrEventUnavailable is returned when the reservation (or guarded delete)
// precondition does not hold at write time.
var ErrEventUnavailable = errors.New("event not available")

type EventRepository interface {
	Create(ctx context.Context, event *entity.CalendarEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CalendarEvent, error)
	FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.CalendarEvent, error)
	Update(ctx context.Context, event *entity.CalendarEvent) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Reservation protocol. Reserve is the only code path allowed to set
	// is_booked; it is a single conditional write so that concurrent callers
	// cannot both succeed.
	Reserve(ctx context.Context, eventID, ownerID, clientID uuid.UUID) error
	Release(ctx context.Context, eventID uuid.UUID) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (id, user_id, title, description, start_time, end_time,
		                             event_type, service_type, location, meeting_url,
		                             is_recurring, recurrence, is_booked, booked_by, status,
		                             created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.UserID,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.EventType,
		event.ServiceType,
		event.Location,
		event.MeetingURL,
		event.IsRecurring,
		event.Recurrence,
		event.IsBooked,
		event.BookedBy,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create calendar event",
			zap.Error(err),
			zap.String("user_id", event.UserID.String()),
			zap.String("title", event.Title),
		)
		return fmt.Errorf("create calendar event: %w", err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CalendarEvent, error) {
	query := `
		SELECT id, user_id, title, description, start_time, end_time, event_type,
		       service_type, location, meeting_url, is_recurring, recurrence,
		       is_booked, booked_by, status, created_at, updated_at
		FROM calendar_events
		WHERE id = $1
	`

	var event entity.CalendarEvent
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.UserID,
		&event.Title,
		&event.Description,
		&event.StartTime,
		&event.EndTime,
		&event.EventType,
		&event.ServiceType,
		&event.Location,
		&event.MeetingURL,
		&event.IsRecurring,
		&event.Recurrence,
		&event.IsBooked,
		&event.BookedBy,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find calendar event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find calendar event by ID %s: %w", id.String(), err)
	}

	return &event, nil
}

func (r *eventRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.CalendarEvent, error) {
	// Overlap, not containment: an event counts when any part of it falls
	// inside [start, end].
	query := `
		SELECT id, user_id, title, description, start_time, end_time, event_type,
		       service_type, location, meeting_url, is_recurring, recurrence,
		       is_booked, booked_by, status, created_at, updated_at
		FROM calendar_events
		WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time ASC
	`

	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		r.log.Error("Failed to find calendar events by range",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return nil, fmt.Errorf("find calendar events by range: %w", err)
	}
	defer rows.Close()

	var events []*entity.CalendarEvent
	for rows.Next() {
		var event entity.CalendarEvent
		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Title,
			&event.Description,
			&event.StartTime,
			&event.EndTime,
			&event.EventType,
			&event.ServiceType,
			&event.Location,
			&event.MeetingURL,
			&event.IsRecurring,
			&event.Recurrence,
			&event.IsBooked,
			&event.BookedBy,
			&event.Status,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan calendar event row", zap.Error(err))
			return nil, fmt.Errorf("scan calendar event row: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.CalendarEvent) error {
	// Reservation fields (is_booked, booked_by) are deliberately absent;
	// Reserve and Release own them.
	query := `
		UPDATE calendar_events
		SET title = $2, description = $3, start_time = $4, end_time = $5,
		    event_type = $6, service_type = $7, location = $8, meeting_url = $9,
		    is_recurring = $10, recurrence = $11, status = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.EventType,
		event.ServiceType,
		event.Location,
		event.MeetingURL,
		event.IsRecurring,
		event.Recurrence,
		event.Status,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update calendar event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update calendar event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("calendar event %s not found", event.ID.String())
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// The is_booked guard also covers the window between the caller's
	// ownership check and this statement: a slot that got reserved in
	// between stays put.
	query := `DELETE FROM calendar_events WHERE id = $1 AND is_booked = false`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete calendar event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete calendar event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrEventUnavailable
	}

	r.log.Info("Calendar event deleted", zap.String("event_id", id.String()))
	return nil
}

func (r *eventRepository) Reserve(ctx context.Context, eventID, ownerID, clientID uuid.UUID) error {
	// Precondition and write are one statement. At most one concurrent
	// caller flips the row; everyone else sees zero rows affected.
	query := `
		UPDATE calendar_events
		SET is_booked = true, booked_by = $3, status = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_booked = false AND status = $5
	`

	result, err := r.db.Exec(ctx, query,
		eventID,
		ownerID,
		clientID,
		entity.EventStatusBooked,
		entity.EventStatusAvailable,
	)

	if err != nil {
		r.log.Error("Failed to reserve calendar event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.String("client_id", clientID.String()),
		)
		return fmt.Errorf("reserve calendar event %s: %w", eventID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrEventUnavailable
	}

	r.log.Info("Calendar event reserved",
		zap.String("event_id", eventID.String()),
		zap.String("client_id", clientID.String()),
	)
	return nil
}

func (r *eventRepository) Release(ctx context.Context, eventID uuid.UUID) error {
	query := `
		UPDATE calendar_events
		SET is_booked = false, booked_by = NULL, status = $2, updated_at = NOW()
		WHERE id = $1
	`

	// Idempotent: releasing an already-free event is a no-op.
	_, err := r.db.Exec(ctx, query, eventID, entity.EventStatusAvailable)
	if err != nil {
		r.log.Error("Failed to release calendar event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return fmt.Errorf("release calendar event %s: %w", eventID.String(), err)
	}

	return nil
}
