package repository

import (
	"context"
	"fmt"
	"time"

	"sheikhdin-booking/internal/data/entity"
	"sheikhdin-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows List. Role restricts to one side of the booking;
// empty means either side.
type BookingFilter struct {
	UserID uuid.UUID
	Role   string // "sheikh", "client" or ""
	Status entity.BookingStatus
	Start  *time.Time
	End    *time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, notes *string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, sheikh_id, client_id, event_id, service_type,
		                      start_time, end_time, location, description, notes,
		                      price, meeting_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.SheikhID,
		booking.ClientID,
		booking.EventID,
		booking.ServiceType,
		booking.StartTime,
		booking.EndTime,
		booking.Location,
		booking.Description,
		booking.Notes,
		booking.Price,
		booking.MeetingURL,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("event_id", booking.EventID.String()),
			zap.String("client_id", booking.ClientID.String()),
		)
		return fmt.Errorf("create booking for event %s: %w", booking.EventID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, sheikh_id, client_id, event_id, service_type, start_time, end_time,
		       location, description, notes, price, meeting_url, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.SheikhID,
		&booking.ClientID,
		&booking.EventID,
		&booking.ServiceType,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Location,
		&booking.Description,
		&booking.Notes,
		&booking.Price,
		&booking.MeetingURL,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error) {
	query := `
		SELECT id, sheikh_id, client_id, event_id, service_type, start_time, end_time,
		       location, description, notes, price, meeting_url, status, created_at, updated_at
		FROM bookings
		WHERE `

	args := []interface{}{filter.UserID}
	switch filter.Role {
	case "sheikh":
		query += `sheikh_id = $1`
	case "client":
		query += `client_id = $1`
	default:
		query += `(sheikh_id = $1 OR client_id = $1)`
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Start != nil && filter.End != nil {
		args = append(args, *filter.Start, *filter.End)
		query += fmt.Sprintf(" AND start_time >= $%d AND start_time <= $%d", len(args)-1, len(args))
	}

	query += ` ORDER BY start_time DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("user_id", filter.UserID.String()),
			zap.String("role", filter.Role),
		)
		return nil, fmt.Errorf("list bookings for user %s: %w", filter.UserID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.SheikhID,
			&booking.ClientID,
			&booking.EventID,
			&booking.ServiceType,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Location,
			&booking.Description,
			&booking.Notes,
			&booking.Price,
			&booking.MeetingURL,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, notes *string) error {
	query := `
		UPDATE bookings
		SET status = $2, notes = COALESCE($3, notes), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, status, notes)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
