package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"sheikhdin-booking/internal/data/entity"
	"sheikhdin-booking/internal/data/repository"
	"sheikhdin-booking/internal/dto/request"
	"sheikhdin-booking/internal/dto/response"
	"sheikhdin-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CalendarService interface {
	ListEvents(ctx context.Context, userID uuid.UUID, start, end string) ([]response.EventResponse, error)
	CreateEvent(ctx context.Context, userID uuid.UUID, req *request.CreateEventRequest) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, userID uuid.UUID, req *request.UpdateEventRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, userID uuid.UUID, eventID string) error

	// Read-only composition of events and bookings, grouped by day. Holds no
	// state and mutates nothing.
	GetOverview(ctx context.Context, userID uuid.UUID, start, end string) ([]response.DayOverview, error)
}

type calendarService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCalendarService(repo *repository.Repository, log *zap.Logger) CalendarService {
	return &calendarService{
		repo: repo,
		log:  log.With(zap.String("service", "calendar")),
	}
}

// parseRange applies the wide-open default when the caller sends no bounds.
func parseRange(start, end string) (time.Time, time.Time, error) {
	from := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)

	if start != "" {
		t, err := utils.ParseTime(start)
		if err != nil {
			return from, to, ErrInvalidTime
		}
		from = t
	}
	if end != "" {
		t, err := utils.ParseTime(end)
		if err != nil {
			return from, to, ErrInvalidTime
		}
		to = t
	}
	return from, to, nil
}

func (s *calendarService) ListEvents(ctx context.Context, userID uuid.UUID, start, end string) ([]response.EventResponse, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.Event.FindByUserAndRange(ctx, userID, from, to)
	if err != nil {
		s.log.Error("Failed to list calendar events",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	return response.EventsToResponse(events), nil
}

func (s *calendarService) CreateEvent(ctx context.Context, userID uuid.UUID, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed",
			zap.String("errors", utils.FormatValidationErrors(errs)),
		)
		return nil, ErrMissingFields
	}

	startTime, err := utils.ParseTime(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	endTime, err := utils.ParseTime(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidTimeRange
	}

	if req.Recurrence != nil && !req.Recurrence.Valid() {
		return nil, ErrInvalidRecurrence
	}

	now := time.Now()
	event := &entity.CalendarEvent{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		EventType:   entity.EventType(req.EventType),
		ServiceType: req.ServiceType,
		Location:    req.Location,
		MeetingURL:  req.MeetingURL,
		IsRecurring: req.IsRecurring,
		Recurrence:  req.Recurrence,
		IsBooked:    false,
		Status:      entity.EventStatusAvailable,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to create calendar event",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("create calendar event: %w", err)
	}

	s.log.Info("Calendar event created",
		zap.String("event_id", event.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("event_type", string(event.EventType)),
		zap.Time("start_time", event.StartTime),
	)

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *calendarService) UpdateEvent(ctx context.Context, userID uuid.UUID, req *request.UpdateEventRequest) (*response.EventResponse, error) {
	if req.EventID == "" {
		return nil, ErrEventIDRequired
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load calendar event: %w", err)
	}
	if event == nil || event.UserID != userID {
		return nil, ErrEventNotFound
	}

	// Apply only the provided fields.
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.StartTime != nil {
		t, err := utils.ParseTime(*req.StartTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		event.StartTime = t
	}
	if req.EndTime != nil {
		t, err := utils.ParseTime(*req.EndTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		event.EndTime = t
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.EventType != nil {
		if !entity.EventType(*req.EventType).Valid() {
			return nil, ErrMissingFields
		}
		event.EventType = entity.EventType(*req.EventType)
	}
	if req.ServiceType != nil {
		event.ServiceType = req.ServiceType
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.MeetingURL != nil {
		event.MeetingURL = req.MeetingURL
	}
	if req.IsRecurring != nil {
		event.IsRecurring = *req.IsRecurring
	}
	if req.Recurrence != nil {
		if !req.Recurrence.Valid() {
			return nil, ErrInvalidRecurrence
		}
		event.Recurrence = req.Recurrence
	}
	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update calendar event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("update calendar event: %w", err)
	}

	s.log.Info("Calendar event updated",
		zap.String("event_id", eventID.String()),
		zap.String("user_id", userID.String()),
	)

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, userID uuid.UUID, eventIDStr string) error {
	if eventIDStr == "" {
		return ErrEventIDRequired
	}

	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return ErrEventNotFound
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load calendar event: %w", err)
	}
	if event == nil || event.UserID != userID {
		return ErrEventNotFound
	}

	// A slot with an active booking cannot be deleted; cancel the booking
	// first. The repository keeps the same guard in the DELETE itself, so a
	// reservation landing between this check and the delete also wins.
	if event.IsBooked {
		return ErrEventHasBooking
	}

	if err := s.repo.Event.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventUnavailable) {
			return ErrEventHasBooking
		}
		s.log.Error("Failed to delete calendar event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return fmt.Errorf("delete calendar event: %w", err)
	}

	return nil
}

func (s *calendarService) GetOverview(ctx context.Context, userID uuid.UUID, start, end string) ([]response.DayOverview, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.Event.FindByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load events for overview: %w", err)
	}

	bookings, err := s.repo.Booking.List(ctx, repository.BookingFilter{
		UserID: userID,
		Role:   "sheikh",
		Start:  &from,
		End:    &to,
	})
	if err != nil {
		return nil, fmt.Errorf("load bookings for overview: %w", err)
	}

	// Active bookings indexed by slot. Cancelled ones no longer hold the
	// event, so they stay out of the view.
	bookingByEvent := make(map[uuid.UUID]*entity.Booking, len(bookings))
	for _, b := range bookings {
		if b.Status != entity.BookingStatusCancelled {
			bookingByEvent[b.EventID] = b
		}
	}

	byDay := make(map[string][]response.OverviewEntry)
	for _, e := range events {
		entry := response.OverviewEntry{
			EventID:     e.ID.String(),
			Title:       e.Title,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			EventType:   e.EventType,
			Status:      e.Status,
			ServiceType: e.ServiceType,
		}
		if b, ok := bookingByEvent[e.ID]; ok {
			bookingID := b.ID.String()
			entry.BookingID = &bookingID
		}

		day := e.StartTime.Format("2006-01-02")
		byDay[day] = append(byDay[day], entry)
	}

	days := make([]response.DayOverview, 0, len(byDay))
	for day, entries := range byDay {
		days = append(days, response.DayOverview{Date: day, Entries: entries})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days, nil
}
