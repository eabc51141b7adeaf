package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sheikhdin-booking/internal/data/entity"
	"sheikhdin-booking/internal/data/repository"
	"sheikhdin-booking/internal/dto/request"
	"sheikhdin-booking/internal/dto/response"
	"sheikhdin-booking/internal/notifier"
	"sheikhdin-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, clientID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, callerID uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, callerID uuid.UUID, role, status, start, end string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo       *repository.Repository
	dispatcher notifier.Dispatcher
	log        *zap.Logger
}

func NewBookingService(repo *repository.Repository, dispatcher notifier.Dispatcher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:       repo,
		dispatcher: dispatcher,
		log:        log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves the slot first, then persists the booking. The
// reservation is the single atomic gate: when two clients race for the same
// slot, exactly one passes.
func (s *bookingService) CreateBooking(ctx context.Context, clientID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed",
			zap.String("errors", utils.FormatValidationErrors(errs)),
		)
		return nil, ErrMissingFields
	}

	sheikhID, err := uuid.Parse(req.SheikhID)
	if err != nil {
		return nil, ErrMissingFields
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
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

	// Single conditional write; all losers of the race land here with
	// ErrEventUnavailable.
	if err := s.repo.Event.Reserve(ctx, eventID, sheikhID, clientID); err != nil {
		if errors.Is(err, repository.ErrEventUnavailable) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("reserve event: %w", err)
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SheikhID:    sheikhID,
		ClientID:    clientID,
		EventID:     eventID,
		ServiceType: req.ServiceType,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    req.Location,
		Description: req.Description,
		Notes:       req.Notes,
		Price:       req.Price,
		MeetingURL:  utils.GenerateMeetingURL(eventID, now),
		Status:      entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// Compensate: the slot was already flipped, put it back so it does
		// not stay reserved without a booking.
		if relErr := s.repo.Event.Release(ctx, eventID); relErr != nil {
			s.log.Error("Failed to release event after booking create failure",
				zap.Error(relErr),
				zap.String("event_id", eventID.String()),
			)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("event_id", eventID.String()),
		zap.String("sheikh_id", sheikhID.String()),
		zap.String("client_id", clientID.String()),
		zap.String("service_type", req.ServiceType),
	)

	s.notifyBookingRequest(ctx, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, callerID uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if req.BookingID == "" || req.Status == "" {
		return nil, ErrBookingFieldsRequired
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	newStatus := entity.BookingStatus(req.Status)
	if !newStatus.Valid() {
		return nil, ErrInvalidTransition
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	// Same answer for "does not exist" and "not yours".
	if booking == nil || !booking.IsParty(callerID) {
		return nil, ErrBookingNotFound
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.Booking.UpdateStatus(ctx, bookingID, newStatus, req.Notes); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	booking.Status = newStatus
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	// Cancellation frees the slot for a fresh reservation; CONFIRMED and
	// COMPLETED leave it held. A failed release must surface: swallowing it
	// would leave the slot held by a cancelled booking with no retry path,
	// since CANCELLED is terminal.
	if newStatus == entity.BookingStatusCancelled {
		if err := s.repo.Event.Release(ctx, booking.EventID); err != nil {
			s.log.Error("Failed to release event after cancellation",
				zap.Error(err),
				zap.String("event_id", booking.EventID.String()),
				zap.String("booking_id", bookingID.String()),
			)
			return nil, fmt.Errorf("release event after cancellation: %w", err)
		}
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", string(newStatus)),
		zap.String("caller_id", callerID.String()),
	)

	s.notifyStatusChange(ctx, booking, callerID, newStatus)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, callerID uuid.UUID, role, status, start, end string) ([]response.BookingResponse, error) {
	filter := repository.BookingFilter{
		UserID: callerID,
		Role:   role,
	}

	if status != "" {
		st := entity.BookingStatus(status)
		if !st.Valid() {
			return nil, ErrMissingFields
		}
		filter.Status = st
	}

	if start != "" && end != "" {
		from, err := utils.ParseTime(start)
		if err != nil {
			return nil, ErrInvalidTime
		}
		to, err := utils.ParseTime(end)
		if err != nil {
			return nil, ErrInvalidTime
		}
		filter.Start = &from
		filter.End = &to
	}

	bookings, err := s.repo.Booking.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("user_id", callerID.String()),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

// notifyBookingRequest tells the sheikh about the new request. Best-effort:
// a dispatch failure is logged and the booking stands.
func (s *bookingService) notifyBookingRequest(ctx context.Context, booking *entity.Booking) {
	clientName := "Someone"
	client, err := s.repo.User.FindByID(ctx, booking.ClientID)
	if err != nil {
		s.log.Warn("Failed to load client for notification", zap.Error(err))
	} else {
		clientName = client.DisplayName()
	}

	message := fmt.Sprintf("%s has requested to book your time for %s", clientName, booking.ServiceType)
	err = s.dispatcher.Dispatch(ctx, booking.SheikhID,
		"New Booking Request", message,
		entity.NotificationBookingRequest,
		map[string]string{"bookingId": booking.ID.String()},
	)
	if err != nil {
		s.log.Warn("Failed to dispatch booking request notification",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}

func (s *bookingService) notifyStatusChange(ctx context.Context, booking *entity.Booking, callerID uuid.UUID, status entity.BookingStatus) {
	title := "Booking Updated"
	switch status {
	case entity.BookingStatusConfirmed:
		title = "Booking Confirmed"
	case entity.BookingStatusCancelled:
		title = "Booking Cancelled"
	}

	message := fmt.Sprintf("Your booking for %s has been %s", booking.ServiceType, strings.ToLower(string(status)))
	err := s.dispatcher.Dispatch(ctx, booking.Counterparty(callerID),
		title, message,
		"BOOKING_"+string(status),
		map[string]string{"bookingId": booking.ID.String()},
	)
	if err != nil {
		s.log.Warn("Failed to dispatch booking status notification",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(status)),
		)
	}
}
