package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"sheikhdin-booking/internal/data/entity"
	"sheikhdin-booking/internal/dto/request"
	"sheikhdin-booking/pkg/apperror"

	"github.com/google/uuid"
)

func validBookingRequest(event *entity.CalendarEvent, sheikhID uuid.UUID) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		SheikhID:    sheikhID.String(),
		EventID:     event.ID.String(),
		ServiceType: "QURAN_LESSON",
		StartTime:   event.StartTime.Format(time.RFC3339),
		EndTime:     event.EndTime.Format(time.RFC3339),
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	clientID := uuid.New()
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	event := seedEvent(env, sheikhID, start, start.Add(time.Hour))

	resp, err := svc.CreateBooking(ctx, clientID, validBookingRequest(event, sheikhID))
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if resp.Status != entity.BookingStatusPending {
		t.Errorf("new booking status = %s, want PENDING", resp.Status)
	}
	if !strings.HasPrefix(resp.MeetingURL, "https://meet.sheikhdin.com/"+event.ID.String()+"-") {
		t.Errorf("unexpected meeting URL %q", resp.MeetingURL)
	}

	stored, _ := env.events.FindByID(ctx, event.ID)
	if !stored.IsBooked || stored.Status != entity.EventStatusBooked {
		t.Errorf("event not marked booked: isBooked=%v status=%s", stored.IsBooked, stored.Status)
	}
	if stored.BookedBy == nil || *stored.BookedBy != clientID {
		t.Errorf("event bookedBy = %v, want %s", stored.BookedBy, clientID)
	}

	sent := env.dispatcher.all()
	if len(sent) != 1 {
		t.Fatalf("dispatched %d notifications, want 1", len(sent))
	}
	if sent[0].UserID != sheikhID {
		t.Errorf("notification went to %s, want sheikh %s", sent[0].UserID, sheikhID)
	}
	if sent[0].Type != entity.NotificationBookingRequest {
		t.Errorf("notification type = %s, want %s", sent[0].Type, entity.NotificationBookingRequest)
	}
}

func TestCreateBookingSlotTaken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	start := time.Now().Add(24 * time.Hour)
	event := seedEvent(env, sheikhID, start, start.Add(time.Hour))

	if _, err := svc.CreateBooking(ctx, uuid.New(), validBookingRequest(event, sheikhID)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := svc.CreateBooking(ctx, uuid.New(), validBookingRequest(event, sheikhID))
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("second booking error = %v, want ErrSlotUnavailable", err)
	}
}

// Concurrent clients racing for one slot: exactly one reservation wins.
func TestCreateBookingConcurrent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	start := time.Now().Add(24 * time.Hour)
	event := seedEvent(env, sheikhID, start, start.Add(time.Hour))

	const clients = 20
	var wg sync.WaitGroup
	results := make(chan error, clients)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(ctx, uuid.New(), validBookingRequest(event, sheikhID))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrSlotUnavailable):
			lost++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("winners = %d, want exactly 1", won)
	}
	if lost != clients-1 {
		t.Errorf("losers = %d, want %d", lost, clients-1)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	tests := []struct {
		name string
		req  *request.CreateBookingRequest
	}{
		{"empty request", &request.CreateBookingRequest{}},
		{"missing sheikh", &request.CreateBookingRequest{
			EventID:     uuid.New().String(),
			ServiceType: "QURAN_LESSON",
			StartTime:   "2026-09-01T10:00:00Z",
			EndTime:     "2026-09-01T11:00:00Z",
		}},
		{"malformed event id", &request.CreateBookingRequest{
			SheikhID:    uuid.New().String(),
			EventID:     "not-a-uuid",
			ServiceType: "QURAN_LESSON",
			StartTime:   "2026-09-01T10:00:00Z",
			EndTime:     "2026-09-01T11:00:00Z",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(ctx, uuid.New(), tt.req)
			if !errors.Is(err, ErrMissingFields) {
				t.Errorf("error = %v, want ErrMissingFields", err)
			}
		})
	}
}

// A failed insert after a successful reservation must put the slot back.
func TestCreateBookingReleasesOnFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.bookings.createErr = errors.New("insert failed")
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	start := time.Now().Add(24 * time.Hour)
	event := seedEvent(env, sheikhID, start, start.Add(time.Hour))

	if _, err := svc.CreateBooking(ctx, uuid.New(), validBookingRequest(event, sheikhID)); err == nil {
		t.Fatal("expected error when booking insert fails")
	}

	stored, _ := env.events.FindByID(ctx, event.ID)
	if stored.IsBooked || stored.Status != entity.EventStatusAvailable {
		t.Errorf("slot not released after failed insert: isBooked=%v status=%s", stored.IsBooked, stored.Status)
	}
	if len(env.dispatcher.all()) != 0 {
		t.Error("notification dispatched for a booking that was never created")
	}
}

func seedBooking(env *testEnv, sheikhID, clientID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	start := time.Now().Add(24 * time.Hour)
	event := seedEvent(env, sheikhID, start, start.Add(time.Hour))
	_ = env.events.Reserve(context.Background(), event.ID, sheikhID, clientID)

	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		SheikhID:    sheikhID,
		ClientID:    clientID,
		EventID:     event.ID,
		ServiceType: "QURAN_LESSON",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Status:      status,
	}
	_ = env.bookings.Create(context.Background(), booking)
	return booking
}

func TestUpdateBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from    entity.BookingStatus
		to      entity.BookingStatus
		allowed bool
	}{
		{entity.BookingStatusPending, entity.BookingStatusConfirmed, true},
		{entity.BookingStatusPending, entity.BookingStatusCancelled, true},
		{entity.BookingStatusPending, entity.BookingStatusCompleted, true},
		{entity.BookingStatusConfirmed, entity.BookingStatusCancelled, true},
		{entity.BookingStatusConfirmed, entity.BookingStatusCompleted, true},
		{entity.BookingStatusConfirmed, entity.BookingStatusPending, false},
		{entity.BookingStatusCancelled, entity.BookingStatusPending, false},
		{entity.BookingStatusCancelled, entity.BookingStatusConfirmed, false},
		{entity.BookingStatusCompleted, entity.BookingStatusCancelled, false},
		{entity.BookingStatusCompleted, entity.BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			env := newTestEnv()
			svc := NewBookingService(env.repo, env.dispatcher, testLogger())

			sheikhID := uuid.New()
			booking := seedBooking(env, sheikhID, uuid.New(), tt.from)

			resp, err := svc.UpdateBookingStatus(context.Background(), sheikhID, &request.UpdateBookingStatusRequest{
				BookingID: booking.ID.String(),
				Status:    string(tt.to),
			})

			if tt.allowed {
				if err != nil {
					t.Fatalf("transition rejected: %v", err)
				}
				if resp.Status != tt.to {
					t.Errorf("status = %s, want %s", resp.Status, tt.to)
				}
			} else if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("error = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestUpdateBookingStatusCancelReleasesSlot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	clientID := uuid.New()
	booking := seedBooking(env, sheikhID, clientID, entity.BookingStatusConfirmed)

	if _, err := svc.UpdateBookingStatus(ctx, clientID, &request.UpdateBookingStatusRequest{
		BookingID: booking.ID.String(),
		Status:    string(entity.BookingStatusCancelled),
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	event, _ := env.events.FindByID(ctx, booking.EventID)
	if event.IsBooked || event.Status != entity.EventStatusAvailable {
		t.Errorf("slot not released after cancel: isBooked=%v status=%s", event.IsBooked, event.Status)
	}

	// The freed slot accepts a fresh reservation.
	if err := env.events.Reserve(ctx, booking.EventID, sheikhID, uuid.New()); err != nil {
		t.Errorf("released slot rejected a new reservation: %v", err)
	}
}

// A cancel whose slot release fails must not report success: the caller
// cannot retry a terminal CANCELLED booking, so the failure has to surface.
func TestUpdateBookingStatusCancelReleaseFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.events.releaseErr = errors.New("connection reset")
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	booking := seedBooking(env, sheikhID, uuid.New(), entity.BookingStatusConfirmed)

	_, err := svc.UpdateBookingStatus(ctx, sheikhID, &request.UpdateBookingStatusRequest{
		BookingID: booking.ID.String(),
		Status:    string(entity.BookingStatusCancelled),
	})
	if err == nil {
		t.Fatal("cancel reported success with the slot still held")
	}
	if _, ok := apperror.From(err); ok {
		t.Errorf("storage failure mapped to a client error: %v", err)
	}
	if len(env.dispatcher.all()) != 0 {
		t.Error("notification dispatched for a cancel that did not complete")
	}
}

func TestUpdateBookingStatusCompleteKeepsSlot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	booking := seedBooking(env, sheikhID, uuid.New(), entity.BookingStatusConfirmed)

	if _, err := svc.UpdateBookingStatus(ctx, sheikhID, &request.UpdateBookingStatusRequest{
		BookingID: booking.ID.String(),
		Status:    string(entity.BookingStatusCompleted),
	}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	event, _ := env.events.FindByID(ctx, booking.EventID)
	if !event.IsBooked {
		t.Error("completed booking released the slot")
	}
}

func TestUpdateBookingStatusAuthorization(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	booking := seedBooking(env, uuid.New(), uuid.New(), entity.BookingStatusPending)

	// A third party gets the same answer as a missing booking.
	_, err := svc.UpdateBookingStatus(ctx, uuid.New(), &request.UpdateBookingStatusRequest{
		BookingID: booking.ID.String(),
		Status:    string(entity.BookingStatusConfirmed),
	})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("outsider error = %v, want ErrBookingNotFound", err)
	}

	_, err = svc.UpdateBookingStatus(ctx, uuid.New(), &request.UpdateBookingStatusRequest{
		BookingID: uuid.New().String(),
		Status:    string(entity.BookingStatusConfirmed),
	})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("missing booking error = %v, want ErrBookingNotFound", err)
	}
}

func TestUpdateBookingStatusRequiredFields(t *testing.T) {
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	_, err := svc.UpdateBookingStatus(context.Background(), uuid.New(), &request.UpdateBookingStatusRequest{})
	if !errors.Is(err, ErrBookingFieldsRequired) {
		t.Fatalf("error = %v, want ErrBookingFieldsRequired", err)
	}
}

func TestUpdateBookingStatusNotifiesCounterparty(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	clientID := uuid.New()
	booking := seedBooking(env, sheikhID, clientID, entity.BookingStatusPending)

	if _, err := svc.UpdateBookingStatus(ctx, sheikhID, &request.UpdateBookingStatusRequest{
		BookingID: booking.ID.String(),
		Status:    string(entity.BookingStatusConfirmed),
	}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	sent := env.dispatcher.all()
	if len(sent) != 1 {
		t.Fatalf("dispatched %d notifications, want 1", len(sent))
	}
	if sent[0].UserID != clientID {
		t.Errorf("notification went to %s, want client %s", sent[0].UserID, clientID)
	}
	if sent[0].Title != "Booking Confirmed" {
		t.Errorf("title = %q, want %q", sent[0].Title, "Booking Confirmed")
	}
	if sent[0].Type != entity.NotificationBookingConfirmed {
		t.Errorf("type = %s, want %s", sent[0].Type, entity.NotificationBookingConfirmed)
	}
}

// A dispatch failure never fails the booking operation itself.
func TestBookingSurvivesDispatchFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.dispatcher.fail = errors.New("queue down")
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	start := time.Now().Add(24 * time.Hour)
	event := seedEvent(env, sheikhID, start, start.Add(time.Hour))

	if _, err := svc.CreateBooking(ctx, uuid.New(), validBookingRequest(event, sheikhID)); err != nil {
		t.Fatalf("CreateBooking failed on dispatch error: %v", err)
	}
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewBookingService(env.repo, env.dispatcher, testLogger())

	sheikhID := uuid.New()
	clientID := uuid.New()
	seedBooking(env, sheikhID, clientID, entity.BookingStatusPending)
	seedBooking(env, sheikhID, uuid.New(), entity.BookingStatusConfirmed)
	seedBooking(env, uuid.New(), clientID, entity.BookingStatusCancelled)

	asSheikh, err := svc.ListBookings(ctx, sheikhID, "sheikh", "", "", "")
	if err != nil {
		t.Fatalf("ListBookings(sheikh) failed: %v", err)
	}
	if len(asSheikh) != 2 {
		t.Errorf("sheikh sees %d bookings, want 2", len(asSheikh))
	}

	asClient, err := svc.ListBookings(ctx, clientID, "client", "", "", "")
	if err != nil {
		t.Fatalf("ListBookings(client) failed: %v", err)
	}
	if len(asClient) != 2 {
		t.Errorf("client sees %d bookings, want 2", len(asClient))
	}

	pending, err := svc.ListBookings(ctx, sheikhID, "sheikh", "PENDING", "", "")
	if err != nil {
		t.Fatalf("ListBookings(status) failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Status != "PENDING" {
		t.Errorf("status filter returned %d bookings", len(pending))
	}

	if _, err := svc.ListBookings(ctx, sheikhID, "sheikh", "NONSENSE", "", ""); !errors.Is(err, ErrMissingFields) {
		t.Errorf("invalid status error = %v, want ErrMissingFields", err)
	}
}
