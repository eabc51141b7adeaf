package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"sheikhdin-booking/internal/data/entity"
	"sheikhdin-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory fakes backing the service tests. The event fake mirrors the
// conditional-write reservation semantics of the SQL repository so the race
// tests exercise the same gate.

type fakeEventRepo struct {
	mu         sync.Mutex
	events     map[uuid.UUID]*entity.CalendarEvent
	releaseErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*entity.CalendarEvent)}
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.CalendarEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *event
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) FindByUserAndRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.CalendarEvent
	for _, e := range f.events {
		if e.UserID != userID {
			continue
		}
		if e.StartTime.Before(end) && e.EndTime.After(start) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *entity.CalendarEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.events[event.ID]
	if !ok {
		return nil
	}
	cp := *event
	// Reservation fields are owned by Reserve and Release only.
	cp.IsBooked = existing.IsBooked
	cp.BookedBy = existing.BookedBy
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil
	}
	if e.IsBooked {
		return repository.ErrEventUnavailable
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) Reserve(_ context.Context, eventID, ownerID, clientID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok || e.UserID != ownerID || e.IsBooked || e.Status != entity.EventStatusAvailable {
		return repository.ErrEventUnavailable
	}
	e.IsBooked = true
	e.BookedBy = &clientID
	e.Status = entity.EventStatusBooked
	return nil
}

func (f *fakeEventRepo) Release(_ context.Context, eventID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.releaseErr != nil {
		return f.releaseErr
	}
	e, ok := f.events[eventID]
	if !ok {
		return nil
	}
	e.IsBooked = false
	e.BookedBy = nil
	e.Status = entity.EventStatusAvailable
	return nil
}

type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  map[uuid.UUID]*entity.Booking
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		switch filter.Role {
		case "sheikh":
			if b.SheikhID != filter.UserID {
				continue
			}
		case "client":
			if b.ClientID != filter.UserID {
				continue
			}
		default:
			if !b.IsParty(filter.UserID) {
				continue
			}
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Start != nil && b.StartTime.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && b.StartTime.After(*filter.End) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus, notes *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil
	}
	b.Status = status
	if notes != nil {
		b.Notes = notes
	}
	b.UpdatedAt = time.Now()
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *n
	f.notifications = append(f.notifications, &cp)
	return nil
}

func (f *fakeNotificationRepo) FindByUserID(_ context.Context, userID uuid.UUID, filter repository.NotificationFilter, limit, offset int) ([]*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if filter.Type != "" && n.Type != filter.Type {
			continue
		}
		if filter.IsRead != nil && n.IsRead != *filter.IsRead {
			continue
		}
		matched = append(matched, n)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idSet := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	for _, n := range f.notifications {
		if n.UserID == userID && idSet[n.ID] {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idSet := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.UserID == userID && idSet[n.ID] {
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return nil
}

func (f *fakeNotificationRepo) DeleteAll(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.UserID == userID {
			continue
		}
		kept = append(kept, n)
	}
	f.notifications = kept
	return nil
}

func (f *fakeNotificationRepo) CountByUserID(_ context.Context, userID uuid.UUID, filter repository.NotificationFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if filter.Type != "" && n.Type != filter.Type {
			continue
		}
		if filter.IsRead != nil && n.IsRead != *filter.IsRead {
			continue
		}
		count++
	}
	return count, nil
}

type dispatched struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    string
	Data    map[string]string
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []dispatched
	fail error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, userID uuid.UUID, title, message, ntype string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, dispatched{UserID: userID, Title: title, Message: message, Type: ntype, Data: data})
	return nil
}

func (f *fakeDispatcher) all() []dispatched {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dispatched, len(f.sent))
	copy(out, f.sent)
	return out
}

type testEnv struct {
	repo          *repository.Repository
	events        *fakeEventRepo
	bookings      *fakeBookingRepo
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	dispatcher    *fakeDispatcher
}

func newTestEnv() *testEnv {
	events := newFakeEventRepo()
	bookings := newFakeBookingRepo()
	users := newFakeUserRepo()
	notifications := &fakeNotificationRepo{}
	return &testEnv{
		repo: &repository.Repository{
			User:         users,
			Event:        events,
			Booking:      bookings,
			Notification: notifications,
		},
		events:        events,
		bookings:      bookings,
		users:         users,
		notifications: notifications,
		dispatcher:    &fakeDispatcher{},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func seedEvent(env *testEnv, ownerID uuid.UUID, start, end time.Time) *entity.CalendarEvent {
	event := &entity.CalendarEvent{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:    ownerID,
		Title:     "Consultation slot",
		StartTime: start,
		EndTime:   end,
		EventType: entity.EventTypeAvailability,
		Status:    entity.EventStatusAvailable,
	}
	_ = env.events.Create(context.Background(), event)
	return event
}
