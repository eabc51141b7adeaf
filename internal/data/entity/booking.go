package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo is the full transition table. CANCELLED and COMPLETED are
// terminal; every pair not allowed here is rejected.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed ||
			target == BookingStatusCancelled ||
			target == BookingStatusCompleted
	case BookingStatusConfirmed:
		return target == BookingStatusCancelled ||
			target == BookingStatusCompleted
	}
	return false
}

// Booking is a client's reservation of a calendar event. It references
// exactly one event, is created only through a successful reservation, and
// is never deleted, only transitioned.
type Booking struct {
	BaseNoDelete
	SheikhID    uuid.UUID     `db:"sheikh_id"`
	ClientID    uuid.UUID     `db:"client_id"`
	EventID     uuid.UUID     `db:"event_id"`
	ServiceType string        `db:"service_type"`
	StartTime   time.Time     `db:"start_time"`
	EndTime     time.Time     `db:"end_time"`
	Location    *string       `db:"location"`
	Description *string       `db:"description"`
	Notes       *string       `db:"notes"`
	Price       *float64      `db:"price"`
	MeetingURL  string        `db:"meeting_url"`
	Status      BookingStatus `db:"status"`
}

// IsParty reports whether userID is the booking's sheikh or client.
func (b *Booking) IsParty(userID uuid.UUID) bool {
	return b.SheikhID == userID || b.ClientID == userID
}

// Counterparty returns the other side of the booking relative to userID.
func (b *Booking) Counterparty(userID uuid.UUID) uuid.UUID {
	if b.SheikhID == userID {
		return b.ClientID
	}
	return b.SheikhID
}
