package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateMeetingURL builds the deterministic video-call URL for a booked
// event. No external conferencing allocation happens; the room is derived
// from the event ID and the booking instant.
func GenerateMeetingURL(eventID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("https://meet.sheikhdin.com/%s-%d", eventID.String(), at.UnixMilli())
}
