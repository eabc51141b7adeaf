package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session backs bearer-token verification. Token issuance lives in the
// identity service; this side only reads.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     string     `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
