package core

import (
	"context"
	"time"
)

// PresenceTracker records when users were last active
type PresenceTracker interface {
	// Touch marks the user as active now
	Touch(ctx context.Context, userID uint64) error
	// LastSeen returns the last activity time, or the zero time if unknown
	LastSeen(ctx context.Context, userID uint64) (time.Time, error)
}
