package core

import (
	"context"
	"time"
)

// NotificationKind identifies the event a notification reports
type NotificationKind string

// Notification kinds
const (
	NotifyAccountApproved NotificationKind = "account_approved"
	NotifyFriendRequest   NotificationKind = "friend_request"
	NotifyRoomInvite      NotificationKind = "room_invite"
)

// Notification is a message addressed to one user
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	RecipientID uint64           `json:"recipient_id"`
	Email       string           `json:"-"`
	Subject     string           `json:"subject"`
	Body        string           `json:"body"`
	Data        map[string]any   `json:"data,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Notifier delivers notifications to users.
// Callers treat delivery as fire-and-forget and only log failures.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
