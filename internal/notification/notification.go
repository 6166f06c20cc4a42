// Package notification hands reminder and claim messages to the delivery
// pipeline. Delivery itself happens out of band; callers only learn whether
// the request was accepted.
package notification

import (
	"context"
	"time"
)

type Kind string

const (
	KindAttendanceReminder Kind = "attendance_reminder"
	KindClaimOpened        Kind = "claim_opened"
)

const (
	RoleManager    = "manager"
	RoleStudent    = "student"
	RoleCourtChair = "court_chair"
)

type Recipient struct {
	Role  string
	Name  string
	Phone string
}

type Notification struct {
	ID          string
	Kind        Kind
	Recipients  []Recipient
	Payload     map[string]string
	RequestID   string
	RequestedAt time.Time
}

// Dispatcher accepts a notification request. A returned error means the
// request was not queued; it never reflects delivery.
//
//go:generate mockgen -source=notification.go -destination=mock/notification_mock.go -package=mock
type Dispatcher interface {
	Notify(ctx context.Context, kind Kind, recipients []Recipient, payload map[string]string) error
}

// Sender performs the final delivery of a queued notification.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Roles returns the recipient roles in order, e.g. for claim.notified_to.
func Roles(recipients []Recipient) []string {
	roles := make([]string, 0, len(recipients))
	for _, r := range recipients {
		roles = append(roles, r.Role)
	}
	return roles
}
