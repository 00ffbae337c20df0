package notify

import (
	"context"

	"github.com/mklimuk/intent-pilot/pkg/reminder"
)

// Notification is one fired reminder handed to a delivery channel.
type Notification struct {
	TriggerID  string
	Title      string
	Body       string
	CategoryID string
}

// Sender delivers a fired notification over one channel (Telegram,
// Discord, log). A send failure affects only that channel.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Dispatcher is the scheduling contract consumed by the policy
// callers and the response router. Rescheduling is
// destructive-then-additive: CancelAll first, then Schedule each
// trigger of the new set. Cancellation is all-or-nothing per call;
// there is no diff-and-patch API.
type Dispatcher interface {
	Schedule(t reminder.TriggerSpec) error
	Cancel(ids []string)
	CancelAll()
}
