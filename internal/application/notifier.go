package application

import (
	"context"
	"time"
)

const (
	EventAccountSignedUp = "account.signed_up"
	EventPasswordChanged = "account.password_changed"
)

// RequestMeta describes where a request came from. It is only used in
// notifications.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// AccountEvent is published after a use case commits. Name is masked.
type AccountEvent struct {
	Type       string
	LoginID    string
	MaskedName string
	Email      string
	Meta       RequestMeta
	OccurredAt time.Time
}

// Notifier delivers account events. Delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, ev AccountEvent) error
}
