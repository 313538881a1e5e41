package notify

import "context"

// Notifier surfaces a user-visible notification outside the app, e.g. a
// Telegram message. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

type nopNotifier struct{}

// NewNop returns a Notifier that drops every notification. Used when no
// channel is configured.
func NewNop() Notifier {
	return nopNotifier{}
}

func (nopNotifier) Notify(ctx context.Context, title, body string) error {
	return nil
}
