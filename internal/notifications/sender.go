package notifications

import (
	"context"
	"errors"

	"github.com/9ssi7/exponent"
)

// PushSender delivers one push message. It is tied to the exponent SDK types.
type PushSender interface {
	PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error)
}

// Notice is an alert or acknowledgment shown to the user.
type Notice struct {
	Title string
	Body  string
	// Data travels with a push so the app can route to a screen.
	Data map[string]string
}

type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// Fanout delivers a notice to every notifier and joins their errors.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notice) error {
	var errs []error
	for _, notifier := range f {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
