package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/9ssi7/exponent"
)

var ErrNoPushToken = errors.New("no push token")

// ExpoNotifier pushes notices to one device through the Expo push service.
type ExpoNotifier struct {
	push  PushSender
	token string
}

func NewExpoNotifier(push PushSender, deviceToken string) *ExpoNotifier {
	return &ExpoNotifier{push: push, token: deviceToken}
}

func (e *ExpoNotifier) Notify(ctx context.Context, n Notice) error {
	if e.token == "" {
		return ErrNoPushToken
	}

	//wrap the string token in exponent.Token
	token := exponent.Token(e.token)
	msg := &exponent.Message{
		To:    []*exponent.Token{&token},
		Title: n.Title,
		Body:  n.Body,
		Data:  n.Data,
	}

	if _, err := e.push.PublishSingle(ctx, msg); err != nil {
		return fmt.Errorf("push %q: %w", n.Title, err)
	}
	return nil
}
