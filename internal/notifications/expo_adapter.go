package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// ExpoAdapter satisfies PushSender with the Expo SDK client.
type ExpoAdapter struct {
	client *exponent.Client
}

// NewExpoAdapter wraps c, or a default client when c is nil.
func NewExpoAdapter(c *exponent.Client) *ExpoAdapter {
	if c == nil {
		c = exponent.NewClient()
	}
	return &ExpoAdapter{client: c}
}

func (a *ExpoAdapter) PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error) {
	return a.client.PublishSingle(ctx, msg)
}
