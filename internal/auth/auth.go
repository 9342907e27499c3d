package auth

import (
	"errors"
	"time"
)

// TokenStoreKey is the single device storage key holding the bearer token.
const TokenStoreKey = "auth_token"

var ErrNoToken = errors.New("no auth token stored")

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	GetToken() (string, error)
	SetToken(token string) error
}

// Inspector reads the claims a client is allowed to trust for display only:
// the username the token was issued to and when it stops being accepted.
type Inspector interface {
	Inspect(token string) (*Claims, error)
}

type Claims struct {
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its exp claim. Tokens without
// an exp claim never expire on the client side.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
