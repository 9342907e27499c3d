// Package reviewflow drives reviews on a restaurant or club card: the editor
// modal, the card's local review cache and the rendered review rows.
package reviewflow

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"campusview/internal/domain/reviews"

	"github.com/go-playground/validator/v10"
)

var (
	ErrEmptyMessage = errors.New("review message is empty")
	ErrNotLoggedIn  = errors.New("log in to write a review")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// IDGenerator assigns ids to new reviews. The API expects the client to
// pick them.
type IDGenerator interface {
	NewID() int64
}

// RandomID draws ids uniformly from [0, 2^31).
type RandomID struct{}

func (RandomID) NewID() int64 {
	return rand.Int64N(1 << 31)
}

// Viewer is who is looking at a card.
type Viewer struct {
	Username string
	LoggedIn bool
}

// CanModify reports whether v may edit or delete r.
func CanModify(v Viewer, r reviews.Review) bool {
	return v.LoggedIn && v.Username != "" && r.User == v.Username
}

// NewPayload builds the record sent to the API.
func NewPayload(id int64, kind reviews.Kind, owner, user string, rating int, message string, now time.Time) (*reviews.Review, error) {
	r := &reviews.Review{
		ReviewID: id,
		Type:     kind,
		Owner:    owner,
		User:     user,
		Rating:   reviews.Rating(rating),
		Time:     now.UTC().Format(reviews.TimeLayout),
		Message:  message,
	}
	if err := validate.Struct(r); err != nil {
		return nil, fmt.Errorf("invalid review: %w", err)
	}
	return r, nil
}
