package reviewflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"campusview/internal/domain/reviews"
	"campusview/internal/notifications"

	"go.uber.org/zap"
)

type CardConfig struct {
	// Kind is sent as the review type. Defaults to restaurant.
	Kind  reviews.Kind
	Owner string
	Store reviews.Store
	// Viewer is consulted on every render so a login shows up immediately.
	Viewer   func() Viewer
	IDs      IDGenerator
	Notifier notifications.Notifier
	Now      func() time.Time
	Logger   *zap.SugaredLogger
}

// Card is the detail view of one restaurant or club. It owns the review
// cache derived from the entity's embedded review section.
type Card struct {
	cfg    CardConfig
	logger *zap.SugaredLogger
	editor *Editor

	mu    sync.Mutex
	cache []reviews.Review
}

func NewCard(cfg CardConfig, section *reviews.ReviewSection) *Card {
	if cfg.Kind == "" {
		cfg.Kind = reviews.KindRestaurant
	}
	if cfg.IDs == nil {
		cfg.IDs = RandomID{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Viewer == nil {
		cfg.Viewer = func() Viewer { return Viewer{} }
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	c := &Card{cfg: cfg, logger: cfg.Logger}
	if section != nil {
		c.cache = append([]reviews.Review(nil), section.Reviews...)
	}
	c.editor = NewEditor(c.SubmitReview, cfg.Logger)
	return c
}

func (c *Card) Editor() *Editor {
	return c.editor
}

// CanCompose reports whether the add-review button is shown.
func (c *Card) CanCompose() bool {
	return c.cfg.Viewer().LoggedIn
}

// Compose opens the editor in create mode.
func (c *Card) Compose() error {
	if !c.CanCompose() {
		return ErrNotLoggedIn
	}
	c.editor.Open(nil)
	return nil
}

// EditReview stages r into the editor and opens it in edit mode.
func (c *Card) EditReview(r reviews.Review) {
	c.editor.Open(&r)
}

// SubmitReview sends the editor's text and rating. When a review is being
// edited the old record is deleted first, since the API has no update.
// The cache only changes once the create succeeds.
func (c *Card) SubmitReview(ctx context.Context, text string, rating int) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	viewer := c.cfg.Viewer()
	prior := c.editor.Editing()

	id := c.cfg.IDs.NewID()
	if prior != nil {
		id = prior.ReviewID
	}
	payload, err := NewPayload(id, c.cfg.Kind, c.cfg.Owner, viewer.Username, rating, text, c.cfg.Now())
	if err != nil {
		return err
	}

	if prior != nil {
		if err := c.cfg.Store.Delete(ctx, prior.IDString()); err != nil {
			c.logger.Errorw("failed to replace review", "owner", c.cfg.Owner, "review_id", prior.ReviewID, "error", err)
			return fmt.Errorf("replace review: %w", err)
		}
	}

	created, err := c.cfg.Store.Create(ctx, payload)
	if err != nil {
		c.logger.Errorw("failed to create review", "owner", c.cfg.Owner, "review_id", payload.ReviewID, "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	merged := make([]reviews.Review, 0, len(c.cache)+1)
	for _, r := range c.cache {
		if r.ReviewID != created.ReviewID {
			merged = append(merged, r)
		}
	}
	c.cache = append(merged, *created)
	return nil
}

// DeleteReview deletes the review with id and drops the first cached entry
// carrying it. An id that is not cached leaves the cache alone.
func (c *Card) DeleteReview(ctx context.Context, id string) error {
	if err := c.cfg.Store.Delete(ctx, id); err != nil {
		c.logger.Errorw("failed to delete review", "owner", c.cfg.Owner, "review_id", id, "error", err)
		return err
	}

	c.mu.Lock()
	for i, r := range c.cache {
		if r.IDString() == id {
			c.cache = append(c.cache[:i:i], c.cache[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	if c.cfg.Notifier != nil {
		if err := c.cfg.Notifier.Notify(ctx, notifications.ReviewDeleted(c.cfg.Owner, id)); err != nil {
			c.logger.Warnw("failed to acknowledge delete", "review_id", id, "error", err)
		}
	}
	return nil
}

func (c *Card) Reviews() []reviews.Review {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]reviews.Review(nil), c.cache...)
}

// Find returns the cached review with id.
func (c *Card) Find(id string) (reviews.Review, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.cache {
		if r.IDString() == id {
			return r, true
		}
	}
	return reviews.Review{}, false
}
