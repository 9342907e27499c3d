package reviewflow

import (
	"context"
	"strings"
	"sync"

	"campusview/internal/domain/reviews"

	"go.uber.org/zap"
)

const MaxStars = 5

// SubmitFunc receives the editor's raw text and rating.
type SubmitFunc func(ctx context.Context, text string, rating int) error

// Editor is the create/edit review modal.
type Editor struct {
	mu       sync.Mutex
	visible  bool
	editing  *reviews.Review
	text     string
	rating   int
	onSubmit SubmitFunc
	logger   *zap.SugaredLogger
}

func NewEditor(onSubmit SubmitFunc, logger *zap.SugaredLogger) *Editor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Editor{onSubmit: onSubmit, logger: logger}
}

// Open shows the modal. A non-nil existing review puts it in edit mode
// with the buffers pre-populated.
func (e *Editor) Open(existing *reviews.Review) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.visible = true
	if existing == nil {
		e.editing = nil
		return
	}
	r := *existing
	e.editing = &r
	e.text = r.Message
	e.rating = int(r.Rating)
}

// Close hides the modal and leaves edit mode. Buffers are kept.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = false
	e.editing = nil
}

func (e *Editor) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

// SetRating clamps to 0..MaxStars.
func (e *Editor) SetRating(rating int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rating = min(max(rating, 0), MaxStars)
}

// SelectStar handles a tap on star i (0-based): the rating becomes i+1.
func (e *Editor) SelectStar(i int) {
	if i < 0 || i >= MaxStars {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rating = i + 1
}

// Submit hands the buffers to the submit callback. Whitespace-only text is
// rejected before anything is sent. On failure the modal stays open with
// its buffers intact.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()
	text, rating := e.text, e.rating
	e.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	if err := e.onSubmit(ctx, text, rating); err != nil {
		e.logger.Errorw("failed to submit review", "rating", rating, "error", err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = ""
	e.rating = 0
	e.visible = false
	e.editing = nil
	return nil
}

func (e *Editor) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *Editor) Rating() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rating
}

// Editing returns the review being edited, or nil in create mode.
func (e *Editor) Editing() *reviews.Review {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing == nil {
		return nil
	}
	r := *e.editing
	return &r
}

func (e *Editor) Title() string {
	if e.Editing() != nil {
		return "Edit Review"
	}
	return "Add Review"
}

func (e *Editor) SubmitLabel() string {
	if e.Editing() != nil {
		return "Update"
	}
	return "Submit"
}

// Stars renders the star control, filled up to the current rating.
func (e *Editor) Stars() string {
	return Stars(e.Rating())
}

func Stars(rating int) string {
	rating = min(max(rating, 0), MaxStars)
	return strings.Repeat("★", rating) + strings.Repeat("☆", MaxStars-rating)
}
