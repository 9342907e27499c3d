// Package browse holds the state behind a list screen: the fetched entities,
// the search box and the category checkboxes.
package browse

import (
	"context"
	"fmt"
	"sync"

	"campusview/internal/filter"

	"go.uber.org/zap"
)

type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Config wires a Page to one entity type.
type Config[T any] struct {
	Name string
	// Fetch loads the full list from the API.
	Fetch FetchFunc[T]
	// Fields are the searchable strings of an entity.
	Fields func(T) []string
	// Category is the entity's value for the checkbox filter.
	Category func(T) string
	// Key identifies an entity for Find.
	Key     func(T) string
	Catalog []string
	Logger  *zap.SugaredLogger
}

// Page is safe for concurrent use. A refresh that resolves while a filter is
// being applied replaces the list and re-derives the visible set.
type Page[T any] struct {
	cfg       Config[T]
	logger    *zap.SugaredLogger
	mu        sync.RWMutex
	all       []T
	visible   []T
	query     string
	selection *filter.Selection
	// mode records which filter produced visible.
	mode mode
}

type mode int

const (
	modeNone mode = iota
	modeText
	modeCategory
	modeBoth
)

func New[T any](cfg Config[T]) *Page[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Page[T]{
		cfg:       cfg,
		logger:    logger,
		selection: filter.NewSelection(cfg.Catalog),
	}
}

// Refresh re-fetches the list and fully replaces the cached entities. On
// failure the previous list is kept.
func (p *Page[T]) Refresh(ctx context.Context) error {
	items, err := p.cfg.Fetch(ctx)
	if err != nil {
		p.logger.Errorw("failed to fetch list", "page", p.cfg.Name, "error", err)
		return fmt.Errorf("fetch %s: %w", p.cfg.Name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.all = items
	p.reapply()
	return nil
}

// Search applies the text filter to the full list.
func (p *Page[T]) Search(query string) []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = query
	p.mode = modeText
	p.reapply()
	return p.snapshot()
}

// Toggle flips one checkbox without applying it, as the modal does until
// "Apply" is pressed.
func (p *Page[T]) Toggle(category string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selection.Toggle(category)
}

// ApplySelection filters the full list by the checked categories.
func (p *Page[T]) ApplySelection() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = modeCategory
	p.reapply()
	return p.snapshot()
}

// ResetSelection unchecks everything and shows the full list.
func (p *Page[T]) ResetSelection() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection.Reset()
	p.query = ""
	p.mode = modeNone
	p.reapply()
	return p.snapshot()
}

// Query applies both filters at once: the text filter over the category
// filter's result. An unknown category leaves the page untouched.
func (p *Page[T]) Query(query string, categories []string) ([]T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, c := range categories {
		if !p.selection.Known(c) {
			return nil, fmt.Errorf("%w: %q", filter.ErrUnknownCategory, c)
		}
	}

	p.selection.Reset()
	for _, c := range categories {
		_ = p.selection.Check(c)
	}
	p.query = query
	p.mode = modeBoth
	p.reapply()
	return p.snapshot(), nil
}

func (p *Page[T]) Visible() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot()
}

func (p *Page[T]) All() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]T(nil), p.all...)
}

func (p *Page[T]) Selected() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selection.Active()
}

func (p *Page[T]) Catalog() []string {
	return p.selection.Catalog()
}

// Filtering reports whether the visible list is narrower than the full one.
func (p *Page[T]) Filtering() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.visible) != len(p.all)
}

// Find returns the first entity whose key equals key, ignoring filters.
func (p *Page[T]) Find(key string) (T, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, item := range p.all {
		if p.cfg.Key(item) == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// reapply must be called with mu held.
func (p *Page[T]) reapply() {
	switch p.mode {
	case modeText:
		p.visible = filter.Text(p.all, p.query, p.cfg.Fields)
	case modeCategory:
		p.visible = filter.Category(p.all, p.selection.Active(), p.cfg.Category)
	case modeBoth:
		byCategory := filter.Category(p.all, p.selection.Active(), p.cfg.Category)
		p.visible = filter.Text(byCategory, p.query, p.cfg.Fields)
	default:
		p.visible = append([]T(nil), p.all...)
	}
}

func (p *Page[T]) snapshot() []T {
	return append([]T(nil), p.visible...)
}
