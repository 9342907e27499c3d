// Package filter narrows fetched entity lists the way the list screens do:
// a free-text search box and a set of category checkboxes.
package filter

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown category")

var (
	// Colleges are the checkboxes offered on the clubs screen.
	Colleges = []string{
		"College of Business",
		"College of Engineering",
		"College of Science",
	}

	// ClubColleges are the colleges a new club can be filed under.
	ClubColleges = []string{
		"College of Engineering",
		"College of Medicine",
		"College of Business",
	}

	DiningHalls = []string{
		"Marketplace West",
		"McNary Dining",
		"Southside Station @ Arnold",
	}
)

// Text keeps the items where any field contains query, ignoring case.
// An empty query keeps everything.
func Text[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Category keeps the items whose category is selected. An empty selection
// applies no filter.
func Category[T any](items []T, selected []string, category func(T) string) []T {
	if len(selected) == 0 {
		return append(make([]T, 0, len(items)), items...)
	}

	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[s] = struct{}{}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := set[category(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}

// Selection is a set of checkboxes over a fixed catalog.
type Selection struct {
	catalog []string
	checked map[string]bool
}

func NewSelection(catalog []string) *Selection {
	return &Selection{
		catalog: append([]string(nil), catalog...),
		checked: make(map[string]bool, len(catalog)),
	}
}

// Toggle flips one checkbox.
func (s *Selection) Toggle(name string) error {
	if !s.Known(name) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	s.checked[name] = !s.checked[name]
	return nil
}

// Check ticks one checkbox. Checking a ticked box leaves it ticked.
func (s *Selection) Check(name string) error {
	if !s.Known(name) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	s.checked[name] = true
	return nil
}

// Active lists checked categories in catalog order.
func (s *Selection) Active() []string {
	var out []string
	for _, name := range s.catalog {
		if s.checked[name] {
			out = append(out, name)
		}
	}
	return out
}

func (s *Selection) Checked(name string) bool {
	return s.checked[name]
}

func (s *Selection) Reset() {
	clear(s.checked)
}

func (s *Selection) Catalog() []string {
	return append([]string(nil), s.catalog...)
}

// Known reports whether name is in the catalog.
func (s *Selection) Known(name string) bool {
	for _, c := range s.catalog {
		if c == name {
			return true
		}
	}
	return false
}
