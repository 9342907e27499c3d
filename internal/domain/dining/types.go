package dining

import (
	"strings"
	"time"

	"campusview/internal/domain/reviews"
)

// MenuCategory is one station of a day's menu, e.g. "Grill - Lunch".
type MenuCategory struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Heading is the station name without the meal suffix.
func (m MenuCategory) Heading() string {
	if m.Title == "" {
		return "Untitled"
	}
	return strings.TrimSpace(strings.SplitN(m.Title, "-", 2)[0])
}

type Restaurant struct {
	Name        string                    `json:"name"`
	Image       string                    `json:"image"`
	Building    string                    `json:"building"`
	Location    string                    `json:"location"`
	DiningHall  string                    `json:"dining_hall"`
	Description string                    `json:"description"`
	Cuisine     *string                   `json:"cuisine,omitempty"`
	Schedule    map[string][]string       `json:"schedule"`
	Menu        map[string][]MenuCategory `json:"menu"`
	Reviews     *reviews.ReviewSection    `json:"reviews,omitempty"`
}

// MenuKey is how menus are keyed: full month name and zero-padded day.
func MenuKey(day time.Time) string {
	return day.Format("January 02")
}

// MenuFor returns the menu served on day, nil when none was published.
func (r Restaurant) MenuFor(day time.Time) []MenuCategory {
	return r.Menu[MenuKey(day)]
}
