package clubs

import "campusview/internal/domain/reviews"

type Hours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Day struct {
	Day   string  `json:"day"`
	Hours []Hours `json:"hours"`
}

type Schedule struct {
	Days []Day `json:"days"`
}

type Club struct {
	Name        string                 `json:"name" validate:"required,max=100"`
	Image       string                 `json:"image" validate:"omitempty,url"`
	Admins      []int64                `json:"admins"`
	Schedule    Schedule               `json:"schedule"`
	Location    string                 `json:"location"`
	Link        string                 `json:"link" validate:"omitempty,url"`
	Description string                 `json:"description"`
	Reviews     *reviews.ReviewSection `json:"reviews"`
	College     string                 `json:"college" validate:"required,college"`
}

// DefaultLink is prefilled on new clubs.
const DefaultLink = "https://acm.oregonstate.edu/"

// New returns a club with the defaults the add-club form starts from.
func New(name, college string) Club {
	return Club{
		Name:    name,
		Admins:  []int64{},
		College: college,
		Schedule: Schedule{
			Days: []Day{{
				Day:   "Monday",
				Hours: []Hours{{Open: "17:00", Close: "18:00"}},
			}},
		},
		Link: DefaultLink,
		Reviews: &reviews.ReviewSection{
			Score:   0,
			Reviews: []reviews.Review{},
			Hidden:  true,
		},
	}
}
