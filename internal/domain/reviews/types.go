package reviews

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Kind is the entity type a review is attached to.
type Kind string

const (
	KindRestaurant Kind = "restaurant"
	KindStudySpot  Kind = "studyspot"
	KindClub       Kind = "club"
	KindReview     Kind = "review"
)

// TimeLayout matches the ISO-8601 strings the mobile app has always sent.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Review struct {
	ReviewID int64  `json:"review_id"`
	Type     Kind   `json:"type" validate:"required,oneof=restaurant studyspot club review"`
	Owner    string `json:"owner" validate:"required"`
	User     string `json:"user" validate:"required"`
	Rating   Rating `json:"rating" validate:"min=0,max=5"`
	Time     string `json:"time"`
	Message  string `json:"message,omitempty"`
}

// IDString is the id as it appears in URLs.
func (r Review) IDString() string {
	return strconv.FormatInt(r.ReviewID, 10)
}

// Posted parses the review timestamp.
func (r Review) Posted() (time.Time, error) {
	return time.Parse(time.RFC3339, r.Time)
}

// ReviewSection is the block of reviews embedded in a club or restaurant.
type ReviewSection struct {
	Score   float64  `json:"score"`
	Reviews []Review `json:"reviews"`
	Hidden  bool     `json:"hidden"`
}

// Rating is a 0-5 star count. The server stores it as a float, so 4.0
// has to decode too.
type Rating int

func (r *Rating) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*r = Rating(math.Round(f))
	return nil
}
