package reviews

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview_DecodesServerFloats(t *testing.T) {
	var section ReviewSection
	raw := `{"score":4.5,"hidden":false,"reviews":[
		{"review_id":3,"type":"restaurant","owner":"Ring of Fire","user":"a","rating":4.0,"time":"2024-11-04T18:25:43.511Z"},
		{"review_id":4,"type":"restaurant","owner":"Ring of Fire","user":"b","rating":5,"time":"2024-11-05T10:00:00Z","message":"spicy"}
	]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &section))

	require.Len(t, section.Reviews, 2)
	assert.Equal(t, Rating(4), section.Reviews[0].Rating)
	assert.Equal(t, "", section.Reviews[0].Message)
	assert.Equal(t, "spicy", section.Reviews[1].Message)
	assert.Equal(t, "3", section.Reviews[0].IDString())

	posted, err := section.Reviews[0].Posted()
	require.NoError(t, err)
	assert.Equal(t, 511, posted.Nanosecond()/1e6)
}

func TestRating_RejectsStrings(t *testing.T) {
	var r Rating
	assert.Error(t, json.Unmarshal([]byte(`"four"`), &r))
}
