package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoogleReviewRatingValue(t *testing.T) {
	cases := map[string]float64{
		"ONE":   1,
		"TWO":   2,
		"THREE": 3,
		"FOUR":  4,
		"FIVE":  5,
		"":      0,
		"SIX":   0,
	}

	for star, want := range cases {
		r := GoogleReview{StarRating: star}
		assert.Equal(t, want, r.RatingValue(), "star rating %q", star)
	}
}
