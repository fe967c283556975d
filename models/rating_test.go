// file: models/rating_test.go
//go:build unit
// +build unit

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDraftRating_MidScaleDefaults(t *testing.T) {
	draft := NewDraftRating(3, 7, 0)

	assert.Equal(t, 0, draft.ID, "draft ratings are unsaved")
	assert.Equal(t, 3, draft.UserID)
	assert.Equal(t, 7, draft.TeaID)
	assert.Equal(t, 0, draft.TastingID)

	for _, score := range []int{
		draft.Umami, draft.Astringency, draft.Floral, draft.Vegetal,
		draft.Nutty, draft.Roasted, draft.Body, draft.Rating,
	} {
		assert.Equal(t, ScoreMid, score)
	}
}

// WithDefaults fills only the unset dimensions
func TestWithDefaults_FillsUnsetOnly(t *testing.T) {
	r := Rating{ID: 9, UserID: 1, TeaID: 2, TastingID: 3, Umami: 8, Rating: 10}
	filled := r.WithDefaults()

	assert.Equal(t, 8, filled.Umami, "stored value kept")
	assert.Equal(t, 10, filled.Rating, "stored value kept")
	assert.Equal(t, ScoreMid, filled.Astringency)
	assert.Equal(t, ScoreMid, filled.Body)

	// identity fields untouched
	assert.Equal(t, 9, filled.ID)
	assert.Equal(t, 3, filled.TastingID)
}

// Apply copies scores but never identity
func TestRatingFormApply_PreservesIdentity(t *testing.T) {
	original := Rating{ID: 42, UserID: 7, TeaID: 13, TastingID: 5, Umami: 2, Rating: 3}
	form := RatingForm{
		Umami: 9, Astringency: 8, Floral: 7, Vegetal: 6,
		Nutty: 5, Roasted: 4, Body: 3, Rating: 10,
	}

	updated := form.Apply(original)

	assert.Equal(t, 42, updated.ID)
	assert.Equal(t, 7, updated.UserID)
	assert.Equal(t, 13, updated.TeaID)
	assert.Equal(t, 5, updated.TastingID, "tasting id must survive an edit")
	assert.Equal(t, 9, updated.Umami)
	assert.Equal(t, 10, updated.Rating)
}
