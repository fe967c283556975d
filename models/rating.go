// Package models defines data structures used across the application.
// File: models/rating.go
package models

// ----------------------- rating model -----------------------

// Sensory scale bounds. 0 means "unset"; stored scores are 1..10.
const (
	ScoreUnset = 0
	ScoreMin   = 1
	ScoreMid   = 5
	ScoreMax   = 10
)

// Rating holds one user's sensory scores for one tea within one tasting.
// ID 0 marks a rating that has not been saved upstream yet, and a
// TastingID of 0 tells the server to file the rating under its default
// tasting.
type Rating struct {
	ID          int `json:"id"`
	UserID      int `json:"user_id"`
	TeaID       int `json:"tea_id"`
	TastingID   int `json:"tasting_id"`
	Umami       int `json:"umami"`
	Astringency int `json:"astringency"`
	Floral      int `json:"floral"`
	Vegetal     int `json:"vegetal"`
	Nutty       int `json:"nutty"`
	Roasted     int `json:"roasted"`
	Body        int `json:"body"`
	Rating      int `json:"rating"`
}

// RatingWithTeaName is the upstream read shape for a user's ratings: the
// rating joined with the name of the tea it scores.
type RatingWithTeaName struct {
	Rating
	TeaName string `json:"tea_name"`
}

// NewDraftRating returns an unsaved rating with every sensory dimension
// set to mid-scale, the starting point of the rating form.
func NewDraftRating(userID, teaID, tastingID int) Rating {
	return Rating{
		UserID:      userID,
		TeaID:       teaID,
		TastingID:   tastingID,
		Umami:       ScoreMid,
		Astringency: ScoreMid,
		Floral:      ScoreMid,
		Vegetal:     ScoreMid,
		Nutty:       ScoreMid,
		Roasted:     ScoreMid,
		Body:        ScoreMid,
		Rating:      ScoreMid,
	}
}

// WithDefaults fills any unset sensory field with the mid-scale value.
// Used when editing an older rating whose optional dimensions were never
// scored.
func (r Rating) WithDefaults() Rating {
	fill := func(v int) int {
		if v == ScoreUnset {
			return ScoreMid
		}
		return v
	}
	r.Umami = fill(r.Umami)
	r.Astringency = fill(r.Astringency)
	r.Floral = fill(r.Floral)
	r.Vegetal = fill(r.Vegetal)
	r.Nutty = fill(r.Nutty)
	r.Roasted = fill(r.Roasted)
	r.Body = fill(r.Body)
	r.Rating = fill(r.Rating)
	return r
}

// ----------------------- rating form -----------------------

// RatingForm is the browser form for submitting or editing a rating.
// Scores arrive as select values bound straight onto the struct.
type RatingForm struct {
	Umami       int `form:"umami" binding:"min=1,max=10"`
	Astringency int `form:"astringency" binding:"min=1,max=10"`
	Floral      int `form:"floral" binding:"min=1,max=10"`
	Vegetal     int `form:"vegetal" binding:"min=1,max=10"`
	Nutty       int `form:"nutty" binding:"min=1,max=10"`
	Roasted     int `form:"roasted" binding:"min=1,max=10"`
	Body        int `form:"body" binding:"min=1,max=10"`
	Rating      int `form:"rating" binding:"min=1,max=10"`
}

// Apply copies the submitted scores onto an existing rating, leaving its
// identity fields (id, user, tea, tasting) untouched.
func (f RatingForm) Apply(r Rating) Rating {
	r.Umami = f.Umami
	r.Astringency = f.Astringency
	r.Floral = f.Floral
	r.Vegetal = f.Vegetal
	r.Nutty = f.Nutty
	r.Roasted = f.Roasted
	r.Body = f.Body
	r.Rating = f.Rating
	return r
}
