// Package models defines data structures used across the application.
// File: models/flight.go
package models

import "math"

// ------------------------ tasting model -----------------------

// Tasting is a named grouping of ratings, created once and never mutated
// from this client.
type Tasting struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ------------------------ derived flight model -----------------------

// TeaFlight is the client-side view of a tasting: the tasting joined with
// the user's ratings for it plus a computed average. It is rebuilt from
// source collections on every dashboard load and never persisted.
//
// Date is display-only: the upstream model has no created-at timestamp, so
// this carries the local date at load time and must not be treated as
// sortable truth.
type TeaFlight struct {
	ID        int
	Name      string
	Date      string
	Ratings   []RatingWithTeaName
	AvgRating float64
}

// AverageRating returns the arithmetic mean of the overall scores rounded
// to one decimal, or 0 for an empty set. Order of the input does not
// matter.
func AverageRating(ratings []RatingWithTeaName) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating.Rating
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}

// PartitionTeas splits the full tea set into rated and unrated for one
// flight. The match is on tea id, so a tea rename upstream cannot break
// the partition. Every tea lands in exactly one of the two slices.
func PartitionTeas(all []Tea, flightRatings []RatingWithTeaName) (rated, unrated []Tea) {
	ratedIDs := make(map[int]bool, len(flightRatings))
	for _, r := range flightRatings {
		ratedIDs[r.TeaID] = true
	}
	for _, tea := range all {
		if ratedIDs[tea.ID] {
			rated = append(rated, tea)
		} else {
			unrated = append(unrated, tea)
		}
	}
	return rated, unrated
}

// RatingForTea returns the flight's rating for the given tea, if any.
func RatingForTea(flightRatings []RatingWithTeaName, teaID int) (RatingWithTeaName, bool) {
	for _, r := range flightRatings {
		if r.TeaID == teaID {
			return r, true
		}
	}
	return RatingWithTeaName{}, false
}
