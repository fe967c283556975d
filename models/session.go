// Package models defines data structures used across the application.
// File: models/session.go
package models

// ----------------------- session model -----------------------

// Session is the client's view of who is logged in. UserID is a pure
// projection of Token: it is set iff the token is well formed, and the
// pair is only ever mutated together.
type Session struct {
	Token  string
	UserID int
}

// Valid reports whether the session carries a usable identity.
func (s Session) Valid() bool {
	return s.Token != "" && s.UserID > 0
}

// ----------------------- upstream user model -----------------------

// User is the upstream user record, fetched for the navbar greeting.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ----------------------- summary model -----------------------

// TeaSummary is one row of the community-wide summary: per-tea averages
// across all users.
type TeaSummary struct {
	TeaName   string  `json:"tea_name"`
	Provider  string  `json:"provider"`
	AvgRating float64 `json:"avg_rating"`
	NumRated  int     `json:"num_rated"`
}
