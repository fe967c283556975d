// Package models defines data structures used across the application.
// File: models/tea.go
package models

// ----------------------- tea model -----------------------

// Tea is a tea as registered with the upstream service. Teas are immutable
// from this client's perspective; we only ever hold read-only copies.
type Tea struct {
	ID       int    `json:"id"`
	TeaName  string `json:"tea_name"`
	Provider string `json:"provider"`
	Source   string `json:"source,omitempty"`
}

// Display returns the label shown for this tea. The name alone is used
// unless another tea in the same set shares it, in which case the provider
// disambiguates.
func (t Tea) Display(all []Tea) string {
	for _, other := range all {
		if other.ID != t.ID && other.TeaName == t.TeaName {
			return t.TeaName + " (" + t.Provider + ")"
		}
	}
	return t.TeaName
}

// ----------------------- tea registration form -----------------------

// TeaRegistration is the browser form for registering a new tea.
// Source is optional; the binding tags enforce the required fields before
// any upstream call is made.
type TeaRegistration struct {
	TeaName  string `form:"tea_name" binding:"required"`
	Provider string `form:"provider" binding:"required"`
	Source   string `form:"source"`
}
