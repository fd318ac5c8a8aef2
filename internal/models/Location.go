package models

import "strings"

// Location is a saved place in the favorites list.
type Location struct {
	ID        string `json:"id" example:"0b7c1d1e-7f0e-4a8a-9d43-6b2f1f3a8c11"`
	Name      string `json:"name" example:"London"`
	IsCurrent bool   `json:"isCurrent,omitempty" example:"false"`
}

// SameName reports whether two names refer to the same favorite.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
