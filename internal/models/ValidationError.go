package models

import (
	"fmt"
	"strings"
)

// Violation is one broken rule of the weather contract.
type Violation struct {
	Field  string `json:"field" example:"forecast.forecastday[2].day.maxtemp_c"`
	Reason string `json:"reason" example:"is required"`
}

// ValidationError lists every violation found in a candidate reading, not just the first.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Field == "" {
			parts = append(parts, v.Reason)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", v.Field, v.Reason))
	}

	return fmt.Sprintf("weather data failed validation: %s", strings.Join(parts, "; "))
}

// Has reports whether field is among the violations.
func (e *ValidationError) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field, reason string) {
	e.Violations = append(e.Violations, Violation{Field: field, Reason: reason})
}
