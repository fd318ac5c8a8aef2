package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyQuery            = errors.New("location query cannot be empty")
	ErrCoordinatesOutOfRange = errors.New("coordinates out of range")
)

// Query is a parsed provider input: free text or a "<lat>,<lon>" pair.
type Query struct {
	Raw           string
	IsCoordinates bool
	Lat           float64
	Lon           float64
}

func ParseQuery(raw string) (Query, error) {
	q := Query{Raw: strings.TrimSpace(raw)}
	if q.Raw == "" {
		return q, ErrEmptyQuery
	}

	parts := strings.Split(q.Raw, ",")
	if len(parts) != 2 {
		return q, nil
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lonErr != nil {
		// "Paris, France" is free text
		return q, nil
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return q, fmt.Errorf("%w: %s", ErrCoordinatesOutOfRange, q.Raw)
	}

	q.IsCoordinates = true
	q.Lat = lat
	q.Lon = lon

	return q, nil
}

// Key is the normalized form used to identify a location across requests.
func (q Query) Key() string {
	if q.IsCoordinates {
		return fmt.Sprintf("%.4f,%.4f", q.Lat, q.Lon)
	}
	return strings.ToLower(q.Raw)
}

// CoordinatesQuery formats a coordinate pair the way providers accept it.
func CoordinatesQuery(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}
