package models

// Response is what the presentation layer receives for a selected location.
type Response struct {
	Location     *Location    `json:"location,omitempty"`
	Weather      *WeatherData `json:"weather"`
	SelectedHour *Hour        `json:"selected_hour,omitempty"`
}
