package models

// WeatherData is a full reading for one location query. Field names follow the
// weatherapi.com forecast payload so upstream responses decode into it directly.
type WeatherData struct {
	Location LocationInfo `json:"location"`
	Current  Current      `json:"current"`
	Forecast Forecast     `json:"forecast"`
}

// LocationInfo describes the place a reading belongs to.
type LocationInfo struct {
	Name           string  `json:"name" validate:"required" example:"London"`
	Region         string  `json:"region" example:"City of London, Greater London"`
	Country        string  `json:"country" example:"United Kingdom"`
	Lat            float64 `json:"lat" validate:"finite,gte=-90,lte=90" example:"51.52"`
	Lon            float64 `json:"lon" validate:"finite,gte=-180,lte=180" example:"-0.11"`
	TzID           string  `json:"tz_id" example:"Europe/London"`
	LocaltimeEpoch int64   `json:"localtime_epoch" example:"1753455600"`
	Localtime      string  `json:"localtime" example:"2025-07-25 16:00"`
}

// Condition is the textual and iconic description of the sky.
type Condition struct {
	Text string `json:"text" validate:"required" example:"Partly cloudy"`
	Icon string `json:"icon" example:"//cdn.weatherapi.com/weather/64x64/day/116.png"`
	Code int    `json:"code" example:"1003"`
}

// Current is the current-conditions snapshot.
type Current struct {
	LastUpdatedEpoch int64     `json:"last_updated_epoch"`
	LastUpdated      string    `json:"last_updated" example:"2025-07-25 16:00"`
	TempC            float64   `json:"temp_c" validate:"finite"`
	TempF            float64   `json:"temp_f" validate:"finite"`
	FeelsLikeC       float64   `json:"feelslike_c" validate:"finite"`
	FeelsLikeF       float64   `json:"feelslike_f" validate:"finite"`
	IsDay            int       `json:"is_day" validate:"oneof=0 1"`
	Condition        Condition `json:"condition"`
	WindKph          float64   `json:"wind_kph" validate:"finite,gte=0"`
	WindMph          float64   `json:"wind_mph" validate:"finite,gte=0"`
	WindDegree       int       `json:"wind_degree" validate:"gte=0,lte=360"`
	WindDir          string    `json:"wind_dir" example:"WSW"`
	PressureMb       float64   `json:"pressure_mb" validate:"finite,gte=0"`
	PrecipMm         float64   `json:"precip_mm" validate:"finite,gte=0"`
	Humidity         int       `json:"humidity" validate:"gte=0,lte=100"`
	Cloud            int       `json:"cloud" validate:"gte=0,lte=100"`
	UV               float64   `json:"uv" validate:"finite,gte=0"`
	ChanceOfRain     int       `json:"chance_of_rain,omitempty" validate:"gte=0,lte=100"`
}

// Clone returns a deep copy, so callers never share slices with the producer.
func (w *WeatherData) Clone() *WeatherData {
	if w == nil {
		return nil
	}

	out := *w
	if w.Forecast.ForecastDay == nil {
		return &out
	}

	out.Forecast.ForecastDay = make([]ForecastDay, len(w.Forecast.ForecastDay))
	for i, day := range w.Forecast.ForecastDay {
		if day.Hour != nil {
			day.Hour = append(make([]Hour, 0, len(day.Hour)), day.Hour...)
		}
		out.Forecast.ForecastDay[i] = day
	}

	return &out
}
