package models

import "time"

const (
	// DefaultForecastDays is the number of daily entries a reading must carry.
	DefaultForecastDays = 7
	// HoursPerDay is the number of hourly entries in a day, when hours are present.
	HoursPerDay = 24

	LabelToday = "Today"

	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02 15:04"
)

type Forecast struct {
	ForecastDay []ForecastDay `json:"forecastday" validate:"dive"`
}

// ForecastDay holds the aggregates, astronomy and hourly entries for one date.
type ForecastDay struct {
	Date      string   `json:"date" validate:"datetime=2006-01-02" example:"2025-07-25"`
	DateEpoch int64    `json:"date_epoch" example:"1753401600"`
	Label     string   `json:"label,omitempty" validate:"required" example:"Today"`
	Day       DayStats `json:"day"`
	Astro     Astro    `json:"astro"`
	Hour      []Hour   `json:"hour" validate:"dive"`
}

type DayStats struct {
	MaxTempC          float64   `json:"maxtemp_c" validate:"finite,gtefield=MinTempC"`
	MaxTempF          float64   `json:"maxtemp_f" validate:"finite,gtefield=MinTempF"`
	MinTempC          float64   `json:"mintemp_c" validate:"finite"`
	MinTempF          float64   `json:"mintemp_f" validate:"finite"`
	AvgTempC          float64   `json:"avgtemp_c" validate:"finite"`
	AvgTempF          float64   `json:"avgtemp_f" validate:"finite"`
	MaxWindKph        float64   `json:"maxwind_kph" validate:"finite,gte=0"`
	TotalPrecipMm     float64   `json:"totalprecip_mm" validate:"finite,gte=0"`
	TotalSnowCm       float64   `json:"totalsnow_cm" validate:"finite,gte=0"`
	AvgHumidity       float64   `json:"avghumidity" validate:"finite,gte=0,lte=100"`
	DailyChanceOfRain int       `json:"daily_chance_of_rain" validate:"gte=0,lte=100"`
	DailyChanceOfSnow int       `json:"daily_chance_of_snow" validate:"gte=0,lte=100"`
	UV                float64   `json:"uv" validate:"finite,gte=0"`
	Condition         Condition `json:"condition"`
}

type Astro struct {
	Sunrise   string `json:"sunrise" example:"05:12 AM"`
	Sunset    string `json:"sunset" example:"08:51 PM"`
	Moonrise  string `json:"moonrise" example:"04:03 AM"`
	Moonset   string `json:"moonset" example:"09:28 PM"`
	MoonPhase string `json:"moon_phase" example:"New Moon"`
}

type Hour struct {
	TimeEpoch    int64     `json:"time_epoch"`
	Time         string    `json:"time" validate:"datetime=2006-01-02 15:04" example:"2025-07-25 16:00"`
	TempC        float64   `json:"temp_c" validate:"finite"`
	TempF        float64   `json:"temp_f" validate:"finite"`
	IsDay        int       `json:"is_day" validate:"oneof=0 1"`
	Condition    Condition `json:"condition"`
	WindKph      float64   `json:"wind_kph" validate:"finite,gte=0"`
	WindDegree   int       `json:"wind_degree" validate:"gte=0,lte=360"`
	WindDir      string    `json:"wind_dir"`
	PressureMb   float64   `json:"pressure_mb" validate:"finite,gte=0"`
	PrecipMm     float64   `json:"precip_mm" validate:"finite,gte=0"`
	Humidity     int       `json:"humidity" validate:"gte=0,lte=100"`
	Cloud        int       `json:"cloud" validate:"gte=0,lte=100"`
	FeelsLikeC   float64   `json:"feelslike_c" validate:"finite"`
	ChanceOfRain int       `json:"chance_of_rain" validate:"gte=0,lte=100"`
	ChanceOfSnow int       `json:"chance_of_snow" validate:"gte=0,lte=100"`
	UV           float64   `json:"uv" validate:"finite,gte=0"`
}

// LabelForecast names the first entry "Today" and the rest by weekday ("Mon", "Tue", ...).
func LabelForecast(days []ForecastDay) {
	for i := range days {
		if i == 0 {
			days[i].Label = LabelToday
			continue
		}

		if date, err := time.Parse(DateLayout, days[i].Date); err == nil {
			days[i].Label = date.Weekday().String()[:3]
		} else if days[i].DateEpoch > 0 {
			days[i].Label = time.Unix(days[i].DateEpoch, 0).UTC().Weekday().String()[:3]
		}
	}
}

// ClosestHour returns the first hour at or after now's hour-of-day, falling back to the first hour.
func ClosestHour(day *ForecastDay, now time.Time) *Hour {
	if day == nil || len(day.Hour) == 0 {
		return nil
	}

	for i := range day.Hour {
		t, err := time.Parse(TimeLayout, day.Hour[i].Time)
		if err != nil {
			continue
		}
		if t.Hour() >= now.Hour() {
			return &day.Hour[i]
		}
	}

	return &day.Hour[0]
}
