package repositories

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"weather-app/internal/models"
	"weather-app/pkg/logger"
)

// DefaultReadingKey is the table entry served for any location the table does not know.
const DefaultReadingKey = "default"

// ForecastVocabulary is the fixed set of conditions the mock forecast and canned readings draw from.
var ForecastVocabulary = []string{"Sunny", "Partly Cloudy", "Rainy", "Cloudy", "Storm", "Snow", "Thunder"}

var conditionCodes = map[string]struct {
	code int
	icon int
}{
	"Sunny":         {1000, 113},
	"Partly Cloudy": {1003, 116},
	"Cloudy":        {1006, 119},
	"Rainy":         {1189, 302},
	"Storm":         {1276, 389},
	"Snow":          {1219, 332},
	"Thunder":       {1087, 200},
}

var moonPhases = []string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

// cannedReading is a table row: fixed current conditions plus the range forecast highs are drawn from.
type cannedReading struct {
	template *models.WeatherData
	highMin  int
	highMax  int
}

func canned(name, region, country, tz string, lat, lon, tempC float64, text string, humidity int, windKph float64, chanceOfRain int, highMin, highMax int) cannedReading {
	return cannedReading{
		template: &models.WeatherData{
			Location: models.LocationInfo{
				Name:    name,
				Region:  region,
				Country: country,
				Lat:     lat,
				Lon:     lon,
				TzID:    tz,
			},
			Current: models.Current{
				TempC:        tempC,
				TempF:        celsiusToFahrenheit(tempC),
				FeelsLikeC:   tempC,
				FeelsLikeF:   celsiusToFahrenheit(tempC),
				IsDay:        1,
				Condition:    condition(text),
				WindKph:      windKph,
				WindMph:      round1(windKph / 1.609),
				WindDegree:   240,
				WindDir:      "WSW",
				PressureMb:   1015,
				Humidity:     humidity,
				Cloud:        50,
				UV:           4,
				ChanceOfRain: chanceOfRain,
			},
		},
		highMin: highMin,
		highMax: highMax,
	}
}

func mockTable() map[string]cannedReading {
	minsk := canned("Minsk", "Minsk", "Belarus", "Europe/Minsk", 53.9, 27.57, 21, "Storm", 24, 13, 87, 17, 23)
	return map[string]cannedReading{
		"minsk":            minsk,
		"new york":         canned("New York", "New York", "United States of America", "America/New_York", 40.71, -74.01, 22, "Partly Cloudy", 60, 16, 20, 18, 24),
		"london":           canned("London", "City of London, Greater London", "United Kingdom", "Europe/London", 51.52, -0.11, 16, "Rainy", 85, 24, 80, 13, 17),
		"tokyo":            canned("Tokyo", "Tokyo", "Japan", "Asia/Tokyo", 35.69, 139.69, 27, "Sunny", 70, 8, 10, 24, 29),
		"sydney":           canned("Sydney", "New South Wales", "Australia", "Australia/Sydney", -33.88, 151.22, 20, "Sunny", 50, 19, 5, 16, 21),
		"current location": canned("Current Location", "", "", "UTC", 0, 0, 26, "Sunny", 55, 13, 15, 20, 28),
		DefaultReadingKey:  minsk,
	}
}

// MockRepository serves canned readings with a freshly randomised forecast on every call.
// Unknown locations get the default reading rather than an error, which makes them
// indistinguishable from known ones at this boundary.
type MockRepository struct {
	forecastDays int
	table        map[string]cannedReading
	latency      time.Duration
	now          func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand

	l *logger.Logger
}

type MockOption func(*MockRepository)

// WithRand makes the generated forecast reproducible.
func WithRand(rnd *rand.Rand) MockOption {
	return func(m *MockRepository) { m.rnd = rnd }
}

func WithClock(now func() time.Time) MockOption {
	return func(m *MockRepository) { m.now = now }
}

// WithLatency simulates a network round trip.
func WithLatency(d time.Duration) MockOption {
	return func(m *MockRepository) { m.latency = d }
}

func NewMockRepository(forecastDays int, l *logger.Logger, opts ...MockOption) *MockRepository {
	if forecastDays <= 0 {
		forecastDays = models.DefaultForecastDays
	}

	m := &MockRepository{
		forecastDays: forecastDays,
		table:        mockTable(),
		now:          time.Now,
		rnd:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		l:            l,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *MockRepository) Name() string {
	return "mock"
}

func (m *MockRepository) FetchWeather(ctx context.Context, query string) (*models.WeatherData, error) {
	q, err := models.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	if m.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.latency):
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, known := m.table[strings.ToLower(q.Raw)]
	if !known {
		entry = m.table[DefaultReadingKey]
	}

	data := entry.template.Clone()
	if !known {
		data.Location.Name = q.Raw
		data.Location.Region = ""
		data.Location.Country = ""
		if q.IsCoordinates {
			data.Location.Lat, data.Location.Lon = q.Lat, q.Lon
		}
	}

	now := m.now()
	data.Location.LocaltimeEpoch = now.Unix()
	data.Location.Localtime = now.Format(models.TimeLayout)
	data.Current.LastUpdatedEpoch = now.Unix()
	data.Current.LastUpdated = now.Format(models.TimeLayout)

	m.mu.Lock()
	data.Forecast.ForecastDay = m.generateForecast(now, entry.highMin, entry.highMax)
	m.mu.Unlock()

	if m.l != nil {
		m.l.Debug("served mock weather", map[string]any{
			"query": q.Raw,
			"known": known,
			"days":  len(data.Forecast.ForecastDay),
		})
	}

	return data, nil
}

// generateForecast must be called with m.mu held.
func (m *MockRepository) generateForecast(now time.Time, highMin, highMax int) []models.ForecastDay {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := make([]models.ForecastDay, 0, m.forecastDays)

	for i := 0; i < m.forecastDays; i++ {
		date := today.AddDate(0, 0, i)
		text := ForecastVocabulary[m.rnd.IntN(len(ForecastVocabulary))]
		high := float64(highMin + m.rnd.IntN(highMax-highMin+5))
		low := high - float64(5+m.rnd.IntN(5))

		chanceOfRain, chanceOfSnow := m.chances(text)
		precip, snow := 0.0, 0.0
		if chanceOfRain > 50 {
			precip = round1(m.rnd.Float64() * 12)
		}
		if chanceOfSnow > 50 {
			snow = round1(m.rnd.Float64() * 6)
		}

		day := models.ForecastDay{
			Date:      date.Format(models.DateLayout),
			DateEpoch: date.Unix(),
			Day: models.DayStats{
				MaxTempC:          high,
				MaxTempF:          celsiusToFahrenheit(high),
				MinTempC:          low,
				MinTempF:          celsiusToFahrenheit(low),
				AvgTempC:          round1((high + low) / 2),
				AvgTempF:          celsiusToFahrenheit(round1((high + low) / 2)),
				MaxWindKph:        round1(5 + m.rnd.Float64()*25),
				TotalPrecipMm:     precip,
				TotalSnowCm:       snow,
				AvgHumidity:       float64(40 + m.rnd.IntN(56)),
				DailyChanceOfRain: chanceOfRain,
				DailyChanceOfSnow: chanceOfSnow,
				UV:                float64(m.rnd.IntN(9)),
				Condition:         condition(text),
			},
			Astro: models.Astro{
				Sunrise:   "05:12 AM",
				Sunset:    "08:51 PM",
				Moonrise:  "04:03 AM",
				Moonset:   "09:28 PM",
				MoonPhase: moonPhases[(date.YearDay()/4)%len(moonPhases)],
			},
		}
		day.Hour = hourly(date, day.Day)
		days = append(days, day)
	}

	models.LabelForecast(days)

	return days
}

func (m *MockRepository) chances(text string) (rain, snow int) {
	switch text {
	case "Rainy", "Storm", "Thunder":
		return 60 + m.rnd.IntN(41), 0
	case "Snow":
		return m.rnd.IntN(20), 60 + m.rnd.IntN(41)
	default:
		return m.rnd.IntN(30), 0
	}
}

// hourly spreads the day's range over a curve peaking mid-afternoon.
func hourly(date time.Time, day models.DayStats) []models.Hour {
	hours := make([]models.Hour, 0, models.HoursPerDay)
	span := day.MaxTempC - day.MinTempC

	for h := 0; h < models.HoursPerDay; h++ {
		ts := date.Add(time.Duration(h) * time.Hour)
		temp := round1(day.MinTempC + span*(0.5+0.5*math.Cos(2*math.Pi*float64(h-15)/24)))
		isDay := 0
		if h >= 6 && h < 21 {
			isDay = 1
		}

		hours = append(hours, models.Hour{
			TimeEpoch:    ts.Unix(),
			Time:         ts.Format(models.TimeLayout),
			TempC:        temp,
			TempF:        celsiusToFahrenheit(temp),
			IsDay:        isDay,
			Condition:    day.Condition,
			WindKph:      round1(day.MaxWindKph * 0.6),
			WindDegree:   240,
			WindDir:      "WSW",
			PressureMb:   1015,
			PrecipMm:     round1(day.TotalPrecipMm / models.HoursPerDay),
			Humidity:     int(day.AvgHumidity),
			Cloud:        50,
			FeelsLikeC:   temp,
			ChanceOfRain: day.DailyChanceOfRain,
			ChanceOfSnow: day.DailyChanceOfSnow,
			UV:           float64(isDay) * day.UV,
		})
	}

	return hours
}

func condition(text string) models.Condition {
	c := models.Condition{Text: text}
	if known, ok := conditionCodes[text]; ok {
		c.Code = known.code
		c.Icon = fmt.Sprintf("//cdn.weatherapi.com/weather/64x64/day/%d.png", known.icon)
	}
	return c
}

func celsiusToFahrenheit(c float64) float64 {
	return round1(c*9/5 + 32)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
