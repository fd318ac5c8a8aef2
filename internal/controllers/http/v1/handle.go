package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"weather-app/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error      string             `json:"error" example:"location query cannot be empty"`
	Violations []models.Violation `json:"violations,omitempty"`
}

// GetWeather godoc
// @Summary Get weather for a location
// @Description Returns current conditions, the daily forecast and the hour closest to now for a place name or a "lat,lon" pair
// @Tags Weather
// @Produce json
// @Param q query string true "Place name or coordinates" example(London)
// @Success 200 {object} models.Response "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - empty or malformed query"
// @Failure 502 {object} ErrorResponse "Weather source failed or returned invalid data"
// @Failure 503 {object} ErrorResponse "Weather source is not configured"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /weather [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/weather?q=London"
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: q",
		})
	}

	data, err := r.weather.FetchWeather(c.UserContext(), query)
	if err != nil {
		return r.fail(c, err, map[string]any{"query": query})
	}

	return c.JSON(r.reading(nil, data))
}

func (r *routes) reading(loc *models.Location, data *models.WeatherData) models.Response {
	resp := models.Response{Location: loc, Weather: data}
	if len(data.Forecast.ForecastDay) > 0 {
		resp.SelectedHour = models.ClosestHour(&data.Forecast.ForecastDay[0], r.localNow(data))
	}
	return resp
}

// localNow is the current time in the reading's own timezone, when it names a known one.
func (r *routes) localNow(data *models.WeatherData) time.Time {
	now := r.now()
	if data.Location.TzID == "" {
		return now
	}
	if loc, err := time.LoadLocation(data.Location.TzID); err == nil {
		return now.In(loc)
	}
	return now
}
