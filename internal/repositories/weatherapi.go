package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"weather-app/internal/models"
	"weather-app/pkg/logger"
)

const (
	WeatherAPIBaseURL = "https://api.weatherapi.com/v1"
)

// WeatherAPIRepository issues one forecast.json request per fetch. It does not retry,
// cache or rate-limit.
type WeatherAPIRepository struct {
	BaseURL      string
	APIKey       string
	ForecastDays int
	httpClient   HTTPClient
	l            *logger.Logger
}

func NewWeatherAPIRepository(baseURL, apiKey string, forecastDays int, l *logger.Logger, httpClient HTTPClient) (*WeatherAPIRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, configMissing("weatherapi", "WEATHERAPI_KEY")
	}
	if baseURL == "" {
		baseURL = WeatherAPIBaseURL
	}
	if forecastDays <= 0 {
		forecastDays = models.DefaultForecastDays
	}

	return &WeatherAPIRepository{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		ForecastDays: forecastDays,
		httpClient:   httpClient,
		l:            l,
	}, nil
}

func (w *WeatherAPIRepository) Name() string {
	return "weatherapi"
}

// weatherAPIError is the body weatherapi.com sends with 4xx responses.
type weatherAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (w *WeatherAPIRepository) FetchWeather(ctx context.Context, query string) (*models.WeatherData, error) {
	// Validate API key before making request
	if strings.TrimSpace(w.APIKey) == "" {
		return nil, configMissing(w.Name(), "WEATHERAPI_KEY")
	}

	q, err := models.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	days := w.ForecastDays
	if days <= 0 {
		days = models.DefaultForecastDays
	}

	params := url.Values{}
	params.Add("key", w.APIKey)
	params.Add("q", q.Raw)
	params.Add("days", strconv.Itoa(days))
	params.Add("aqi", "no")
	params.Add("alerts", "no")

	baseURL := w.BaseURL
	if baseURL == "" {
		baseURL = WeatherAPIBaseURL
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/forecast.json"

	w.log("making weatherapi API request", map[string]any{
		"q":    q.Raw,
		"days": days,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	w.log("received weatherapi API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		perr := &ProviderError{
			Kind:       UpstreamFailure,
			Provider:   w.Name(),
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
		var apiErr weatherAPIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			perr.Message = apiErr.Error.Message
		}
		return nil, perr
	}

	var data models.WeatherData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &ProviderError{
			Kind:       UpstreamFailure,
			Provider:   w.Name(),
			StatusCode: resp.StatusCode,
			Message:    "failed to parse JSON response",
			Err:        err,
		}
	}

	w.log("parsed API response", map[string]any{
		"location": data.Location.Name,
		"days":     len(data.Forecast.ForecastDay),
	})

	// labels and the headline chance of rain are not part of the upstream payload
	models.LabelForecast(data.Forecast.ForecastDay)
	if data.Current.ChanceOfRain == 0 && len(data.Forecast.ForecastDay) > 0 {
		data.Current.ChanceOfRain = data.Forecast.ForecastDay[0].Day.DailyChanceOfRain
	}

	return &data, nil
}

func (w *WeatherAPIRepository) client() HTTPClient {
	if w.httpClient != nil {
		return w.httpClient
	}
	return http.DefaultClient
}

func (w *WeatherAPIRepository) log(msg string, fields map[string]any) {
	if w.l != nil {
		w.l.Info(msg, fields)
	}
}
