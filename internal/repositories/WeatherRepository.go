package repositories

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"weather-app/config"
	"weather-app/internal/models"
	"weather-app/pkg/logger"
)

// WeatherRepository produces a reading for a free-text place name or a "<lat>,<lon>" pair.
// Every strategy satisfies it, so callers never know which one is active.
type WeatherRepository interface {
	Name() string
	FetchWeather(ctx context.Context, query string) (*models.WeatherData, error)
}

// HTTPClient is the subset of *http.Client the repositories need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// InitWeatherRepository builds the strategy chosen in configuration. A missing credential
// is returned as a ConfigMissing error so the application refuses to start with it.
func InitWeatherRepository(ctx context.Context, cfg *config.Config, v *models.Validator, l *logger.Logger) (WeatherRepository, error) {
	strategy, err := config.ParseStrategy(string(cfg.Weather.Strategy))
	if err != nil {
		return nil, err
	}

	switch strategy {
	case config.StrategyMock:
		return NewMockRepository(cfg.Weather.ForecastDays, l, WithLatency(cfg.Weather.MockLatency)), nil

	case config.StrategyWeatherAPI:
		api := cfg.Weather.WeatherAPI
		return NewWeatherAPIRepository(api.BaseURL, api.APIKey, cfg.Weather.ForecastDays, l, &http.Client{
			Timeout: time.Duration(api.Timeout) * time.Second,
		})

	case config.StrategyGenerative:
		gen := cfg.Weather.Generative
		model, err := NewGeminiModel(ctx, gen.APIKey, gen.Model)
		if err != nil {
			return nil, err
		}
		return NewGenerativeRepository(model, v, l,
			WithToolCalling(gen.UseTool),
			WithTemperature(gen.Temperature),
			WithTimeout(time.Duration(gen.Timeout)*time.Second),
		)
	}

	return nil, fmt.Errorf("weather strategy %q has no repository", strategy)
}
