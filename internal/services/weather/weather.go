package weather

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"weather-app/internal/models"
	"weather-app/internal/repositories"
	"weather-app/pkg/logger"
)

// WeatherService fetches readings from the configured strategy and checks them against
// the weather contract before anyone sees them.
type WeatherService struct {
	repo      repositories.WeatherRepository
	validator *models.Validator
	group     singleflight.Group
	l         *logger.Logger
}

func NewWeatherService(repo repositories.WeatherRepository, v *models.Validator, l *logger.Logger) *WeatherService {
	if v == nil {
		v = models.NewValidator(models.DefaultForecastDays)
	}

	return &WeatherService{
		repo:      repo,
		validator: v,
		l:         l,
	}
}

// Provider names the active strategy.
func (s *WeatherService) Provider() string {
	return s.repo.Name()
}

// FetchWeather returns a validated reading. Concurrent calls for the same location share
// one upstream request; each caller still gets its own copy.
func (s *WeatherService) FetchWeather(ctx context.Context, query string) (*models.WeatherData, error) {
	q, err := models.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	s.l.Debug("fetching weather", map[string]any{"repo": s.repo.Name(), "query": q.Raw})

	// The shared fetch outlives any single caller; strategies bound it with their own timeouts.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(q.Key(), func() (any, error) {
		data, err := s.repo.FetchWeather(fetchCtx, q.Raw)
		if err != nil {
			return nil, err
		}
		return s.validator.Validate(data)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "fetch weather for %q", q.Raw)
	case res = <-ch:
	}

	if res.Err != nil {
		s.l.Warning("failed to fetch weather", map[string]any{
			"repo":  s.repo.Name(),
			"query": q.Raw,
			"err":   res.Err.Error(),
		})
		return nil, errors.Wrapf(res.Err, "fetch weather for %q", q.Raw)
	}

	data := res.Val.(*models.WeatherData)
	shared := res.Shared
	if shared {
		data = data.Clone()
	}

	s.l.Info("successfully fetched weather", map[string]any{
		"repo":     s.repo.Name(),
		"query":    q.Raw,
		"location": data.Location.Name,
		"days":     len(data.Forecast.ForecastDay),
		"shared":   shared,
	})

	return data, nil
}
