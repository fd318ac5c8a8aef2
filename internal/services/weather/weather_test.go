package weather_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-app/internal/models"
	"weather-app/internal/repositories"
	"weather-app/internal/services/weather"
	"weather-app/pkg/logger"
)

// StubRepository wraps the mock strategy and counts calls.
type StubRepository struct {
	inner   repositories.WeatherRepository
	calls   atomic.Int32
	err     error
	entered chan struct{}
	release chan struct{}
	mutate  func(*models.WeatherData)
}

func newStub() *StubRepository {
	return &StubRepository{inner: repositories.NewMockRepository(models.DefaultForecastDays, logger.NewNop())}
}

func (s *StubRepository) Name() string {
	return "stub"
}

func (s *StubRepository) FetchWeather(ctx context.Context, query string) (*models.WeatherData, error) {
	s.calls.Add(1)

	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}

	data, err := s.inner.FetchWeather(ctx, query)
	if err == nil && s.mutate != nil {
		s.mutate(data)
	}
	return data, err
}

func TestNewWeatherService(t *testing.T) {
	service := weather.NewWeatherService(newStub(), nil, logger.NewNop())

	assert.NotNil(t, service)
	assert.Equal(t, "stub", service.Provider())
}

func TestWeatherService_FetchWeather_Success(t *testing.T) {
	stub := newStub()
	service := weather.NewWeatherService(stub, models.NewValidator(7), logger.NewNop())

	data, err := service.FetchWeather(context.Background(), "London")

	require.NoError(t, err)
	assert.Equal(t, "London", data.Location.Name)
	assert.Len(t, data.Forecast.ForecastDay, 7)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestWeatherService_FetchWeather_EmptyQuery(t *testing.T) {
	stub := newStub()
	service := weather.NewWeatherService(stub, nil, logger.NewNop())

	_, err := service.FetchWeather(context.Background(), " ")

	assert.ErrorIs(t, err, models.ErrEmptyQuery)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestWeatherService_FetchWeather_KeepsTypedCause(t *testing.T) {
	stub := newStub()
	stub.err = &repositories.ProviderError{Kind: repositories.UpstreamFailure, Provider: "stub", StatusCode: 503}
	service := weather.NewWeatherService(stub, nil, logger.NewNop())

	_, err := service.FetchWeather(context.Background(), "London")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `fetch weather for "London"`)

	var perr *repositories.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 503, perr.StatusCode)
}

func TestWeatherService_FetchWeather_RejectsInvalidReading(t *testing.T) {
	stub := newStub()
	stub.mutate = func(w *models.WeatherData) {
		w.Current.Humidity = 140
		w.Forecast.ForecastDay = w.Forecast.ForecastDay[:3]
	}
	service := weather.NewWeatherService(stub, models.NewValidator(7), logger.NewNop())

	_, err := service.FetchWeather(context.Background(), "London")

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("current.humidity"), verr.Error())
	assert.True(t, verr.Has("forecast.forecastday"), verr.Error())
}

func TestWeatherService_FetchWeather_CollapsesConcurrentCalls(t *testing.T) {
	stub := newStub()
	stub.entered = make(chan struct{}, 10)
	stub.release = make(chan struct{})
	service := weather.NewWeatherService(stub, nil, logger.NewNop())

	const callers = 5
	results := make([]*models.WeatherData, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := service.FetchWeather(context.Background(), "tokyo")
			assert.NoError(t, err)
			results[i] = data
		}(i)
	}

	<-stub.entered
	time.Sleep(100 * time.Millisecond)
	close(stub.release)
	wg.Wait()

	assert.Equal(t, int32(1), stub.calls.Load())
	for i := 1; i < callers; i++ {
		require.NotNil(t, results[i])
		assert.NotSame(t, results[0], results[i])
		assert.Equal(t, results[0].Location.Name, results[i].Location.Name)
	}

	results[0].Forecast.ForecastDay[0].Day.MaxTempC = 99
	assert.NotEqual(t, 99.0, results[1].Forecast.ForecastDay[0].Day.MaxTempC)
}

func TestWeatherService_FetchWeather_CancelledCallerDoesNotFailOthers(t *testing.T) {
	stub := newStub()
	stub.entered = make(chan struct{}, 10)
	stub.release = make(chan struct{})
	service := weather.NewWeatherService(stub, nil, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := service.FetchWeather(ctx, "Sydney")
		firstErr <- err
	}()
	<-stub.entered

	type result struct {
		data *models.WeatherData
		err  error
	}
	second := make(chan result, 1)
	go func() {
		data, err := service.FetchWeather(context.Background(), "sydney")
		second <- result{data, err}
	}()
	time.Sleep(100 * time.Millisecond)

	cancel()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting for the shared fetch")
	}

	close(stub.release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, "Sydney", res.data.Location.Name)
	assert.Equal(t, int32(1), stub.calls.Load())
}
