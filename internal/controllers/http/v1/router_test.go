package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-app/internal/models"
	"weather-app/internal/repositories"
	"weather-app/internal/repositories/storage"
	"weather-app/internal/services/favorites"
	"weather-app/internal/services/weather"
	"weather-app/pkg/httpserver"
	"weather-app/pkg/logger"
)

type failingRepository struct {
	err error
}

func (f *failingRepository) Name() string { return "failing" }

func (f *failingRepository) FetchWeather(ctx context.Context, query string) (*models.WeatherData, error) {
	return nil, f.err
}

type testApp struct {
	app       *fiber.App
	favorites *favorites.Service
	refresher *weather.Refresher
}

func newTestApp(t *testing.T, repo repositories.WeatherRepository) *testApp {
	t.Helper()

	l := logger.NewNop()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "favorites.json"))
	require.NoError(t, err)

	weatherService := weather.NewWeatherService(repo, models.NewValidator(models.DefaultForecastDays), l)
	favoritesService := favorites.NewService(context.Background(), favorites.NewKVRepository(store), l)
	refresher := weather.NewRefresher(weatherService, time.Minute, 0, l)

	app := httpserver.InitFiberServer(httpserver.Options{AppName: "test-app"})
	NewRouter(app, weatherService, favoritesService, refresher, l)

	return &testApp{app: app, favorites: favoritesService, refresher: refresher}
}

func newMockApp(t *testing.T) *testApp {
	return newTestApp(t, repositories.NewMockRepository(models.DefaultForecastDays, logger.NewNop()))
}

func (a *testApp) do(t *testing.T, method, target string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestGetWeather(t *testing.T) {
	a := newMockApp(t)

	status, body := a.do(t, fiber.MethodGet, "/weather?q=London", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))

	resp := decode[models.Response](t, body)
	require.NotNil(t, resp.Weather)
	assert.Nil(t, resp.Location)
	assert.Equal(t, "London", resp.Weather.Location.Name)
	assert.Len(t, resp.Weather.Forecast.ForecastDay, models.DefaultForecastDays)
	assert.Equal(t, models.LabelToday, resp.Weather.Forecast.ForecastDay[0].Label)
	assert.NotNil(t, resp.SelectedHour)
}

func TestGetWeather_BadQuery(t *testing.T) {
	a := newMockApp(t)

	for _, target := range []string{"/weather", "/weather?q=%20%20", "/weather?q=120,10"} {
		status, body := a.do(t, fiber.MethodGet, target, nil)
		assert.Equal(t, fiber.StatusBadRequest, status, target)
		assert.NotEmpty(t, decode[ErrorResponse](t, body).Error)
	}
}

func TestGetWeather_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"config missing", &repositories.ProviderError{Kind: repositories.ConfigMissing, Provider: "weatherapi"}, fiber.StatusServiceUnavailable},
		{"upstream failure", &repositories.ProviderError{Kind: repositories.UpstreamFailure, Provider: "weatherapi", StatusCode: 500}, fiber.StatusBadGateway},
		{"generation failed", &repositories.ProviderError{Kind: repositories.GenerationFailed, Provider: "generative"}, fiber.StatusBadGateway},
		{"invalid reading", &models.ValidationError{Violations: []models.Violation{{Field: "current", Reason: "is required"}}}, fiber.StatusBadGateway},
		{"unexpected", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, &failingRepository{err: tt.err})

			status, body := a.do(t, fiber.MethodGet, "/weather?q=London", nil)
			assert.Equal(t, tt.status, status, string(body))

			var verr *models.ValidationError
			if errors.As(tt.err, &verr) {
				resp := decode[ErrorResponse](t, body)
				assert.Equal(t, verr.Violations, resp.Violations)
			}
		})
	}
}

func TestLocations_AddListDelete(t *testing.T) {
	a := newMockApp(t)

	status, body := a.do(t, fiber.MethodGet, "/locations", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decode[LocationsResponse](t, body).Locations)

	status, body = a.do(t, fiber.MethodPost, "/locations", SearchRequest{Query: "london"})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	added := decode[models.Response](t, body)
	require.NotNil(t, added.Location)
	assert.Equal(t, "London", added.Location.Name)
	assert.NotEmpty(t, added.Location.ID)

	status, body = a.do(t, fiber.MethodPost, "/locations", SearchRequest{Query: "LONDON"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, added.Location.ID, decode[models.Response](t, body).Location.ID)

	status, body = a.do(t, fiber.MethodGet, "/locations", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[LocationsResponse](t, body).Locations, 1)
	assert.Equal(t, []string{"London"}, a.refresher.Tracked())

	status, _ = a.do(t, fiber.MethodDelete, "/locations/"+added.Location.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Empty(t, a.favorites.List())
	assert.Empty(t, a.refresher.Tracked())

	status, body = a.do(t, fiber.MethodDelete, "/locations/"+added.Location.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, status, string(body))
}

func TestLocations_AddRejectsEmptyQuery(t *testing.T) {
	a := newMockApp(t)

	status, _ := a.do(t, fiber.MethodPost, "/locations", SearchRequest{Query: " "})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, a.favorites.List())
}

func TestLocations_SetCurrent(t *testing.T) {
	a := newMockApp(t)

	status, _ := a.do(t, fiber.MethodPost, "/locations", SearchRequest{Query: "Tokyo"})
	require.Equal(t, fiber.StatusCreated, status)

	lat, lon := 51.52, -0.11
	status, body := a.do(t, fiber.MethodPost, "/locations/current", CoordinatesRequest{Lat: &lat, Lon: &lon})
	require.Equal(t, fiber.StatusOK, status, string(body))
	first := decode[models.Response](t, body)
	require.NotNil(t, first.Location)
	assert.True(t, first.Location.IsCurrent)

	lat = 48.85
	status, body = a.do(t, fiber.MethodPost, "/locations/current", CoordinatesRequest{Lat: &lat, Lon: &lon})
	require.Equal(t, fiber.StatusOK, status, string(body))
	second := decode[models.Response](t, body)

	list := a.favorites.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.Location.ID, list[0].ID)
	assert.Equal(t, "Tokyo", list[1].Name)

	status, _ = a.do(t, fiber.MethodPost, "/locations/current", map[string]float64{"lat": 1})
	assert.Equal(t, fiber.StatusBadRequest, status)

	bad := 95.0
	status, _ = a.do(t, fiber.MethodPost, "/locations/current", CoordinatesRequest{Lat: &bad, Lon: &lon})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLocations_Weather(t *testing.T) {
	a := newMockApp(t)

	status, body := a.do(t, fiber.MethodPost, "/locations", SearchRequest{Query: "Sydney"})
	require.Equal(t, fiber.StatusCreated, status)
	added := decode[models.Response](t, body)

	_, _, cached := a.refresher.Latest("Sydney")
	assert.True(t, cached)

	status, body = a.do(t, fiber.MethodGet, fmt.Sprintf("/locations/%s/weather", added.Location.ID), nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	resp := decode[models.Response](t, body)
	assert.Equal(t, "Sydney", resp.Weather.Location.Name)
	assert.Equal(t, added.Weather.Forecast, resp.Weather.Forecast)

	status, _ = a.do(t, fiber.MethodGet, "/locations/unknown/weather", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSwaggerDocIsRegistered(t *testing.T) {
	a := newMockApp(t)

	status, body := a.do(t, fiber.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"/weather"`)
	assert.Contains(t, string(body), `"/locations/current"`)
}
