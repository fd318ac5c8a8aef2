package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-app/internal/models"
	"weather-app/pkg/logger"
)

// countingClient records how many requests reach the network.
type countingClient struct {
	calls atomic.Int32
	next  HTTPClient
}

func (c *countingClient) Do(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return c.next.Do(req)
}

// upstreamPayload is what weatherapi.com sends: no labels and no current chance of rain.
func upstreamPayload(t *testing.T, days int) []byte {
	t.Helper()

	data, err := newTestMock(days).FetchWeather(context.Background(), "London")
	require.NoError(t, err)
	for i := range data.Forecast.ForecastDay {
		data.Forecast.ForecastDay[i].Label = ""
	}
	data.Current.ChanceOfRain = 0

	body, err := json.Marshal(data)
	require.NoError(t, err)
	return body
}

func TestWeatherAPIRepository_Name(t *testing.T) {
	repo := &WeatherAPIRepository{}
	assert.Equal(t, "weatherapi", repo.Name())
}

func TestNewWeatherAPIRepository_MissingKey(t *testing.T) {
	_, err := NewWeatherAPIRepository("", "  ", 7, logger.NewNop(), nil)

	require.Error(t, err)
	assert.True(t, IsKind(err, ConfigMissing))
}

func TestWeatherAPIRepository_MissingKeyMakesNoRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &countingClient{next: server.Client()}
	repo := &WeatherAPIRepository{BaseURL: server.URL, httpClient: client, l: logger.NewNop()}

	_, err := repo.FetchWeather(context.Background(), "London")

	require.Error(t, err)
	assert.True(t, IsKind(err, ConfigMissing))
	assert.Equal(t, int32(0), client.calls.Load())
}

func TestWeatherAPIRepository_FetchWeather_Success(t *testing.T) {
	payload := upstreamPayload(t, 3)

	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		gotQuery = map[string]string{
			"key":    r.URL.Query().Get("key"),
			"q":      r.URL.Query().Get("q"),
			"days":   r.URL.Query().Get("days"),
			"aqi":    r.URL.Query().Get("aqi"),
			"alerts": r.URL.Query().Get("alerts"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}))
	defer server.Close()

	repo, err := NewWeatherAPIRepository(server.URL, "test-key", 3, logger.NewNop(), server.Client())
	require.NoError(t, err)

	data, err := repo.FetchWeather(context.Background(), "London")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"key": "test-key", "q": "London", "days": "3", "aqi": "no", "alerts": "no",
	}, gotQuery)

	assert.Equal(t, "London", data.Location.Name)
	require.Len(t, data.Forecast.ForecastDay, 3)
	assert.Equal(t, models.LabelToday, data.Forecast.ForecastDay[0].Label)
	assert.Equal(t, "Sat", data.Forecast.ForecastDay[1].Label)
	assert.Equal(t, data.Forecast.ForecastDay[0].Day.DailyChanceOfRain, data.Current.ChanceOfRain)

	_, err = models.NewValidator(3).Validate(data)
	assert.NoError(t, err)
}

func TestWeatherAPIRepository_FetchWeather_Coordinates(t *testing.T) {
	payload := upstreamPayload(t, 1)

	var gotQ string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		w.Write(payload)
	}))
	defer server.Close()

	repo, err := NewWeatherAPIRepository(server.URL, "test-key", 1, logger.NewNop(), server.Client())
	require.NoError(t, err)

	_, err = repo.FetchWeather(context.Background(), "51.52,-0.11")
	require.NoError(t, err)
	assert.Equal(t, "51.52,-0.11", gotQ)
}

func TestWeatherAPIRepository_FetchWeather_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "unknown location",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":1006,"message":"No matching location found."}}`,
			message: "No matching location found.",
		},
		{
			name:    "bad key",
			status:  http.StatusForbidden,
			body:    `{"error":{"code":2008,"message":"API key has been disabled."}}`,
			message: "API key has been disabled.",
		},
		{
			name:    "server error without body",
			status:  http.StatusBadGateway,
			body:    ``,
			message: "502 Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			repo, err := NewWeatherAPIRepository(server.URL, "test-key", 7, logger.NewNop(), server.Client())
			require.NoError(t, err)

			_, err = repo.FetchWeather(context.Background(), "Nowhere")
			require.Error(t, err)

			var perr *ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, UpstreamFailure, perr.Kind)
			assert.Equal(t, tt.status, perr.StatusCode)
			assert.Equal(t, tt.message, perr.Message)
		})
	}
}

func TestWeatherAPIRepository_FetchWeather_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	repo, err := NewWeatherAPIRepository(server.URL, "test-key", 7, logger.NewNop(), server.Client())
	require.NoError(t, err)

	_, err = repo.FetchWeather(context.Background(), "London")
	require.Error(t, err)
	assert.True(t, IsKind(err, UpstreamFailure))
}

func TestWeatherAPIRepository_FetchWeather_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	repo, err := NewWeatherAPIRepository(server.URL, "test-key", 7, logger.NewNop(), server.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repo.FetchWeather(ctx, "London")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWeatherAPIRepository_FetchWeather_EmptyQuery(t *testing.T) {
	client := &countingClient{next: http.DefaultClient}
	repo, err := NewWeatherAPIRepository("http://127.0.0.1:1", "test-key", 7, logger.NewNop(), client)
	require.NoError(t, err)

	_, err = repo.FetchWeather(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrEmptyQuery)
	assert.Equal(t, int32(0), client.calls.Load())
}
