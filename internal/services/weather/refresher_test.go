package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-app/internal/models"
	"weather-app/internal/services/weather"
	"weather-app/pkg/logger"
)

func newTestRefresher(stub *StubRepository, interval time.Duration) *weather.Refresher {
	service := weather.NewWeatherService(stub, nil, logger.NewNop())
	return weather.NewRefresher(service, interval, 0, logger.NewNop())
}

func TestRefresher_TrackAndRefresh(t *testing.T) {
	stub := newStub()
	r := newTestRefresher(stub, time.Minute)

	r.Track("London")
	r.Track(" london ")
	r.Track("Tokyo")
	r.Track("")

	assert.Equal(t, []string{"Tokyo", "london"}, r.Tracked())

	n := r.RefreshAll(context.Background())
	assert.Equal(t, 2, n)
	assert.Equal(t, int32(2), stub.calls.Load())

	data, fetchedAt, ok := r.Latest("LONDON")
	require.True(t, ok)
	assert.False(t, fetchedAt.IsZero())
	assert.Len(t, data.Forecast.ForecastDay, models.DefaultForecastDays)

	_, ok = r.Fresh("tokyo")
	assert.True(t, ok)
}

func TestRefresher_LatestReturnsCopies(t *testing.T) {
	r := newTestRefresher(newStub(), time.Minute)
	r.Track("Sydney")
	r.RefreshAll(context.Background())

	first, _, ok := r.Latest("Sydney")
	require.True(t, ok)
	first.Location.Name = "mutated"

	second, _, ok := r.Latest("Sydney")
	require.True(t, ok)
	assert.Equal(t, "Sydney", second.Location.Name)
}

func TestRefresher_FailureKeepsPreviousReading(t *testing.T) {
	stub := newStub()
	r := newTestRefresher(stub, time.Minute)
	r.Track("Minsk")
	require.Equal(t, 1, r.RefreshAll(context.Background()))

	before, _, _ := r.Latest("Minsk")

	stub.err = errors.New("upstream down")
	assert.Equal(t, 0, r.RefreshAll(context.Background()))

	after, _, ok := r.Latest("Minsk")
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestRefresher_Untrack(t *testing.T) {
	r := newTestRefresher(newStub(), time.Minute)
	r.Track("Minsk")
	r.RefreshAll(context.Background())

	r.Untrack("minsk")

	assert.Empty(t, r.Tracked())
	_, _, ok := r.Latest("Minsk")
	assert.False(t, ok)
}

func TestRefresher_StoreAndFreshness(t *testing.T) {
	stub := newStub()
	r := newTestRefresher(stub, time.Millisecond)

	data, err := stub.FetchWeather(context.Background(), "London")
	require.NoError(t, err)

	r.Store("London", data)
	_, _, ok := r.Latest("London")
	assert.False(t, ok, "untracked readings are not kept")

	r.Track("London")
	r.Store("London", data)
	data.Location.Name = "mutated"

	stored, _, ok := r.Latest("london")
	require.True(t, ok)
	assert.Equal(t, "London", stored.Location.Name)

	time.Sleep(5 * time.Millisecond)
	_, ok = r.Fresh("London")
	assert.False(t, ok)
}

func TestRefresher_DefaultInterval(t *testing.T) {
	r := newTestRefresher(newStub(), 0)
	assert.Equal(t, weather.DefaultRefreshInterval, r.Interval())
}

func TestRefresher_RunStopsWithContext(t *testing.T) {
	stub := newStub()
	r := weather.NewRefresher(weather.NewWeatherService(stub, nil, logger.NewNop()), 20*time.Millisecond, 1000, logger.NewNop())
	r.Track("Tokyo")

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}

	assert.GreaterOrEqual(t, stub.calls.Load(), int32(2))
	_, _, ok := r.Latest("Tokyo")
	assert.True(t, ok)
}

func TestRefresher_Replace(t *testing.T) {
	r := newTestRefresher(newStub(), time.Minute)
	r.Track("Minsk")
	r.Track("Tokyo")
	r.RefreshAll(context.Background())

	r.Replace("tokyo", "Sydney", " ")

	assert.Equal(t, []string{"Sydney", "tokyo"}, r.Tracked())
	_, _, ok := r.Latest("Minsk")
	assert.False(t, ok)
	_, _, ok = r.Latest("Tokyo")
	assert.True(t, ok)
}
