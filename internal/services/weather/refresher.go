package weather

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"weather-app/internal/models"
	"weather-app/pkg/logger"
)

const DefaultRefreshInterval = 10 * time.Minute

// Fetcher is what the refresher needs from WeatherService.
type Fetcher interface {
	FetchWeather(ctx context.Context, query string) (*models.WeatherData, error)
}

type snapshot struct {
	data      *models.WeatherData
	fetchedAt time.Time
}

// Refresher keeps the latest reading for every tracked location and re-fetches them on an
// interval. Upstream calls are paced by a token bucket; a failed refresh keeps the previous reading.
type Refresher struct {
	fetcher  Fetcher
	interval time.Duration
	limiter  *rate.Limiter
	now      func() time.Time
	l        *logger.Logger

	// held for a whole pass so two passes never refresh the same location at once
	refreshMu sync.Mutex

	mu      sync.RWMutex
	tracked map[string]string
	latest  map[string]snapshot
}

// NewRefresher paces upstream calls at perSecond requests (burst 1). perSecond <= 0 disables pacing.
func NewRefresher(fetcher Fetcher, interval time.Duration, perSecond float64, l *logger.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}

	return &Refresher{
		fetcher:  fetcher,
		interval: interval,
		limiter:  rate.NewLimiter(limit, 1),
		now:      time.Now,
		l:        l,
		tracked:  map[string]string{},
		latest:   map[string]snapshot{},
	}
}

func (r *Refresher) Interval() time.Duration {
	return r.interval
}

// Track adds a location to the refresh set.
func (r *Refresher) Track(query string) {
	key := refreshKey(query)
	if key == "" {
		return
	}

	r.mu.Lock()
	r.tracked[key] = strings.TrimSpace(query)
	r.mu.Unlock()
}

func (r *Refresher) Untrack(query string) {
	key := refreshKey(query)

	r.mu.Lock()
	delete(r.tracked, key)
	delete(r.latest, key)
	r.mu.Unlock()
}

func (r *Refresher) Tracked() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.tracked))
	for _, q := range r.tracked {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}

// Replace makes queries the exact refresh set, dropping readings of locations no longer in it.
func (r *Refresher) Replace(queries ...string) {
	next := make(map[string]string, len(queries))
	for _, q := range queries {
		if key := refreshKey(q); key != "" {
			next[key] = strings.TrimSpace(q)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tracked = next
	for key := range r.latest {
		if _, ok := next[key]; !ok {
			delete(r.latest, key)
		}
	}
}

// Store replaces the reading for a tracked query, e.g. after an on-demand fetch.
// Readings for untracked queries are not kept.
func (r *Refresher) Store(query string, data *models.WeatherData) {
	key := refreshKey(query)
	if key == "" || data == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tracked[key]; ok {
		r.latest[key] = snapshot{data: data.Clone(), fetchedAt: r.now()}
	}
}

// Latest returns a copy of the most recent reading and when it was fetched.
func (r *Refresher) Latest(query string) (*models.WeatherData, time.Time, bool) {
	r.mu.RLock()
	snap, ok := r.latest[refreshKey(query)]
	r.mu.RUnlock()

	if !ok {
		return nil, time.Time{}, false
	}
	return snap.data.Clone(), snap.fetchedAt, true
}

// Fresh reports whether the stored reading for query is younger than the refresh interval.
func (r *Refresher) Fresh(query string) (*models.WeatherData, bool) {
	data, fetchedAt, ok := r.Latest(query)
	if !ok || r.now().Sub(fetchedAt) >= r.interval {
		return nil, false
	}
	return data, true
}

// RefreshAll fetches every tracked location once and returns how many succeeded.
func (r *Refresher) RefreshAll(ctx context.Context) int {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	ok := 0
	for _, query := range r.Tracked() {
		if err := r.limiter.Wait(ctx); err != nil {
			return ok
		}

		data, err := r.fetcher.FetchWeather(ctx, query)
		if err != nil {
			r.l.Warning("refresh failed", map[string]any{"query": query, "err": err.Error()})
			continue
		}

		r.mu.Lock()
		// skip locations untracked while the fetch was in flight
		if _, still := r.tracked[refreshKey(query)]; still {
			r.latest[refreshKey(query)] = snapshot{data: data, fetchedAt: r.now()}
		}
		r.mu.Unlock()
		ok++
	}

	return ok
}

// Run refreshes immediately and then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.l.Info("refresher started", map[string]any{"interval": r.interval.String()})

	for {
		n := r.RefreshAll(ctx)
		r.l.Debug("refresh pass finished", map[string]any{"refreshed": n})

		select {
		case <-ctx.Done():
			r.l.Info("refresher stopped")
			return
		case <-ticker.C:
		}
	}
}

func refreshKey(query string) string {
	q, err := models.ParseQuery(query)
	if err != nil {
		return ""
	}
	return q.Key()
}
