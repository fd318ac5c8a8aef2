package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"weather-app/config"
	v1 "weather-app/internal/controllers/http/v1"
	"weather-app/internal/models"
	"weather-app/internal/repositories"
	"weather-app/internal/repositories/storage"
	"weather-app/internal/services/favorites"
	"weather-app/internal/services/weather"
	"weather-app/pkg/httpserver"
	"weather-app/pkg/logger"
	"weather-app/pkg/observe"
)

var configFile string

// @title Weather App API
// @version 1.0.0
// @description Current conditions and daily forecasts from a mock, weatherapi.com or generative source,
// @description plus a persisted list of favorite locations.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Weather readings
// @tag.name Locations
// @tag.description Favorite locations
func main() {
	rootCmd := &cobra.Command{
		Use:          "weather",
		Short:        "Weather readings and forecasts",
		Long:         "Serves weather readings from a mock, weatherapi.com or generative source and keeps a list of favorite locations",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "config file path")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(fetchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cnf  *config.Config
	l    *logger.Logger
	hook *observe.SentryHook
}

func bootstrap(logOut io.Writer) (*app, error) {
	cnf, err := config.NewConfigWithProvider(config.NewFileConfigProvider(configFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	hook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.Sentry.Debug, cnf.Sentry.DSN)
	l := logger.NewZapLogger(cnf.App.Name, logOut, hook).WithEnv(cnf.App.Env)
	hook.SetLogger(l)

	if err := l.SetLevel(cnf.Log.Level); err != nil {
		l.Warning("invalid log level, keeping debug", map[string]any{"level": cnf.Log.Level})
	}

	return &app{cnf: cnf, l: l, hook: hook}, nil
}

func (a *app) close() {
	a.hook.Flush()
	_ = a.l.Stop()
}

func (a *app) weatherService(ctx context.Context) (*weather.WeatherService, error) {
	validator := models.NewValidator(a.cnf.Weather.ForecastDays)

	repo, err := repositories.InitWeatherRepository(ctx, a.cnf, validator, a.l)
	if err != nil {
		return nil, fmt.Errorf("cannot initialise %s weather source: %w", a.cnf.Weather.Strategy, err)
	}

	a.l.Info("weather source ready", map[string]any{
		"strategy":      repo.Name(),
		"forecast_days": validator.ForecastDays(),
	})

	return weather.NewWeatherService(repo, validator, a.l), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Start the HTTP API and the background refresh of favorite locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(os.Stdout)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			weatherService, err := a.weatherService(ctx)
			if err != nil {
				a.l.Error(err)
				return err
			}

			store, err := storage.Open(ctx, a.cnf.Favorites)
			if err != nil {
				a.l.Error(err, map[string]any{"backend": a.cnf.Favorites.Backend})
				return err
			}
			defer store.Close()

			favoritesService := favorites.NewService(ctx, favorites.NewKVRepository(store), a.l)
			refresher := weather.NewRefresher(weatherService, a.cnf.Weather.RefreshInterval, a.cnf.Weather.RefreshRate, a.l)

			var ready atomic.Bool
			server := httpserver.InitFiberServer(httpserver.Options{
				AppName:      a.cnf.App.Name,
				ReadTimeout:  time.Duration(a.cnf.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(a.cnf.Server.WriteTimeout) * time.Second,
				IdleTimeout:  time.Duration(a.cnf.Server.IdleTimeout) * time.Second,
				Ready:        ready.Load,
			})

			v1.NewRouter(server, weatherService, favoritesService, refresher, a.l)

			go refresher.Run(ctx)

			go func() {
				if err := server.Listen(":" + a.cnf.Server.Port); err != nil {
					a.l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
				}
			}()

			ready.Store(true)
			a.l.Info("application started successfully", map[string]any{
				"port":      a.cnf.Server.Port,
				"strategy":  weatherService.Provider(),
				"favorites": a.cnf.Favorites.Backend,
			})

			sigCh := make(chan os.Signal, 2)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			<-sigCh
			a.l.Warning("stopping application services")
			ready.Store(false)
			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shutdownCancel()

			return server.ShutdownWithContext(shutdownCtx)
		},
	}
}

func fetchCmd() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "fetch <place or lat,lon>",
		Short: "Fetch one reading and print it as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			weatherService, err := a.weatherService(ctx)
			if err != nil {
				return err
			}

			data, err := weatherService.FetchWeather(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			resp := models.Response{Weather: data}
			if len(data.Forecast.ForecastDay) > 0 {
				resp.SelectedHour = models.ClosestHour(&data.Forecast.ForecastDay[0], time.Now())
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(resp)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "print JSON on a single line")

	return cmd
}
