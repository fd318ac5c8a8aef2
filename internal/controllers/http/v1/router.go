package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-app/docs"
	"weather-app/internal/services/favorites"
	"weather-app/internal/services/weather"
	"weather-app/pkg/logger"
)

type routes struct {
	weather   *weather.WeatherService
	favorites *favorites.Service
	refresher *weather.Refresher
	now       func() time.Time
	l         *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService *weather.WeatherService,
	favoritesService *favorites.Service,
	refresher *weather.Refresher,
	l *logger.Logger,
) {
	r := &routes{
		weather:   weatherService,
		favorites: favoritesService,
		refresher: refresher,
		now:       time.Now,
		l:         l,
	}
	r.syncRefresher()

	// Swagger documentation, served from the document registered by the docs package
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Get("/weather", r.handleWeatherCall)

	locations := app.Group("/locations")
	locations.Get("/", r.handleListLocations)
	locations.Post("/", r.handleAddLocation)
	locations.Post("/current", r.handleSetCurrentLocation)
	locations.Get("/:id/weather", r.handleLocationWeather)
	locations.Delete("/:id", r.handleDeleteLocation)
}
