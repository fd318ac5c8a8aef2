package http

import (
	"github.com/gofiber/fiber/v2"

	"weather-app/internal/models"
)

type LocationsResponse struct {
	Locations []models.Location `json:"locations"`
}

type SearchRequest struct {
	Query string `json:"query" example:"London"`
}

type CoordinatesRequest struct {
	Lat *float64 `json:"lat" example:"51.52"`
	Lon *float64 `json:"lon" example:"-0.11"`
}

// ListLocations godoc
// @Summary List favorite locations
// @Tags Locations
// @Produce json
// @Success 200 {object} LocationsResponse
// @Router /locations [get]
func (r *routes) handleListLocations(c *fiber.Ctx) error {
	return c.JSON(LocationsResponse{Locations: r.favorites.List()})
}

// AddLocation godoc
// @Summary Search a location and add it to favorites
// @Description Fetches the weather for the query and saves the resolved place name. A name already saved (ignoring case) is selected instead of duplicated.
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search query"
// @Success 201 {object} models.Response "Location added"
// @Success 200 {object} models.Response "Location already saved"
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /locations [post]
func (r *routes) handleAddLocation(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	data, err := r.weather.FetchWeather(c.UserContext(), req.Query)
	if err != nil {
		return r.fail(c, err, map[string]any{"query": req.Query})
	}

	loc, added, err := r.favorites.Add(c.UserContext(), data.Location.Name)
	if err != nil {
		return r.fail(c, err, map[string]any{"name": data.Location.Name})
	}
	r.syncRefresher()
	r.refresher.Store(loc.Name, data)

	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(r.reading(&loc, data))
}

// SetCurrentLocation godoc
// @Summary Save the device position as the current location
// @Description Fetches the weather for the coordinates and stores the resolved place as the first favorite, replacing the previous current one.
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body CoordinatesRequest true "Device coordinates"
// @Success 200 {object} models.Response
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /locations/current [post]
func (r *routes) handleSetCurrentLocation(c *fiber.Ctx) error {
	var req CoordinatesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}
	if req.Lat == nil || req.Lon == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Both lat and lon are required"})
	}

	query := models.CoordinatesQuery(*req.Lat, *req.Lon)
	data, err := r.weather.FetchWeather(c.UserContext(), query)
	if err != nil {
		return r.fail(c, err, map[string]any{"query": query})
	}

	loc, err := r.favorites.SetCurrent(c.UserContext(), data.Location.Name)
	if err != nil {
		return r.fail(c, err, map[string]any{"name": data.Location.Name})
	}
	r.syncRefresher()
	r.refresher.Store(loc.Name, data)

	return c.JSON(r.reading(&loc, data))
}

// GetLocationWeather godoc
// @Summary Get weather for a saved location
// @Description Serves the last refreshed reading while it is younger than the refresh interval, otherwise fetches a new one.
// @Tags Locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /locations/{id}/weather [get]
func (r *routes) handleLocationWeather(c *fiber.Ctx) error {
	loc, err := r.favorites.Find(c.Params("id"))
	if err != nil {
		return r.fail(c, err, map[string]any{"id": c.Params("id")})
	}

	if data, ok := r.refresher.Fresh(loc.Name); ok {
		return c.JSON(r.reading(&loc, data))
	}

	data, err := r.weather.FetchWeather(c.UserContext(), loc.Name)
	if err != nil {
		return r.fail(c, err, map[string]any{"id": loc.ID, "name": loc.Name})
	}
	r.refresher.Store(loc.Name, data)

	return c.JSON(r.reading(&loc, data))
}

// DeleteLocation godoc
// @Summary Remove a favorite location
// @Tags Locations
// @Param id path string true "Location ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /locations/{id} [delete]
func (r *routes) handleDeleteLocation(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := r.favorites.Remove(c.UserContext(), id); err != nil {
		return r.fail(c, err, map[string]any{"id": id})
	}
	r.syncRefresher()

	return c.SendStatus(fiber.StatusNoContent)
}

// syncRefresher keeps the background refresh set equal to the favorites list.
func (r *routes) syncRefresher() {
	locations := r.favorites.List()
	names := make([]string, 0, len(locations))
	for _, l := range locations {
		names = append(names, l.Name)
	}
	r.refresher.Replace(names...)
}
