package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weather-app/internal/models"
	"weather-app/internal/repositories"
	"weather-app/internal/services/favorites"
)

func statusFor(err error) int {
	var verr *models.ValidationError

	switch {
	case errors.Is(err, models.ErrEmptyQuery),
		errors.Is(err, models.ErrCoordinatesOutOfRange),
		errors.Is(err, favorites.ErrEmptyName):
		return fiber.StatusBadRequest
	case errors.Is(err, favorites.ErrNotFound):
		return fiber.StatusNotFound
	case repositories.IsKind(err, repositories.ConfigMissing):
		return fiber.StatusServiceUnavailable
	case repositories.IsKind(err, repositories.UpstreamFailure),
		repositories.IsKind(err, repositories.GenerationFailed),
		errors.As(err, &verr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (r *routes) fail(c *fiber.Ctx, err error, fields map[string]any) error {
	status := statusFor(err)

	resp := ErrorResponse{Error: err.Error()}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		resp.Violations = verr.Violations
	}

	fields["path"] = c.Path()
	fields["status"] = status
	if status >= fiber.StatusInternalServerError {
		r.l.Error(err, fields)
	} else {
		fields["err"] = err.Error()
		r.l.Warning("request rejected", fields)
	}

	return c.Status(status).JSON(resp)
}
