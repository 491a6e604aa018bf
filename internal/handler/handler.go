package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Powromita/EazyVenue/internal/middleware"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/service"
	"github.com/labstack/echo/v4"
)

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(req)
}

// actor returns the authenticated caller, or the zero Actor on public routes.
func actor(c echo.Context) service.Actor {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return service.Actor{}
	}
	return service.Actor{UserID: claims.UserID(), Email: claims.Email, Role: claims.Role}
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" date, expected YYYY-MM-DD")
	}
	return &d, nil
}

// mapError turns service errors into HTTP errors. Unknown errors pass through
// and become a logged 500.
func mapError(err error) error {
	var (
		capErr    *service.CapacityError
		bookedErr *service.CapacityBelowBookingsError
	)
	switch {
	case errors.Is(err, service.ErrVenueNotFound),
		errors.Is(err, service.ErrVenueNotOwned),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &capErr),
		errors.Is(err, service.ErrPastDate),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &bookedErr),
		errors.Is(err, service.ErrAlreadyBooked),
		errors.Is(err, service.ErrDateUnavailable),
		errors.Is(err, service.ErrDateBooked):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return err
	}
}
