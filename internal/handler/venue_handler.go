package handler

import (
	"net/http"
	"strconv"

	"github.com/Powromita/EazyVenue/internal/dto"
	"github.com/Powromita/EazyVenue/internal/middleware"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/service"
	"github.com/labstack/echo/v4"
)

// VenueHandler serves the public catalog.
type VenueHandler struct {
	venues   service.VenueService
	bookings service.BookingService
	tokens   middleware.TokenParser
}

func NewVenueHandler(venues service.VenueService, bookings service.BookingService, tokens middleware.TokenParser) *VenueHandler {
	return &VenueHandler{venues: venues, bookings: bookings, tokens: tokens}
}

func (h *VenueHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/venues")
	g.GET("", h.ListVenues)
	g.GET("/:id", h.GetVenue)
	g.GET("/:id/availability", h.GetAvailability)
	g.GET("/:id/bookings", h.ListVenueBookings,
		middleware.RequireAuth(h.tokens), middleware.RequireRole(models.RoleVenueOwner))
}

func (h *VenueHandler) ListVenues(c echo.Context) error {
	venues, err := h.venues.ListPosted(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.VenueListResponse{Venues: dto.ToVenueResponses(venues)})
}

func (h *VenueHandler) GetVenue(c echo.Context) error {
	venue, err := h.venues.GetVenue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.VenueEnvelope{Venue: dto.ToVenueResponse(venue, true)})
}

// GetAvailability accepts optional ?from=YYYY-MM-DD and ?days=N.
func (h *VenueHandler) GetAvailability(c echo.Context) error {
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a positive integer")
		}
	}

	rows, err := h.venues.GetAvailability(c.Request().Context(), c.Param("id"), from, days)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToAvailabilityList(rows))
}

func (h *VenueHandler) ListVenueBookings(c echo.Context) error {
	bookings, err := h.bookings.ListVenueBookings(c.Request().Context(), c.Param("id"), actor(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingList(bookings))
}
