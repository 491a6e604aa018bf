package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Powromita/EazyVenue/internal/dto"
	"github.com/Powromita/EazyVenue/internal/export"
	"github.com/Powromita/EazyVenue/internal/middleware"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/repository"
	"github.com/Powromita/EazyVenue/internal/service"
	"github.com/labstack/echo/v4"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// VendorHandler serves the venue owner's dashboard. Every route requires a
// VENUE_OWNER token.
type VendorHandler struct {
	venues   service.VenueService
	bookings service.BookingService
	profiles service.ProfileService
	tokens   middleware.TokenParser
}

func NewVendorHandler(venues service.VenueService, bookings service.BookingService, profiles service.ProfileService, tokens middleware.TokenParser) *VendorHandler {
	return &VendorHandler{venues: venues, bookings: bookings, profiles: profiles, tokens: tokens}
}

func (h *VendorHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/vendor",
		middleware.RequireAuth(h.tokens),
		middleware.RequireRole(models.RoleVenueOwner),
	)
	g.GET("/venues", h.ListVenues)
	g.POST("/venues", h.CreateVenue)
	g.GET("/venues/:id", h.GetVenue)
	g.PUT("/venues/:id", h.UpdateVenue)
	g.DELETE("/venues/:id", h.DeleteVenue)
	g.PUT("/venues/:id/availability", h.SetDateStatus)

	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)

	g.GET("/bookings/export", h.ExportBookings)
}

func (h *VendorHandler) ListVenues(c echo.Context) error {
	venues, err := h.venues.ListOwned(c.Request().Context(), actor(c).UserID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToVenueResponses(venues))
}

func (h *VendorHandler) CreateVenue(c echo.Context) error {
	var req dto.CreateVenueRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	venue, err := h.venues.CreateVenue(c.Request().Context(), actor(c).UserID, service.VenueInput{
		Name:          req.Name,
		Description:   req.Description,
		Capacity:      req.Capacity,
		Price:         req.Price,
		ContactNumber: req.ContactNumber,
		Occasion:      req.Occasion,
		Images:        req.Images,
		IsPosted:      req.IsPosted,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToVenueResponse(venue, false))
}

func (h *VendorHandler) GetVenue(c echo.Context) error {
	venue, err := h.venues.GetOwned(c.Request().Context(), c.Param("id"), actor(c).UserID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToVenueResponse(venue, false))
}

func (h *VendorHandler) UpdateVenue(c echo.Context) error {
	var req dto.UpdateVenueRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.venues.UpdateVenue(c.Request().Context(), c.Param("id"), actor(c).UserID, service.VenueUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Capacity:      req.Capacity,
		Price:         req.Price,
		ContactNumber: req.ContactNumber,
		Occasion:      req.Occasion,
		Images:        req.Images,
		IsPosted:      req.IsPosted,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *VendorHandler) DeleteVenue(c echo.Context) error {
	if err := h.venues.DeleteVenue(c.Request().Context(), c.Param("id"), actor(c).UserID); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// SetDateStatus blocks or reopens a single date.
func (h *VendorHandler) SetDateStatus(c echo.Context) error {
	var req dto.DateStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date")
	}

	update, err := h.venues.SetDateStatus(c.Request().Context(), c.Param("id"), actor(c).UserID, date, models.AvailabilityStatus(req.Status))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.DateStatusResponse{Success: true, Update: *update})
}

func (h *VendorHandler) GetProfile(c echo.Context) error {
	user, err := h.profiles.GetProfile(c.Request().Context(), actor(c).UserID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ProfileEnvelope{User: dto.ToProfileResponse(user)})
}

func (h *VendorHandler) UpdateProfile(c echo.Context) error {
	var req dto.ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.profiles.UpdateProfile(c.Request().Context(), actor(c).UserID, service.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Profile: req.ToVendorProfile(),
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ProfileEnvelope{User: dto.ToProfileResponse(user)})
}

// ExportBookings streams the caller's bookings as an XLSX workbook, optionally
// limited by ?from and ?to event dates.
func (h *VendorHandler) ExportBookings(c echo.Context) error {
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}

	bookings, err := h.bookings.ListOwnerBookings(c.Request().Context(), actor(c), repository.BookingFilter{From: from, To: to})
	if err != nil {
		return mapError(err)
	}

	var buf bytes.Buffer
	if err := export.WriteBookings(&buf, bookings); err != nil {
		return fmt.Errorf("export bookings: %w", err)
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format(models.DateLayout))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}
