package handler

import (
	"net/http"
	"strings"

	"github.com/Powromita/EazyVenue/internal/dto"
	"github.com/Powromita/EazyVenue/internal/middleware"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/repository"
	"github.com/Powromita/EazyVenue/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc     service.BookingService
	tokens  middleware.TokenParser
	limiter *middleware.RateLimiter
}

func NewBookingHandler(svc service.BookingService, tokens middleware.TokenParser, limiter *middleware.RateLimiter) *BookingHandler {
	return &BookingHandler{svc: svc, tokens: tokens, limiter: limiter}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	authed := middleware.RequireAuth(h.tokens)
	owner := middleware.RequireRole(models.RoleVenueOwner)

	bookings := e.Group("/api/bookings")
	bookings.POST("", h.CreateBooking, h.limiter.Middleware("bookings"), middleware.OptionalAuth(h.tokens))
	bookings.GET("", h.ListBookings, authed, owner)
	bookings.GET("/user/:email", h.ListUserBookings, authed)
	bookings.GET("/:id", h.GetBooking, authed)
	bookings.PATCH("/:id/confirm", h.ConfirmBooking, authed, owner)
	bookings.PATCH("/:id/status", h.UpdateStatus, authed, owner)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	eventDate, err := models.ParseDate(req.EventDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event date")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		VenueID:         req.VenueID,
		EventDate:       eventDate,
		EventTime:       req.EventTime,
		GuestCount:      req.GuestCount,
		EventType:       req.EventType,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		SpecialRequests: req.SpecialRequests,
		UserID:          actor(c).UserID,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, dto.CreateBookingResponse{
		Message: "Booking created and confirmed successfully",
		Booking: dto.ToBookingSummary(booking),
	})
}

// ListBookings returns bookings on the caller's venues, optionally limited to
// an event date range.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListOwnerBookings(c.Request().Context(), actor(c), repository.BookingFilter{From: from, To: to})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingList(bookings))
}

func (h *BookingHandler) ListUserBookings(c echo.Context) error {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	bookings, err := h.svc.ListUserBookings(c.Request().Context(), email, actor(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingList(bookings))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), c.Param("id"), actor(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.BookingEnvelope{Booking: dto.ToBookingResponse(booking)})
}

func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	var req dto.ConfirmBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	status := models.BookingStatus(req.Status)

	booking, updated, err := h.svc.TransitionBooking(c.Request().Context(), c.Param("id"), status, actor(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.TransitionResponse{
		Message:             "Booking " + strings.ToLower(req.Status) + " successfully",
		Booking:             dto.ToBookingResponse(booking),
		AvailabilityUpdated: updated,
	})
}

func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req dto.BookingStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	booking, updated, err := h.svc.TransitionBooking(c.Request().Context(), c.Param("id"), models.BookingStatus(req.Status), actor(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.TransitionResponse{
		Message:             "Booking status updated successfully",
		Booking:             dto.ToBookingResponse(booking),
		AvailabilityUpdated: updated,
	})
}
