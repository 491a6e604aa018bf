package handler

import (
	"net/http"

	"github.com/Powromita/EazyVenue/internal/dto"
	"github.com/Powromita/EazyVenue/internal/middleware"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc     service.AuthService
	limiter *middleware.RateLimiter
}

func NewAuthHandler(svc service.AuthService, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{svc: svc, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth", h.limiter.Middleware("auth"))
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, token, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)})
}
