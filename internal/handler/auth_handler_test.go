package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Powromita/EazyVenue/config"
	"github.com/Powromita/EazyVenue/internal/dto"
	"github.com/Powromita/EazyVenue/internal/middleware"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Handler(t *testing.T) {
	var got service.RegisterInput
	svc := &mockAuthService{
		registerFn: func(_ context.Context, in service.RegisterInput) (*models.User, string, error) {
			if in.Email == "taken@example.com" {
				return nil, "", service.ErrEmailTaken
			}
			got = in
			return &models.User{ID: "u-1", Email: in.Email, Name: in.Name, Role: in.Role}, "tok", nil
		},
	}
	e := newEcho()
	NewAuthHandler(svc, nil).RegisterRoutes(e)

	rec := do(e, http.MethodPost, "/api/auth/register",
		`{"email":"new@example.com","name":"New","password":"secret1","role":"VENUE_OWNER"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, models.RoleVenueOwner, resp.User.Role)
	assert.Equal(t, "secret1", got.Password)

	rec = do(e, http.MethodPost, "/api/auth/register",
		`{"email":"taken@example.com","name":"X","password":"secret1"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email already registered"}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/auth/register",
		`{"email":"x@example.com","name":"X","password":"123","role":"ADMIN"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Len(t, errResp.Details, 2)
}

func TestLogin_Handler(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(_ context.Context, email, password string) (*models.User, string, error) {
			if password != "secret1" {
				return nil, "", service.ErrInvalidCredentials
			}
			return &models.User{ID: "u-1", Email: email, Role: models.RoleUser}, "tok", nil
		},
	}
	e := newEcho()
	NewAuthHandler(svc, nil).RegisterRoutes(e)

	rec := do(e, http.MethodPost, "/api/auth/login", `{"email":"u@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPost, "/api/auth/login", `{"email":"u@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/auth/login", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_Handler_RateLimited(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(context.Context, string, string) (*models.User, string, error) {
			return nil, "", service.ErrInvalidCredentials
		},
	}
	limiter := middleware.NewRateLimiter(config.RateLimitConfig{RPS: 0.001, Burst: 1})
	e := newEcho()
	NewAuthHandler(svc, limiter).RegisterRoutes(e)

	body := `{"email":"u@example.com","password":"wrong"}`
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPost, "/api/auth/login", body, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(e, http.MethodPost, "/api/auth/login", body, "").Code)
}
