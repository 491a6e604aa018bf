package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Powromita/EazyVenue/internal/auth"
	"github.com/Powromita/EazyVenue/internal/middleware"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/repository"
	"github.com/Powromita/EazyVenue/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn     func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error)
	transitionFn func(ctx context.Context, id string, target models.BookingStatus, actor service.Actor) (*models.Booking, bool, error)
	getFn        func(ctx context.Context, id string, actor service.Actor) (*models.Booking, error)
	ownerFn      func(ctx context.Context, actor service.Actor, filter repository.BookingFilter) ([]models.Booking, error)
	venueFn      func(ctx context.Context, venueID string, actor service.Actor) ([]models.Booking, error)
	userFn       func(ctx context.Context, email string, actor service.Actor) ([]models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, in)
}
func (m *mockBookingService) TransitionBooking(ctx context.Context, id string, target models.BookingStatus, actor service.Actor) (*models.Booking, bool, error) {
	return m.transitionFn(ctx, id, target, actor)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id string, actor service.Actor) (*models.Booking, error) {
	return m.getFn(ctx, id, actor)
}
func (m *mockBookingService) ListOwnerBookings(ctx context.Context, actor service.Actor, filter repository.BookingFilter) ([]models.Booking, error) {
	return m.ownerFn(ctx, actor, filter)
}
func (m *mockBookingService) ListVenueBookings(ctx context.Context, venueID string, actor service.Actor) ([]models.Booking, error) {
	return m.venueFn(ctx, venueID, actor)
}
func (m *mockBookingService) ListUserBookings(ctx context.Context, email string, actor service.Actor) ([]models.Booking, error) {
	return m.userFn(ctx, email, actor)
}

// --- Mock VenueService ---

type mockVenueService struct {
	listPostedFn   func(ctx context.Context) ([]models.Venue, error)
	getFn          func(ctx context.Context, id string) (*models.Venue, error)
	availabilityFn func(ctx context.Context, id string, from *time.Time, days int) ([]models.Availability, error)
	listOwnedFn    func(ctx context.Context, ownerID string) ([]models.Venue, error)
	getOwnedFn     func(ctx context.Context, id, ownerID string) (*models.Venue, error)
	createFn       func(ctx context.Context, ownerID string, in service.VenueInput) (*models.Venue, error)
	updateFn       func(ctx context.Context, id, ownerID string, in service.VenueUpdate) error
	deleteFn       func(ctx context.Context, id, ownerID string) error
	setStatusFn    func(ctx context.Context, id, ownerID string, date time.Time, status models.AvailabilityStatus) (*models.AvailabilityUpdate, error)
}

func (m *mockVenueService) ListPosted(ctx context.Context) ([]models.Venue, error) {
	return m.listPostedFn(ctx)
}
func (m *mockVenueService) GetVenue(ctx context.Context, id string) (*models.Venue, error) {
	return m.getFn(ctx, id)
}
func (m *mockVenueService) GetAvailability(ctx context.Context, id string, from *time.Time, days int) ([]models.Availability, error) {
	return m.availabilityFn(ctx, id, from, days)
}
func (m *mockVenueService) ListOwned(ctx context.Context, ownerID string) ([]models.Venue, error) {
	return m.listOwnedFn(ctx, ownerID)
}
func (m *mockVenueService) GetOwned(ctx context.Context, id, ownerID string) (*models.Venue, error) {
	return m.getOwnedFn(ctx, id, ownerID)
}
func (m *mockVenueService) CreateVenue(ctx context.Context, ownerID string, in service.VenueInput) (*models.Venue, error) {
	return m.createFn(ctx, ownerID, in)
}
func (m *mockVenueService) UpdateVenue(ctx context.Context, id, ownerID string, in service.VenueUpdate) error {
	return m.updateFn(ctx, id, ownerID, in)
}
func (m *mockVenueService) DeleteVenue(ctx context.Context, id, ownerID string) error {
	return m.deleteFn(ctx, id, ownerID)
}
func (m *mockVenueService) SetDateStatus(ctx context.Context, id, ownerID string, date time.Time, status models.AvailabilityStatus) (*models.AvailabilityUpdate, error) {
	return m.setStatusFn(ctx, id, ownerID, date, status)
}
func (m *mockVenueService) SeedAvailability(context.Context) (int64, error) {
	return 0, nil
}

// --- Mock AuthService ---

type mockAuthService struct {
	registerFn func(ctx context.Context, in service.RegisterInput) (*models.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (*models.User, string, error)
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*models.User, string, error) {
	return m.registerFn(ctx, in)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return m.loginFn(ctx, email, password)
}

// --- Mock ProfileService ---

type mockProfileService struct {
	getFn    func(ctx context.Context, userID string) (*models.User, error)
	updateFn func(ctx context.Context, userID string, in service.ProfileUpdate) (*models.User, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return m.getFn(ctx, userID)
}
func (m *mockProfileService) UpdateProfile(ctx context.Context, userID string, in service.ProfileUpdate) (*models.User, error) {
	return m.updateFn(ctx, userID, in)
}

// --- Helpers ---

var testTokens = auth.NewTokenManager("handler-test-secret", time.Hour)

var (
	ownerUser    = &models.User{ID: "owner-1", Email: "owner@example.com", Name: "Owner", Role: models.RoleVenueOwner}
	customerUser = &models.User{ID: "user-1", Email: "user@example.com", Name: "User", Role: models.RoleUser}
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(zerolog.Nop())
	return e
}

func tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := testTokens.Issue(u)
	require.NoError(t, err)
	return token
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:           "b-1",
		VenueID:      "v-1",
		UserID:       customerUser.ID,
		EventDate:    time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC),
		EventTime:    "18:00",
		GuestCount:   50,
		EventType:    "wedding",
		ContactName:  "Asha",
		ContactEmail: "asha@example.com",
		ContactPhone: "5550100",
		Status:       models.BookingConfirmed,
		Venue:        &models.Venue{ID: "v-1", Name: "Lotus Hall", OwnerID: ownerUser.ID},
	}
}
