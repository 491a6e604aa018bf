package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Powromita/EazyVenue/internal/dto"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/repository"
	"github.com/Powromita/EazyVenue/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createBody = `{"venueId":"v-1","eventDate":"2030-06-15","eventTime":"18:00","guestCount":50,
"eventType":"wedding","contactName":"Asha","contactEmail":"asha@example.com","contactPhone":"5550100"}`

func bookingServer(svc *mockBookingService) *BookingHandler {
	return NewBookingHandler(svc, testTokens, nil)
}

func TestCreateBooking_Handler_Success(t *testing.T) {
	var got service.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(_ context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			got = in
			return sampleBooking(), nil
		},
	}
	e := newEcho()
	bookingServer(svc).RegisterRoutes(e)

	rec := do(e, http.MethodPost, "/api/bookings", createBody, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Booking created and confirmed successfully", resp.Message)
	assert.Equal(t, "b-1", resp.Booking.ID)
	assert.Equal(t, "Lotus Hall", resp.Booking.VenueName)
	assert.Equal(t, "2030-06-15", resp.Booking.EventDate)
	assert.Equal(t, models.BookingConfirmed, resp.Booking.Status)

	assert.Empty(t, got.UserID, "anonymous bookings carry no user id")
	assert.Equal(t, "2030-06-15", got.EventDate.Format(models.DateLayout))
}

func TestCreateBooking_Handler_AuthenticatedUser(t *testing.T) {
	var got service.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(_ context.Context, in service.CreateBookingInput) (*models.Booking, error) {
			got = in
			return sampleBooking(), nil
		},
	}
	e := newEcho()
	bookingServer(svc).RegisterRoutes(e)

	rec := do(e, http.MethodPost, "/api/bookings", createBody, tokenFor(t, customerUser))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, customerUser.ID, got.UserID)
}

func TestCreateBooking_Handler_ValidationError(t *testing.T) {
	e := newEcho()
	bookingServer(&mockBookingService{}).RegisterRoutes(e)

	rec := do(e, http.MethodPost, "/api/bookings", `{"venueId":"v-1","eventDate":"tomorrow","guestCount":0}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid data", resp.Error)
	assert.NotEmpty(t, resp.Details)
}

func TestCreateBooking_Handler_ServiceErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"VenueNotFound", service.ErrVenueNotFound, http.StatusNotFound, "Venue not found"},
		{"Capacity", &service.CapacityError{Capacity: 100, Requested: 150}, http.StatusBadRequest,
			"Venue capacity is 100 people, but you're trying to book for 150 people"},
		{"PastDate", service.ErrPastDate, http.StatusBadRequest, "Event date must be in the future"},
		{"AlreadyBooked", service.ErrAlreadyBooked, http.StatusConflict, "Venue is already booked for this date"},
		{"Blocked", service.ErrDateUnavailable, http.StatusConflict, "Venue is not available on this date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFn: func(context.Context, service.CreateBookingInput) (*models.Booking, error) {
					return nil, tc.err
				},
			}
			e := newEcho()
			bookingServer(svc).RegisterRoutes(e)

			rec := do(e, http.MethodPost, "/api/bookings", createBody, "")
			assert.Equal(t, tc.code, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.msg, resp.Error)
		})
	}
}

func TestConfirmBooking_Handler(t *testing.T) {
	var gotActor service.Actor
	svc := &mockBookingService{
		transitionFn: func(_ context.Context, id string, target models.BookingStatus, actor service.Actor) (*models.Booking, bool, error) {
			gotActor = actor
			b := sampleBooking()
			b.ID = id
			b.Status = target
			return b, true, nil
		},
	}
	e := newEcho()
	bookingServer(svc).RegisterRoutes(e)

	rec := do(e, http.MethodPatch, "/api/bookings/b-9/confirm", `{"status":"CANCELLED"}`, tokenFor(t, ownerUser))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Booking cancelled successfully", resp.Message)
	assert.Equal(t, "b-9", resp.Booking.ID)
	assert.True(t, resp.AvailabilityUpdated)
	assert.Equal(t, ownerUser.ID, gotActor.UserID)
}

func TestConfirmBooking_Handler_Authorization(t *testing.T) {
	e := newEcho()
	bookingServer(&mockBookingService{}).RegisterRoutes(e)

	rec := do(e, http.MethodPatch, "/api/bookings/b-1/confirm", `{"status":"CONFIRMED"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPatch, "/api/bookings/b-1/confirm", `{"status":"CONFIRMED"}`, tokenFor(t, customerUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodPatch, "/api/bookings/b-1/confirm", `{"status":"PENDING"}`, tokenFor(t, ownerUser))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "PENDING is only accepted on /status")
}

func TestUpdateStatus_Handler(t *testing.T) {
	svc := &mockBookingService{
		transitionFn: func(_ context.Context, _ string, target models.BookingStatus, _ service.Actor) (*models.Booking, bool, error) {
			if target == models.BookingConfirmed {
				return nil, false, service.ErrAlreadyBooked
			}
			b := sampleBooking()
			b.Status = target
			return b, false, nil
		},
	}
	e := newEcho()
	bookingServer(svc).RegisterRoutes(e)

	rec := do(e, http.MethodPatch, "/api/bookings/b-1/status", `{"status":"PENDING"}`, tokenFor(t, ownerUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Booking status updated successfully", resp.Message)
	assert.Equal(t, models.BookingPending, resp.Booking.Status)
	assert.False(t, resp.AvailabilityUpdated)

	rec = do(e, http.MethodPatch, "/api/bookings/b-1/status", `{"status":"CONFIRMED"}`, tokenFor(t, ownerUser))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetBooking_Handler(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(_ context.Context, id string, actor service.Actor) (*models.Booking, error) {
			if actor.UserID != customerUser.ID {
				return nil, service.ErrBookingNotFound
			}
			return sampleBooking(), nil
		},
	}
	e := newEcho()
	bookingServer(svc).RegisterRoutes(e)

	rec := do(e, http.MethodGet, "/api/bookings/b-1", "", tokenFor(t, customerUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.BookingEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b-1", resp.Booking.ID)
	assert.Equal(t, "Lotus Hall", resp.Booking.VenueName)

	rec = do(e, http.MethodGet, "/api/bookings/b-1", "", tokenFor(t, ownerUser))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBookings_Handler(t *testing.T) {
	var gotFilter repository.BookingFilter
	svc := &mockBookingService{
		ownerFn: func(_ context.Context, _ service.Actor, filter repository.BookingFilter) ([]models.Booking, error) {
			gotFilter = filter
			return []models.Booking{*sampleBooking()}, nil
		},
		userFn: func(_ context.Context, email string, _ service.Actor) ([]models.Booking, error) {
			assert.Equal(t, "user@example.com", email)
			return []models.Booking{}, nil
		},
	}
	e := newEcho()
	bookingServer(svc).RegisterRoutes(e)

	rec := do(e, http.MethodGet, "/api/bookings?from=2030-01-01", "", tokenFor(t, ownerUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, gotFilter.From)
	assert.Nil(t, gotFilter.To)

	rec = do(e, http.MethodGet, "/api/bookings?from=01-01-2030", "", tokenFor(t, ownerUser))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/bookings/user/user@example.com", "", tokenFor(t, customerUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookings":[]}`, rec.Body.String())
}
