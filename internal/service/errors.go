package service

import (
	"errors"
	"fmt"
)

// Messages are returned to API clients verbatim.
var (
	ErrVenueNotFound      = errors.New("Venue not found")
	ErrVenueNotOwned      = errors.New("Venue not found or not owned by user")
	ErrBookingNotFound    = errors.New("Booking not found")
	ErrUserNotFound       = errors.New("User not found")
	ErrPastDate           = errors.New("Event date must be in the future")
	ErrAlreadyBooked      = errors.New("Venue is already booked for this date")
	ErrDateUnavailable    = errors.New("Venue is not available on this date")
	ErrDateBooked         = errors.New("Date is booked and cannot be changed")
	ErrInvalidStatus      = errors.New("Invalid status")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

// CapacityError reports a guest count above the venue's capacity.
type CapacityError struct {
	Capacity  int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Venue capacity is %d people, but you're trying to book for %d people", e.Capacity, e.Requested)
}

// CapacityBelowBookingsError reports a capacity change that would leave an
// upcoming confirmed booking over the limit.
type CapacityBelowBookingsError struct {
	Capacity int
	Booked   int
}

func (e *CapacityBelowBookingsError) Error() string {
	return fmt.Sprintf("Capacity cannot be lower than %d people, the largest upcoming confirmed booking", e.Booked)
}
