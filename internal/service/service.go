package service

import (
	"context"
	"strings"
	"time"

	"github.com/Powromita/EazyVenue/internal/models"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Email  string
	Role   models.Role
}

// AvailabilityNotifier pushes availability changes to realtime subscribers.
// Implementations must not block on slow subscribers.
type AvailabilityNotifier interface {
	NotifyAvailability(ctx context.Context, update models.AvailabilityUpdate) error
}

type noopNotifier struct{}

func (noopNotifier) NotifyAvailability(context.Context, models.AvailabilityUpdate) error { return nil }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func today(now func() time.Time) time.Time {
	return models.CalendarDate(now().UTC())
}

func availabilityUpdate(venueID string, date time.Time, status models.AvailabilityStatus, bookingID *string) models.AvailabilityUpdate {
	return models.AvailabilityUpdate{
		VenueID:   venueID,
		Date:      date.Format(models.DateLayout),
		Status:    status,
		BookingID: bookingID,
	}
}
