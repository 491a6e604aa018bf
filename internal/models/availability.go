package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "AVAILABLE"
	AvailabilityBooked    AvailabilityStatus = "BOOKED"
	AvailabilityBlocked   AvailabilityStatus = "BLOCKED"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Availability is the per-day state of a venue. (venue_id, date) is unique.
type Availability struct {
	ID        string             `gorm:"type:varchar(36);primaryKey" json:"id"`
	VenueID   string             `gorm:"type:varchar(36);not null;uniqueIndex:idx_availability_venue_date" json:"venueId"`
	Date      time.Time          `gorm:"not null;uniqueIndex:idx_availability_venue_date" json:"date"`
	Status    AvailabilityStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	BookingID *string            `gorm:"type:varchar(36)" json:"bookingId"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func (a *Availability) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AvailabilityUpdate is the payload pushed to realtime subscribers.
type AvailabilityUpdate struct {
	VenueID   string             `json:"venueId"`
	Date      string             `json:"date"`
	Status    AvailabilityStatus `json:"status"`
	BookingID *string            `json:"bookingId"`
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
