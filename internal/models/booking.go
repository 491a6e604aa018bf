package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID              string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	VenueID         string        `gorm:"type:varchar(36);not null;index" json:"venueId"`
	UserID          string        `gorm:"type:varchar(36);not null;index" json:"userId"`
	EventDate       time.Time     `gorm:"not null" json:"eventDate"`
	EventTime       string        `gorm:"not null" json:"eventTime"`
	GuestCount      int           `gorm:"not null" json:"guestCount"`
	EventType       string        `gorm:"not null" json:"eventType"`
	ContactName     string        `gorm:"not null" json:"contactName"`
	ContactEmail    string        `gorm:"not null" json:"contactEmail"`
	ContactPhone    string        `gorm:"not null" json:"contactPhone"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	Venue *Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"-"`
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
