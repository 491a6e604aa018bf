package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleVenueOwner Role = "VENUE_OWNER"
	RoleUser       Role = "USER"
)

// User is either a registered account or a guest created from a booking's
// contact email. Guests have no password hash and cannot log in.
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash *string   `json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IsGuest      bool      `gorm:"not null;default:false" json:"isGuest"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Profile VendorProfile `gorm:"embedded" json:"profile"`
}

type VendorProfile struct {
	BusinessName       string `json:"businessName"`
	ContactPerson      string `json:"contactPerson"`
	Address            string `json:"address"`
	BusinessType       string `json:"businessType"`
	YearsInBusiness    string `json:"yearsInBusiness"`
	Description        string `json:"description"`
	Website            string `json:"website"`
	VenueTypes         string `json:"venueTypes"`
	CapacityRange      string `json:"capacityRange"`
	Amenities          string `json:"amenities"`
	BookingPolicies    string `json:"bookingPolicies"`
	AvailabilityStatus string `json:"availabilityStatus"`
	GST                string `gorm:"column:gst" json:"gst"`
	PaymentMethods     string `json:"paymentMethods"`
	PricingPackages    string `json:"pricingPackages"`
	Certifications     string `json:"certifications"`
	EmergencyContact   string `json:"emergencyContact"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) CanLogin() bool {
	return !u.IsGuest && u.PasswordHash != nil && *u.PasswordHash != ""
}
