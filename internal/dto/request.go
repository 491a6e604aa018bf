package dto

import "github.com/Powromita/EazyVenue/internal/models"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=VENUE_OWNER USER"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateBookingRequest struct {
	VenueID         string `json:"venueId" validate:"required"`
	EventDate       string `json:"eventDate" validate:"required,datetime=2006-01-02"`
	EventTime       string `json:"eventTime" validate:"required"`
	GuestCount      int    `json:"guestCount" validate:"required,gt=0"`
	EventType       string `json:"eventType" validate:"required"`
	ContactName     string `json:"contactName" validate:"required"`
	ContactEmail    string `json:"contactEmail" validate:"required,email"`
	ContactPhone    string `json:"contactPhone" validate:"required"`
	SpecialRequests string `json:"specialRequests" validate:"max=2000"`
}

// ConfirmBookingRequest is the body of PATCH /bookings/:id/confirm.
type ConfirmBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED CANCELLED"`
}

type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
}

type CreateVenueRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Description   string   `json:"description"`
	Capacity      int      `json:"capacity" validate:"required,gt=0"`
	Price         int      `json:"price" validate:"gte=0"`
	ContactNumber string   `json:"contactNumber"`
	Occasion      string   `json:"occasion"`
	Images        []string `json:"images" validate:"omitempty,dive,required"`
	IsPosted      bool     `json:"isPosted"`
}

// UpdateVenueRequest is a partial update; omitted fields keep their value.
type UpdateVenueRequest struct {
	Name          *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string   `json:"description"`
	Capacity      *int      `json:"capacity" validate:"omitempty,gt=0"`
	Price         *int      `json:"price" validate:"omitempty,gte=0"`
	ContactNumber *string   `json:"contactNumber"`
	Occasion      *string   `json:"occasion"`
	Images        *[]string `json:"images" validate:"omitempty,dive,required"`
	IsPosted      *bool     `json:"isPosted"`
}

type DateStatusRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Status string `json:"status" validate:"required,oneof=AVAILABLE BLOCKED"`
}

type ProfileRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone              *string `json:"phone"`
	BusinessName       string  `json:"businessName"`
	ContactPerson      string  `json:"contactPerson"`
	Address            string  `json:"address"`
	BusinessType       string  `json:"businessType"`
	YearsInBusiness    string  `json:"yearsInBusiness"`
	Description        string  `json:"description"`
	Website            string  `json:"website" validate:"omitempty,url"`
	VenueTypes         string  `json:"venueTypes"`
	CapacityRange      string  `json:"capacityRange"`
	Amenities          string  `json:"amenities"`
	BookingPolicies    string  `json:"bookingPolicies"`
	AvailabilityStatus string  `json:"availabilityStatus"`
	GST                string  `json:"gst"`
	PaymentMethods     string  `json:"paymentMethods"`
	PricingPackages    string  `json:"pricingPackages"`
	Certifications     string  `json:"certifications"`
	EmergencyContact   string  `json:"emergencyContact"`
}

func (r ProfileRequest) ToVendorProfile() models.VendorProfile {
	return models.VendorProfile{
		BusinessName:       r.BusinessName,
		ContactPerson:      r.ContactPerson,
		Address:            r.Address,
		BusinessType:       r.BusinessType,
		YearsInBusiness:    r.YearsInBusiness,
		Description:        r.Description,
		Website:            r.Website,
		VenueTypes:         r.VenueTypes,
		CapacityRange:      r.CapacityRange,
		Amenities:          r.Amenities,
		BookingPolicies:    r.BookingPolicies,
		AvailabilityStatus: r.AvailabilityStatus,
		GST:                r.GST,
		PaymentMethods:     r.PaymentMethods,
		PricingPackages:    r.PricingPackages,
		Certifications:     r.Certifications,
		EmergencyContact:   r.EmergencyContact,
	}
}
