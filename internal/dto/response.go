package dto

import (
	"time"

	"github.com/Powromita/EazyVenue/internal/models"
)

type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type UserResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// BookingSummary is the booking echoed back on creation.
type BookingSummary struct {
	ID         string               `json:"id"`
	VenueName  string               `json:"venueName"`
	EventDate  string               `json:"eventDate"`
	EventTime  string               `json:"eventTime"`
	GuestCount int                  `json:"guestCount"`
	EventType  string               `json:"eventType"`
	Status     models.BookingStatus `json:"status"`
}

type CreateBookingResponse struct {
	Message string         `json:"message"`
	Booking BookingSummary `json:"booking"`
}

type BookingResponse struct {
	ID              string               `json:"id"`
	VenueID         string               `json:"venueId"`
	VenueName       string               `json:"venueName,omitempty"`
	UserID          string               `json:"userId"`
	EventDate       string               `json:"eventDate"`
	EventTime       string               `json:"eventTime"`
	GuestCount      int                  `json:"guestCount"`
	EventType       string               `json:"eventType"`
	ContactName     string               `json:"contactName"`
	ContactEmail    string               `json:"contactEmail"`
	ContactPhone    string               `json:"contactPhone"`
	SpecialRequests string               `json:"specialRequests,omitempty"`
	Status          models.BookingStatus `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

type TransitionResponse struct {
	Message             string          `json:"message"`
	Booking             BookingResponse `json:"booking"`
	AvailabilityUpdated bool            `json:"availabilityUpdated"`
}

type BookingEnvelope struct {
	Booking BookingResponse `json:"booking"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type OwnerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type VenueResponse struct {
	ID            string        `json:"id"`
	OwnerID       string        `json:"ownerId"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Capacity      int           `json:"capacity"`
	Price         int           `json:"price"`
	ContactNumber string        `json:"contactNumber"`
	Occasion      string        `json:"occasion"`
	Images        []string      `json:"images"`
	IsPosted      bool          `json:"isPosted"`
	Owner         *OwnerSummary `json:"owner,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type VenueEnvelope struct {
	Venue VenueResponse `json:"venue"`
}

type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

type AvailabilityResponse struct {
	ID        string                    `json:"id"`
	VenueID   string                    `json:"venueId"`
	Date      string                    `json:"date"`
	Status    models.AvailabilityStatus `json:"status"`
	BookingID *string                   `json:"bookingId"`
}

type AvailabilityListResponse struct {
	Availability []AvailabilityResponse `json:"availability"`
}

type DateStatusResponse struct {
	Success bool                      `json:"success"`
	Update  models.AvailabilityUpdate `json:"availability"`
}

type ProfileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	models.VendorProfile
}

type ProfileEnvelope struct {
	User ProfileResponse `json:"user"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func ToBookingSummary(b *models.Booking) BookingSummary {
	s := BookingSummary{
		ID:         b.ID,
		EventDate:  b.EventDate.Format(models.DateLayout),
		EventTime:  b.EventTime,
		GuestCount: b.GuestCount,
		EventType:  b.EventType,
		Status:     b.Status,
	}
	if b.Venue != nil {
		s.VenueName = b.Venue.Name
	}
	return s
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	r := BookingResponse{
		ID:              b.ID,
		VenueID:         b.VenueID,
		UserID:          b.UserID,
		EventDate:       b.EventDate.Format(models.DateLayout),
		EventTime:       b.EventTime,
		GuestCount:      b.GuestCount,
		EventType:       b.EventType,
		ContactName:     b.ContactName,
		ContactEmail:    b.ContactEmail,
		ContactPhone:    b.ContactPhone,
		SpecialRequests: b.SpecialRequests,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Venue != nil {
		r.VenueName = b.Venue.Name
	}
	return r
}

func ToBookingList(bookings []models.Booking) BookingListResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return BookingListResponse{Bookings: resp}
}

// ToVenueResponse includes the owner's email only when withEmail is set.
func ToVenueResponse(v *models.Venue, withEmail bool) VenueResponse {
	images := v.Images
	if images == nil {
		images = []string{}
	}
	r := VenueResponse{
		ID:            v.ID,
		OwnerID:       v.OwnerID,
		Name:          v.Name,
		Description:   v.Description,
		Capacity:      v.Capacity,
		Price:         v.Price,
		ContactNumber: v.ContactNumber,
		Occasion:      v.Occasion,
		Images:        images,
		IsPosted:      v.IsPosted,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if v.Owner != nil {
		r.Owner = &OwnerSummary{ID: v.Owner.ID, Name: v.Owner.Name}
		if withEmail {
			r.Owner.Email = v.Owner.Email
		}
	}
	return r
}

func ToVenueResponses(venues []models.Venue) []VenueResponse {
	resp := make([]VenueResponse, len(venues))
	for i := range venues {
		resp[i] = ToVenueResponse(&venues[i], false)
	}
	return resp
}

func ToAvailabilityList(rows []models.Availability) AvailabilityListResponse {
	resp := make([]AvailabilityResponse, len(rows))
	for i, a := range rows {
		resp[i] = AvailabilityResponse{
			ID:        a.ID,
			VenueID:   a.VenueID,
			Date:      a.Date.Format(models.DateLayout),
			Status:    a.Status,
			BookingID: a.BookingID,
		}
	}
	return AvailabilityListResponse{Availability: resp}
}

func ToProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Phone:         u.Phone,
		VendorProfile: u.Profile,
	}
}
