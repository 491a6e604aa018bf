package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Powromita/EazyVenue/internal/metrics"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CreateBookingInput struct {
	VenueID         string
	EventDate       time.Time
	EventTime       string
	GuestCount      int
	EventType       string
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	SpecialRequests string
	// UserID links the booking to an authenticated account. When empty the
	// booking is attributed to the user owning ContactEmail, created as a guest if needed.
	UserID string
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	TransitionBooking(ctx context.Context, id string, target models.BookingStatus, actor Actor) (*models.Booking, bool, error)
	GetBooking(ctx context.Context, id string, actor Actor) (*models.Booking, error)
	ListOwnerBookings(ctx context.Context, actor Actor, filter repository.BookingFilter) ([]models.Booking, error)
	ListVenueBookings(ctx context.Context, venueID string, actor Actor) ([]models.Booking, error)
	ListUserBookings(ctx context.Context, email string, actor Actor) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	venueRepo   repository.VenueRepository
	availRepo   repository.AvailabilityRepository
	userRepo    repository.UserRepository
	notifier    AvailabilityNotifier
	log         zerolog.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	venueRepo repository.VenueRepository,
	availRepo repository.AvailabilityRepository,
	userRepo repository.UserRepository,
	notifier AvailabilityNotifier,
	log zerolog.Logger,
) BookingService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		availRepo:   availRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
	}
}

// CreateBooking confirms a booking and marks its date BOOKED in one
// transaction. Bookings are confirmed on creation; there is no approval step.
func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	date := models.CalendarDate(in.EventDate)
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the venue row so concurrent bookings for it run one at a time
		venue, err := s.venueRepo.FindByIDForUpdate(ctx, tx, in.VenueID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return err
		}

		// 2. Capacity and date checks
		if in.GuestCount > venue.Capacity {
			return &CapacityError{Capacity: venue.Capacity, Requested: in.GuestCount}
		}
		if date.Before(today(s.now)) {
			return ErrPastDate
		}

		// 3. The date must be free
		existing, err := s.availRepo.FindByVenueDate(ctx, tx, venue.ID, date)
		switch {
		case err == nil && existing.Status == models.AvailabilityBooked:
			return ErrAlreadyBooked
		case err == nil && existing.Status == models.AvailabilityBlocked:
			return ErrDateUnavailable
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		// 4. Resolve the customer account
		userID, err := s.resolveCustomer(ctx, tx, in)
		if err != nil {
			return err
		}

		// 5. Insert the booking and claim the date
		booking := &models.Booking{
			VenueID:         venue.ID,
			UserID:          userID,
			EventDate:       date,
			EventTime:       in.EventTime,
			GuestCount:      in.GuestCount,
			EventType:       in.EventType,
			ContactName:     strings.TrimSpace(in.ContactName),
			ContactEmail:    normalizeEmail(in.ContactEmail),
			ContactPhone:    strings.TrimSpace(in.ContactPhone),
			SpecialRequests: in.SpecialRequests,
			Status:          models.BookingConfirmed,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		claimed, err := s.availRepo.MarkBooked(ctx, tx, venue.ID, date, booking.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrAlreadyBooked
		}

		booking.Venue = venue
		result = booking
		return nil
	})
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	metrics.IncBooking(metrics.BookingCreated)
	s.log.Info().
		Str("booking_id", result.ID).
		Str("venue_id", result.VenueID).
		Str("date", date.Format(models.DateLayout)).
		Msg("booking created")

	s.notify(ctx, availabilityUpdate(result.VenueID, date, models.AvailabilityBooked, &result.ID))
	return result, nil
}

func (s *bookingService) resolveCustomer(ctx context.Context, tx *gorm.DB, in CreateBookingInput) (string, error) {
	if in.UserID != "" {
		return in.UserID, nil
	}
	user, err := s.userRepo.FindOrCreateGuest(ctx, tx, &models.User{
		Email:   normalizeEmail(in.ContactEmail),
		Name:    strings.TrimSpace(in.ContactName),
		Phone:   strings.TrimSpace(in.ContactPhone),
		Role:    models.RoleUser,
		IsGuest: true,
	})
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// TransitionBooking sets a booking's status and keeps the date's availability
// in step: CONFIRMED holds the date, anything else releases it. A release
// never touches a date held by a different booking. The returned bool reports
// whether availability changed.
func (s *bookingService) TransitionBooking(ctx context.Context, id string, target models.BookingStatus, actor Actor) (*models.Booking, bool, error) {
	if !target.Valid() {
		return nil, false, ErrInvalidStatus
	}

	var (
		result *models.Booking
		update *models.AvailabilityUpdate
	)

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		venue, err := s.venueRepo.FindByIDForUpdate(ctx, tx, booking.VenueID)
		if err != nil {
			return err
		}
		if venue.OwnerID != actor.UserID {
			return ErrBookingNotFound
		}

		booking.Venue = venue
		if booking.Status == target {
			result = booking
			return nil
		}

		date := models.CalendarDate(booking.EventDate)
		if target == models.BookingConfirmed {
			if err := s.checkConfirmable(ctx, tx, venue, booking, date); err != nil {
				return err
			}
			claimed, err := s.availRepo.MarkBooked(ctx, tx, venue.ID, date, booking.ID)
			if err != nil {
				return err
			}
			if !claimed {
				return ErrAlreadyBooked
			}
			u := availabilityUpdate(venue.ID, date, models.AvailabilityBooked, &booking.ID)
			update = &u
		} else {
			released, err := s.availRepo.Release(ctx, tx, venue.ID, date, booking.ID)
			if err != nil {
				return err
			}
			if released {
				u := availabilityUpdate(venue.ID, date, models.AvailabilityAvailable, nil)
				update = &u
			}
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, target); err != nil {
			return err
		}
		booking.Status = target
		result = booking
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	s.log.Info().
		Str("booking_id", result.ID).
		Str("status", string(target)).
		Bool("availability_updated", update != nil).
		Msg("booking status changed")

	if update != nil {
		s.notify(ctx, *update)
	}
	return result, update != nil, nil
}

// checkConfirmable applies the rules CreateBooking enforces to a booking
// being confirmed again. The venue row must already be locked by tx.
func (s *bookingService) checkConfirmable(ctx context.Context, tx *gorm.DB, venue *models.Venue, booking *models.Booking, date time.Time) error {
	if booking.GuestCount > venue.Capacity {
		return &CapacityError{Capacity: venue.Capacity, Requested: booking.GuestCount}
	}
	if date.Before(today(s.now)) {
		return ErrPastDate
	}
	existing, err := s.availRepo.FindByVenueDate(ctx, tx, venue.ID, date)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case existing.Status == models.AvailabilityBlocked:
		return ErrDateUnavailable
	case existing.Status == models.AvailabilityBooked &&
		(existing.BookingID == nil || *existing.BookingID != booking.ID):
		return ErrAlreadyBooked
	}
	return nil
}

// GetBooking is visible to the booking's customer and the venue's owner.
func (s *bookingService) GetBooking(ctx context.Context, id string, actor Actor) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID == actor.UserID {
		return booking, nil
	}
	if booking.Venue != nil && booking.Venue.OwnerID == actor.UserID {
		return booking, nil
	}
	return nil, ErrBookingNotFound
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, actor Actor, filter repository.BookingFilter) ([]models.Booking, error) {
	return s.bookingRepo.FindByOwner(ctx, actor.UserID, filter)
}

func (s *bookingService) ListVenueBookings(ctx context.Context, venueID string, actor Actor) ([]models.Booking, error) {
	if _, err := s.venueRepo.FindOwned(ctx, venueID, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotOwned
		}
		return nil, err
	}
	return s.bookingRepo.FindByVenue(ctx, venueID)
}

// ListUserBookings returns bookings of the account with the given email. Callers
// may only list their own.
func (s *bookingService) ListUserBookings(ctx context.Context, email string, actor Actor) ([]models.Booking, error) {
	email = normalizeEmail(email)
	if email != normalizeEmail(actor.Email) {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.FindByEmail(ctx, s.userRepo.GetDB(), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.bookingRepo.FindByUser(ctx, user.ID)
}

func (s *bookingService) notify(ctx context.Context, update models.AvailabilityUpdate) {
	if err := s.notifier.NotifyAvailability(ctx, update); err != nil {
		s.log.Warn().Err(err).Str("venue_id", update.VenueID).Msg("availability notification failed")
	}
}

func (s *bookingService) recordRejection(err error) {
	var capErr *CapacityError
	switch {
	case errors.Is(err, ErrAlreadyBooked), errors.Is(err, ErrDateUnavailable):
		metrics.IncBooking(metrics.BookingConflict)
	case errors.Is(err, ErrVenueNotFound), errors.Is(err, ErrPastDate), errors.As(err, &capErr):
		metrics.IncBooking(metrics.BookingRejected)
	}
}
