package service

import (
	"context"
	"errors"
	"time"

	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	DefaultAvailabilityWindow = 30
	MaxAvailabilityWindow     = 365
)

type VenueInput struct {
	Name          string
	Description   string
	Capacity      int
	Price         int
	ContactNumber string
	Occasion      string
	Images        []string
	IsPosted      bool
}

// VenueUpdate carries a partial update; nil fields are left unchanged.
type VenueUpdate struct {
	Name          *string
	Description   *string
	Capacity      *int
	Price         *int
	ContactNumber *string
	Occasion      *string
	Images        *[]string
	IsPosted      *bool
}

// CatalogCache caches the public venue list.
type CatalogCache interface {
	GetPosted(ctx context.Context) ([]models.Venue, bool, error)
	SetPosted(ctx context.Context, venues []models.Venue) error
	Invalidate(ctx context.Context) error
}

type VenueService interface {
	ListPosted(ctx context.Context) ([]models.Venue, error)
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
	GetAvailability(ctx context.Context, id string, from *time.Time, days int) ([]models.Availability, error)

	ListOwned(ctx context.Context, ownerID string) ([]models.Venue, error)
	GetOwned(ctx context.Context, id, ownerID string) (*models.Venue, error)
	CreateVenue(ctx context.Context, ownerID string, in VenueInput) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id, ownerID string, in VenueUpdate) error
	DeleteVenue(ctx context.Context, id, ownerID string) error
	SetDateStatus(ctx context.Context, id, ownerID string, date time.Time, status models.AvailabilityStatus) (*models.AvailabilityUpdate, error)

	SeedAvailability(ctx context.Context) (int64, error)
}

type venueService struct {
	venueRepo   repository.VenueRepository
	availRepo   repository.AvailabilityRepository
	bookingRepo repository.BookingRepository
	cache       CatalogCache
	notifier    AvailabilityNotifier
	horizonDays int
	log         zerolog.Logger
	now         func() time.Time
}

func NewVenueService(
	venueRepo repository.VenueRepository,
	availRepo repository.AvailabilityRepository,
	bookingRepo repository.BookingRepository,
	cache CatalogCache,
	notifier AvailabilityNotifier,
	horizonDays int,
	log zerolog.Logger,
) VenueService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if cache == nil {
		cache = noopCache{}
	}
	return &venueService{
		venueRepo:   venueRepo,
		availRepo:   availRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		notifier:    notifier,
		horizonDays: horizonDays,
		log:         log,
		now:         time.Now,
	}
}

func (s *venueService) ListPosted(ctx context.Context) ([]models.Venue, error) {
	if venues, ok, err := s.cache.GetPosted(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache read failed")
	} else if ok {
		return venues, nil
	}

	venues, err := s.venueRepo.FindPosted(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetPosted(ctx, venues); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache write failed")
	}
	return venues, nil
}

func (s *venueService) GetVenue(ctx context.Context, id string) (*models.Venue, error) {
	venue, err := s.venueRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

// GetAvailability returns availability rows in [from, from+days], today by
// default. Dates without a row are not included.
func (s *venueService) GetAvailability(ctx context.Context, id string, from *time.Time, days int) ([]models.Availability, error) {
	if _, err := s.GetVenue(ctx, id); err != nil {
		return nil, err
	}
	start := today(s.now)
	if from != nil {
		start = models.CalendarDate(*from)
	}
	if days <= 0 {
		days = DefaultAvailabilityWindow
	}
	if days > MaxAvailabilityWindow {
		days = MaxAvailabilityWindow
	}
	return s.availRepo.FindRange(ctx, id, start, start.AddDate(0, 0, days))
}

func (s *venueService) ListOwned(ctx context.Context, ownerID string) ([]models.Venue, error) {
	return s.venueRepo.FindByOwner(ctx, ownerID)
}

func (s *venueService) GetOwned(ctx context.Context, id, ownerID string) (*models.Venue, error) {
	venue, err := s.venueRepo.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotOwned
		}
		return nil, err
	}
	return venue, nil
}

// CreateVenue stores the venue and seeds its availability horizon in the same transaction.
func (s *venueService) CreateVenue(ctx context.Context, ownerID string, in VenueInput) (*models.Venue, error) {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	venue := &models.Venue{
		OwnerID:       ownerID,
		Name:          in.Name,
		Description:   in.Description,
		Capacity:      in.Capacity,
		Price:         in.Price,
		ContactNumber: in.ContactNumber,
		Occasion:      in.Occasion,
		Images:        images,
		IsPosted:      in.IsPosted,
	}

	err := s.venueRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.venueRepo.Create(ctx, tx, venue); err != nil {
			return err
		}
		_, err := s.availRepo.SeedRange(ctx, tx, venue.ID, today(s.now), s.horizonDays)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("venue_id", venue.ID).Str("owner_id", ownerID).Msg("venue created")
	return venue, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, id, ownerID string, in VenueUpdate) error {
	values := &models.Venue{}
	var columns []string
	if in.Name != nil {
		values.Name = *in.Name
		columns = append(columns, "name")
	}
	if in.Description != nil {
		values.Description = *in.Description
		columns = append(columns, "description")
	}
	if in.Capacity != nil {
		values.Capacity = *in.Capacity
		columns = append(columns, "capacity")
	}
	if in.Price != nil {
		values.Price = *in.Price
		columns = append(columns, "price")
	}
	if in.ContactNumber != nil {
		values.ContactNumber = *in.ContactNumber
		columns = append(columns, "contact_number")
	}
	if in.Occasion != nil {
		values.Occasion = *in.Occasion
		columns = append(columns, "occasion")
	}
	if in.Images != nil {
		values.Images = *in.Images
		columns = append(columns, "images")
	}
	if in.IsPosted != nil {
		values.IsPosted = *in.IsPosted
		columns = append(columns, "is_posted")
	}

	err := s.venueRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venue, err := s.venueRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotOwned
			}
			return err
		}
		if venue.OwnerID != ownerID {
			return ErrVenueNotOwned
		}

		// Capacity may not drop below an upcoming confirmed booking.
		if in.Capacity != nil && *in.Capacity < venue.Capacity {
			booked, err := s.bookingRepo.MaxConfirmedGuests(ctx, tx, id, today(s.now))
			if err != nil {
				return err
			}
			if *in.Capacity < booked {
				return &CapacityBelowBookingsError{Capacity: *in.Capacity, Booked: booked}
			}
		}

		n, err := s.venueRepo.UpdateOwned(ctx, tx, id, ownerID, values, columns)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrVenueNotOwned
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// DeleteVenue removes the venue together with its availability and bookings.
func (s *venueService) DeleteVenue(ctx context.Context, id, ownerID string) error {
	err := s.venueRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venue, err := s.venueRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotOwned
			}
			return err
		}
		if venue.OwnerID != ownerID {
			return ErrVenueNotOwned
		}
		if err := s.availRepo.DeleteByVenue(ctx, tx, id); err != nil {
			return err
		}
		if err := s.bookingRepo.DeleteByVenue(ctx, tx, id); err != nil {
			return err
		}
		n, err := s.venueRepo.DeleteOwned(ctx, tx, id, ownerID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrVenueNotOwned
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info().Str("venue_id", id).Str("owner_id", ownerID).Msg("venue deleted")
	return nil
}

// SetDateStatus lets an owner block or reopen a date. BOOKED dates can only
// change through their booking.
func (s *venueService) SetDateStatus(ctx context.Context, id, ownerID string, date time.Time, status models.AvailabilityStatus) (*models.AvailabilityUpdate, error) {
	if status != models.AvailabilityAvailable && status != models.AvailabilityBlocked {
		return nil, ErrInvalidStatus
	}
	day := models.CalendarDate(date)
	if day.Before(today(s.now)) {
		return nil, ErrPastDate
	}

	err := s.venueRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venue, err := s.venueRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotOwned
			}
			return err
		}
		if venue.OwnerID != ownerID {
			return ErrVenueNotOwned
		}
		changed, err := s.availRepo.SetStatus(ctx, tx, id, day, status)
		if err != nil {
			return err
		}
		if !changed {
			return ErrDateBooked
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	update := availabilityUpdate(id, day, status, nil)
	if err := s.notifier.NotifyAvailability(ctx, update); err != nil {
		s.log.Warn().Err(err).Str("venue_id", id).Msg("availability notification failed")
	}
	return &update, nil
}

// SeedAvailability extends every venue's AVAILABLE horizon from today. Existing
// rows are not modified.
func (s *venueService) SeedAvailability(ctx context.Context) (int64, error) {
	ids, err := s.venueRepo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	start := today(s.now)
	for _, id := range ids {
		n, err := s.availRepo.SeedRange(ctx, s.availRepo.GetDB(), id, start, s.horizonDays)
		if err != nil {
			return total, err
		}
		total += n
		s.log.Debug().Str("venue_id", id).Int64("created", n).Msg("seeded availability")
	}
	return total, nil
}

func (s *venueService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

type noopCache struct{}

func (noopCache) GetPosted(context.Context) ([]models.Venue, bool, error) { return nil, false, nil }
func (noopCache) SetPosted(context.Context, []models.Venue) error         { return nil }
func (noopCache) Invalidate(context.Context) error                        { return nil }
