package repository

import (
	"context"
	"time"

	"github.com/Powromita/EazyVenue/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingFilter narrows owner-scoped listings by event date. Nil bounds are open.
type BookingFilter struct {
	From *time.Time
	To   *time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error)
	FindByVenue(ctx context.Context, venueID string) ([]models.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]models.Booking, error)
	FindByOwner(ctx context.Context, ownerID string, filter BookingFilter) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID string, status models.BookingStatus) error
	MaxConfirmedGuests(ctx context.Context, tx *gorm.DB, venueID string, from time.Time) (int, error)
	DeleteByVenue(ctx context.Context, tx *gorm.DB, venueID string) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Venue").First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the given transaction.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByVenue(ctx context.Context, venueID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("event_date ASC, created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindByOwner(ctx context.Context, ownerID string, filter BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).
		Preload("Venue").
		Joins("JOIN venues ON venues.id = bookings.venue_id").
		Where("venues.owner_id = ?", ownerID)
	if filter.From != nil {
		q = q.Where("bookings.event_date >= ?", models.CalendarDate(*filter.From))
	}
	if filter.To != nil {
		q = q.Where("bookings.event_date <= ?", models.CalendarDate(*filter.To))
	}
	err := q.Order("bookings.created_at DESC").Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID string, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

// MaxConfirmedGuests returns the largest guest count among CONFIRMED bookings
// of the venue on or after from, or 0 when there are none.
func (r *bookingRepository) MaxConfirmedGuests(ctx context.Context, tx *gorm.DB, venueID string, from time.Time) (int, error) {
	var largest int
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(MAX(guest_count), 0)").
		Where("venue_id = ? AND status = ? AND event_date >= ?", venueID, models.BookingConfirmed, models.CalendarDate(from)).
		Scan(&largest).Error
	return largest, err
}

func (r *bookingRepository) DeleteByVenue(ctx context.Context, tx *gorm.DB, venueID string) error {
	return tx.WithContext(ctx).Where("venue_id = ?", venueID).Delete(&models.Booking{}).Error
}
