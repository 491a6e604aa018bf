package repository

import (
	"context"
	"time"

	"github.com/Powromita/EazyVenue/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AvailabilityRepository interface {
	FindByVenueDate(ctx context.Context, tx *gorm.DB, venueID string, date time.Time) (*models.Availability, error)
	FindRange(ctx context.Context, venueID string, from, to time.Time) ([]models.Availability, error)
	MarkBooked(ctx context.Context, tx *gorm.DB, venueID string, date time.Time, bookingID string) (bool, error)
	Release(ctx context.Context, tx *gorm.DB, venueID string, date time.Time, bookingID string) (bool, error)
	SetStatus(ctx context.Context, tx *gorm.DB, venueID string, date time.Time, status models.AvailabilityStatus) (bool, error)
	SeedRange(ctx context.Context, tx *gorm.DB, venueID string, from time.Time, days int) (int64, error)
	DeleteByVenue(ctx context.Context, tx *gorm.DB, venueID string) error
	GetDB() *gorm.DB
}

type availabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) GetDB() *gorm.DB {
	return r.db
}

var upsertKey = []clause.Column{{Name: "venue_id"}, {Name: "date"}}

func (r *availabilityRepository) FindByVenueDate(ctx context.Context, tx *gorm.DB, venueID string, date time.Time) (*models.Availability, error) {
	var a models.Availability
	err := tx.WithContext(ctx).
		Where("venue_id = ? AND date = ?", venueID, models.CalendarDate(date)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindRange returns rows with from <= date <= to, ordered by date.
func (r *availabilityRepository) FindRange(ctx context.Context, venueID string, from, to time.Time) ([]models.Availability, error) {
	var rows []models.Availability
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND date >= ? AND date <= ?", venueID, models.CalendarDate(from), models.CalendarDate(to)).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// MarkBooked upserts (venue, date) to BOOKED for bookingID. A row that is
// booked by another booking or blocked is left untouched and false is returned.
func (r *availabilityRepository) MarkBooked(ctx context.Context, tx *gorm.DB, venueID string, date time.Time, bookingID string) (bool, error) {
	row := &models.Availability{
		VenueID:   venueID,
		Date:      models.CalendarDate(date),
		Status:    models.AvailabilityBooked,
		BookingID: &bookingID,
	}
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   upsertKey,
		DoUpdates: clause.AssignmentColumns([]string{"status", "booking_id", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{
				SQL:  "availabilities.status = ? OR availabilities.booking_id = ?",
				Vars: []any{models.AvailabilityAvailable, bookingID},
			},
		}},
	}).Create(row)
	return res.RowsAffected > 0, res.Error
}

// Release returns the date held by bookingID to AVAILABLE. Rows held by
// another booking, blocked, or already available are left alone and report
// false; a missing row is created as AVAILABLE.
func (r *availabilityRepository) Release(ctx context.Context, tx *gorm.DB, venueID string, date time.Time, bookingID string) (bool, error) {
	row := &models.Availability{
		VenueID: venueID,
		Date:    models.CalendarDate(date),
		Status:  models.AvailabilityAvailable,
	}
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   upsertKey,
		DoUpdates: clause.AssignmentColumns([]string{"status", "booking_id", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{
				SQL:  "availabilities.booking_id = ?",
				Vars: []any{bookingID},
			},
		}},
	}).Create(row)
	return res.RowsAffected > 0, res.Error
}

// SetStatus upserts an owner-controlled status (AVAILABLE or BLOCKED). Dates
// that are BOOKED are not changed and false is returned.
func (r *availabilityRepository) SetStatus(ctx context.Context, tx *gorm.DB, venueID string, date time.Time, status models.AvailabilityStatus) (bool, error) {
	row := &models.Availability{
		VenueID: venueID,
		Date:    models.CalendarDate(date),
		Status:  status,
	}
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   upsertKey,
		DoUpdates: clause.AssignmentColumns([]string{"status", "booking_id", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Neq{Column: clause.Column{Table: "availabilities", Name: "status"}, Value: models.AvailabilityBooked},
		}},
	}).Create(row)
	return res.RowsAffected > 0, res.Error
}

// SeedRange inserts AVAILABLE rows for days consecutive dates starting at
// from. Existing rows are kept as they are.
func (r *availabilityRepository) SeedRange(ctx context.Context, tx *gorm.DB, venueID string, from time.Time, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	start := models.CalendarDate(from)
	rows := make([]models.Availability, days)
	for i := range rows {
		rows[i] = models.Availability{
			VenueID: venueID,
			Date:    start.AddDate(0, 0, i),
			Status:  models.AvailabilityAvailable,
		}
	}
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: upsertKey, DoNothing: true}).
		CreateInBatches(rows, 100)
	return res.RowsAffected, res.Error
}

func (r *availabilityRepository) DeleteByVenue(ctx context.Context, tx *gorm.DB, venueID string) error {
	return tx.WithContext(ctx).Where("venue_id = ?", venueID).Delete(&models.Availability{}).Error
}
