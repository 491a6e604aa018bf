package repository

import (
	"context"

	"github.com/Powromita/EazyVenue/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VenueRepository interface {
	Create(ctx context.Context, tx *gorm.DB, venue *models.Venue) error
	FindByID(ctx context.Context, id string) (*models.Venue, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Venue, error)
	FindPosted(ctx context.Context) ([]models.Venue, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Venue, error)
	FindOwned(ctx context.Context, id, ownerID string) (*models.Venue, error)
	UpdateOwned(ctx context.Context, tx *gorm.DB, id, ownerID string, values *models.Venue, columns []string) (int64, error)
	DeleteOwned(ctx context.Context, tx *gorm.DB, id, ownerID string) (int64, error)
	ListIDs(ctx context.Context) ([]string, error)
	GetDB() *gorm.DB
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *venueRepository) Create(ctx context.Context, tx *gorm.DB, venue *models.Venue) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(venue).Error
}

func (r *venueRepository) FindByID(ctx context.Context, id string) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.WithContext(ctx).Preload("Owner").First(&venue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// FindByIDForUpdate locks the venue row for the rest of the transaction.
// SQLite has no row locks and serializes writers instead.
func (r *venueRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Venue, error) {
	var venue models.Venue
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&venue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) FindPosted(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("is_posted = ?", true).
		Order("created_at DESC").
		Find(&venues).Error
	return venues, err
}

func (r *venueRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Venue, error) {
	var venues []models.Venue
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&venues).Error
	return venues, err
}

func (r *venueRepository) FindOwned(ctx context.Context, id, ownerID string) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&venue).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// UpdateOwned writes the listed columns from values when ownerID owns the
// venue and reports how many rows matched. Zero values in the listed columns
// are written.
func (r *venueRepository) UpdateOwned(ctx context.Context, tx *gorm.DB, id, ownerID string, values *models.Venue, columns []string) (int64, error) {
	selected := append(append([]string{}, columns...), "updated_at")
	res := tx.WithContext(ctx).
		Model(&models.Venue{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Select(selected).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (r *venueRepository) DeleteOwned(ctx context.Context, tx *gorm.DB, id, ownerID string) (int64, error) {
	res := tx.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Venue{})
	return res.RowsAffected, res.Error
}

func (r *venueRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Venue{}).Order("created_at ASC").Pluck("id", &ids).Error
	return ids, err
}
