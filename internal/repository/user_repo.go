package repository

import (
	"context"

	"github.com/Powromita/EazyVenue/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	FindOrCreateGuest(ctx context.Context, tx *gorm.DB, guest *models.User) (*models.User, error)
	GetDB() *gorm.DB
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return tx.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := tx.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update writes every column of user, including zero values.
func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// FindOrCreateGuest returns the user with guest.Email, inserting guest when no
// such user exists. A concurrent insert of the same email is not an error.
func (r *userRepository) FindOrCreateGuest(ctx context.Context, tx *gorm.DB, guest *models.User) (*models.User, error) {
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(guest)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 {
		return guest, nil
	}
	return r.FindByEmail(ctx, tx, guest.Email)
}
