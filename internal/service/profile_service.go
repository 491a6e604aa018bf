package service

import (
	"context"
	"errors"

	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Profile models.VendorProfile
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
	cache    CatalogCache
	log      zerolog.Logger
}

// NewProfileService takes the catalog cache because owner names are part of
// cached venue listings.
func NewProfileService(userRepo repository.UserRepository, cache CatalogCache, log zerolog.Logger) ProfileService {
	if cache == nil {
		cache = noopCache{}
	}
	return &profileService{userRepo: userRepo, cache: cache, log: log}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile replaces the vendor profile block; name and phone change only when set.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	renamed := in.Name != nil && *in.Name != user.Name
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	user.Profile = in.Profile

	if err := s.userRepo.Update(ctx, s.userRepo.GetDB(), user); err != nil {
		return nil, err
	}
	if renamed {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("catalog cache invalidation failed")
		}
	}
	return user, nil
}
