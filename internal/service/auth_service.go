package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Powromita/EazyVenue/internal/auth"
	"github.com/Powromita/EazyVenue/internal/models"
	"github.com/Powromita/EazyVenue/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     models.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	log      zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, log zerolog.Logger) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, log: log}
}

// Register creates an account. An existing guest record with the same email
// is converted into the new account, keeping its bookings.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	email := normalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	var user *models.User
	err = s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.userRepo.FindByEmail(ctx, tx, email)
		switch {
		case err == nil && !existing.IsGuest:
			return ErrEmailTaken
		case err == nil:
			existing.Name = strings.TrimSpace(in.Name)
			existing.Role = role
			existing.PasswordHash = &hash
			existing.IsGuest = false
			user = existing
			return s.userRepo.Update(ctx, tx, existing)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		user = &models.User{
			Email:        email,
			Name:         strings.TrimSpace(in.Name),
			Role:         role,
			PasswordHash: &hash,
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, s.userRepo.GetDB(), normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.CanLogin() || !auth.CheckPassword(*user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
