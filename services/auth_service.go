package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/tournament-api/models"
	"github.com/Dosada05/tournament-api/repositories"
	"github.com/Dosada05/tournament-api/storage"
	"github.com/Dosada05/tournament-api/utils"
)

const minPasswordLength = 8

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	CurrentUser(ctx context.Context, userID int) (*models.User, error)
	Logout(ctx context.Context, userID int, tokenID string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	uploader  storage.FileUploader
}

func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository, uploader storage.FileUploader) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		uploader:  uploader,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	v := newValidator()
	v.required(input.Name, "name")
	v.maxLen(input.Name, 255, "name")
	v.required(input.Email, "email")
	if !v.has("email") {
		v.email(input.Email, "email")
	}
	v.maxLen(input.Email, 255, "email")
	v.check(len(input.Password) >= minPasswordLength, "password",
		fmt.Sprintf("The password must be at least %d characters.", minPasswordLength))
	v.check(input.Password == input.PasswordConfirmation, "password", "The password confirmation does not match.")
	if err := v.err(); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if err = s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	populateUserAvatarURL(user, s.uploader)
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrAuthInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrAuthInvalidCredentials
	}

	populateUserAvatarURL(user, s.uploader)
	return user, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	populateUserAvatarURL(user, s.uploader)
	return user, nil
}

// Logout отзывает токен по его jti до момента expiresAt.
// Заодно чистит записи об уже истёкших токенах.
func (s *authService) Logout(ctx context.Context, userID int, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrAuthInvalidCredentials
	}
	if err := s.tokenRepo.Revoke(ctx, tokenID, userID, expiresAt); err != nil {
		return handleRepositoryError(err)
	}
	if _, err := s.tokenRepo.DeleteExpired(ctx, time.Now()); err != nil {
		return fmt.Errorf("failed to prune revoked tokens: %w", err)
	}
	return nil
}

func (s *authService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.tokenRepo.IsRevoked(ctx, tokenID)
}
