package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-api/models"
	"github.com/Dosada05/tournament-api/repositories"
	"github.com/Dosada05/tournament-api/storage"
	"github.com/Dosada05/tournament-api/utils"
)

const (
	MaxAvatarSize = 2 << 20
	maxBioLength  = 1000
)

// AvatarUpload - файл аватара из multipart формы.
type AvatarUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

type UpdateProfileInput struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Bio                  *string `json:"bio"`
	CurrentPassword      string  `json:"current_password"`
	Password             string  `json:"password"`
	PasswordConfirmation string  `json:"password_confirmation"`

	Avatar *AvatarUpload `json:"-"`
}

type ProfileService interface {
	Show(ctx context.Context, userID int) (*models.User, error)
	Update(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
	Stats(ctx context.Context, userID int) (*models.ProfileStats, error)
}

type profileService struct {
	userRepo       repositories.UserRepository
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewProfileService(
	userRepo repositories.UserRepository,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ProfileService {
	return &profileService{
		userRepo:       userRepo,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

// Show возвращает пользователя с его турнирами и регистрациями игроков.
func (s *profileService) Show(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tournaments, err := s.tournamentRepo.List(gCtx, repositories.ListTournamentsFilter{UserID: &userID})
		if err != nil {
			return err
		}
		user.Tournaments = tournaments
		return nil
	})
	g.Go(func() error {
		players, err := s.playerRepo.ListByUser(gCtx, userID)
		if err != nil {
			return err
		}
		user.Players = players
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	if user.Tournaments == nil {
		user.Tournaments = []models.Tournament{}
	}
	if user.Players == nil {
		user.Players = []models.Player{}
	}
	populateUserAvatarURL(user, s.uploader)
	return user, nil
}

func (s *profileService) Update(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	bio := normalizeOptional(input.Bio)

	v := newValidator()
	v.required(name, "name")
	v.maxLen(name, 255, "name")
	v.required(email, "email")
	if !v.has("email") {
		v.email(email, "email")
	}
	v.maxLen(email, 255, "email")
	if bio != nil {
		v.maxLen(*bio, maxBioLength, "bio")
	}

	var avatarExt string
	if input.Avatar != nil {
		v.check(input.Avatar.Size <= MaxAvatarSize, "avatar", "The avatar may not be greater than 2048 kilobytes.")
		ext, extErr := GetExtensionFromContentType(input.Avatar.ContentType)
		v.check(extErr == nil, "avatar", "The avatar must be a file of type: jpeg, png, jpg, gif.")
		avatarExt = ext
	}

	if input.Password != "" {
		v.required(input.CurrentPassword, "current_password")
		if !v.has("current_password") {
			v.check(utils.CheckPasswordHash(input.CurrentPassword, user.PasswordHash),
				"current_password", "The current password is incorrect.")
		}
		v.check(len(input.Password) >= minPasswordLength, "password",
			fmt.Sprintf("The password must be at least %d characters.", minPasswordLength))
		v.check(input.Password == input.PasswordConfirmation, "password", "The password confirmation does not match.")
	}

	if err = v.err(); err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.Bio = bio

	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	var oldAvatarKey, uploadedKey *string
	if input.Avatar != nil {
		newKey := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.NewString(), avatarExt)
		if _, err := s.uploader.Upload(ctx, newKey, input.Avatar.ContentType, input.Avatar.Reader); err != nil {
			s.logger.ErrorContext(ctx, "Failed to upload avatar", slog.Int("user_id", userID), slog.Any("error", err))
		} else {
			oldAvatarKey = user.AvatarKey
			uploadedKey = &newKey
			user.AvatarKey = &newKey
		}
	}

	if err = s.userRepo.Update(ctx, user); err != nil {
		if uploadedKey != nil {
			if delErr := s.uploader.Delete(ctx, *uploadedKey); delErr != nil {
				s.logger.WarnContext(ctx, "Failed to delete orphaned avatar",
					slog.Int("user_id", userID), slog.String("key", *uploadedKey), slog.Any("error", delErr))
			}
		}
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, &ValidationError{Fields: map[string][]string{
				"email": {"The email has already been taken."},
			}}
		}
		return nil, handleRepositoryError(err)
	}

	if oldAvatarKey != nil && *oldAvatarKey != "" && *oldAvatarKey != *user.AvatarKey {
		if err := s.uploader.Delete(ctx, *oldAvatarKey); err != nil {
			s.logger.WarnContext(ctx, "Failed to delete old avatar",
				slog.Int("user_id", userID), slog.String("key", *oldAvatarKey), slog.Any("error", err))
		}
	}

	s.logger.InfoContext(ctx, "Profile updated", slog.Int("user_id", userID))
	populateUserAvatarURL(user, s.uploader)
	return user, nil
}

// Stats собирает сводку по турнирам пользователя и по его игрокам.
func (s *profileService) Stats(ctx context.Context, userID int) (*models.ProfileStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, handleRepositoryError(err)
	}

	completed := models.TournamentStatusCompleted
	stats := &models.ProfileStats{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.tournamentRepo.CountByUser(gCtx, userID, nil)
		stats.TournamentsCreated = n
		return err
	})
	g.Go(func() error {
		n, err := s.tournamentRepo.CountByUser(gCtx, userID, &completed)
		stats.TournamentsCompleted = n
		return err
	})
	g.Go(func() error {
		n, err := s.matchRepo.CountParticipationsByUser(gCtx, userID)
		stats.TotalMatches = n
		return err
	})
	g.Go(func() error {
		totals, err := s.playerRepo.TotalsByUser(gCtx, userID)
		stats.TotalWins = totals.Wins
		stats.TotalScore = totals.TotalScore
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect profile stats: %w", err)
	}

	stats.WinRate = WinRate(stats.TotalWins, stats.TotalMatches)
	return stats, nil
}
