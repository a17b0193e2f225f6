package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/tournament-api/models"
	"github.com/Dosada05/tournament-api/realtime"
	"github.com/Dosada05/tournament-api/repositories"
)

type PlayerInput struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Gamertag string  `json:"gamertag"`
}

type PlayerService interface {
	Register(ctx context.Context, userID, tournamentID int, input PlayerInput) (*models.Player, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Player, error)
	GetByID(ctx context.Context, tournamentID, playerID int) (*models.Player, error)
	Update(ctx context.Context, userID, tournamentID, playerID int, input PlayerInput) (*models.Player, error)
	Delete(ctx context.Context, userID, tournamentID, playerID int) error
	Stats(ctx context.Context, tournamentID, playerID int) (*models.PlayerStats, error)
}

type playerService struct {
	db             *sqlx.DB
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	broadcaster    Broadcaster
	logger         *slog.Logger
}

func NewPlayerService(
	db *sqlx.DB,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	broadcaster Broadcaster,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		db:             db,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// applyPlayerInput валидирует анкетные поля игрока и переносит их в p.
func applyPlayerInput(p *models.Player, input PlayerInput) error {
	v := newValidator()

	name := strings.TrimSpace(input.Name)
	v.required(name, "name")
	v.maxLen(name, 255, "name")

	email := normalizeOptional(input.Email)
	if email != nil {
		v.email(*email, "email")
	}

	gamertag := strings.TrimSpace(input.Gamertag)
	v.required(gamertag, "gamertag")
	v.maxLen(gamertag, 255, "gamertag")

	if err := v.err(); err != nil {
		return err
	}

	p.Name = name
	p.Email = email
	p.Gamertag = gamertag
	return nil
}

func (s *playerService) loadTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return t, nil
}

// loadNestedPlayer проверяет, что игрок существует и состоит в турнире.
func (s *playerService) loadNestedPlayer(ctx context.Context, tournamentID, playerID int) (*models.Player, error) {
	p, err := s.playerRepo.GetByID(ctx, nil, playerID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if p.TournamentID != tournamentID {
		return nil, ErrPlayerNotInTournament
	}
	return p, nil
}

// Register добавляет игрока в открытый турнир, если не достигнут лимит max_players.
func (s *playerService) Register(ctx context.Context, userID, tournamentID int, input PlayerInput) (*models.Player, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TournamentStatusOpen {
		return nil, ErrRegistrationNotOpen
	}

	player := &models.Player{TournamentID: tournamentID, UserID: &userID}
	if err = applyPlayerInput(player, input); err != nil {
		return nil, err
	}

	err = withTx(ctx, s.db, s.logger, func(tx *sqlx.Tx) error {
		count, err := s.playerRepo.CountByTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		if count >= t.MaxPlayers {
			return ErrTournamentFull
		}
		if err = s.playerRepo.Create(ctx, tx, player); err != nil {
			return fmt.Errorf("failed to create player: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Player registered",
		slog.Int("player_id", player.ID), slog.Int("tournament_id", tournamentID), slog.Int("user_id", userID))
	notify(s.broadcaster, tournamentID, realtime.MessagePlayerRegistered, player)
	return player, nil
}

func (s *playerService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Player, error) {
	if _, err := s.loadTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.playerRepo.ListByTournament(ctx, tournamentID)
}

// GetByID возвращает игрока вместе с его матчами и счётом в них.
func (s *playerService) GetByID(ctx context.Context, tournamentID, playerID int) (*models.Player, error) {
	if _, err := s.loadTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	p, err := s.loadNestedPlayer(ctx, tournamentID, playerID)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	p.Matches = matches
	return p, nil
}

func (s *playerService) Update(ctx context.Context, userID, tournamentID, playerID int, input PlayerInput) (*models.Player, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	p, err := s.loadNestedPlayer(ctx, tournamentID, playerID)
	if err != nil {
		return nil, err
	}
	if !CanManagePlayer(userID, p, t) {
		s.logger.WarnContext(ctx, "Player update forbidden",
			slog.Int("user_id", userID), slog.Int("player_id", playerID), slog.Int("tournament_id", tournamentID))
		return nil, ErrForbiddenOperation
	}

	if err = applyPlayerInput(p, input); err != nil {
		return nil, err
	}
	if err = s.playerRepo.Update(ctx, p); err != nil {
		return nil, handleRepositoryError(err)
	}
	return p, nil
}

func (s *playerService) Delete(ctx context.Context, userID, tournamentID, playerID int) error {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	p, err := s.loadNestedPlayer(ctx, tournamentID, playerID)
	if err != nil {
		return err
	}
	if !CanManagePlayer(userID, p, t) {
		return ErrForbiddenOperation
	}
	if err = s.playerRepo.Delete(ctx, playerID); err != nil {
		return handleRepositoryError(err)
	}
	return nil
}

// Stats считает матчи игрока в турнире, процент побед и место в таблице.
func (s *playerService) Stats(ctx context.Context, tournamentID, playerID int) (*models.PlayerStats, error) {
	if _, err := s.loadTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	p, err := s.loadNestedPlayer(ctx, tournamentID, playerID)
	if err != nil {
		return nil, err
	}

	matchCount, err := s.matchRepo.CountByPlayerInTournament(ctx, playerID, tournamentID)
	if err != nil {
		return nil, err
	}
	ranked, err := s.playerRepo.ListRanked(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	return &models.PlayerStats{
		Player:     p,
		MatchCount: matchCount,
		WinRate:    WinRate(p.Wins, matchCount),
		Rank:       RankOf(ranked, playerID),
	}, nil
}
