package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-api/models"
	"github.com/Dosada05/tournament-api/repositories"
	"github.com/Dosada05/tournament-api/storage"
)

// TournamentInput - тело запроса на создание и изменение турнира.
type TournamentInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Game        string  `json:"game"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	MaxPlayers  *int    `json:"max_players"`
	Status      string  `json:"status"`
}

type ListTournamentsInput struct {
	Status *models.TournamentStatus
	Limit  int
	Offset int
}

type TournamentService interface {
	Create(ctx context.Context, userID int, input TournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetDetails(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error)
	ListByOwner(ctx context.Context, userID int) ([]models.Tournament, error)
	Update(ctx context.Context, userID, id int, input TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, userID, id int) error
	Leaderboard(ctx context.Context, id int) ([]models.RankedPlayer, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	userRepo       repositories.UserRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		userRepo:       userRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

// applyTournamentInput валидирует ввод и переносит его в t.
func applyTournamentInput(t *models.Tournament, input TournamentInput) error {
	v := newValidator()

	name := strings.TrimSpace(input.Name)
	v.required(name, "name")
	v.maxLen(name, 255, "name")

	game := strings.TrimSpace(input.Game)
	v.required(game, "game")
	v.maxLen(game, 255, "game")

	v.required(input.StartDate, "start_date")
	start, startErr := parseDate(input.StartDate)
	if !v.has("start_date") {
		v.check(startErr == nil, "start_date", "The start date is not a valid date.")
	}

	var endDate *time.Time
	if endRaw := normalizeOptional(input.EndDate); endRaw != nil {
		end, err := parseDate(*endRaw)
		v.check(err == nil, "end_date", "The end date is not a valid date.")
		if err == nil && startErr == nil {
			v.check(end.After(start), "end_date", "The end date must be a date after start date.")
		}
		endDate = &end
	}

	v.check(input.MaxPlayers != nil, "max_players", "The max players field is required.")
	if input.MaxPlayers != nil {
		v.check(*input.MaxPlayers >= 2, "max_players", "The max players must be at least 2.")
		v.check(*input.MaxPlayers <= maxIntColumn, "max_players", fmt.Sprintf("The max players may not be greater than %d.", maxIntColumn))
	}

	status := models.TournamentStatus(input.Status)
	v.required(input.Status, "status")
	if !v.has("status") {
		v.check(status.Valid(), "status", "The selected status is invalid.")
	}

	if err := v.err(); err != nil {
		return err
	}

	t.Name = name
	t.Slug = slug.Make(name)
	t.Description = normalizeOptional(input.Description)
	t.Game = game
	t.StartDate = start
	t.EndDate = endDate
	t.MaxPlayers = *input.MaxPlayers
	t.Status = status
	return nil
}

func (s *tournamentService) Create(ctx context.Context, userID int, input TournamentInput) (*models.Tournament, error) {
	t := &models.Tournament{UserID: userID}
	if err := applyTournamentInput(t, input); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "Tournament created", slog.Int("tournament_id", t.ID), slog.Int("user_id", userID))
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return t, nil
}

// GetDetails загружает турнир вместе с владельцем, игроками и матчами (с участниками).
func (s *tournamentService) GetDetails(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		owner, err := s.userRepo.GetByID(gCtx, t.UserID)
		if err != nil {
			return fmt.Errorf("failed to load owner of tournament %d: %w", id, err)
		}
		populateUserAvatarURL(owner, s.uploader)
		t.Owner = owner
		return nil
	})

	g.Go(func() error {
		players, err := s.playerRepo.ListByTournament(gCtx, id)
		if err != nil {
			return err
		}
		t.Players = players
		return nil
	})

	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gCtx, id)
		if err != nil {
			return err
		}
		if err = attachMatchPlayers(gCtx, s.matchRepo, nil, matches); err != nil {
			return err
		}
		t.Matches = matches
		return nil
	})

	if err = g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		Status: input.Status,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]int, 0, len(tournaments))
	seen := make(map[int]bool, len(tournaments))
	for _, t := range tournaments {
		if !seen[t.UserID] {
			seen[t.UserID] = true
			ownerIDs = append(ownerIDs, t.UserID)
		}
	}

	owners, err := s.userRepo.ListByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.User, len(owners))
	for i := range owners {
		populateUserAvatarURL(&owners[i], s.uploader)
		byID[owners[i].ID] = &owners[i]
	}
	for i := range tournaments {
		tournaments[i].Owner = byID[tournaments[i].UserID]
	}
	return tournaments, nil
}

func (s *tournamentService) ListByOwner(ctx context.Context, userID int) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}
	if err = s.attachPlayers(ctx, tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (s *tournamentService) attachPlayers(ctx context.Context, tournaments []models.Tournament) error {
	ids := make([]int, len(tournaments))
	for i, t := range tournaments {
		ids[i] = t.ID
	}
	players, err := s.playerRepo.ListByTournamentIDs(ctx, ids)
	if err != nil {
		return err
	}
	byTournament := make(map[int][]models.Player, len(tournaments))
	for _, p := range players {
		byTournament[p.TournamentID] = append(byTournament[p.TournamentID], p)
	}
	for i := range tournaments {
		tournaments[i].Players = byTournament[tournaments[i].ID]
		if tournaments[i].Players == nil {
			tournaments[i].Players = []models.Player{}
		}
	}
	return nil
}

func (s *tournamentService) Update(ctx context.Context, userID, id int, input TournamentInput) (*models.Tournament, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanManageTournament(userID, t) {
		return nil, ErrForbiddenOperation
	}

	if err = applyTournamentInput(t, input); err != nil {
		return nil, err
	}
	if err = s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, handleRepositoryError(err)
	}
	return t, nil
}

func (s *tournamentService) Delete(ctx context.Context, userID, id int) error {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanManageTournament(userID, t) {
		return ErrForbiddenOperation
	}

	if err = s.tournamentRepo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "Tournament deleted", slog.Int("tournament_id", id), slog.Int("user_id", userID))
	return nil
}

func (s *tournamentService) Leaderboard(ctx context.Context, id int) ([]models.RankedPlayer, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListRanked(ctx, id)
	if err != nil {
		return nil, err
	}
	return AssignRanks(players), nil
}
