package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/tournament-api/brackets"
	"github.com/Dosada05/tournament-api/models"
	"github.com/Dosada05/tournament-api/realtime"
	"github.com/Dosada05/tournament-api/repositories"
)

type CreateMatchInput struct {
	Round     *int    `json:"round"`
	MatchDate *string `json:"match_date"`
	Status    string  `json:"status"`
	PlayerIDs []int   `json:"player_ids"`
}

type UpdateMatchInput struct {
	Round     *int    `json:"round"`
	MatchDate *string `json:"match_date"`
	Status    string  `json:"status"`
}

type UpdateScoresInput struct {
	Scores []models.ScoreEntry `json:"scores"`
	Status *string             `json:"status"`
}

// GenerateScheduleInput - параметры кругового расписания; legs 1 или 2 (по умолчанию 1).
type GenerateScheduleInput struct {
	Legs int `json:"legs"`
}

type MatchService interface {
	Create(ctx context.Context, userID, tournamentID int, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, tournamentID, matchID int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	Update(ctx context.Context, userID, tournamentID, matchID int, input UpdateMatchInput) (*models.Match, error)
	Delete(ctx context.Context, userID, tournamentID, matchID int) error
	UpdateScores(ctx context.Context, userID, tournamentID, matchID int, input UpdateScoresInput) (*models.Match, error)
	GenerateRoundRobin(ctx context.Context, userID, tournamentID int, input GenerateScheduleInput) ([]models.Match, error)
}

type matchService struct {
	db             *sqlx.DB
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	broadcaster    Broadcaster
	logger         *slog.Logger
}

func NewMatchService(
	db *sqlx.DB,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	broadcaster Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// attachMatchPlayers подгружает участников со счётом для каждого матча одним запросом.
func attachMatchPlayers(ctx context.Context, repo repositories.MatchRepository, exec repositories.SQLExecutor, matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	ids := make([]int, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	players, err := repo.ListPlayersByMatchIDs(ctx, exec, ids)
	if err != nil {
		return err
	}
	byMatch := make(map[int][]models.MatchPlayer, len(matches))
	for _, p := range players {
		byMatch[p.MatchID] = append(byMatch[p.MatchID], p)
	}
	for i := range matches {
		matches[i].Players = byMatch[matches[i].ID]
		if matches[i].Players == nil {
			matches[i].Players = []models.MatchPlayer{}
		}
	}
	return nil
}

// validateMatchFields проверяет round, match_date и status; возвращает разобранную дату.
func validateMatchFields(v *validator, round *int, matchDate *string, status string) *time.Time {
	v.check(round != nil, "round", "The round field is required.")
	if round != nil {
		v.check(*round >= 1, "round", "The round must be at least 1.")
		v.check(*round <= maxIntColumn, "round", fmt.Sprintf("The round may not be greater than %d.", maxIntColumn))
	}

	var date *time.Time
	if raw := normalizeOptional(matchDate); raw != nil {
		parsed, err := parseDate(*raw)
		v.check(err == nil, "match_date", "The match date is not a valid date.")
		date = &parsed
	}

	v.required(status, "status")
	if !v.has("status") {
		v.check(models.MatchStatus(status).Valid(), "status", "The selected status is invalid.")
	}
	return date
}

// loadTournament возвращает турнир или ErrTournamentNotFound.
func (s *matchService) loadTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return t, nil
}

// loadNestedMatch проверяет, что матч существует и принадлежит турниру.
func (s *matchService) loadNestedMatch(ctx context.Context, exec repositories.SQLExecutor, tournamentID, matchID int) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, exec, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if m.TournamentID != tournamentID {
		return nil, ErrMatchNotInTournament
	}
	return m, nil
}

func (s *matchService) Create(ctx context.Context, userID, tournamentID int, input CreateMatchInput) (*models.Match, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !CanManageMatch(userID, t) {
		return nil, ErrForbiddenOperation
	}

	v := newValidator()
	matchDate := validateMatchFields(v, input.Round, input.MatchDate, input.Status)
	v.check(len(input.PlayerIDs) == 2, "player_ids", "The player ids must contain exactly 2 items.")
	if len(input.PlayerIDs) == 2 {
		v.check(input.PlayerIDs[0] != input.PlayerIDs[1], "player_ids", "The player ids must be distinct.")
		v.check(input.PlayerIDs[0] > 0 && input.PlayerIDs[1] > 0, "player_ids", "The player ids must be positive integers.")
	}
	if err = v.err(); err != nil {
		return nil, err
	}

	match := &models.Match{
		TournamentID: tournamentID,
		Round:        *input.Round,
		MatchDate:    matchDate,
		Status:       models.MatchStatus(input.Status),
	}

	err = withTx(ctx, s.db, s.logger, func(tx *sqlx.Tx) error {
		players, err := s.playerRepo.ListByIDsInTournament(ctx, tx, tournamentID, input.PlayerIDs)
		if err != nil {
			return err
		}
		if len(players) != len(input.PlayerIDs) {
			return ErrInvalidMatchPlayers
		}

		if err = s.matchRepo.Create(ctx, tx, match); err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}
		for _, playerID := range input.PlayerIDs {
			if err = s.matchRepo.AddParticipant(ctx, tx, match.ID, playerID, 0); err != nil {
				return fmt.Errorf("failed to attach player %d to match %d: %w", playerID, match.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	matches := []models.Match{*match}
	if err = attachMatchPlayers(ctx, s.matchRepo, nil, matches); err != nil {
		return nil, err
	}
	match = &matches[0]

	s.logger.InfoContext(ctx, "Match created",
		slog.Int("match_id", match.ID), slog.Int("tournament_id", tournamentID))
	notify(s.broadcaster, tournamentID, realtime.MessageMatchCreated, match)
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, tournamentID, matchID int) (*models.Match, error) {
	if _, err := s.loadTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	m, err := s.loadNestedMatch(ctx, nil, tournamentID, matchID)
	if err != nil {
		return nil, err
	}
	matches := []models.Match{*m}
	if err = attachMatchPlayers(ctx, s.matchRepo, nil, matches); err != nil {
		return nil, err
	}
	return &matches[0], nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	if _, err := s.loadTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if err = attachMatchPlayers(ctx, s.matchRepo, nil, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *matchService) Update(ctx context.Context, userID, tournamentID, matchID int, input UpdateMatchInput) (*models.Match, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	m, err := s.loadNestedMatch(ctx, nil, tournamentID, matchID)
	if err != nil {
		return nil, err
	}
	if !CanManageMatch(userID, t) {
		return nil, ErrForbiddenOperation
	}

	v := newValidator()
	matchDate := validateMatchFields(v, input.Round, input.MatchDate, input.Status)
	if err = v.err(); err != nil {
		return nil, err
	}

	status := models.MatchStatus(input.Status)
	if m.ResultsRecordedAt != nil && status != models.MatchStatusCompleted {
		return nil, ErrMatchResultsRecorded
	}

	m.Round = *input.Round
	m.MatchDate = matchDate
	m.Status = status
	if err = s.matchRepo.Update(ctx, m); err != nil {
		return nil, handleRepositoryError(err)
	}

	matches := []models.Match{*m}
	if err = attachMatchPlayers(ctx, s.matchRepo, nil, matches); err != nil {
		return nil, err
	}
	m = &matches[0]

	s.logger.InfoContext(ctx, "Match updated", slog.Int("match_id", m.ID), slog.Int("tournament_id", tournamentID))
	notify(s.broadcaster, tournamentID, realtime.MessageMatchUpdated, m)
	return m, nil
}

func (s *matchService) Delete(ctx context.Context, userID, tournamentID, matchID int) error {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	if _, err = s.loadNestedMatch(ctx, nil, tournamentID, matchID); err != nil {
		return err
	}
	if !CanManageMatch(userID, t) {
		return ErrForbiddenOperation
	}

	if err = s.matchRepo.Delete(ctx, matchID); err != nil {
		return handleRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "Match deleted", slog.Int("match_id", matchID), slog.Int("tournament_id", tournamentID))
	notify(s.broadcaster, tournamentID, realtime.MessageMatchDeleted, map[string]int{"id": matchID})
	return nil
}

// UpdateScores записывает счёт игроков и, при status=completed, фиксирует победителя
// и один раз переносит итоги матча в статистику всех его участников.
func (s *matchService) UpdateScores(ctx context.Context, userID, tournamentID, matchID int, input UpdateScoresInput) (*models.Match, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if _, err = s.loadNestedMatch(ctx, nil, tournamentID, matchID); err != nil {
		return nil, err
	}
	if !CanManageMatch(userID, t) {
		return nil, ErrForbiddenOperation
	}

	if err = validateScores(input.Scores); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScore, err)
	}
	complete := false
	if input.Status != nil {
		if models.MatchStatus(*input.Status) != models.MatchStatusCompleted {
			return nil, &ValidationError{Fields: map[string][]string{
				"status": {"The selected status is invalid."},
			}}
		}
		complete = true
	}

	err = withTx(ctx, s.db, s.logger, func(tx *sqlx.Tx) error {
		m, err := s.loadNestedMatch(ctx, tx, tournamentID, matchID)
		if err != nil {
			return err
		}
		if m.ResultsRecordedAt != nil {
			return ErrMatchResultsRecorded
		}

		participants, err := s.matchRepo.ListParticipants(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if err = checkParticipants(input.Scores, participants); err != nil {
			return err
		}

		for _, entry := range input.Scores {
			if err = s.matchRepo.UpdateParticipantScore(ctx, tx, matchID, entry.PlayerID, entry.Score); err != nil {
				return handleRepositoryError(err)
			}
		}

		if !complete {
			return nil
		}

		winnerID, ok := DetermineWinner(input.Scores)
		if !ok {
			return ErrInvalidScore
		}
		if err = s.matchRepo.MarkResultsRecorded(ctx, tx, matchID, &winnerID, time.Now().UTC()); err != nil {
			return handleRepositoryError(err)
		}

		// итоги считаются по сохранённому счёту всех участников, а не только перечисленных
		participants, err = s.matchRepo.ListParticipants(ctx, tx, matchID)
		if err != nil {
			return err
		}
		for _, result := range FoldMatchResult(participants, winnerID) {
			if err = s.playerRepo.ApplyMatchResult(ctx, tx, result.PlayerID, result.Score, result.Won); err != nil {
				return fmt.Errorf("failed to update statistics of player %d: %w", result.PlayerID, err)
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrPlayerNotInMatch) && !errors.Is(err, ErrMatchResultsRecorded) {
			s.logger.ErrorContext(ctx, "Failed to update match scores",
				slog.Int("match_id", matchID), slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		}
		return nil, err
	}

	updated, err := s.GetByID(ctx, tournamentID, matchID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Match scores updated",
		slog.Int("match_id", matchID), slog.Int("tournament_id", tournamentID), slog.Bool("completed", complete))
	notify(s.broadcaster, tournamentID, realtime.MessageMatchUpdated, updated)

	if complete {
		if leaderboard, lbErr := s.playerRepo.ListRanked(ctx, tournamentID); lbErr != nil {
			s.logger.WarnContext(ctx, "Failed to load leaderboard for broadcast",
				slog.Int("tournament_id", tournamentID), slog.Any("error", lbErr))
		} else {
			notify(s.broadcaster, tournamentID, realtime.MessageLeaderboardUpdated, AssignRanks(leaderboard))
		}
	}
	return updated, nil
}

// GenerateRoundRobin создаёт матчи «каждый с каждым» для всех игроков турнира одной транзакцией.
// Турнир не должен иметь матчей.
func (s *matchService) GenerateRoundRobin(ctx context.Context, userID, tournamentID int, input GenerateScheduleInput) ([]models.Match, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !CanManageMatch(userID, t) {
		return nil, ErrForbiddenOperation
	}

	legs := input.Legs
	if legs == 0 {
		legs = 1
	}
	generator, err := brackets.NewRoundRobinGenerator(legs)
	if err != nil {
		return nil, &ValidationError{Fields: map[string][]string{"legs": {"The legs must be 1 or 2."}}}
	}

	existing, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrScheduleExists
	}

	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}

	pairings, err := generator.Generate(ids)
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughPlayers) {
			return nil, &ValidationError{Fields: map[string][]string{"players": {"At least two players are required."}}}
		}
		return nil, fmt.Errorf("failed to generate %s schedule: %w", generator.Name(), err)
	}

	matches := make([]models.Match, 0, len(pairings))
	err = withTx(ctx, s.db, s.logger, func(tx *sqlx.Tx) error {
		for _, pairing := range pairings {
			m := models.Match{
				TournamentID: tournamentID,
				Round:        pairing.Round,
				Status:       models.MatchStatusPending,
			}
			if err := s.matchRepo.Create(ctx, tx, &m); err != nil {
				return fmt.Errorf("failed to create match for round %d: %w", pairing.Round, err)
			}
			for _, playerID := range []int{pairing.Player1ID, pairing.Player2ID} {
				if err := s.matchRepo.AddParticipant(ctx, tx, m.ID, playerID, 0); err != nil {
					return fmt.Errorf("failed to attach player %d to match %d: %w", playerID, m.ID, err)
				}
			}
			matches = append(matches, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err = attachMatchPlayers(ctx, s.matchRepo, nil, matches); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Round-robin schedule generated",
		slog.Int("tournament_id", tournamentID), slog.Int("matches", len(matches)), slog.Int("legs", legs))
	for i := range matches {
		notify(s.broadcaster, tournamentID, realtime.MessageMatchCreated, &matches[i])
	}
	return matches, nil
}
