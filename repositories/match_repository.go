package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/tournament-api/models"
)

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchResultsRecorded  = errors.New("match results already recorded")
	ErrParticipationNotFound = errors.New("player is not a participant of the match")
	ErrParticipationConflict = errors.New("player already participates in the match")
	ErrMatchInvalidReference = errors.New("invalid match tournament or player reference")
)

const matchColumns = `id, tournament_id, round, match_date, status, winner_player_id, results_recorded_at, created_at, updated_at`

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error

	AddParticipant(ctx context.Context, exec SQLExecutor, matchID, playerID, score int) error
	ListParticipants(ctx context.Context, exec SQLExecutor, matchID int) ([]models.Participation, error)
	UpdateParticipantScore(ctx context.Context, exec SQLExecutor, matchID, playerID, score int) error
	MarkResultsRecorded(ctx context.Context, exec SQLExecutor, matchID int, winnerPlayerID *int, recordedAt time.Time) error

	ListPlayersByMatchIDs(ctx context.Context, exec SQLExecutor, matchIDs []int) ([]models.MatchPlayer, error)
	ListByPlayer(ctx context.Context, playerID int) ([]models.PlayerMatch, error)
	CountByPlayerInTournament(ctx context.Context, playerID, tournamentID int) (int, error)
	CountParticipationsByUser(ctx context.Context, userID int) (int, error)
}

type sqlxMatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) MatchRepository {
	return &sqlxMatchRepository{db: db}
}

func (r *sqlxMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlxMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	now := time.Now().UTC()
	query := `
		INSERT INTO matches (tournament_id, round, match_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := executor.QueryRowxContext(ctx, query,
		m.TournamentID, m.Round, m.MatchDate, m.Status, now, now,
	).Scan(&m.ID)
	if err != nil {
		return r.handleMatchError(err)
	}
	m.CreatedAt, m.UpdatedAt = now, now
	return nil
}

func (r *sqlxMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	m := &models.Match{}
	err := r.getExecutor(exec).GetContext(ctx, m, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *sqlxMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1 ORDER BY round, id`
	if err := r.db.SelectContext(ctx, &matches, query, tournamentID); err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

// Update меняет расписание и статус матча. Участники и итоги здесь не меняются.
func (r *sqlxMatchRepository) Update(ctx context.Context, m *models.Match) error {
	now := time.Now().UTC()
	query := `
		UPDATE matches SET
			round = $1,
			match_date = $2,
			status = $3,
			updated_at = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, m.Round, m.MatchDate, m.Status, now, m.ID)
	if err != nil {
		return r.handleMatchError(err)
	}
	if err = checkAffectedRows(result, ErrMatchNotFound); err != nil {
		return err
	}
	m.UpdatedAt = now
	return nil
}

func (r *sqlxMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *sqlxMatchRepository) AddParticipant(ctx context.Context, exec SQLExecutor, matchID, playerID, score int) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO match_player (match_id, player_id, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.getExecutor(exec).ExecContext(ctx, query, matchID, playerID, score, now, now)
	if err != nil {
		if isUniqueViolation(err, "match_player_match_id_player_id_key", "match_player.match_id") {
			return ErrParticipationConflict
		}
		return r.handleMatchError(err)
	}
	return nil
}

func (r *sqlxMatchRepository) ListParticipants(ctx context.Context, exec SQLExecutor, matchID int) ([]models.Participation, error) {
	participations := make([]models.Participation, 0, 2)
	query := `
		SELECT id, match_id, player_id, score, created_at, updated_at
		FROM match_player
		WHERE match_id = $1
		ORDER BY id`
	if err := r.getExecutor(exec).SelectContext(ctx, &participations, query, matchID); err != nil {
		return nil, fmt.Errorf("failed to list participants of match %d: %w", matchID, err)
	}
	return participations, nil
}

func (r *sqlxMatchRepository) UpdateParticipantScore(ctx context.Context, exec SQLExecutor, matchID, playerID, score int) error {
	query := `UPDATE match_player SET score = $1, updated_at = $2 WHERE match_id = $3 AND player_id = $4`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, score, time.Now().UTC(), matchID, playerID)
	if err != nil {
		return fmt.Errorf("failed to update score of player %d in match %d: %w", playerID, matchID, err)
	}
	return checkAffectedRows(result, ErrParticipationNotFound)
}

// MarkResultsRecorded завершает матч и фиксирует победителя ровно один раз.
// Повторный вызов для того же матча возвращает ErrMatchResultsRecorded.
func (r *sqlxMatchRepository) MarkResultsRecorded(ctx context.Context, exec SQLExecutor, matchID int, winnerPlayerID *int, recordedAt time.Time) error {
	query := `
		UPDATE matches SET
			status = $1,
			winner_player_id = $2,
			results_recorded_at = $3,
			updated_at = $3
		WHERE id = $4 AND results_recorded_at IS NULL`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, models.MatchStatusCompleted, winnerPlayerID, recordedAt, matchID)
	if err != nil {
		return fmt.Errorf("failed to record results of match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrMatchResultsRecorded)
}

// ListPlayersByMatchIDs возвращает участников матчей вместе со счётом.
func (r *sqlxMatchRepository) ListPlayersByMatchIDs(ctx context.Context, exec SQLExecutor, matchIDs []int) ([]models.MatchPlayer, error) {
	players := make([]models.MatchPlayer, 0, len(matchIDs)*2)
	if len(matchIDs) == 0 {
		return players, nil
	}
	query := `
		SELECT
			p.id, p.user_id, p.tournament_id, p.name, p.email, p.gamertag,
			p.total_score, p.wins, p.losses, p.created_at, p.updated_at,
			mp.match_id, mp.score
		FROM match_player mp
		JOIN players p ON p.id = mp.player_id
		WHERE mp.match_id IN (?)
		ORDER BY mp.match_id, mp.id`
	if err := selectIn(ctx, r.getExecutor(exec), &players, query, matchIDs); err != nil {
		return nil, fmt.Errorf("failed to list match players: %w", err)
	}
	return players, nil
}

// ListByPlayer возвращает матчи игрока вместе с его счётом в каждом.
func (r *sqlxMatchRepository) ListByPlayer(ctx context.Context, playerID int) ([]models.PlayerMatch, error) {
	matches := make([]models.PlayerMatch, 0)
	query := `
		SELECT
			m.id, m.tournament_id, m.round, m.match_date, m.status, m.winner_player_id,
			m.results_recorded_at, m.created_at, m.updated_at,
			mp.score
		FROM match_player mp
		JOIN matches m ON m.id = mp.match_id
		WHERE mp.player_id = $1
		ORDER BY m.round, m.id`
	if err := r.db.SelectContext(ctx, &matches, query, playerID); err != nil {
		return nil, fmt.Errorf("failed to list matches of player %d: %w", playerID, err)
	}
	return matches, nil
}

func (r *sqlxMatchRepository) CountByPlayerInTournament(ctx context.Context, playerID, tournamentID int) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM match_player mp
		JOIN matches m ON m.id = mp.match_id
		WHERE mp.player_id = $1 AND m.tournament_id = $2`
	if err := r.db.GetContext(ctx, &count, query, playerID, tournamentID); err != nil {
		return 0, fmt.Errorf("failed to count matches of player %d: %w", playerID, err)
	}
	return count, nil
}

// CountParticipationsByUser считает строки match_player всех игроков, зарегистрированных пользователем.
func (r *sqlxMatchRepository) CountParticipationsByUser(ctx context.Context, userID int) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM match_player mp
		JOIN players p ON p.id = mp.player_id
		WHERE p.user_id = $1`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count match participations for user %d: %w", userID, err)
	}
	return count, nil
}

func (r *sqlxMatchRepository) handleMatchError(err error) error {
	if isForeignKeyViolation(err) {
		return ErrMatchInvalidReference
	}
	return err
}
