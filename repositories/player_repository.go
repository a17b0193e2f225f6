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
	ErrPlayerNotFound         = errors.New("player not found")
	ErrPlayerInvalidReference = errors.New("invalid player tournament or user reference")
)

const playerColumns = `id, user_id, tournament_id, name, email, gamertag, total_score, wins, losses, created_at, updated_at`

// PlayerTotals - агрегаты по игрокам одного пользователя.
type PlayerTotals struct {
	Wins       int `db:"wins"`
	TotalScore int `db:"total_score"`
}

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Player, error)
	ListByTournamentIDs(ctx context.Context, tournamentIDs []int) ([]models.Player, error)
	ListByIDsInTournament(ctx context.Context, exec SQLExecutor, tournamentID int, ids []int) ([]models.Player, error)
	ListByUser(ctx context.Context, userID int) ([]models.Player, error)
	ListRanked(ctx context.Context, tournamentID int) ([]models.Player, error)
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
	ApplyMatchResult(ctx context.Context, exec SQLExecutor, playerID, score int, won bool) error
	TotalsByUser(ctx context.Context, userID int) (PlayerTotals, error)
}

type sqlxPlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) PlayerRepository {
	return &sqlxPlayerRepository{db: db}
}

func (r *sqlxPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlxPlayerRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Player) error {
	executor := r.getExecutor(exec)
	now := time.Now().UTC()
	query := `
		INSERT INTO players (
			user_id, tournament_id, name, email, gamertag,
			total_score, wins, losses, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := executor.QueryRowxContext(ctx, query,
		p.UserID, p.TournamentID, p.Name, p.Email, p.Gamertag,
		p.TotalScore, p.Wins, p.Losses, now, now,
	).Scan(&p.ID)
	if err != nil {
		return r.handlePlayerError(err)
	}
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

func (r *sqlxPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	executor := r.getExecutor(exec)
	p := &models.Player{}
	err := executor.GetContext(ctx, p, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *sqlxPlayerRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Player, error) {
	players := make([]models.Player, 0)
	query := `SELECT ` + playerColumns + ` FROM players WHERE tournament_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &players, query, tournamentID); err != nil {
		return nil, fmt.Errorf("failed to list players for tournament %d: %w", tournamentID, err)
	}
	return players, nil
}

func (r *sqlxPlayerRepository) ListByTournamentIDs(ctx context.Context, tournamentIDs []int) ([]models.Player, error) {
	players := make([]models.Player, 0)
	if len(tournamentIDs) == 0 {
		return players, nil
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE tournament_id IN (?) ORDER BY id`
	if err := selectIn(ctx, r.db, &players, query, tournamentIDs); err != nil {
		return nil, fmt.Errorf("failed to list players for tournaments: %w", err)
	}
	return players, nil
}

// ListByIDsInTournament возвращает только тех игроков из ids, которые состоят в турнире.
func (r *sqlxPlayerRepository) ListByIDsInTournament(ctx context.Context, exec SQLExecutor, tournamentID int, ids []int) ([]models.Player, error) {
	players := make([]models.Player, 0, len(ids))
	if len(ids) == 0 {
		return players, nil
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE tournament_id = ? AND id IN (?) ORDER BY id`
	if err := selectIn(ctx, r.getExecutor(exec), &players, query, tournamentID, ids); err != nil {
		return nil, fmt.Errorf("failed to list players by ids: %w", err)
	}
	return players, nil
}

func (r *sqlxPlayerRepository) ListByUser(ctx context.Context, userID int) ([]models.Player, error) {
	players := make([]models.Player, 0)
	query := `SELECT ` + playerColumns + ` FROM players WHERE user_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &players, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list players for user %d: %w", userID, err)
	}
	return players, nil
}

// ListRanked возвращает игроков турнира в порядке таблицы лидеров.
func (r *sqlxPlayerRepository) ListRanked(ctx context.Context, tournamentID int) ([]models.Player, error) {
	players := make([]models.Player, 0)
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE tournament_id = $1
		ORDER BY wins DESC, total_score DESC, id ASC`
	if err := r.db.SelectContext(ctx, &players, query, tournamentID); err != nil {
		return nil, fmt.Errorf("failed to list ranked players for tournament %d: %w", tournamentID, err)
	}
	return players, nil
}

func (r *sqlxPlayerRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	var count int
	err := r.getExecutor(exec).GetContext(ctx, &count, `SELECT COUNT(*) FROM players WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to count players for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

// Update меняет только анкетные поля; счётчики меняет ApplyMatchResult.
func (r *sqlxPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	now := time.Now().UTC()
	query := `
		UPDATE players SET
			name = $1,
			email = $2,
			gamertag = $3,
			updated_at = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Email, p.Gamertag, now, p.ID)
	if err != nil {
		return r.handlePlayerError(err)
	}
	if err = checkAffectedRows(result, ErrPlayerNotFound); err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

func (r *sqlxPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// ApplyMatchResult прибавляет счёт матча к total_score и засчитывает победу или поражение.
func (r *sqlxPlayerRepository) ApplyMatchResult(ctx context.Context, exec SQLExecutor, playerID, score int, won bool) error {
	executor := r.getExecutor(exec)
	wins, losses := 0, 1
	if won {
		wins, losses = 1, 0
	}
	query := `
		UPDATE players SET
			total_score = total_score + $1,
			wins = wins + $2,
			losses = losses + $3,
			updated_at = $4
		WHERE id = $5`

	result, err := executor.ExecContext(ctx, query, score, wins, losses, time.Now().UTC(), playerID)
	if err != nil {
		return fmt.Errorf("failed to apply match result to player %d: %w", playerID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *sqlxPlayerRepository) TotalsByUser(ctx context.Context, userID int) (PlayerTotals, error) {
	var totals PlayerTotals
	query := `
		SELECT COALESCE(SUM(wins), 0) AS wins, COALESCE(SUM(total_score), 0) AS total_score
		FROM players
		WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &totals, query, userID); err != nil {
		return PlayerTotals{}, fmt.Errorf("failed to sum player totals for user %d: %w", userID, err)
	}
	return totals, nil
}

func (r *sqlxPlayerRepository) handlePlayerError(err error) error {
	if isForeignKeyViolation(err) {
		return ErrPlayerInvalidReference
	}
	return err
}
