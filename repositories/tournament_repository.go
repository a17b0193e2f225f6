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
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentInvalidOwner = errors.New("invalid tournament owner reference")
)

const tournamentColumns = `id, user_id, name, slug, description, game, start_date, end_date,
	max_players, status, created_at, updated_at`

type ListTournamentsFilter struct {
	UserID *int
	Status *models.TournamentStatus
	Limit  int
	Offset int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
	CountByUser(ctx context.Context, userID int, status *models.TournamentStatus) (int, error)
}

type sqlxTournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) TournamentRepository {
	return &sqlxTournamentRepository{db: db}
}

func (r *sqlxTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO tournaments (
			user_id, name, slug, description, game, start_date, end_date,
			max_players, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		t.UserID, t.Name, t.Slug, t.Description, t.Game, t.StartDate, t.EndDate,
		t.MaxPlayers, t.Status, now, now,
	).Scan(&t.ID)
	if err != nil {
		return r.handleTournamentError(err)
	}
	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

func (r *sqlxTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := r.db.GetContext(ctx, t, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *sqlxTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argID)
		args = append(args, *filter.UserID)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}

	query += " ORDER BY start_date DESC, id DESC"

	// OFFSET применяется только вместе с LIMIT
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argID)
			args = append(args, filter.Offset)
		}
	}

	tournaments := make([]models.Tournament, 0)
	if err := r.db.SelectContext(ctx, &tournaments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (r *sqlxTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	now := time.Now().UTC()
	query := `
		UPDATE tournaments SET
			name = $1,
			slug = $2,
			description = $3,
			game = $4,
			start_date = $5,
			end_date = $6,
			max_players = $7,
			status = $8,
			updated_at = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Slug, t.Description, t.Game, t.StartDate, t.EndDate,
		t.MaxPlayers, t.Status, now, t.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	if err = checkAffectedRows(result, ErrTournamentNotFound); err != nil {
		return err
	}
	t.UpdatedAt = now
	return nil
}

// Delete удаляет турнир; игроки и матчи удаляются каскадно.
func (r *sqlxTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *sqlxTournamentRepository) CountByUser(ctx context.Context, userID int, status *models.TournamentStatus) (int, error) {
	query := `SELECT COUNT(*) FROM tournaments WHERE user_id = $1`
	args := []interface{}{userID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count tournaments for user %d: %w", userID, err)
	}
	return count, nil
}

func (r *sqlxTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		return ErrTournamentInvalidOwner
	}
	return err
}
