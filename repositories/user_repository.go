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
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
)

const userColumns = `id, name, email, password_hash, bio, avatar_key, created_at, updated_at`

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByIDs(ctx context.Context, ids []int) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type sqlxUserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqlxUserRepository{db: db}
}

func (r *sqlxUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO users (name, email, password_hash, bio, avatar_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Bio, user.AvatarKey, now, now,
	).Scan(&user.ID)
	if err != nil {
		return r.handleUserError(err)
	}
	user.CreatedAt, user.UpdatedAt = now, now
	return nil
}

func (r *sqlxUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := r.db.GetContext(ctx, user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *sqlxUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.GetContext(ctx, user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *sqlxUserRepository) ListByIDs(ctx context.Context, ids []int) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	if err := selectIn(ctx, r.db, &users, `SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids); err != nil {
		return nil, fmt.Errorf("failed to list users by ids: %w", err)
	}
	return users, nil
}

func (r *sqlxUserRepository) Update(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	query := `
		UPDATE users SET
			name = $1,
			email = $2,
			password_hash = $3,
			bio = $4,
			avatar_key = $5,
			updated_at = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Bio, user.AvatarKey, now, user.ID,
	)
	if err != nil {
		return r.handleUserError(err)
	}
	if err = checkAffectedRows(result, ErrUserNotFound); err != nil {
		return err
	}
	user.UpdatedAt = now
	return nil
}

func (r *sqlxUserRepository) handleUserError(err error) error {
	if isUniqueViolation(err, "users_email_key", "users.email") {
		return ErrUserEmailConflict
	}
	return err
}
