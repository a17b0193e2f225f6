package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// TokenRepository хранит jti отозванных токенов до истечения их exp.
type TokenRepository interface {
	Revoke(ctx context.Context, tokenID string, userID int, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sqlxTokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &sqlxTokenRepository{db: db}
}

// Revoke идемпотентен: повторный отзыв того же jti ничего не меняет.
func (r *sqlxTokenRepository) Revoke(ctx context.Context, tokenID string, userID int, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (jti, user_id, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (jti) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, tokenID, userID, expiresAt.UTC(), time.Now().UTC()); err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *sqlxTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM revoked_tokens WHERE jti = $1`, tokenID); err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return n > 0, nil
}

func (r *sqlxTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return result.RowsAffected()
}
