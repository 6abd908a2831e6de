package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/ports"
)

// TokenRepositoryImpl implements the TokenRepository interface
type TokenRepositoryImpl struct {
	db *sqlx.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *sqlx.DB) ports.TokenRepository {
	return &TokenRepositoryImpl{db: db}
}

// GetOrCreate inserts candidate as the user's token, or returns the existing
// one. The no-op DO UPDATE makes RETURNING yield the surviving row, so the
// unique constraint on user_id serializes concurrent logins: exactly one
// token value wins and every caller sees it.
func (r *TokenRepositoryImpl) GetOrCreate(ctx context.Context, userID int64, candidate string) (*entities.AuthToken, error) {
	query := `
		INSERT INTO auth_tokens (user_id, token)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = excluded.user_id
		RETURNING id, user_id, token, created_at`

	var token entities.AuthToken
	err := r.db.QueryRowContext(ctx, query, userID, candidate).Scan(
		&token.ID, &token.UserID, &token.Token, &token.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create token: %w", err)
	}

	return &token, nil
}

func (r *TokenRepositoryImpl) GetByToken(ctx context.Context, value string) (*entities.AuthToken, error) {
	query := `
		SELECT id, user_id, token, created_at
		FROM auth_tokens
		WHERE token = $1`

	var token entities.AuthToken
	err := r.db.GetContext(ctx, &token, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTokenNotFound
		}
		return nil, fmt.Errorf("get token: %w", err)
	}

	return &token, nil
}

func (r *TokenRepositoryImpl) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM auth_tokens WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}

	return nil
}
