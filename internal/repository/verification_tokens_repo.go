package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/tendant/simple-auth/internal/domain"
)

// VerificationTokensRepository handles verification token persistence.
// Consuming a token deletes its row, so a consumed token is
// indistinguishable from one that never existed.
type VerificationTokensRepository struct {
	db *sql.DB
}

// NewVerificationTokensRepository creates a new verification tokens repository.
func NewVerificationTokensRepository(db *sql.DB) *VerificationTokensRepository {
	return &VerificationTokensRepository{db: db}
}

// Create inserts a new verification token.
func (r *VerificationTokensRepository) Create(ctx context.Context, token *domain.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (id, user_id, token_hash, purpose, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.Purpose,
		token.CreatedAt, token.ExpiresAt,
	)
	return err
}

// GetByTokenHash retrieves a verification token by token hash and purpose.
func (r *VerificationTokensRepository) GetByTokenHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error) {
	query := `
		SELECT id, user_id, token_hash, purpose, created_at, expires_at
		FROM verification_tokens
		WHERE token_hash = $1 AND purpose = $2
	`
	return r.scanToken(r.db.QueryRowContext(ctx, query, tokenHash, purpose))
}

// Delete removes a token record. Subsequent lookups return not found.
func (r *VerificationTokensRepository) Delete(ctx context.Context, tokenID uuid.UUID) error {
	query := `DELETE FROM verification_tokens WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, tokenID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrVerificationTokenNotFound
	}
	return nil
}

// DeleteByUser removes all tokens for a (user, purpose) pair. Issuing a
// replacement token calls this first, keeping at most one active token per
// pair.
func (r *VerificationTokensRepository) DeleteByUser(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose) error {
	query := `DELETE FROM verification_tokens WHERE user_id = $1 AND purpose = $2`
	_, err := r.db.ExecContext(ctx, query, userID, purpose)
	return err
}

func (r *VerificationTokensRepository) scanToken(row *sql.Row) (*domain.VerificationToken, error) {
	token := &domain.VerificationToken{}
	err := row.Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.Purpose,
		&token.CreatedAt, &token.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVerificationTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return token, nil
}
