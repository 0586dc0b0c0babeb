package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// depositClaimRepository implements the DepositClaimRepository interface
type depositClaimRepository struct {
	q Queryable
}

// NewDepositClaimRepository creates a new deposit claim repository bound to a queryable.
func NewDepositClaimRepository(q Queryable) interfaces.DepositClaimRepository {
	return &depositClaimRepository{q: q}
}

// Create inserts a pending claim
func (r *depositClaimRepository) Create(ctx context.Context, claim *entities.DepositClaim) error {
	query := `
		INSERT INTO deposit_claims (telegram_id, method, tx_ref)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, claim.TelegramID, claim.Method, claim.TxRef).
		Scan(&claim.ID, &claim.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create deposit claim for account %d: %w", claim.TelegramID, err)
	}
	return nil
}

// GetByIDForUpdate retrieves a claim with a row lock
func (r *depositClaimRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.DepositClaim, error) {
	query := `
		SELECT id, telegram_id, method, tx_ref, created_at
		FROM deposit_claims
		WHERE id = $1
		FOR UPDATE
	`

	var claim entities.DepositClaim
	err := r.q.QueryRow(ctx, query, id).Scan(
		&claim.ID,
		&claim.TelegramID,
		&claim.Method,
		&claim.TxRef,
		&claim.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit claim %d: %w", id, err)
	}
	return &claim, nil
}

// Delete removes a resolved claim
func (r *depositClaimRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM deposit_claims WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deposit claim %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("deposit claim %d not found", id)
	}
	return nil
}

// CountByUser returns the number of pending claims for an account
func (r *depositClaimRepository) CountByUser(ctx context.Context, telegramID int64) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM deposit_claims WHERE telegram_id = $1`, telegramID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count deposit claims for account %d: %w", telegramID, err)
	}
	return count, nil
}

// ListPending returns all pending claims, oldest first
func (r *depositClaimRepository) ListPending(ctx context.Context) ([]*entities.DepositClaim, error) {
	query := `
		SELECT id, telegram_id, method, tx_ref, created_at
		FROM deposit_claims
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending deposit claims: %w", err)
	}
	defer rows.Close()

	var claims []*entities.DepositClaim
	for rows.Next() {
		var claim entities.DepositClaim
		err := rows.Scan(
			&claim.ID,
			&claim.TelegramID,
			&claim.Method,
			&claim.TxRef,
			&claim.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit claim: %w", err)
		}
		claims = append(claims, &claim)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deposit claims: %w", err)
	}

	return claims, nil
}
