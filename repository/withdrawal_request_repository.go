package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// withdrawalRequestRepository implements the WithdrawalRequestRepository interface
type withdrawalRequestRepository struct {
	q Queryable
}

// NewWithdrawalRequestRepository creates a new withdrawal request repository bound to a queryable.
func NewWithdrawalRequestRepository(q Queryable) interfaces.WithdrawalRequestRepository {
	return &withdrawalRequestRepository{q: q}
}

// Create inserts a pending request
func (r *withdrawalRequestRepository) Create(ctx context.Context, request *entities.WithdrawalRequest) error {
	query := `
		INSERT INTO withdrawal_requests (telegram_id, amount, method, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		request.TelegramID,
		request.Amount,
		request.Method,
		request.Address,
	).Scan(&request.ID, &request.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal request for account %d: %w", request.TelegramID, err)
	}
	return nil
}

// GetByIDForUpdate retrieves a request with a row lock
func (r *withdrawalRequestRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.WithdrawalRequest, error) {
	query := `
		SELECT id, telegram_id, amount, method, address, created_at
		FROM withdrawal_requests
		WHERE id = $1
		FOR UPDATE
	`

	var request entities.WithdrawalRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.TelegramID,
		&request.Amount,
		&request.Method,
		&request.Address,
		&request.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal request %d: %w", id, err)
	}
	return &request, nil
}

// Delete removes a resolved request
func (r *withdrawalRequestRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM withdrawal_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete withdrawal request %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("withdrawal request %d not found", id)
	}
	return nil
}

// ListPending returns all pending requests, oldest first
func (r *withdrawalRequestRepository) ListPending(ctx context.Context) ([]*entities.WithdrawalRequest, error) {
	query := `
		SELECT id, telegram_id, amount, method, address, created_at
		FROM withdrawal_requests
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending withdrawal requests: %w", err)
	}
	defer rows.Close()

	var requests []*entities.WithdrawalRequest
	for rows.Next() {
		var request entities.WithdrawalRequest
		err := rows.Scan(
			&request.ID,
			&request.TelegramID,
			&request.Amount,
			&request.Method,
			&request.Address,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal request: %w", err)
		}
		requests = append(requests, &request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate withdrawal requests: %w", err)
	}

	return requests, nil
}
