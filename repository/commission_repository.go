package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// commissionRepository implements the CommissionRepository interface
type commissionRepository struct {
	q Queryable
}

// NewCommissionRepository creates a new commission repository bound to a queryable.
func NewCommissionRepository(q Queryable) interfaces.CommissionRepository {
	return &commissionRepository{q: q}
}

// Create inserts a commission entry
func (r *commissionRepository) Create(ctx context.Context, entry *entities.CommissionEntry) error {
	query := `
		INSERT INTO commission_entries (amount, source)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, entry.Amount, entry.Source).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create commission entry: %w", err)
	}
	return nil
}

// GetTotal returns the sum of all recorded commissions
func (r *commissionRepository) GetTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM commission_entries`).
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum commission entries: %w", err)
	}
	return total, nil
}
