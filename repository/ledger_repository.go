package repository

import (
	"context"
	"fmt"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// ledgerRepository implements the LedgerRepository interface
type ledgerRepository struct {
	q Queryable
}

// NewLedgerRepository creates a new ledger repository bound to a queryable.
func NewLedgerRepository(q Queryable) interfaces.LedgerRepository {
	return &ledgerRepository{q: q}
}

// Record creates a new ledger entry
func (r *ledgerRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (telegram_id, balance_before, balance_after, change_amount, transaction_type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.TelegramID,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.ChangeAmount,
		entry.TransactionType,
		entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry for account %d: %w", entry.TelegramID, err)
	}
	return nil
}

// GetByUser returns the most recent ledger entries for an account
func (r *ledgerRepository) GetByUser(ctx context.Context, telegramID int64, limit int) ([]*entities.LedgerEntry, error) {
	query := `
		SELECT id, telegram_id, balance_before, balance_after, change_amount, transaction_type, metadata, created_at
		FROM ledger_entries
		WHERE telegram_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries for account %d: %w", telegramID, err)
	}
	defer rows.Close()

	var entries []*entities.LedgerEntry
	for rows.Next() {
		var entry entities.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.TelegramID,
			&entry.BalanceBefore,
			&entry.BalanceAfter,
			&entry.ChangeAmount,
			&entry.TransactionType,
			&entry.Metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}

// HasEntryOfType reports whether the account has any entry of the given type
func (r *ledgerRepository) HasEntryOfType(ctx context.Context, telegramID int64, tt entities.TransactionType) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ledger_entries
			WHERE telegram_id = $1 AND transaction_type = $2
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, telegramID, tt).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ledger entries for account %d: %w", telegramID, err)
	}
	return exists, nil
}
