package repository

import (
	"context"
	"fmt"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// winnerRecordRepository implements the WinnerRecordRepository interface
type winnerRecordRepository struct {
	q Queryable
}

// NewWinnerRecordRepository creates a new winner record repository bound to a queryable.
func NewWinnerRecordRepository(q Queryable) interfaces.WinnerRecordRepository {
	return &winnerRecordRepository{q: q}
}

// Create inserts a winner record
func (r *winnerRecordRepository) Create(ctx context.Context, record *entities.WinnerRecord) error {
	query := `
		INSERT INTO winner_records (draw_id, ticket_id, telegram_id, stake, win_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		record.DrawID,
		record.TicketID,
		record.TelegramID,
		record.Stake,
		record.WinAmount,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create winner record for ticket %d: %w", record.TicketID, err)
	}
	return nil
}

// GetByDraw returns all winner records for a draw, largest payout first
func (r *winnerRecordRepository) GetByDraw(ctx context.Context, drawID int64) ([]*entities.WinnerRecord, error) {
	query := `
		SELECT id, draw_id, ticket_id, telegram_id, stake, win_amount, created_at
		FROM winner_records
		WHERE draw_id = $1
		ORDER BY win_amount DESC
	`

	rows, err := r.q.Query(ctx, query, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to get winner records for draw %d: %w", drawID, err)
	}
	defer rows.Close()

	var records []*entities.WinnerRecord
	for rows.Next() {
		var record entities.WinnerRecord
		err := rows.Scan(
			&record.ID,
			&record.DrawID,
			&record.TicketID,
			&record.TelegramID,
			&record.Stake,
			&record.WinAmount,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan winner record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate winner records: %w", err)
	}

	return records, nil
}
