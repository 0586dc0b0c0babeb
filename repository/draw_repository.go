package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// drawRepository implements the DrawRepository interface
type drawRepository struct {
	q Queryable
}

// NewDrawRepository creates a new draw repository bound to a queryable.
func NewDrawRepository(q Queryable) interfaces.DrawRepository {
	return &drawRepository{q: q}
}

func scanDraw(row pgx.Row) (*entities.Draw, error) {
	var draw entities.Draw
	err := row.Scan(
		&draw.ID,
		&draw.DrawDate,
		&draw.Numbers,
		&draw.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// Create inserts a draw. The draw_date unique constraint rejects a second
// draw for the same day.
func (r *drawRepository) Create(ctx context.Context, draw *entities.Draw) error {
	query := `
		INSERT INTO draws (draw_date, numbers)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, draw.DrawDate, draw.Numbers).
		Scan(&draw.ID, &draw.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create draw for %s: %w", draw.DrawDate.Format("2006-01-02"), err)
	}
	return nil
}

// GetByDate retrieves the draw for a calendar day
func (r *drawRepository) GetByDate(ctx context.Context, date time.Time) (*entities.Draw, error) {
	query := `
		SELECT id, draw_date, numbers, created_at
		FROM draws
		WHERE draw_date = $1
	`

	draw, err := scanDraw(r.q.QueryRow(ctx, query, date))
	if err != nil {
		return nil, fmt.Errorf("failed to get draw for %s: %w", date.Format("2006-01-02"), err)
	}
	return draw, nil
}

// GetLatest retrieves the most recent draw
func (r *drawRepository) GetLatest(ctx context.Context) (*entities.Draw, error) {
	query := `
		SELECT id, draw_date, numbers, created_at
		FROM draws
		ORDER BY draw_date DESC
		LIMIT 1
	`

	draw, err := scanDraw(r.q.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("failed to get latest draw: %w", err)
	}
	return draw, nil
}
