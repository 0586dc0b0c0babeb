package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// ticketRepository implements the TicketRepository interface
type ticketRepository struct {
	q Queryable
}

// NewTicketRepository creates a new ticket repository bound to a queryable.
func NewTicketRepository(q Queryable) interfaces.TicketRepository {
	return &ticketRepository{q: q}
}

// Create inserts a ticket
func (r *ticketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	query := `
		INSERT INTO tickets (telegram_id, code, stake, numbers)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		ticket.TelegramID,
		ticket.Code,
		ticket.Stake,
		ticket.Numbers,
	).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ticket for account %d: %w", ticket.TelegramID, err)
	}
	return nil
}

// GetByUser returns the most recent tickets for an account
func (r *ticketRepository) GetByUser(ctx context.Context, telegramID int64, limit int) ([]*entities.Ticket, error) {
	query := `
		SELECT id, telegram_id, code, stake, numbers, created_at
		FROM tickets
		WHERE telegram_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets for account %d: %w", telegramID, err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// GetCreatedBetween returns all tickets created in [from, to)
func (r *ticketRepository) GetCreatedBetween(ctx context.Context, from, to time.Time) ([]*entities.Ticket, error) {
	query := `
		SELECT id, telegram_id, code, stake, numbers, created_at
		FROM tickets
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets between %v and %v: %w", from, to, err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]*entities.Ticket, error) {
	var tickets []*entities.Ticket
	for rows.Next() {
		var ticket entities.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.TelegramID,
			&ticket.Code,
			&ticket.Stake,
			&ticket.Numbers,
			&ticket.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}
