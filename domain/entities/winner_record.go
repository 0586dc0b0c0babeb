package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// WinnerRecord records a winning ticket's payout. Created only for tickets
// whose match count is at least 3.
type WinnerRecord struct {
	ID         int64           `db:"id"`
	DrawID     int64           `db:"draw_id"`
	TicketID   int64           `db:"ticket_id"`
	TelegramID int64           `db:"telegram_id"`
	Stake      decimal.Decimal `db:"stake"`
	WinAmount  decimal.Decimal `db:"win_amount"`
	CreatedAt  time.Time       `db:"created_at"`
}
