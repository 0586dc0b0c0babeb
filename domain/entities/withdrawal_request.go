package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal limits enforced when a request is filed.
var (
	MinWithdrawal = decimal.NewFromInt(1)
	MaxWithdrawal = decimal.NewFromInt(500)
)

// WithdrawalRequest is a pending payout request. No balance effect at request
// time; the balance is re-checked at resolution time, not at request time.
// Deleted by exactly one terminal admin action.
type WithdrawalRequest struct {
	ID         int64           `db:"id"`
	TelegramID int64           `db:"telegram_id"`
	Amount     decimal.Decimal `db:"amount"`
	Method     PaymentMethod   `db:"method"`
	Address    string          `db:"address"`
	CreatedAt  time.Time       `db:"created_at"`
}
