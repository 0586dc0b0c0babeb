package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"lottobot/apperrors"
)

// LedgerEntry is the audit trail for a single balance change. Every mutation
// that goes through the ledger executor writes exactly one entry.
type LedgerEntry struct {
	ID              int64           `db:"id"`
	TelegramID      int64           `db:"telegram_id"`
	BalanceBefore   decimal.Decimal `db:"balance_before"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	ChangeAmount    decimal.Decimal `db:"change_amount"`
	TransactionType TransactionType `db:"transaction_type"`
	Metadata        map[string]any  `db:"metadata"`
	CreatedAt       time.Time       `db:"created_at"`
}

// Validate checks the entry's internal consistency.
func (e *LedgerEntry) Validate() error {
	if e.ChangeAmount.IsZero() {
		return errors.New("change amount cannot be zero")
	}
	if !e.BalanceAfter.Equal(e.BalanceBefore.Add(e.ChangeAmount)) {
		return errors.New("balance calculation is inconsistent")
	}
	if e.BalanceAfter.IsNegative() {
		return apperrors.ErrInsufficientFunds
	}
	return nil
}
