package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a Telegram user with their ledger balance.
// Balances are mutated only inside ledger executor units; accounts are
// created at first contact and never deleted.
type Account struct {
	TelegramID   int64           `db:"telegram_id"`
	DisplayName  string          `db:"display_name"`
	LanguageTag  string          `db:"language_tag"`
	Balance      decimal.Decimal `db:"balance"`
	ReferralCode string          `db:"referral_code"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// HasSufficientBalance checks if the account can cover an amount.
func (a *Account) HasSufficientBalance(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// HasPositiveBalance checks if the account holds any funds.
func (a *Account) HasPositiveBalance() bool {
	return a.Balance.IsPositive()
}

// CalculateNewBalance returns what the balance would be after a change.
func (a *Account) CalculateNewBalance(change decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(change)
}
