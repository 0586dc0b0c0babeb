package events

import (
	"time"

	"github.com/shopspring/decimal"

	"lottobot/domain/entities"
)

// EventType represents different types of events in the system.
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeAccountCreated EventType = "account_created"
	EventTypeDrawSettled    EventType = "draw_settled"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred.
type BalanceChangeEvent struct {
	TelegramID      int64                    `json:"telegram_id"`
	OldBalance      decimal.Decimal          `json:"old_balance"`
	NewBalance      decimal.Decimal          `json:"new_balance"`
	ChangeAmount    decimal.Decimal          `json:"change_amount"`
	TransactionType entities.TransactionType `json:"transaction_type"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// AccountCreatedEvent represents a new account bootstrap at first contact.
type AccountCreatedEvent struct {
	TelegramID   int64  `json:"telegram_id"`
	DisplayName  string `json:"display_name"`
	ReferralCode string `json:"referral_code"`
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// DrawSettledEvent represents a completed daily draw settlement.
type DrawSettledEvent struct {
	DrawID      int64           `json:"draw_id"`
	DrawDate    time.Time       `json:"draw_date"`
	Numbers     []int64         `json:"numbers"`
	WinnerCount int             `json:"winner_count"`
	TotalPayout decimal.Decimal `json:"total_payout"`
}

func (e DrawSettledEvent) Type() EventType {
	return EventTypeDrawSettled
}
