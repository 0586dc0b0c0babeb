package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"lottobot/domain/entities"
)

// AccountRepository defines the interface for account data access.
type AccountRepository interface {
	// GetByTelegramID retrieves an account, nil if it does not exist.
	GetByTelegramID(ctx context.Context, telegramID int64) (*entities.Account, error)

	// GetByTelegramIDForUpdate retrieves an account with a row lock so two
	// concurrent units cannot both read the same balance.
	GetByTelegramIDForUpdate(ctx context.Context, telegramID int64) (*entities.Account, error)

	// GetByReferralCode retrieves the account owning a referral code, nil if none.
	GetByReferralCode(ctx context.Context, code string) (*entities.Account, error)

	// Create creates a new account at first contact.
	Create(ctx context.Context, account *entities.Account) error

	// UpdateBalance sets an account's balance.
	UpdateBalance(ctx context.Context, telegramID int64, newBalance decimal.Decimal) error

	// UpdateLanguage sets an account's language preference.
	UpdateLanguage(ctx context.Context, telegramID int64, languageTag string) error
}

// LedgerRepository defines the interface for the balance audit trail.
type LedgerRepository interface {
	// Record creates a new ledger entry.
	Record(ctx context.Context, entry *entities.LedgerEntry) error

	// GetByUser returns the most recent entries for an account.
	GetByUser(ctx context.Context, telegramID int64, limit int) ([]*entities.LedgerEntry, error)

	// HasEntryOfType reports whether the account has any entry of the given
	// type. Used to detect a user's first approved deposit.
	HasEntryOfType(ctx context.Context, telegramID int64, tt entities.TransactionType) (bool, error)
}

// ReferralLinkRepository defines the interface for referral attribution data.
type ReferralLinkRepository interface {
	// Create inserts a link; the referred_id unique constraint guarantees
	// each user is referred at most once.
	Create(ctx context.Context, link *entities.ReferralLink) error

	// GetByReferredID retrieves the link for a referred user, nil if none.
	GetByReferredID(ctx context.Context, referredID int64) (*entities.ReferralLink, error)

	// GetByReferredIDForUpdate retrieves the link with a row lock for the
	// at-most-once bonus credit.
	GetByReferredIDForUpdate(ctx context.Context, referredID int64) (*entities.ReferralLink, error)

	// MarkBonusCredited flips the bonus_credited flag.
	MarkBonusCredited(ctx context.Context, linkID int64) error
}

// TicketRepository defines the interface for ticket data access.
type TicketRepository interface {
	// Create inserts a ticket.
	Create(ctx context.Context, ticket *entities.Ticket) error

	// GetByUser returns the most recent tickets for an account.
	GetByUser(ctx context.Context, telegramID int64, limit int) ([]*entities.Ticket, error)

	// GetCreatedBetween returns all tickets created in [from, to).
	GetCreatedBetween(ctx context.Context, from, to time.Time) ([]*entities.Ticket, error)
}

// DepositClaimRepository defines the interface for pending deposit claims.
type DepositClaimRepository interface {
	// Create inserts a pending claim.
	Create(ctx context.Context, claim *entities.DepositClaim) error

	// GetByIDForUpdate retrieves a claim with a row lock so two concurrent
	// approvals cannot both resolve it. Nil if it does not exist.
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.DepositClaim, error)

	// Delete removes a resolved claim.
	Delete(ctx context.Context, id int64) error

	// CountByUser returns the number of pending claims for an account.
	CountByUser(ctx context.Context, telegramID int64) (int64, error)

	// ListPending returns all pending claims, oldest first.
	ListPending(ctx context.Context) ([]*entities.DepositClaim, error)
}

// WithdrawalRequestRepository defines the interface for pending withdrawals.
type WithdrawalRequestRepository interface {
	// Create inserts a pending request.
	Create(ctx context.Context, request *entities.WithdrawalRequest) error

	// GetByIDForUpdate retrieves a request with a row lock. Nil if it does
	// not exist.
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.WithdrawalRequest, error)

	// Delete removes a resolved request.
	Delete(ctx context.Context, id int64) error

	// ListPending returns all pending requests, oldest first.
	ListPending(ctx context.Context) ([]*entities.WithdrawalRequest, error)
}

// DrawRepository defines the interface for draw data access.
type DrawRepository interface {
	// Create inserts a draw. The draw_date unique constraint rejects a
	// second draw for the same day.
	Create(ctx context.Context, draw *entities.Draw) error

	// GetByDate retrieves the draw for a calendar day, nil if none.
	GetByDate(ctx context.Context, date time.Time) (*entities.Draw, error)

	// GetLatest retrieves the most recent draw, nil if none exist.
	GetLatest(ctx context.Context) (*entities.Draw, error)
}

// WinnerRecordRepository defines the interface for winner records.
type WinnerRecordRepository interface {
	// Create inserts a winner record.
	Create(ctx context.Context, record *entities.WinnerRecord) error

	// GetByDraw returns all winner records for a draw, largest payout first.
	GetByDraw(ctx context.Context, drawID int64) ([]*entities.WinnerRecord, error)
}

// CommissionRepository defines the interface for commission entries.
type CommissionRepository interface {
	// Create inserts a commission entry.
	Create(ctx context.Context, entry *entities.CommissionEntry) error

	// GetTotal returns the sum of all recorded commissions.
	GetTotal(ctx context.Context) (decimal.Decimal, error)
}
