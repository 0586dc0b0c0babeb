package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"lottobot/domain/entities"
	"lottobot/domain/events"
)

// EventPublisher defines the interface for publishing domain events.
type EventPublisher interface {
	Publish(event events.Event) error
}

// Notifier delivers a rendered message to a user. Implemented by the chat
// transport; delivery failures are logged and swallowed, never propagated.
type Notifier interface {
	Notify(ctx context.Context, telegramID int64, message string) error
}

// Translator resolves a (key, locale) pair to a localized string. Translation
// content lives outside the core.
type Translator interface {
	Translate(key, locale string) string
}

// TicketService validates and records stakes.
type TicketService interface {
	// PlaceStake parses free-form stake text, validates it and atomically
	// records the ticket with its balance debit.
	PlaceStake(ctx context.Context, telegramID int64, input string) (*StakeResult, error)
}

// DepositService manages pending deposit claims and their resolution.
type DepositService interface {
	// FileClaim records a pending claim with no balance effect.
	FileClaim(ctx context.Context, telegramID int64, txRef, method string) (*entities.DepositClaim, error)

	// Approve credits the account, records the commission, deletes the
	// claim and credits any owed referral bonus, all in the current unit.
	Approve(ctx context.Context, claimID int64, amount decimal.Decimal) (*DepositApprovalResult, error)

	// Reject deletes the claim with no balance effect.
	Reject(ctx context.Context, claimID int64) (*entities.DepositClaim, error)

	// ListPending returns all unresolved claims.
	ListPending(ctx context.Context) ([]*entities.DepositClaim, error)
}

// WithdrawalService manages pending withdrawal requests and their resolution.
type WithdrawalService interface {
	// FileRequest records a pending request with no balance effect.
	FileRequest(ctx context.Context, telegramID int64, amount decimal.Decimal, method, address string) (*entities.WithdrawalRequest, error)

	// Approve re-checks the balance at resolution time and either debits
	// and deletes the request, or auto-rejects it without a debit.
	Approve(ctx context.Context, requestID int64) (*WithdrawalResolution, error)

	// Reject deletes the request with no balance effect.
	Reject(ctx context.Context, requestID int64) (*entities.WithdrawalRequest, error)

	// ListPending returns all unresolved requests.
	ListPending(ctx context.Context) ([]*entities.WithdrawalRequest, error)
}

// ReferralService attributes referred users and credits one-time bonuses.
type ReferralService interface {
	// Attribute links a referred user to the owner of code at first
	// contact. Returns nil without error when attribution does not apply.
	Attribute(ctx context.Context, referredID int64, code string) (*entities.ReferralLink, error)

	// CreditBonusOnDeposit credits the referrer 10% of the referred user's
	// first approved deposit. Returns nil when no bonus is owed.
	CreditBonusOnDeposit(ctx context.Context, referredID int64, depositAmount decimal.Decimal, firstDeposit bool) (*ReferralBonusResult, error)
}

// SettlementService generates the daily draw and pays out winning tickets.
type SettlementService interface {
	// CreateDraw generates and persists the draw for the given day and
	// returns the day's tickets. Returns ErrDrawAlreadySettled if a draw
	// for that day already exists.
	CreateDraw(ctx context.Context, date time.Time) (*entities.Draw, []*entities.Ticket, error)

	// PayoutTicket scores one ticket against the draw and, for 3+ matches,
	// credits the win, records the winner and the commission. Returns nil
	// for non-winning tickets.
	PayoutTicket(ctx context.Context, draw *entities.Draw, ticket *entities.Ticket) (*TicketPayout, error)

	// BuildAnnouncement assembles the structured summary for a draw.
	BuildAnnouncement(ctx context.Context, draw *entities.Draw) (*Announcement, error)

	// LatestAnnouncement assembles the summary for the most recent draw,
	// nil if no draw has been settled yet.
	LatestAnnouncement(ctx context.Context) (*Announcement, error)
}

// StakeResult is returned after a successful stake placement.
type StakeResult struct {
	Ticket     *entities.Ticket
	NewBalance decimal.Decimal
}

// DepositApprovalResult is returned after a deposit claim approval commits.
type DepositApprovalResult struct {
	Claim      *entities.DepositClaim
	Amount     decimal.Decimal
	Commission decimal.Decimal
	NewBalance decimal.Decimal
	// Bonus is non-nil when the approval also credited a referral bonus.
	Bonus *ReferralBonusResult
}

// ReferralBonusResult describes a credited one-time referral bonus.
type ReferralBonusResult struct {
	ReferrerID int64
	Amount     decimal.Decimal
}

// WithdrawalOutcome distinguishes the two approval branches.
type WithdrawalOutcome string

const (
	WithdrawalApproved     WithdrawalOutcome = "approved"
	WithdrawalAutoRejected WithdrawalOutcome = "auto_rejected"
)

// WithdrawalResolution is returned when a withdrawal request is resolved.
type WithdrawalResolution struct {
	Request    *entities.WithdrawalRequest
	Outcome    WithdrawalOutcome
	NewBalance decimal.Decimal
}

// TicketPayout describes one winning ticket's settlement.
type TicketPayout struct {
	Record     *entities.WinnerRecord
	Commission decimal.Decimal
	NewBalance decimal.Decimal
}

// AnnouncementWinner is one row of the settlement announcement, ordered by
// payout descending.
type AnnouncementWinner struct {
	TelegramID int64
	TicketID   int64
	Stake      decimal.Decimal
	WinAmount  decimal.Decimal
}

// Announcement is the structured settlement summary. Rendering it into
// localized chat text is the transport's responsibility.
type Announcement struct {
	DrawID      int64
	DrawDate    time.Time
	Numbers     []int64
	Winners     []AnnouncementWinner
	TotalPayout decimal.Decimal
}
