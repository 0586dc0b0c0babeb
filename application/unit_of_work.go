package application

import (
	"context"

	"lottobot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() interfaces.AccountRepository
	LedgerRepository() interfaces.LedgerRepository
	ReferralLinkRepository() interfaces.ReferralLinkRepository
	TicketRepository() interfaces.TicketRepository
	DepositClaimRepository() interfaces.DepositClaimRepository
	WithdrawalRequestRepository() interfaces.WithdrawalRequestRepository
	DrawRepository() interfaces.DrawRepository
	WinnerRecordRepository() interfaces.WinnerRecordRepository
	CommissionRepository() interfaces.CommissionRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
