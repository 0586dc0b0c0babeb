package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lottobot/application"
	"lottobot/database"
	"lottobot/domain/interfaces"
)

// unitOfWork implements the application.UnitOfWork interface over a single
// serializable transaction. Serializable isolation is what lets the ledger
// executor detect and retry conflicting balance mutations.
type unitOfWork struct {
	db             *database.DB
	tx             pgx.Tx
	ctx            context.Context
	eventPublisher interfaces.EventPublisher

	accountRepo    interfaces.AccountRepository
	ledgerRepo     interfaces.LedgerRepository
	referralRepo   interfaces.ReferralLinkRepository
	ticketRepo     interfaces.TicketRepository
	claimRepo      interfaces.DepositClaimRepository
	withdrawalRepo interfaces.WithdrawalRequestRepository
	drawRepo       interfaces.DrawRepository
	winnerRepo     interfaces.WinnerRecordRepository
	commissionRepo interfaces.CommissionRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *unitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

// CreateWithPublisher creates a new UnitOfWork whose EventBus is the given
// publisher. The infrastructure layer passes a per-unit transactional
// publisher here so events only leave the process after commit.
func (f *unitOfWorkFactory) CreateWithPublisher(eventPublisher interfaces.EventPublisher) application.UnitOfWork {
	return &unitOfWork{
		db:             f.db,
		eventPublisher: eventPublisher,
	}
}

// Begin starts a new serializable transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.accountRepo = NewAccountRepository(tx)
	u.ledgerRepo = NewLedgerRepository(tx)
	u.referralRepo = NewReferralLinkRepository(tx)
	u.ticketRepo = NewTicketRepository(tx)
	u.claimRepo = NewDepositClaimRepository(tx)
	u.withdrawalRepo = NewWithdrawalRequestRepository(tx)
	u.drawRepo = NewDrawRepository(tx)
	u.winnerRepo = NewWinnerRecordRepository(tx)
	u.commissionRepo = NewCommissionRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

func (u *unitOfWork) LedgerRepository() interfaces.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

func (u *unitOfWork) ReferralLinkRepository() interfaces.ReferralLinkRepository {
	if u.referralRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.referralRepo
}

func (u *unitOfWork) TicketRepository() interfaces.TicketRepository {
	if u.ticketRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ticketRepo
}

func (u *unitOfWork) DepositClaimRepository() interfaces.DepositClaimRepository {
	if u.claimRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.claimRepo
}

func (u *unitOfWork) WithdrawalRequestRepository() interfaces.WithdrawalRequestRepository {
	if u.withdrawalRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.withdrawalRepo
}

func (u *unitOfWork) DrawRepository() interfaces.DrawRepository {
	if u.drawRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.drawRepo
}

func (u *unitOfWork) WinnerRecordRepository() interfaces.WinnerRecordRepository {
	if u.winnerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.winnerRepo
}

func (u *unitOfWork) CommissionRepository() interfaces.CommissionRepository {
	if u.commissionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.commissionRepo
}

// EventBus returns the event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.eventPublisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.eventPublisher
}
