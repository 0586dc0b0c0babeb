package infrastructure

import (
	"context"

	"lottobot/application"
	"lottobot/domain/interfaces"
)

// unitOfWork wraps the repository UnitOfWork and adds event publishing on commit
type unitOfWork struct {
	inner                  application.UnitOfWork
	transactionalPublisher *NATSTransactionalPublisher
	ctx                    context.Context
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	u.ctx = ctx
	return u.inner.Begin(ctx)
}

// Commit commits the transaction and flushes events on success. Events are
// best-effort after commit; publish failures never fail the committed unit.
func (u *unitOfWork) Commit() error {
	if err := u.inner.Commit(); err != nil {
		return err
	}

	if u.transactionalPublisher != nil {
		_ = u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback discards pending events and rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return u.inner.Rollback()
}

// Repository getters delegate to the inner UnitOfWork
func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	return u.inner.AccountRepository()
}

func (u *unitOfWork) LedgerRepository() interfaces.LedgerRepository {
	return u.inner.LedgerRepository()
}

func (u *unitOfWork) ReferralLinkRepository() interfaces.ReferralLinkRepository {
	return u.inner.ReferralLinkRepository()
}

func (u *unitOfWork) TicketRepository() interfaces.TicketRepository {
	return u.inner.TicketRepository()
}

func (u *unitOfWork) DepositClaimRepository() interfaces.DepositClaimRepository {
	return u.inner.DepositClaimRepository()
}

func (u *unitOfWork) WithdrawalRequestRepository() interfaces.WithdrawalRequestRepository {
	return u.inner.WithdrawalRequestRepository()
}

func (u *unitOfWork) DrawRepository() interfaces.DrawRepository {
	return u.inner.DrawRepository()
}

func (u *unitOfWork) WinnerRecordRepository() interfaces.WinnerRecordRepository {
	return u.inner.WinnerRecordRepository()
}

func (u *unitOfWork) CommissionRepository() interfaces.CommissionRepository {
	return u.inner.CommissionRepository()
}

// EventBus returns the transactional event publisher
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("transactional publisher not configured")
	}
	return u.transactionalPublisher
}
