package application

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"

	"lottobot/apperrors"
)

const defaultMaxAttempts = 3

// LedgerExecutor runs a unit of work as one atomic transaction and retries the
// whole unit on store write conflicts. It is the only path that mutates
// balances; no component writes balance outside an executor unit.
type LedgerExecutor struct {
	uowFactory      UnitOfWorkFactory
	maxAttempts     int
	initialInterval time.Duration
}

// NewLedgerExecutor creates a new ledger executor with the default retry
// budget.
func NewLedgerExecutor(uowFactory UnitOfWorkFactory) *LedgerExecutor {
	return &LedgerExecutor{
		uowFactory:      uowFactory,
		maxAttempts:     defaultMaxAttempts,
		initialInterval: 50 * time.Millisecond,
	}
}

// Execute runs fn inside a transaction. The unit commits iff fn returns nil.
// On a serialization or deadlock failure the whole unit is retried with
// increasing backoff; once the retry budget is spent a ContentionError is
// returned and no partial mutation remains.
func (e *LedgerExecutor) Execute(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error {
	attempts := 0

	operation := func() error {
		attempts++
		if attempts > 1 {
			log.WithField("attempt", attempts).Warn("Retrying ledger unit after write conflict")
		}

		uow := e.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return backoff.Permanent(err)
		}

		if err := fn(ctx, uow); err != nil {
			uow.Rollback()
			if isWriteConflict(err) {
				return err
			}
			return backoff.Permanent(err)
		}

		if err := uow.Commit(); err != nil {
			uow.Rollback()
			if isWriteConflict(err) {
				return err
			}
			return backoff.Permanent(err)
		}

		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.initialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(e.maxAttempts-1)), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		if isWriteConflict(err) {
			return &apperrors.ContentionError{Attempts: attempts, Err: err}
		}
		return err
	}

	return nil
}

// isWriteConflict reports whether err is a retryable store conflict:
// serialization failure (40001) or deadlock detected (40P01).
func isWriteConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
