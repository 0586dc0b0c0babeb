package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottobot/apperrors"
	"lottobot/domain/interfaces"
)

// stubUnitOfWork tracks transaction lifecycle calls for executor tests.
type stubUnitOfWork struct {
	beginErr   error
	commitErr  error
	began      int
	committed  int
	rolledBack int
}

func (s *stubUnitOfWork) Begin(ctx context.Context) error {
	s.began++
	return s.beginErr
}

func (s *stubUnitOfWork) Commit() error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.committed++
	return nil
}

func (s *stubUnitOfWork) Rollback() error {
	s.rolledBack++
	return nil
}

func (s *stubUnitOfWork) AccountRepository() interfaces.AccountRepository             { return nil }
func (s *stubUnitOfWork) LedgerRepository() interfaces.LedgerRepository               { return nil }
func (s *stubUnitOfWork) ReferralLinkRepository() interfaces.ReferralLinkRepository   { return nil }
func (s *stubUnitOfWork) TicketRepository() interfaces.TicketRepository               { return nil }
func (s *stubUnitOfWork) DepositClaimRepository() interfaces.DepositClaimRepository   { return nil }
func (s *stubUnitOfWork) WithdrawalRequestRepository() interfaces.WithdrawalRequestRepository {
	return nil
}
func (s *stubUnitOfWork) DrawRepository() interfaces.DrawRepository             { return nil }
func (s *stubUnitOfWork) WinnerRecordRepository() interfaces.WinnerRecordRepository {
	return nil
}
func (s *stubUnitOfWork) CommissionRepository() interfaces.CommissionRepository { return nil }
func (s *stubUnitOfWork) EventBus() interfaces.EventPublisher                   { return nil }

type stubFactory struct {
	uow *stubUnitOfWork
}

func (f *stubFactory) Create() UnitOfWork { return f.uow }

func newTestExecutor(uow *stubUnitOfWork) *LedgerExecutor {
	executor := NewLedgerExecutor(&stubFactory{uow: uow})
	executor.initialInterval = time.Millisecond
	return executor
}

func serializationFailure() error {
	return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
}

func TestLedgerExecutor_Execute(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("successful unit commits once", func(t *testing.T) {
		t.Parallel()

		uow := &stubUnitOfWork{}
		executor := newTestExecutor(uow)

		calls := 0
		err := executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, uow.committed)
		assert.Equal(t, 0, uow.rolledBack)
	})

	t.Run("write conflict retries the whole unit", func(t *testing.T) {
		t.Parallel()

		uow := &stubUnitOfWork{}
		executor := newTestExecutor(uow)

		calls := 0
		err := executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
			calls++
			if calls < 3 {
				return serializationFailure()
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 1, uow.committed)
		assert.Equal(t, 2, uow.rolledBack)
	})

	t.Run("exhausted retries surface a contention error", func(t *testing.T) {
		t.Parallel()

		uow := &stubUnitOfWork{}
		executor := newTestExecutor(uow)

		calls := 0
		err := executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
			calls++
			return serializationFailure()
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsContention(err))
		assert.Equal(t, 3, calls)
		assert.Equal(t, 0, uow.committed)
		assert.Equal(t, 3, uow.rolledBack)
	})

	t.Run("business errors are not retried", func(t *testing.T) {
		t.Parallel()

		uow := &stubUnitOfWork{}
		executor := newTestExecutor(uow)

		businessErr := errors.New("insufficient balance")
		calls := 0
		err := executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
			calls++
			return businessErr
		})

		require.ErrorIs(t, err, businessErr)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, uow.committed)
		assert.Equal(t, 1, uow.rolledBack)
	})

	t.Run("commit conflict is retried", func(t *testing.T) {
		t.Parallel()

		uow := &stubUnitOfWork{commitErr: serializationFailure()}
		executor := newTestExecutor(uow)

		calls := 0
		err := executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
			calls++
			if calls == 2 {
				uow.(*stubUnitOfWork).commitErr = nil
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 1, uow.committed)
	})

	t.Run("begin failure is not retried", func(t *testing.T) {
		t.Parallel()

		uow := &stubUnitOfWork{beginErr: errors.New("pool exhausted")}
		executor := newTestExecutor(uow)

		err := executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
			t.Fatal("unit must not run when begin fails")
			return nil
		})

		require.Error(t, err)
		assert.Equal(t, 1, uow.began)
	})
}
