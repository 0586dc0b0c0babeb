package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottobot/domain/entities"
	"lottobot/repository/testutil"
)

func TestLedgerRepository_HasEntryOfType(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB.Pool)
	repo := NewLedgerRepository(testDB.DB.Pool)
	ctx := context.Background()

	account := testutil.CreateTestAccount(123456, "testuser")
	require.NoError(t, accountRepo.Create(ctx, account))

	t.Run("no entries", func(t *testing.T) {
		has, err := repo.HasEntryOfType(ctx, account.TelegramID, entities.TransactionTypeDeposit)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("entry of a different type", func(t *testing.T) {
		entry := testutil.CreateTestLedgerEntry(account.TelegramID, entities.TransactionTypeStake)
		require.NoError(t, repo.Record(ctx, entry))

		has, err := repo.HasEntryOfType(ctx, account.TelegramID, entities.TransactionTypeDeposit)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("entry of the requested type", func(t *testing.T) {
		entry := testutil.CreateTestLedgerEntry(account.TelegramID, entities.TransactionTypeDeposit)
		entry.BalanceBefore = entry.BalanceAfter
		entry.BalanceAfter = entry.BalanceBefore.Add(entry.ChangeAmount.Abs())
		entry.ChangeAmount = entry.ChangeAmount.Abs()
		require.NoError(t, repo.Record(ctx, entry))

		has, err := repo.HasEntryOfType(ctx, account.TelegramID, entities.TransactionTypeDeposit)
		require.NoError(t, err)
		assert.True(t, has)
	})
}

func TestLedgerRepository_GetByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB.Pool)
	repo := NewLedgerRepository(testDB.DB.Pool)
	ctx := context.Background()

	account := testutil.CreateTestAccount(123456, "testuser")
	require.NoError(t, accountRepo.Create(ctx, account))

	for i := 0; i < 3; i++ {
		entry := testutil.CreateTestLedgerEntry(account.TelegramID, entities.TransactionTypeStake)
		require.NoError(t, repo.Record(ctx, entry))
	}

	t.Run("returns entries with metadata", func(t *testing.T) {
		entries, err := repo.GetByUser(ctx, account.TelegramID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, entities.TransactionTypeStake, entries[0].TransactionType)
		assert.Equal(t, true, entries[0].Metadata["test"])
	})

	t.Run("respects the limit", func(t *testing.T) {
		entries, err := repo.GetByUser(ctx, account.TelegramID, 1)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
