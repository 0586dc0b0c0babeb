package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottobot/repository/testutil"
)

func TestAccountRepository_GetByTelegramID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB.Pool)
	ctx := context.Background()

	t.Run("account not found", func(t *testing.T) {
		account, err := repo.GetByTelegramID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("account found", func(t *testing.T) {
		testAccount := testutil.CreateTestAccount(123456, "testuser")
		err := repo.Create(ctx, testAccount)
		require.NoError(t, err)

		account, err := repo.GetByTelegramID(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, account)

		assert.Equal(t, testAccount.TelegramID, account.TelegramID)
		assert.Equal(t, testAccount.DisplayName, account.DisplayName)
		assert.Equal(t, testAccount.ReferralCode, account.ReferralCode)
		assert.True(t, testAccount.Balance.Equal(account.Balance))
		assert.False(t, account.CreatedAt.IsZero())
	})
}

func TestAccountRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB.Pool)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		testAccount := testutil.CreateTestAccount(123456, "testuser")

		err := repo.Create(ctx, testAccount)
		require.NoError(t, err)

		// Create fills the timestamps from the database
		assert.False(t, testAccount.CreatedAt.IsZero())
		assert.False(t, testAccount.UpdatedAt.IsZero())
	})

	t.Run("duplicate telegram ID", func(t *testing.T) {
		testAccount := testutil.CreateTestAccount(789012, "testuser2")
		err := repo.Create(ctx, testAccount)
		require.NoError(t, err)

		dup := testutil.CreateTestAccount(789012, "othername")
		dup.ReferralCode = "different"
		err = repo.Create(ctx, dup)
		assert.Error(t, err)
	})

	t.Run("duplicate referral code", func(t *testing.T) {
		first := testutil.CreateTestAccount(111111, "user1")
		require.NoError(t, repo.Create(ctx, first))

		second := testutil.CreateTestAccount(222222, "user2")
		second.ReferralCode = first.ReferralCode
		err := repo.Create(ctx, second)
		assert.Error(t, err)
	})
}

func TestAccountRepository_GetByReferralCode(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB.Pool)
	ctx := context.Background()

	t.Run("code not found", func(t *testing.T) {
		account, err := repo.GetByReferralCode(ctx, "nosuchcode")
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("code found", func(t *testing.T) {
		testAccount := testutil.CreateTestAccount(123456, "testuser")
		require.NoError(t, repo.Create(ctx, testAccount))

		account, err := repo.GetByReferralCode(ctx, testAccount.ReferralCode)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, testAccount.TelegramID, account.TelegramID)
	})
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB.Pool)
	ctx := context.Background()

	t.Run("successful update", func(t *testing.T) {
		testAccount := testutil.CreateTestAccountWithBalance(123456, "testuser", decimal.NewFromInt(100))
		require.NoError(t, repo.Create(ctx, testAccount))

		newBalance := decimal.NewFromFloat(57.50)
		err := repo.UpdateBalance(ctx, testAccount.TelegramID, newBalance)
		require.NoError(t, err)

		account, err := repo.GetByTelegramID(ctx, testAccount.TelegramID)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.True(t, newBalance.Equal(account.Balance))
	})

	t.Run("unknown account", func(t *testing.T) {
		err := repo.UpdateBalance(ctx, 999999, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("negative balance rejected by constraint", func(t *testing.T) {
		testAccount := testutil.CreateTestAccount(654321, "testuser3")
		require.NoError(t, repo.Create(ctx, testAccount))

		err := repo.UpdateBalance(ctx, testAccount.TelegramID, decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}
