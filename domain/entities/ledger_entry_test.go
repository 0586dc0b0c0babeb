package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottobot/apperrors"
)

func TestLedgerEntry_Validate(t *testing.T) {
	t.Parallel()

	entry := func(before, after, change int64) *LedgerEntry {
		return &LedgerEntry{
			TelegramID:      100,
			BalanceBefore:   decimal.NewFromInt(before),
			BalanceAfter:    decimal.NewFromInt(after),
			ChangeAmount:    decimal.NewFromInt(change),
			TransactionType: TransactionTypeStake,
		}
	}

	t.Run("consistent debit passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, entry(100, 90, -10).Validate())
	})

	t.Run("consistent credit passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, entry(0, 50, 50).Validate())
	})

	t.Run("zero change is rejected", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, entry(100, 100, 0).Validate())
	})

	t.Run("inconsistent arithmetic is rejected", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, entry(100, 95, -10).Validate())
	})

	t.Run("debit below zero yields insufficient funds", func(t *testing.T) {
		t.Parallel()
		err := entry(10, -5, -15).Validate()
		require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	})
}
