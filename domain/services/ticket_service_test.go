package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lottobot/apperrors"
	"lottobot/domain/entities"
	"lottobot/domain/testhelpers"
)

// Helper to create a test account with common defaults
func createTestAccount(telegramID int64, balance int64) *entities.Account {
	return &entities.Account{
		TelegramID:   telegramID,
		DisplayName:  "testuser",
		LanguageTag:  "en",
		Balance:      decimal.NewFromInt(balance),
		ReferralCode: "abc123",
		CreatedAt:    time.Now(),
	}
}

func setupTicketServiceMocks() (
	*testhelpers.MockAccountRepository,
	*testhelpers.MockTicketRepository,
	*testhelpers.MockLedgerRepository,
	*testhelpers.MockEventPublisher,
) {
	return new(testhelpers.MockAccountRepository),
		new(testhelpers.MockTicketRepository),
		new(testhelpers.MockLedgerRepository),
		new(testhelpers.MockEventPublisher)
}

func TestTicketService_PlaceStake(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := int64(123456789)

	t.Run("successful stake debits balance and records ticket", func(t *testing.T) {
		t.Parallel()

		accountRepo, ticketRepo, ledgerRepo, eventPublisher := setupTicketServiceMocks()
		service := NewTicketService(accountRepo, ticketRepo, ledgerRepo, eventPublisher)

		account := createTestAccount(userID, 100)
		accountRepo.On("GetByTelegramIDForUpdate", mock.Anything, userID).Return(account, nil)
		ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Ticket")).Return(nil)
		accountRepo.On("UpdateBalance", mock.Anything, userID, decimal.NewFromInt(90)).Return(nil)
		ledgerRepo.On("Record", mock.Anything, mock.AnythingOfType("*entities.LedgerEntry")).Return(nil)
		eventPublisher.On("Publish", mock.Anything).Return(nil)

		result, err := service.PlaceStake(ctx, userID, "1,2,3,4,5:10")

		require.NoError(t, err)
		assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(90)))
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, result.Ticket.Numbers)
		assert.True(t, result.Ticket.Stake.Equal(decimal.NewFromInt(10)))
		assert.NotEmpty(t, result.Ticket.Code)

		accountRepo.AssertExpectations(t)
		ticketRepo.AssertExpectations(t)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("ledger entry mirrors the debit", func(t *testing.T) {
		t.Parallel()

		accountRepo, ticketRepo, ledgerRepo, eventPublisher := setupTicketServiceMocks()
		service := NewTicketService(accountRepo, ticketRepo, ledgerRepo, eventPublisher)

		account := createTestAccount(userID, 100)
		accountRepo.On("GetByTelegramIDForUpdate", mock.Anything, userID).Return(account, nil)
		ticketRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		accountRepo.On("UpdateBalance", mock.Anything, userID, mock.Anything).Return(nil)
		ledgerRepo.On("Record", mock.Anything, mock.MatchedBy(func(e *entities.LedgerEntry) bool {
			return e.TransactionType == entities.TransactionTypeStake &&
				e.ChangeAmount.Equal(decimal.NewFromInt(-10)) &&
				e.BalanceAfter.Equal(decimal.NewFromInt(90))
		})).Return(nil)
		eventPublisher.On("Publish", mock.Anything).Return(nil)

		_, err := service.PlaceStake(ctx, userID, "1,2,3,4,5:10")

		require.NoError(t, err)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("invalid stake text mutates nothing", func(t *testing.T) {
		t.Parallel()

		accountRepo, ticketRepo, ledgerRepo, eventPublisher := setupTicketServiceMocks()
		service := NewTicketService(accountRepo, ticketRepo, ledgerRepo, eventPublisher)

		_, err := service.PlaceStake(ctx, userID, "1,2,3,4:10")

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		accountRepo.AssertNotCalled(t, "GetByTelegramIDForUpdate", mock.Anything, mock.Anything)
		ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		accountRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insufficient balance mutates nothing", func(t *testing.T) {
		t.Parallel()

		accountRepo, ticketRepo, ledgerRepo, eventPublisher := setupTicketServiceMocks()
		service := NewTicketService(accountRepo, ticketRepo, ledgerRepo, eventPublisher)

		account := createTestAccount(userID, 5)
		accountRepo.On("GetByTelegramIDForUpdate", mock.Anything, userID).Return(account, nil)

		_, err := service.PlaceStake(ctx, userID, "1,2,3,4,5:10")

		require.Error(t, err)
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, apperrors.RuleBalance, verr.Rule)
		ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		accountRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown account returns not found", func(t *testing.T) {
		t.Parallel()

		accountRepo, ticketRepo, ledgerRepo, eventPublisher := setupTicketServiceMocks()
		service := NewTicketService(accountRepo, ticketRepo, ledgerRepo, eventPublisher)

		accountRepo.On("GetByTelegramIDForUpdate", mock.Anything, userID).Return(nil, nil)

		_, err := service.PlaceStake(ctx, userID, "1,2,3,4,5:10")

		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
