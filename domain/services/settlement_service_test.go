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

func setupSettlementServiceMocks() (
	*testhelpers.MockDrawRepository,
	*testhelpers.MockTicketRepository,
	*testhelpers.MockWinnerRecordRepository,
	*testhelpers.MockAccountRepository,
	*testhelpers.MockLedgerRepository,
	*testhelpers.MockCommissionRepository,
	*testhelpers.MockEventPublisher,
) {
	return new(testhelpers.MockDrawRepository),
		new(testhelpers.MockTicketRepository),
		new(testhelpers.MockWinnerRecordRepository),
		new(testhelpers.MockAccountRepository),
		new(testhelpers.MockLedgerRepository),
		new(testhelpers.MockCommissionRepository),
		new(testhelpers.MockEventPublisher)
}

func TestSettlementService_CreateDraw(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	date := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates draw and returns the day's tickets", func(t *testing.T) {
		t.Parallel()

		drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher := setupSettlementServiceMocks()
		service := NewSettlementService(drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher)

		drawRepo.On("GetByDate", mock.Anything, dayStart).Return(nil, nil)
		drawRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *entities.Draw) bool {
			if !d.DrawDate.Equal(dayStart) || len(d.Numbers) != entities.DrawNumberCount {
				return false
			}
			seen := make(map[int64]bool)
			for _, n := range d.Numbers {
				if n < 1 || n > entities.DrawNumberMax || seen[n] {
					return false
				}
				seen[n] = true
			}
			return true
		})).Return(nil)
		dayTickets := []*entities.Ticket{
			{ID: 1, TelegramID: 111, Stake: decimal.NewFromInt(10), Numbers: []int64{1, 2, 3, 4, 5}},
		}
		ticketRepo.On("GetCreatedBetween", mock.Anything, dayStart, dayStart.Add(24*time.Hour)).Return(dayTickets, nil)

		draw, tickets, err := service.CreateDraw(ctx, date)

		require.NoError(t, err)
		assert.Len(t, draw.Numbers, entities.DrawNumberCount)
		assert.Equal(t, dayTickets, tickets)
		drawRepo.AssertExpectations(t)
		ticketRepo.AssertExpectations(t)
	})

	t.Run("second run on the same day is rejected", func(t *testing.T) {
		t.Parallel()

		drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher := setupSettlementServiceMocks()
		service := NewSettlementService(drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher)

		drawRepo.On("GetByDate", mock.Anything, dayStart).
			Return(&entities.Draw{ID: 1, DrawDate: dayStart, Numbers: []int64{1, 2, 3, 4, 5}}, nil)

		_, _, err := service.CreateDraw(ctx, date)

		require.ErrorIs(t, err, apperrors.ErrDrawAlreadySettled)
		drawRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		ticketRepo.AssertNotCalled(t, "GetCreatedBetween", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSettlementService_PayoutTicket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := int64(123456789)

	draw := &entities.Draw{
		ID:       1,
		DrawDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Numbers:  []int64{1, 2, 3, 4, 9},
	}

	t.Run("four matches pays 50x with 10 percent commission", func(t *testing.T) {
		t.Parallel()

		drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher := setupSettlementServiceMocks()
		service := NewSettlementService(drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher)

		ticket := &entities.Ticket{
			ID:         5,
			TelegramID: userID,
			Code:       "aabbccddeeff",
			Stake:      decimal.NewFromInt(10),
			Numbers:    []int64{1, 2, 3, 4, 5},
		}

		accountRepo.On("GetByTelegramIDForUpdate", mock.Anything, userID).Return(createTestAccount(userID, 90), nil)
		accountRepo.On("UpdateBalance", mock.Anything, userID, decimal.NewFromInt(590)).Return(nil)
		ledgerRepo.On("Record", mock.Anything, mock.MatchedBy(func(e *entities.LedgerEntry) bool {
			return e.TransactionType == entities.TransactionTypeLottoWin &&
				e.ChangeAmount.Equal(decimal.NewFromInt(500)) &&
				e.BalanceAfter.Equal(decimal.NewFromInt(590))
		})).Return(nil)
		winnerRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.WinnerRecord) bool {
			return r.DrawID == draw.ID && r.TicketID == ticket.ID &&
				r.WinAmount.Equal(decimal.NewFromInt(500))
		})).Return(nil)
		commissionRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.CommissionEntry) bool {
			return e.Source == entities.CommissionSourceLottoWin && e.Amount.Equal(decimal.NewFromInt(50))
		})).Return(nil)
		eventPublisher.On("Publish", mock.Anything).Return(nil)

		payout, err := service.PayoutTicket(ctx, draw, ticket)

		require.NoError(t, err)
		require.NotNil(t, payout)
		assert.True(t, payout.NewBalance.Equal(decimal.NewFromInt(590)))
		assert.True(t, payout.Commission.Equal(decimal.NewFromInt(50)))

		accountRepo.AssertExpectations(t)
		winnerRepo.AssertExpectations(t)
		commissionRepo.AssertExpectations(t)
	})

	t.Run("fewer than three matches writes nothing", func(t *testing.T) {
		t.Parallel()

		drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher := setupSettlementServiceMocks()
		service := NewSettlementService(drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher)

		ticket := &entities.Ticket{
			ID:         6,
			TelegramID: userID,
			Stake:      decimal.NewFromInt(10),
			Numbers:    []int64{1, 2, 40, 41, 42},
		}

		payout, err := service.PayoutTicket(ctx, draw, ticket)

		require.NoError(t, err)
		assert.Nil(t, payout)
		accountRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
		winnerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		commissionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSettlementService_BuildAnnouncement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher := setupSettlementServiceMocks()
	service := NewSettlementService(drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher)

	draw := &entities.Draw{
		ID:       1,
		DrawDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Numbers:  []int64{1, 2, 3, 4, 9},
	}
	winnerRepo.On("GetByDraw", mock.Anything, int64(1)).Return([]*entities.WinnerRecord{
		{ID: 1, DrawID: 1, TicketID: 5, TelegramID: 111, Stake: decimal.NewFromInt(10), WinAmount: decimal.NewFromInt(50)},
		{ID: 2, DrawID: 1, TicketID: 6, TelegramID: 222, Stake: decimal.NewFromInt(10), WinAmount: decimal.NewFromInt(500)},
	}, nil)

	announcement, err := service.BuildAnnouncement(ctx, draw)

	require.NoError(t, err)
	require.Len(t, announcement.Winners, 2)
	// Winners ordered by payout descending.
	assert.Equal(t, int64(222), announcement.Winners[0].TelegramID)
	assert.Equal(t, int64(111), announcement.Winners[1].TelegramID)
	assert.True(t, announcement.TotalPayout.Equal(decimal.NewFromInt(550)))
}

func TestSettlementService_LatestAnnouncement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no settled draw yet returns nil", func(t *testing.T) {
		t.Parallel()

		drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher := setupSettlementServiceMocks()
		service := NewSettlementService(drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher)

		drawRepo.On("GetLatest", mock.Anything).Return(nil, nil)

		announcement, err := service.LatestAnnouncement(ctx)

		require.NoError(t, err)
		assert.Nil(t, announcement)
	})

	t.Run("latest draw is summarized", func(t *testing.T) {
		t.Parallel()

		drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher := setupSettlementServiceMocks()
		service := NewSettlementService(drawRepo, ticketRepo, winnerRepo, accountRepo, ledgerRepo, commissionRepo, eventPublisher)

		draw := &entities.Draw{ID: 2, DrawDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Numbers: []int64{5, 6, 7, 8, 9}}
		drawRepo.On("GetLatest", mock.Anything).Return(draw, nil)
		winnerRepo.On("GetByDraw", mock.Anything, int64(2)).Return([]*entities.WinnerRecord{}, nil)

		announcement, err := service.LatestAnnouncement(ctx)

		require.NoError(t, err)
		require.NotNil(t, announcement)
		assert.Equal(t, int64(2), announcement.DrawID)
		assert.Empty(t, announcement.Winners)
	})
}
