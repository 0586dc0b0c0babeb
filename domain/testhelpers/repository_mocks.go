package testhelpers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"lottobot/domain/entities"
	"lottobot/domain/events"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entities.Account, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByTelegramIDForUpdate(ctx context.Context, telegramID int64) (*entities.Account, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByReferralCode(ctx context.Context, code string) (*entities.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, telegramID int64, newBalance decimal.Decimal) error {
	args := m.Called(ctx, telegramID, newBalance)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateLanguage(ctx context.Context, telegramID int64, languageTag string) error {
	args := m.Called(ctx, telegramID, languageTag)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByUser(ctx context.Context, telegramID int64, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, telegramID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) HasEntryOfType(ctx context.Context, telegramID int64, tt entities.TransactionType) (bool, error) {
	args := m.Called(ctx, telegramID, tt)
	return args.Bool(0), args.Error(1)
}

// MockReferralLinkRepository is a mock implementation of ReferralLinkRepository
type MockReferralLinkRepository struct {
	mock.Mock
}

func (m *MockReferralLinkRepository) Create(ctx context.Context, link *entities.ReferralLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockReferralLinkRepository) GetByReferredID(ctx context.Context, referredID int64) (*entities.ReferralLink, error) {
	args := m.Called(ctx, referredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ReferralLink), args.Error(1)
}

func (m *MockReferralLinkRepository) GetByReferredIDForUpdate(ctx context.Context, referredID int64) (*entities.ReferralLink, error) {
	args := m.Called(ctx, referredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ReferralLink), args.Error(1)
}

func (m *MockReferralLinkRepository) MarkBonusCredited(ctx context.Context, linkID int64) error {
	args := m.Called(ctx, linkID)
	return args.Error(0)
}

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByUser(ctx context.Context, telegramID int64, limit int) ([]*entities.Ticket, error) {
	args := m.Called(ctx, telegramID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetCreatedBetween(ctx context.Context, from, to time.Time) ([]*entities.Ticket, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ticket), args.Error(1)
}

// MockDepositClaimRepository is a mock implementation of DepositClaimRepository
type MockDepositClaimRepository struct {
	mock.Mock
}

func (m *MockDepositClaimRepository) Create(ctx context.Context, claim *entities.DepositClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockDepositClaimRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.DepositClaim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DepositClaim), args.Error(1)
}

func (m *MockDepositClaimRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDepositClaimRepository) CountByUser(ctx context.Context, telegramID int64) (int64, error) {
	args := m.Called(ctx, telegramID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDepositClaimRepository) ListPending(ctx context.Context) ([]*entities.DepositClaim, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DepositClaim), args.Error(1)
}

// MockWithdrawalRequestRepository is a mock implementation of WithdrawalRequestRepository
type MockWithdrawalRequestRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRequestRepository) Create(ctx context.Context, request *entities.WithdrawalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockWithdrawalRequestRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRequestRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWithdrawalRequestRepository) ListPending(ctx context.Context) ([]*entities.WithdrawalRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WithdrawalRequest), args.Error(1)
}

// MockDrawRepository is a mock implementation of DrawRepository
type MockDrawRepository struct {
	mock.Mock
}

func (m *MockDrawRepository) Create(ctx context.Context, draw *entities.Draw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *MockDrawRepository) GetByDate(ctx context.Context, date time.Time) (*entities.Draw, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draw), args.Error(1)
}

func (m *MockDrawRepository) GetLatest(ctx context.Context) (*entities.Draw, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draw), args.Error(1)
}

// MockWinnerRecordRepository is a mock implementation of WinnerRecordRepository
type MockWinnerRecordRepository struct {
	mock.Mock
}

func (m *MockWinnerRecordRepository) Create(ctx context.Context, record *entities.WinnerRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockWinnerRecordRepository) GetByDraw(ctx context.Context, drawID int64) ([]*entities.WinnerRecord, error) {
	args := m.Called(ctx, drawID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WinnerRecord), args.Error(1)
}

// MockCommissionRepository is a mock implementation of CommissionRepository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) Create(ctx context.Context, entry *entities.CommissionEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCommissionRepository) GetTotal(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, telegramID int64, message string) error {
	args := m.Called(ctx, telegramID, message)
	return args.Error(0)
}
