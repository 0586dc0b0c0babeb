package testhelpers

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// MockReferralService is a mock implementation of ReferralService
type MockReferralService struct {
	mock.Mock
}

func (m *MockReferralService) Attribute(ctx context.Context, referredID int64, code string) (*entities.ReferralLink, error) {
	args := m.Called(ctx, referredID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ReferralLink), args.Error(1)
}

func (m *MockReferralService) CreditBonusOnDeposit(ctx context.Context, referredID int64, depositAmount decimal.Decimal, firstDeposit bool) (*interfaces.ReferralBonusResult, error) {
	args := m.Called(ctx, referredID, depositAmount, firstDeposit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.ReferralBonusResult), args.Error(1)
}
