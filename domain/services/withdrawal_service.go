package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"lottobot/apperrors"
	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
	"lottobot/domain/utils"
)

// withdrawalService implements the withdrawal request workflow.
type withdrawalService struct {
	requestRepo    interfaces.WithdrawalRequestRepository
	accountRepo    interfaces.AccountRepository
	ledgerRepo     interfaces.LedgerRepository
	eventPublisher interfaces.EventPublisher
}

// NewWithdrawalService creates a new withdrawal service.
func NewWithdrawalService(
	requestRepo interfaces.WithdrawalRequestRepository,
	accountRepo interfaces.AccountRepository,
	ledgerRepo interfaces.LedgerRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.WithdrawalService {
	return &withdrawalService{
		requestRepo:    requestRepo,
		accountRepo:    accountRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

// FileRequest records a pending withdrawal request. The balance is not
// reserved; it is re-checked when an admin resolves the request.
func (s *withdrawalService) FileRequest(ctx context.Context, telegramID int64, amount decimal.Decimal, method, address string) (*entities.WithdrawalRequest, error) {
	if amount.LessThan(entities.MinWithdrawal) || amount.GreaterThan(entities.MaxWithdrawal) {
		return nil, apperrors.NewValidationError(apperrors.RuleWithdrawAmount,
			"withdrawal must be between %s and %s", entities.MinWithdrawal, entities.MaxWithdrawal)
	}
	if !entities.IsValidPaymentMethod(method) {
		return nil, apperrors.NewValidationError(apperrors.RulePaymentMethod,
			"unknown payment method %q", method)
	}
	if address == "" {
		return nil, apperrors.NewValidationError(apperrors.RulePaymentMethod,
			"destination address must not be empty")
	}

	request := &entities.WithdrawalRequest{
		TelegramID: telegramID,
		Amount:     amount,
		Method:     entities.PaymentMethod(method),
		Address:    address,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create withdrawal request: %w", err)
	}

	return request, nil
}

// Approve resolves the request against the balance as it stands now, not as
// it stood at filing time. An insufficient balance auto-rejects the request
// instead of failing the unit.
func (s *withdrawalService) Approve(ctx context.Context, requestID int64) (*interfaces.WithdrawalResolution, error) {
	request, err := s.requestRepo.GetByIDForUpdate(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal request: %w", err)
	}
	if request == nil {
		return nil, apperrors.NewNotFoundError("withdrawal request", requestID)
	}

	account, err := s.accountRepo.GetByTelegramIDForUpdate(ctx, request.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("account", request.TelegramID)
	}

	if !account.HasSufficientBalance(request.Amount) {
		if err := s.requestRepo.Delete(ctx, request.ID); err != nil {
			return nil, fmt.Errorf("failed to delete withdrawal request: %w", err)
		}
		log.WithFields(log.Fields{
			"request_id":  request.ID,
			"telegram_id": request.TelegramID,
			"amount":      request.Amount,
			"balance":     account.Balance,
		}).Warn("Withdrawal auto-rejected, balance no longer covers amount")
		return &interfaces.WithdrawalResolution{
			Request:    request,
			Outcome:    interfaces.WithdrawalAutoRejected,
			NewBalance: account.Balance,
		}, nil
	}

	newBalance := account.Balance.Sub(request.Amount)
	if err := s.accountRepo.UpdateBalance(ctx, request.TelegramID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to debit withdrawal: %w", err)
	}

	entry := &entities.LedgerEntry{
		TelegramID:      request.TelegramID,
		BalanceBefore:   account.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    request.Amount.Neg(),
		TransactionType: entities.TransactionTypeWithdrawal,
		Metadata: map[string]any{
			"request_id": request.ID,
			"method":     string(request.Method),
			"address":    request.Address,
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.ledgerRepo, s.eventPublisher, entry); err != nil {
		return nil, fmt.Errorf("failed to record withdrawal balance change: %w", err)
	}

	if err := s.requestRepo.Delete(ctx, request.ID); err != nil {
		return nil, fmt.Errorf("failed to delete withdrawal request: %w", err)
	}

	log.WithFields(log.Fields{
		"request_id":  request.ID,
		"telegram_id": request.TelegramID,
		"amount":      request.Amount,
	}).Info("Withdrawal approved")

	return &interfaces.WithdrawalResolution{
		Request:    request,
		Outcome:    interfaces.WithdrawalApproved,
		NewBalance: newBalance,
	}, nil
}

// Reject deletes the request with no balance effect.
func (s *withdrawalService) Reject(ctx context.Context, requestID int64) (*entities.WithdrawalRequest, error) {
	request, err := s.requestRepo.GetByIDForUpdate(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal request: %w", err)
	}
	if request == nil {
		return nil, apperrors.NewNotFoundError("withdrawal request", requestID)
	}

	if err := s.requestRepo.Delete(ctx, request.ID); err != nil {
		return nil, fmt.Errorf("failed to delete withdrawal request: %w", err)
	}

	return request, nil
}

// ListPending returns all unresolved withdrawal requests.
func (s *withdrawalService) ListPending(ctx context.Context) ([]*entities.WithdrawalRequest, error) {
	requests, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, nil
}
