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

// depositService implements the deposit claim workflow.
type depositService struct {
	claimRepo       interfaces.DepositClaimRepository
	accountRepo     interfaces.AccountRepository
	ledgerRepo      interfaces.LedgerRepository
	commissionRepo  interfaces.CommissionRepository
	referralService interfaces.ReferralService
	eventPublisher  interfaces.EventPublisher
}

// NewDepositService creates a new deposit service. The referral service runs
// in the same unit of work so the bonus credit commits atomically with the
// approval it depends on.
func NewDepositService(
	claimRepo interfaces.DepositClaimRepository,
	accountRepo interfaces.AccountRepository,
	ledgerRepo interfaces.LedgerRepository,
	commissionRepo interfaces.CommissionRepository,
	referralService interfaces.ReferralService,
	eventPublisher interfaces.EventPublisher,
) interfaces.DepositService {
	return &depositService{
		claimRepo:       claimRepo,
		accountRepo:     accountRepo,
		ledgerRepo:      ledgerRepo,
		commissionRepo:  commissionRepo,
		referralService: referralService,
		eventPublisher:  eventPublisher,
	}
}

// FileClaim records a pending deposit claim. No balance effect until an
// admin approves it.
func (s *depositService) FileClaim(ctx context.Context, telegramID int64, txRef, method string) (*entities.DepositClaim, error) {
	if !entities.IsValidPaymentMethod(method) {
		return nil, apperrors.NewValidationError(apperrors.RulePaymentMethod,
			"unknown payment method %q", method)
	}
	if txRef == "" {
		return nil, apperrors.NewValidationError(apperrors.RulePaymentMethod,
			"transaction reference must not be empty")
	}

	claim := &entities.DepositClaim{
		TelegramID: telegramID,
		Method:     entities.PaymentMethod(method),
		TxRef:      txRef,
	}
	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to create deposit claim: %w", err)
	}

	return claim, nil
}

// Approve credits the claimant's balance, records the operator commission,
// deletes the claim and credits any owed referral bonus. The claim row lock
// guarantees exactly one terminal action resolves it.
func (s *depositService) Approve(ctx context.Context, claimID int64, amount decimal.Decimal) (*interfaces.DepositApprovalResult, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError(apperrors.RuleDepositAmount,
			"deposit amount must be positive, got %s", amount)
	}

	claim, err := s.claimRepo.GetByIDForUpdate(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit claim: %w", err)
	}
	if claim == nil {
		return nil, apperrors.NewNotFoundError("deposit claim", claimID)
	}

	account, err := s.accountRepo.GetByTelegramIDForUpdate(ctx, claim.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("account", claim.TelegramID)
	}

	// Checked before the deposit entry below is written, so it reflects
	// prior approvals only.
	hasDeposit, err := s.ledgerRepo.HasEntryOfType(ctx, claim.TelegramID, entities.TransactionTypeDeposit)
	if err != nil {
		return nil, fmt.Errorf("failed to check deposit history: %w", err)
	}

	newBalance := account.Balance.Add(amount)
	if err := s.accountRepo.UpdateBalance(ctx, claim.TelegramID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to credit deposit: %w", err)
	}

	entry := &entities.LedgerEntry{
		TelegramID:      claim.TelegramID,
		BalanceBefore:   account.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    amount,
		TransactionType: entities.TransactionTypeDeposit,
		Metadata: map[string]any{
			"claim_id": claim.ID,
			"method":   string(claim.Method),
			"tx_ref":   claim.TxRef,
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.ledgerRepo, s.eventPublisher, entry); err != nil {
		return nil, fmt.Errorf("failed to record deposit balance change: %w", err)
	}

	commission := entities.CommissionOn(amount)
	if err := s.commissionRepo.Create(ctx, &entities.CommissionEntry{
		Amount: commission,
		Source: entities.CommissionSourceDeposit,
	}); err != nil {
		return nil, fmt.Errorf("failed to record commission: %w", err)
	}

	if err := s.claimRepo.Delete(ctx, claim.ID); err != nil {
		return nil, fmt.Errorf("failed to delete deposit claim: %w", err)
	}

	bonus, err := s.referralService.CreditBonusOnDeposit(ctx, claim.TelegramID, amount, !hasDeposit)
	if err != nil {
		return nil, fmt.Errorf("failed to credit referral bonus: %w", err)
	}

	log.WithFields(log.Fields{
		"claim_id":    claim.ID,
		"telegram_id": claim.TelegramID,
		"amount":      amount,
		"commission":  commission,
	}).Info("Deposit claim approved")

	return &interfaces.DepositApprovalResult{
		Claim:      claim,
		Amount:     amount,
		Commission: commission,
		NewBalance: newBalance,
		Bonus:      bonus,
	}, nil
}

// Reject deletes the claim with no balance effect.
func (s *depositService) Reject(ctx context.Context, claimID int64) (*entities.DepositClaim, error) {
	claim, err := s.claimRepo.GetByIDForUpdate(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit claim: %w", err)
	}
	if claim == nil {
		return nil, apperrors.NewNotFoundError("deposit claim", claimID)
	}

	if err := s.claimRepo.Delete(ctx, claim.ID); err != nil {
		return nil, fmt.Errorf("failed to delete deposit claim: %w", err)
	}

	return claim, nil
}

// ListPending returns all unresolved deposit claims.
func (s *depositService) ListPending(ctx context.Context) ([]*entities.DepositClaim, error) {
	claims, err := s.claimRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending claims: %w", err)
	}
	return claims, nil
}
