package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
	"lottobot/domain/utils"
)

// referralService implements referral attribution and bonus crediting.
type referralService struct {
	accountRepo    interfaces.AccountRepository
	referralRepo   interfaces.ReferralLinkRepository
	claimRepo      interfaces.DepositClaimRepository
	ledgerRepo     interfaces.LedgerRepository
	eventPublisher interfaces.EventPublisher
}

// NewReferralService creates a new referral service.
func NewReferralService(
	accountRepo interfaces.AccountRepository,
	referralRepo interfaces.ReferralLinkRepository,
	claimRepo interfaces.DepositClaimRepository,
	ledgerRepo interfaces.LedgerRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.ReferralService {
	return &referralService{
		accountRepo:    accountRepo,
		referralRepo:   referralRepo,
		claimRepo:      claimRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

// Attribute links the incoming user to the owner of code. Attribution is a
// silent no-op when any precondition fails: unknown code, self-referral, an
// existing link, or prior deposit activity.
func (s *referralService) Attribute(ctx context.Context, referredID int64, code string) (*entities.ReferralLink, error) {
	referrer, err := s.accountRepo.GetByReferralCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up referral code: %w", err)
	}
	if referrer == nil || referrer.TelegramID == referredID {
		return nil, nil
	}

	existing, err := s.referralRepo.GetByReferredID(ctx, referredID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing referral link: %w", err)
	}
	if existing != nil {
		return nil, nil
	}

	pendingClaims, err := s.claimRepo.CountByUser(ctx, referredID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending claims: %w", err)
	}
	hasDeposit, err := s.ledgerRepo.HasEntryOfType(ctx, referredID, entities.TransactionTypeDeposit)
	if err != nil {
		return nil, fmt.Errorf("failed to check deposit history: %w", err)
	}
	if pendingClaims > 0 || hasDeposit {
		return nil, nil
	}

	link := &entities.ReferralLink{
		ReferrerID: referrer.TelegramID,
		ReferredID: referredID,
	}
	if err := s.referralRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to create referral link: %w", err)
	}

	log.WithFields(log.Fields{
		"referrer_id": link.ReferrerID,
		"referred_id": link.ReferredID,
	}).Info("Referral attributed")

	return link, nil
}

// CreditBonusOnDeposit credits the referrer with 10% of the referred user's
// first approved deposit. The link row is locked so the bonus is credited at
// most once no matter how often deposit approval runs afterwards.
func (s *referralService) CreditBonusOnDeposit(ctx context.Context, referredID int64, depositAmount decimal.Decimal, firstDeposit bool) (*interfaces.ReferralBonusResult, error) {
	if !firstDeposit {
		return nil, nil
	}

	link, err := s.referralRepo.GetByReferredIDForUpdate(ctx, referredID)
	if err != nil {
		return nil, fmt.Errorf("failed to get referral link: %w", err)
	}
	if link == nil || !link.CanCreditBonus() {
		return nil, nil
	}

	referrer, err := s.accountRepo.GetByTelegramIDForUpdate(ctx, link.ReferrerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrer account: %w", err)
	}
	if referrer == nil {
		return nil, fmt.Errorf("referrer account %d missing for link %d", link.ReferrerID, link.ID)
	}

	bonus := depositAmount.Mul(entities.ReferralBonusRate)
	newBalance := referrer.Balance.Add(bonus)
	if err := s.accountRepo.UpdateBalance(ctx, referrer.TelegramID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to credit referral bonus: %w", err)
	}

	entry := &entities.LedgerEntry{
		TelegramID:      referrer.TelegramID,
		BalanceBefore:   referrer.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    bonus,
		TransactionType: entities.TransactionTypeReferralBonus,
		Metadata: map[string]any{
			"referred_id":    referredID,
			"deposit_amount": depositAmount.String(),
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.ledgerRepo, s.eventPublisher, entry); err != nil {
		return nil, fmt.Errorf("failed to record bonus balance change: %w", err)
	}

	if err := s.referralRepo.MarkBonusCredited(ctx, link.ID); err != nil {
		return nil, fmt.Errorf("failed to mark bonus credited: %w", err)
	}

	return &interfaces.ReferralBonusResult{
		ReferrerID: referrer.TelegramID,
		Amount:     bonus,
	}, nil
}
