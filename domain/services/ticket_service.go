package services

import (
	"context"
	"fmt"
	"time"

	"lottobot/apperrors"
	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
	"lottobot/domain/utils"
)

// ticketService implements business logic for stake placement.
type ticketService struct {
	accountRepo    interfaces.AccountRepository
	ticketRepo     interfaces.TicketRepository
	ledgerRepo     interfaces.LedgerRepository
	eventPublisher interfaces.EventPublisher
}

// NewTicketService creates a new ticket service.
func NewTicketService(
	accountRepo interfaces.AccountRepository,
	ticketRepo interfaces.TicketRepository,
	ledgerRepo interfaces.LedgerRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.TicketService {
	return &ticketService{
		accountRepo:    accountRepo,
		ticketRepo:     ticketRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

// PlaceStake validates the stake text and records the ticket together with
// its balance debit. Any validation failure leaves all state untouched.
func (s *ticketService) PlaceStake(ctx context.Context, telegramID int64, input string) (*interfaces.StakeResult, error) {
	numbers, amount, err := ParseStake(input)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByTelegramIDForUpdate(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("account", telegramID)
	}

	if !account.HasSufficientBalance(amount) {
		return nil, apperrors.NewValidationError(apperrors.RuleBalance,
			"balance %s is less than stake %s", account.Balance, amount)
	}

	ticket := &entities.Ticket{
		TelegramID: telegramID,
		Code:       entities.GenerateTicketCode(telegramID, time.Now().UTC()),
		Stake:      amount,
		Numbers:    numbers,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	newBalance := account.Balance.Sub(amount)
	if err := s.accountRepo.UpdateBalance(ctx, telegramID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to debit stake: %w", err)
	}

	entry := &entities.LedgerEntry{
		TelegramID:      telegramID,
		BalanceBefore:   account.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    amount.Neg(),
		TransactionType: entities.TransactionTypeStake,
		Metadata: map[string]any{
			"ticket_code": ticket.Code,
			"numbers":     ticket.Numbers,
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.ledgerRepo, s.eventPublisher, entry); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	return &interfaces.StakeResult{
		Ticket:     ticket,
		NewBalance: newBalance,
	}, nil
}
