package utils

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"lottobot/domain/entities"
	"lottobot/domain/events"
	"lottobot/domain/interfaces"
)

// RecordBalanceChange records a ledger entry and emits a balance change
// event. This is the single entry point for all balance changes.
func RecordBalanceChange(ctx context.Context, ledgerRepo interfaces.LedgerRepository, eventPublisher interfaces.EventPublisher, entry *entities.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid ledger entry: %w", err)
	}

	if err := ledgerRepo.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	event := events.BalanceChangeEvent{
		TelegramID:      entry.TelegramID,
		OldBalance:      entry.BalanceBefore,
		NewBalance:      entry.BalanceAfter,
		ChangeAmount:    entry.ChangeAmount,
		TransactionType: entry.TransactionType,
	}
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	return nil
}
