package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"lottobot/apperrors"
	"lottobot/domain/entities"
	"lottobot/domain/events"
	"lottobot/domain/interfaces"
)

// Broadcaster posts the settlement announcement to the shared channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, message string) error
}

// SettlementWorker runs the daily draw: generate the numbers, score every
// ticket of the day, pay out winners and broadcast the announcement.
type SettlementWorker struct {
	executor    *LedgerExecutor
	notifier    interfaces.Notifier
	translator  interfaces.Translator
	broadcaster Broadcaster
	hour        int
}

// NewSettlementWorker creates a new settlement worker firing daily at the
// given UTC hour.
func NewSettlementWorker(
	executor *LedgerExecutor,
	notifier interfaces.Notifier,
	translator interfaces.Translator,
	broadcaster Broadcaster,
	hour int,
) *SettlementWorker {
	return &SettlementWorker{
		executor:    executor,
		notifier:    notifier,
		translator:  translator,
		broadcaster: broadcaster,
		hour:        hour,
	}
}

// Start begins the settlement worker and returns a stop function.
func (w *SettlementWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.WithField("hour_utc", w.hour).Info("Settlement worker started")

		for {
			waitDuration := time.Until(w.nextRunTime(time.Now().UTC()))
			log.Infof("Next settlement in %v", waitDuration.Round(time.Second))

			select {
			case <-ctx.Done():
				log.Info("Settlement worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Settlement worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
			}

			if err := w.SettleToday(ctx); err != nil {
				log.Errorf("Settlement run failed: %v", err)
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// nextRunTime returns the next settlement instant strictly after now.
func (w *SettlementWorker) nextRunTime(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), w.hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// SettleToday runs one settlement cycle for the current UTC day. The draw is
// created in its own unit; each winning ticket's payout runs in its own unit
// so one failure does not block the others.
func (w *SettlementWorker) SettleToday(ctx context.Context) error {
	var draw *entities.Draw
	var tickets []*entities.Ticket

	err := w.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		settlementService := newSettlementService(uow)
		var err error
		draw, tickets, err = settlementService.CreateDraw(ctx, time.Now().UTC())
		return err
	})
	if errors.Is(err, apperrors.ErrDrawAlreadySettled) {
		log.Warn("Settlement already ran today, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create draw: %w", err)
	}

	var payouts []*interfaces.TicketPayout
	var failureCount int
	for _, ticket := range tickets {
		payout, err := w.payoutTicket(ctx, draw, ticket)
		if err != nil {
			log.Errorf("Failed to pay out ticket %d: %v", ticket.ID, err)
			failureCount++
			continue
		}
		if payout == nil {
			continue
		}
		payouts = append(payouts, payout)

		locale := w.localeOf(ctx, ticket.TelegramID)
		w.notify(ctx, ticket.TelegramID, fmt.Sprintf(
			w.translator.Translate("win_notification", locale),
			payout.Record.WinAmount, payout.NewBalance))
	}

	log.WithFields(log.Fields{
		"draw_id":       draw.ID,
		"tickets":       len(tickets),
		"winners":       len(payouts),
		"payout_errors": failureCount,
	}).Info("Settlement completed")

	return w.announce(ctx, draw, len(payouts))
}

func (w *SettlementWorker) payoutTicket(ctx context.Context, draw *entities.Draw, ticket *entities.Ticket) (*interfaces.TicketPayout, error) {
	var payout *interfaces.TicketPayout
	err := w.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		settlementService := newSettlementService(uow)
		var err error
		payout, err = settlementService.PayoutTicket(ctx, draw, ticket)
		return err
	})
	return payout, err
}

// announce builds the structured summary, publishes the settlement event and
// broadcasts the rendered text. Broadcast failures are logged and swallowed.
func (w *SettlementWorker) announce(ctx context.Context, draw *entities.Draw, winnerCount int) error {
	var announcement *interfaces.Announcement
	err := w.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		settlementService := newSettlementService(uow)
		var err error
		announcement, err = settlementService.BuildAnnouncement(ctx, draw)
		if err != nil {
			return err
		}
		return uow.EventBus().Publish(events.DrawSettledEvent{
			DrawID:      draw.ID,
			DrawDate:    draw.DrawDate,
			Numbers:     draw.Numbers,
			WinnerCount: winnerCount,
			TotalPayout: announcement.TotalPayout,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to build announcement: %w", err)
	}

	message := RenderAnnouncement(announcement, w.translator, "en")
	if err := w.broadcaster.Broadcast(ctx, message); err != nil {
		log.WithError(err).Error("Failed to broadcast settlement announcement")
	}
	return nil
}

func (w *SettlementWorker) localeOf(ctx context.Context, telegramID int64) string {
	locale := "en"
	err := w.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		account, err := uow.AccountRepository().GetByTelegramID(ctx, telegramID)
		if err != nil {
			return err
		}
		if account != nil {
			locale = account.LanguageTag
		}
		return nil
	})
	if err != nil {
		log.WithError(err).WithField("telegram_id", telegramID).Warn("Failed to resolve locale")
	}
	return locale
}

func (w *SettlementWorker) notify(ctx context.Context, telegramID int64, message string) {
	if err := w.notifier.Notify(ctx, telegramID, message); err != nil {
		log.WithError(err).WithField("telegram_id", telegramID).Warn("Failed to deliver win notification")
	}
}
