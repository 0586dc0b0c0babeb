package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"lottobot/apperrors"
	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
	"lottobot/domain/utils"
)

// settlementService implements daily draw generation and winner payout.
type settlementService struct {
	drawRepo       interfaces.DrawRepository
	ticketRepo     interfaces.TicketRepository
	winnerRepo     interfaces.WinnerRecordRepository
	accountRepo    interfaces.AccountRepository
	ledgerRepo     interfaces.LedgerRepository
	commissionRepo interfaces.CommissionRepository
	eventPublisher interfaces.EventPublisher
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(
	drawRepo interfaces.DrawRepository,
	ticketRepo interfaces.TicketRepository,
	winnerRepo interfaces.WinnerRecordRepository,
	accountRepo interfaces.AccountRepository,
	ledgerRepo interfaces.LedgerRepository,
	commissionRepo interfaces.CommissionRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.SettlementService {
	return &settlementService{
		drawRepo:       drawRepo,
		ticketRepo:     ticketRepo,
		winnerRepo:     winnerRepo,
		accountRepo:    accountRepo,
		ledgerRepo:     ledgerRepo,
		commissionRepo: commissionRepo,
		eventPublisher: eventPublisher,
	}
}

// CreateDraw generates and persists the draw for date's UTC day and returns
// the tickets eligible for it. A second run on the same day returns
// ErrDrawAlreadySettled without generating anything.
func (s *settlementService) CreateDraw(ctx context.Context, date time.Time) (*entities.Draw, []*entities.Ticket, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	existing, err := s.drawRepo.GetByDate(ctx, dayStart)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check for existing draw: %w", err)
	}
	if existing != nil {
		return nil, nil, apperrors.ErrDrawAlreadySettled
	}

	numbers, err := entities.GenerateDrawNumbers()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate draw numbers: %w", err)
	}

	draw := &entities.Draw{
		DrawDate: dayStart,
		Numbers:  numbers,
	}
	if err := s.drawRepo.Create(ctx, draw); err != nil {
		return nil, nil, fmt.Errorf("failed to create draw: %w", err)
	}

	tickets, err := s.ticketRepo.GetCreatedBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load day's tickets: %w", err)
	}

	log.WithFields(log.Fields{
		"draw_id":      draw.ID,
		"draw_date":    dayStart.Format("2006-01-02"),
		"numbers":      numbers,
		"ticket_count": len(tickets),
	}).Info("Draw created")

	return draw, tickets, nil
}

// PayoutTicket scores one ticket against the draw. Winning tickets (3 or more
// matches) get the balance credit, the winner record and the commission entry
// together; non-winning tickets return nil with no writes.
func (s *settlementService) PayoutTicket(ctx context.Context, draw *entities.Draw, ticket *entities.Ticket) (*interfaces.TicketPayout, error) {
	matches := ticket.Matches(draw.Numbers)
	winAmount := entities.WinAmount(ticket.Stake, matches)
	if !winAmount.IsPositive() {
		return nil, nil
	}
	commission := entities.CommissionOn(winAmount)

	account, err := s.accountRepo.GetByTelegramIDForUpdate(ctx, ticket.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("account", ticket.TelegramID)
	}

	newBalance := account.Balance.Add(winAmount)
	if err := s.accountRepo.UpdateBalance(ctx, ticket.TelegramID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to credit win: %w", err)
	}

	entry := &entities.LedgerEntry{
		TelegramID:      ticket.TelegramID,
		BalanceBefore:   account.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    winAmount,
		TransactionType: entities.TransactionTypeLottoWin,
		Metadata: map[string]any{
			"draw_id":     draw.ID,
			"ticket_code": ticket.Code,
			"matches":     matches,
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.ledgerRepo, s.eventPublisher, entry); err != nil {
		return nil, fmt.Errorf("failed to record win balance change: %w", err)
	}

	record := &entities.WinnerRecord{
		DrawID:     draw.ID,
		TicketID:   ticket.ID,
		TelegramID: ticket.TelegramID,
		Stake:      ticket.Stake,
		WinAmount:  winAmount,
	}
	if err := s.winnerRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create winner record: %w", err)
	}

	if err := s.commissionRepo.Create(ctx, &entities.CommissionEntry{
		Amount: commission,
		Source: entities.CommissionSourceLottoWin,
	}); err != nil {
		return nil, fmt.Errorf("failed to record commission: %w", err)
	}

	log.WithFields(log.Fields{
		"draw_id":     draw.ID,
		"ticket_id":   ticket.ID,
		"telegram_id": ticket.TelegramID,
		"matches":     matches,
		"win_amount":  winAmount,
	}).Info("Winning ticket paid out")

	return &interfaces.TicketPayout{
		Record:     record,
		Commission: commission,
		NewBalance: newBalance,
	}, nil
}

// BuildAnnouncement assembles the structured summary for a settled draw,
// winners ordered by payout descending.
func (s *settlementService) BuildAnnouncement(ctx context.Context, draw *entities.Draw) (*interfaces.Announcement, error) {
	records, err := s.winnerRepo.GetByDraw(ctx, draw.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load winner records: %w", err)
	}

	winners := make([]interfaces.AnnouncementWinner, 0, len(records))
	totalPayout := decimal.Zero
	for _, r := range records {
		winners = append(winners, interfaces.AnnouncementWinner{
			TelegramID: r.TelegramID,
			TicketID:   r.TicketID,
			Stake:      r.Stake,
			WinAmount:  r.WinAmount,
		})
		totalPayout = totalPayout.Add(r.WinAmount)
	}
	sort.SliceStable(winners, func(i, j int) bool {
		return winners[i].WinAmount.GreaterThan(winners[j].WinAmount)
	})

	return &interfaces.Announcement{
		DrawID:      draw.ID,
		DrawDate:    draw.DrawDate,
		Numbers:     draw.Numbers,
		Winners:     winners,
		TotalPayout: totalPayout,
	}, nil
}

// LatestAnnouncement assembles the summary for the most recent draw, nil when
// no draw has been settled yet.
func (s *settlementService) LatestAnnouncement(ctx context.Context) (*interfaces.Announcement, error) {
	draw, err := s.drawRepo.GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest draw: %w", err)
	}
	if draw == nil {
		return nil, nil
	}
	return s.BuildAnnouncement(ctx, draw)
}
