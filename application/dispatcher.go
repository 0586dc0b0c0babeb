package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"lottobot/apperrors"
	"lottobot/domain/entities"
	"lottobot/domain/events"
	"lottobot/domain/interfaces"
	"lottobot/domain/services"
	"lottobot/domain/utils"
)

// Dispatcher routes typed commands to the domain services, each inside its own
// ledger executor unit. It owns the account bootstrap on first contact and all
// cross-party notifications.
type Dispatcher struct {
	executor        *LedgerExecutor
	notifier        interfaces.Notifier
	translator      interfaces.Translator
	adminIDs        map[int64]struct{}
	startingBalance decimal.Decimal
}

// NewDispatcher creates a new command dispatcher.
func NewDispatcher(
	executor *LedgerExecutor,
	notifier interfaces.Notifier,
	translator interfaces.Translator,
	adminIDs []int64,
	startingBalance decimal.Decimal,
) *Dispatcher {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Dispatcher{
		executor:        executor,
		notifier:        notifier,
		translator:      translator,
		adminIDs:        admins,
		startingBalance: startingBalance,
	}
}

// Sender identifies the account behind an incoming message.
type Sender struct {
	TelegramID  int64
	DisplayName string
	LanguageTag string
}

// HandleMessage bootstraps the sender's account, parses the message into a
// typed command and executes it. The returned string is the localized reply
// for the sender.
func (d *Dispatcher) HandleMessage(ctx context.Context, sender Sender, text string) string {
	account, err := d.ensureAccount(ctx, sender)
	if err != nil {
		log.WithError(err).WithField("telegram_id", sender.TelegramID).Error("Failed to bootstrap account")
		return d.t("error_internal", sender.LanguageTag)
	}
	locale := account.LanguageTag

	cmd, err := ParseCommand(text)
	if errors.Is(err, ErrUnknownCommand) {
		return d.t("unknown_command", locale)
	}
	if err != nil {
		return d.renderError(err, locale)
	}

	reply, err := d.dispatch(ctx, account, locale, cmd)
	if err != nil {
		return d.renderError(err, locale)
	}
	return reply
}

func (d *Dispatcher) dispatch(ctx context.Context, account *entities.Account, locale string, cmd Command) (string, error) {
	switch c := cmd.(type) {
	case StartCommand:
		return d.handleStart(ctx, account, locale, c)
	case BalanceCommand:
		return fmt.Sprintf(d.t("balance", locale), account.Balance), nil
	case StakeCommand:
		return d.handleStake(ctx, account, locale, c)
	case DepositClaimCommand:
		return d.handleDepositClaim(ctx, account, locale, c)
	case WithdrawRequestCommand:
		return d.handleWithdrawRequest(ctx, account, locale, c)
	case LanguageCommand:
		return d.handleLanguage(ctx, account, c)
	case AnnounceCommand:
		return d.requireAdmin(account, locale, func() (string, error) {
			return d.handleAnnounce(ctx, locale)
		})
	case PendingCommand:
		return d.requireAdmin(account, locale, func() (string, error) {
			return d.handlePending(ctx, locale)
		})
	case DepositApproveCommand:
		return d.requireAdmin(account, locale, func() (string, error) {
			return d.handleDepositApprove(ctx, locale, c)
		})
	case DepositRejectCommand:
		return d.requireAdmin(account, locale, func() (string, error) {
			return d.handleDepositReject(ctx, locale, c)
		})
	case WithdrawApproveCommand:
		return d.requireAdmin(account, locale, func() (string, error) {
			return d.handleWithdrawApprove(ctx, locale, c)
		})
	case WithdrawRejectCommand:
		return d.requireAdmin(account, locale, func() (string, error) {
			return d.handleWithdrawReject(ctx, locale, c)
		})
	default:
		return d.t("unknown_command", locale), nil
	}
}

func (d *Dispatcher) requireAdmin(account *entities.Account, locale string, fn func() (string, error)) (string, error) {
	if _, ok := d.adminIDs[account.TelegramID]; !ok {
		return d.t("unknown_command", locale), nil
	}
	return fn()
}

// ensureAccount loads the sender's account, creating it on first contact with
// the configured starting balance and a fresh referral code.
func (d *Dispatcher) ensureAccount(ctx context.Context, sender Sender) (*entities.Account, error) {
	var account *entities.Account
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		existing, err := uow.AccountRepository().GetByTelegramID(ctx, sender.TelegramID)
		if err != nil {
			return err
		}
		if existing != nil {
			account = existing
			return nil
		}

		lang := sender.LanguageTag
		if lang == "" {
			lang = "en"
		}
		account = &entities.Account{
			TelegramID:   sender.TelegramID,
			DisplayName:  sender.DisplayName,
			LanguageTag:  lang,
			Balance:      d.startingBalance,
			ReferralCode: newReferralCode(),
		}
		if err := uow.AccountRepository().Create(ctx, account); err != nil {
			return err
		}

		if d.startingBalance.IsPositive() {
			entry := &entities.LedgerEntry{
				TelegramID:      sender.TelegramID,
				BalanceBefore:   decimal.Zero,
				BalanceAfter:    d.startingBalance,
				ChangeAmount:    d.startingBalance,
				TransactionType: entities.TransactionTypeInitial,
			}
			if err := utils.RecordBalanceChange(ctx, uow.LedgerRepository(), uow.EventBus(), entry); err != nil {
				return err
			}
		}

		if err := uow.EventBus().Publish(events.AccountCreatedEvent{
			TelegramID:   account.TelegramID,
			DisplayName:  account.DisplayName,
			ReferralCode: account.ReferralCode,
		}); err != nil {
			log.WithError(err).Error("Failed to publish account created event")
		}

		log.WithFields(log.Fields{
			"telegram_id": sender.TelegramID,
			"balance":     d.startingBalance,
		}).Info("Account created on first contact")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// newReferralCode derives a short shareable code. Uniqueness is enforced by
// the accounts table constraint.
func newReferralCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (d *Dispatcher) handleStart(ctx context.Context, account *entities.Account, locale string, cmd StartCommand) (string, error) {
	if cmd.ReferralCode != "" {
		err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
			referralService := services.NewReferralService(
				uow.AccountRepository(),
				uow.ReferralLinkRepository(),
				uow.DepositClaimRepository(),
				uow.LedgerRepository(),
				uow.EventBus(),
			)
			_, err := referralService.Attribute(ctx, account.TelegramID, cmd.ReferralCode)
			return err
		})
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprintf(d.t("welcome", locale), account.Balance, account.ReferralCode), nil
}

func (d *Dispatcher) handleStake(ctx context.Context, account *entities.Account, locale string, cmd StakeCommand) (string, error) {
	var result *interfaces.StakeResult
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		ticketService := services.NewTicketService(
			uow.AccountRepository(),
			uow.TicketRepository(),
			uow.LedgerRepository(),
			uow.EventBus(),
		)
		var err error
		result, err = ticketService.PlaceStake(ctx, account.TelegramID, cmd.Text)
		return err
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(d.t("stake_placed", locale), result.Ticket.Code, result.NewBalance), nil
}

func (d *Dispatcher) handleLanguage(ctx context.Context, account *entities.Account, cmd LanguageCommand) (string, error) {
	if !isLanguageTag(cmd.Tag) {
		return "", apperrors.NewValidationError(apperrors.RuleLanguageTag,
			"language tag %q is not a BCP 47 primary subtag", cmd.Tag)
	}
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		return uow.AccountRepository().UpdateLanguage(ctx, account.TelegramID, cmd.Tag)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(d.t("language_set", cmd.Tag), cmd.Tag), nil
}

// isLanguageTag accepts a two or three letter primary language subtag.
func isLanguageTag(tag string) bool {
	if len(tag) < 2 || len(tag) > 3 {
		return false
	}
	for _, r := range tag {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func (d *Dispatcher) handleDepositClaim(ctx context.Context, account *entities.Account, locale string, cmd DepositClaimCommand) (string, error) {
	var claim *entities.DepositClaim
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		depositService := newDepositService(uow)
		var err error
		claim, err = depositService.FileClaim(ctx, account.TelegramID, cmd.TxRef, cmd.Method)
		return err
	})
	if err != nil {
		return "", err
	}

	d.notifyAdmins(ctx, fmt.Sprintf("New deposit claim #%d: user %d, %s, ref %s",
		claim.ID, claim.TelegramID, claim.Method, claim.TxRef))
	return fmt.Sprintf(d.t("deposit_filed", locale), claim.ID), nil
}

func (d *Dispatcher) handleWithdrawRequest(ctx context.Context, account *entities.Account, locale string, cmd WithdrawRequestCommand) (string, error) {
	var request *entities.WithdrawalRequest
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		withdrawalService := newWithdrawalService(uow)
		var err error
		request, err = withdrawalService.FileRequest(ctx, account.TelegramID, cmd.Amount, cmd.Method, cmd.Address)
		return err
	})
	if err != nil {
		return "", err
	}

	d.notifyAdmins(ctx, fmt.Sprintf("New withdrawal request #%d: user %d, %s %s to %s",
		request.ID, request.TelegramID, request.Amount, request.Method, request.Address))
	return fmt.Sprintf(d.t("withdrawal_filed", locale), request.ID), nil
}

func (d *Dispatcher) handleDepositApprove(ctx context.Context, locale string, cmd DepositApproveCommand) (string, error) {
	var result *interfaces.DepositApprovalResult
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		depositService := newDepositService(uow)
		var err error
		result, err = depositService.Approve(ctx, cmd.ClaimID, cmd.Amount)
		return err
	})
	if err != nil {
		return "", err
	}

	userLocale := d.localeOf(ctx, result.Claim.TelegramID)
	d.notify(ctx, result.Claim.TelegramID,
		fmt.Sprintf(d.t("deposit_approved", userLocale), result.Amount, result.NewBalance))
	if result.Bonus != nil {
		bonusLocale := d.localeOf(ctx, result.Bonus.ReferrerID)
		d.notify(ctx, result.Bonus.ReferrerID,
			fmt.Sprintf(d.t("referral_bonus", bonusLocale), result.Bonus.Amount))
	}
	return fmt.Sprintf(d.t("admin_deposit_approved", locale), cmd.ClaimID, result.Amount), nil
}

func (d *Dispatcher) handleDepositReject(ctx context.Context, locale string, cmd DepositRejectCommand) (string, error) {
	var claim *entities.DepositClaim
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		depositService := newDepositService(uow)
		var err error
		claim, err = depositService.Reject(ctx, cmd.ClaimID)
		return err
	})
	if err != nil {
		return "", err
	}

	userLocale := d.localeOf(ctx, claim.TelegramID)
	d.notify(ctx, claim.TelegramID, d.t("deposit_rejected", userLocale))
	return fmt.Sprintf(d.t("admin_deposit_rejected", locale), cmd.ClaimID), nil
}

func (d *Dispatcher) handleWithdrawApprove(ctx context.Context, locale string, cmd WithdrawApproveCommand) (string, error) {
	var resolution *interfaces.WithdrawalResolution
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		withdrawalService := newWithdrawalService(uow)
		var err error
		resolution, err = withdrawalService.Approve(ctx, cmd.RequestID)
		return err
	})
	if err != nil {
		return "", err
	}

	userLocale := d.localeOf(ctx, resolution.Request.TelegramID)
	if resolution.Outcome == interfaces.WithdrawalAutoRejected {
		d.notify(ctx, resolution.Request.TelegramID,
			fmt.Sprintf(d.t("withdrawal_auto_rejected", userLocale), resolution.Request.Amount))
		return fmt.Sprintf(d.t("admin_withdrawal_auto_rejected", locale),
			cmd.RequestID, resolution.Request.TelegramID), nil
	}

	d.notify(ctx, resolution.Request.TelegramID,
		fmt.Sprintf(d.t("withdrawal_approved", userLocale), resolution.Request.Amount, resolution.NewBalance))
	return fmt.Sprintf(d.t("admin_withdrawal_approved", locale), cmd.RequestID), nil
}

func (d *Dispatcher) handleWithdrawReject(ctx context.Context, locale string, cmd WithdrawRejectCommand) (string, error) {
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		withdrawalService := newWithdrawalService(uow)
		_, err := withdrawalService.Reject(ctx, cmd.RequestID)
		return err
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(d.t("admin_withdrawal_rejected", locale), cmd.RequestID), nil
}

func (d *Dispatcher) handleAnnounce(ctx context.Context, locale string) (string, error) {
	var announcement *interfaces.Announcement
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		settlementService := newSettlementService(uow)
		var err error
		announcement, err = settlementService.LatestAnnouncement(ctx)
		return err
	})
	if err != nil {
		return "", err
	}
	if announcement == nil {
		return d.t("no_draws_yet", locale), nil
	}
	return RenderAnnouncement(announcement, d.translator, locale), nil
}

func (d *Dispatcher) handlePending(ctx context.Context, locale string) (string, error) {
	var claims []*entities.DepositClaim
	var requests []*entities.WithdrawalRequest
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
		var err error
		if claims, err = newDepositService(uow).ListPending(ctx); err != nil {
			return err
		}
		requests, err = newWithdrawalService(uow).ListPending(ctx)
		return err
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, d.t("pending_header", locale), len(claims), len(requests))
	for _, c := range claims {
		fmt.Fprintf(&b, "\ndeposit #%d: user %d, %s, ref %s", c.ID, c.TelegramID, c.Method, c.TxRef)
	}
	for _, r := range requests {
		fmt.Fprintf(&b, "\nwithdrawal #%d: user %d, %s %s to %s", r.ID, r.TelegramID, r.Amount, r.Method, r.Address)
	}
	return b.String(), nil
}

func newDepositService(uow UnitOfWork) interfaces.DepositService {
	referralService := services.NewReferralService(
		uow.AccountRepository(),
		uow.ReferralLinkRepository(),
		uow.DepositClaimRepository(),
		uow.LedgerRepository(),
		uow.EventBus(),
	)
	return services.NewDepositService(
		uow.DepositClaimRepository(),
		uow.AccountRepository(),
		uow.LedgerRepository(),
		uow.CommissionRepository(),
		referralService,
		uow.EventBus(),
	)
}

func newWithdrawalService(uow UnitOfWork) interfaces.WithdrawalService {
	return services.NewWithdrawalService(
		uow.WithdrawalRequestRepository(),
		uow.AccountRepository(),
		uow.LedgerRepository(),
		uow.EventBus(),
	)
}

func newSettlementService(uow UnitOfWork) interfaces.SettlementService {
	return services.NewSettlementService(
		uow.DrawRepository(),
		uow.TicketRepository(),
		uow.WinnerRecordRepository(),
		uow.AccountRepository(),
		uow.LedgerRepository(),
		uow.CommissionRepository(),
		uow.EventBus(),
	)
}

// localeOf resolves a user's preferred language for a cross-party
// notification, falling back to English.
func (d *Dispatcher) localeOf(ctx context.Context, telegramID int64) string {
	locale := "en"
	err := d.executor.Execute(ctx, func(ctx context.Context, uow UnitOfWork) error {
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

// notify delivers a message to one user. Delivery failures are logged and
// swallowed so they never fail the command that triggered them.
func (d *Dispatcher) notify(ctx context.Context, telegramID int64, message string) {
	if err := d.notifier.Notify(ctx, telegramID, message); err != nil {
		log.WithError(err).WithField("telegram_id", telegramID).Warn("Failed to deliver notification")
	}
}

func (d *Dispatcher) notifyAdmins(ctx context.Context, message string) {
	for adminID := range d.adminIDs {
		d.notify(ctx, adminID, message)
	}
}

func (d *Dispatcher) t(key, locale string) string {
	return d.translator.Translate(key, locale)
}

// renderError maps domain errors to localized user-facing replies. Unexpected
// errors are logged and hidden behind a generic message.
func (d *Dispatcher) renderError(err error, locale string) string {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf(d.t("error_validation", locale), verr.Message)
	}
	var nfe *apperrors.NotFoundError
	if errors.As(err, &nfe) {
		return fmt.Sprintf(d.t("error_not_found", locale), nfe.Entity, nfe.ID)
	}
	if apperrors.IsContention(err) {
		return d.t("error_busy", locale)
	}
	log.WithError(err).Error("Command failed")
	return d.t("error_internal", locale)
}

// RenderAnnouncement formats a settlement summary as chat text.
func RenderAnnouncement(a *interfaces.Announcement, translator interfaces.Translator, locale string) string {
	var b strings.Builder
	numbers := make([]string, len(a.Numbers))
	for i, n := range a.Numbers {
		numbers[i] = fmt.Sprintf("%d", n)
	}
	fmt.Fprintf(&b, translator.Translate("announcement_header", locale),
		a.DrawDate.Format("2006-01-02"), strings.Join(numbers, ", "))
	if len(a.Winners) == 0 {
		b.WriteString("\n")
		b.WriteString(translator.Translate("announcement_no_winners", locale))
		return b.String()
	}
	for _, w := range a.Winners {
		fmt.Fprintf(&b, "\n"+translator.Translate("announcement_winner", locale),
			w.TelegramID, w.Stake, w.WinAmount)
	}
	fmt.Fprintf(&b, "\n"+translator.Translate("announcement_total", locale), a.TotalPayout)
	return b.String()
}
