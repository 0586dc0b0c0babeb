package application

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"lottobot/apperrors"
)

// ErrUnknownCommand is returned when input text matches no command shape.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a parsed, typed user or admin action. Parsing happens exactly
// once at the transport boundary; the dispatcher routes on type, never on raw
// text patterns.
type Command interface {
	isCommand()
}

// StartCommand is first contact, optionally carrying a referral code.
type StartCommand struct {
	ReferralCode string
}

// BalanceCommand requests the current balance.
type BalanceCommand struct{}

// AnnounceCommand triggers the latest settlement announcement. Admin only.
type AnnounceCommand struct{}

// StakeCommand carries raw stake text; validation happens in the stake parser
// so that every rule violation is reported uniformly.
type StakeCommand struct {
	Text string
}

// DepositClaimCommand files a pending deposit claim.
type DepositClaimCommand struct {
	TxRef  string
	Method string
}

// WithdrawRequestCommand files a pending withdrawal request.
type WithdrawRequestCommand struct {
	Amount  decimal.Decimal
	Method  string
	Address string
}

// DepositApproveCommand resolves a deposit claim with a credited amount. Admin only.
type DepositApproveCommand struct {
	ClaimID int64
	Amount  decimal.Decimal
}

// DepositRejectCommand resolves a deposit claim without credit. Admin only.
type DepositRejectCommand struct {
	ClaimID int64
}

// WithdrawApproveCommand resolves a withdrawal request. Admin only.
type WithdrawApproveCommand struct {
	RequestID int64
}

// WithdrawRejectCommand resolves a withdrawal request without debit. Admin only.
type WithdrawRejectCommand struct {
	RequestID int64
}

// PendingCommand lists unresolved claims and requests. Admin only.
type PendingCommand struct{}

// LanguageCommand sets the sender's preferred language.
type LanguageCommand struct {
	Tag string
}

func (StartCommand) isCommand()           {}
func (BalanceCommand) isCommand()         {}
func (AnnounceCommand) isCommand()        {}
func (StakeCommand) isCommand()           {}
func (DepositClaimCommand) isCommand()    {}
func (WithdrawRequestCommand) isCommand() {}
func (DepositApproveCommand) isCommand()  {}
func (DepositRejectCommand) isCommand()   {}
func (WithdrawApproveCommand) isCommand() {}
func (WithdrawRejectCommand) isCommand()  {}
func (PendingCommand) isCommand()         {}
func (LanguageCommand) isCommand()        {}

// ParseCommand parses one message into a typed command. Slash commands are
// matched by name; free text is disambiguated by shape: a colon marks a stake,
// two fields a deposit claim, three fields a withdrawal request.
func ParseCommand(text string) (Command, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrUnknownCommand
	}

	if strings.HasPrefix(text, "/") {
		return parseSlashCommand(text)
	}

	if strings.Contains(text, ":") {
		return StakeCommand{Text: text}, nil
	}

	fields := strings.Fields(text)
	switch len(fields) {
	case 2:
		return DepositClaimCommand{TxRef: fields[0], Method: strings.ToUpper(fields[1])}, nil
	case 3:
		amount, err := decimal.NewFromString(fields[0])
		if err != nil {
			return nil, ErrUnknownCommand
		}
		return WithdrawRequestCommand{
			Amount:  amount,
			Method:  strings.ToUpper(fields[1]),
			Address: fields[2],
		}, nil
	default:
		return nil, ErrUnknownCommand
	}
}

func parseSlashCommand(text string) (Command, error) {
	fields := strings.Fields(text)
	name := fields[0]
	args := fields[1:]

	switch name {
	case "/start":
		cmd := StartCommand{}
		if len(args) > 0 {
			cmd.ReferralCode = args[0]
		}
		return cmd, nil

	case "/balance":
		return BalanceCommand{}, nil

	case "/announce":
		return AnnounceCommand{}, nil

	case "/pending":
		return PendingCommand{}, nil

	case "/language":
		if len(args) != 1 {
			return nil, apperrors.NewValidationError(apperrors.RuleCommandUsage,
				"usage: /language <tag>")
		}
		return LanguageCommand{Tag: strings.ToLower(args[0])}, nil

	case "/deposit_approve":
		if len(args) != 2 {
			return nil, apperrors.NewValidationError(apperrors.RuleCommandUsage,
				"usage: /deposit_approve <id> <amount>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.RuleTargetID,
				"claim id %q is not a number", args[0])
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.RuleDepositAmount,
				"amount %q is not a number", args[1])
		}
		return DepositApproveCommand{ClaimID: id, Amount: amount}, nil

	case "/deposit_reject":
		id, err := singleID(name, args)
		if err != nil {
			return nil, err
		}
		return DepositRejectCommand{ClaimID: id}, nil

	case "/withdraw_approve":
		id, err := singleID(name, args)
		if err != nil {
			return nil, err
		}
		return WithdrawApproveCommand{RequestID: id}, nil

	case "/withdraw_reject":
		id, err := singleID(name, args)
		if err != nil {
			return nil, err
		}
		return WithdrawRejectCommand{RequestID: id}, nil

	default:
		return nil, ErrUnknownCommand
	}
}

func singleID(name string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, apperrors.NewValidationError(apperrors.RuleCommandUsage,
			"usage: %s <id>", name)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(apperrors.RuleTargetID,
			"id %q is not a number", args[0])
	}
	return id, nil
}
