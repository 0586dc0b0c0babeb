package apperrors

import (
	"errors"
	"fmt"
)

// Validation rule identifiers surfaced to users when input is rejected.
const (
	RuleStakeFormat     = "stake_format"
	RuleNumbersParse    = "numbers_parse"
	RuleNumbersDistinct = "numbers_distinct"
	RuleNumbersRange    = "numbers_range"
	RuleStakeAmount     = "stake_amount"
	RuleBalance         = "balance"
	RuleDepositAmount   = "deposit_amount"
	RulePaymentMethod   = "payment_method"
	RuleWithdrawAmount  = "withdraw_amount"
	RuleLanguageTag     = "language_tag"
	RuleCommandUsage    = "command_usage"
	RuleTargetID        = "target_id"
)

// ErrInsufficientFunds is returned when a debit would drive a balance below
// zero. Withdrawal approval pre-checks the balance and auto-rejects instead,
// so this surfaces only when a unit of work miscomputes a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrDrawAlreadySettled is returned when settlement is triggered twice for the
// same day. The second run makes no writes.
var ErrDrawAlreadySettled = errors.New("draw already settled for this date")

// ValidationError rejects malformed or out-of-range input before any mutation.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Rule, e.Message)
}

// NewValidationError creates a ValidationError tagged with the violated rule.
func NewValidationError(rule, format string, args ...any) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown claim, request, account or draw id.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given entity and id.
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ContentionError is returned by the ledger executor after a unit of work
// exhausted its retry budget on store write conflicts. The unit is guaranteed
// to have left no partial mutation behind.
type ContentionError struct {
	Attempts int
	Err      error
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("transaction aborted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ContentionError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsContention reports whether err is a ContentionError.
func IsContention(err error) bool {
	var ce *ContentionError
	return errors.As(err, &ce)
}
