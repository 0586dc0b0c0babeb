package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"lottobot/domain/entities"
	"lottobot/domain/interfaces"
)

// accountRepository implements the AccountRepository interface
type accountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository bound to a queryable.
func NewAccountRepository(q Queryable) interfaces.AccountRepository {
	return &accountRepository{q: q}
}

const accountColumns = `telegram_id, display_name, language_tag, balance, referral_code, created_at, updated_at`

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var account entities.Account
	err := row.Scan(
		&account.TelegramID,
		&account.DisplayName,
		&account.LanguageTag,
		&account.Balance,
		&account.ReferralCode,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByTelegramID retrieves an account by telegram ID
func (r *accountRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE telegram_id = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, telegramID))
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", telegramID, err)
	}
	return account, nil
}

// GetByTelegramIDForUpdate retrieves an account with a row lock
func (r *accountRepository) GetByTelegramIDForUpdate(ctx context.Context, telegramID int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE telegram_id = $1 FOR UPDATE`

	account, err := scanAccount(r.q.QueryRow(ctx, query, telegramID))
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d for update: %w", telegramID, err)
	}
	return account, nil
}

// GetByReferralCode retrieves the account owning a referral code
func (r *accountRepository) GetByReferralCode(ctx context.Context, code string) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE referral_code = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, code))
	if err != nil {
		return nil, fmt.Errorf("failed to get account by referral code: %w", err)
	}
	return account, nil
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *entities.Account) error {
	query := `
		INSERT INTO accounts (telegram_id, display_name, language_tag, balance, referral_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		account.TelegramID,
		account.DisplayName,
		account.LanguageTag,
		account.Balance,
		account.ReferralCode,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account %d: %w", account.TelegramID, err)
	}
	return nil
}

// UpdateBalance sets an account's balance atomically
func (r *accountRepository) UpdateBalance(ctx context.Context, telegramID int64, newBalance decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = $1, updated_at = NOW()
		WHERE telegram_id = $2
	`
	result, err := r.q.Exec(ctx, query, newBalance, telegramID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %d: %w", telegramID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", telegramID)
	}
	return nil
}

// UpdateLanguage sets an account's language preference
func (r *accountRepository) UpdateLanguage(ctx context.Context, telegramID int64, languageTag string) error {
	query := `
		UPDATE accounts
		SET language_tag = $1, updated_at = NOW()
		WHERE telegram_id = $2
	`
	result, err := r.q.Exec(ctx, query, languageTag, telegramID)
	if err != nil {
		return fmt.Errorf("failed to update language for account %d: %w", telegramID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", telegramID)
	}
	return nil
}
