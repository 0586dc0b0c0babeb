package testutil

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"lottobot/domain/entities"
)

// CreateTestAccount creates a test account with default values
func CreateTestAccount(telegramID int64, displayName string) *entities.Account {
	return &entities.Account{
		TelegramID:   telegramID,
		DisplayName:  displayName,
		LanguageTag:  "en",
		Balance:      decimal.NewFromInt(100),
		ReferralCode: fmt.Sprintf("code%d", telegramID),
	}
}

// CreateTestAccountWithBalance creates a test account with a specific balance
func CreateTestAccountWithBalance(telegramID int64, displayName string, balance decimal.Decimal) *entities.Account {
	account := CreateTestAccount(telegramID, displayName)
	account.Balance = balance
	return account
}

// CreateTestLedgerEntry creates a consistent ledger entry for an account
func CreateTestLedgerEntry(telegramID int64, transactionType entities.TransactionType) *entities.LedgerEntry {
	return &entities.LedgerEntry{
		TelegramID:      telegramID,
		BalanceBefore:   decimal.NewFromInt(100),
		BalanceAfter:    decimal.NewFromInt(90),
		ChangeAmount:    decimal.NewFromInt(-10),
		TransactionType: transactionType,
		Metadata: map[string]any{
			"test": true,
		},
	}
}

// CreateTestTicket creates a test ticket for an account
func CreateTestTicket(telegramID int64, numbers []int64, stake decimal.Decimal) *entities.Ticket {
	return &entities.Ticket{
		TelegramID: telegramID,
		Code:       entities.GenerateTicketCode(telegramID, time.Now()),
		Stake:      stake,
		Numbers:    numbers,
	}
}
