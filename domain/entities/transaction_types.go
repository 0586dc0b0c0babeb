package entities

// TransactionType represents the type of a ledger balance change.
type TransactionType string

const (
	TransactionTypeStake         TransactionType = "stake"
	TransactionTypeDeposit       TransactionType = "deposit"
	TransactionTypeWithdrawal    TransactionType = "withdrawal"
	TransactionTypeLottoWin      TransactionType = "lotto_win"
	TransactionTypeReferralBonus TransactionType = "referral_bonus"
	TransactionTypeInitial       TransactionType = "initial"
)

// IsCredit reports whether the transaction type increases a balance.
func (tt TransactionType) IsCredit() bool {
	return tt == TransactionTypeDeposit ||
		tt == TransactionTypeLottoWin ||
		tt == TransactionTypeReferralBonus ||
		tt == TransactionTypeInitial
}

// IsDebit reports whether the transaction type decreases a balance.
func (tt TransactionType) IsDebit() bool {
	return tt == TransactionTypeStake || tt == TransactionTypeWithdrawal
}

// String returns the string representation of the transaction type.
func (tt TransactionType) String() string {
	return string(tt)
}
