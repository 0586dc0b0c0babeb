package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionSource identifies what produced a commission entry.
type CommissionSource string

const (
	CommissionSourceDeposit  CommissionSource = "deposit"
	CommissionSourceLottoWin CommissionSource = "lotto_win"
)

// CommissionEntry records the operator's cut: 10% of every approved deposit
// and 10% of every winning ticket's prize.
type CommissionEntry struct {
	ID        int64            `db:"id"`
	Amount    decimal.Decimal  `db:"amount"`
	Source    CommissionSource `db:"source"`
	CreatedAt time.Time        `db:"created_at"`
}
