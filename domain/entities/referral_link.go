package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferralBonusRate is the one-time referrer cut of the referred user's
// first approved deposit.
var ReferralBonusRate = decimal.NewFromFloat(0.10)

// ReferralLink attributes a referred user to a referrer. Each user can be
// referred at most once, and the one-time bonus is credited at most once.
type ReferralLink struct {
	ID            int64     `db:"id"`
	ReferrerID    int64     `db:"referrer_id"`
	ReferredID    int64     `db:"referred_id"`
	BonusCredited bool      `db:"bonus_credited"`
	CreatedAt     time.Time `db:"created_at"`
}

// CanCreditBonus reports whether the one-time referral bonus is still owed.
func (l *ReferralLink) CanCreditBonus() bool {
	return !l.BonusCredited
}
