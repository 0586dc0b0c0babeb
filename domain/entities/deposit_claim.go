package entities

import "time"

// PaymentMethod is one of the fixed set of supported currencies.
type PaymentMethod string

const (
	PaymentMethodUSDT PaymentMethod = "USDT"
	PaymentMethodTON  PaymentMethod = "TON"
	PaymentMethodBTC  PaymentMethod = "BTC"
	PaymentMethodCard PaymentMethod = "CARD"
)

// PaymentMethods lists every supported method.
var PaymentMethods = []PaymentMethod{PaymentMethodUSDT, PaymentMethodTON, PaymentMethodBTC, PaymentMethodCard}

// IsValidPaymentMethod reports whether s names a supported method.
func IsValidPaymentMethod(s string) bool {
	for _, m := range PaymentMethods {
		if string(m) == s {
			return true
		}
	}
	return false
}

// DepositClaim is a user's assertion that they sent funds. It exists only
// while pending and is deleted by exactly one terminal admin action.
// Filing a claim has no balance effect; approval credits the account.
type DepositClaim struct {
	ID         int64         `db:"id"`
	TelegramID int64         `db:"telegram_id"`
	Method     PaymentMethod `db:"method"`
	TxRef      string        `db:"tx_ref"`
	CreatedAt  time.Time     `db:"created_at"`
}
