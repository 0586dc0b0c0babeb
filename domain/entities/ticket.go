package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Stake limits enforced at ticket creation.
var (
	MinStake = decimal.NewFromInt(1)
	MaxStake = decimal.NewFromInt(200)
)

// Ticket represents a recorded stake backing a chosen number combination.
// The stake is debited exactly once, atomically with ticket insertion, and
// the ticket is immutable thereafter.
type Ticket struct {
	ID         int64           `db:"id"`
	TelegramID int64           `db:"telegram_id"`
	Code       string          `db:"code"`
	Stake      decimal.Decimal `db:"stake"`
	Numbers    []int64         `db:"numbers"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Matches counts numbers shared between the ticket and a draw.
func (t *Ticket) Matches(drawNumbers []int64) int {
	drawn := make(map[int64]bool, len(drawNumbers))
	for _, n := range drawNumbers {
		drawn[n] = true
	}
	matches := 0
	for _, n := range t.Numbers {
		if drawn[n] {
			matches++
		}
	}
	return matches
}

// GenerateTicketCode derives an opaque ticket code from the purchaser and
// purchase time. Collisions are treated as negligible, not impossible.
func GenerateTicketCode(telegramID int64, at time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%d", telegramID, at.UnixNano())))
	return hex.EncodeToString(sum[:])[:12]
}
