package entities

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DrawNumberCount is how many distinct numbers make up a draw and a ticket.
	DrawNumberCount = 5
	// DrawNumberMax is the upper bound of the number pool [1, DrawNumberMax].
	DrawNumberMax = 50
)

// PrizeMultipliers maps match count to the stake multiplier. Tickets with
// fewer than 3 matches win nothing.
var PrizeMultipliers = map[int]int64{
	3: 5,
	4: 50,
	5: 500,
}

// CommissionRate is the operator's cut on credited amounts.
var CommissionRate = decimal.NewFromFloat(0.10)

// Draw is the 5-number outcome generated at settlement time, one per day.
type Draw struct {
	ID        int64     `db:"id"`
	DrawDate  time.Time `db:"draw_date"`
	Numbers   []int64   `db:"numbers"`
	CreatedAt time.Time `db:"created_at"`
}

// GenerateDrawNumbers draws 5 distinct integers uniformly from [1, 50]
// without replacement using a cryptographic source.
func GenerateDrawNumbers() ([]int64, error) {
	pool := make([]int64, DrawNumberMax)
	for i := range pool {
		pool[i] = int64(i + 1)
	}

	// Partial Fisher-Yates over the first DrawNumberCount positions.
	for i := 0; i < DrawNumberCount; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool)-i)))
		if err != nil {
			return nil, fmt.Errorf("failed to generate draw number: %w", err)
		}
		j := i + int(n.Int64())
		pool[i], pool[j] = pool[j], pool[i]
	}

	numbers := make([]int64, DrawNumberCount)
	copy(numbers, pool[:DrawNumberCount])
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	return numbers, nil
}

// WinAmount returns the payout for a stake at the given match count, zero
// when matches < 3.
func WinAmount(stake decimal.Decimal, matches int) decimal.Decimal {
	multiplier, ok := PrizeMultipliers[matches]
	if !ok {
		return decimal.Zero
	}
	return stake.Mul(decimal.NewFromInt(multiplier))
}

// CommissionOn returns the operator's 10% cut of a credited amount.
func CommissionOn(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(CommissionRate)
}
