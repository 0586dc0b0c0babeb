package services

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"lottobot/apperrors"
	"lottobot/domain/entities"
)

// ParseStake parses free-form stake text of the form "n1,n2,n3,n4,n5:amount".
// Validation runs in order: syntactic shape, integer parsing, distinctness
// and range, amount range. The first violated rule aborts parsing.
func ParseStake(input string) ([]int64, decimal.Decimal, error) {
	parts := strings.SplitN(strings.TrimSpace(input), ":", 2)
	if len(parts) != 2 {
		return nil, decimal.Zero, apperrors.NewValidationError(apperrors.RuleStakeFormat,
			"expected \"n1,n2,n3,n4,n5:amount\"")
	}

	tokens := strings.Split(parts[0], ",")
	if len(tokens) != entities.DrawNumberCount {
		return nil, decimal.Zero, apperrors.NewValidationError(apperrors.RuleStakeFormat,
			"expected exactly %d numbers, got %d", entities.DrawNumberCount, len(tokens))
	}

	numbers := make([]int64, 0, entities.DrawNumberCount)
	for _, token := range tokens {
		n, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
		if err != nil {
			return nil, decimal.Zero, apperrors.NewValidationError(apperrors.RuleNumbersParse,
				"%q is not an integer", strings.TrimSpace(token))
		}
		numbers = append(numbers, n)
	}

	seen := make(map[int64]bool, entities.DrawNumberCount)
	for _, n := range numbers {
		if seen[n] {
			return nil, decimal.Zero, apperrors.NewValidationError(apperrors.RuleNumbersDistinct,
				"number %d appears more than once", n)
		}
		seen[n] = true
		if n < 1 || n > entities.DrawNumberMax {
			return nil, decimal.Zero, apperrors.NewValidationError(apperrors.RuleNumbersRange,
				"number %d is outside [1, %d]", n, entities.DrawNumberMax)
		}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, decimal.Zero, apperrors.NewValidationError(apperrors.RuleStakeAmount,
			"%q is not a number", strings.TrimSpace(parts[1]))
	}
	if amount.LessThan(entities.MinStake) || amount.GreaterThan(entities.MaxStake) {
		return nil, decimal.Zero, apperrors.NewValidationError(apperrors.RuleStakeAmount,
			"stake must be between %s and %s", entities.MinStake, entities.MaxStake)
	}

	return numbers, amount, nil
}
